package stream

import (
	"os"

	"github.com/wippyai/iomux"
)

// Stdin returns a descriptor for the process standard input under the
// given stream ID. The caller keeps ownership of the handle.
func Stdin(id string) iomux.Descriptor {
	return iomux.Descriptor{ID: id, Handle: int(os.Stdin.Fd()), Direction: iomux.Input}
}

// Stdout returns a descriptor for the process standard output.
func Stdout(id string) iomux.Descriptor {
	return iomux.Descriptor{ID: id, Handle: int(os.Stdout.Fd()), Direction: iomux.Output}
}

// Stderr returns a descriptor for the process standard error.
func Stderr(id string) iomux.Descriptor {
	return iomux.Descriptor{ID: id, Handle: int(os.Stderr.Fd()), Direction: iomux.Output}
}
