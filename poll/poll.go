package poll

import (
	"errors"

	"github.com/wippyai/iomux"
)

// ErrUnsupported is returned on platforms without poll(2).
var ErrUnsupported = errors.New("poll: not supported on this platform")

// Poller implements iomux.Waiter and iomux.Transport over poll(2). It is
// stateless; the zero value is ready for use.
type Poller struct{}

var _ iomux.Waiter = (*Poller)(nil)
var _ iomux.Transport = (*Poller)(nil)

// New returns a Poller.
func New() *Poller {
	return &Poller{}
}

var defaultPoller = New()

// Default returns the shared process-wide Poller.
func Default() *Poller {
	return defaultPoller
}
