//go:build !unix

package poll

import (
	"time"

	"github.com/wippyai/iomux"
)

func (p *Poller) Wait(reqs []iomux.Request, results []iomux.Events, timeout time.Duration) (int, error) {
	return 0, ErrUnsupported
}

func (p *Poller) Read(handle int, b []byte) (int, error) {
	return 0, ErrUnsupported
}

func (p *Poller) Write(handle int, b []byte) (int, error) {
	return 0, ErrUnsupported
}
