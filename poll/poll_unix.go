//go:build unix

package poll

import (
	"time"

	"golang.org/x/sys/unix"

	"github.com/wippyai/iomux"
)

// toPollBits translates interest flags into poll(2) event bits. Error and
// hangup conditions need no registration; poll(2) always reports them.
func toPollBits(e iomux.Events) int16 {
	var bits int16
	if e.Has(iomux.Readable) {
		bits |= unix.POLLIN
	}
	if e.Has(iomux.Writable) {
		bits |= unix.POLLOUT
	}
	return bits
}

// fromPollBits translates revents into readiness flags. POLLNVAL (the fd
// was not open) is reported as an error condition.
func fromPollBits(bits int16) iomux.Events {
	var e iomux.Events
	if bits&unix.POLLIN != 0 {
		e |= iomux.Readable
	}
	if bits&unix.POLLOUT != 0 {
		e |= iomux.Writable
	}
	if bits&(unix.POLLERR|unix.POLLNVAL) != 0 {
		e |= iomux.Err
	}
	if bits&unix.POLLHUP != 0 {
		e |= iomux.Hangup
	}
	return e
}

// Wait performs one batched poll(2) across reqs. Negative handles pass
// straight through; poll(2) ignores them. An EINTR wake reports (0, nil)
// so the caller treats it as a spurious wake.
func (p *Poller) Wait(reqs []iomux.Request, results []iomux.Events, timeout time.Duration) (int, error) {
	if len(results) != len(reqs) {
		panic("poll: results length does not match requests")
	}

	fds := make([]unix.PollFd, len(reqs))
	for i, r := range reqs {
		fds[i] = unix.PollFd{
			Fd:     int32(r.Handle),
			Events: toPollBits(r.Interest),
		}
	}

	ms := -1
	if timeout >= 0 {
		ms = int(timeout / time.Millisecond)
	}

	_, err := unix.Poll(fds, ms)
	if err == unix.EINTR {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	n := 0
	for i := range fds {
		results[i] = fromPollBits(fds[i].Revents)
		if results[i] != 0 {
			n++
		}
	}
	return n, nil
}

// Read issues a single read(2) on handle. A return of (0, nil) means
// end-of-stream. EINTR retries; any other failure propagates.
func (p *Poller) Read(handle int, b []byte) (int, error) {
	for {
		n, err := unix.Read(handle, b)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, err
		}
		return n, nil
	}
}

// Write issues a single write(2) on handle. A return of (0, nil) means
// the peer stopped accepting data.
func (p *Poller) Write(handle int, b []byte) (int, error) {
	for {
		n, err := unix.Write(handle, b)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, err
		}
		return n, nil
	}
}
