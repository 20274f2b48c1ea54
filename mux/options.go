package mux

import (
	"time"

	"github.com/wippyai/iomux"
)

type config struct {
	waiter    iomux.Waiter
	transport iomux.Transport
	timeout   time.Duration
	headroom  int
	limit     int
}

// Option configures a Mux at construction.
type Option func(*config)

// WithWaiter replaces the batched readiness primitive. The default is the
// process-wide poll(2) waiter from the poll package.
func WithWaiter(w iomux.Waiter) Option {
	return func(c *config) { c.waiter = w }
}

// WithTransport replaces the read/write primitives used to drain and
// flush streams. The default operates directly on file descriptors.
func WithTransport(t iomux.Transport) Option {
	return func(c *config) { c.transport = t }
}

// WithWaitTimeout bounds the readiness wait inside Poll. The default is
// an unbounded wait; a bounded wait makes Poll return nil with nothing
// serviced when no stream becomes ready in time.
func WithWaitTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

// WithHeadroom sets the minimum free space reserved in an input stream's
// buffer before each read, and the growth margin of all slot buffers.
// The default is fifo.DefaultHeadroom.
func WithHeadroom(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.headroom = n
		}
	}
}

// WithBufferLimit caps every slot buffer at n stored bytes. Exceeding the
// cap fails the triggering Poll with an allocation-kind error. The
// default is unlimited.
func WithBufferLimit(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.limit = n
		}
	}
}
