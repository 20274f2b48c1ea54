package iomux

import "time"

// Direction declares whether a stream delivers data to the multiplexer or
// accepts data from it.
type Direction uint8

const (
	// Input streams are drained into their slot buffer when readable.
	Input Direction = iota
	// Output streams have their slot buffer flushed to them when writable.
	Output
)

// String returns "input" or "output".
func (d Direction) String() string {
	switch d {
	case Input:
		return "input"
	case Output:
		return "output"
	}
	return "invalid"
}

// Descriptor declares one stream to the multiplexer. The caller owns the
// handle; the multiplexer never opens or closes it. Descriptors are
// immutable for the multiplexer's lifetime and IDs must be unique within
// one construction.
type Descriptor struct {
	// ID names the stream within the multiplexer.
	ID string
	// Handle is the OS-level stream handle (a file descriptor on unix).
	Handle int
	// Direction declares the stream as Input or Output.
	Direction Direction
}

// Events is a bit set of readiness conditions reported for a stream.
type Events uint8

const (
	// Readable indicates data can be read without blocking.
	Readable Events = 1 << iota
	// Writable indicates data can be written without blocking.
	Writable
	// Err indicates an error condition on the stream.
	Err
	// Hangup indicates the peer closed its end of the stream.
	Hangup
)

// Has reports whether all bits of e2 are set in e.
func (e Events) Has(e2 Events) bool { return e&e2 == e2 }

// Request registers interest in readiness conditions for one handle.
// Implementations of Waiter must ignore requests with a negative handle
// rather than report them as errors.
type Request struct {
	Handle   int
	Interest Events
}

// Unbounded is the Wait timeout meaning block until an event arrives.
const Unbounded time.Duration = -1

// Waiter is the batched readiness primitive the multiplexer suspends on.
//
// Wait blocks until at least one requested handle reports a condition, the
// timeout elapses, or the wait is interrupted. results must have the same
// length as reqs; Wait stores the observed conditions for reqs[i] in
// results[i] and returns the number of requests with non-zero results. An
// interrupted or timed-out wait returns (0, nil); that is a legitimate
// spurious wake, not an error.
type Waiter interface {
	Wait(reqs []Request, results []Events, timeout time.Duration) (int, error)
}

// Transport supplies the single-shot read and write primitives over a
// handle. A return of (0, nil) is the designated end-of-stream or
// closed-peer signal, never an error.
type Transport interface {
	Read(handle int, p []byte) (int, error)
	Write(handle int, p []byte) (int, error)
}
