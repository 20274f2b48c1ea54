// Package mux implements the stream readiness multiplexer.
//
// A Mux owns one slot per configured stream: a FIFO buffer, the stream's
// direction, and a tagged active/inactive state. Poll performs one batched
// readiness check across all still-active streams, then services every
// ready stream exactly once in construction order: readable input streams
// are drained into their buffers, writable output streams have their
// buffers flushed. A stream is retired permanently the first time it
// signals end-of-stream, a readiness error or hangup with no pending data,
// or a zero-byte-accepted write; Done reports true once every stream has
// been retired.
//
// The caller drives the loop:
//
//	for !m.Done() {
//	    if err := m.Poll(); err != nil {
//	        return err
//	    }
//	    // consume m.Buffer("out"), refill m.Buffer("in"), ...
//	}
//
// A Mux is single-threaded by contract: one goroutine calls Poll and
// touches the buffers between calls. The only suspension point is the
// batched readiness wait.
package mux
