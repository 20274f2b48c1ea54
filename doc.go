// Package iomux provides a fixed-set stream readiness multiplexer.
//
// This library drives a caller-defined, named collection of OS streams,
// each declared as input or output, with a single batched readiness check,
// draining readable streams into per-stream FIFO buffers and flushing
// per-stream output buffers to writable streams until every stream has
// reached end-of-stream or closed.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	iomux/               Root package with core Descriptor, Events, Waiter
//	                     and Transport types
//	├── mux/             The multiplexer: slot table, Poll loop, Done
//	├── fifo/            Growable FIFO byte queue used to stage stream data
//	├── poll/            Default Waiter and Transport over poll(2)
//	├── stream/          Buffered readers/writers, stream decorators, and
//	                     standard-handle descriptors
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Multiplex a child process's stdout and stderr:
//
//	m, err := mux.New([]iomux.Descriptor{
//	    {ID: "out", Handle: outFD, Direction: iomux.Input},
//	    {ID: "err", Handle: errFD, Direction: iomux.Input},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for !m.Done() {
//	    if err := m.Poll(); err != nil {
//	        log.Fatal(err)
//	    }
//	    os.Stdout.Write(m.Buffer("out").ReadableView(0))
//	    m.Buffer("out").Discard(m.Buffer("out").Len())
//	}
//
// # Termination Protocol
//
// A stream leaves the readiness set permanently the first time it reports
// end-of-stream (a zero-byte read), a readiness error or hangup with no
// pending data, or a zero-byte-accepted write. Done reports true once every
// configured stream has been retired. The multiplexer never loops on its
// own; the caller invokes Poll repeatedly until Done.
//
// # Thread Safety
//
// A Mux and its buffers are NOT thread-safe. Exactly one goroutine drives
// Poll and exchanges data through the per-stream buffers between Poll calls.
// The only suspension point is the batched readiness wait inside Poll.
package iomux
