// Package stream provides single-stream helpers around the multiplexer:
// buffered readers and writers that batch syscalls, in-memory fixed
// streams, counting/fan-out/discard writer decorators, and descriptors
// for the process standard handles.
//
// Everything here is simple forwarding or decoration over the standard
// io interfaces; the coordination across multiple streams lives in the
// mux package.
package stream
