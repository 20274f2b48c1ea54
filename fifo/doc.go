// Package fifo implements a growable, order-preserving byte queue.
//
// A Buffer stages data between OS stream operations and the caller: bytes
// are appended at the tail through a reserve/commit pair and consumed from
// the head with Discard. Growth over-allocates by a configurable headroom
// so that many small appends amortize to few reallocations. No operation
// blocks; a Buffer is pure data-structure manipulation and is not safe for
// concurrent use.
package fifo
