package fifo

import (
	"io"

	"github.com/wippyai/iomux/errors"
)

// DefaultHeadroom is the minimum free tail space requested when a Buffer
// grows. Over-allocating keeps the reallocation count low when a stream
// delivers data in many small reads.
const DefaultHeadroom = 512

// Buffer is a growable FIFO byte queue. Stored bytes live in buf[head:];
// the region buf[len(buf):cap(buf)] is free tail space handed out by
// ReserveWritable. The zero value is not ready for use; call New.
type Buffer struct {
	buf      []byte
	head     int
	headroom int
	limit    int // max stored+reserved bytes; 0 means unlimited
	reserved int // size of the outstanding reservation
}

// New returns an empty Buffer with DefaultHeadroom and no capacity limit.
func New() *Buffer {
	return &Buffer{headroom: DefaultHeadroom}
}

// NewSized returns an empty Buffer with the given growth headroom and
// capacity limit. A headroom of 0 selects DefaultHeadroom; a limit of 0
// means unlimited.
func NewSized(headroom, limit int) *Buffer {
	if headroom <= 0 {
		headroom = DefaultHeadroom
	}
	return &Buffer{headroom: headroom, limit: limit}
}

// Len returns the number of currently stored bytes.
func (b *Buffer) Len() int {
	return len(b.buf) - b.head
}

// ReserveWritable returns a contiguous writable region of at least min
// bytes at the tail of the queue, growing (and possibly relocating) the
// backing storage as needed. The region stays valid until the next call to
// any other Buffer method; data written into it becomes stored only after
// CommitWritten. Growth requests at least headroom bytes beyond the
// immediate need. Fails with an allocation-kind error when the configured
// limit would be exceeded.
func (b *Buffer) ReserveWritable(min int) ([]byte, error) {
	if min < 0 {
		panic("fifo: negative reserve")
	}
	stored := b.Len()
	if b.limit > 0 && stored+min > b.limit {
		return nil, errors.Allocation(errors.OpReserve, "", 0, stored+min, b.limit)
	}

	if free := cap(b.buf) - len(b.buf); free < min {
		// Compact before growing; the dead prefix may already be enough.
		if b.head > 0 {
			copy(b.buf, b.buf[b.head:])
			b.buf = b.buf[:stored]
			b.head = 0
		}
		if cap(b.buf)-len(b.buf) < min {
			want := stored + min + b.headroom
			if b.limit > 0 && want > b.limit {
				want = b.limit
			}
			grown := make([]byte, stored, want)
			copy(grown, b.buf)
			b.buf = grown
		}
	}

	b.reserved = cap(b.buf) - len(b.buf)
	return b.buf[len(b.buf):cap(b.buf)], nil
}

// CommitWritten appends the first n bytes of the most recent reservation
// to the stored data. Panics if n exceeds the reserved size.
func (b *Buffer) CommitWritten(n int) {
	if n < 0 || n > b.reserved {
		panic("fifo: commit exceeds reservation")
	}
	b.buf = b.buf[:len(b.buf)+n]
	b.reserved -= n
}

// ReadableView returns the stored bytes starting skip bytes into the
// queue, without consuming them. The view stays valid until the next
// mutating call. Panics if skip exceeds Len.
func (b *Buffer) ReadableView(skip int) []byte {
	if skip < 0 || skip > b.Len() {
		panic("fifo: view out of range")
	}
	return b.buf[b.head+skip : len(b.buf)]
}

// Discard removes the first n stored bytes, preserving the order of the
// remainder. Panics if n exceeds Len.
func (b *Buffer) Discard(n int) {
	if n < 0 || n > b.Len() {
		panic("fifo: discard out of range")
	}
	b.head += n
	if b.head == len(b.buf) {
		// Empty; reclaim the dead prefix for free.
		b.buf = b.buf[:0]
		b.head = 0
	}
}

// Write appends p to the queue, making Buffer an io.Writer so callers can
// preload output streams. It is reserve+copy+commit in one step.
func (b *Buffer) Write(p []byte) (int, error) {
	region, err := b.ReserveWritable(len(p))
	if err != nil {
		return 0, err
	}
	copy(region, p)
	b.CommitWritten(len(p))
	return len(p), nil
}

// Read copies stored bytes into p and consumes them, making Buffer an
// io.Reader for draining input streams. Returns io.EOF when the queue is
// empty and len(p) > 0.
func (b *Buffer) Read(p []byte) (int, error) {
	if b.Len() == 0 {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, b.ReadableView(0))
	b.Discard(n)
	return n, nil
}
