package stream

import "io"

// Fixed is an in-memory read stream over a preset byte slice. Unlike a
// growable buffer it never allocates; reads consume the slice until EOF.
type Fixed struct {
	data []byte
}

// NewFixed returns a Fixed stream delivering data.
func NewFixed(data []byte) *Fixed {
	return &Fixed{data: data}
}

// Remaining returns the number of unread bytes.
func (x *Fixed) Remaining() int {
	return len(x.data)
}

func (x *Fixed) Read(p []byte) (int, error) {
	if len(x.data) == 0 {
		return 0, io.EOF
	}
	n := copy(p, x.data)
	x.data = x.data[n:]
	return n, nil
}

// FixedWriter fills a caller-supplied slice and refuses to grow past it,
// returning io.ErrShortWrite once full.
type FixedWriter struct {
	buf []byte
	n   int
}

// NewFixedWriter returns a FixedWriter over buf.
func NewFixedWriter(buf []byte) *FixedWriter {
	return &FixedWriter{buf: buf}
}

// Bytes returns the written prefix of the backing slice.
func (x *FixedWriter) Bytes() []byte {
	return x.buf[:x.n]
}

func (x *FixedWriter) Write(p []byte) (int, error) {
	n := copy(x.buf[x.n:], p)
	x.n += n
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}
