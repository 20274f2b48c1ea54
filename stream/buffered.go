package stream

import "io"

// DefaultBufferSize is the buffer size used when none is given.
const DefaultBufferSize = 4096

// Reader pulls data from its source in buffered chunks, minimizing the
// number of read calls on the underlying stream.
type Reader struct {
	src io.Reader
	buf []byte
	r   int // next unread index
	w   int // end of buffered data
}

// NewReader returns a buffered reader over src. A size of 0 or less
// selects DefaultBufferSize.
func NewReader(src io.Reader, size int) *Reader {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &Reader{
		src: src,
		buf: make([]byte, size),
	}
}

// Buffered returns the number of bytes available without a source read.
func (x *Reader) Buffered() int {
	return x.w - x.r
}

func (x *Reader) Read(p []byte) (int, error) {
	if x.w-x.r >= len(p) {
		// enough buffered data
		copy(p, x.buf[x.r:x.w])
		x.r += len(p)
		return len(p), nil
	}

	// first copy what we have
	n := copy(p, x.buf[x.r:x.w])
	x.r += n
	p = p[n:]
	if len(p) == 0 {
		return n, nil
	}

	if len(p) >= len(x.buf) {
		// large read, no point in buffering
		r, err := x.src.Read(p)
		return n + r, err
	}

	// refill and transfer what is needed
	var err error
	x.r = 0
	x.w, err = x.src.Read(x.buf)
	if x.w > len(p) {
		// enough data for another read; hold the error
		err = nil
	}
	x.r = copy(p, x.buf[:x.w])

	return n + x.r, err
}

// Reset discards any buffered data and sets the Reader to read from src.
func (x *Reader) Reset(src io.Reader) {
	x.src = src
	x.r = 0
	x.w = 0
}

// Writer accumulates small writes before forwarding them, minimizing the
// number of write calls on the underlying stream. Call Flush to push out
// pending data.
type Writer struct {
	dst io.Writer
	buf []byte
	n   int // buffered bytes
}

// NewWriter returns a buffered writer to dst. A size of 0 or less selects
// DefaultBufferSize.
func NewWriter(dst io.Writer, size int) *Writer {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &Writer{
		dst: dst,
		buf: make([]byte, size),
	}
}

// Buffered returns the number of bytes not yet forwarded.
func (x *Writer) Buffered() int {
	return x.n
}

func (x *Writer) Write(p []byte) (int, error) {
	total := 0
	for len(p) > 0 {
		if x.n == 0 && len(p) >= len(x.buf) {
			// large write with nothing pending; forward directly
			n, err := x.dst.Write(p)
			return total + n, err
		}

		n := copy(x.buf[x.n:], p)
		x.n += n
		p = p[n:]
		total += n

		if x.n == len(x.buf) {
			if err := x.Flush(); err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// Flush forwards any pending data to the destination.
func (x *Writer) Flush() error {
	if x.n == 0 {
		return nil
	}
	n, err := x.dst.Write(x.buf[:x.n])
	if err != nil {
		// keep the unwritten remainder for a retry
		copy(x.buf, x.buf[n:x.n])
		x.n -= n
		return err
	}
	x.n = 0
	return nil
}
