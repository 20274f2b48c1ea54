package stream

import "io"

// CountingWriter forwards writes to the underlying writer and counts the
// bytes it accepted.
type CountingWriter struct {
	dst io.Writer
	n   int64
}

// NewCountingWriter returns a counting decorator over dst.
func NewCountingWriter(dst io.Writer) *CountingWriter {
	return &CountingWriter{dst: dst}
}

// Count returns the number of bytes accepted so far.
func (x *CountingWriter) Count() int64 {
	return x.n
}

func (x *CountingWriter) Write(p []byte) (int, error) {
	n, err := x.dst.Write(p)
	x.n += int64(n)
	return n, err
}

// MultiWriter forwards each write to every destination in order. The
// first error stops the sequence and is returned; destinations earlier in
// the list will already have received the data.
type MultiWriter struct {
	dsts []io.Writer
}

// NewMultiWriter returns a fan-out decorator over dsts.
func NewMultiWriter(dsts ...io.Writer) *MultiWriter {
	return &MultiWriter{dsts: append([]io.Writer(nil), dsts...)}
}

func (x *MultiWriter) Write(p []byte) (int, error) {
	for _, dst := range x.dsts {
		n, err := dst.Write(p)
		if err != nil {
			return n, err
		}
		if n < len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

// Discard accepts and drops everything written to it.
var Discard io.Writer = discard{}

type discard struct{}

func (discard) Write(p []byte) (int, error) {
	return len(p), nil
}
