package stream

import (
	"bytes"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/wippyai/iomux"
)

// chunkReader delivers data in fixed-size chunks and counts calls.
type chunkReader struct {
	data  []byte
	chunk int
	calls int
}

func (r *chunkReader) Read(p []byte) (int, error) {
	r.calls++
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := r.chunk
	if n > len(r.data) {
		n = len(r.data)
	}
	if n > len(p) {
		n = len(p)
	}
	n = copy(p[:n], r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestReader_SmallReadsAreBuffered(t *testing.T) {
	src := &chunkReader{data: bytes.Repeat([]byte("ab"), 64), chunk: 128}
	r := NewReader(src, 128)

	var got []byte
	p := make([]byte, 2)
	for i := 0; i < 64; i++ {
		n, err := r.Read(p)
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		got = append(got, p[:n]...)
	}

	if !bytes.Equal(got, bytes.Repeat([]byte("ab"), 64)) {
		t.Error("buffered reads corrupted data")
	}
	if src.calls != 1 {
		t.Errorf("expected 1 source read, got %d", src.calls)
	}
}

func TestReader_LargeReadBypassesBuffer(t *testing.T) {
	src := &chunkReader{data: bytes.Repeat([]byte("x"), 4096), chunk: 4096}
	r := NewReader(src, 64)

	p := make([]byte, 4096)
	n, err := r.Read(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n != 4096 {
		t.Errorf("expected direct large read, got %d bytes", n)
	}
}

func TestReader_Reset(t *testing.T) {
	r := NewReader(&chunkReader{data: []byte("old"), chunk: 16}, 16)
	p := make([]byte, 1)
	if _, err := r.Read(p); err != nil {
		t.Fatalf("read: %v", err)
	}

	r.Reset(&chunkReader{data: []byte("new"), chunk: 16})
	if r.Buffered() != 0 {
		t.Error("reset must drop buffered data")
	}
	got := make([]byte, 3)
	if _, err := io.ReadFull(r, got); err != nil {
		t.Fatalf("read after reset: %v", err)
	}
	if string(got) != "new" {
		t.Errorf("expected 'new', got %q", got)
	}
}

// countWriter records each forwarded write.
type countWriter struct {
	writes [][]byte
	err    error
}

func (w *countWriter) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	w.writes = append(w.writes, append([]byte(nil), p...))
	return len(p), nil
}

func TestWriter_BatchesSmallWrites(t *testing.T) {
	dst := &countWriter{}
	w := NewWriter(dst, 8)

	for i := 0; i < 4; i++ {
		if _, err := w.Write([]byte("a")); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if len(dst.writes) != 0 {
		t.Error("small writes must stay buffered")
	}

	if err := w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if len(dst.writes) != 1 || !bytes.Equal(dst.writes[0], []byte("aaaa")) {
		t.Errorf("expected one batched write of 'aaaa', got %v", dst.writes)
	}
}

func TestWriter_LargeWriteBypassesBuffer(t *testing.T) {
	dst := &countWriter{}
	w := NewWriter(dst, 8)

	payload := bytes.Repeat([]byte("z"), 32)
	if _, err := w.Write(payload); err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(dst.writes) != 1 || len(dst.writes[0]) != 32 {
		t.Errorf("expected direct large write, got %v", dst.writes)
	}
	if w.Buffered() != 0 {
		t.Error("nothing should remain buffered")
	}
}

func TestWriter_FlushOnFull(t *testing.T) {
	dst := &countWriter{}
	w := NewWriter(dst, 4)

	if _, err := w.Write([]byte("ab")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := w.Write([]byte("cdef")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(dst.writes) != 1 || !bytes.Equal(dst.writes[0], []byte("abcd")) {
		t.Errorf("expected flush of full buffer, got %v", dst.writes)
	}
	if w.Buffered() != 2 {
		t.Errorf("expected 2 bytes pending, got %d", w.Buffered())
	}
}

func TestFixed_ReadsToEOF(t *testing.T) {
	f := NewFixed([]byte("abc"))

	p := make([]byte, 2)
	n, err := f.Read(p)
	if err != nil || n != 2 {
		t.Fatalf("read: n=%d err=%v", n, err)
	}
	if f.Remaining() != 1 {
		t.Errorf("expected 1 remaining, got %d", f.Remaining())
	}

	n, err = f.Read(p)
	if err != nil || n != 1 {
		t.Fatalf("read: n=%d err=%v", n, err)
	}
	if _, err := f.Read(p); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestFixedWriter_StopsAtCapacity(t *testing.T) {
	w := NewFixedWriter(make([]byte, 4))

	n, err := w.Write([]byte("ab"))
	if err != nil || n != 2 {
		t.Fatalf("write: n=%d err=%v", n, err)
	}

	n, err = w.Write([]byte("cdef"))
	if err != io.ErrShortWrite {
		t.Errorf("expected ErrShortWrite, got %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 bytes accepted, got %d", n)
	}
	if !bytes.Equal(w.Bytes(), []byte("abcd")) {
		t.Errorf("expected 'abcd', got %q", w.Bytes())
	}
}

func TestCountingWriter(t *testing.T) {
	var sink bytes.Buffer
	w := NewCountingWriter(&sink)

	w.Write([]byte("12345")) //nolint:errcheck
	w.Write([]byte("678"))   //nolint:errcheck

	if w.Count() != 8 {
		t.Errorf("expected count 8, got %d", w.Count())
	}
	if sink.String() != "12345678" {
		t.Errorf("data not forwarded: %q", sink.String())
	}
}

func TestMultiWriter(t *testing.T) {
	var a, b bytes.Buffer
	w := NewMultiWriter(&a, &b)

	if _, err := w.Write([]byte("fan")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if a.String() != "fan" || b.String() != "fan" {
		t.Errorf("expected fan-out, got %q/%q", a.String(), b.String())
	}

	failing := &countWriter{err: errors.New("down")}
	w = NewMultiWriter(&a, failing, &b)
	if _, err := w.Write([]byte("x")); err == nil {
		t.Error("expected first error to propagate")
	}
	if a.String() != "fanx" {
		t.Error("destinations before the failure must receive data")
	}
	if b.String() != "fan" {
		t.Error("destinations after the failure must not receive data")
	}
}

func TestDiscard(t *testing.T) {
	n, err := Discard.Write(bytes.Repeat([]byte("x"), 1000))
	if err != nil || n != 1000 {
		t.Errorf("discard must accept everything: n=%d err=%v", n, err)
	}
}

func TestStdioDescriptors(t *testing.T) {
	in := Stdin("in")
	if in.Handle != int(os.Stdin.Fd()) || in.Direction != iomux.Input || in.ID != "in" {
		t.Errorf("unexpected stdin descriptor: %+v", in)
	}
	out := Stdout("out")
	if out.Handle != int(os.Stdout.Fd()) || out.Direction != iomux.Output {
		t.Errorf("unexpected stdout descriptor: %+v", out)
	}
	errd := Stderr("err")
	if errd.Handle != int(os.Stderr.Fd()) || errd.Direction != iomux.Output {
		t.Errorf("unexpected stderr descriptor: %+v", errd)
	}
}
