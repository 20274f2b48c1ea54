package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Op:     OpRead,
				Kind:   KindIO,
				Stream: "out",
				Handle: 7,
				Detail: "short read",
				Cause:  errors.New("bad file descriptor"),
			},
			contains: []string{"[read]", "io", `"out"`, "fd 7", "short read", "bad file descriptor"},
		},
		{
			name: "minimal error",
			err: &Error{
				Op:   OpWait,
				Kind: KindIO,
			},
			contains: []string{"[wait]", "io"},
		},
		{
			name: "allocation with detail",
			err: &Error{
				Op:     OpReserve,
				Kind:   KindAllocation,
				Stream: "in",
				Handle: 3,
				Detail: "need 1024 bytes, limit 512",
			},
			contains: []string{"[reserve]", "allocation", `"in"`, "need 1024"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("error %q missing %q", msg, want)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := IO(OpWrite, "out", 4, cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if errors.Unwrap(err) != cause {
		t.Error("expected Unwrap to return the cause")
	}
}

func TestError_Is(t *testing.T) {
	a := IO(OpRead, "a", 1, errors.New("x"))
	b := IO(OpRead, "b", 2, errors.New("y"))
	c := IO(OpWrite, "a", 1, errors.New("x"))

	if !errors.Is(a, b) {
		t.Error("same op and kind should match")
	}
	if errors.Is(a, c) {
		t.Error("different op should not match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("boom")
	err := New(OpPoll, KindIO).
		Stream("log", 9).
		Cause(cause).
		Detail("slot %d", 2).
		Build()

	if err.Op != OpPoll || err.Kind != KindIO {
		t.Errorf("unexpected op/kind: %s/%s", err.Op, err.Kind)
	}
	if err.Stream != "log" || err.Handle != 9 {
		t.Errorf("unexpected stream: %s fd %d", err.Stream, err.Handle)
	}
	if err.Detail != "slot 2" {
		t.Errorf("unexpected detail: %q", err.Detail)
	}
	if err.Cause != cause {
		t.Error("cause not set")
	}
}

func TestKindPredicates(t *testing.T) {
	alloc := Allocation(OpReserve, "out", 3, 2048, 1024)
	io := IO(OpRead, "out", 3, errors.New("x"))
	wrapped := fmt.Errorf("poll failed: %w", io)

	if !IsAllocation(alloc) {
		t.Error("expected IsAllocation")
	}
	if IsAllocation(io) {
		t.Error("io error is not allocation")
	}
	if !IsIO(wrapped) {
		t.Error("expected IsIO through wrapping")
	}
	if IsIO(errors.New("plain")) {
		t.Error("plain error has no kind")
	}
}
