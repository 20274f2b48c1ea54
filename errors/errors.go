package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Op indicates which operation the error occurred in
type Op string

const (
	OpNew     Op = "new"     // multiplexer construction
	OpPoll    Op = "poll"    // the poll servicing pass
	OpWait    Op = "wait"    // batched readiness check
	OpRead    Op = "read"    // draining an input stream
	OpWrite   Op = "write"   // flushing an output stream
	OpReserve Op = "reserve" // buffer growth
)

// Kind categorizes the error
type Kind string

const (
	KindAllocation Kind = "allocation" // buffer growth cannot be satisfied
	KindIO         Kind = "io"         // a read, write, or readiness syscall failed
	KindConfig     Kind = "config"     // invalid construction input
	KindUnknown    Kind = "unknown"    // stream ID not configured
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause  error
	Op     Op
	Kind   Kind
	Stream string // stream ID, when the error is attributable to one stream
	Handle int    // OS handle, valid when Stream is set
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Op))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Stream != "" {
		b.WriteString(" on stream ")
		b.WriteString(strconv.Quote(e.Stream))
		b.WriteString(" (fd ")
		b.WriteString(strconv.Itoa(e.Handle))
		b.WriteByte(')')
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Op == t.Op && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(op Op, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Op:   op,
			Kind: kind,
		},
	}
}

// Stream sets the stream ID and handle the error is attributable to
func (b *Builder) Stream(id string, handle int) *Builder {
	b.err.Stream = id
	b.err.Handle = handle
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// IO wraps a failed syscall on one stream
func IO(op Op, id string, handle int, cause error) *Error {
	return &Error{
		Op:     op,
		Kind:   KindIO,
		Stream: id,
		Handle: handle,
		Cause:  cause,
	}
}

// Allocation reports a buffer reserve that would exceed the configured limit
func Allocation(op Op, id string, handle int, need, limit int) *Error {
	return &Error{
		Op:     op,
		Kind:   KindAllocation,
		Stream: id,
		Handle: handle,
		Detail: fmt.Sprintf("need %d bytes, limit %d", need, limit),
	}
}

// Config reports invalid construction input
func Config(detail string, args ...any) *Error {
	return &Error{
		Op:     OpNew,
		Kind:   KindConfig,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// kindOf extracts the Kind from the outermost *Error in the chain
func kindOf(err error) Kind {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return ""
}

// IsAllocation reports whether err is an allocation-kind error
func IsAllocation(err error) bool {
	return kindOf(err) == KindAllocation
}

// IsIO reports whether err is an io-kind error
func IsIO(err error) bool {
	return kindOf(err) == KindIO
}
