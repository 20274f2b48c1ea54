// Package errors provides structured error types for the iomux library.
//
// Errors are categorized by Op (which operation failed) and Kind (error
// category). The Error type includes the stream ID and handle when the
// failure is attributable to one stream, plus a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.OpPoll, errors.KindIO).
//		Stream("out", fd).
//		Cause(syscallErr).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.IO(errors.OpRead, "out", fd, syscallErr)
//	err := errors.Allocation(errors.OpReserve, "out", fd, need, limit)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
