// Package poll provides the default readiness and transport collaborators
// for the multiplexer, implemented over the poll(2) syscall via
// golang.org/x/sys/unix.
//
// A Poller satisfies both iomux.Waiter and iomux.Transport: Wait maps a
// request set onto one batched poll(2) call, and Read/Write issue single
// syscalls on raw file descriptors. Handles are expected to be in blocking
// mode; readiness guarantees the single read or write that follows will
// not block.
//
// On non-unix platforms every operation fails with ErrUnsupported.
package poll
