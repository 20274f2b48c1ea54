package mux

import (
	"time"

	"go.uber.org/zap"

	"github.com/wippyai/iomux"
	"github.com/wippyai/iomux/errors"
	"github.com/wippyai/iomux/fifo"
	"github.com/wippyai/iomux/poll"
)

// ignoredHandle marks an inactive slot's readiness request; the Waiter
// contract requires negative handles to be skipped, not errored.
const ignoredHandle = -1

type slotState uint8

const (
	slotActive slotState = iota
	slotInactive
)

// slot is the bookkeeping record for one configured stream.
type slot struct {
	buf    *fifo.Buffer
	id     string
	handle int
	dir    iomux.Direction
	state  slotState
	events iomux.Events // latest readiness result
}

// Mux multiplexes a fixed, named set of streams. The stream set cannot
// grow or shrink after construction; streams only leave the readiness set
// through the retirement transitions described in the package comment.
type Mux struct {
	waiter    iomux.Waiter
	transport iomux.Transport
	index     map[string]int
	slots     []slot
	reqs      []iomux.Request // one per slot, reused across polls
	results   []iomux.Events
	timeout   time.Duration
	headroom  int
}

// New builds a Mux with one slot per descriptor, in the given order. That
// order is the tie-break order when several streams are ready in the same
// Poll call. IDs must be unique and non-empty.
func New(descs []iomux.Descriptor, opts ...Option) (*Mux, error) {
	cfg := config{
		waiter:    poll.Default(),
		transport: poll.Default(),
		timeout:   iomux.Unbounded,
		headroom:  fifo.DefaultHeadroom,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &Mux{
		waiter:    cfg.waiter,
		transport: cfg.transport,
		index:     make(map[string]int, len(descs)),
		slots:     make([]slot, 0, len(descs)),
		reqs:      make([]iomux.Request, len(descs)),
		results:   make([]iomux.Events, len(descs)),
		timeout:   cfg.timeout,
		headroom:  cfg.headroom,
	}

	for _, d := range descs {
		if d.ID == "" {
			return nil, errors.Config("descriptor with empty ID")
		}
		if _, dup := m.index[d.ID]; dup {
			return nil, errors.Config("duplicate stream ID %q", d.ID)
		}
		if d.Direction != iomux.Input && d.Direction != iomux.Output {
			return nil, errors.Config("stream %q: invalid direction %d", d.ID, d.Direction)
		}
		m.index[d.ID] = len(m.slots)
		m.slots = append(m.slots, slot{
			buf:    fifo.NewSized(cfg.headroom, cfg.limit),
			id:     d.ID,
			handle: d.Handle,
			dir:    d.Direction,
			state:  slotActive,
		})
	}

	return m, nil
}

// Poll performs one batched readiness check across all active streams and
// services every ready stream exactly once, in construction order. It
// blocks until at least one stream is ready, the configured wait timeout
// elapses, or the wait is interrupted; the latter two return nil without
// servicing anything. When every stream has already been retired, Poll
// returns nil immediately without invoking the readiness primitive.
//
// A read, write, or wait syscall failure aborts the call with an io-kind
// error; streams not yet serviced in that call are untouched and get
// re-evaluated on the next call. End-of-stream and zero-accepted writes
// are not errors; they retire the stream.
func (m *Mux) Poll() error {
	active := 0
	for i := range m.slots {
		s := &m.slots[i]
		s.events = 0
		if s.state != slotActive {
			m.reqs[i] = iomux.Request{Handle: ignoredHandle}
			continue
		}
		active++
		interest := iomux.Readable
		if s.dir == iomux.Output {
			interest = iomux.Writable
		}
		m.reqs[i] = iomux.Request{Handle: s.handle, Interest: interest}
	}
	if active == 0 {
		return nil
	}

	n, err := m.waiter.Wait(m.reqs, m.results, m.timeout)
	if err != nil {
		return errors.New(errors.OpWait, errors.KindIO).Cause(err).Build()
	}
	if n == 0 {
		// Spurious wake, timeout, or interrupt: a legitimate no-op.
		return nil
	}

	for i := range m.slots {
		m.slots[i].events = m.results[i]
	}
	for i := range m.slots {
		if err := m.service(&m.slots[i]); err != nil {
			return err
		}
	}
	return nil
}

// service applies one slot's latest readiness result.
func (m *Mux) service(s *slot) error {
	if s.state != slotActive || s.events == 0 {
		return nil
	}

	// A stream can report data and peer closure at once; drain first and
	// let a later poll retire the slot.
	if (s.events.Has(iomux.Err) || s.events.Has(iomux.Hangup)) && !s.events.Has(iomux.Readable) {
		m.retire(s, "hangup")
		return nil
	}

	switch s.dir {
	case iomux.Input:
		if !s.events.Has(iomux.Readable) {
			return nil
		}
		region, err := s.buf.ReserveWritable(m.headroom)
		if err != nil {
			return errors.New(errors.OpReserve, errors.KindAllocation).
				Stream(s.id, s.handle).
				Cause(err).
				Build()
		}
		n, err := m.transport.Read(s.handle, region)
		if err != nil {
			return errors.IO(errors.OpRead, s.id, s.handle, err)
		}
		s.buf.CommitWritten(n)
		if n == 0 {
			m.retire(s, "eof")
		}

	case iomux.Output:
		if !s.events.Has(iomux.Writable) {
			return nil
		}
		n, err := m.transport.Write(s.handle, s.buf.ReadableView(0))
		if err != nil {
			return errors.IO(errors.OpWrite, s.id, s.handle, err)
		}
		if n == 0 {
			m.retire(s, "closed")
			return nil
		}
		s.buf.Discard(n)
	}

	return nil
}

// retire permanently excludes a slot from future readiness checks.
func (m *Mux) retire(s *slot, reason string) {
	s.state = slotInactive
	Logger().Debug("stream retired",
		zap.String("stream", s.id),
		zap.Int("fd", s.handle),
		zap.String("reason", reason),
		zap.Int("buffered", s.buf.Len()),
	)
}

// Done reports whether every configured stream has been retired. The
// multiplexer performs no automatic looping; the caller invokes Poll
// until Done.
func (m *Mux) Done() bool {
	for i := range m.slots {
		if m.slots[i].state == slotActive {
			return false
		}
	}
	return true
}

// Buffer returns the FIFO buffer of the named stream, or nil if no such
// stream was configured. It is the sanctioned way to exchange data with a
// slot between Poll calls: consume from input buffers, preload output
// buffers.
func (m *Mux) Buffer(id string) *fifo.Buffer {
	i, ok := m.index[id]
	if !ok {
		return nil
	}
	return m.slots[i].buf
}

// Active reports whether the named stream is still in the readiness set.
// Unknown IDs report false.
func (m *Mux) Active(id string) bool {
	i, ok := m.index[id]
	if !ok {
		return false
	}
	return m.slots[i].state == slotActive
}

// IDs returns the stream IDs in construction order.
func (m *Mux) IDs() []string {
	ids := make([]string, len(m.slots))
	for i := range m.slots {
		ids[i] = m.slots[i].id
	}
	return ids
}
