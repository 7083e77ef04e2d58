package buffer

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/golang/glog"

	"github.com/five82/listsync/internal/diff"
)

// Option configures a Buffer at construction time.
type Option[T any] func(*Buffer[T])

// WithAsynchronous runs recompute passes on the buffer's worker goroutine.
func WithAsynchronous[T any](enabled bool) Option[T] {
	return func(b *Buffer[T]) {
		b.async.Store(enabled)
	}
}

// WithEqual overrides the element equality predicate.
func WithEqual[T any](equal func(a, b T) bool) Option[T] {
	return func(b *Buffer[T]) {
		if equal != nil {
			b.equal = equal
		}
	}
}

// WithTransform sets the pre-diff transform, for example a sort.
func WithTransform[T any](transform func([]T) []T) Option[T] {
	return func(b *Buffer[T]) {
		b.transform = transform
	}
}

// Stats reports counters for a buffer.
type Stats struct {
	Submitted uint64 // versions handed to Submit
	Published uint64 // version of the published snapshot
	Passes    uint64 // recompute passes that diffed a new version
	Edits     uint64 // edit operations delivered
}

// Coalesced is the number of submitted versions that were never diffed.
func (s Stats) Coalesced() uint64 {
	if s.Published > s.Passes {
		return s.Published - s.Passes
	}
	return 0
}

type version[T any] struct {
	seq   uint64
	items []T
}

// Buffer holds an observable ordered collection. Each Submit replaces the
// collection wholesale; subscribers receive the minimal edit script between
// the previously published collection and the new one.
type Buffer[T any] struct {
	registry Registry[T]

	// Owner goroutine state.
	submitting atomic.Bool
	closed     atomic.Bool
	async      atomic.Bool
	nextSeq    uint64

	// Latest submitted version; swapped whole by Submit, read once per pass.
	pending atomic.Pointer[version[T]]

	// computeMu is held for the duration of a recompute pass and guards the
	// fields below it.
	computeMu    sync.Mutex
	computed     *sync.Cond
	equal        func(a, b T) bool
	defaultEqual func(a, b T) bool
	transform    func([]T) []T
	applied      uint64

	snapMu    sync.RWMutex
	published []T

	submitted atomic.Uint64
	appliedN  atomic.Uint64
	passes    atomic.Uint64
	edits     atomic.Uint64

	kick      chan struct{}
	stop      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New creates a buffer comparing elements with ==. The buffer starts its
// worker goroutine immediately; call Close when done.
func New[T comparable](opts ...Option[T]) *Buffer[T] {
	return NewFunc(func(a, b T) bool { return a == b }, opts...)
}

// NewFunc creates a buffer for element types without a usable == operator.
// equal becomes the default predicate restored by SetEqual(nil).
func NewFunc[T any](equal func(a, b T) bool, opts ...Option[T]) *Buffer[T] {
	if equal == nil {
		panic("buffer: NewFunc requires an equality predicate")
	}
	b := &Buffer[T]{
		equal:        equal,
		defaultEqual: equal,
		kick:         make(chan struct{}, 1),
		stop:         make(chan struct{}),
	}
	b.computed = sync.NewCond(&b.computeMu)
	for _, opt := range opts {
		opt(b)
	}

	b.wg.Add(1)
	go b.run()
	return b
}

// Submit replaces the pending collection and schedules a recompute. In
// synchronous mode the recompute, including every subscriber callback, runs
// before Submit returns. In asynchronous mode Submit returns immediately and
// submissions that arrive while a pass is running collapse into one follow-up
// pass against the latest collection.
//
// Submit must only be called from the goroutine that owns the buffer.
// Concurrent or re-entrant calls panic.
func (b *Buffer[T]) Submit(items []T) {
	if !b.submitting.CompareAndSwap(false, true) {
		panic("buffer: Submit called concurrently or from a subscriber callback")
	}
	defer b.submitting.Store(false)

	if b.closed.Load() {
		panic("buffer: Submit after Close")
	}

	b.nextSeq++
	b.pending.Store(&version[T]{seq: b.nextSeq, items: slices.Clone(items)})
	b.submitted.Store(b.nextSeq)

	if !b.async.Load() {
		b.recompute()
		return
	}
	select {
	case b.kick <- struct{}{}:
	default:
		// A kick is already queued; the worker will read the latest version.
	}
}

// Collection returns a copy of the published collection. It is safe to call
// from any goroutine and reflects the last completed recompute.
func (b *Buffer[T]) Collection() []T {
	b.snapMu.RLock()
	defer b.snapMu.RUnlock()
	return slices.Clone(b.published)
}

// Len returns the length of the published collection.
func (b *Buffer[T]) Len() int {
	b.snapMu.RLock()
	defer b.snapMu.RUnlock()
	return len(b.published)
}

// SetAsynchronous switches between inline and worker recomputes.
func (b *Buffer[T]) SetAsynchronous(enabled bool) {
	b.async.Store(enabled)
}

// Asynchronous reports the current scheduling mode.
func (b *Buffer[T]) Asynchronous() bool {
	return b.async.Load()
}

// SetEqual replaces the equality predicate. nil restores the default.
func (b *Buffer[T]) SetEqual(equal func(a, b T) bool) {
	b.computeMu.Lock()
	defer b.computeMu.Unlock()
	if equal == nil {
		equal = b.defaultEqual
	}
	b.equal = equal
}

// SetTransform replaces the pre-diff transform. The transform receives a
// private copy of each submitted collection and may modify it in place.
func (b *Buffer[T]) SetTransform(transform func([]T) []T) {
	b.computeMu.Lock()
	defer b.computeMu.Unlock()
	b.transform = transform
}

// Register adds a subscriber. Registering the same subscriber twice has no
// effect.
func (b *Buffer[T]) Register(sub Subscriber[T]) {
	b.registry.Register(sub)
}

// Unregister removes a subscriber. Unknown subscribers are ignored.
func (b *Buffer[T]) Unregister(sub Subscriber[T]) {
	b.registry.Unregister(sub)
}

// Subscribers returns the number of registered subscribers.
func (b *Buffer[T]) Subscribers() int {
	return b.registry.Len()
}

// Flush blocks until every submitted collection has been published or
// coalesced away. It must not be called from a subscriber callback.
func (b *Buffer[T]) Flush() {
	b.computeMu.Lock()
	defer b.computeMu.Unlock()
	for {
		v := b.pending.Load()
		if v == nil || b.applied >= v.seq {
			return
		}
		b.computed.Wait()
	}
}

// Stats returns a snapshot of the buffer counters.
func (b *Buffer[T]) Stats() Stats {
	return Stats{
		Submitted: b.submitted.Load(),
		Published: b.appliedN.Load(),
		Passes:    b.passes.Load(),
		Edits:     b.edits.Load(),
	}
}

// Close drains outstanding work and stops the worker goroutine. Submit must
// not be called after Close.
func (b *Buffer[T]) Close() {
	b.closeOnce.Do(func() {
		b.closed.Store(true)
		close(b.stop)
		b.wg.Wait()
	})
}

func (b *Buffer[T]) run() {
	defer b.wg.Done()
	for {
		select {
		case <-b.kick:
			b.recompute()
		case <-b.stop:
			b.recompute()
			return
		}
	}
}

// recompute publishes pending versions until none is newer than the one just
// diffed. Only the latest version at the start of each pass is used.
func (b *Buffer[T]) recompute() {
	b.computeMu.Lock()
	defer b.computeMu.Unlock()

	for {
		v := b.pending.Load()
		if v == nil || v.seq <= b.applied {
			return
		}
		b.publish(v)
		b.applied = v.seq
		b.appliedN.Store(v.seq)
		b.passes.Add(1)
		b.computed.Broadcast()
	}
}

func (b *Buffer[T]) publish(v *version[T]) {
	candidate := slices.Clone(v.items)
	if b.transform != nil {
		candidate = b.transform(candidate)
	}

	// published is only written while computeMu is held, which it is here.
	edits := diff.ComputeFunc(b.published, candidate, b.equal)
	subs := b.registry.Snapshot()

	if len(edits) > 0 {
		for _, sub := range subs {
			if bs, ok := sub.(BatchSubscriber); ok {
				bs.OnBatchWillChange()
			}
		}
	}

	b.snapMu.Lock()
	b.published = candidate
	b.snapMu.Unlock()

	for _, edit := range edits {
		for _, sub := range subs {
			sub.OnChange(edit)
		}
	}

	if len(edits) > 0 {
		for _, sub := range subs {
			if bs, ok := sub.(BatchSubscriber); ok {
				bs.OnBatchDidChange()
			}
		}
	}

	b.edits.Add(uint64(len(edits)))
	if glog.V(1) {
		glog.Infof("[buffer] published v=%d items=%d edits=%d subscribers=%d\n", v.seq, len(candidate), len(edits), len(subs))
	}
}
