package buffer

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/five82/listsync/internal/diff"
)

// Subscriber receives one call per edit operation, in emission order.
type Subscriber[T any] interface {
	OnChange(edit diff.Edit[T])
}

// BatchSubscriber is implemented by subscribers that want to know when a
// non-empty batch of edits starts and ends.
type BatchSubscriber interface {
	OnBatchWillChange()
	OnBatchDidChange()
}

// SubscriberFunc adapts a closure to Subscriber. Use it through the pointer
// returned by NewSubscriberFunc; the pointer is the registration identity.
type SubscriberFunc[T any] struct {
	fn func(diff.Edit[T])
}

// NewSubscriberFunc wraps fn. A nil fn yields a subscriber that ignores edits.
func NewSubscriberFunc[T any](fn func(diff.Edit[T])) *SubscriberFunc[T] {
	return &SubscriberFunc[T]{fn: fn}
}

// OnChange implements Subscriber.
func (s *SubscriberFunc[T]) OnChange(edit diff.Edit[T]) {
	if s == nil || s.fn == nil {
		return
	}
	s.fn(edit)
}

// Registry is an ordered set of subscribers keyed by identity. The zero value
// is ready to use and all methods are safe for concurrent use, including from
// inside a notification callback.
type Registry[T any] struct {
	mu   sync.Mutex
	subs []Subscriber[T]
}

// Register appends sub unless it is already present.
func (r *Registry[T]) Register(sub Subscriber[T]) {
	mustBeComparable(sub)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(sub) >= 0 {
		return
	}
	r.subs = append(r.subs, sub)
}

// Unregister removes sub. Unknown subscribers are ignored.
func (r *Registry[T]) Unregister(sub Subscriber[T]) {
	if sub == nil || !reflect.TypeOf(sub).Comparable() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexOf(sub)
	if idx < 0 {
		return
	}
	// Copy so snapshots handed out earlier keep their contents.
	next := make([]Subscriber[T], 0, len(r.subs)-1)
	next = append(next, r.subs[:idx]...)
	r.subs = append(next, r.subs[idx+1:]...)
}

// Len reports the number of registered subscribers.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}

// Snapshot returns the subscribers in registration order. Later registry
// changes do not affect the returned slice.
func (r *Registry[T]) Snapshot() []Subscriber[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.subs) == 0 {
		return nil
	}
	dup := make([]Subscriber[T], len(r.subs))
	copy(dup, r.subs)
	return dup
}

func (r *Registry[T]) indexOf(sub Subscriber[T]) int {
	for i, s := range r.subs {
		if s == sub {
			return i
		}
	}
	return -1
}

func mustBeComparable(sub any) {
	if sub == nil {
		panic("buffer: nil subscriber")
	}
	if typ := reflect.TypeOf(sub); !typ.Comparable() {
		panic(fmt.Sprintf("buffer: subscriber type %s is not comparable; register a pointer", typ))
	}
}
