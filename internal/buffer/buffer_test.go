package buffer

import (
	"flag"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/five82/listsync/internal/diff"
)

func init() {
	flag.Set("logtostderr", "true")
	flag.Set("v", "1")
}

// recorder logs every callback as a string and keeps a replica built only
// from the edits it receives.
type recorder struct {
	mu       sync.Mutex
	events   []string
	replica  []int
	onChange func(diff.Edit[int])
}

func (r *recorder) OnBatchWillChange() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "will")
}

func (r *recorder) OnBatchDidChange() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "did")
}

func (r *recorder) OnChange(e diff.Edit[int]) {
	r.mu.Lock()
	r.events = append(r.events, fmt.Sprintf("%s %d@%d", e.Kind, e.Value, e.Index))
	r.replica = diff.Patch(r.replica, e)
	hook := r.onChange
	r.mu.Unlock()
	if hook != nil {
		hook(e)
	}
}

func (r *recorder) take() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.events
	r.events = nil
	return out
}

func (r *recorder) items() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.replica)
}

func newTestBuffer(t *testing.T, opts ...Option[int]) *Buffer[int] {
	t.Helper()
	b := New(opts...)
	t.Cleanup(b.Close)
	return b
}

func TestBuffer_SynchronousNotificationOrder(t *testing.T) {
	b := newTestBuffer(t)
	rec := &recorder{}
	b.Register(rec)

	b.Submit([]int{1, 5, 3, 2})
	got := rec.take()
	want := []string{"will", "INSERT 2@0", "INSERT 3@0", "INSERT 5@0", "INSERT 1@0", "did"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}

	b.Submit([]int{1, 3, 2, 6, 6})
	got = rec.take()
	want = []string{"will", "INSERT 6@4", "INSERT 6@4", "DELETE 5@1", "did"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}

	if c := b.Collection(); !reflect.DeepEqual(c, []int{1, 3, 2, 6, 6}) {
		t.Fatalf("Collection() = %v, want [1 3 2 6 6]", c)
	}
	if r := rec.items(); !reflect.DeepEqual(r, b.Collection()) {
		t.Fatalf("replica = %v, want %v", r, b.Collection())
	}
}

func TestBuffer_UnchangedSubmissionIsSilent(t *testing.T) {
	b := newTestBuffer(t)
	rec := &recorder{}
	b.Register(rec)

	b.Submit([]int{1, 2})
	rec.take()

	b.Submit([]int{1, 2})
	if got := rec.take(); len(got) != 0 {
		t.Fatalf("events = %v, want none", got)
	}
	if s := b.Stats(); s.Passes != 2 || s.Edits != 2 {
		t.Fatalf("Stats() = %+v, want 2 passes and 2 edits", s)
	}
}

func TestBuffer_TransformSortsPrivateCopy(t *testing.T) {
	b := newTestBuffer(t, WithTransform(func(v []int) []int {
		slices.Sort(v)
		return v
	}))
	rec := &recorder{}
	b.Register(rec)

	first := []int{1, 5, 3, 2}
	b.Submit(first)
	if !reflect.DeepEqual(first, []int{1, 5, 3, 2}) {
		t.Fatalf("submitted slice mutated to %v", first)
	}
	rec.take()

	b.Submit([]int{1, 3, 2, 6, 6})
	got := rec.take()
	want := []string{"will", "SUBSTITUTE 6@3", "INSERT 6@3", "did"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}

	b.Submit(first)
	if c := b.Collection(); !reflect.DeepEqual(c, []int{1, 2, 3, 5}) {
		t.Fatalf("Collection() = %v, want [1 2 3 5]", c)
	}
	if r := rec.items(); !reflect.DeepEqual(r, b.Collection()) {
		t.Fatalf("replica = %v, want %v", r, b.Collection())
	}
}

func TestBuffer_SubmitCopiesInput(t *testing.T) {
	b := newTestBuffer(t)
	items := []int{1, 2, 3}
	b.Submit(items)
	items[0] = 99

	if c := b.Collection(); c[0] != 1 {
		t.Fatalf("Collection()[0] = %d, want 1", c[0])
	}
	c := b.Collection()
	c[1] = 42
	if again := b.Collection(); again[1] != 2 {
		t.Fatalf("Collection should return a copy; got %v", again)
	}
}

func TestBuffer_EqualityPredicate(t *testing.T) {
	b := NewFunc(func(a, b string) bool { return a == b })
	t.Cleanup(b.Close)

	var edits []diff.Edit[string]
	b.Register(NewSubscriberFunc(func(e diff.Edit[string]) {
		edits = append(edits, e)
	}))

	b.SetEqual(strings.EqualFold)
	b.Submit([]string{"alpha", "beta"})
	edits = nil

	b.Submit([]string{"ALPHA", "Beta"})
	if len(edits) != 0 {
		t.Fatalf("edits = %v, want none under case-folding", edits)
	}
	if c := b.Collection(); !reflect.DeepEqual(c, []string{"ALPHA", "Beta"}) {
		t.Fatalf("Collection() = %v, want the latest values", c)
	}

	b.SetEqual(nil)
	b.Submit([]string{"alpha", "Beta"})
	if len(edits) != 1 || edits[0].Kind != diff.Substitute || edits[0].Value != "alpha" {
		t.Fatalf("edits = %v, want one substitution after restoring ==", edits)
	}
}

func TestBuffer_DuplicateRegistrationNotifiesOnce(t *testing.T) {
	b := newTestBuffer(t)
	rec := &recorder{}
	b.Register(rec)
	b.Register(rec)
	if n := b.Subscribers(); n != 1 {
		t.Fatalf("Subscribers() = %d, want 1", n)
	}

	b.Submit([]int{7})
	got := rec.take()
	want := []string{"will", "INSERT 7@0", "did"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
}

func TestBuffer_UnregisterUnknownIsNoop(t *testing.T) {
	b := newTestBuffer(t)
	rec := &recorder{}
	b.Unregister(rec)
	b.Unregister(nil)

	b.Register(rec)
	b.Unregister(&recorder{})
	if n := b.Subscribers(); n != 1 {
		t.Fatalf("Subscribers() = %d, want 1", n)
	}

	b.Unregister(rec)
	b.Submit([]int{1})
	if got := rec.take(); len(got) != 0 {
		t.Fatalf("events = %v, want none after Unregister", got)
	}
}

func TestBuffer_UnregisterFromCallbackFinishesBatch(t *testing.T) {
	b := newTestBuffer(t)
	rec := &recorder{}
	rec.onChange = func(diff.Edit[int]) { b.Unregister(rec) }
	other := &recorder{}
	b.Register(rec)
	b.Register(other)

	b.Submit([]int{1, 2})
	got := rec.take()
	want := []string{"will", "INSERT 2@0", "INSERT 1@0", "did"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}

	b.Submit([]int{3})
	if got := rec.take(); len(got) != 0 {
		t.Fatalf("events after self-unregister = %v, want none", got)
	}
	if r := other.items(); !reflect.DeepEqual(r, []int{3}) {
		t.Fatalf("other replica = %v, want [3]", r)
	}
}

func TestBuffer_ReentrantSubmitPanics(t *testing.T) {
	b := newTestBuffer(t)

	var recovered any
	b.Register(NewSubscriberFunc(func(diff.Edit[int]) {
		defer func() { recovered = recover() }()
		b.Submit([]int{2})
	}))

	b.Submit([]int{1})
	if recovered == nil {
		t.Fatal("re-entrant Submit did not panic")
	}
	if c := b.Collection(); !reflect.DeepEqual(c, []int{1}) {
		t.Fatalf("Collection() = %v, want [1]", c)
	}
}

func TestBuffer_SubmitAfterClosePanics(t *testing.T) {
	b := New[int]()
	b.Close()
	b.Close()

	defer func() {
		if recover() == nil {
			t.Fatal("Submit after Close did not panic")
		}
	}()
	b.Submit([]int{1})
}

func TestRegistry_RejectsUncomparableSubscribers(t *testing.T) {
	var r Registry[int]

	defer func() {
		if recover() == nil {
			t.Fatal("Register of an uncomparable value did not panic")
		}
	}()
	r.Register(sliceSubscriber{})
}

type sliceSubscriber []diff.Edit[int]

func (sliceSubscriber) OnChange(diff.Edit[int]) {}

func TestBuffer_AsynchronousCoalescesToLatest(t *testing.T) {
	b := newTestBuffer(t, WithAsynchronous[int](true))

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	rec := &recorder{}
	rec.onChange = func(diff.Edit[int]) {
		once.Do(func() {
			close(entered)
			<-release
		})
	}
	b.Register(rec)

	b.Submit([]int{1}) // A
	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("worker never started the first pass")
	}

	b.Submit([]int{2}) // B
	b.Submit([]int{3}) // C
	close(release)
	b.Flush()

	got := rec.take()
	want := []string{"will", "INSERT 1@0", "did", "will", "SUBSTITUTE 3@0", "did"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}

	s := b.Stats()
	if s.Passes != 2 || s.Submitted != 3 || s.Published != 3 {
		t.Fatalf("Stats() = %+v, want 2 passes over 3 submissions", s)
	}
	if s.Coalesced() != 1 {
		t.Fatalf("Coalesced() = %d, want 1", s.Coalesced())
	}
}

func TestBuffer_AsynchronousReplicaConverges(t *testing.T) {
	b := newTestBuffer(t)
	b.SetAsynchronous(true)
	if !b.Asynchronous() {
		t.Fatal("Asynchronous() = false after SetAsynchronous(true)")
	}
	rec := &recorder{}
	b.Register(rec)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for n := 0; n < 200; n++ {
			_ = b.Collection()
			_ = b.Len()
		}
	}()

	var last []int
	for i := 0; i < 100; i++ {
		last = []int{i % 7, i % 3, i, i % 5}
		b.Submit(last)
	}
	b.Flush()
	<-done

	if c := b.Collection(); !reflect.DeepEqual(c, last) {
		t.Fatalf("Collection() = %v, want %v", c, last)
	}
	if r := rec.items(); !reflect.DeepEqual(r, last) {
		t.Fatalf("replica = %v, want %v", r, last)
	}
	if s := b.Stats(); s.Passes > s.Submitted || s.Published != 100 {
		t.Fatalf("Stats() = %+v, want published=100 and passes <= submitted", s)
	}
}

func TestBuffer_CloseDrainsPendingWork(t *testing.T) {
	b := New(WithAsynchronous[int](true))
	rec := &recorder{}
	b.Register(rec)

	b.Submit([]int{4, 5})
	b.Close()

	if r := rec.items(); !reflect.DeepEqual(r, []int{4, 5}) {
		t.Fatalf("replica = %v, want [4 5] after Close", r)
	}
}
