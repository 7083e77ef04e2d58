package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/five82/listsync/internal/buffer"
	"github.com/five82/listsync/internal/diff"
)

const defaultHistory = 200

// Change is one edit as seen by the consumer, tagged with its batch.
type Change struct {
	Batch ulid.ULID
	At    time.Time
	Kind  diff.Kind
	Index int
	Value string
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Source              string
	Items               []string
	Changes             []Change // oldest first
	Batches             int
	LastBatch           ulid.ULID
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the source has failed for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store is the consumer-side replica of a buffer. It subscribes to the
// buffer and rebuilds the list purely from the edits it is sent.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	history  int
	batch    ulid.ULID
	batchAt  time.Time
	changed  chan struct{}
}

var (
	_ buffer.Subscriber[string] = (*Store)(nil)
	_ buffer.BatchSubscriber    = (*Store)(nil)
)

// NewStore creates a store keeping at most history change log entries.
func NewStore(source string, history int) *Store {
	if history <= 0 {
		history = defaultHistory
	}
	return &Store{
		snapshot: Snapshot{Source: source},
		history:  history,
		changed:  make(chan struct{}, 1),
	}
}

// Changed is signalled after every completed batch and poll outcome. It
// holds at most one pending signal.
func (s *Store) Changed() <-chan struct{} {
	return s.changed
}

// OnBatchWillChange implements buffer.BatchSubscriber.
func (s *Store) OnBatchWillChange() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batch = ulid.Make()
	s.batchAt = time.Now()
}

// OnChange implements buffer.Subscriber. Edits arrive in emission order, so
// they apply to the replica without index shifting.
func (s *Store) OnChange(edit diff.Edit[string]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Items = diff.Patch(s.snapshot.Items, edit)
	s.snapshot.Changes = append(s.snapshot.Changes, Change{
		Batch: s.batch,
		At:    s.batchAt,
		Kind:  edit.Kind,
		Index: edit.Index,
		Value: edit.Value,
	})
	limit := s.history
	if limit <= 0 {
		limit = defaultHistory
	}
	if over := len(s.snapshot.Changes) - limit; over > 0 {
		n := copy(s.snapshot.Changes, s.snapshot.Changes[over:])
		s.snapshot.Changes = s.snapshot.Changes[:n]
	}
}

// OnBatchDidChange implements buffer.BatchSubscriber.
func (s *Store) OnBatchDidChange() {
	s.mu.Lock()
	s.snapshot.Batches++
	s.snapshot.LastBatch = s.batch
	s.snapshot.LastUpdated = time.Now()
	s.mu.Unlock()
	s.signal()
}

// RecordSuccess notes a successful poll.
func (s *Store) RecordSuccess() {
	s.mu.Lock()
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
	s.snapshot.LastUpdated = time.Now()
	s.mu.Unlock()
	s.signal()
}

// RecordError notes a failed poll. The replica is kept as is.
func (s *Store) RecordError(err error) {
	if err == nil {
		s.RecordSuccess()
		return
	}
	s.mu.Lock()
	s.snapshot.LastError = err
	s.snapshot.ConsecutiveFailures++
	s.snapshot.LastUpdated = time.Now()
	s.mu.Unlock()
	s.signal()
}

// ClearChanges empties the change log without touching the replica.
func (s *Store) ClearChanges() {
	s.mu.Lock()
	s.snapshot.Changes = nil
	s.mu.Unlock()
	s.signal()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Items = cloneSlice(s.snapshot.Items)
	snap.Changes = cloneSlice(s.snapshot.Changes)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func (s *Store) signal() {
	select {
	case s.changed <- struct{}{}:
	default:
	}
}

func cloneSlice[E any](items []E) []E {
	if len(items) == 0 {
		return nil
	}
	dup := make([]E, len(items))
	copy(dup, items)
	return dup
}
