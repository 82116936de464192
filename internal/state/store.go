package state

import (
	"sync"
	"time"
)

// Snapshot is the latest value of a polled resource.
type Snapshot[T any] struct {
	Value       T
	Has         bool
	LastUpdated time.Time
	LastError   error
	Failures    int // consecutive failed writes
}

// Stale reports whether the last two or more writes failed.
func (s Snapshot[T]) Stale() bool {
	return s.Failures >= 2
}

// Latest holds the most recently written value of one resource. The zero
// value is ready to use.
type Latest[T any] struct {
	mu       sync.RWMutex
	snapshot Snapshot[T]
	clone    func(T) T
}

// NewLatest returns a Latest that copies values with clone on read. A nil
// clone returns values as stored.
func NewLatest[T any](clone func(T) T) *Latest[T] {
	return &Latest[T]{clone: clone}
}

// Set replaces the value wholesale. Concurrent writers are not ordered: the
// write that completes last wins.
func (l *Latest[T]) Set(v T) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.snapshot.Value = v
	l.snapshot.Has = true
	l.snapshot.LastError = nil
	l.snapshot.LastUpdated = time.Now()
	l.snapshot.Failures = 0
}

// Fail records err and keeps the previous value.
func (l *Latest[T]) Fail(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.snapshot.LastError = err
	l.snapshot.LastUpdated = time.Now()
	l.snapshot.Failures++
}

// Reset drops the value, used when the polled subject changes.
func (l *Latest[T]) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.snapshot = Snapshot[T]{}
}

// Snapshot returns a copy of the current state.
func (l *Latest[T]) Snapshot() Snapshot[T] {
	l.mu.RLock()
	defer l.mu.RUnlock()

	snap := l.snapshot
	if l.clone != nil && snap.Has {
		snap.Value = l.clone(snap.Value)
	}
	return snap
}

// CloneSlice is a clone function for slice values.
func CloneSlice[E any](in []E) []E {
	if in == nil {
		return nil
	}
	out := make([]E, len(in))
	copy(out, in)
	return out
}
