package snapshot

import (
	"slices"
	"sync"

	"github.com/theoremus-urban-solutions/assettrack/asset"
)

// Store is the single source of truth for which assets exist right now
type Store struct {
	mu          sync.RWMutex
	current     asset.Snapshot
	generation  uint64
	subscribers []subscriber
	nextSubID   int
}

type subscriber struct {
	id int
	fn func(asset.Snapshot)
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		current: asset.Snapshot{},
	}
}

// Replace swaps the held snapshot and notifies subscribers.
// Subscribers run after the lock is released, in the caller's goroutine.
func (s *Store) Replace(next asset.Snapshot) {
	held := next.Clone()
	s.mu.Lock()
	s.current = held
	s.generation++
	subs := slices.Clone(s.subscribers)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(held.Clone())
	}
}

// Current returns a copy of the latest snapshot; empty before the first Replace
func (s *Store) Current() asset.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Len returns the number of records in the latest snapshot
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.current)
}

// Generation counts how many snapshots have been applied
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Subscribe registers fn to be called after every Replace, in registration order.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(asset.Snapshot)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		s.subscribers = slices.DeleteFunc(s.subscribers, func(sub subscriber) bool { return sub.id == id })
		s.mu.Unlock()
	}
}
