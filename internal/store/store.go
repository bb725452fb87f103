// Package store implements the generic in-memory table backing both users
// and sessions.
//
// WHY A GENERIC STORE?
// Users and sessions need exactly the same persistence primitives: insert
// with a synthetic id, lookup by id, linear scan with a predicate, partial
// update, delete. Writing the table once with a type parameter means the
// repository and the session manager share one tested implementation
// instead of two copies.
//
// ID ASSIGNMENT:
// Ids come from a monotonic counter starting at 1 and are never reused,
// even after a delete. They are stored as strings ("1", "2", ...) so the
// rest of the system can treat them as opaque.
//
// SCAN ORDER:
// Go maps iterate in random order, but Find/FindOne/All must walk records
// in insertion order (FindOne returns the FIRST match). The store keeps an
// ordered slice of ids next to the map for that reason. Lookup by id stays
// O(1); scans are O(n) — there is no index support.
package store

import (
	"strconv"
	"sync"
)

// Record is the constraint every stored type must satisfy: id accessors so
// Insert can stamp the generated id, and Clone so read paths can hand out
// snapshots instead of references into the table.
type Record[T any] interface {
	RecordID() string
	SetRecordID(id string)
	Clone() T
}

// Store is an in-memory keyed table of T.
//
// Each exported method takes the mutex for its duration, so single
// operations are atomic even though the HTTP server calls from many
// goroutines. There are NO transactions across calls: a caller doing
// "check then insert" can race with another caller doing the same.
// Multi-step uniqueness checks live with the caller and carry that caveat.
//
// Every read path returns a Clone taken under the lock. Callers only ever
// hold snapshots, so they can read or scribble on a result while Update
// rewrites the stored record without the two racing.
type Store[T Record[T]] struct {
	mu      sync.RWMutex
	records map[string]T
	order   []string // ids in insertion order
	nextID  int
}

// New creates an empty Store.
func New[T Record[T]]() *Store[T] {
	return &Store[T]{
		records: make(map[string]T),
		nextID:  1,
	}
}

// Insert assigns the next id, stamps it on the record, and stores a clone,
// so the caller's value stays detached from the table. Uniqueness of any
// other field is the caller's responsibility.
func (s *Store[T]) Insert(record T) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strconv.Itoa(s.nextID)
	s.nextID++

	record.SetRecordID(id)
	s.records[id] = record.Clone()
	s.order = append(s.order, id)
	return record
}

// FindByID returns a snapshot of the record and true, or the zero value
// and false.
func (s *Store[T]) FindByID(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		var zero T
		return zero, false
	}
	return record.Clone(), true
}

// Find returns snapshots of all records matching the predicate, in
// insertion order.
func (s *Store[T]) Find(predicate func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []T
	for _, id := range s.order {
		if record, ok := s.records[id]; ok && predicate(record) {
			results = append(results, record.Clone())
		}
	}
	return results
}

// FindOne returns a snapshot of the first record (in insertion order)
// matching the predicate.
func (s *Store[T]) FindOne(predicate func(T) bool) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		if record, ok := s.records[id]; ok && predicate(record) {
			return record.Clone(), true
		}
	}
	var zero T
	return zero, false
}

// Update applies mutate to the record with the given id.
//
// The mutate closure is the partial-update mechanism: it overwrites exactly
// the fields the caller sets and leaves the rest alone. It runs under the
// write lock on the stored record itself; the return value is a snapshot.
// Returns false if the id is absent (mutate is not called).
func (s *Store[T]) Update(id string, mutate func(T)) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok {
		var zero T
		return zero, false
	}
	mutate(record)
	s.records[id] = record
	return record.Clone(), true
}

// Delete removes the record and reports whether it existed.
// The id is never handed out again — the counter does not rewind.
func (s *Store[T]) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return false
	}
	delete(s.records, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// All returns a snapshot of every record in insertion order.
// Both the slice and the records are freshly allocated; callers may do
// what they like with them.
func (s *Store[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]T, 0, len(s.order))
	for _, id := range s.order {
		if record, ok := s.records[id]; ok {
			results = append(results, record.Clone())
		}
	}
	return results
}

// Len returns the number of live records.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Clear removes every record and resets the id counter. Test helper.
func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]T)
	s.order = nil
	s.nextID = 1
}
