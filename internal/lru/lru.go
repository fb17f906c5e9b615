// Package lru provides the ordered associative store underlying the cache:
// a hash map from key to a node in a doubly linked recency list. Every read
// or write of a key moves it to the most-recently-used end; iteration runs
// from least to most recently used.
//
// The store holds no lock and enforces no limits. It has a single owner; the
// owner serializes access and applies eviction on top of RemoveOldest.
package lru

import (
	"container/list"
	"iter"
)

type item[K comparable, V any] struct {
	key   K
	value V
	size  int64
}

// Store is an ordered map with O(1) get/put/delete and move-to-end.
// The recency list keeps the most recently used entry at the front, so the
// least recently used entry is always at the back.
type Store[K comparable, V any] struct {
	elems map[K]*list.Element
	order *list.List
	size  int64
}

func New[K comparable, V any]() *Store[K, V] {
	return &Store[K, V]{
		elems: make(map[K]*list.Element),
		order: list.New(),
	}
}

// Get returns the value for key and marks it most recently used.
func (s *Store[K, V]) Get(key K) (V, bool) {
	elem, ok := s.elems[key]
	if !ok {
		var zero V
		return zero, false
	}
	s.order.MoveToFront(elem)
	return elem.Value.(*item[K, V]).value, true
}

// Peek returns the value for key without touching its recency.
func (s *Store[K, V]) Peek(key K) (V, bool) {
	elem, ok := s.elems[key]
	if !ok {
		var zero V
		return zero, false
	}
	return elem.Value.(*item[K, V]).value, true
}

// Put inserts or replaces the value for key and marks it most recently
// used. size is the caller's accounting cost for the entry.
func (s *Store[K, V]) Put(key K, value V, size int64) {
	if elem, ok := s.elems[key]; ok {
		it := elem.Value.(*item[K, V])
		s.size += size - it.size
		it.value = value
		it.size = size
		s.order.MoveToFront(elem)
		return
	}
	s.elems[key] = s.order.PushFront(&item[K, V]{key: key, value: value, size: size})
	s.size += size
}

// Delete removes key. The recency of the remaining entries is unaffected.
func (s *Store[K, V]) Delete(key K) bool {
	elem, ok := s.elems[key]
	if !ok {
		return false
	}
	s.removeElement(elem)
	return true
}

// Oldest returns the least recently used entry without removing it.
func (s *Store[K, V]) Oldest() (K, V, bool) {
	back := s.order.Back()
	if back == nil {
		var zk K
		var zv V
		return zk, zv, false
	}
	it := back.Value.(*item[K, V])
	return it.key, it.value, true
}

// RemoveOldest removes and returns the least recently used entry.
func (s *Store[K, V]) RemoveOldest() (K, V, bool) {
	back := s.order.Back()
	if back == nil {
		var zk K
		var zv V
		return zk, zv, false
	}
	it := back.Value.(*item[K, V])
	s.removeElement(back)
	return it.key, it.value, true
}

// Len returns the number of entries.
func (s *Store[K, V]) Len() int {
	return s.order.Len()
}

// Size returns the sum of the per-entry sizes passed to Put.
func (s *Store[K, V]) Size() int64 {
	return s.size
}

// Clear removes all entries.
func (s *Store[K, V]) Clear() {
	s.elems = make(map[K]*list.Element)
	s.order.Init()
	s.size = 0
}

// All iterates entries from least to most recently used. Each call yields a
// fresh sequence over the current state. The store must not be mutated while
// one pass is in progress; doing so is a precondition violation with
// undefined results, not a tolerated mode.
func (s *Store[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for elem := s.order.Back(); elem != nil; elem = elem.Prev() {
			it := elem.Value.(*item[K, V])
			if !yield(it.key, it.value) {
				return
			}
		}
	}
}

func (s *Store[K, V]) removeElement(elem *list.Element) {
	it := elem.Value.(*item[K, V])
	delete(s.elems, it.key)
	s.order.Remove(elem)
	s.size -= it.size
}
