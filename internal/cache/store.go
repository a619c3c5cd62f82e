package cache

import (
	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// Store is the bounded container behind a Cache.
//
// Recency is strict LRU: Insert and Lookup both mark a key as most recently
// used, and overflowing the capacity evicts the least recently used key.
// onEvicted runs synchronously, before Insert returns, once per capacity
// eviction. Explicit Remove and Purge never invoke it.
type Store[K comparable, V any] struct {
	lru       *simplelru.LRU[K, Entry[K, V]]
	capacity  int
	onEvicted func(Entry[K, V])

	// Set while the store itself drops entries, so that simplelru's callback
	// only reports capacity evictions.
	explicit bool
}

// NewStore creates a Store holding at most capacity entries.
func NewStore[K comparable, V any](capacity int, onEvicted func(Entry[K, V])) (*Store[K, V], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	s := &Store[K, V]{
		capacity:  capacity,
		onEvicted: onEvicted,
	}
	lru, err := simplelru.NewLRU[K, Entry[K, V]](capacity, s.evicted)
	if err != nil {
		return nil, err
	}
	s.lru = lru
	return s, nil
}

func (s *Store[K, V]) evicted(_ K, e Entry[K, V]) {
	if s.explicit || s.onEvicted == nil {
		return
	}
	s.onEvicted(e)
}

// Insert stores a copy of e under key, replacing any previous entry.
//
// The just-inserted key is the most recently used one, so with capacity >= 1
// it is never the eviction victim.
func (s *Store[K, V]) Insert(key K, e Entry[K, V]) {
	s.lru.Add(key, e.clone())
}

// Lookup returns a copy of the entry for key and marks it most recently used.
func (s *Store[K, V]) Lookup(key K) (Entry[K, V], bool) {
	e, ok := s.lru.Get(key)
	return e.clone(), ok
}

// Peek returns a copy of the entry for key without updating recency.
func (s *Store[K, V]) Peek(key K) (Entry[K, V], bool) {
	e, ok := s.lru.Peek(key)
	return e.clone(), ok
}

// Contains reports presence without updating recency.
func (s *Store[K, V]) Contains(key K) bool {
	return s.lru.Contains(key)
}

// Remove drops key if present.
func (s *Store[K, V]) Remove(key K) {
	s.explicit = true
	defer func() { s.explicit = false }()
	s.lru.Remove(key)
}

// Purge drops every entry.
func (s *Store[K, V]) Purge() {
	s.explicit = true
	defer func() { s.explicit = false }()
	s.lru.Purge()
}

// Len returns the number of stored entries.
func (s *Store[K, V]) Len() int { return s.lru.Len() }

// Capacity returns the maximum number of entries.
func (s *Store[K, V]) Capacity() int { return s.capacity }

// Keys returns keys in MRU -> LRU order.
func (s *Store[K, V]) Keys() []K {
	oldestFirst := s.lru.Keys()
	out := make([]K, 0, len(oldestFirst))
	for i := len(oldestFirst) - 1; i >= 0; i-- {
		out = append(out, oldestFirst[i])
	}
	return out
}
