package cache

import "container/list"

// KeyTracker is the set of keys currently held by a Store, in first-insertion
// order. It is what Serialize walks, so it must be kept in step with the
// Store: explicit removals go through Remove, capacity evictions through
// OnEvicted.
type KeyTracker[K comparable, V any] struct {
	items map[K]*list.Element
	order *list.List
}

// NewKeyTracker returns an empty tracker.
func NewKeyTracker[K comparable, V any]() *KeyTracker[K, V] {
	return &KeyTracker[K, V]{
		items: make(map[K]*list.Element),
		order: list.New(),
	}
}

// Add inserts key. A key already tracked keeps its position.
func (t *KeyTracker[K, V]) Add(key K) {
	if _, ok := t.items[key]; ok {
		return
	}
	t.items[key] = t.order.PushBack(key)
}

// Remove drops key; absent keys are ignored.
func (t *KeyTracker[K, V]) Remove(key K) {
	el, ok := t.items[key]
	if !ok {
		return
	}
	delete(t.items, key)
	t.order.Remove(el)
}

// OnEvicted is the Store eviction hook. It may be called for a key that is
// no longer tracked.
func (t *KeyTracker[K, V]) OnEvicted(e Entry[K, V]) {
	t.Remove(e.Key)
}

// Contains reports whether key is tracked.
func (t *KeyTracker[K, V]) Contains(key K) bool {
	_, ok := t.items[key]
	return ok
}

// Len returns the number of tracked keys.
func (t *KeyTracker[K, V]) Len() int {
	return len(t.items)
}

// Keys returns a snapshot of the tracked keys in insertion order.
func (t *KeyTracker[K, V]) Keys() []K {
	out := make([]K, 0, t.order.Len())
	for el := t.order.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(K))
	}
	return out
}

// Clear drops every key.
func (t *KeyTracker[K, V]) Clear() {
	clear(t.items)
	t.order.Init()
}
