package cache

import "time"

// Entry is a single cached record.
//
// The Store keeps its own copy of every entry, expiration included, so a
// caller holding an Entry can never observe or cause a change to the copy
// owned by the Store. Expiration is nil for entries that never expire.
type Entry[K comparable, V any] struct {
	Key        K          `json:"key"`
	Value      V          `json:"value"`
	Expiration *time.Time `json:"expiration,omitempty"`
}

// Expires returns the absolute expiration time, if any.
func (e Entry[K, V]) Expires() (time.Time, bool) {
	if e.Expiration == nil {
		return time.Time{}, false
	}
	return *e.Expiration, true
}

// expiredAt reports whether the entry is past its expiration at now.
// An entry expiring exactly at now is still live.
func (e Entry[K, V]) expiredAt(now time.Time) bool {
	return e.Expiration != nil && now.After(*e.Expiration)
}

// clone returns a copy of e that shares no memory with it through
// Expiration. Value is copied shallowly.
func (e Entry[K, V]) clone() Entry[K, V] {
	if e.Expiration != nil {
		exp := *e.Expiration
		e.Expiration = &exp
	}
	return e
}
