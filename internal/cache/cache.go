package cache

import (
	"errors"
	"time"
)

// DefaultCapacity is the entry limit used by DefaultConfig.
const DefaultCapacity = 100

// Config controls expiration and capacity.
//
//   - Clock == nil means SystemClock; use NoClock to disable expiration.
//   - TTL == 0 means entries never expire.
//   - Capacity must be positive.
type Config struct {
	Clock    Clock
	TTL      time.Duration
	Capacity int
}

// DefaultConfig returns the configuration used by Deserialize.
func DefaultConfig() Config {
	return Config{
		Clock:    SystemClock,
		Capacity: DefaultCapacity,
	}
}

var (
	ErrInvalidCapacity = errors.New("cache capacity must be positive")
	ErrInvalidTTL      = errors.New("cache ttl must not be negative")
)

// Cache is a bounded key-value cache with optional TTL and LRU eviction.
//
// A Cache is not safe for concurrent use. Callers sharing one across
// goroutines must guard the whole instance with their own lock.
type Cache[K comparable, V any] struct {
	store *Store[K, V]
	keys  *KeyTracker[K, V]
	clock Clock
	ttl   time.Duration

	observers []func(Entry[K, V])
}

// New constructs an empty cache.
func New[K comparable, V any](cfg Config) (*Cache[K, V], error) {
	if cfg.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if cfg.TTL < 0 {
		return nil, ErrInvalidTTL
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock
	}

	c := &Cache[K, V]{
		keys:  NewKeyTracker[K, V](),
		clock: cfg.Clock,
		ttl:   cfg.TTL,
	}
	store, err := NewStore[K, V](cfg.Capacity, c.evicted)
	if err != nil {
		return nil, err
	}
	c.store = store
	return c, nil
}

// OnEviction registers fn to be called with every entry the cache drops to
// stay within capacity. It runs synchronously inside Insert, after the entry
// has left both the store and the key tracker. Explicit removals, lazy
// expiration and Clear are not reported.
func (c *Cache[K, V]) OnEviction(fn func(Entry[K, V])) {
	c.observers = append(c.observers, fn)
}

func (c *Cache[K, V]) evicted(e Entry[K, V]) {
	c.keys.OnEvicted(e)
	for _, fn := range c.observers {
		fn(e)
	}
}

// Insert writes/overwrites key.
//
// The entry gets an expiration of now+TTL only when a TTL is configured and
// the clock currently yields a timestamp.
func (c *Cache[K, V]) Insert(key K, value V) {
	e := Entry[K, V]{Key: key, Value: value}
	if c.ttl > 0 {
		if now, ok := c.clock(); ok {
			expiresAt := now.Add(c.ttl)
			e.Expiration = &expiresAt
		}
	}
	c.insert(e)
}

// insert stores e as-is. Any capacity eviction has already been reported to
// the tracker by the time Store.Insert returns.
func (c *Cache[K, V]) insert(e Entry[K, V]) {
	c.store.Insert(e.Key, e)
	c.keys.Add(e.Key)
}

// Get reads a key.
//
// It performs lazy expiration: an entry whose expiration is strictly before
// the current clock reading is removed and reported as missing. When the
// clock yields no timestamp nothing is ever treated as expired.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	e, ok := c.store.Lookup(key)
	if !ok || c.expire(e) {
		var zero V
		return zero, false
	}
	return e.Value, true
}

// live returns the entry for key unless it is missing or expired, without
// touching recency.
func (c *Cache[K, V]) live(key K) (Entry[K, V], bool) {
	e, ok := c.store.Peek(key)
	if !ok || c.expire(e) {
		return Entry[K, V]{}, false
	}
	return e, true
}

// expire removes e if it has expired and reports whether it did.
func (c *Cache[K, V]) expire(e Entry[K, V]) bool {
	if e.Expiration == nil {
		return false
	}
	now, ok := c.clock()
	if !ok || !e.expiredAt(now) {
		return false
	}
	c.Remove(e.Key)
	return true
}

// Remove deletes key if present.
func (c *Cache[K, V]) Remove(key K) {
	c.store.Remove(key)
	c.keys.Remove(key)
}

// At is the indexed read form of Get.
func (c *Cache[K, V]) At(key K) (V, bool) {
	return c.Get(key)
}

// SetAt is the indexed write form: a nil value removes key, anything else
// inserts *value.
func (c *Cache[K, V]) SetAt(key K, value *V) {
	if value == nil {
		c.Remove(key)
		return
	}
	c.Insert(key, *value)
}

// Contains reports whether key is stored, without checking expiration or
// updating recency.
func (c *Cache[K, V]) Contains(key K) bool {
	return c.store.Contains(key)
}

// Len returns the number of stored entries.
//
// Len includes entries that have expired but have not been read since.
func (c *Cache[K, V]) Len() int {
	return c.store.Len()
}

// Capacity returns the maximum number of entries.
func (c *Cache[K, V]) Capacity() int {
	return c.store.Capacity()
}

// Keys returns stored keys in MRU -> LRU order.
func (c *Cache[K, V]) Keys() []K {
	return c.store.Keys()
}
