package cache

// Serialize returns the live entries in key-tracker order, i.e. the order in
// which keys were first inserted.
//
// Entries found expired are dropped from the cache on the way, exactly as a
// Get would. Recency is left untouched.
func (c *Cache[K, V]) Serialize() []Entry[K, V] {
	keys := c.keys.Keys()
	out := make([]Entry[K, V], 0, len(keys))
	for _, key := range keys {
		if e, ok := c.live(key); ok {
			out = append(out, e)
		}
	}
	return out
}

// Deserialize rebuilds a cache from entries using DefaultConfig.
//
// Stored expirations are kept verbatim rather than recomputed, so entries
// whose time has already passed read as missing right away. The source
// cache's TTL and capacity are not part of the snapshot.
func Deserialize[K comparable, V any](entries []Entry[K, V]) (*Cache[K, V], error) {
	c, err := New[K, V](DefaultConfig())
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		c.insert(e)
	}
	return c, nil
}
