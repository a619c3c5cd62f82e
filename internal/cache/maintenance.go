package cache

// RemoveExpired drops every entry that has expired by the current clock
// reading and returns how many were removed.
//
// Nothing calls this on a schedule; expiration stays lazy unless the owner
// asks for a sweep, e.g. before persisting.
func (c *Cache[K, V]) RemoveExpired() int {
	now, ok := c.clock()
	if !ok {
		return 0
	}

	removed := 0
	for _, key := range c.keys.Keys() {
		e, found := c.store.Peek(key)
		if found && e.expiredAt(now) {
			c.Remove(key)
			removed++
		}
	}
	return removed
}

// Clear drops every entry.
func (c *Cache[K, V]) Clear() {
	c.store.Purge()
	c.keys.Clear()
}
