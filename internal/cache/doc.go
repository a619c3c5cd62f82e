// Package cache implements a single-process, in-memory key-value cache.
//
// A Cache combines three pieces:
//   - a Store: a capacity-bounded LRU container that reports every capacity
//     eviction through a synchronous callback
//   - a KeyTracker: the insertion-ordered set of stored keys, kept in step
//     with the Store through that callback
//   - a Clock: the time source for TTL expiration, which is checked lazily
//     on read
//
// Serialize and Deserialize convert a Cache to and from a plain slice of
// entries. Encoding that slice and writing it anywhere is left to callers
// (see the codec and persist packages).
//
// Nothing in this package locks, logs or starts goroutines.
package cache
