package cache

import "time"

// Clock is the time source consulted by a Cache.
//
// Returning ok=false means "no timestamp available": the cache then neither
// assigns expirations on insert nor enforces them on read.
type Clock func() (now time.Time, ok bool)

// SystemClock reads the wall clock.
func SystemClock() (time.Time, bool) {
	return time.Now(), true
}

// NoClock disables all expiration handling.
func NoClock() (time.Time, bool) {
	return time.Time{}, false
}
