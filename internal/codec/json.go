package codec

import (
	"fmt"

	"github.com/goccy/go-json"

	"gocache/internal/cache"
)

// JSON encodes a snapshot as a JSON array of
// {"key": ..., "value": ..., "expiration": RFC 3339 time} objects.
type JSON[K comparable, V any] struct{}

func (JSON[K, V]) Encode(entries []cache.Entry[K, V]) ([]byte, error) {
	if entries == nil {
		entries = []cache.Entry[K, V]{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return data, nil
}

func (JSON[K, V]) Decode(data []byte) ([]cache.Entry[K, V], error) {
	var entries []cache.Entry[K, V]
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return entries, nil
}
