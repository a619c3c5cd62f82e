// Package codec turns cache snapshots into bytes and back.
package codec

import (
	"errors"
	"fmt"

	"gocache/internal/cache"
)

// ErrEncoding wraps every failure to convert entries to or from bytes.
var ErrEncoding = errors.New("cache encoding failed")

// Codec encodes a cache snapshot. Decode either returns every entry in the
// payload or an error; it never returns a partial result.
type Codec[K comparable, V any] interface {
	Encode(entries []cache.Entry[K, V]) ([]byte, error)
	Decode(data []byte) ([]cache.Entry[K, V], error)
}

// ByName returns the codec registered under name ("json" or "arrow").
func ByName[K comparable, V any](name string) (Codec[K, V], error) {
	switch name {
	case "json", "":
		return JSON[K, V]{}, nil
	case "arrow":
		return NewArrow[K, V](), nil
	default:
		return nil, fmt.Errorf("unknown codec %q", name)
	}
}
