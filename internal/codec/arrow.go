package codec

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/goccy/go-json"

	"gocache/internal/cache"
)

// Column layout of an Arrow snapshot. Keys and values are stored as their
// JSON encodings; expiration is null for entries that never expire.
var snapshotSchema = arrow.NewSchema([]arrow.Field{
	{Name: "key", Type: arrow.BinaryTypes.Binary},
	{Name: "value", Type: arrow.BinaryTypes.Binary},
	{Name: "expiration", Type: &arrow.TimestampType{Unit: arrow.Nanosecond, TimeZone: "UTC"}, Nullable: true},
}, nil)

// Instants representable as int64 nanoseconds since the Unix epoch, roughly
// years 1678 through 2262.
var (
	minTimestamp = time.Unix(0, math.MinInt64)
	maxTimestamp = time.Unix(0, math.MaxInt64)
)

// Arrow encodes a snapshot as an Arrow IPC stream.
//
// Expirations outside [minTimestamp, maxTimestamp] cannot be stored and make
// Encode fail.
type Arrow[K comparable, V any] struct {
	allocator memory.Allocator
}

// NewArrow creates an Arrow codec using the default allocator.
func NewArrow[K comparable, V any]() *Arrow[K, V] {
	return &Arrow[K, V]{
		allocator: memory.DefaultAllocator,
	}
}

func (a *Arrow[K, V]) Encode(entries []cache.Entry[K, V]) ([]byte, error) {
	b := array.NewRecordBuilder(a.allocator, snapshotSchema)
	defer b.Release()

	keys := b.Field(0).(*array.BinaryBuilder)
	values := b.Field(1).(*array.BinaryBuilder)
	expirations := b.Field(2).(*array.TimestampBuilder)

	for i, e := range entries {
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, fmt.Errorf("%w: key of entry %d: %w", ErrEncoding, i, err)
		}
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: value of entry %d: %w", ErrEncoding, i, err)
		}
		keys.Append(k)
		values.Append(v)
		if exp, ok := e.Expires(); ok {
			if exp.Before(minTimestamp) || exp.After(maxTimestamp) {
				return nil, fmt.Errorf("%w: expiration of entry %d (%s) is outside the nanosecond timestamp range", ErrEncoding, i, exp.UTC())
			}
			expirations.Append(arrow.Timestamp(exp.UnixNano()))
		} else {
			expirations.AppendNull()
		}
	}

	record := b.NewRecord()
	defer record.Release()

	var buf bytes.Buffer
	writer := ipc.NewWriter(&buf, ipc.WithSchema(snapshotSchema), ipc.WithAllocator(a.allocator))
	if err := writer.Write(record); err != nil {
		writer.Close()
		return nil, fmt.Errorf("%w: failed to write record: %w", ErrEncoding, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("%w: failed to close writer: %w", ErrEncoding, err)
	}
	return buf.Bytes(), nil
}

func (a *Arrow[K, V]) Decode(data []byte) ([]cache.Entry[K, V], error) {
	reader, err := ipc.NewReader(bytes.NewReader(data), ipc.WithAllocator(a.allocator))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create reader: %w", ErrEncoding, err)
	}
	defer reader.Release()

	if n := reader.Schema().NumFields(); n != len(snapshotSchema.Fields()) {
		return nil, fmt.Errorf("%w: snapshot has %d columns, want %d", ErrEncoding, n, len(snapshotSchema.Fields()))
	}

	entries := []cache.Entry[K, V]{}
	for reader.Next() {
		decoded, err := decodeRecord[K, V](reader.Record())
		if err != nil {
			return nil, err
		}
		entries = append(entries, decoded...)
	}
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return entries, nil
}

func decodeRecord[K comparable, V any](record arrow.Record) ([]cache.Entry[K, V], error) {
	keys, ok := record.Column(0).(*array.Binary)
	if !ok {
		return nil, fmt.Errorf("%w: key column is %s", ErrEncoding, record.Column(0).DataType())
	}
	values, ok := record.Column(1).(*array.Binary)
	if !ok {
		return nil, fmt.Errorf("%w: value column is %s", ErrEncoding, record.Column(1).DataType())
	}
	expirations, ok := record.Column(2).(*array.Timestamp)
	if !ok {
		return nil, fmt.Errorf("%w: expiration column is %s", ErrEncoding, record.Column(2).DataType())
	}

	out := make([]cache.Entry[K, V], 0, record.NumRows())
	for i := 0; i < int(record.NumRows()); i++ {
		var e cache.Entry[K, V]
		if err := json.Unmarshal(keys.Value(i), &e.Key); err != nil {
			return nil, fmt.Errorf("%w: key of row %d: %w", ErrEncoding, i, err)
		}
		if err := json.Unmarshal(values.Value(i), &e.Value); err != nil {
			return nil, fmt.Errorf("%w: value of row %d: %w", ErrEncoding, i, err)
		}
		if expirations.IsValid(i) {
			exp := time.Unix(0, int64(expirations.Value(i))).UTC()
			e.Expiration = &exp
		}
		out = append(out, e)
	}
	return out, nil
}
