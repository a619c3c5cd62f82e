package codec

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gocache/internal/cache"
)

type profile struct {
	Name  string   `json:"name"`
	Tags  []string `json:"tags"`
	Score float64  `json:"score"`
}

func sampleEntries() []cache.Entry[int, profile] {
	exp := time.Date(2030, 1, 2, 3, 4, 5, 6, time.UTC)
	return []cache.Entry[int, profile]{
		{Key: 2, Value: profile{Name: "b", Tags: []string{"x"}, Score: 1.5}, Expiration: &exp},
		{Key: 1, Value: profile{Name: "a", Tags: []string{}}},
	}
}

func codecs() map[string]Codec[int, profile] {
	return map[string]Codec[int, profile]{
		"json":  JSON[int, profile]{},
		"arrow": NewArrow[int, profile](),
	}
}

func requireSameEntries(t *testing.T, want, got []cache.Entry[int, profile]) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.Equal(t, want[i].Key, got[i].Key)
		require.Equal(t, want[i].Value, got[i].Value)
		wantExp, wantOK := want[i].Expires()
		gotExp, gotOK := got[i].Expires()
		require.Equal(t, wantOK, gotOK)
		require.True(t, wantExp.Equal(gotExp), "expiration %v != %v", gotExp, wantExp)
	}
}

func TestCodecs_RoundTrip(t *testing.T) {
	for name, c := range codecs() {
		t.Run(name, func(t *testing.T) {
			data, err := c.Encode(sampleEntries())
			require.NoError(t, err)

			got, err := c.Decode(data)
			require.NoError(t, err)
			requireSameEntries(t, sampleEntries(), got)
		})
	}
}

func TestCodecs_Empty(t *testing.T) {
	for name, c := range codecs() {
		t.Run(name, func(t *testing.T) {
			data, err := c.Encode(nil)
			require.NoError(t, err)

			got, err := c.Decode(data)
			require.NoError(t, err)
			require.Empty(t, got)
		})
	}
}

func TestCodecs_MalformedInput(t *testing.T) {
	for name, c := range codecs() {
		t.Run(name, func(t *testing.T) {
			got, err := c.Decode([]byte("definitely not a snapshot"))
			require.ErrorIs(t, err, ErrEncoding)
			require.Nil(t, got)
		})
	}
}

func TestCodecs_UnencodableValue(t *testing.T) {
	entries := []cache.Entry[string, func()]{{Key: "f", Value: func() {}}}

	_, err := JSON[string, func()]{}.Encode(entries)
	require.ErrorIs(t, err, ErrEncoding)

	_, err = NewArrow[string, func()]().Encode(entries)
	require.ErrorIs(t, err, ErrEncoding)
}

func TestJSON_WrongValueType(t *testing.T) {
	_, err := JSON[int, profile]{}.Decode([]byte(`[{"key":"not-an-int","value":{}}]`))
	require.ErrorIs(t, err, ErrEncoding)
}

func TestArrow_TruncatedStream(t *testing.T) {
	c := NewArrow[int, profile]()
	data, err := c.Encode(sampleEntries())
	require.NoError(t, err)

	_, err = c.Decode(data[:len(data)/2])
	require.ErrorIs(t, err, ErrEncoding)
}

func TestByName(t *testing.T) {
	c, err := ByName[int, profile]("arrow")
	require.NoError(t, err)
	require.IsType(t, &Arrow[int, profile]{}, c)

	c, err = ByName[int, profile]("")
	require.NoError(t, err)
	require.IsType(t, JSON[int, profile]{}, c)

	_, err = ByName[int, profile]("xml")
	require.Error(t, err)
}

func TestCodecs_RestoreCache(t *testing.T) {
	src, err := cache.New[int, profile](cache.Config{Capacity: 4})
	require.NoError(t, err)
	src.Insert(1, profile{Name: "one", Tags: []string{}})
	src.Insert(2, profile{Name: "two", Tags: []string{"t"}})

	for name, c := range codecs() {
		t.Run(name, func(t *testing.T) {
			data, err := c.Encode(src.Serialize())
			require.NoError(t, err)
			entries, err := c.Decode(data)
			require.NoError(t, err)

			restored, err := cache.Deserialize(entries)
			require.NoError(t, err)
			for _, k := range []int{1, 2} {
				want, _ := src.Get(k)
				got, ok := restored.Get(k)
				require.True(t, ok)
				require.Equal(t, want, got)
			}
		})
	}
}

func TestArrow_ExpirationRange(t *testing.T) {
	c := NewArrow[string, int]()

	// A TTL of math.MaxInt64 lands past the last representable instant.
	far := time.Now().Add(time.Duration(math.MaxInt64))
	_, err := c.Encode([]cache.Entry[string, int]{{Key: "k", Value: 1, Expiration: &far}})
	require.ErrorIs(t, err, ErrEncoding)

	early := time.Date(1600, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = c.Encode([]cache.Entry[string, int]{{Key: "k", Value: 1, Expiration: &early}})
	require.ErrorIs(t, err, ErrEncoding)

	for _, edge := range []time.Time{maxTimestamp, minTimestamp} {
		exp := edge
		data, err := c.Encode([]cache.Entry[string, int]{{Key: "k", Value: 1, Expiration: &exp}})
		require.NoError(t, err)
		got, err := c.Decode(data)
		require.NoError(t, err)
		require.True(t, edge.Equal(*got[0].Expiration), "got %v, want %v", *got[0].Expiration, edge)
	}
}
