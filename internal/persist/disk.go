// Package persist saves cache snapshots to disk and loads them back.
//
// The cache package never touches the filesystem; this package is the
// collaborator that picks a directory, encodes a snapshot with a codec and
// writes it atomically.
package persist

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gocache/internal/cache"
	"gocache/internal/codec"
)

// FileExt is appended to every snapshot name.
const FileExt = ".cache"

var ErrInvalidName = errors.New("invalid snapshot name")

// Snapshotter is anything that can produce a cache snapshot, such as a
// *cache.Cache or an instrumented wrapper around one.
type Snapshotter[K comparable, V any] interface {
	Serialize() []cache.Entry[K, V]
}

// Disk stores snapshots as <Dir>/<name>.cache.
type Disk[K comparable, V any] struct {
	Dir   string
	Codec codec.Codec[K, V]
}

// NewDisk returns a Disk rooted in the user's cache directory.
func NewDisk[K comparable, V any](c codec.Codec[K, V]) (*Disk[K, V], error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("resolve user cache dir: %w", err)
	}
	return &Disk[K, V]{Dir: dir, Codec: c}, nil
}

// Path returns the file a snapshot called name is stored in.
func (d *Disk[K, V]) Path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(d.Dir, name+FileExt), nil
}

// Save encodes the live entries of c and writes them under name.
//
// The file is replaced atomically: readers see either the previous snapshot
// or the new one.
func (d *Disk[K, V]) Save(name string, c Snapshotter[K, V]) error {
	path, err := d.Path(name)
	if err != nil {
		return err
	}
	data, err := d.Codec.Encode(c.Serialize())
	if err != nil {
		return fmt.Errorf("encode snapshot %q: %w", name, err)
	}

	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	tmp, err := os.CreateTemp(d.Dir, "."+name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	// No-op after a successful rename.
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot %q: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync snapshot %q: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot %q: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename snapshot %q: %w", name, err)
	}
	return nil
}

// Load reads the snapshot called name and rebuilds a cache from it with the
// default configuration. A missing file yields an error matching
// fs.ErrNotExist.
func (d *Disk[K, V]) Load(name string) (*cache.Cache[K, V], error) {
	path, err := d.Path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %q: %w", name, err)
	}
	entries, err := d.Codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot %q: %w", name, err)
	}
	return cache.Deserialize(entries)
}

// Remove deletes the snapshot called name. Removing a missing snapshot is
// not an error.
func (d *Disk[K, V]) Remove(name string) error {
	path, err := d.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove snapshot %q: %w", name, err)
	}
	return nil
}
