// Package hashdb caches Tiger Tree Hashes of files between runs.
package hashdb

import (
	"context"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/direct-connect/go-tiger"
)

// FileKey identifies a version of a file. A hash is reused only if all fields match.
type FileKey struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// KeyOf returns a key for the file at the given path.
func KeyOf(path string, fi os.FileInfo) FileKey {
	return FileKey{Path: path, Size: fi.Size(), ModTime: fi.ModTime()}
}

// String encodes the key. Numeric fields go first, so any path is allowed.
func (k FileKey) String() string {
	return strconv.FormatInt(k.Size, 10) + ":" +
		strconv.FormatInt(k.ModTime.UnixNano(), 10) + ":" + k.Path
}

//go:generate mockgen -package hashdb -destination hashdb_mock.go github.com/direct-connect/go-tiger/hashdb Cache

// Cache stores hashes of files.
type Cache interface {
	// Lookup returns a hash of the file, if it's known.
	Lookup(ctx context.Context, k FileKey) (tiger.Hash, bool, error)
	// Store saves a hash of the file.
	Store(ctx context.Context, k FileKey, h tiger.Hash) error
}

// DB is a Cache that must be closed after use.
type DB interface {
	Cache
	io.Closer
}

// HashFile returns a Tiger Tree Hash of the file and its size, consulting the cache first.
// The cache may be nil.
func HashFile(ctx context.Context, c Cache, path string) (tiger.Hash, int64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return tiger.Hash{}, 0, err
	}
	k := KeyOf(path, fi)
	if c != nil {
		h, ok, err := c.Lookup(ctx, k)
		if err != nil {
			return tiger.Hash{}, 0, err
		} else if ok {
			return h, k.Size, nil
		}
	}
	h, err := tiger.TreeHashFile(path)
	if err != nil {
		return tiger.Hash{}, 0, err
	}
	if c != nil {
		if err = c.Store(ctx, k, h); err != nil {
			return tiger.Hash{}, 0, err
		}
	}
	return h, k.Size, nil
}
