package lrufile

import (
	"iter"

	c "github.com/josh/lrufile/codec"
)

// Cache is a disk-persisted LRU mapping bound to one file. K is the caller's
// key type, V the value type; serialization of both is handled by pluggable
// codecs. A missing key is never an error: reads return ok=false or the
// caller's default.
//
// All methods are safe for use from a single goroutine; the handle guards
// its state with one lock, so it also tolerates concurrent callers, except
// that the sequence yielded by All must be consumed without interleaved
// mutation of the cache.
type Cache[K comparable, V any] interface {
	// Get returns the value for key and marks it most recently used.
	Get(key K) (v V, ok bool)
	// GetOr returns the value for key, or def on a miss.
	GetOr(key K, def V) V
	// GetOrLoad returns the cached value for key, or calls load, stores the
	// result and returns it. A load error is returned as-is and nothing is
	// stored.
	GetOrLoad(key K, load func() (V, error)) (V, error)
	// Peek returns the value for key without touching its recency.
	Peek(key K) (v V, ok bool)
	// Contains reports key membership without touching recency.
	Contains(key K) bool

	// Set inserts or replaces the value for key, marks it most recently
	// used, then evicts least recently used entries until the configured
	// limits hold. Fails if a codec cannot encode the key or value.
	Set(key K, value V) error
	// Delete removes key, reporting whether it was present. The recency of
	// other entries is unaffected.
	Delete(key K) bool
	// Clear removes all entries.
	Clear()

	// Len returns the number of entries.
	Len() int
	// SizeBytes returns the serialized size of the cache: the exact length
	// of the snapshot file a Flush would write now.
	SizeBytes() int64
	// Keys returns all keys, least to most recently used.
	Keys() []K
	// Values returns all values, least to most recently used.
	Values() []V
	// All iterates entries from least to most recently used. Each call
	// yields a fresh sequence over the current state; mutating the cache
	// during one pass is a precondition violation.
	All() iter.Seq2[K, V]

	// Flush persists the current state to the file atomically. It is a
	// no-op when nothing changed since the last load or flush (recency
	// reorders count as changes). On failure the previous file contents and
	// the in-memory state are intact; the caller may retry.
	Flush() error
	// Close flushes and releases the handle. On flush failure the handle
	// stays open so Close can be retried. After a successful Close all
	// operations fail with ErrClosed (reads report a miss); closing again
	// is a no-op.
	Close() error
}

// Options configure Open. Path, Keys and Values are required.
type Options[K comparable, V any] struct {
	// Path of the backing file. Created on first successful Flush if
	// absent; parent directories are created as needed.
	Path string

	// Keys encodes keys for the snapshot. Key encoding must be
	// deterministic and injective, or reloaded entries will not collapse
	// onto their original keys.
	Keys c.Codec[K]
	// Values encodes values for the snapshot.
	Values c.Codec[V]

	// MaxEntries caps the entry count. The zero value is unbounded;
	// Bound(0) admits no entries.
	MaxEntries Limit
	// MaxBytes caps the serialized snapshot size (header plus all entry
	// frames, i.e. exactly the file length a flush would produce). The zero
	// value is unbounded; Bound(0) admits no entries.
	MaxBytes Limit

	Logger Logger // if nil, NopLogger is used
	Hooks  Hooks  // if nil, NopHooks is used
}

// Open loads the snapshot at opts.Path (an absent file is an empty cache,
// not an error) and returns a handle bound to it. The handle owns the path
// until Close; see the package documentation for the single-writer policy.
//
// Open fails with *CapacityError on a negative limit and with
// *CorruptError when the file exists but cannot be decoded.
func Open[K comparable, V any](opts Options[K, V]) (Cache[K, V], error) {
	return newCache[K, V](opts)
}
