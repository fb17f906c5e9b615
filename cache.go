package lrufile

import (
	"fmt"
	"iter"
	"sync"

	"github.com/josh/lrufile/codec"
	"github.com/josh/lrufile/internal/lru"
	"github.com/josh/lrufile/internal/wire"
)

// rec is what the recency store holds per key: the decoded value plus the
// encoded key and payload bytes. Keeping the encoded form means a flush
// serializes without re-encoding, so two flushes with no intervening
// mutation produce byte-identical files.
type rec[V any] struct {
	value   V
	key     []byte
	payload []byte
}

type cache[K comparable, V any] struct {
	mu sync.Mutex

	path  string
	keys  codec.Codec[K]
	vals  codec.Codec[V]
	log   Logger
	hooks Hooks

	maxEntries Limit
	maxBytes   Limit

	store *lru.Store[K, *rec[V]]

	// dirty tracks whether the in-memory state diverged from the file since
	// the last load or flush. Recency reorders count: a read moves its key,
	// which changes what the next snapshot looks like.
	dirty  bool
	closed bool
}

func newCache[K comparable, V any](opts Options[K, V]) (*cache[K, V], error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("lrufile: path is required")
	}
	if opts.Keys == nil {
		return nil, fmt.Errorf("lrufile: key codec is required")
	}
	if opts.Values == nil {
		return nil, fmt.Errorf("lrufile: value codec is required")
	}
	if opts.MaxEntries.Bounded() && opts.MaxEntries.Max() < 0 {
		return nil, &CapacityError{Field: "MaxEntries", Value: opts.MaxEntries.Max()}
	}
	if opts.MaxBytes.Bounded() && opts.MaxBytes.Max() < 0 {
		return nil, &CapacityError{Field: "MaxBytes", Value: opts.MaxBytes.Max()}
	}

	c := &cache[K, V]{
		path:       opts.Path,
		keys:       opts.Keys,
		vals:       opts.Values,
		maxEntries: opts.MaxEntries,
		maxBytes:   opts.MaxBytes,
		store:      lru.New[K, *rec[V]](),
	}
	if c.log = opts.Logger; c.log == nil {
		c.log = NopLogger{}
	}
	if c.hooks = opts.Hooks; c.hooks == nil {
		c.hooks = NopHooks{}
	}

	if err := c.load(); err != nil {
		return nil, err
	}
	return c, nil
}

// load populates the store from the backing file. Entries arrive in
// LRU-to-MRU order, so inserting them in file order reproduces the
// persisted recency exactly.
func (c *cache[K, V]) load() error {
	entries, found, err := readSnapshot(c.path)
	if err != nil {
		return err
	}
	if !found {
		c.log.Debug("persisted cache not found", Fields{"path": c.path})
		return nil
	}

	total := wire.HeaderSize
	for _, e := range entries {
		key, err := c.keys.Decode(e.Key)
		if err != nil {
			return &CorruptError{Path: c.path, Err: fmt.Errorf("decoding key: %w", err)}
		}
		value, err := c.vals.Decode(e.Value)
		if err != nil {
			return &CorruptError{Path: c.path, Err: fmt.Errorf("decoding value: %w", err)}
		}
		// Detach from the file buffer so it can be collected.
		r := &rec[V]{
			value:   value,
			key:     append([]byte(nil), e.Key...),
			payload: append([]byte(nil), e.Value...),
		}
		c.store.Put(key, r, wire.EntrySize(len(r.key), len(r.payload)))
		total += int(wire.EntrySize(len(r.key), len(r.payload)))
	}
	c.log.Debug("loaded persisted cache", Fields{"path": c.path, "entries": c.store.Len()})
	c.hooks.SnapshotLoaded(c.store.Len(), total)

	// The file may predate tighter limits.
	if evicted, bytes := c.evictLocked(); evicted > 0 {
		c.dirty = true
		c.hooks.Evicted(evicted, bytes)
	}
	return nil
}

func (c *cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero V
	if c.closed {
		return zero, false
	}
	r, ok := c.store.Get(key)
	if !ok {
		c.log.Debug("miss", Fields{"key": key})
		return zero, false
	}
	c.log.Debug("hit", Fields{"key": key})
	c.dirty = true
	return r.value, true
}

func (c *cache[K, V]) GetOr(key K, def V) V {
	if v, ok := c.Get(key); ok {
		return v
	}
	return def
}

func (c *cache[K, V]) GetOrLoad(key K, load func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	// The lock is not held across load, so a concurrent caller may load the
	// same key twice; last write wins.
	v, err := load()
	if err != nil {
		var zero V
		return zero, err
	}
	if err := c.Set(key, v); err != nil {
		var zero V
		return zero, err
	}
	return v, nil
}

func (c *cache[K, V]) Peek(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		var zero V
		return zero, false
	}
	r, ok := c.store.Peek(key)
	if !ok {
		var zero V
		return zero, false
	}
	return r.value, true
}

func (c *cache[K, V]) Contains(key K) bool {
	_, ok := c.Peek(key)
	return ok
}

func (c *cache[K, V]) Set(key K, value V) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}

	kb, err := c.keys.Encode(key)
	if err != nil {
		return fmt.Errorf("lrufile: encoding key: %w", err)
	}
	pb, err := c.vals.Encode(value)
	if err != nil {
		return fmt.Errorf("lrufile: encoding value: %w", err)
	}

	c.log.Debug("set", Fields{"key": key, "bytes": len(pb)})
	c.dirty = true
	r := &rec[V]{value: value, key: kb, payload: pb}
	c.store.Put(key, r, wire.EntrySize(len(kb), len(pb)))

	if evicted, bytes := c.evictLocked(); evicted > 0 {
		c.hooks.Evicted(evicted, bytes)
	}
	return nil
}

func (c *cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	removed := c.store.Delete(key)
	if removed {
		c.log.Debug("del", Fields{"key": key})
		c.dirty = true
	}
	return removed
}

func (c *cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.store.Len() == 0 {
		return
	}
	c.log.Debug("clear", Fields{"entries": c.store.Len()})
	c.store.Clear()
	c.dirty = true
}

func (c *cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Len()
}

func (c *cache[K, V]) SizeBytes() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0
	}
	return c.sizeLocked()
}

func (c *cache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]K, 0, c.store.Len())
	for k := range c.store.All() {
		keys = append(keys, k)
	}
	return keys
}

func (c *cache[K, V]) Values() []V {
	c.mu.Lock()
	defer c.mu.Unlock()
	values := make([]V, 0, c.store.Len())
	for _, r := range c.store.All() {
		values = append(values, r.value)
	}
	return values
}

func (c *cache[K, V]) All() iter.Seq2[K, V] {
	c.mu.Lock()
	type pair struct {
		k K
		v V
	}
	pairs := make([]pair, 0, c.store.Len())
	for k, r := range c.store.All() {
		pairs = append(pairs, pair{k: k, v: r.value})
	}
	c.mu.Unlock()

	return func(yield func(K, V) bool) {
		for _, p := range pairs {
			if !yield(p.k, p.v) {
				return
			}
		}
	}
}

func (c *cache[K, V]) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return c.flushLocked()
}

func (c *cache[K, V]) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	if err := c.flushLocked(); err != nil {
		// Leave the handle open and the state intact so the caller can
		// retry the flush.
		return err
	}
	c.closed = true
	c.store.Clear()
	return nil
}

// sizeLocked is the exact length of the snapshot a flush would write now.
func (c *cache[K, V]) sizeLocked() int64 {
	return int64(wire.HeaderSize) + c.store.Size()
}

// evictLocked removes least recently used entries until both limits hold or
// the store is empty. Returns the number of evicted entries and their
// serialized size.
func (c *cache[K, V]) evictLocked() (int, int64) {
	var (
		count int
		bytes int64
	)
	for c.maxEntries.exceeded(int64(c.store.Len())) || c.maxBytes.exceeded(c.sizeLocked()) {
		key, r, ok := c.store.RemoveOldest()
		if !ok {
			break
		}
		count++
		bytes += wire.EntrySize(len(r.key), len(r.payload))
		c.log.Debug("evicted", Fields{"key": key})
	}
	return count, bytes
}

func (c *cache[K, V]) flushLocked() error {
	if !c.dirty {
		c.log.Debug("no changes to save", Fields{"path": c.path})
		c.hooks.SaveSkipped()
		return nil
	}

	entries := make([]wire.Entry, 0, c.store.Len())
	for _, r := range c.store.All() {
		entries = append(entries, wire.Entry{Key: r.key, Value: r.payload})
	}
	data := wire.EncodeSnapshot(entries)

	c.log.Debug("saving cache", Fields{"path": c.path, "entries": len(entries), "bytes": len(data)})
	if err := writeFileAtomic(c.path, data); err != nil {
		c.log.Error("save failed", Fields{"path": c.path, "err": err})
		return err
	}
	c.dirty = false
	c.hooks.SnapshotSaved(len(entries), len(data))
	return nil
}
