// Package lrufile implements a bounded key/value cache with least-recently-
// used eviction that persists its full state to a single file. A session
// loads the file on Open, behaves like an in-memory map while the handle is
// held, and atomically rewrites the file on Flush/Close.
//
// Components:
//   - internal/lru: ordered store tracking recency (hash map + doubly linked list).
//   - codec: Codec[V] (de)serializes keys and values <-> []byte.
//   - internal/wire: versioned binary framing of the snapshot file.
//   - Cache[K, V]: the handle composing the above, bound to one path.
//
// Limits:
//
//	c, err := lrufile.Open(lrufile.Options[string, int]{
//	    Path:       "/var/cache/app/state.lru",
//	    Keys:       codec.String{},
//	    Values:     codec.JSON[int]{},
//	    MaxEntries: lrufile.Bound(1000),
//	    MaxBytes:   lrufile.Bound(1 << 20),
//	})
//	if err != nil { ... }
//	defer c.Close()
//
// A zero-value Limit means unbounded; Bound(0) means the cache holds
// nothing. Eviction runs after every write and removes least recently used
// entries first.
//
// The backing file is exclusively owned by the handle that has it open.
// There is no cross-process locking: two handles opened concurrently on the
// same path end in last-writer-wins at close. Serialize access externally if
// more than one process may write.
package lrufile
