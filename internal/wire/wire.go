// Package wire implements the binary snapshot format for the persisted cache
// file. The format is versioned and strictly validated: anything that does
// not parse exactly (bad magic, unknown version, truncated frames, trailing
// bytes) is reported as ErrCorrupt rather than partially decoded.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const version byte = 1

var (
	ErrCorrupt = errors.New("lrufile: corrupt snapshot")
	magic4     = [...]byte{'L', 'R', 'U', 'F'}
)

// HeaderSize is the fixed cost of a snapshot before any entries:
// magic(4) | ver(1) | count(u32 be).
const HeaderSize = 4 + 1 + 4

// Entry is one key/value pair as it appears on disk. Both fields are
// codec-encoded bytes; wire does not interpret them.
type Entry struct {
	Key   []byte
	Value []byte
}

// EntrySize returns the on-disk cost of a single entry frame:
// klen(u32 be) | key | vlen(u32 be) | payload.
func EntrySize(keyLen, valueLen int) int64 {
	return int64(4 + keyLen + 4 + valueLen)
}

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// EncodeSnapshot frames entries in the given order (least recently used
// first). Decoding yields the same order back.
func EncodeSnapshot(entries []Entry) []byte {
	total := int64(HeaderSize)
	for _, e := range entries {
		total += EntrySize(len(e.Key), len(e.Value))
	}

	var buf bytes.Buffer
	buf.Grow(int(total))

	buf.Write(magic4[:])
	buf.WriteByte(version)

	var u4 [4]byte
	binary.BigEndian.PutUint32(u4[:], uint32(len(entries)))
	buf.Write(u4[:])

	for _, e := range entries {
		binary.BigEndian.PutUint32(u4[:], uint32(len(e.Key)))
		buf.Write(u4[:])
		buf.Write(e.Key)

		binary.BigEndian.PutUint32(u4[:], uint32(len(e.Value)))
		buf.Write(u4[:])
		buf.Write(e.Value)
	}

	return buf.Bytes()
}

// DecodeSnapshot parses a snapshot produced by EncodeSnapshot and returns
// its entries in on-disk order (least recently used first).
func DecodeSnapshot(b []byte) ([]Entry, error) {
	if len(b) < HeaderSize || !hasMagic(b) || b[4] != version {
		return nil, ErrCorrupt
	}

	off := 5

	n := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if n > (len(b)-HeaderSize)/8 { // every entry costs at least two u32 frames
		return nil, ErrCorrupt
	}

	entries := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		// klen
		if off+4 > len(b) {
			return nil, ErrCorrupt
		}
		klen := int(binary.BigEndian.Uint32(b[off : off+4]))
		off += 4
		if klen < 0 || klen > len(b)-off { // overflow-safe bound check
			return nil, ErrCorrupt
		}
		key := b[off : off+klen]
		off += klen

		// vlen
		if off+4 > len(b) {
			return nil, ErrCorrupt
		}
		vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
		off += 4
		if vlen < 0 || vlen > len(b)-off {
			return nil, ErrCorrupt
		}
		payload := b[off : off+vlen]
		off += vlen

		entries = append(entries, Entry{Key: key, Value: payload})
	}

	if off != len(b) {
		return nil, ErrCorrupt
	}

	return entries, nil
}
