package lrufile

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by operations on a handle after a successful Close.
var ErrClosed = errors.New("lrufile: cache is closed")

// CorruptError reports a backing file that exists but cannot be decoded
// (bad framing, version mismatch, truncated write, undecodable key or
// value). It is surfaced from Open; the cache never silently truncates or
// partially recovers a corrupt file.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("lrufile: corrupt cache file %q: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// CapacityError reports an invalid limit configuration (a negative bound).
// It is surfaced from Open; limits are never silently clamped.
type CapacityError struct {
	Field string
	Value int64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("lrufile: %s must not be negative, got %d", e.Field, e.Value)
}

// WriteError reports a failed snapshot write (disk full, permission denied,
// rename failure). It is surfaced from Flush/Close; the previous on-disk
// state is guaranteed unmodified and the in-memory state is intact, so the
// caller may retry.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("lrufile: writing cache file %q: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
