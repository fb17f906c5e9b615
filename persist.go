package lrufile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/josh/lrufile/internal/wire"
)

// readSnapshot reads and parses the file at path. A missing file yields
// (nil, false, nil): absence is an empty cache, not a failure. A present but
// undecodable file yields *CorruptError.
func readSnapshot(path string) ([]wire.Entry, bool, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &CorruptError{Path: path, Err: err}
	}
	entries, err := wire.DecodeSnapshot(b)
	if err != nil {
		return nil, false, &CorruptError{Path: path, Err: err}
	}
	return entries, true, nil
}

// writeFileAtomic durably replaces path with data: the bytes go to a
// temporary file in the same directory, are fsynced, and the temp file is
// renamed over path. On any failure the temp file is removed and the
// previous contents of path are untouched.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &WriteError{Path: path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &WriteError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &WriteError{Path: path, Err: err}
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
