package lrufile

// Hooks are lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking; the cache calls them while
// holding its lock. Wrap with hooks/async if a sink may stall.
type Hooks interface {
	// Evicted reports entries removed by the limit enforcement that ran
	// inside a single write operation.
	Evicted(count int, bytes int64)

	// SnapshotLoaded fires after Open decoded an existing file.
	SnapshotLoaded(entries int, bytes int)

	// SnapshotSaved fires after Flush/Close replaced the file.
	SnapshotSaved(entries int, bytes int)

	// SaveSkipped fires when Flush found no changes since the last
	// load/flush and left the file untouched.
	SaveSkipped()
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Evicted(int, int64)      {}
func (NopHooks) SnapshotLoaded(int, int) {}
func (NopHooks) SnapshotSaved(int, int)  {}
func (NopHooks) SaveSkipped()            {}
