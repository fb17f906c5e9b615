// Package sloghooks adapts lrufile.Hooks onto a slog.Logger, with sampling
// for the one event that can fire on every write.
package sloghooks

import (
	"log/slog"
	"sync/atomic"

	"github.com/josh/lrufile"
)

type Options struct {
	// Sampling to avoid floods on eviction-heavy workloads; 0/1 = log all.
	EvictedEvery uint64
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	evictedCtr atomic.Uint64
}

var _ lrufile.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) Evicted(count int, bytes int64) {
	if h.l == nil || !sample(h.opts.EvictedEvery, &h.evictedCtr) {
		return
	}
	h.l.Debug("lrufile.evicted",
		"count", count,
		"bytes", bytes)
}

func (h *Hooks) SnapshotLoaded(entries, bytes int) {
	if h.l == nil {
		return
	}
	h.l.Info("lrufile.snapshot_loaded",
		"entries", entries,
		"bytes", bytes)
}

func (h *Hooks) SnapshotSaved(entries, bytes int) {
	if h.l == nil {
		return
	}
	h.l.Info("lrufile.snapshot_saved",
		"entries", entries,
		"bytes", bytes)
}

func (h *Hooks) SaveSkipped() {
	if h.l == nil {
		return
	}
	h.l.Debug("lrufile.save_skipped")
}
