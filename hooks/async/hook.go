// usage:
//
// import (
//
//	"log/slog"
//
//	"github.com/josh/lrufile"
//	"github.com/josh/lrufile/hooks/async"
//	"github.com/josh/lrufile/sloghooks"
//
// )
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    EvictedEvery: 10, // sample logs: ~every 10th eviction batch
//	})
//
// hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
// defer hooks.Close()
//
//	cache, _ := lrufile.Open(lrufile.Options[string, User]{
//	    Path:   path,
//	    Keys:   codec.String{},
//	    Values: codec.JSON[User]{},
//	    Hooks:  hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"

	"github.com/josh/lrufile"
)

type Hooks struct {
	inner lrufile.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ lrufile.Hooks = (*Hooks)(nil)

func New(inner lrufile.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) Evicted(count int, bytes int64) { h.try(func() { h.inner.Evicted(count, bytes) }) }
func (h *Hooks) SaveSkipped()                   { h.try(func() { h.inner.SaveSkipped() }) }
func (h *Hooks) SnapshotLoaded(entries, bytes int) {
	h.try(func() { h.inner.SnapshotLoaded(entries, bytes) })
}
func (h *Hooks) SnapshotSaved(entries, bytes int) {
	h.try(func() { h.inner.SnapshotSaved(entries, bytes) })
}
