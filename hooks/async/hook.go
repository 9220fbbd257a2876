// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    GrownEvery: 100, // sample logs: ~every 100th growth
//	})
//
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	buf := binser.NewGrowable(binser.GrowableOptions{Hooks: hooks})
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/binser"
)

// Hooks forwards events to an inner Hooks on worker goroutines. When the
// queue is full, events are dropped rather than blocking the caller.
type Hooks struct {
	inner   binser.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	closed  atomic.Bool
	dropped atomic.Uint64
}

var _ binser.Hooks = (*Hooks)(nil)

func New(inner binser.Hooks, workers, qlen int) *Hooks {
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

// Close drains queued events and stops the workers. Events sent after
// Close are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.closed.Store(true)
		close(h.q)
		h.wg.Wait()
	})
}

// Dropped is the number of events discarded because the queue was full or closed.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	if h.closed.Load() {
		h.dropped.Add(1)
		return
	}
	defer func() {
		// lost a race with Close: sending on the closed queue
		if recover() != nil {
			h.dropped.Add(1)
		}
	}()
	select {
	case h.q <- f:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hooks) Grown(from, to int) { h.try(func() { h.inner.Grown(from, to) }) }
func (h *Hooks) OverflowRejected(c, n int) {
	h.try(func() { h.inner.OverflowRejected(c, n) })
}
func (h *Hooks) OutOfData(a, n int) { h.try(func() { h.inner.OutOfData(a, n) }) }
func (h *Hooks) DuplicateRegistration(typ, kind string) {
	h.try(func() { h.inner.DuplicateRegistration(typ, kind) })
}
func (h *Hooks) SnapshotCorrupt(k string, err error) {
	h.try(func() { h.inner.SnapshotCorrupt(k, err) })
}
func (h *Hooks) ProviderSetRejected(k string) { h.try(func() { h.inner.ProviderSetRejected(k) }) }
