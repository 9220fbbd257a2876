package sloghooks

import (
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/binser"
	"github.com/unkn0wn-root/binser/internal/util"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	GrownEvery     uint64
	OutOfDataEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

// Hooks reports binser events to a slog.Logger.
type Hooks struct {
	l    *slog.Logger
	opts Options

	grownCtr     atomic.Uint64
	outOfDataCtr atomic.Uint64
}

var _ binser.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	return util.Redact(k)
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) Grown(from, to int) {
	if h.l == nil || !sample(h.opts.GrownEvery, &h.grownCtr) {
		return
	}
	h.l.Debug("binser.grown",
		"from", from,
		"to", to)
}

func (h *Hooks) OverflowRejected(capacity, requested int) {
	if h.l == nil {
		return
	}
	h.l.Warn("binser.overflow_rejected",
		"capacity", capacity,
		"requested", requested)
}

func (h *Hooks) OutOfData(available, requested int) {
	if h.l == nil || !sample(h.opts.OutOfDataEvery, &h.outOfDataCtr) {
		return
	}
	h.l.Info("binser.out_of_data",
		"available", available,
		"requested", requested)
}

func (h *Hooks) DuplicateRegistration(typeName, kind string) {
	if h.l == nil {
		return
	}
	h.l.Warn("binser.duplicate_registration",
		"type", typeName,
		"kind", kind)
}

func (h *Hooks) SnapshotCorrupt(storageKey string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("binser.snapshot_corrupt",
		"key", h.redact(storageKey),
		"err", err)
}

func (h *Hooks) ProviderSetRejected(storageKey string) {
	if h.l == nil {
		return
	}
	h.l.Warn("binser.provider_set_rejected",
		"key", h.redact(storageKey))
}
