package binser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/unkn0wn-root/binser/internal/util"
	"github.com/unkn0wn-root/binser/internal/wire"
	pr "github.com/unkn0wn-root/binser/provider"
)

const defaultSnapshotWorkers = 4

// SnapshotOptions configure Snapshots.
// Only Namespace and Provider are required; others have sensible defaults.
type SnapshotOptions struct {
	// Required
	Namespace string // logical namespace to avoid collisions, e.g. "orders"
	Provider  pr.Provider

	Logger     Logger        // if nil, NopLogger is used
	Hooks      Hooks         // if nil, NopHooks is used
	TTL        time.Duration // 0 => no expiry
	MaxPayload int           // bytes; 0 => unlimited. Bounds both Save and Load.
	Workers    int           // SaveMany concurrency; 0 => 4
}

// Snapshots persists buffer payloads into a provider, one frame per key, in
// the same format SaveTo writes to a file. Frames that fail validation on
// Load are deleted and reported as a miss.
//
// Snapshots is safe for concurrent use as long as no Storage passed to it is
// mutated during the call.
type Snapshots struct {
	ns         string
	provider   pr.Provider
	log        Logger
	hooks      Hooks
	ttl        time.Duration
	maxPayload int
	workers    int
}

func NewSnapshots(opts SnapshotOptions) (*Snapshots, error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("binser: provider is required")
	}
	if opts.Namespace == "" {
		return nil, fmt.Errorf("binser: namespace is required")
	}
	if opts.MaxPayload < 0 || opts.Workers < 0 {
		return nil, fmt.Errorf("binser: negative snapshot limits")
	}
	return &Snapshots{
		ns:         opts.Namespace,
		provider:   opts.Provider,
		log:        component(opts.Logger, "snapshots").With(Fields{"ns": opts.Namespace}),
		hooks:      coalesce[Hooks](opts.Hooks, NopHooks{}),
		ttl:        opts.TTL,
		maxPayload: opts.MaxPayload,
		workers:    coalesce(opts.Workers, defaultSnapshotWorkers),
	}, nil
}

func (s *Snapshots) storageKey(key string) string { return util.SnapshotKey(s.ns, key) }

// Save stores st's payload under key, replacing any previous snapshot.
func (s *Snapshots) Save(ctx context.Context, key string, st Storage) error {
	payload := st.Bytes()
	if s.maxPayload > 0 && len(payload) > s.maxPayload {
		return &RangeError{Op: "save", Available: s.maxPayload, Requested: len(payload), Err: ErrOverflow}
	}

	k := s.storageKey(key)
	frame := wire.Encode(payload)
	ok, err := s.provider.Set(ctx, k, frame, int64(len(frame)), s.ttl)
	if err != nil {
		s.log.Error("snapshot save failed", Fields{"key": util.Redact(k), "err": err})
		return fmt.Errorf("binser: save snapshot %q: %w", key, err)
	}
	if !ok {
		s.hooks.ProviderSetRejected(k)
		s.log.Warn("snapshot rejected by provider", Fields{"key": util.Redact(k), "size": len(frame)})
		return ErrRejected
	}
	return nil
}

// Load replaces st's payload with the snapshot under key and rewinds it.
// A missing, expired or corrupt snapshot returns (false, nil).
func (s *Snapshots) Load(ctx context.Context, key string, st Storage) (bool, error) {
	k := s.storageKey(key)
	raw, ok, err := s.provider.Get(ctx, k)
	if err != nil {
		return false, fmt.Errorf("binser: load snapshot %q: %w", key, err)
	}
	if !ok {
		return false, nil
	}

	payload, err := wire.Decode(raw)
	if err == nil && s.maxPayload > 0 && len(payload) > s.maxPayload {
		err = fmt.Errorf("%w: payload %d > %d", ErrCorrupt, len(payload), s.maxPayload)
	}
	if err != nil {
		s.selfHeal(ctx, k, err)
		return false, nil
	}

	if _, err := st.LoadFrom(bytes.NewReader(raw)); err != nil {
		return false, fmt.Errorf("binser: load snapshot %q: %w", key, err)
	}
	return true, nil
}

func (s *Snapshots) selfHeal(ctx context.Context, k string, cause error) {
	s.hooks.SnapshotCorrupt(k, cause)
	f := Fields{"key": util.Redact(k), "err": cause}
	if err := s.provider.Del(ctx, k); err != nil {
		f["del_err"] = err
	}
	s.log.Warn("corrupt snapshot deleted", f)
}

// SaveMany saves every entry concurrently, at most Workers at a time, and
// returns the first error. Entries already written stay written.
func (s *Snapshots) SaveMany(ctx context.Context, items map[string]Storage) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for key, st := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return s.Save(gctx, key, st)
		})
	}
	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		s.log.Warn("snapshot batch incomplete", Fields{"count": len(items), "err": err})
	}
	return err
}

// Delete removes the snapshot under key.
func (s *Snapshots) Delete(ctx context.Context, key string) error {
	if err := s.provider.Del(ctx, s.storageKey(key)); err != nil {
		return fmt.Errorf("binser: delete snapshot %q: %w", key, err)
	}
	return nil
}

// Close closes the provider.
func (s *Snapshots) Close(ctx context.Context) error {
	return s.provider.Close(ctx)
}
