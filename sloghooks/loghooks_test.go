package sloghooks

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/binser"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestGrownSampling(t *testing.T) {
	var buf bytes.Buffer
	h := New(newTestLogger(&buf), Options{GrownEvery: 3})

	for i := 0; i < 9; i++ {
		h.Grown(i, 2*i)
	}
	require.Equal(t, 3, strings.Count(buf.String(), "binser.grown"))
}

func TestKeysAreRedacted(t *testing.T) {
	var buf bytes.Buffer
	h := New(newTestLogger(&buf), Options{})

	h.SnapshotCorrupt("snap:orders:secret-key", errors.New("bad frame"))
	h.ProviderSetRejected("snap:orders:secret-key")

	out := buf.String()
	require.NotContains(t, out, "secret-key")
	require.Contains(t, out, "binser.snapshot_corrupt")
	require.Contains(t, out, "binser.provider_set_rejected")
	require.Contains(t, out, "bad frame")
}

func TestCustomRedact(t *testing.T) {
	var buf bytes.Buffer
	h := New(newTestLogger(&buf), Options{Redact: func(string) string { return "XXX" }})

	h.ProviderSetRejected("snap:ns:k")
	require.Contains(t, buf.String(), "key=XXX")
}

func TestNilLoggerIsSilent(t *testing.T) {
	h := New(nil, Options{})
	h.Grown(1, 2)
	h.OverflowRejected(1, 2)
	h.OutOfData(1, 2)
	h.DuplicateRegistration("t", "read")
	h.SnapshotCorrupt("k", nil)
	h.ProviderSetRejected("k")
}

func TestFixedOverflowReported(t *testing.T) {
	var buf bytes.Buffer
	f := binser.NewFixed(1, binser.FixedOptions{Hooks: New(newTestLogger(&buf), Options{})})

	require.ErrorIs(t, f.Append([]byte{1, 2}), binser.ErrOverflow)
	require.Contains(t, buf.String(), "binser.overflow_rejected")
	require.Contains(t, buf.String(), "requested=2")
}
