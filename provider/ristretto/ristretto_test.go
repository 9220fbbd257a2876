package ristretto

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/binser/internal/providertest"
)

func newProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := New(Config{NumCounters: 1000, MaxCost: 1 << 20, BufferItems: 64, Metrics: true, IgnoreInternalCost: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close(context.Background()) })
	return p
}

func TestContract(t *testing.T) {
	p := newProvider(t)
	providertest.Run(t, p, p.Wait)
}

func TestInvalidConfig(t *testing.T) {
	_, err := New(Config{})
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestCostDefaultsToLength(t *testing.T) {
	ctx := context.Background()
	p := newProvider(t)
	ok, err := p.Set(ctx, "k", []byte("12345"), 0, 0)
	require.NoError(t, err)
	require.True(t, ok)
	p.Wait()

	require.EqualValues(t, 5, p.Metrics().CostAdded())
}
