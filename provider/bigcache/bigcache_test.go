package bigcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/binser/internal/providertest"
)

func TestContract(t *testing.T) {
	p, err := New(Config{LifeWindow: time.Minute, Shards: 16, MaxEntriesInWindow: 100})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close(context.Background()) })

	providertest.Run(t, p, nil)
}

func TestLargeFrame(t *testing.T) {
	p, err := New(Config{Shards: 4, MaxEntrySize: 64})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close(context.Background()) })

	ctx := context.Background()
	big := make([]byte, 1<<16)
	for i := range big {
		big[i] = byte(i)
	}
	ok, err := p.Set(ctx, "big", big, int64(len(big)), 0)
	require.NoError(t, err)
	require.True(t, ok)

	got, ok, err := p.Get(ctx, "big")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, big, got)
}
