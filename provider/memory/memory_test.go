package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/binser/internal/providertest"
)

func TestContract(t *testing.T) {
	providertest.Run(t, New(), nil)
}

func TestTTL(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	p := New()
	p.now = func() time.Time { return now }

	_, err := p.Set(ctx, "k", []byte("v"), 1, time.Minute)
	require.NoError(t, err)

	now = now.Add(59 * time.Second)
	_, ok, _ := p.Get(ctx, "k")
	require.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok, _ = p.Get(ctx, "k")
	require.False(t, ok)
	require.Equal(t, 0, p.Len(), "expired entry should be dropped on read")
}

func TestPutIsVerbatim(t *testing.T) {
	p := New()
	p.Put("raw", []byte{1, 2})
	v, ok, err := p.Get(context.Background(), "raw")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte{1, 2}, v)
}
