package redis

import (
	"context"
	"os"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/binser/internal/providertest"
)

func TestNilClient(t *testing.T) {
	_, err := New(Config{})
	require.ErrorIs(t, err, ErrNilClient)
}

// TestContract runs against a live server named by BINSER_REDIS_ADDR.
func TestContract(t *testing.T) {
	addr := os.Getenv("BINSER_REDIS_ADDR")
	if addr == "" {
		t.Skip("BINSER_REDIS_ADDR not set")
	}
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	require.NoError(t, rdb.Ping(context.Background()).Err())

	p, err := New(Config{Client: rdb, CloseClient: true})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = p.Close(context.Background())
		// second close is a no-op
		require.NoError(t, p.Close(context.Background()))
	})

	providertest.Run(t, p, nil)
}
