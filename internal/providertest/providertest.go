// Package providertest checks the contract every provider.Provider must meet.
package providertest

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/binser/internal/wire"
	pr "github.com/unkn0wn-root/binser/provider"
)

// Run exercises p with snapshot-shaped values. settle, when non-nil, is
// called after every Set for stores that apply writes asynchronously.
func Run(t *testing.T, p pr.Provider, settle func()) {
	t.Helper()
	ctx := context.Background()
	if settle == nil {
		settle = func() {}
	}

	t.Run("miss", func(t *testing.T) {
		v, ok, err := p.Get(ctx, "snap:pt:absent")
		require.NoError(t, err)
		require.False(t, ok)
		require.Nil(t, v)
	})

	t.Run("transparent", func(t *testing.T) {
		frame := wire.Encode([]byte{0, 1, 2, 0xFF, 0})
		ok, err := p.Set(ctx, "snap:pt:frame", frame, int64(len(frame)), 0)
		require.NoError(t, err)
		require.True(t, ok)
		settle()

		got, ok, err := p.Get(ctx, "snap:pt:frame")
		require.NoError(t, err)
		require.True(t, ok)
		require.True(t, bytes.Equal(frame, got), "stored bytes differ: %x", got)

		payload, err := wire.Decode(got)
		require.NoError(t, err)
		require.Equal(t, []byte{0, 1, 2, 0xFF, 0}, payload)
	})

	t.Run("overwrite", func(t *testing.T) {
		_, err := p.Set(ctx, "snap:pt:k", []byte("one"), 3, 0)
		require.NoError(t, err)
		settle()
		_, err = p.Set(ctx, "snap:pt:k", []byte("two!"), 4, 0)
		require.NoError(t, err)
		settle()

		got, ok, err := p.Get(ctx, "snap:pt:k")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "two!", string(got))
	})

	t.Run("caller buffer reuse", func(t *testing.T) {
		buf := []byte("abcd")
		_, err := p.Set(ctx, "snap:pt:copy", buf, 4, 0)
		require.NoError(t, err)
		settle()
		copy(buf, "zzzz")

		got, ok, err := p.Get(ctx, "snap:pt:copy")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "abcd", string(got))
	})

	t.Run("delete", func(t *testing.T) {
		_, err := p.Set(ctx, "snap:pt:del", []byte("x"), 1, 0)
		require.NoError(t, err)
		settle()
		require.NoError(t, p.Del(ctx, "snap:pt:del"))
		settle()

		_, ok, err := p.Get(ctx, "snap:pt:del")
		require.NoError(t, err)
		require.False(t, ok)

		require.NoError(t, p.Del(ctx, "snap:pt:never-set"))
	})
}
