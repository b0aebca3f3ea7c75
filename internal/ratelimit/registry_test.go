package ratelimit_test

import (
	"testing"
	"time"

	"github.com/quotagate/quotagate/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register(t *testing.T) {
	t.Run("registers and looks up a policy", func(t *testing.T) {
		registry := ratelimit.NewRegistry()
		policy := ratelimit.Policy{Limit: 5, Window: 30 * time.Second}

		err := registry.Register("/api/limited", policy)

		require.NoError(t, err)

		got, ok := registry.Lookup("/api/limited")

		assert.True(t, ok)
		assert.Equal(t, policy, got)
	})

	t.Run("rejects invalid policy and leaves registry unchanged", func(t *testing.T) {
		registry := ratelimit.NewRegistry()

		err := registry.Register("/api/broken", ratelimit.Policy{Limit: 0, Window: time.Minute})

		assert.ErrorIs(t, err, ratelimit.ErrInvalidPolicy)

		_, ok := registry.Lookup("/api/broken")

		assert.False(t, ok)
	})

	t.Run("re-registering overwrites the previous entry", func(t *testing.T) {
		registry := ratelimit.NewRegistry()

		require.NoError(t, registry.Register("/api/hello", ratelimit.Policy{Limit: 5, Window: 30 * time.Second}))
		require.NoError(t, registry.Register("/api/hello", ratelimit.Policy{Limit: 10, Window: time.Minute, Description: "updated"}))

		got, ok := registry.Lookup("/api/hello")

		assert.True(t, ok)
		assert.Equal(t, int64(10), got.Limit)
		assert.Equal(t, time.Minute, got.Window)
		assert.Equal(t, "updated", got.Description)
	})

	t.Run("lookup misses unknown endpoint", func(t *testing.T) {
		registry := ratelimit.NewRegistry()

		_, ok := registry.Lookup("/api/unknown")

		assert.False(t, ok)
	})
}

func TestRegistry_Snapshot(t *testing.T) {
	t.Run("empty registry yields empty snapshot", func(t *testing.T) {
		registry := ratelimit.NewRegistry()

		assert.Empty(t, registry.Snapshot())
	})

	t.Run("contains every registration", func(t *testing.T) {
		registry := ratelimit.NewRegistry()
		hello := ratelimit.Policy{Limit: 60, Window: time.Minute}
		limited := ratelimit.Policy{Limit: 5, Window: 30 * time.Second}

		require.NoError(t, registry.Register("/api/hello", hello))
		require.NoError(t, registry.Register("/api/limited", limited))

		snapshot := registry.Snapshot()

		assert.ElementsMatch(t, []ratelimit.Registration{
			{Endpoint: "/api/hello", Policy: hello},
			{Endpoint: "/api/limited", Policy: limited},
		}, snapshot)
	})

	t.Run("snapshot is a copy", func(t *testing.T) {
		registry := ratelimit.NewRegistry()

		require.NoError(t, registry.Register("/api/hello", ratelimit.Policy{Limit: 60, Window: time.Minute}))

		snapshot := registry.Snapshot()
		snapshot[0].Policy.Limit = 1

		got, _ := registry.Lookup("/api/hello")

		assert.Equal(t, int64(60), got.Limit, "mutating the snapshot must not change the registry")
	})
}
