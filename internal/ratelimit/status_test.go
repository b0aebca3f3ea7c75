package ratelimit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quotagate/quotagate/internal/ratelimit"
	"github.com/quotagate/quotagate/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func statusByEndpoint(statuses []ratelimit.EndpointStatus) map[string]ratelimit.EndpointStatus {
	m := make(map[string]ratelimit.EndpointStatus, len(statuses))

	for _, s := range statuses {
		m[s.Endpoint] = s
	}

	return m
}

func TestReporter_Report(t *testing.T) {
	t.Run("empty registry yields empty report", func(t *testing.T) {
		reporter := ratelimit.NewReporter(ratelimit.NewRegistry(), store.NewWindowMemoryStore(), zap.NewNop())

		assert.Empty(t, reporter.Report(context.Background(), "1.2.3.4"))
	})

	t.Run("lists every policy for a never-seen identity", func(t *testing.T) {
		registry := ratelimit.NewRegistry()
		require.NoError(t, registry.Register("/api/hello", ratelimit.Policy{Limit: 60, Window: time.Minute}))
		require.NoError(t, registry.Register("/api/limited", ratelimit.Policy{Limit: 5, Window: 30 * time.Second}))

		reporter := ratelimit.NewReporter(registry, store.NewWindowMemoryStore(), zap.NewNop())

		statuses := statusByEndpoint(reporter.Report(context.Background(), "9.9.9.9"))

		require.Len(t, statuses, 2)

		hello := statuses["/api/hello"]
		assert.Equal(t, int64(60), hello.Limit)
		assert.Equal(t, int64(60), hello.WindowSeconds)
		assert.Equal(t, int64(0), hello.Count)
		assert.Equal(t, int64(60), hello.Remaining)
		assert.Equal(t, int64(0), hello.ResetSeconds)

		limited := statuses["/api/limited"]
		assert.Equal(t, int64(5), limited.Limit)
		assert.Equal(t, int64(30), limited.WindowSeconds)
		assert.Equal(t, int64(0), limited.Count)
		assert.Equal(t, int64(5), limited.Remaining)
	})

	t.Run("reflects usage including denied attempts", func(t *testing.T) {
		registry := ratelimit.NewRegistry()
		windowStore := store.NewWindowMemoryStore()
		gate := ratelimit.NewGate(registry, windowStore, zap.NewNop())
		reporter := ratelimit.NewReporter(registry, windowStore, zap.NewNop())
		policy := ratelimit.Policy{Limit: 5, Window: 30 * time.Second}

		for i := 0; i < 6; i++ {
			gate.Check(context.Background(), "1.2.3.4", "/api/limited", policy)
		}

		statuses := statusByEndpoint(reporter.Report(context.Background(), "1.2.3.4"))
		limited := statuses["/api/limited"]

		assert.Equal(t, int64(6), limited.Count, "denied attempts stay visible")
		assert.Equal(t, int64(0), limited.Remaining)
		assert.Greater(t, limited.ResetSeconds, int64(0))
		assert.LessOrEqual(t, limited.ResetSeconds, int64(30))

		// A different identity still reports untouched quota.
		statuses = statusByEndpoint(reporter.Report(context.Background(), "9.9.9.9"))
		limited = statuses["/api/limited"]

		assert.Equal(t, int64(0), limited.Count)
		assert.Equal(t, int64(5), limited.Remaining)
		assert.Equal(t, int64(0), limited.ResetSeconds)
	})

	t.Run("reporting never changes admission outcomes", func(t *testing.T) {
		registry := ratelimit.NewRegistry()
		windowStore := store.NewWindowMemoryStore()
		gate := ratelimit.NewGate(registry, windowStore, zap.NewNop())
		reporter := ratelimit.NewReporter(registry, windowStore, zap.NewNop())
		policy := ratelimit.Policy{Limit: 2, Window: time.Minute}

		gate.Check(context.Background(), "1.2.3.4", "/api/hello", policy)

		for i := 0; i < 10; i++ {
			reporter.Report(context.Background(), "1.2.3.4")
		}

		d := gate.Check(context.Background(), "1.2.3.4", "/api/hello", policy)

		assert.True(t, d.Allowed, "reports must not consume quota")
		assert.Equal(t, int64(2), d.Count)

		d = gate.Check(context.Background(), "1.2.3.4", "/api/hello", policy)

		assert.False(t, d.Allowed)
	})

	t.Run("synthesizes description from the endpoint when missing", func(t *testing.T) {
		registry := ratelimit.NewRegistry()
		require.NoError(t, registry.Register("/api/limited", ratelimit.Policy{Limit: 5, Window: 30 * time.Second}))

		reporter := ratelimit.NewReporter(registry, store.NewWindowMemoryStore(), zap.NewNop())

		statuses := reporter.Report(context.Background(), "1.2.3.4")

		require.Len(t, statuses, 1)
		assert.Equal(t, "/api/limited (limit: 5 requests per 30 seconds)", statuses[0].Description)
	})

	t.Run("keeps registered description", func(t *testing.T) {
		registry := ratelimit.NewRegistry()
		require.NoError(t, registry.Register("/api/hello", ratelimit.Policy{
			Limit:       60,
			Window:      time.Minute,
			Description: "hello (limit: 60 requests per minute)",
		}))

		reporter := ratelimit.NewReporter(registry, store.NewWindowMemoryStore(), zap.NewNop())

		statuses := reporter.Report(context.Background(), "1.2.3.4")

		require.Len(t, statuses, 1)
		assert.Equal(t, "hello (limit: 60 requests per minute)", statuses[0].Description)
	})
}

func TestReporter_Degraded(t *testing.T) {
	t.Run("store errors degrade to zero usage", func(t *testing.T) {
		registry := ratelimit.NewRegistry()
		require.NoError(t, registry.Register("/api/hello", ratelimit.Policy{Limit: 60, Window: time.Minute}))

		reporter := ratelimit.NewReporter(registry, &errorStore{err: errors.New("store down")}, zap.NewNop())

		statuses := reporter.Report(context.Background(), "1.2.3.4")

		require.Len(t, statuses, 1)
		assert.Equal(t, int64(0), statuses[0].Count)
		assert.Equal(t, int64(60), statuses[0].Remaining)
		assert.Equal(t, int64(0), statuses[0].ResetSeconds)
	})

	t.Run("nil store lists policies with zero usage", func(t *testing.T) {
		registry := ratelimit.NewRegistry()
		require.NoError(t, registry.Register("/api/hello", ratelimit.Policy{Limit: 60, Window: time.Minute}))

		reporter := ratelimit.NewReporter(registry, nil, zap.NewNop())

		statuses := reporter.Report(context.Background(), "1.2.3.4")

		require.Len(t, statuses, 1)
		assert.Equal(t, int64(0), statuses[0].Count)
		assert.Equal(t, int64(60), statuses[0].Remaining)
	})
}
