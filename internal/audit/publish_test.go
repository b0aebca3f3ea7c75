package audit_test

import (
	"errors"
	"testing"
	"time"

	"github.com/quotagate/quotagate/internal/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeniedPublishFunc(t *testing.T) {
	t.Run("stamps id, instance, and timestamp", func(t *testing.T) {
		var published *audit.RequestDeniedEvent

		publish := audit.NewDeniedPublishFunc(func(event *audit.RequestDeniedEvent) error {
			published = event

			return nil
		}, "node-a1b2")

		err := publish(&audit.RequestDeniedEvent{
			Endpoint: "/api/limited",
			ClientIP: "1.2.3.4",
			Limit:    5,
			Count:    6,
		})

		require.NoError(t, err)
		require.NotNil(t, published)
		assert.NotEmpty(t, published.ID)
		assert.Equal(t, "node-a1b2", published.Instance)
		assert.False(t, published.DeniedAt.IsZero())
		assert.Equal(t, "/api/limited", published.Endpoint)
	})

	t.Run("keeps fields already set", func(t *testing.T) {
		var published *audit.RequestDeniedEvent

		publish := audit.NewDeniedPublishFunc(func(event *audit.RequestDeniedEvent) error {
			published = event

			return nil
		}, "node-a1b2")

		deniedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

		err := publish(&audit.RequestDeniedEvent{
			ID:       "fixed-id",
			Instance: "other-node",
			DeniedAt: deniedAt,
		})

		require.NoError(t, err)
		assert.Equal(t, "fixed-id", published.ID)
		assert.Equal(t, "other-node", published.Instance)
		assert.Equal(t, deniedAt, published.DeniedAt)
	})

	t.Run("propagates publish errors", func(t *testing.T) {
		publish := audit.NewDeniedPublishFunc(func(_ *audit.RequestDeniedEvent) error {
			return errors.New("publish error")
		}, "node-a1b2")

		err := publish(&audit.RequestDeniedEvent{})

		assert.Error(t, err)
	})

	t.Run("generated ids are unique", func(t *testing.T) {
		seen := make(map[string]bool)

		publish := audit.NewDeniedPublishFunc(func(event *audit.RequestDeniedEvent) error {
			seen[event.ID] = true

			return nil
		}, "node-a1b2")

		for i := 0; i < 10; i++ {
			require.NoError(t, publish(&audit.RequestDeniedEvent{}))
		}

		assert.Len(t, seen, 10)
	})
}
