package businessflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prasit9/affilink/cache"
	"github.com/prasit9/affilink/models"
	"github.com/prasit9/affilink/utils"
)

func TestJobStatusFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("ZeroValueBeforeFirstRun", func(t *testing.T) {
		flow := NewJobStatusFlow(cache.NewMemoryStore())

		status, err := flow.Get(ctx)
		require.NoError(t, err)
		require.NotNil(t, status)
		assert.Nil(t, status.LastRunAt)
		assert.Zero(t, status.Processed)
		assert.Zero(t, status.Updated)
		assert.Zero(t, status.Errors)
		assert.Zero(t, status.DurationMillis)
	})

	t.Run("WrappedMissServesZeroValue", func(t *testing.T) {
		store := &missWrappingStore{Store: cache.NewMemoryStore()}
		flow := NewJobStatusFlow(store)

		status, err := flow.Get(ctx)
		require.NoError(t, err)
		require.NotNil(t, status)
		assert.Nil(t, status.LastRunAt)
	})

	t.Run("RecordThenGetRoundTrips", func(t *testing.T) {
		flow := NewJobStatusFlow(cache.NewMemoryStore())

		ranAt := time.Date(2026, 8, 28, 6, 0, 0, 0, time.UTC)
		recorded := &models.RefreshJobStatus{
			LastRunAt:      &ranAt,
			DurationMillis: 1250,
			Processed:      40,
			Updated:        38,
			Errors:         2,
		}
		require.NoError(t, flow.Record(ctx, recorded))

		status, err := flow.Get(ctx)
		require.NoError(t, err)
		require.NotNil(t, status.LastRunAt)
		assert.True(t, ranAt.Equal(*status.LastRunAt))
		assert.Equal(t, int64(1250), status.DurationMillis)
		assert.Equal(t, 40, status.Processed)
		assert.Equal(t, 38, status.Updated)
		assert.Equal(t, 2, status.Errors)
	})

	t.Run("LaterRunOverwritesWhole", func(t *testing.T) {
		flow := NewJobStatusFlow(cache.NewMemoryStore())

		first := &models.RefreshJobStatus{LastRunAt: utils.UTCNowPtr(), Processed: 10, Errors: 3}
		require.NoError(t, flow.Record(ctx, first))

		second := &models.RefreshJobStatus{LastRunAt: utils.UTCNowPtr(), Processed: 12}
		require.NoError(t, flow.Record(ctx, second))

		status, err := flow.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, 12, status.Processed)
		assert.Zero(t, status.Errors)
	})

	t.Run("UndecodableEntryServesZeroValue", func(t *testing.T) {
		store := cache.NewMemoryStore()
		require.NoError(t, store.Set(ctx, utils.RefreshJobStatusKey, "{broken"))

		status, err := NewJobStatusFlow(store).Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, status.LastRunAt)
	})
}
