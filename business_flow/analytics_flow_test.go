package businessflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prasit9/affilink/models"
	"github.com/prasit9/affilink/utils"
)

func TestWindowLowerBound(t *testing.T) {
	t.Run("Last7Days", func(t *testing.T) {
		since, err := windowLowerBound(utils.DateRangeLast7Days)
		require.NoError(t, err)
		require.NotNil(t, since)
		assert.WithinDuration(t, utils.UTCNowAdd(-7*24*time.Hour), *since, 5*time.Second)
	})

	t.Run("Last30Days", func(t *testing.T) {
		since, err := windowLowerBound(utils.DateRangeLast30Days)
		require.NoError(t, err)
		require.NotNil(t, since)
		assert.WithinDuration(t, utils.UTCNowAdd(-30*24*time.Hour), *since, 5*time.Second)
	})

	t.Run("AllMeansNoBound", func(t *testing.T) {
		since, err := windowLowerBound(utils.DateRangeAll)
		require.NoError(t, err)
		assert.Nil(t, since)
	})

	t.Run("EmptyDefaultsToAll", func(t *testing.T) {
		since, err := windowLowerBound("")
		require.NoError(t, err)
		assert.Nil(t, since)
	})

	t.Run("UnknownTagRejected", func(t *testing.T) {
		_, err := windowLowerBound("lastYear")
		require.Error(t, err)
		assert.True(t, IsInvalidDateRange(err))
	})
}

func TestClampTopProductsLimit(t *testing.T) {
	assert.Equal(t, utils.TopProductsDefaultLimit, ClampTopProductsLimit(0))
	assert.Equal(t, utils.TopProductsDefaultLimit, ClampTopProductsLimit(-3))
	assert.Equal(t, 1, ClampTopProductsLimit(1))
	assert.Equal(t, 25, ClampTopProductsLimit(25))
	assert.Equal(t, utils.TopProductsMaxLimit, ClampTopProductsLimit(50))
	assert.Equal(t, utils.TopProductsMaxLimit, ClampTopProductsLimit(500))
}

func TestDenseDailyTrend(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("ZeroFillsEmptyWindow", func(t *testing.T) {
		trend := DenseDailyTrend(nil, start, utils.TrendDays)

		require.Len(t, trend, utils.TrendDays)
		assert.Equal(t, "2026-03-01", trend[0].Date)
		assert.Equal(t, "2026-03-07", trend[6].Date)
		for _, point := range trend {
			assert.Zero(t, point.Clicks)
		}
	})

	t.Run("MapsSparseRowsOntoDays", func(t *testing.T) {
		rows := []*models.DailyClicks{
			{Day: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), Clicks: 4},
			{Day: time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC), Clicks: 11},
		}

		trend := DenseDailyTrend(rows, start, utils.TrendDays)

		require.Len(t, trend, utils.TrendDays)
		assert.Equal(t, int64(0), trend[0].Clicks)
		assert.Equal(t, int64(4), trend[1].Clicks)
		assert.Equal(t, int64(11), trend[5].Clicks)
		assert.Equal(t, int64(0), trend[6].Clicks)
	})

	t.Run("NormalizesRowTimestamps", func(t *testing.T) {
		// Rows coming back with an intra-day timestamp still land on their day
		rows := []*models.DailyClicks{
			{Day: time.Date(2026, 3, 3, 17, 45, 12, 0, time.UTC), Clicks: 2},
		}

		trend := DenseDailyTrend(rows, start, utils.TrendDays)
		assert.Equal(t, int64(2), trend[2].Clicks)
	})
}
