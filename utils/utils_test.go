package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyToNil(t *testing.T) {
	assert.Nil(t, EmptyToNil(""))
	assert.Nil(t, EmptyToNil("   "))

	got := EmptyToNil(" 203.0.113.10 ")
	require.NotNil(t, got)
	assert.Equal(t, "203.0.113.10", *got)
}

func TestClientIP(t *testing.T) {
	assert.Equal(t, "203.0.113.10", ClientIP("203.0.113.10", "10.0.0.1"))
	assert.Equal(t, "203.0.113.10", ClientIP("203.0.113.10, 198.51.100.7", "10.0.0.1"))
	assert.Equal(t, "203.0.113.10", ClientIP(" 203.0.113.10 , 198.51.100.7", "10.0.0.1"))
	assert.Equal(t, "10.0.0.1", ClientIP("", "10.0.0.1"))
	assert.Equal(t, "10.0.0.1", ClientIP("  ,  ", "10.0.0.1"))
}

func TestStartOfDayUTC(t *testing.T) {
	in := time.Date(2026, 8, 28, 17, 45, 12, 999, time.FixedZone("ICT", 7*3600))
	got := StartOfDayUTC(in)

	assert.Equal(t, time.UTC, got.Location())
	assert.Zero(t, got.Hour())
	assert.Zero(t, got.Minute())
	// 17:45 ICT is 10:45 UTC, still the 28th
	assert.Equal(t, 28, got.Day())
}

func TestUTCNow(t *testing.T) {
	now := UTCNow()
	assert.Equal(t, time.UTC, now.Location())
	assert.WithinDuration(t, time.Now(), now, time.Second)

	ptr := UTCNowPtr()
	require.NotNil(t, ptr)
}
