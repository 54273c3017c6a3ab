package algorithm

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestHotScore(t *testing.T) {
	viper.Set("server.start_time", "2025-03-01")
	t.Cleanup(func() { viper.Set("server.start_time", nil) })

	epoch := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	day := epoch.Add(24 * time.Hour)

	assert.InDelta(t, 86400.0/45000.0, HotScore(day, 0), 1e-9)
	assert.InDelta(t, 1+86400.0/45000.0, HotScore(day, 10), 1e-9)
	assert.InDelta(t, -1+86400.0/45000.0, HotScore(day, -10), 1e-9)
	assert.InDelta(t, 86400.0/45000.0, HotScore(day, 1), 1e-9)

	assert.Greater(t, HotScore(day.Add(time.Hour), 5), HotScore(day, 5))
	assert.Greater(t, HotScore(day, 100), HotScore(day, 5))
}
