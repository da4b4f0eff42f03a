package timeframes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeframe_GetDuration(t *testing.T) {
	tests := []struct {
		tf       Timeframe
		expected time.Duration
	}{
		{Timeframe1m, time.Minute},
		{Timeframe30m, 30 * time.Minute},
		{Timeframe1h, time.Hour},
		{Timeframe4h, 4 * time.Hour},
		{Timeframe1d, 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(string(tt.tf), func(t *testing.T) {
			d, err := tt.tf.GetDuration()
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		_, err := Timeframe("3w").GetDuration()
		assert.Error(t, err)
	})
}

func TestParseTimeframe(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		tf, err := ParseTimeframe("4h")
		assert.NoError(t, err)
		assert.Equal(t, Timeframe4h, tf)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := ParseTimeframe("7x")
		assert.Error(t, err)
	})
}

func TestTimeframe_BarsInWindow(t *testing.T) {
	t.Run("7 days of 4h bars", func(t *testing.T) {
		// 原始策略的回看窗口：7天 = 42根4小时K线
		bars, err := Timeframe4h.BarsInWindow(7 * 24 * time.Hour)
		require.NoError(t, err)
		assert.Equal(t, 42, bars)
	})

	t.Run("invalid window", func(t *testing.T) {
		_, err := Timeframe4h.BarsInWindow(0)
		assert.Error(t, err)
	})

	t.Run("invalid timeframe", func(t *testing.T) {
		_, err := Timeframe("bad").BarsInWindow(time.Hour)
		assert.Error(t, err)
	})
}

func TestGetAllTimeframes(t *testing.T) {
	all := GetAllTimeframes()
	assert.NotEmpty(t, all)

	for _, tf := range all {
		assert.True(t, tf.IsValid())
	}
}
