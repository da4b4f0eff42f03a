package indicators

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRollingHigh(t *testing.T) {
	t.Run("valid window", func(t *testing.T) {
		rh, err := NewRollingHigh(7 * 24 * time.Hour)
		assert.NoError(t, err)
		assert.NotNil(t, rh)
	})

	t.Run("invalid window", func(t *testing.T) {
		rh, err := NewRollingHigh(0)
		assert.Nil(t, rh)
		assert.Equal(t, ErrInvalidWindow, err)

		rh, err = NewRollingHigh(-time.Hour)
		assert.Nil(t, rh)
		assert.Equal(t, ErrInvalidWindow, err)
	})
}

func TestRollingHigh_Max(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("empty window", func(t *testing.T) {
		rh, err := NewRollingHigh(time.Hour)
		require.NoError(t, err)

		_, err = rh.Max()
		assert.Equal(t, ErrEmptyWindow, err)
	})

	t.Run("tracks maximum", func(t *testing.T) {
		rh, err := NewRollingHigh(24 * time.Hour)
		require.NoError(t, err)

		prices := []float64{100, 105, 103, 110, 108}
		expected := []float64{100, 105, 105, 110, 110}

		for i, p := range prices {
			rh.Push(start.Add(time.Duration(i)*4*time.Hour), decimal.NewFromFloat(p))
			max, err := rh.Max()
			require.NoError(t, err)
			assert.True(t, max.Equal(decimal.NewFromFloat(expected[i])),
				"step %d: got %s, want %v", i, max, expected[i])
		}
	})

	t.Run("expires old samples", func(t *testing.T) {
		// 窗口8小时，样本间隔4小时：只有当前和前一个样本有效
		rh, err := NewRollingHigh(8 * time.Hour)
		require.NoError(t, err)

		rh.Push(start, decimal.NewFromInt(120))
		rh.Push(start.Add(4*time.Hour), decimal.NewFromInt(100))

		max, err := rh.Max()
		require.NoError(t, err)
		assert.True(t, max.Equal(decimal.NewFromInt(120)))

		// 120的样本在8小时后恰好过期
		rh.Push(start.Add(8*time.Hour), decimal.NewFromInt(99))

		max, err = rh.Max()
		require.NoError(t, err)
		assert.True(t, max.Equal(decimal.NewFromInt(100)), "got %s", max)
	})

	t.Run("equal prices keep latest", func(t *testing.T) {
		rh, err := NewRollingHigh(8 * time.Hour)
		require.NoError(t, err)

		rh.Push(start, decimal.NewFromInt(100))
		rh.Push(start.Add(4*time.Hour), decimal.NewFromInt(100))

		// 相等价格替换旧样本，队列长度保持1
		assert.Equal(t, 1, rh.Len())

		max, err := rh.Max()
		require.NoError(t, err)
		assert.True(t, max.Equal(decimal.NewFromInt(100)))
	})
}

func TestRollingHigh_Reset(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	rh, err := NewRollingHigh(24 * time.Hour)
	require.NoError(t, err)

	rh.Push(start, decimal.NewFromInt(200))
	rh.Reset()
	assert.Equal(t, 0, rh.Len())

	// 重置后从新样本重新开始
	rh.Push(start.Add(4*time.Hour), decimal.NewFromInt(50))
	max, err := rh.Max()
	require.NoError(t, err)
	assert.True(t, max.Equal(decimal.NewFromInt(50)))
}

// 基准测试
func BenchmarkRollingHigh_Push(b *testing.B) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rh, _ := NewRollingHigh(7 * 24 * time.Hour)

	prices := make([]decimal.Decimal, 1000)
	for i := range prices {
		prices[i] = decimal.NewFromFloat(100 + float64(i%50))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rh.Push(start.Add(time.Duration(i)*4*time.Hour), prices[i%len(prices)])
	}
}
