package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"recyclerbot/src/recycle"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrades() []recycle.Trade {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	return []recycle.Trade{
		{
			Timestamp:    base,
			Kind:         recycle.TradeSell,
			Price:        decimal.NewFromInt(90),
			UnitsBefore:  decimal.NewFromInt(1),
			UnitsAfter:   decimal.Zero,
			TriggerLevel: decimal.NewFromInt(100),
		},
		{
			Timestamp:    base.Add(8 * time.Hour),
			Kind:         recycle.TradeBuy,
			Price:        decimal.NewFromInt(72),
			UnitsBefore:  decimal.Zero,
			UnitsAfter:   decimal.NewFromFloat(1.25),
			TriggerLevel: decimal.NewFromInt(72),
			ProfitUnits:  decimal.NewFromFloat(0.25),
			ProfitPct:    decimal.NewFromInt(25),
		},
	}
}

func TestValidateBars(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("enough data", func(t *testing.T) {
		bars := []recycle.PriceBar{
			{Timestamp: start, Price: decimal.NewFromInt(100)},
			{Timestamp: start.Add(8 * 24 * time.Hour), Price: decimal.NewFromInt(100)},
		}
		assert.NoError(t, ValidateBars(bars))
	})

	t.Run("span too short", func(t *testing.T) {
		bars := []recycle.PriceBar{
			{Timestamp: start, Price: decimal.NewFromInt(100)},
			{Timestamp: start.Add(24 * time.Hour), Price: decimal.NewFromInt(100)},
		}
		err := ValidateBars(bars)
		assert.ErrorIs(t, err, ErrInsufficientData)
	})

	t.Run("too few bars", func(t *testing.T) {
		assert.ErrorIs(t, ValidateBars(nil), ErrInsufficientData)
	})
}

func TestSummary(t *testing.T) {
	trades := sampleTrades()
	result := &recycle.Result{
		Trades:    trades,
		FinalMode: recycle.ModeHolding,
	}
	metrics := &recycle.Metrics{
		TotalTrades:    2,
		TotalBuys:      1,
		ProfitableBuys: 1,
		InitialUnits:   decimal.NewFromInt(1),
		FinalUnits:     decimal.NewFromFloat(1.25),
		ProfitUnits:    decimal.NewFromFloat(0.25),
		ProfitPct:      decimal.NewFromInt(25),
		SuccessRate:    decimal.NewFromInt(100),
	}

	params := recycle.DefaultParams()
	text := Summary("BTC/USDT", params, result, metrics)

	// 关键数据必须出现在报告中
	assert.Contains(t, text, "BTC/USDT")
	assert.Contains(t, text, "1.25")
	assert.Contains(t, text, "25.00%")
	assert.Contains(t, text, "100.00%")
	assert.Contains(t, text, "HOLDING")
}

func TestSummary_EndedWaiting(t *testing.T) {
	result := &recycle.Result{
		FinalMode:      recycle.ModeWaiting,
		FinalCashValue: decimal.NewFromInt(190),
	}
	metrics := &recycle.Metrics{
		InitialUnits:   decimal.NewFromInt(2),
		FinalUnits:     decimal.NewFromInt(2),
		EndedWaiting:   true,
		FinalCashValue: decimal.NewFromInt(190),
	}

	text := Summary("ETH/USDT", recycle.DefaultParams(), result, metrics)

	assert.Contains(t, text, "WAITING")
	assert.Contains(t, text, "190")
}

func TestWriteTradesCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTradesCSV(&buf, sampleTrades())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, strings.Join(csvHeader, ","), lines[0])
	assert.Contains(t, lines[1], "SELL")
	assert.Contains(t, lines[1], "2024-01-02T00:00:00Z")
	assert.Contains(t, lines[2], "BUY")
	assert.Contains(t, lines[2], "1.25")
}

func TestWriteTradesCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTradesCSV(&buf, nil)
	require.NoError(t, err)

	// 只有表头
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1)
}
