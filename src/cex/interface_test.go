package cex

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTradingPair_String(t *testing.T) {
	pair := TradingPair{Base: "BTC", Quote: "USDT"}
	assert.Equal(t, "BTC/USDT", pair.String())
}

func TestToPriceBars(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	klines := []*KlineData{
		{
			OpenTime: start,
			Open:     decimal.NewFromInt(99),
			High:     decimal.NewFromInt(102),
			Low:      decimal.NewFromInt(98),
			Close:    decimal.NewFromInt(100),
		},
		{
			OpenTime: start.Add(4 * time.Hour),
			Open:     decimal.NewFromInt(100),
			High:     decimal.NewFromInt(106),
			Low:      decimal.NewFromInt(99),
			Close:    decimal.NewFromInt(105),
		},
	}

	bars := ToPriceBars(klines)

	assert.Len(t, bars, 2)
	// 引擎消费收盘价
	assert.True(t, bars[0].Price.Equal(decimal.NewFromInt(100)))
	assert.True(t, bars[1].Price.Equal(decimal.NewFromInt(105)))
	assert.Equal(t, start, bars[0].Timestamp)
	assert.Equal(t, start.Add(4*time.Hour), bars[1].Timestamp)
}

func TestToPriceBars_Empty(t *testing.T) {
	bars := ToPriceBars(nil)
	assert.Empty(t, bars)
}
