package cex

import (
	"context"
	"time"

	"recyclerbot/src/recycle"

	"github.com/shopspring/decimal"
)

// TradingPair 标准化的交易对
type TradingPair struct {
	Base  string // 基础货币，如 BTC, ETH, BNB
	Quote string // 计价货币，如 USDT
}

// String 返回标准化的交易对字符串表示，如 BTC/USDT
func (tp TradingPair) String() string {
	return tp.Base + "/" + tp.Quote
}

// KlineData 标准化的K线数据
type KlineData struct {
	TradingPair TradingPair     `json:"trading_pair"`
	OpenTime    time.Time       `json:"open_time"`
	Open        decimal.Decimal `json:"open"`
	High        decimal.Decimal `json:"high"`
	Low         decimal.Decimal `json:"low"`
	Close       decimal.Decimal `json:"close"`
	Volume      decimal.Decimal `json:"volume"`
	CloseTime   time.Time       `json:"close_time"`
}

// Client 行情数据客户端接口
//
// 实现必须保证返回的K线按开盘时间严格递增且价格为正，
// 否则模拟引擎会在前置校验处直接失败。
type Client interface {
	// GetName 获取交易所名称
	GetName() string

	// GetKlines 获取最近limit条K线数据
	GetKlines(ctx context.Context, pair TradingPair, interval string, limit int) ([]*KlineData, error)

	// GetKlinesWithTimeRange 获取指定时间范围的K线数据（自动分页）
	GetKlinesWithTimeRange(ctx context.Context, pair TradingPair, interval string, startTime, endTime time.Time, limit int) ([]*KlineData, error)

	// Ping 测试连接
	Ping(ctx context.Context) error
}

// ToPriceBars 把K线序列转换为引擎消费的价格样本，取收盘价
func ToPriceBars(klines []*KlineData) []recycle.PriceBar {
	bars := make([]recycle.PriceBar, len(klines))
	for i, k := range klines {
		bars[i] = recycle.PriceBar{
			Timestamp: k.OpenTime,
			Price:     k.Close,
		}
	}
	return bars
}
