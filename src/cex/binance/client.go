package binance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"recyclerbot/src/cex"

	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"
)

// Client Binance行情客户端实现
type Client struct {
	client *binance.Client
}

// NewClient 创建Binance客户端，K线数据获取无需API密钥
func NewClient(apiKey, secretKey, baseURL string) *Client {
	binanceClient := binance.NewClient(apiKey, secretKey)
	if baseURL != "" {
		binanceClient.BaseURL = baseURL
	}

	return &Client{client: binanceClient}
}

// GetName 获取交易所名称
func (c *Client) GetName() string {
	return "binance"
}

// tradingPairToSymbol 将标准化交易对转换为Binance格式（无分隔符，如BTCUSDT）
func (c *Client) tradingPairToSymbol(pair cex.TradingPair) string {
	return strings.ToUpper(pair.Base) + strings.ToUpper(pair.Quote)
}

// convertKlineData 转换Binance K线数据为标准格式
func (c *Client) convertKlineData(kline *binance.Kline, pair cex.TradingPair) *cex.KlineData {
	open, _ := decimal.NewFromString(kline.Open)
	high, _ := decimal.NewFromString(kline.High)
	low, _ := decimal.NewFromString(kline.Low)
	close, _ := decimal.NewFromString(kline.Close)
	volume, _ := decimal.NewFromString(kline.Volume)

	return &cex.KlineData{
		TradingPair: pair,
		OpenTime:    time.Unix(kline.OpenTime/1000, 0).UTC(),
		Open:        open,
		High:        high,
		Low:         low,
		Close:       close,
		Volume:      volume,
		CloseTime:   time.Unix(kline.CloseTime/1000, 0).UTC(),
	}
}

// GetKlines 获取最近limit条K线数据
func (c *Client) GetKlines(ctx context.Context, pair cex.TradingPair, interval string, limit int) ([]*cex.KlineData, error) {
	symbol := c.tradingPairToSymbol(pair)

	klines, err := c.client.NewKlinesService().
		Symbol(symbol).
		Interval(interval).
		Limit(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get klines from Binance: %w", err)
	}

	result := make([]*cex.KlineData, len(klines))
	for i, kline := range klines {
		result[i] = c.convertKlineData(kline, pair)
	}

	return result, nil
}

// GetKlinesWithTimeRange 获取指定时间范围的K线数据
//
// 币安单次请求最多1000条，长周期按批次分页获取
func (c *Client) GetKlinesWithTimeRange(ctx context.Context, pair cex.TradingPair, interval string, startTime, endTime time.Time, limit int) ([]*cex.KlineData, error) {
	symbol := c.tradingPairToSymbol(pair)

	var allKlines []*cex.KlineData
	currentStart := startTime

	for currentStart.Before(endTime) {
		klines, err := c.client.NewKlinesService().
			Symbol(symbol).
			Interval(interval).
			StartTime(currentStart.UnixMilli()).
			EndTime(endTime.UnixMilli()).
			Limit(limit).
			Do(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get klines from Binance: %w", err)
		}

		if len(klines) == 0 {
			break
		}

		for _, kline := range klines {
			allKlines = append(allKlines, c.convertKlineData(kline, pair))
		}

		// 下一批从上一批最后一根K线的收盘时间之后开始
		lastKline := klines[len(klines)-1]
		currentStart = time.Unix(lastKline.CloseTime/1000, 0).Add(time.Millisecond)

		// 返回数量不足说明已取完
		if len(klines) < limit {
			break
		}
	}

	return allKlines, nil
}

// Ping 测试连接
func (c *Client) Ping(ctx context.Context) error {
	err := c.client.NewPingService().Do(ctx)
	if err != nil {
		return fmt.Errorf("Binance ping failed: %w", err)
	}
	return nil
}
