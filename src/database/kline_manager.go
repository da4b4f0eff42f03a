package database

import (
	"context"
	"time"

	"recyclerbot/src/cex"
	"recyclerbot/src/timeframes"

	"github.com/xpwu/go-log/log"
)

// KlineManager K线数据管理器，优先读本地缓存，缺失时从交易所补充
type KlineManager struct {
	db     *PostgresDB
	client cex.Client
}

// NewKlineManager 创建K线数据管理器，db可为nil（纯网络模式）
func NewKlineManager(db *PostgresDB, client cex.Client) *KlineManager {
	return &KlineManager{
		db:     db,
		client: client,
	}
}

// GetKlinesInRange 获取指定时间范围的K线数据
//
// 数据库有完整数据直接返回；否则从交易所拉取该范围并回填缓存
func (km *KlineManager) GetKlinesInRange(ctx context.Context, pair cex.TradingPair, timeframe string, startTime, endTime time.Time) ([]*cex.KlineData, error) {
	ctx, logger := log.WithCtx(ctx)
	logger.PushPrefix("KlineManager")

	symbol := pair.String()

	if km.db == nil {
		logger.Debug("数据库未配置，直接从网络获取",
			"symbol", symbol, "timeframe", timeframe)
		return km.client.GetKlinesWithTimeRange(ctx, pair, timeframe, startTime, endTime, 1000)
	}

	// 1. 先从缓存取范围内数据
	dbKlines, err := km.db.GetKlines(ctx, symbol, timeframe, startTime.UnixMilli(), endTime.UnixMilli(), 0)
	if err != nil {
		logger.Error("从数据库获取K线数据失败", "error", err)
	}

	// 2. 缓存覆盖了整个请求范围就直接用
	if km.coversRange(dbKlines, startTime, endTime, timeframe) {
		logger.Info("数据库数据完整", "count", len(dbKlines))
		return dbKlines, nil
	}

	// 3. 缓存不完整，从交易所拉取整个范围
	logger.Info("数据库数据不足，从网络获取",
		"db_count", len(dbKlines),
		"start", startTime.Format("2006-01-02 15:04"),
		"end", endTime.Format("2006-01-02 15:04"))

	networkKlines, err := km.client.GetKlinesWithTimeRange(ctx, pair, timeframe, startTime, endTime, 1000)
	if err != nil {
		logger.Error("从网络获取K线数据失败", "error", err)
		if len(dbKlines) > 0 {
			// 网络失败时退回缓存中已有的数据
			return dbKlines, nil
		}
		return nil, err
	}

	// 4. 回填缓存，失败只记日志不影响返回
	if len(networkKlines) > 0 {
		if err := km.db.SaveKlines(ctx, symbol, timeframe, networkKlines); err != nil {
			logger.Error("保存K线数据到数据库失败", "error", err)
		} else {
			logger.Info("保存K线数据到数据库", "count", len(networkKlines))
		}
	}

	return networkKlines, nil
}

// coversRange 判断缓存数据是否覆盖请求范围且中间无缺口
func (km *KlineManager) coversRange(klines []*cex.KlineData, startTime, endTime time.Time, timeframe string) bool {
	if len(klines) == 0 {
		return false
	}

	interval := timeframeInterval(timeframe)
	if interval == 0 {
		return false
	}

	// 首尾必须贴近请求边界（允许一个周期的对齐偏差）
	if klines[0].OpenTime.Sub(startTime) > interval {
		return false
	}
	if endTime.Sub(klines[len(klines)-1].OpenTime) > interval {
		return false
	}

	// 相邻K线间不允许有缺口
	for i := 0; i < len(klines)-1; i++ {
		if klines[i+1].OpenTime.Sub(klines[i].OpenTime) > interval {
			return false
		}
	}

	return true
}

// timeframeInterval 获取周期对应的时长，未知返回0
func timeframeInterval(timeframe string) time.Duration {
	tf, err := timeframes.ParseTimeframe(timeframe)
	if err != nil {
		return 0
	}
	d, err := tf.GetDuration()
	if err != nil {
		return 0
	}
	return d
}
