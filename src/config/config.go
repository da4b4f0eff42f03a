package config

import (
	"fmt"
	"time"

	"recyclerbot/src/database"
	"recyclerbot/src/recycle"
	"recyclerbot/src/timeframes"

	"github.com/shopspring/decimal"
	"github.com/xpwu/go-config/configs"
)

// Config 主配置结构
type Config struct {
	Exchange   ExchangeConfig   `conf:"exchange,交易所配置"`
	Trading    TradingConfig    `conf:"trading,交易基础配置"`
	Strategy   StrategyConfig   `conf:"strategy,再循环策略参数"`
	Simulation SimulationConfig `conf:"simulation,模拟区间配置"`
	Symbols    []SymbolInfo     `conf:"symbols,支持的交易对列表"`
}

// SymbolInfo 交易对信息
type SymbolInfo struct {
	Base  string `conf:"base,基础资产"`
	Quote string `conf:"quote,计价资产"`
}

// ExchangeConfig 交易所配置
type ExchangeConfig struct {
	Name     string                  `conf:"name,交易所名称 - 目前仅支持binance"`
	Database database.DatabaseConfig `conf:"database,K线缓存数据库配置 - host留空则不使用缓存"`
}

// TradingConfig 交易基础配置
type TradingConfig struct {
	Timeframe string `conf:"timeframe,K线周期 - 支持1m,5m,15m,30m,1h,2h,4h,6h,12h,1d"`
}

// StrategyConfig 再循环策略参数
type StrategyConfig struct {
	SellDrawdownPct float64 `conf:"sell_drawdown_pct,卖出回落百分比 - 从滚动最高价跌X%卖出"`
	BuyRallyPct     float64 `conf:"buy_rally_pct,买入反弹百分比 - 从卖后最低价涨Y%买回"`
	LookbackDays    int     `conf:"lookback_days,回看窗口天数 - 持有状态滚动最高价的窗口"`
	InitialUnits    float64 `conf:"initial_units,初始代币数量"`
}

// SimulationConfig 模拟区间配置
type SimulationConfig struct {
	StartDate string `conf:"start_date,模拟开始日期 YYYY-MM-DD"`
	EndDate   string `conf:"end_date,模拟结束日期 YYYY-MM-DD"`
}

// AppConfig 全局配置实例，默认值沿用原始POC：4h周期、5%/5%阈值、7天窗口
var AppConfig = &Config{
	Exchange: ExchangeConfig{
		Name:     "binance",
		Database: database.GetDatabaseConfigFor("recyclerbot_binance"),
	},
	Trading: TradingConfig{
		Timeframe: "4h",
	},
	Strategy: StrategyConfig{
		SellDrawdownPct: 5.0,
		BuyRallyPct:     5.0,
		LookbackDays:    7,
		InitialUnits:    1.0,
	},
	Simulation: SimulationConfig{
		StartDate: "", // 留空时默认最近180天
		EndDate:   "",
	},
	Symbols: []SymbolInfo{
		{Base: "BTC", Quote: "USDT"},
		{Base: "ETH", Quote: "USDT"},
		{Base: "BNB", Quote: "USDT"},
	},
}

// 在包的 init() 函数中注册配置
func init() {
	configs.Unmarshal(AppConfig)
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.Exchange.Name == "" {
		return fmt.Errorf("exchange name cannot be empty")
	}

	if _, err := timeframes.ParseTimeframe(c.Trading.Timeframe); err != nil {
		return fmt.Errorf("invalid timeframe: %w", err)
	}

	if err := c.GetStrategyParams().Validate(); err != nil {
		return err
	}

	if c.Simulation.StartDate != "" {
		if _, err := time.Parse("2006-01-02", c.Simulation.StartDate); err != nil {
			return fmt.Errorf("invalid start date format: %s", c.Simulation.StartDate)
		}
	}
	if c.Simulation.EndDate != "" {
		if _, err := time.Parse("2006-01-02", c.Simulation.EndDate); err != nil {
			return fmt.Errorf("invalid end date format: %s", c.Simulation.EndDate)
		}
	}

	if len(c.Symbols) == 0 {
		return fmt.Errorf("symbols list cannot be empty")
	}

	return nil
}

// GetTimeframe 获取K线周期
func (c *Config) GetTimeframe() (timeframes.Timeframe, error) {
	return timeframes.ParseTimeframe(c.Trading.Timeframe)
}

// GetStrategyParams 获取引擎消费的策略参数
func (c *Config) GetStrategyParams() recycle.Params {
	return recycle.Params{
		SellDrawdownPct: decimal.NewFromFloat(c.Strategy.SellDrawdownPct),
		BuyRallyPct:     decimal.NewFromFloat(c.Strategy.BuyRallyPct),
		LookbackWindow:  time.Duration(c.Strategy.LookbackDays) * 24 * time.Hour,
		InitialUnits:    decimal.NewFromFloat(c.Strategy.InitialUnits),
	}
}

// GetSimulationRange 获取模拟时间区间，未配置时默认最近180天
func (c *Config) GetSimulationRange() (time.Time, time.Time, error) {
	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -180)

	if c.Simulation.EndDate != "" {
		parsed, err := time.Parse("2006-01-02", c.Simulation.EndDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end date: %w", err)
		}
		end = parsed
	}
	if c.Simulation.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", c.Simulation.StartDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start date: %w", err)
		}
		start = parsed
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date must be after start date")
	}

	return start, end, nil
}

// IsSymbolSupported 检查交易对是否在配置的列表中
func (c *Config) IsSymbolSupported(base, quote string) bool {
	for _, s := range c.Symbols {
		if s.Base == base && s.Quote == quote {
			return true
		}
	}
	return false
}
