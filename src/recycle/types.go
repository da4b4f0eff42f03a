package recycle

import (
	"time"

	"github.com/shopspring/decimal"
)

// Mode 策略状态机的持仓状态
type Mode int

const (
	// ModeHolding 持有代币，跟踪回看窗口内的滚动最高价
	ModeHolding Mode = iota

	// ModeWaiting 已清仓持有等值资金，跟踪卖出后的最低价
	ModeWaiting
)

// String 返回状态的字符串表示
func (m Mode) String() string {
	switch m {
	case ModeHolding:
		return "HOLDING"
	case ModeWaiting:
		return "WAITING"
	default:
		return "UNKNOWN"
	}
}

// TradeKind 交易方向
type TradeKind string

const (
	TradeSell TradeKind = "SELL"
	TradeBuy  TradeKind = "BUY"
)

// PriceBar 一个价格观测样本
type PriceBar struct {
	Timestamp time.Time       `json:"timestamp"`
	Price     decimal.Decimal `json:"price"`
}

// Trade 一次模拟成交记录，生成后不再修改
type Trade struct {
	Timestamp   time.Time       `json:"timestamp"`
	Kind        TradeKind       `json:"kind"`
	Price       decimal.Decimal `json:"price"`
	UnitsBefore decimal.Decimal `json:"units_before"`
	UnitsAfter  decimal.Decimal `json:"units_after"`

	// TriggerLevel 触发本次交易的极值：卖出为滚动最高价，买入为卖后最低价
	TriggerLevel decimal.Decimal `json:"trigger_level"`

	// ProfitUnits 仅买入有效：相对上次卖出前持仓的代币增减量
	ProfitUnits decimal.Decimal `json:"profit_units"`
	// ProfitPct 仅买入有效：代币增减百分比
	ProfitPct decimal.Decimal `json:"profit_pct"`
}

// TrajectoryPoint 每根K线记录一个持仓轨迹点，无论是否触发交易
type TrajectoryPoint struct {
	Timestamp time.Time       `json:"timestamp"`
	Units     decimal.Decimal `json:"units"`
	Mode      Mode            `json:"mode"`
}

// Result 一次模拟运行的完整输出
type Result struct {
	Trades     []Trade           `json:"trades"`
	Trajectory []TrajectoryPoint `json:"trajectory"`

	// FinalMode 序列结束时的状态
	FinalMode Mode `json:"final_mode"`

	// FinalCashValue 序列在 Waiting 状态结束时尚未换回代币的资金价值，
	// 不合成强制平仓交易
	FinalCashValue decimal.Decimal `json:"final_cash_value"`
}
