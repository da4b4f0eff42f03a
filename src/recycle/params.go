package recycle

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultLookbackWindow 持有状态下滚动最高价的默认回看窗口（7天）
const DefaultLookbackWindow = 7 * 24 * time.Hour

// Params 策略参数，不可变配置，每次模拟传入
type Params struct {
	// SellDrawdownPct 从滚动最高价回落多少百分比触发卖出
	SellDrawdownPct decimal.Decimal `json:"sell_drawdown_pct"`

	// BuyRallyPct 从卖后最低价反弹多少百分比触发买入
	BuyRallyPct decimal.Decimal `json:"buy_rally_pct"`

	// LookbackWindow 滚动最高价的回看窗口
	LookbackWindow time.Duration `json:"lookback_window"`

	// InitialUnits 初始代币数量
	InitialUnits decimal.Decimal `json:"initial_units"`
}

// DefaultParams 返回默认策略参数（5%卖出回落 / 5%买入反弹 / 7天窗口 / 1.0代币）
func DefaultParams() Params {
	return Params{
		SellDrawdownPct: decimal.NewFromInt(5),
		BuyRallyPct:     decimal.NewFromInt(5),
		LookbackWindow:  DefaultLookbackWindow,
		InitialUnits:    decimal.NewFromInt(1),
	}
}

// Validate 验证策略参数
func (p Params) Validate() error {
	if !p.SellDrawdownPct.IsPositive() {
		return fmt.Errorf("%w: sell drawdown percent must be positive, got %s", ErrInvalidParams, p.SellDrawdownPct)
	}
	if !p.BuyRallyPct.IsPositive() {
		return fmt.Errorf("%w: buy rally percent must be positive, got %s", ErrInvalidParams, p.BuyRallyPct)
	}
	if p.LookbackWindow <= 0 {
		return fmt.Errorf("%w: lookback window must be positive, got %s", ErrInvalidParams, p.LookbackWindow)
	}
	if !p.InitialUnits.IsPositive() {
		return fmt.Errorf("%w: initial units must be positive, got %s", ErrInvalidParams, p.InitialUnits)
	}
	return nil
}

// sellMultiplier 卖出触发价相对滚动最高价的系数: 1 - pct/100
func (p Params) sellMultiplier() decimal.Decimal {
	return decimal.NewFromInt(1).Sub(p.SellDrawdownPct.Div(decimal.NewFromInt(100)))
}

// buyMultiplier 买入触发价相对卖后最低价的系数: 1 + pct/100
func (p Params) buyMultiplier() decimal.Decimal {
	return decimal.NewFromInt(1).Add(p.BuyRallyPct.Div(decimal.NewFromInt(100)))
}
