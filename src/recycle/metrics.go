package recycle

import "github.com/shopspring/decimal"

// Metrics 策略表现汇总指标
type Metrics struct {
	TotalTrades    int `json:"total_trades"`
	TotalBuys      int `json:"total_buys"`
	ProfitableBuys int `json:"profitable_buys"`
	LosingBuys     int `json:"losing_buys"`

	InitialUnits decimal.Decimal `json:"initial_units"`
	FinalUnits   decimal.Decimal `json:"final_units"`
	ProfitUnits  decimal.Decimal `json:"profit_units"`
	ProfitPct    decimal.Decimal `json:"profit_pct"`

	// SuccessRate 获利买入占全部买入的百分比
	SuccessRate decimal.Decimal `json:"success_rate"`

	// EndedWaiting 序列是否在空仓状态结束，此时 FinalCashValue 为未转换资金
	EndedWaiting   bool            `json:"ended_waiting"`
	FinalCashValue decimal.Decimal `json:"final_cash_value"`
}

// ComputeMetrics 汇总一次模拟的表现指标
//
// 买入是否获利只看代币数量：买回数量严格大于上次卖出前数量才算获利，
// 数量相等不计入获利。最终代币数取最后一次买入后的持仓；
// 若从未买入（包括从未交易）则仍是初始数量。
func ComputeMetrics(result *Result, params Params) Metrics {
	m := Metrics{
		InitialUnits: params.InitialUnits,
		FinalUnits:   params.InitialUnits,
	}
	if result == nil {
		return m
	}

	m.TotalTrades = len(result.Trades)
	m.EndedWaiting = result.FinalMode == ModeWaiting
	m.FinalCashValue = result.FinalCashValue

	for _, trade := range result.Trades {
		if trade.Kind != TradeBuy {
			continue
		}
		m.TotalBuys++
		if trade.ProfitUnits.IsPositive() {
			m.ProfitableBuys++
		} else if trade.ProfitUnits.IsNegative() {
			m.LosingBuys++
		}
		m.FinalUnits = trade.UnitsAfter
	}

	m.ProfitUnits = m.FinalUnits.Sub(m.InitialUnits)
	if m.InitialUnits.IsPositive() {
		m.ProfitPct = m.ProfitUnits.Div(m.InitialUnits).Mul(decimal.NewFromInt(100))
	}
	if m.TotalBuys > 0 {
		m.SuccessRate = decimal.NewFromInt(int64(m.ProfitableBuys)).
			Div(decimal.NewFromInt(int64(m.TotalBuys))).
			Mul(decimal.NewFromInt(100))
	}

	return m
}
