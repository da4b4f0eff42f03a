package recycle

import (
	"fmt"

	"recyclerbot/src/indicators"

	"github.com/shopspring/decimal"
)

// state 一次模拟运行私有的可变状态，运行结束即丢弃
type state struct {
	mode        Mode
	units       decimal.Decimal
	cashValue   decimal.Decimal
	rollingHigh *indicators.RollingHigh
	postSaleLow decimal.Decimal
}

// Simulate 按时间顺序逐K线执行持仓再循环策略模拟
//
// 引擎是纯计算：不做I/O，相同的(bars, params)输入永远产生相同的交易序列。
// 初始状态为 Holding，交易序列严格按 SELL, BUY, SELL, BUY ... 交替。
// 前置条件违反时整个运行中止，不返回部分结果。
func Simulate(bars []PriceBar, params Params) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := validateSeries(bars); err != nil {
		return nil, err
	}

	rollingHigh, err := indicators.NewRollingHigh(params.LookbackWindow)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}

	st := &state{
		mode:        ModeHolding,
		units:       params.InitialUnits,
		rollingHigh: rollingHigh,
	}

	sellMult := params.sellMultiplier()
	buyMult := params.buyMultiplier()

	result := &Result{
		Trades:     make([]Trade, 0),
		Trajectory: make([]TrajectoryPoint, 0, len(bars)),
	}

	for _, bar := range bars {
		// 每根K线只评估当前状态对应的一种触发条件，
		// 触发后状态翻转，下一种检查要到下一根K线才会发生
		switch st.mode {
		case ModeHolding:
			st.stepHolding(bar, sellMult, result)
		case ModeWaiting:
			st.stepWaiting(bar, buyMult, result)
		}

		result.Trajectory = append(result.Trajectory, TrajectoryPoint{
			Timestamp: bar.Timestamp,
			Units:     st.units,
			Mode:      st.mode,
		})
	}

	result.FinalMode = st.mode
	if st.mode == ModeWaiting {
		// 序列在卖出状态结束：资金价值保持未转换，不合成平仓交易
		result.FinalCashValue = st.cashValue
	}

	return result, nil
}

// stepHolding 持有状态：更新滚动最高价并检查卖出触发
func (st *state) stepHolding(bar PriceBar, sellMult decimal.Decimal, result *Result) {
	st.rollingHigh.Push(bar.Timestamp, bar.Price)
	high, _ := st.rollingHigh.Max() // Push之后窗口必然非空

	// 价格恰好等于触发价也算触发
	threshold := high.Mul(sellMult)
	if bar.Price.GreaterThan(threshold) {
		return
	}

	result.Trades = append(result.Trades, Trade{
		Timestamp:    bar.Timestamp,
		Kind:         TradeSell,
		Price:        bar.Price,
		UnitsBefore:  st.units,
		UnitsAfter:   decimal.Zero,
		TriggerLevel: high,
	})

	// 全仓卖出，记下等值资金用于之后买回
	st.cashValue = st.units.Mul(bar.Price)
	st.units = decimal.Zero
	st.mode = ModeWaiting
	st.postSaleLow = bar.Price
}

// stepWaiting 空仓状态：更新卖后最低价并检查买入触发
func (st *state) stepWaiting(bar PriceBar, buyMult decimal.Decimal, result *Result) {
	// 卖出以来的最低价，不设窗口
	if bar.Price.LessThan(st.postSaleLow) {
		st.postSaleLow = bar.Price
	}

	threshold := st.postSaleLow.Mul(buyMult)
	if bar.Price.LessThan(threshold) {
		return
	}

	bought := st.cashValue.Div(bar.Price)

	// 与上一次卖出前的持仓比较，计算本轮循环的代币增减
	prevSell := result.Trades[len(result.Trades)-1]
	profitUnits := bought.Sub(prevSell.UnitsBefore)
	profitPct := decimal.Zero
	if prevSell.UnitsBefore.IsPositive() {
		profitPct = profitUnits.Div(prevSell.UnitsBefore).Mul(decimal.NewFromInt(100))
	}

	result.Trades = append(result.Trades, Trade{
		Timestamp:    bar.Timestamp,
		Kind:         TradeBuy,
		Price:        bar.Price,
		UnitsBefore:  st.units,
		UnitsAfter:   bought,
		TriggerLevel: st.postSaleLow,
		ProfitUnits:  profitUnits,
		ProfitPct:    profitPct,
	})

	st.units = bought
	st.cashValue = decimal.Zero
	st.mode = ModeHolding

	// 回看窗口从买入这根K线重新开始
	st.rollingHigh.Reset()
	st.rollingHigh.Push(bar.Timestamp, bar.Price)
}

// validateSeries 验证价格序列前置条件
func validateSeries(bars []PriceBar) error {
	if len(bars) == 0 {
		return ErrEmptySeries
	}

	for i, bar := range bars {
		if !bar.Price.IsPositive() {
			return fmt.Errorf("%w: bar %d at %s has price %s",
				ErrNonPositivePrice, i, bar.Timestamp.Format("2006-01-02 15:04"), bar.Price)
		}
		if i > 0 && !bar.Timestamp.After(bars[i-1].Timestamp) {
			return fmt.Errorf("%w: bar %d at %s does not advance past bar %d",
				ErrUnorderedSeries, i, bar.Timestamp.Format("2006-01-02 15:04"), i-1)
		}
	}

	return nil
}
