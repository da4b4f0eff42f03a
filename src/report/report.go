package report

import (
	"fmt"
	"strings"
	"time"

	"recyclerbot/src/recycle"

	"github.com/shopspring/decimal"
)

// MinDataSpan 报告要求的最小数据跨度，低于回看窗口的数据没有参考价值
const MinDataSpan = 7 * 24 * time.Hour

// ErrInsufficientData 数据跨度不足
var ErrInsufficientData = fmt.Errorf("price data spans less than %v", MinDataSpan)

// ValidateBars 校验数据跨度是否满足报告要求
func ValidateBars(bars []recycle.PriceBar) error {
	if len(bars) < 2 {
		return ErrInsufficientData
	}
	span := bars[len(bars)-1].Timestamp.Sub(bars[0].Timestamp)
	if span < MinDataSpan {
		return fmt.Errorf("%w: got %v", ErrInsufficientData, span)
	}
	return nil
}

// Summary 生成模拟结果的文本摘要报告
func Summary(symbol string, params recycle.Params, result *recycle.Result, metrics *recycle.Metrics) string {
	var b strings.Builder

	b.WriteString("========================================\n")
	b.WriteString("       代币再循环策略 - 模拟报告\n")
	b.WriteString("========================================\n")
	fmt.Fprintf(&b, "交易对:       %s\n", symbol)
	fmt.Fprintf(&b, "卖出回落:     %s%%\n", params.SellDrawdownPct.String())
	fmt.Fprintf(&b, "买入反弹:     %s%%\n", params.BuyRallyPct.String())
	fmt.Fprintf(&b, "回看窗口:     %v\n", params.LookbackWindow)
	b.WriteString("----------------------------------------\n")
	fmt.Fprintf(&b, "初始数量:     %s\n", metrics.InitialUnits.String())
	fmt.Fprintf(&b, "最终数量:     %s\n", metrics.FinalUnits.String())
	fmt.Fprintf(&b, "累积收益:     %s (%s%%)\n",
		metrics.ProfitUnits.String(), metrics.ProfitPct.StringFixed(2))
	b.WriteString("----------------------------------------\n")
	fmt.Fprintf(&b, "总交易次数:   %d\n", metrics.TotalTrades)
	fmt.Fprintf(&b, "买回次数:     %d\n", metrics.TotalBuys)
	fmt.Fprintf(&b, "盈利买回:     %d\n", metrics.ProfitableBuys)
	fmt.Fprintf(&b, "亏损买回:     %d\n", metrics.LosingBuys)
	fmt.Fprintf(&b, "成功率:       %s%%\n", metrics.SuccessRate.StringFixed(2))

	if metrics.EndedWaiting {
		b.WriteString("----------------------------------------\n")
		fmt.Fprintf(&b, "结束状态:     %s (现金价值 %s)\n",
			result.FinalMode.String(), metrics.FinalCashValue.String())
	} else {
		b.WriteString("----------------------------------------\n")
		fmt.Fprintf(&b, "结束状态:     %s\n", result.FinalMode.String())
	}
	b.WriteString("========================================\n")

	return b.String()
}

// PrintTrades 在控制台打印交易台账
func PrintTrades(trades []recycle.Trade) {
	if len(trades) == 0 {
		fmt.Printf("📋 无交易记录\n")
		return
	}

	fmt.Printf("📋 交易台账 (%d 笔):\n\n", len(trades))
	fmt.Printf("%-20s | %-4s | %12s | %12s | %12s | %12s\n",
		"时间", "类型", "价格", "触发价", "数量(后)", "数量变化")
	fmt.Printf("%s\n", strings.Repeat("-", 90))

	for _, trade := range trades {
		delta := trade.UnitsAfter.Sub(trade.UnitsBefore)
		icon := "🔴"
		if trade.Kind == recycle.TradeBuy {
			icon = "🟢"
			delta = trade.ProfitUnits
		}
		fmt.Printf("%-20s | %s%-3s | %12s | %12s | %12s | %12s\n",
			trade.Timestamp.Format("2006-01-02 15:04"),
			icon, trade.Kind,
			trade.Price.StringFixed(4),
			trade.TriggerLevel.StringFixed(4),
			trade.UnitsAfter.StringFixed(6),
			delta.StringFixed(6),
		)
	}
	fmt.Println()
}

// PrintMetrics 在控制台打印模拟指标，带涨跌标记
func PrintMetrics(metrics *recycle.Metrics) {
	fmt.Printf("📊 模拟结果:\n")
	fmt.Printf("├─ 初始数量: %s\n", metrics.InitialUnits.String())
	fmt.Printf("├─ 最终数量: %s\n", metrics.FinalUnits.String())
	fmt.Printf("├─ 买回次数: %d (盈利 %d / 亏损 %d)\n",
		metrics.TotalBuys, metrics.ProfitableBuys, metrics.LosingBuys)
	fmt.Printf("├─ 成功率: %s%%\n", metrics.SuccessRate.StringFixed(2))

	switch {
	case metrics.ProfitUnits.IsPositive():
		fmt.Printf("└─ 累积收益: 📈 +%s (%s%%)\n",
			metrics.ProfitUnits.String(), metrics.ProfitPct.StringFixed(2))
	case metrics.ProfitUnits.IsNegative():
		fmt.Printf("└─ 累积收益: 📉 %s (%s%%)\n",
			metrics.ProfitUnits.String(), metrics.ProfitPct.StringFixed(2))
	default:
		fmt.Printf("└─ 累积收益: ➡️ %s\n", decimal.Zero.String())
	}
}
