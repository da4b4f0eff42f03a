package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"recyclerbot/src/cex"
	_ "recyclerbot/src/cex/binance"
	"recyclerbot/src/config"
	"recyclerbot/src/database"
	"recyclerbot/src/recycle"
	"recyclerbot/src/report"
	"recyclerbot/src/timeframes"

	"github.com/shopspring/decimal"
	"github.com/xpwu/go-cmd/arg"
	"github.com/xpwu/go-cmd/cmd"
	"github.com/xpwu/go-log/log"
)

// RegisterSimulateCmd 注册再循环策略模拟命令
func RegisterSimulateCmd() {
	var base string
	var quote string
	var timeframe string
	var startDate string
	var endDate string
	var sellPct float64
	var buyPct float64
	var lookbackDays int
	var initialUnits float64
	var csvOut string
	var save bool

	cmd.RegisterCmd("simulate", "run the token recycling strategy simulation", func(args *arg.Arg) {
		args.String(&base, "base", "base currency (e.g., BTC, ETH, BNB)")
		args.String(&quote, "quote", "quote currency (default: USDT)")
		args.String(&timeframe, "t", "timeframe (default: from config, e.g., 4h)")
		args.String(&startDate, "start", "simulation start date YYYY-MM-DD (default: from config)")
		args.String(&endDate, "end", "simulation end date YYYY-MM-DD (default: from config)")
		args.Float64(&sellPct, "sell", "sell drawdown percent from rolling high (default: from config)")
		args.Float64(&buyPct, "buy", "buy rally percent from post-sale low (default: from config)")
		args.Int(&lookbackDays, "lookback", "rolling high lookback window in days (default: from config)")
		args.Float64(&initialUnits, "units", "initial token units (default: from config)")
		args.String(&csvOut, "o", "export trade ledger to CSV file")
		args.Bool(&save, "save", "persist simulation run to database")
		args.Parse()

		// 必需参数检查
		if base == "" {
			fmt.Printf("❌ Error: base currency is required\n")
			fmt.Printf("💡 Usage: ./bin/recyclerbot simulate -base BTC [-quote USDT] [-start 2024-01-01]\n")
			os.Exit(1)
		}
		if quote == "" {
			quote = "USDT"
		}

		// 命令行参数覆盖配置文件
		cfg := config.AppConfig
		if timeframe == "" {
			timeframe = cfg.Trading.Timeframe
		}
		params := cfg.GetStrategyParams()
		if sellPct > 0 {
			params.SellDrawdownPct = decimal.NewFromFloat(sellPct)
		}
		if buyPct > 0 {
			params.BuyRallyPct = decimal.NewFromFloat(buyPct)
		}
		if lookbackDays > 0 {
			params.LookbackWindow = time.Duration(lookbackDays) * 24 * time.Hour
		}
		if initialUnits > 0 {
			params.InitialUnits = decimal.NewFromFloat(initialUnits)
		}

		if err := runSimulation(base, quote, timeframe, startDate, endDate, params, csvOut, save); err != nil {
			fmt.Printf("❌ 模拟失败: %v\n", err)
			os.Exit(1)
		}
	})
}

// runSimulation 执行一次完整的策略模拟
func runSimulation(base, quote, timeframe, startDate, endDate string, params recycle.Params, csvOut string, save bool) error {
	cfg := config.AppConfig

	tf, err := timeframes.ParseTimeframe(timeframe)
	if err != nil {
		return err
	}

	if err := params.Validate(); err != nil {
		return err
	}

	if !cfg.IsSymbolSupported(base, quote) {
		fmt.Printf("⚠️ 交易对 %s/%s 不在配置列表中，继续执行\n", base, quote)
	}

	start, end, err := resolveRange(startDate, endDate)
	if err != nil {
		return err
	}

	pair := cex.TradingPair{Base: base, Quote: quote}

	fmt.Printf("🔄 代币再循环策略模拟\n")
	fmt.Printf("================================\n")
	fmt.Printf("🔸 交易对: %s\n", pair.String())
	fmt.Printf("🔸 时间周期: %s\n", tf.String())
	fmt.Printf("🔸 模拟区间: %s ~ %s\n",
		start.Format("2006-01-02"), end.Format("2006-01-02"))
	fmt.Printf("🔸 卖出回落: %s%% / 买入反弹: %s%%\n",
		params.SellDrawdownPct.String(), params.BuyRallyPct.String())
	fmt.Printf("🔸 回看窗口: %v\n", params.LookbackWindow)
	fmt.Println()

	ctx := context.Background()
	ctx, logger := log.WithCtx(ctx)
	logger.PushPrefix("Simulate")

	client, err := cex.CreateClient(cfg.Exchange.Name)
	if err != nil {
		return err
	}

	// 数据库可选，未配置时走纯网络模式
	var db *database.PostgresDB
	if cfg.Exchange.Database.Host != "" {
		db, err = database.NewPostgresDB(cfg.Exchange.Database)
		if err != nil {
			logger.Error("数据库连接失败，使用纯网络模式", "error", err)
			db = nil
		} else {
			defer db.Close()
		}
	}

	manager := database.NewKlineManager(db, client)

	fmt.Print("🔄 正在获取K线数据...")
	fetchStart := time.Now()
	klines, err := manager.GetKlinesInRange(ctx, pair, tf.String(), start, end)
	if err != nil {
		fmt.Printf("\n❌ 获取K线数据失败: %v\n", err)
		return err
	}
	fmt.Printf(" 完成! (%d 条, 耗时 %v)\n\n", len(klines), time.Since(fetchStart))

	bars := cex.ToPriceBars(klines)
	if err := report.ValidateBars(bars); err != nil {
		return err
	}

	result, err := recycle.Simulate(bars, params)
	if err != nil {
		return err
	}
	metrics := recycle.ComputeMetrics(result, params)

	report.PrintTrades(result.Trades)
	report.PrintMetrics(&metrics)
	fmt.Println()
	fmt.Print(report.Summary(pair.String(), params, result, &metrics))

	if csvOut != "" {
		if err := report.ExportTradesCSV(csvOut, result.Trades); err != nil {
			return err
		}
		fmt.Printf("💾 交易台账已导出: %s\n", csvOut)
	}

	if save {
		if db == nil {
			fmt.Printf("⚠️ 数据库未配置，跳过保存\n")
			return nil
		}
		runID := fmt.Sprintf("run-%d", time.Now().UnixMilli())
		run := &database.SimulationRun{
			ID:              runID,
			Symbol:          pair.String(),
			Timeframe:       tf.String(),
			SellDrawdownPct: params.SellDrawdownPct,
			BuyRallyPct:     params.BuyRallyPct,
			LookbackHours:   int64(params.LookbackWindow.Hours()),
			InitialUnits:    metrics.InitialUnits,
			FinalUnits:      metrics.FinalUnits,
			ProfitPct:       metrics.ProfitPct,
			SuccessRate:     metrics.SuccessRate,
			TotalTrades:     metrics.TotalTrades,
			ProfitableBuys:  metrics.ProfitableBuys,
			StartTime:       start,
			EndTime:         end,
		}
		if err := db.SaveSimulationRun(ctx, run); err != nil {
			return err
		}
		if err := db.SaveTrades(ctx, runID, result.Trades); err != nil {
			return err
		}
		fmt.Printf("💾 模拟记录已保存: %s\n", runID)
	}

	return nil
}

// RegisterAllCommands 注册所有命令
func RegisterAllCommands() {
	RegisterSimulateCmd()
	RegisterKlineCmd()
	RegisterPingCmd()
}

// resolveRange 解析模拟区间，命令行参数优先于配置文件
func resolveRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, end, err := config.AppConfig.GetSimulationRange()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if startDate != "" {
		start, err = time.Parse("2006-01-02", startDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start date: %s", startDate)
		}
	}
	if endDate != "" {
		end, err = time.Parse("2006-01-02", endDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end date: %s", endDate)
		}
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date must be after start date")
	}

	return start, end, nil
}
