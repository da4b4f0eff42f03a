package cmd

import (
	"context"
	"fmt"
	"time"

	"recyclerbot/src/cex"
	_ "recyclerbot/src/cex/binance"
	"recyclerbot/src/config"
	"recyclerbot/src/timeframes"

	"github.com/xpwu/go-cmd/arg"
	"github.com/xpwu/go-cmd/cmd"
)

// RegisterKlineCmd 注册K线数据测试命令
func RegisterKlineCmd() {
	var base string
	var quote string
	var timeframe string
	var limit int
	var verbose bool

	cmd.RegisterCmd("kline", "test kline data fetching from the exchange", func(args *arg.Arg) {
		args.String(&base, "base", "base currency (default: BTC)")
		args.String(&quote, "quote", "quote currency (default: USDT)")
		args.String(&timeframe, "t", "kline timeframe (default: 4h)")
		args.Int(&limit, "l", "number of klines (default: 10, max: 1000)")
		args.Bool(&verbose, "v", "verbose output with kline rows")
		args.Parse()

		if base == "" {
			base = "BTC"
		}
		if quote == "" {
			quote = "USDT"
		}
		if timeframe == "" {
			timeframe = "4h"
		}
		if limit <= 0 {
			limit = 10
		}
		if limit > 1000 {
			limit = 1000
		}

		if err := runKlineTest(base, quote, timeframe, limit, verbose); err != nil {
			fmt.Printf("❌ K线数据测试失败: %v\n", err)
			return
		}
	})
}

// runKlineTest 执行K线数据获取测试
func runKlineTest(base, quote, timeframe string, limit int, verbose bool) error {
	tf, err := timeframes.ParseTimeframe(timeframe)
	if err != nil {
		return err
	}

	pair := cex.TradingPair{Base: base, Quote: quote}

	fmt.Printf("📊 K线数据获取测试\n")
	fmt.Printf("================================\n")
	fmt.Printf("🔸 交易对: %s\n", pair.String())
	fmt.Printf("🔸 时间周期: %s\n", tf.String())
	fmt.Printf("🔸 数据条数: %d\n", limit)
	fmt.Println()

	client, err := cex.CreateClient(config.AppConfig.Exchange.Name)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Print("🔄 正在获取K线数据...")
	startTime := time.Now()

	klines, err := client.GetKlines(ctx, pair, tf.GetBinanceInterval(), limit)
	if err != nil {
		fmt.Printf("\n❌ 获取失败: %v\n", err)
		return err
	}

	fmt.Printf(" 完成! (耗时: %v)\n", time.Since(startTime))

	if len(klines) == 0 {
		fmt.Println("⚠️ 未获取到K线数据")
		return nil
	}

	fmt.Printf("✅ 成功获取 %d 条K线数据\n\n", len(klines))
	fmt.Printf("├─ 最早时间: %s\n", klines[0].OpenTime.Format("2006-01-02 15:04:05"))
	fmt.Printf("├─ 最新时间: %s\n", klines[len(klines)-1].OpenTime.Format("2006-01-02 15:04:05"))
	fmt.Printf("└─ 最新收盘价: %s %s\n", klines[len(klines)-1].Close.String(), quote)

	if verbose {
		fmt.Println()
		fmt.Printf("%-20s | %10s | %10s | %10s | %10s | %10s\n",
			"开盘时间", "开盘", "最高", "最低", "收盘", "成交量")
		for _, k := range klines {
			fmt.Printf("%-20s | %10s | %10s | %10s | %10s | %10s\n",
				k.OpenTime.Format("2006-01-02 15:04"),
				k.Open.StringFixed(2), k.High.StringFixed(2),
				k.Low.StringFixed(2), k.Close.StringFixed(2),
				k.Volume.StringFixed(2))
		}
	}

	return nil
}
