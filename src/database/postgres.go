package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"recyclerbot/src/cex"
	"recyclerbot/src/recycle"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// PostgresDB PostgreSQL数据库连接
type PostgresDB struct {
	db *sql.DB
}

// SimulationRun 一次模拟运行的持久化记录
type SimulationRun struct {
	ID              string          `json:"id"`
	Symbol          string          `json:"symbol"`
	Timeframe       string          `json:"timeframe"`
	SellDrawdownPct decimal.Decimal `json:"sell_drawdown_pct"`
	BuyRallyPct     decimal.Decimal `json:"buy_rally_pct"`
	LookbackHours   int64           `json:"lookback_hours"`
	InitialUnits    decimal.Decimal `json:"initial_units"`
	FinalUnits      decimal.Decimal `json:"final_units"`
	ProfitPct       decimal.Decimal `json:"profit_pct"`
	SuccessRate     decimal.Decimal `json:"success_rate"`
	TotalTrades     int             `json:"total_trades"`
	ProfitableBuys  int             `json:"profitable_buys"`
	StartTime       time.Time       `json:"start_time"`
	EndTime         time.Time       `json:"end_time"`
	CreatedAt       time.Time       `json:"created_at"`
}

// NewPostgresDB 创建PostgreSQL数据库连接
func NewPostgresDB(cfg DatabaseConfig) (*PostgresDB, error) {
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}

	psqlInfo := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, sslmode)

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &PostgresDB{db: db}, nil
}

// Close 关闭数据库连接
func (p *PostgresDB) Close() error {
	return p.db.Close()
}

// SaveKlines 批量保存K线数据，相同(symbol, timeframe, open_time)则更新
func (p *PostgresDB) SaveKlines(ctx context.Context, symbol, timeframe string, klines []*cex.KlineData) error {
	if len(klines) == 0 {
		return nil
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO klines (
			symbol, timeframe, open_time, close_time,
			open_price, high_price, low_price, close_price, volume
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (symbol, timeframe, open_time)
		DO UPDATE SET
			close_time = EXCLUDED.close_time,
			open_price = EXCLUDED.open_price,
			high_price = EXCLUDED.high_price,
			low_price = EXCLUDED.low_price,
			close_price = EXCLUDED.close_price,
			volume = EXCLUDED.volume,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, kline := range klines {
		_, err = stmt.ExecContext(ctx,
			symbol, timeframe, kline.OpenTime.UnixMilli(), kline.CloseTime.UnixMilli(),
			kline.Open, kline.High, kline.Low, kline.Close, kline.Volume,
		)
		if err != nil {
			return fmt.Errorf("failed to insert kline: %w", err)
		}
	}

	return tx.Commit()
}

// GetKlines 获取K线数据，按开盘时间升序
func (p *PostgresDB) GetKlines(ctx context.Context, symbol, timeframe string, startTime, endTime int64, limit int) ([]*cex.KlineData, error) {
	query := `
		SELECT open_time, close_time, open_price, high_price, low_price, close_price, volume
		FROM klines
		WHERE symbol = $1 AND timeframe = $2
	`
	args := []interface{}{symbol, timeframe}
	argIndex := 3

	if startTime > 0 {
		query += fmt.Sprintf(" AND open_time >= $%d", argIndex)
		args = append(args, startTime)
		argIndex++
	}

	if endTime > 0 {
		query += fmt.Sprintf(" AND open_time <= $%d", argIndex)
		args = append(args, endTime)
		argIndex++
	}

	query += " ORDER BY open_time ASC"

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, limit)
	}

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query klines: %w", err)
	}
	defer rows.Close()

	var klines []*cex.KlineData
	for rows.Next() {
		var openTime, closeTime int64
		kline := &cex.KlineData{}
		err := rows.Scan(
			&openTime, &closeTime,
			&kline.Open, &kline.High, &kline.Low, &kline.Close, &kline.Volume,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan kline: %w", err)
		}
		kline.OpenTime = time.Unix(openTime/1000, 0).UTC()
		kline.CloseTime = time.Unix(closeTime/1000, 0).UTC()
		klines = append(klines, kline)
	}

	return klines, rows.Err()
}

// GetLatestKlineTime 获取最新K线的开盘时间（毫秒），无数据返回0
func (p *PostgresDB) GetLatestKlineTime(ctx context.Context, symbol, timeframe string) (int64, error) {
	var openTime sql.NullInt64
	err := p.db.QueryRowContext(ctx,
		"SELECT MAX(open_time) FROM klines WHERE symbol = $1 AND timeframe = $2",
		symbol, timeframe,
	).Scan(&openTime)

	if err != nil {
		return 0, fmt.Errorf("failed to get latest kline time: %w", err)
	}

	if !openTime.Valid {
		return 0, nil
	}

	return openTime.Int64, nil
}

// SaveSimulationRun 保存模拟运行记录
func (p *PostgresDB) SaveSimulationRun(ctx context.Context, run *SimulationRun) error {
	query := `
		INSERT INTO simulation_runs (
			id, symbol, timeframe,
			sell_drawdown_pct, buy_rally_pct, lookback_hours, initial_units,
			final_units, profit_pct, success_rate, total_trades, profitable_buys,
			start_time, end_time
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := p.db.ExecContext(ctx, query,
		run.ID, run.Symbol, run.Timeframe,
		run.SellDrawdownPct, run.BuyRallyPct, run.LookbackHours, run.InitialUnits,
		run.FinalUnits, run.ProfitPct, run.SuccessRate, run.TotalTrades, run.ProfitableBuys,
		run.StartTime, run.EndTime,
	)
	if err != nil {
		return fmt.Errorf("failed to insert simulation run: %w", err)
	}

	return nil
}

// SaveTrades 批量保存一次运行的交易台账
func (p *PostgresDB) SaveTrades(ctx context.Context, runID string, trades []recycle.Trade) error {
	if len(trades) == 0 {
		return nil
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO trades (
			run_id, timestamp, kind, price,
			units_before, units_after, trigger_level, profit_units, profit_pct
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, trade := range trades {
		_, err = stmt.ExecContext(ctx,
			runID, trade.Timestamp, string(trade.Kind), trade.Price,
			trade.UnitsBefore, trade.UnitsAfter, trade.TriggerLevel,
			trade.ProfitUnits, trade.ProfitPct,
		)
		if err != nil {
			return fmt.Errorf("failed to insert trade: %w", err)
		}
	}

	return tx.Commit()
}
