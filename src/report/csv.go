package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"recyclerbot/src/recycle"
)

var csvHeader = []string{
	"timestamp", "kind", "price",
	"units_before", "units_after", "trigger_level",
	"profit_units", "profit_pct",
}

// WriteTradesCSV 将交易台账写出为CSV
func WriteTradesCSV(w io.Writer, trades []recycle.Trade) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, trade := range trades {
		record := []string{
			trade.Timestamp.UTC().Format(time.RFC3339),
			string(trade.Kind),
			trade.Price.String(),
			trade.UnitsBefore.String(),
			trade.UnitsAfter.String(),
			trade.TriggerLevel.String(),
			trade.ProfitUnits.String(),
			trade.ProfitPct.String(),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportTradesCSV 将交易台账导出到文件
func ExportTradesCSV(path string, trades []recycle.Trade) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer file.Close()

	return WriteTradesCSV(file, trades)
}
