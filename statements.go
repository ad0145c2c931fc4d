package main

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Raw statement persistence between `fetch` and `prepare`: one CSV row per
// (bank, period), nullable cells written empty. The first column is a row
// index and ignored on read.

const statementsFile = "bank_statements.csv"
const periodDateLayout = "2006-01-02"

var statementsHeader = []string{"", "bank", "period_end", "total_revenue", "net_income", "total_assets", "total_liabilities", "stockholders_equity"}

func nullCell(v sql.NullFloat64) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Float64, 'f', -1, 64)
}

func parseNullCell(cell string) sql.NullFloat64 {
	if cell == "" {
		return sql.NullFloat64{}
	}
	value, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: value, Valid: true}
}

func writeStatementsCSV(deps *Dependencies, rows []RawStatementRow) (string, error) {
	if err := os.MkdirAll(deps.config.DataDir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	path := filepath.Join(deps.config.DataDir, statementsFile)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create statements file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(statementsHeader); err != nil {
		return "", err
	}
	for i, row := range rows {
		record := []string{
			strconv.Itoa(i),
			row.BankName,
			row.PeriodEnd.Format(periodDateLayout),
			nullCell(row.TotalRevenue),
			nullCell(row.NetIncome),
			nullCell(row.TotalAssets),
			nullCell(row.TotalLiabilities),
			nullCell(row.StockholdersEquity),
		}
		if err := writer.Write(record); err != nil {
			return "", err
		}
	}
	writer.Flush()
	return path, writer.Error()
}

func readStatementsCSV(deps *Dependencies) ([]RawStatementRow, error) {
	path := filepath.Join(deps.config.DataDir, statementsFile)
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open statements file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	lines, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read statements file: %w", err)
	}

	rows := make([]RawStatementRow, 0, len(lines))
	for n, line := range lines {
		if n == 0 || len(line) < len(statementsHeader) {
			continue
		}
		periodEnd, err := time.Parse(periodDateLayout, line[2])
		if err != nil {
			deps.logger.Warn().Str("period_end", line[2]).Int("line", n+1).Msg("skipping row with unparseable period date")
			continue
		}
		rows = append(rows, RawStatementRow{
			BankName:           line[1],
			PeriodEnd:          periodEnd,
			TotalRevenue:       parseNullCell(line[3]),
			NetIncome:          parseNullCell(line[4]),
			TotalAssets:        parseNullCell(line[5]),
			TotalLiabilities:   parseNullCell(line[6]),
			StockholdersEquity: parseNullCell(line[7]),
		})
	}
	return rows, nil
}
