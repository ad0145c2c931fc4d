package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// The enriched dataset is the contract boundary between the calculation
// pipeline and the report renderer: the raw columns plus the ratio and
// growth columns, one row per (bank, year). Absent derived values are empty
// cells, never zeros.

const enrichedFile = "bank_financials_complete.csv"

var enrichedHeader = []string{
	"", "bank", "year",
	"total_revenue", "net_income", "total_assets", "total_liabilities", "stockholders_equity",
	"leverage_ratio", "roe", "roa", "profit_margin", "equity_ratio",
	"revenue_growth", "net_income_growth", "assets_growth",
}

func enrichedPath(deps *Dependencies) string {
	return filepath.Join(deps.config.DataDir, enrichedFile)
}

func writeEnrichedCSV(deps *Dependencies, records []FinancialRecord) (string, error) {
	if err := os.MkdirAll(deps.config.DataDir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	path := enrichedPath(deps)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create dataset file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(enrichedHeader); err != nil {
		return "", err
	}
	for i, record := range records {
		line := []string{
			strconv.Itoa(i),
			record.BankName,
			strconv.Itoa(record.Year),
			strconv.FormatFloat(record.TotalRevenue, 'f', -1, 64),
			strconv.FormatFloat(record.NetIncome, 'f', -1, 64),
			strconv.FormatFloat(record.TotalAssets, 'f', -1, 64),
			strconv.FormatFloat(record.TotalLiabilities, 'f', -1, 64),
			strconv.FormatFloat(record.StockholdersEquity, 'f', -1, 64),
			nullCell(record.LeverageRatio),
			nullCell(record.ROE),
			nullCell(record.ROA),
			nullCell(record.ProfitMargin),
			nullCell(record.EquityRatio),
			nullCell(record.RevenueGrowth),
			nullCell(record.NetIncomeGrowth),
			nullCell(record.AssetsGrowth),
		}
		if err := writer.Write(line); err != nil {
			return "", err
		}
	}
	writer.Flush()
	return path, writer.Error()
}

// readEnrichedCSV loads the enriched dataset back. Rows with a missing raw
// input are dropped, the same policy the loader applies to provider rows.
func readEnrichedCSV(deps *Dependencies) ([]FinancialRecord, error) {
	file, err := os.Open(enrichedPath(deps))
	if err != nil {
		return nil, fmt.Errorf("open dataset file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	lines, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset file: %w", err)
	}

	records := make([]FinancialRecord, 0, len(lines))
	dropped := 0
	for n, line := range lines {
		if n == 0 || len(line) < len(enrichedHeader) {
			continue
		}
		year, err := strconv.Atoi(line[2])
		if err != nil {
			dropped++
			continue
		}
		raw := [5]float64{}
		complete := true
		for i := 0; i < 5; i++ {
			value := parseNullCell(line[3+i])
			if !value.Valid {
				complete = false
				break
			}
			raw[i] = value.Float64
		}
		if !complete {
			dropped++
			continue
		}
		records = append(records, FinancialRecord{
			BankName:           line[1],
			Year:               year,
			TotalRevenue:       raw[0],
			NetIncome:          raw[1],
			TotalAssets:        raw[2],
			TotalLiabilities:   raw[3],
			StockholdersEquity: raw[4],
			LeverageRatio:      parseNullCell(line[8]),
			ROE:                parseNullCell(line[9]),
			ROA:                parseNullCell(line[10]),
			ProfitMargin:       parseNullCell(line[11]),
			EquityRatio:        parseNullCell(line[12]),
			RevenueGrowth:      parseNullCell(line[13]),
			NetIncomeGrowth:    parseNullCell(line[14]),
			AssetsGrowth:       parseNullCell(line[15]),
		})
	}
	if dropped > 0 {
		deps.logger.Debug().Int("dropped", dropped).Msg("dropped rows with missing raw inputs")
	}
	if len(records) == 0 {
		return nil, errEmptyDataset
	}
	sortRecords(records)
	return records, nil
}
