package main

import (
	"database/sql"
	"sort"
	"time"
)

// RawStatementRow is one fiscal period of provider data for one bank, as
// merged from the income statement and balance sheet. Any field can be
// missing upstream, so everything numeric is nullable until the row is
// promoted to a FinancialRecord.
type RawStatementRow struct {
	BankName           string
	PeriodEnd          time.Time
	TotalRevenue       sql.NullFloat64
	NetIncome          sql.NullFloat64
	TotalAssets        sql.NullFloat64
	TotalLiabilities   sql.NullFloat64
	StockholdersEquity sql.NullFloat64
}

// Year is the calendar year of the reporting period.
func (r RawStatementRow) Year() int {
	return r.PeriodEnd.Year()
}

// Complete reports whether every raw input is present. Incomplete rows are
// dropped before any ratio work happens.
func (r RawStatementRow) Complete() bool {
	return r.TotalRevenue.Valid &&
		r.NetIncome.Valid &&
		r.TotalAssets.Valid &&
		r.TotalLiabilities.Valid &&
		r.StockholdersEquity.Valid
}

// FinancialRecord is one bank, one fiscal year. Raw inputs are always
// populated (incomplete rows never become records); derived fields stay
// Invalid until the ratio and growth passes fill them in. An Invalid
// NullFloat64 means "absent", which is never the same thing as zero.
type FinancialRecord struct {
	BankName           string
	Year               int
	TotalRevenue       float64
	NetIncome          float64
	TotalAssets        float64
	TotalLiabilities   float64
	StockholdersEquity float64

	ROE           sql.NullFloat64
	ROA           sql.NullFloat64
	ProfitMargin  sql.NullFloat64
	LeverageRatio sql.NullFloat64
	EquityRatio   sql.NullFloat64

	RevenueGrowth   sql.NullFloat64
	NetIncomeGrowth sql.NullFloat64
	AssetsGrowth    sql.NullFloat64
}

// buildRecords promotes complete statement rows to financial records,
// silently dropping incomplete ones. Returns the records plus the number
// of rows dropped so the caller can log it.
func buildRecords(rows []RawStatementRow) ([]FinancialRecord, int) {
	records := make([]FinancialRecord, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		if !row.Complete() {
			dropped++
			continue
		}
		records = append(records, FinancialRecord{
			BankName:           row.BankName,
			Year:               row.Year(),
			TotalRevenue:       row.TotalRevenue.Float64,
			NetIncome:          row.NetIncome.Float64,
			TotalAssets:        row.TotalAssets.Float64,
			TotalLiabilities:   row.TotalLiabilities.Float64,
			StockholdersEquity: row.StockholdersEquity.Float64,
		})
	}
	return records, dropped
}

// sortRecords orders records by bank name, then ascending year. Growth and
// analysis both depend on this ordering within a bank; ordering across banks
// only matters for stable output.
func sortRecords(records []FinancialRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].BankName != records[j].BankName {
			return records[i].BankName < records[j].BankName
		}
		return records[i].Year < records[j].Year
	})
}

// recordsByBank splits a sorted record set into per-bank series, keeping
// the ascending-year order within each bank.
func recordsByBank(records []FinancialRecord) map[string][]FinancialRecord {
	byBank := make(map[string][]FinancialRecord)
	for _, record := range records {
		byBank[record.BankName] = append(byBank[record.BankName], record)
	}
	return byBank
}

// bankNames returns the distinct bank names of a record set, sorted.
func bankNames(records []FinancialRecord) []string {
	seen := map[string]bool{}
	names := []string{}
	for _, record := range records {
		if !seen[record.BankName] {
			seen[record.BankName] = true
			names = append(names, record.BankName)
		}
	}
	sort.Strings(names)
	return names
}

// latestYear returns the most recent year present in the record set.
func latestYear(records []FinancialRecord) int {
	latest := 0
	for _, record := range records {
		if record.Year > latest {
			latest = record.Year
		}
	}
	return latest
}
