package main

import "database/sql"

// nullDiv divides and returns an Invalid NullFloat64 when the denominator is
// zero. Missing is distinguishable from a computed zero all the way through
// the CSV and the report.
func nullDiv(numerator, denominator float64) sql.NullFloat64 {
	if denominator == 0 {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: numerator / denominator, Valid: true}
}

// nullScale multiplies a nullable value, keeping Invalid as Invalid.
func nullScale(v sql.NullFloat64, factor float64) sql.NullFloat64 {
	if !v.Valid {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v.Float64 * factor, Valid: true}
}

// calculateRatios returns a new record set with the five derived ratios
// populated. Input records are not mutated; recomputation replaces.
func calculateRatios(records []FinancialRecord) []FinancialRecord {
	out := make([]FinancialRecord, len(records))
	for i, record := range records {
		record.LeverageRatio = nullDiv(record.TotalLiabilities, record.StockholdersEquity)
		record.ROE = nullDiv(record.NetIncome, record.StockholdersEquity)
		record.ROA = nullDiv(record.NetIncome, record.TotalAssets)
		record.ProfitMargin = nullScale(nullDiv(record.NetIncome, record.TotalRevenue), 100)
		record.EquityRatio = nullScale(nullDiv(record.StockholdersEquity, record.TotalAssets), 100)
		out[i] = record
	}
	return out
}
