package main

import "database/sql"

// pctChange is the period-over-period percentage change, Invalid when the
// prior value is zero.
func pctChange(current, previous float64) sql.NullFloat64 {
	if previous == 0 {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: (current - previous) / previous * 100, Valid: true}
}

// calculateGrowthRates returns a new record set with year-over-year growth of
// revenue, net income and total assets populated per bank. "Previous" is the
// previous record in ascending-year order for that bank, so year gaps are
// tolerated; the first record of each bank keeps all growth fields absent.
func calculateGrowthRates(records []FinancialRecord) []FinancialRecord {
	out := make([]FinancialRecord, len(records))
	copy(out, records)
	sortRecords(out)

	prevIdx := map[string]int{}
	for i := range out {
		record := &out[i]
		record.RevenueGrowth = sql.NullFloat64{}
		record.NetIncomeGrowth = sql.NullFloat64{}
		record.AssetsGrowth = sql.NullFloat64{}

		if j, ok := prevIdx[record.BankName]; ok {
			prev := out[j]
			record.RevenueGrowth = pctChange(record.TotalRevenue, prev.TotalRevenue)
			record.NetIncomeGrowth = pctChange(record.NetIncome, prev.NetIncome)
			record.AssetsGrowth = pctChange(record.TotalAssets, prev.TotalAssets)
		}
		prevIdx[record.BankName] = i
	}
	return out
}
