package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawRecord(bank string, year int, revenue, income, assets float64) FinancialRecord {
	return FinancialRecord{
		BankName:           bank,
		Year:               year,
		TotalRevenue:       revenue,
		NetIncome:          income,
		TotalAssets:        assets,
		TotalLiabilities:   assets * 0.9,
		StockholdersEquity: assets * 0.1,
	}
}

func TestCalculateGrowthRates(t *testing.T) {
	records := []FinancialRecord{
		rawRecord("BankA", 2022, 4000, 400, 40000),
		rawRecord("BankA", 2023, 4800, 600, 44000),
		rawRecord("BankB", 2023, 1000, 50, 9000),
	}

	out := calculateGrowthRates(records)
	require.Len(t, out, 3)

	first := out[0]
	assert.False(t, first.RevenueGrowth.Valid, "earliest year has no growth")
	assert.False(t, first.NetIncomeGrowth.Valid)
	assert.False(t, first.AssetsGrowth.Valid)

	second := out[1]
	require.True(t, second.RevenueGrowth.Valid)
	assert.InDelta(t, 20.0, second.RevenueGrowth.Float64, 1e-9)
	assert.InDelta(t, 50.0, second.NetIncomeGrowth.Float64, 1e-9)
	assert.InDelta(t, 10.0, second.AssetsGrowth.Float64, 1e-9)

	// other banks never contribute to a bank's growth baseline
	assert.False(t, out[2].RevenueGrowth.Valid)
}

func TestCalculateGrowthRatesYearGap(t *testing.T) {
	records := []FinancialRecord{
		rawRecord("BankA", 2020, 1000, 100, 10000),
		rawRecord("BankA", 2023, 1500, 150, 12000),
	}

	out := calculateGrowthRates(records)
	require.True(t, out[1].RevenueGrowth.Valid, "gap years compare against the previous available record")
	assert.InDelta(t, 50.0, out[1].RevenueGrowth.Float64, 1e-9)
}

func TestPctChangeZeroPrevious(t *testing.T) {
	assert.False(t, pctChange(100, 0).Valid)

	change := pctChange(-50, 100)
	require.True(t, change.Valid)
	assert.InDelta(t, -150.0, change.Float64, 1e-9)
}
