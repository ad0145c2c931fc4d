package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateRatios(t *testing.T) {
	records := []FinancialRecord{{
		BankName:           "BankA",
		Year:               2023,
		TotalRevenue:       4800,
		NetIncome:          600,
		TotalAssets:        44000,
		TotalLiabilities:   39200,
		StockholdersEquity: 4800,
	}}

	out := calculateRatios(records)
	require.Len(t, out, 1)

	record := out[0]
	require.True(t, record.ROE.Valid)
	assert.InDelta(t, 0.125, record.ROE.Float64, 1e-9)
	require.True(t, record.ROA.Valid)
	assert.InDelta(t, 600.0/44000.0, record.ROA.Float64, 1e-9)
	require.True(t, record.ProfitMargin.Valid)
	assert.InDelta(t, 12.5, record.ProfitMargin.Float64, 1e-9)
	require.True(t, record.LeverageRatio.Valid)
	assert.InDelta(t, 39200.0/4800.0, record.LeverageRatio.Float64, 1e-9)
	require.True(t, record.EquityRatio.Valid)
	assert.InDelta(t, 4800.0/44000.0*100, record.EquityRatio.Float64, 1e-9)

	// input left untouched
	assert.False(t, records[0].ROE.Valid)
}

func TestCalculateRatiosZeroDenominators(t *testing.T) {
	records := []FinancialRecord{{
		BankName:           "BankB",
		Year:               2023,
		TotalRevenue:       0,
		NetIncome:          100,
		TotalAssets:        0,
		TotalLiabilities:   500,
		StockholdersEquity: 0,
	}}

	record := calculateRatios(records)[0]
	assert.False(t, record.ROE.Valid, "zero equity must not produce a ROE")
	assert.False(t, record.ROA.Valid)
	assert.False(t, record.ProfitMargin.Valid)
	assert.False(t, record.LeverageRatio.Valid)
	assert.False(t, record.EquityRatio.Valid)
}
