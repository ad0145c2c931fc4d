package main

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDeps(t *testing.T) *Dependencies {
	t.Helper()
	logger := zerolog.Nop()
	return &Dependencies{
		logger: &logger,
		config: &Config{
			Banks: []BankConfig{
				{Name: "BankA", Symbol: "BKA", Color: "#00915A"},
				{Name: "BankB", Symbol: "BKB", Color: "#E60028"},
			},
			DataDir:         t.TempDir(),
			OutputDir:       t.TempDir(),
			ProjectionYears: 3,
			ServerAddr:      ":0",
		},
		secrets: map[string]string{},
	}
}

func TestEnrichedCSVRoundTrip(t *testing.T) {
	deps := newTestDeps(t)

	records := calculateGrowthRates(calculateRatios([]FinancialRecord{
		rawRecord("BankA", 2022, 4000, 400, 40000),
		rawRecord("BankA", 2023, 4800, 600, 44000),
	}))

	_, err := writeEnrichedCSV(deps, records)
	require.NoError(t, err)

	got, err := readEnrichedCSV(deps)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, records[0].BankName, got[0].BankName)
	assert.Equal(t, records[0].Year, got[0].Year)
	assert.False(t, got[0].RevenueGrowth.Valid, "absent growth survives the round trip as absent")
	require.True(t, got[1].RevenueGrowth.Valid)
	assert.InDelta(t, 20.0, got[1].RevenueGrowth.Float64, 1e-9)
	require.True(t, got[1].ROE.Valid)
	assert.InDelta(t, 600.0/4400.0, got[1].ROE.Float64, 1e-9)
}

func TestReadEnrichedCSVDropsIncompleteRows(t *testing.T) {
	deps := newTestDeps(t)

	content := "" +
		",bank,year,total_revenue,net_income,total_assets,total_liabilities,stockholders_equity,leverage_ratio,roe,roa,profit_margin,equity_ratio,revenue_growth,net_income_growth,assets_growth\n" +
		"0,BankA,2023,4800,600,44000,39200,4800,,,,,,,,\n" +
		"1,BankB,2023,1000,,9000,8000,1000,,,,,,,,\n"
	require.NoError(t, os.WriteFile(filepath.Join(deps.config.DataDir, enrichedFile), []byte(content), 0o644))

	records, err := readEnrichedCSV(deps)
	require.NoError(t, err)
	require.Len(t, records, 1, "rows missing a raw input are dropped")
	assert.Equal(t, "BankA", records[0].BankName)
}

func TestReadEnrichedCSVEmpty(t *testing.T) {
	deps := newTestDeps(t)
	header := ",bank,year,total_revenue,net_income,total_assets,total_liabilities,stockholders_equity,leverage_ratio,roe,roa,profit_margin,equity_ratio,revenue_growth,net_income_growth,assets_growth\n"
	require.NoError(t, os.WriteFile(filepath.Join(deps.config.DataDir, enrichedFile), []byte(header), 0o644))

	_, err := readEnrichedCSV(deps)
	assert.ErrorIs(t, err, errEmptyDataset)
}

func TestStatementsCSVRoundTrip(t *testing.T) {
	deps := newTestDeps(t)

	rows := []RawStatementRow{
		{
			BankName:           "BankA",
			PeriodEnd:          time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
			TotalRevenue:       sql.NullFloat64{Float64: 4800, Valid: true},
			NetIncome:          sql.NullFloat64{Float64: 600, Valid: true},
			TotalAssets:        sql.NullFloat64{Float64: 44000, Valid: true},
			TotalLiabilities:   sql.NullFloat64{Float64: 39200, Valid: true},
			StockholdersEquity: sql.NullFloat64{Float64: 4800, Valid: true},
		},
		{
			BankName:  "BankB",
			PeriodEnd: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
			NetIncome: sql.NullFloat64{Float64: 50, Valid: true},
		},
	}

	_, err := writeStatementsCSV(deps, rows)
	require.NoError(t, err)

	got, err := readStatementsCSV(deps)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 2023, got[0].Year())
	assert.True(t, got[0].Complete())
	assert.False(t, got[1].Complete())
	assert.False(t, got[1].TotalRevenue.Valid)
	require.True(t, got[1].NetIncome.Valid)
	assert.InDelta(t, 50.0, got[1].NetIncome.Float64, 1e-9)
}
