package main

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyzedSeries(t *testing.T, records []FinancialRecord) BankAnalysis {
	t.Helper()
	analysis, err := analyzeBank(calculateRatios(records))
	require.NoError(t, err)
	return analysis
}

func TestAnalyzeBankHealthy(t *testing.T) {
	// margin 16.7% and 20%, leverage 9, improving ROE
	analysis := analyzedSeries(t, []FinancialRecord{
		rawRecord("BankA", 2021, 3000, 500, 40000),
		rawRecord("BankA", 2022, 3200, 600, 42000),
		rawRecord("BankA", 2023, 3500, 700, 44000),
	})

	assert.Equal(t, "growth", analysis.GrowthTrend)
	assert.Len(t, analysis.Strengths, 4)
	assert.Empty(t, analysis.Weaknesses)
	assert.Equal(t, []string{"Maintain the current trajectory"}, analysis.Recommendations)
}

func TestAnalyzeBankConstantROE(t *testing.T) {
	// identical ratios both years: ROE change is exactly zero
	analysis := analyzedSeries(t, []FinancialRecord{
		rawRecord("BankA", 2022, 1000, 100, 10000),
		rawRecord("BankA", 2023, 2000, 200, 20000),
	})

	require.True(t, analysis.ROEChange.Valid)
	assert.Zero(t, analysis.ROEChange.Float64)
	assert.Equal(t, "decline", analysis.GrowthTrend, "zero change is not growth")
}

func TestAnalyzeBankFourStatementInvariant(t *testing.T) {
	series := [][]FinancialRecord{
		{
			rawRecord("BankA", 2022, 4000, 400, 40000),
			rawRecord("BankA", 2023, 4800, 600, 44000),
		},
		{
			rawRecord("BankB", 2023, 1000, 50, 30000),
		},
		{
			rawRecord("BankC", 2021, 2000, 500, 15000),
			rawRecord("BankC", 2022, 2100, 480, 16000),
			rawRecord("BankC", 2023, 2200, 460, 17000),
		},
	}
	for _, records := range series {
		analysis := analyzedSeries(t, records)
		total := len(analysis.Strengths) + len(analysis.Weaknesses)
		assert.Equal(t, 4, total, "%s must get exactly four statements", analysis.BankName)
	}
}

func TestAnalyzeBankSingleYear(t *testing.T) {
	analysis := analyzedSeries(t, []FinancialRecord{
		rawRecord("BankA", 2023, 1000, 100, 10000),
	})

	assert.True(t, analysis.InsufficientHistory)
	assert.False(t, analysis.ROEChange.Valid)
	assert.Equal(t, insufficientData, analysis.GrowthTrend)
	assert.Equal(t, insufficientData, analysis.Stability)
	assert.Contains(t, analysis.Weaknesses, "ROE trend not measurable (insufficient data)")
}

func TestAnalyzeBankEmpty(t *testing.T) {
	_, err := analyzeBank(nil)
	assert.ErrorIs(t, err, errNoRecords)
}

func TestBuildRecommendationsOrder(t *testing.T) {
	analysis := BankAnalysis{
		LatestMargin:   sql.NullFloat64{Float64: 8, Valid: true},
		LatestLeverage: sql.NullFloat64{Float64: 15, Valid: true},
		ROEChange:      sql.NullFloat64{Float64: -12, Valid: true},
	}
	recommendations := buildRecommendations(analysis)
	require.Len(t, recommendations, 3)
	assert.Equal(t, "Improve operating efficiency to lift margins", recommendations[0])
	assert.Equal(t, "Strengthen the equity base to reduce financial risk", recommendations[1])
	assert.Equal(t, "Investigate the drivers behind the decline in profitability", recommendations[2])
}

func TestNullComparisons(t *testing.T) {
	absent := sql.NullFloat64{}
	assert.False(t, nullGT(absent, 0))
	assert.False(t, nullLT(absent, 100), "absent compares false both ways")
}
