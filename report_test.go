package main

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pipelineRecords() []FinancialRecord {
	return calculateGrowthRates(calculateRatios([]FinancialRecord{
		rawRecord("BankA", 2021, 3000, 500, 40000),
		rawRecord("BankA", 2022, 3200, 600, 42000),
		rawRecord("BankA", 2023, 3500, 700, 44000),
		rawRecord("BankB", 2022, 1000, 50, 30000),
		rawRecord("BankB", 2023, 1100, 60, 31000),
	}))
}

func TestBuildDashboardView(t *testing.T) {
	deps := newTestDeps(t)
	view, err := buildDashboardView(deps, pipelineRecords())
	require.NoError(t, err)

	assert.Equal(t, 2021, view.FirstYear)
	assert.Equal(t, 2023, view.LatestYear)
	assert.Equal(t, 2, view.BankCount)
	require.Len(t, view.ComparisonRows, 2)
	assert.Equal(t, "#00915A", view.ComparisonRows[0].Color)
	require.Len(t, view.Banks, 2)
	assert.NotEmpty(t, view.Banks[0].Projections)
	assert.NotEmpty(t, view.ROEChart)
	assert.Contains(t, string(view.ROEChart), "echarts.init")
	assert.Contains(t, string(view.Methodology), "<h1")
}

func TestWriteDashboard(t *testing.T) {
	deps := newTestDeps(t)
	path, err := writeDashboard(deps, pipelineRecords())
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	page := string(content)
	assert.True(t, strings.HasSuffix(path, "index.html"))
	assert.Contains(t, page, "BankA")
	assert.Contains(t, page, "BankB")
	assert.Contains(t, page, "Methodology")
	assert.Contains(t, page, "echarts.init")
	assert.NotContains(t, page, "<no value>")
}

func TestChartsRenderWithSingleYearBank(t *testing.T) {
	deps := newTestDeps(t)
	records := calculateGrowthRates(calculateRatios([]FinancialRecord{
		rawRecord("BankA", 2023, 1000, 100, 10000),
	}))

	_, err := writeDashboard(deps, records)
	require.NoError(t, err, "a single year of data still renders, with trend measures marked unavailable")
}
