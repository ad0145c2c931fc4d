package main

import (
	"strings"
	"testing"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	chartrender "github.com/go-echarts/go-echarts/v2/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ chartrender.Renderer = (*snippetRenderer)(nil)

func TestSnippetRendererContent(t *testing.T) {
	line := charts.NewLine()
	line.SetXAxis([]string{"2022", "2023"}).AddSeries("BankA", []opts.LineData{
		{Value: 0.1}, {Value: 0.125},
	})

	renderer := newSnippetRenderer(line, line.Validate)
	content := renderer.RenderContent()
	require.NotEmpty(t, content)
	assert.Contains(t, string(content), "echarts.init")
	assert.NotContains(t, string(content), "<html", "fragment, not a standalone page")
}

func TestChartSeriesOrderStable(t *testing.T) {
	deps := newTestDeps(t)
	records := pipelineRecords()

	for i := 0; i < 5; i++ {
		page := string(chartROEEvolution(deps, records))
		a := strings.Index(page, `"BankA"`)
		b := strings.Index(page, `"BankB"`)
		require.GreaterOrEqual(t, a, 0)
		require.GreaterOrEqual(t, b, 0)
		assert.Less(t, a, b, "series follow bank name order")
	}
}
