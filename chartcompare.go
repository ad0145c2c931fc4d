package main

import (
	"html/template"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// fiveNumberSummary returns [min, Q1, median, Q3, max], the shape a boxplot
// series wants.
func fiveNumberSummary(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n == 1 {
		v := sorted[0]
		return []float64{v, v, v, v, v}
	}
	lower := sorted[:n/2]
	upper := sorted[(n+1)/2:]
	return []float64{
		sorted[0],
		median(lower),
		median(sorted),
		median(upper),
		sorted[n-1],
	}
}

// chartDistributions draws one boxplot per ratio, banks on the x axis,
// showing performance consistency across years.
func chartDistributions(deps *Dependencies, records []FinancialRecord) template.HTML {
	panels := []struct {
		metric string
		title  string
	}{
		{"roe", "ROE Distribution"},
		{"roa", "ROA Distribution"},
		{"profit_margin", "Profit Margin Distribution (%)"},
	}

	var html template.HTML
	for _, panel := range panels {
		html += chartDistribution(deps, records, panel.metric, panel.title)
	}
	return html
}

func chartDistribution(deps *Dependencies, records []FinancialRecord, metric, title string) template.HTML {
	banks := bankNames(records)
	byBank := recordsByBank(records)

	boxes := make([]opts.BoxPlotData, 0, len(banks))
	axis := make([]string, 0, len(banks))
	for _, bank := range banks {
		values := []float64{}
		for _, record := range byBank[bank] {
			if value, ok := metricValue(record, metric); ok {
				values = append(values, value)
			}
		}
		if len(values) == 0 {
			continue
		}
		axis = append(axis, bank)
		boxes = append(boxes, opts.BoxPlotData{Name: bank, Value: fiveNumberSummary(values)})
	}

	boxplot := charts.NewBoxPlot()
	boxplot.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "430px",
			Height: "340px",
			Theme:  types.ThemeVintage,
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Scale: opts.Bool(true)}),
	)

	boxplot.SetXAxis(axis).AddSeries(metricLabels[metric], boxes)

	boxplot.Renderer = newSnippetRenderer(boxplot, boxplot.Validate)
	return renderToHtml(deps, boxplot)
}

// radarDimensions in display order; leverage is inverted so that bigger
// always means better on the radar.
var radarDimensions = []string{"ROE", "ROA", "Profit Margin", "Equity Ratio", "Solidity (1/Leverage)"}

// chartLatestRadar compares the banks on five normalized dimensions for the
// latest year on file.
func chartLatestRadar(deps *Dependencies, records []FinancialRecord, year int) template.HTML {
	latest := []FinancialRecord{}
	for _, record := range records {
		if record.Year == year {
			latest = append(latest, record)
		}
	}
	if len(latest) == 0 {
		return ""
	}

	metrics := []string{"roe", "roa", "profit_margin", "equity_ratio", "leverage_ratio"}
	normalized := map[string][]float64{}
	for _, record := range latest {
		normalized[record.BankName] = make([]float64, len(metrics))
	}
	for i, metric := range metrics {
		values := []float64{}
		for _, record := range latest {
			if value, ok := metricValue(record, metric); ok {
				values = append(values, value)
			}
		}
		lo, hi := minMax(values)
		for _, record := range latest {
			value, ok := metricValue(record, metric)
			score := 0.0
			if ok && hi > lo {
				score = (value - lo) / (hi - lo)
			}
			if metric == "leverage_ratio" {
				score = 1 - score
			}
			normalized[record.BankName][i] = score
		}
	}

	indicators := make([]*opts.Indicator, len(radarDimensions))
	for i, name := range radarDimensions {
		indicators[i] = &opts.Indicator{Name: name, Max: 1}
	}

	radar := charts.NewRadar()
	radar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "700px",
			Height: "520px",
			Theme:  types.ThemeVintage,
		}),
		charts.WithTitleOpts(opts.Title{Title: "Multi-dimensional Performance"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Orient: "horizontal", Left: "center", Top: "bottom"}),
		charts.WithRadarComponentOpts(opts.RadarComponent{
			Indicator: indicators,
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
		}),
	)

	for _, record := range latest {
		radar.AddSeries(record.BankName, []opts.RadarData{
			{Name: record.BankName, Value: normalized[record.BankName]},
		}, charts.WithItemStyleOpts(opts.ItemStyle{Color: deps.config.colorFor(record.BankName)}))
	}

	radar.Renderer = newSnippetRenderer(radar, radar.Validate)
	return renderToHtml(deps, radar)
}

func minMax(values []float64) (lo, hi float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// chartRiskReturn is the leverage (risk) vs ROE (return) scatter, one point
// per (bank, year).
func chartRiskReturn(deps *Dependencies, records []FinancialRecord) template.HTML {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "880px",
			Height: "520px",
			Theme:  types.ThemeVintage,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Risk vs Return: ROE against Leverage",
			Subtitle: "right means more leveraged, up means more profitable",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Orient: "horizontal", Left: "center", Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Leverage Ratio", Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "ROE", Scale: opts.Bool(true)}),
	)

	leverages := []float64{}
	roes := []float64{}
	for _, record := range records {
		if record.LeverageRatio.Valid && record.ROE.Valid {
			leverages = append(leverages, record.LeverageRatio.Float64)
			roes = append(roes, record.ROE.Float64)
		}
	}

	markedMedians := false
	for _, bank := range bankNames(records) {
		series := recordsByBank(records)[bank]
		points := make([]opts.ScatterData, 0, len(series))
		for _, record := range series {
			if !record.LeverageRatio.Valid || !record.ROE.Valid {
				continue
			}
			points = append(points, opts.ScatterData{
				Name:       yearLabels([]int{record.Year})[0],
				Value:      []interface{}{record.LeverageRatio.Float64, record.ROE.Float64},
				SymbolSize: 14,
			})
		}
		seriesOpts := []charts.SeriesOpts{
			charts.WithItemStyleOpts(opts.ItemStyle{Color: deps.config.colorFor(bank)}),
		}
		// median cross-hairs split the plot into quadrants; one series
		// carries them so they draw once
		if !markedMedians && len(leverages) > 0 {
			markedMedians = true
			seriesOpts = append(seriesOpts,
				charts.WithMarkLineNameXAxisItemOpts(opts.MarkLineNameXAxisItem{Name: "median leverage", XAxis: median(leverages)}),
				charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{Name: "median ROE", YAxis: median(roes)}),
				charts.WithMarkLineStyleOpts(opts.MarkLineStyle{Symbol: []string{"none", "none"}}),
			)
		}
		scatter.AddSeries(bank, points, seriesOpts...)
	}

	scatter.Renderer = newSnippetRenderer(scatter, scatter.Validate)
	return renderToHtml(deps, scatter)
}
