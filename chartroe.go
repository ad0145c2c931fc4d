package main

import (
	"fmt"
	"html/template"
	"sort"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// yearAxis builds the sorted union of years across all banks, as category
// axis labels.
func yearAxis(records []FinancialRecord) []int {
	seen := map[int]bool{}
	years := []int{}
	for _, record := range records {
		if !seen[record.Year] {
			seen[record.Year] = true
			years = append(years, record.Year)
		}
	}
	sort.Ints(years)
	return years
}

func yearLabels(years []int) []string {
	labels := make([]string, len(years))
	for i, year := range years {
		labels[i] = strconv.Itoa(year)
	}
	return labels
}

// lineDataFor maps one bank's nullable metric onto the shared year axis,
// leaving "-" holes where the bank has no value for a year.
func lineDataFor(series []FinancialRecord, years []int, metric string) []opts.LineData {
	byYear := map[int]FinancialRecord{}
	for _, record := range series {
		byYear[record.Year] = record
	}
	data := make([]opts.LineData, 0, len(years))
	for _, year := range years {
		record, ok := byYear[year]
		if !ok {
			data = append(data, opts.LineData{Value: "-"})
			continue
		}
		if value, valid := metricValue(record, metric); valid {
			data = append(data, opts.LineData{Value: value})
		} else {
			data = append(data, opts.LineData{Value: "-"})
		}
	}
	return data
}

// chartMetricLine draws one line per bank for a single metric across the
// record set's years.
func chartMetricLine(deps *Dependencies, records []FinancialRecord, metric, title, yAxisName, width, height string) template.HTML {
	years := yearAxis(records)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  width,
			Height: height,
			Theme:  types.ThemeVintage,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:   opts.Bool(true),
			Orient: "horizontal",
			Left:   "center",
			Top:    "bottom",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Year",
			Type: "category",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  yAxisName,
			Type:  "value",
			Scale: opts.Bool(true),
		}),
	)

	line.SetXAxis(yearLabels(years))
	byBank := recordsByBank(records)
	for _, bank := range bankNames(records) {
		line.AddSeries(bank, lineDataFor(byBank[bank], years, metric),
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: deps.config.colorFor(bank)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: deps.config.colorFor(bank), Width: 3}),
		)
	}

	line.Renderer = newSnippetRenderer(line, line.Validate)
	return renderToHtml(deps, line)
}

// chartROEEvolution is the headline chart of the overview tab.
func chartROEEvolution(deps *Dependencies, records []FinancialRecord) template.HTML {
	return chartMetricLine(deps, records, "roe", "Return on Equity (ROE) Evolution", "ROE", "880px", "420px")
}

// chartFinancialStructure draws the four solidity panels: leverage, equity
// ratio, and the absolute asset and equity bases in billions.
func chartFinancialStructure(deps *Dependencies, records []FinancialRecord) template.HTML {
	leverage := chartMetricLine(deps, records, "leverage_ratio", "Leverage Ratio", "", "430px", "320px")
	equityRatio := chartMetricLine(deps, records, "equity_ratio", "Equity Ratio (%)", "%", "430px", "320px")
	assets := chartAmountLine(deps, records, "Total Assets (bn)", func(r FinancialRecord) float64 { return r.TotalAssets / 1e9 })
	equity := chartAmountLine(deps, records, "Stockholders Equity (bn)", func(r FinancialRecord) float64 { return r.StockholdersEquity / 1e9 })

	return leverage + equityRatio + assets + equity
}

// chartAmountLine draws a per-bank line of a raw currency amount.
func chartAmountLine(deps *Dependencies, records []FinancialRecord, title string, pick func(FinancialRecord) float64) template.HTML {
	years := yearAxis(records)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "430px",
			Height: "320px",
			Theme:  types.ThemeVintage,
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Scale: opts.Bool(true)}),
	)

	line.SetXAxis(yearLabels(years))
	byBank := recordsByBank(records)
	for _, bank := range bankNames(records) {
		byYear := map[int]FinancialRecord{}
		for _, record := range byBank[bank] {
			byYear[record.Year] = record
		}
		data := make([]opts.LineData, 0, len(years))
		for _, year := range years {
			if record, ok := byYear[year]; ok {
				data = append(data, opts.LineData{Value: pick(record)})
			} else {
				data = append(data, opts.LineData{Value: "-"})
			}
		}
		line.AddSeries(bank, data,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: deps.config.colorFor(bank)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: deps.config.colorFor(bank)}),
		)
	}

	line.Renderer = newSnippetRenderer(line, line.Validate)
	return renderToHtml(deps, line)
}

// chartGrowthRates draws the three year-over-year growth panels.
func chartGrowthRates(deps *Dependencies, records []FinancialRecord) template.HTML {
	panels := []struct {
		metric string
		title  string
	}{
		{"revenue_growth", "Revenue Growth (%)"},
		{"net_income_growth", "Net Income Growth (%)"},
		{"assets_growth", "Assets Growth (%)"},
	}

	var html template.HTML
	for _, panel := range panels {
		html += chartGrowthLine(deps, records, panel.metric, panel.title)
	}
	return html
}

func growthValue(record FinancialRecord, metric string) (float64, bool) {
	switch metric {
	case "revenue_growth":
		return record.RevenueGrowth.Float64, record.RevenueGrowth.Valid
	case "net_income_growth":
		return record.NetIncomeGrowth.Float64, record.NetIncomeGrowth.Valid
	case "assets_growth":
		return record.AssetsGrowth.Float64, record.AssetsGrowth.Valid
	}
	return 0, false
}

func chartGrowthLine(deps *Dependencies, records []FinancialRecord, metric, title string) template.HTML {
	years := yearAxis(records)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "430px",
			Height: "320px",
			Theme:  types.ThemeVintage,
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Scale: opts.Bool(true)}),
	)

	line.SetXAxis(yearLabels(years))
	byBank := recordsByBank(records)
	for _, bank := range bankNames(records) {
		byYear := map[int]FinancialRecord{}
		for _, record := range byBank[bank] {
			byYear[record.Year] = record
		}
		data := make([]opts.LineData, 0, len(years))
		for _, year := range years {
			record, ok := byYear[year]
			if !ok {
				data = append(data, opts.LineData{Value: "-"})
				continue
			}
			if value, valid := growthValue(record, metric); valid {
				data = append(data, opts.LineData{Value: value})
			} else {
				// first year of a bank's series has no growth, leave a hole
				data = append(data, opts.LineData{Value: "-"})
			}
		}
		line.AddSeries(bank, data,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: deps.config.colorFor(bank)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: deps.config.colorFor(bank)}),
		)
	}

	line.Renderer = newSnippetRenderer(line, line.Validate)
	return renderToHtml(deps, line)
}

// chartProjections draws, per metric, the fitted trend continuation for each
// bank as a dashed line following the historical series.
func chartProjections(deps *Dependencies, records []FinancialRecord, projections map[string][]TrendProjection) template.HTML {
	var html template.HTML
	for _, metric := range metricKeys {
		html += chartProjectionMetric(deps, records, projections, metric)
	}
	return html
}

func chartProjectionMetric(deps *Dependencies, records []FinancialRecord, projections map[string][]TrendProjection, metric string) template.HTML {
	historyYears := yearAxis(records)
	maxProjected := 0
	for _, bankProjections := range projections {
		for _, projection := range bankProjections {
			if projection.Metric == metric && !projection.Insufficient && len(projection.Years) > 0 {
				if last := projection.Years[len(projection.Years)-1]; last > maxProjected {
					maxProjected = last
				}
			}
		}
	}
	years := historyYears
	if len(historyYears) > 0 {
		for year := historyYears[len(historyYears)-1] + 1; year <= maxProjected; year++ {
			years = append(years, year)
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "880px",
			Height: "380px",
			Theme:  types.ThemeVintage,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s — Linear Trend Projection", metricLabels[metric]),
			Subtitle: "dashed series are fitted, not observed",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Orient: "horizontal", Left: "center", Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: "Year"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Scale: opts.Bool(true)}),
	)

	line.SetXAxis(yearLabels(years))
	byBank := recordsByBank(records)
	for _, bank := range bankNames(records) {
		line.AddSeries(bank, lineDataFor(byBank[bank], years, metric),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: deps.config.colorFor(bank)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: deps.config.colorFor(bank)}),
		)

		projection := findProjection(projections[bank], metric)
		if projection == nil || projection.Insufficient {
			continue
		}
		projected := make([]opts.LineData, 0, len(years))
		byYear := map[int]float64{}
		for i, year := range projection.Years {
			byYear[year] = projection.Values[i]
		}
		for _, year := range years {
			if value, ok := byYear[year]; ok {
				projected = append(projected, opts.LineData{Value: value})
			} else {
				projected = append(projected, opts.LineData{Value: "-"})
			}
		}
		line.AddSeries(bank+" (projected)", projected,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: deps.config.colorFor(bank)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: deps.config.colorFor(bank), Type: "dashed"}),
		)
	}

	line.Renderer = newSnippetRenderer(line, line.Validate)
	return renderToHtml(deps, line)
}

func findProjection(projections []TrendProjection, metric string) *TrendProjection {
	for i := range projections {
		if projections[i].Metric == metric {
			return &projections[i]
		}
	}
	return nil
}
