package main

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
	"github.com/oxtoacart/bpool"
)

var reportBufPool = bpool.NewBufferPool(4)

// ComparisonRow is one bank's latest-year line in the comparison table, all
// values pre-formatted (absent values render as a dash).
type ComparisonRow struct {
	BankName string
	Color    string
	ROE      string
	ROA      string
	Margin   string
	Leverage string
	AssetsBn string
}

// ProjectedValue is one projected (year, value) pair, formatted.
type ProjectedValue struct {
	Year  int
	Value string
}

// ProjectionSummary is one metric's trend projection for the projections tab.
type ProjectionSummary struct {
	MetricLabel  string
	Direction    string
	Insufficient bool
	Values       []ProjectedValue
}

// BankSection is everything the per-bank analysis tab needs.
type BankSection struct {
	Analysis    BankAnalysis
	Color       string
	ROE         string
	ROA         string
	Margin      string
	Leverage    string
	Projections []ProjectionSummary
}

// DashboardView is the full template payload for the multi-tab dashboard.
type DashboardView struct {
	Title       string
	GeneratedAt string
	FirstYear   int
	LatestYear  int
	BankCount   int
	MetricCount int

	ROEChart           template.HTML
	GrowthCharts       template.HTML
	DistributionCharts template.HTML
	RadarChart         template.HTML
	RiskChart          template.HTML
	StructureCharts    template.HTML
	ProjectionCharts   template.HTML

	ComparisonRows []ComparisonRow
	Banks          []BankSection
	Methodology    template.HTML
}

// buildDashboardView assembles the analysis outputs and charts into the view
// model consumed by templates/dashboard.gohtml.
func buildDashboardView(deps *Dependencies, records []FinancialRecord) (*DashboardView, error) {
	analyses, err := analyzeAll(records)
	if err != nil {
		return nil, err
	}
	projections := projectAll(records, deps.config.ProjectionYears)
	year := latestYear(records)

	view := &DashboardView{
		Title:       "Bank Financial Analysis Dashboard",
		GeneratedAt: time.Now().Format("Jan 2 2006 15:04 MST"),
		LatestYear:  year,
		BankCount:   len(bankNames(records)),
		MetricCount: 8,

		ROEChart:           chartROEEvolution(deps, records),
		GrowthCharts:       chartGrowthRates(deps, records),
		DistributionCharts: chartDistributions(deps, records),
		RadarChart:         chartLatestRadar(deps, records, year),
		RiskChart:          chartRiskReturn(deps, records),
		StructureCharts:    chartFinancialStructure(deps, records),
		ProjectionCharts:   chartProjections(deps, records, projections),
	}

	view.FirstYear = year
	for _, record := range records {
		if record.Year < view.FirstYear {
			view.FirstYear = record.Year
		}
	}

	for _, record := range records {
		if record.Year != year {
			continue
		}
		view.ComparisonRows = append(view.ComparisonRows, ComparisonRow{
			BankName: record.BankName,
			Color:    deps.config.colorFor(record.BankName),
			ROE:      formatNull(record.ROE, 3),
			ROA:      formatNull(record.ROA, 3),
			Margin:   formatNullPct(record.ProfitMargin, 2),
			Leverage: formatNull(record.LeverageRatio, 2),
			AssetsBn: formatAmountBn(record.TotalAssets),
		})
	}

	for _, bank := range bankNames(records) {
		analysis := analyses[bank]
		section := BankSection{
			Analysis: analysis,
			Color:    deps.config.colorFor(bank),
			ROE:      formatNull(analysis.LatestROE, 3),
			ROA:      formatNull(analysis.LatestROA, 3),
			Margin:   formatNullPct(analysis.LatestMargin, 1),
			Leverage: formatNull(analysis.LatestLeverage, 2),
		}
		for _, projection := range projections[bank] {
			summary := ProjectionSummary{
				MetricLabel:  metricLabels[projection.Metric],
				Direction:    projection.Direction,
				Insufficient: projection.Insufficient,
			}
			for i, projYear := range projection.Years {
				summary.Values = append(summary.Values, ProjectedValue{
					Year:  projYear,
					Value: fmt.Sprintf("%.4f", projection.Values[i]),
				})
			}
			section.Projections = append(section.Projections, summary)
		}
		view.Banks = append(view.Banks, section)
	}

	view.Methodology, err = renderMethodology()
	if err != nil {
		deps.logger.Warn().Err(err).Msg("methodology narrative unavailable, leaving the tab empty")
	}

	return view, nil
}

// renderMethodology turns the markdown narrative into sanitized HTML.
func renderMethodology() (template.HTML, error) {
	source, err := os.ReadFile("templates/methodology.md")
	if err != nil {
		return "", err
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	rendered := markdown.ToHTML(source, p, nil)
	sanitized := bluemonday.UGCPolicy().SanitizeBytes(rendered)
	return template.HTML(sanitized), nil
}

// writeDashboard renders the dashboard template and writes index.html to the
// output directory. The buffer pool keeps a failed render from leaving a
// half-written file behind.
func writeDashboard(deps *Dependencies, records []FinancialRecord) (string, error) {
	view, err := buildDashboardView(deps, records)
	if err != nil {
		return "", err
	}

	tmpl, err := template.ParseFiles("templates/dashboard.gohtml")
	if err != nil {
		return "", fmt.Errorf("parse dashboard template: %w", err)
	}

	buf := reportBufPool.Get()
	defer reportBufPool.Put(buf)

	if err := tmpl.ExecuteTemplate(buf, "dashboard", view); err != nil {
		return "", fmt.Errorf("execute dashboard template: %w", err)
	}

	if err := os.MkdirAll(deps.config.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(deps.config.OutputDir, "index.html")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write dashboard: %w", err)
	}

	deps.logger.Info().Str("path", path).Int("banks", view.BankCount).Msg("dashboard generated")
	return path, nil
}
