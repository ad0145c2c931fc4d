package main

// Linear trend projections. Each metric gets its own ordinary least-squares
// first-degree fit on (year, value) pairs; a metric with fewer than two
// usable points is reported as insufficient rather than projected.

// metricKeys are the record metrics a trend line is fitted for, in report
// order.
var metricKeys = []string{"roe", "roa", "profit_margin", "leverage_ratio"}

// metricLabels maps metric keys to their display names.
var metricLabels = map[string]string{
	"roe":            "ROE",
	"roa":            "ROA",
	"profit_margin":  "Profit Margin (%)",
	"leverage_ratio": "Leverage Ratio",
}

// TrendProjection is a fitted line for one bank and one metric, evaluated at
// the years following the latest one on file.
type TrendProjection struct {
	BankName  string
	Metric    string
	Slope     float64
	Intercept float64
	Direction string // "up" when slope > 0, else "down"
	Years     []int
	Values    []float64

	// not enough points to fit: everything above is zero-valued and must
	// not be rendered as a projection
	Insufficient bool
}

// linearFit computes the OLS slope and intercept of y over x. Caller
// guarantees at least two points; degenerate x (all equal) yields a flat
// line through the mean.
func linearFit(xs, ys []float64) (slope, intercept float64) {
	n := float64(len(xs))
	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

// metricValue pulls one nullable metric out of a record by key.
func metricValue(record FinancialRecord, metric string) (float64, bool) {
	switch metric {
	case "roe":
		return record.ROE.Float64, record.ROE.Valid
	case "roa":
		return record.ROA.Float64, record.ROA.Valid
	case "profit_margin":
		return record.ProfitMargin.Float64, record.ProfitMargin.Valid
	case "leverage_ratio":
		return record.LeverageRatio.Float64, record.LeverageRatio.Valid
	case "equity_ratio":
		return record.EquityRatio.Float64, record.EquityRatio.Valid
	}
	return 0, false
}

// projectMetric fits one metric of one bank's ascending-year series and
// evaluates the line at lastYear+1 .. lastYear+horizon.
func projectMetric(series []FinancialRecord, metric string, horizon int) TrendProjection {
	projection := TrendProjection{Metric: metric}
	if len(series) > 0 {
		projection.BankName = series[0].BankName
	}

	xs := make([]float64, 0, len(series))
	ys := make([]float64, 0, len(series))
	lastYear := 0
	for _, record := range series {
		if record.Year > lastYear {
			lastYear = record.Year
		}
		if value, ok := metricValue(record, metric); ok {
			xs = append(xs, float64(record.Year))
			ys = append(ys, value)
		}
	}
	if len(xs) < 2 {
		projection.Insufficient = true
		return projection
	}

	projection.Slope, projection.Intercept = linearFit(xs, ys)
	if projection.Slope > 0 {
		projection.Direction = "up"
	} else {
		projection.Direction = "down"
	}

	for i := 1; i <= horizon; i++ {
		year := lastYear + i
		projection.Years = append(projection.Years, year)
		projection.Values = append(projection.Values, projection.Slope*float64(year)+projection.Intercept)
	}
	return projection
}

// projectBank fits every report metric for one bank.
func projectBank(series []FinancialRecord, horizon int) []TrendProjection {
	projections := make([]TrendProjection, 0, len(metricKeys))
	for _, metric := range metricKeys {
		projections = append(projections, projectMetric(series, metric, horizon))
	}
	return projections
}

// projectAll fits trend lines for every bank in the record set.
func projectAll(records []FinancialRecord, horizon int) map[string][]TrendProjection {
	projections := make(map[string][]TrendProjection)
	for bank, series := range recordsByBank(records) {
		projections[bank] = projectBank(series, horizon)
	}
	return projections
}
