package main

import (
	"database/sql"
	"fmt"
	"math"
)

// Interpretation thresholds. These drive every qualitative label in the
// report, so keep them in one place.
const (
	stableROEStdDev = 0.02 // sample stddev of ROE under this is "stable"
	strongMarginPct = 20.0
	okMarginPct     = 10.0
	solidMarginPct  = 15.0
	maxSafeLeverage = 12.0
)

const insufficientData = "insufficient data"

// BankAnalysis is the qualitative summary of one bank's record series.
// Nullable fields follow the same rule as FinancialRecord: Invalid means the
// value could not be computed, and the report says so instead of printing 0.
type BankAnalysis struct {
	BankName  string
	FirstYear int
	LastYear  int
	YearCount int

	LatestROE      sql.NullFloat64
	LatestROA      sql.NullFloat64
	LatestMargin   sql.NullFloat64
	LatestLeverage sql.NullFloat64
	AvgROE         sql.NullFloat64
	ROEChange      sql.NullFloat64 // pct change of ROE, first year to last
	ROEStdDev      sql.NullFloat64

	ROEPerformance string // "high" / "moderate"
	Stability      string // "stable" / "variable" / insufficient data
	GrowthTrend    string // "growth" / "decline" / insufficient data
	Profitability  string // "strong" / "moderate" / "weak"

	Strengths       []string
	Weaknesses      []string
	Recommendations []string

	// fewer than two years on file: change, stddev and projections are
	// reported as missing rather than computed
	InsufficientHistory bool
}

// comparisons against an absent value are always false, like NaN in the
// dataset this pipeline replaces
func nullGT(v sql.NullFloat64, threshold float64) bool {
	return v.Valid && v.Float64 > threshold
}

func nullLT(v sql.NullFloat64, threshold float64) bool {
	return v.Valid && v.Float64 < threshold
}

// analyzeBank summarizes one bank's records, which must be its full series
// sorted ascending by year.
func analyzeBank(records []FinancialRecord) (BankAnalysis, error) {
	if len(records) == 0 {
		return BankAnalysis{}, errNoRecords
	}

	first := records[0]
	latest := records[len(records)-1]

	analysis := BankAnalysis{
		BankName:            first.BankName,
		FirstYear:           first.Year,
		LastYear:            latest.Year,
		YearCount:           len(records),
		LatestROE:           latest.ROE,
		LatestROA:           latest.ROA,
		LatestMargin:        latest.ProfitMargin,
		LatestLeverage:      latest.LeverageRatio,
		InsufficientHistory: len(records) < 2,
	}

	roes := make([]float64, 0, len(records))
	for _, record := range records {
		if record.ROE.Valid {
			roes = append(roes, record.ROE.Float64)
		}
	}
	if len(roes) > 0 {
		analysis.AvgROE = sql.NullFloat64{Float64: mean(roes), Valid: true}
	}

	if !analysis.InsufficientHistory {
		if first.ROE.Valid && latest.ROE.Valid && first.ROE.Float64 != 0 {
			analysis.ROEChange = sql.NullFloat64{
				Float64: (latest.ROE.Float64/first.ROE.Float64 - 1) * 100,
				Valid:   true,
			}
		}
		if len(roes) >= 2 {
			analysis.ROEStdDev = sql.NullFloat64{Float64: sampleStdDev(roes), Valid: true}
		}
	}

	analysis.ROEPerformance = "moderate"
	if analysis.LatestROE.Valid && analysis.AvgROE.Valid && analysis.LatestROE.Float64 > analysis.AvgROE.Float64 {
		analysis.ROEPerformance = "high"
	}

	switch {
	case !analysis.ROEStdDev.Valid:
		analysis.Stability = insufficientData
	case analysis.ROEStdDev.Float64 < stableROEStdDev:
		analysis.Stability = "stable"
	default:
		analysis.Stability = "variable"
	}

	switch {
	case analysis.InsufficientHistory || !analysis.ROEChange.Valid:
		analysis.GrowthTrend = insufficientData
	case analysis.ROEChange.Float64 > 0:
		analysis.GrowthTrend = "growth"
	default:
		// a flat ROE is not growth; zero change reads as decline on purpose
		analysis.GrowthTrend = "decline"
	}

	switch {
	case nullGT(analysis.LatestMargin, strongMarginPct):
		analysis.Profitability = "strong"
	case nullGT(analysis.LatestMargin, okMarginPct):
		analysis.Profitability = "moderate"
	default:
		analysis.Profitability = "weak"
	}

	analysis.Strengths, analysis.Weaknesses = assessStrengths(analysis)
	analysis.Recommendations = buildRecommendations(analysis)

	return analysis, nil
}

// assessStrengths evaluates the four fixed predicates; each contributes
// exactly one statement, so strengths+weaknesses always totals four.
func assessStrengths(a BankAnalysis) (strengths, weaknesses []string) {
	if a.LatestROE.Valid && a.AvgROE.Valid && a.LatestROE.Float64 > a.AvgROE.Float64 {
		strengths = append(strengths, fmt.Sprintf("ROE above its historical average (%.3f vs %.3f)", a.LatestROE.Float64, a.AvgROE.Float64))
	} else {
		weaknesses = append(weaknesses, "ROE running below its historical average")
	}

	if nullGT(a.ROEChange, 0) {
		strengths = append(strengths, fmt.Sprintf("ROE improved %.1f%% over the period", math.Abs(a.ROEChange.Float64)))
	} else if a.ROEChange.Valid {
		weaknesses = append(weaknesses, fmt.Sprintf("ROE declined %.1f%% over the period", math.Abs(a.ROEChange.Float64)))
	} else {
		weaknesses = append(weaknesses, "ROE trend not measurable ("+insufficientData+")")
	}

	if nullGT(a.LatestMargin, solidMarginPct) {
		strengths = append(strengths, fmt.Sprintf("Solid profit margin of %.1f%%", a.LatestMargin.Float64))
	} else if a.LatestMargin.Valid {
		weaknesses = append(weaknesses, fmt.Sprintf("Profit margin needs improvement (%.1f%%)", a.LatestMargin.Float64))
	} else {
		weaknesses = append(weaknesses, "Profit margin not available")
	}

	if nullLT(a.LatestLeverage, maxSafeLeverage) {
		strengths = append(strengths, fmt.Sprintf("Robust capital structure (leverage of %.2f)", a.LatestLeverage.Float64))
	} else if a.LatestLeverage.Valid {
		weaknesses = append(weaknesses, fmt.Sprintf("Elevated debt level (leverage of %.2f)", a.LatestLeverage.Float64))
	} else {
		weaknesses = append(weaknesses, "Leverage ratio not available")
	}

	return strengths, weaknesses
}

// buildRecommendations emits fixed-text recommendations in margin, leverage,
// trend order, or the single maintain-course fallback when nothing triggers.
func buildRecommendations(a BankAnalysis) []string {
	recommendations := []string{}
	if nullLT(a.LatestMargin, solidMarginPct) {
		recommendations = append(recommendations, "Improve operating efficiency to lift margins")
	}
	if nullGT(a.LatestLeverage, maxSafeLeverage) {
		recommendations = append(recommendations, "Strengthen the equity base to reduce financial risk")
	}
	if nullLT(a.ROEChange, 0) {
		recommendations = append(recommendations, "Investigate the drivers behind the decline in profitability")
	}
	if len(recommendations) == 0 {
		recommendations = append(recommendations, "Maintain the current trajectory")
	}
	return recommendations
}

// analyzeAll runs the analysis engine for every bank in the record set.
func analyzeAll(records []FinancialRecord) (map[string]BankAnalysis, error) {
	analyses := make(map[string]BankAnalysis)
	for bank, series := range recordsByBank(records) {
		analysis, err := analyzeBank(series)
		if err != nil {
			return nil, fmt.Errorf("analyzing %s: %w", bank, err)
		}
		analyses[bank] = analysis
	}
	return analyses, nil
}
