package main

import (
	"database/sql"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdDev is the n-1 standard deviation, matching how the stability
// threshold was calibrated.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j] < sorted[j-1]; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

var amountPrinter = message.NewPrinter(language.English)

// formatAmountBn renders a currency amount in billions for the structure
// tables, e.g. 2_591_499_000_000 -> "2,591.5".
func formatAmountBn(amount float64) string {
	return amountPrinter.Sprintf("%.1f", amount/1e9)
}

// formatNull renders a nullable value with the given precision, or a dash
// when it is absent. Missing values must never read as zero.
func formatNull(v sql.NullFloat64, decimals int) string {
	if !v.Valid {
		return "—"
	}
	return strconv.FormatFloat(v.Float64, 'f', decimals, 64)
}

// formatNullPct is formatNull with a trailing percent sign.
func formatNullPct(v sql.NullFloat64, decimals int) string {
	if !v.Valid {
		return "—"
	}
	return strconv.FormatFloat(v.Float64, 'f', decimals, 64) + "%"
}
