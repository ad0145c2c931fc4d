package main

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleStdDev(t *testing.T) {
	// sample (n-1) variance of {2,4,4,4,5,5,7,9} is 4.571..., stddev 2.138
	assert.InDelta(t, 2.13809, sampleStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-4)
	assert.Zero(t, sampleStdDev([]float64{5}))
}

func TestMedian(t *testing.T) {
	assert.InDelta(t, 3.0, median([]float64{5, 1, 3}), 1e-9)
	assert.InDelta(t, 2.5, median([]float64{4, 1, 2, 3}), 1e-9)
}

func TestFiveNumberSummary(t *testing.T) {
	summary := fiveNumberSummary([]float64{7, 1, 3, 5})
	assert.Equal(t, []float64{1, 2, 4, 6, 7}, summary)

	single := fiveNumberSummary([]float64{4})
	assert.Equal(t, []float64{4, 4, 4, 4, 4}, single)
}

func TestFormatNull(t *testing.T) {
	assert.Equal(t, "—", formatNull(sql.NullFloat64{}, 3))
	assert.Equal(t, "0.125", formatNull(sql.NullFloat64{Float64: 0.125, Valid: true}, 3))
	assert.Equal(t, "—", formatNullPct(sql.NullFloat64{}, 1))
	assert.Equal(t, "12.5%", formatNullPct(sql.NullFloat64{Float64: 12.5, Valid: true}, 1))
}
