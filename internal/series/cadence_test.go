package series

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syntheticSeries builds a series stepping by the given number of months
// per point.
func syntheticSeries(t *testing.T, startYear, stepMonths, count int) Series {
	t.Helper()

	raw := make([]Observation, count)
	for i := 0; i < count; i++ {
		months := i * stepMonths
		year := startYear + months/12
		month := months%12 + 1
		raw[i] = Observation{Date: fmt.Sprintf("%04d-%02d", year, month), Value: float64(i)}
	}

	s, dropped := Normalize(raw)
	require.Empty(t, dropped)
	require.Len(t, s, count)
	return s
}

func TestInferCadence(t *testing.T) {
	tests := []struct {
		name       string
		stepMonths int
		count      int
		want       Cadence
	}{
		{"24 monthly points", 1, 24, Monthly},
		{"8 quarterly points", 3, 8, Quarterly},
		{"5 annual points", 12, 5, Annual},
		{"long monthly series samples leading gaps only", 1, 60, Monthly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := syntheticSeries(t, 2015, tt.stepMonths, tt.count)
			assert.Equal(t, tt.want, InferCadence(s))
		})
	}
}

func TestInferCadenceShortSeries(t *testing.T) {
	// Fewer than 3 points always defaults to monthly, even when the gap
	// between the two available points looks annual.
	s := syntheticSeries(t, 2020, 12, 2)
	assert.Equal(t, Monthly, InferCadence(s))

	assert.Equal(t, Monthly, InferCadence(Series{}))
}

func TestInferCadenceSameMonthGapsClamp(t *testing.T) {
	// Daily points resolve to zero whole-month gaps; the clamp keeps the
	// average at 1 and the classification monthly.
	raw := []Observation{
		{Date: "2020-01-01", Value: 1},
		{Date: "2020-01-02", Value: 2},
		{Date: "2020-01-03", Value: 3},
		{Date: "2020-01-04", Value: 4},
	}
	s, _ := Normalize(raw)
	assert.Equal(t, Monthly, InferCadence(s))
}

func TestCadenceAccessors(t *testing.T) {
	tests := []struct {
		cadence        Cadence
		months         int
		label          string
		periodsPerYear int
		str            string
	}{
		{Monthly, 1, "MoM", 12, "monthly"},
		{Quarterly, 3, "QoQ", 4, "quarterly"},
		{Annual, 12, "YoY", 1, "annual"},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			assert.Equal(t, tt.months, tt.cadence.Months())
			assert.Equal(t, tt.label, tt.cadence.ShortPeriodLabel())
			assert.Equal(t, tt.periodsPerYear, tt.cadence.PeriodsPerYear())
			assert.Equal(t, tt.str, tt.cadence.String())
		})
	}
}
