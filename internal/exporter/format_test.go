package exporter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"pads to two decimals", 13.4, "13.40"},
		{"rounds half up", 2.005, "2.00"},
		{"negative", -0.256, "-0.26"},
		{"zero", 0, "0.00"},
		{"nan is absent", math.NaN(), absentValue},
		{"inf is absent", math.Inf(1), absentValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatFloat(tt.value))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	pct := 12.5
	assert.Equal(t, "12.50%", formatPercent(&pct))
	assert.Equal(t, absentValue, formatPercent(nil))
}

func TestFormatNullable(t *testing.T) {
	v := 3.125
	assert.Equal(t, "3.13", formatNullable(&v))
	assert.Equal(t, absentValue, formatNullable(nil))
}
