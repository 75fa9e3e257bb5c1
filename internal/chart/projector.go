package chart

import (
	"fmt"
	"math"
	"time"

	"macropulse/internal/series"
)

// Default drawing surface parameters, matching the dashboard chart frames.
const (
	DefaultWidth     = 640.0
	DefaultHeight    = 240.0
	DefaultPadding   = 16.0
	DefaultTickCount = 6

	// yMarginRatio inflates the value range on each side so extrema do not
	// clip against the chart frame.
	yMarginRatio = 0.08
)

// Options configures a projection. Zero fields fall back to the package
// defaults.
type Options struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Padding   float64 `json:"padding"`
	TickCount int     `json:"tick_count"`
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Padding <= 0 {
		o.Padding = DefaultPadding
	}
	if o.TickCount <= 0 {
		o.TickCount = DefaultTickCount
	}
	return o
}

// Point is a single chart-space coordinate. Chart-space y grows downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Projection is the render-ready output for one chart. It is freshly
// allocated per call and holds no references into the input series.
type Projection struct {
	// PointPath is the polyline through every series point.
	PointPath []Point `json:"point_path"`
	// AreaPath is the polyline plus a closing baseline, suitable for a
	// filled-area rendering. Empty for series with fewer than two points.
	AreaPath []Point `json:"area_path"`
	// TickIndices are indices into the series whose labels should be drawn.
	TickIndices []int `json:"tick_indices"`
	// TickLabels are the cadence-formatted labels for TickIndices.
	TickLabels []string `json:"tick_labels"`
	// YDomain is the inflated (min, max) value range backing the y scale.
	YDomain [2]float64 `json:"y_domain"`
}

// Project maps a normalized series onto the drawing surface described by
// opts. The y range is inflated by 8% on each side; a zero-range series
// falls back to a unit band around the midpoint so every point renders at
// the vertical center instead of dividing by zero.
func Project(s series.Series, cadence series.Cadence, opts Options) Projection {
	opts = opts.withDefaults()

	if len(s) == 0 {
		return Projection{YDomain: [2]float64{0, 0}}
	}

	yMin, yMax := valueRange(s)
	if yMax == yMin {
		// Degenerate flat series: center it on the midpoint.
		yMin--
		yMax++
	}
	margin := (yMax - yMin) * yMarginRatio
	yMin -= margin
	yMax += margin

	innerWidth := opts.Width - 2*opts.Padding
	innerHeight := opts.Height - 2*opts.Padding

	xStep := 0.0
	if len(s) > 1 {
		xStep = innerWidth / float64(len(s)-1)
	}

	scaleY := func(v float64) float64 {
		// Inverted: chart-space y grows downward.
		return opts.Height - opts.Padding - (v-yMin)/(yMax-yMin)*innerHeight
	}

	points := make([]Point, len(s))
	for i, p := range s {
		points[i] = Point{
			X: opts.Padding + float64(i)*xStep,
			Y: scaleY(p.Value),
		}
	}

	var area []Point
	if len(points) > 1 {
		baseline := opts.Height - opts.Padding
		area = make([]Point, 0, len(points)+2)
		area = append(area, points...)
		area = append(area,
			Point{X: points[len(points)-1].X, Y: baseline},
			Point{X: points[0].X, Y: baseline},
		)
	}

	tickIndices := selectTickIndices(len(s), opts.TickCount)
	tickLabels := make([]string, len(tickIndices))
	for i, idx := range tickIndices {
		tickLabels[i] = TickLabel(s[idx].Instant, cadence)
	}

	return Projection{
		PointPath:   points,
		AreaPath:    area,
		TickIndices: tickIndices,
		TickLabels:  tickLabels,
		YDomain:     [2]float64{yMin, yMax},
	}
}

// selectTickIndices chooses up to tickCount evenly spaced indices. The
// final index is always included so the most recent point stays labeled.
func selectTickIndices(n, tickCount int) []int {
	if n == 0 {
		return nil
	}
	if tickCount > n {
		tickCount = n
	}
	if tickCount <= 1 || n == 1 {
		return []int{n - 1}
	}

	step := int(math.Round(float64(n-1) / float64(tickCount-1)))
	if step < 1 {
		step = 1
	}

	var indices []int
	for i := 0; i < n-1; i += step {
		indices = append(indices, i)
	}
	return append(indices, n-1)
}

// TickLabel formats an instant for axis display at the given cadence:
// bare year for annual series, "YYYY-Qn" for quarterly, abbreviated month
// plus year for monthly.
func TickLabel(instant series.Instant, cadence series.Cadence) string {
	switch cadence {
	case series.Annual:
		return fmt.Sprintf("%d", instant.Year)
	case series.Quarterly:
		return fmt.Sprintf("%d-Q%d", instant.Year, instant.Quarter())
	default:
		month := time.Month(instant.Month + 1)
		return fmt.Sprintf("%s %d", month.String()[:3], instant.Year)
	}
}

func valueRange(s series.Series) (min, max float64) {
	min, max = s[0].Value, s[0].Value
	for _, p := range s[1:] {
		if p.Value < min {
			min = p.Value
		}
		if p.Value > max {
			max = p.Value
		}
	}
	return min, max
}
