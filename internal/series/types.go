package series

import "fmt"

// Observation is a single raw data point as handed over by an upstream
// fetch collaborator. The engine treats it as immutable.
type Observation struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Instant is the canonical calendar position resolved from a date key.
// It exists only for comparison and label formatting inside the engine;
// the original date key is never re-derived from it.
type Instant struct {
	Year  int `json:"year"`
	Month int `json:"month"` // 0-based month index
	Day   int `json:"day"`
}

// Before reports whether i sorts strictly before other.
func (i Instant) Before(other Instant) bool {
	if i.Year != other.Year {
		return i.Year < other.Year
	}
	if i.Month != other.Month {
		return i.Month < other.Month
	}
	return i.Day < other.Day
}

// MonthsSince returns the whole-month distance from earlier to i,
// ignoring the day component.
func (i Instant) MonthsSince(earlier Instant) int {
	return (i.Year-earlier.Year)*12 + (i.Month - earlier.Month)
}

// Quarter returns the 1-based calendar quarter of the instant.
func (i Instant) Quarter() int {
	return i.Month/3 + 1
}

// Point is one normalized observation together with its resolved instant.
type Point struct {
	Date    string  `json:"date"`
	Value   float64 `json:"value"`
	Instant Instant `json:"-"`
}

// Series is an ordered sequence of points. Invariant: ascending by Instant
// with at most one point per distinct date key. Series are rebuilt fresh on
// every render, never mutated in place.
type Series []Point

// Values returns the series values as a plain slice, freshly allocated.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// Last returns the most recent point. The second return is false for an
// empty series.
func (s Series) Last() (Point, bool) {
	if len(s) == 0 {
		return Point{}, false
	}
	return s[len(s)-1], true
}

// Cadence is the inferred sampling interval of a series, expressed as
// whole months per step for arithmetic convenience.
type Cadence int

const (
	// Monthly is one observation per month.
	Monthly Cadence = 1
	// Quarterly is one observation per quarter.
	Quarterly Cadence = 3
	// Annual is one observation per year.
	Annual Cadence = 12
)

// Months returns the number of months per series step.
func (c Cadence) Months() int {
	return int(c)
}

// String returns the human-readable cadence name.
func (c Cadence) String() string {
	switch c {
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Annual:
		return "annual"
	default:
		return fmt.Sprintf("cadence(%d)", int(c))
	}
}

// ShortPeriodLabel returns the display label for a one-step percent change
// at this cadence.
func (c Cadence) ShortPeriodLabel() string {
	switch c {
	case Quarterly:
		return "QoQ"
	case Annual:
		return "YoY"
	default:
		return "MoM"
	}
}

// PeriodsPerYear returns how many series steps make up one year, never
// less than 1.
func (c Cadence) PeriodsPerYear() int {
	months := c.Months()
	if months <= 0 {
		return 1
	}
	periods := (12 + months/2) / months // round(12/months)
	if periods < 1 {
		return 1
	}
	return periods
}

// DeltaResult holds the cadence-aware percent changes for the latest point
// of a series. Nil pointers signal insufficient history or an undefined
// denominator; values are always finite, never NaN or Inf.
type DeltaResult struct {
	ShortPeriodLabel string   `json:"short_period_label"`
	ShortPeriodPct   *float64 `json:"short_period_pct"`
	YoYPct           *float64 `json:"yoy_pct"`
}
