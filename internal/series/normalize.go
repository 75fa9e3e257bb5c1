package series

import "sort"

// Normalize builds a clean ascending series from a raw observation array.
// Observations sharing the exact same date key collapse to one point with
// the later value winning; this preserves the upstream last-write-wins
// policy for colliding keys. Observations whose date key cannot be parsed
// are excluded from the series and returned separately, in input order, so
// callers can surface them instead of rendering mis-sorted data.
//
// The input is never mutated. Empty input yields an empty series.
func Normalize(raw []Observation) (Series, []Observation) {
	if len(raw) == 0 {
		return Series{}, nil
	}

	values := make(map[string]float64, len(raw))
	instants := make(map[string]Instant, len(raw))
	var dropped []Observation

	for _, obs := range raw {
		if _, seen := instants[obs.Date]; seen {
			values[obs.Date] = obs.Value // last write wins
			continue
		}
		instant, err := ParseDateKey(obs.Date)
		if err != nil {
			dropped = append(dropped, obs)
			continue
		}
		instants[obs.Date] = instant
		values[obs.Date] = obs.Value
	}

	out := make(Series, 0, len(values))
	for date, value := range values {
		out = append(out, Point{Date: date, Value: value, Instant: instants[date]})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Instant == out[j].Instant {
			return out[i].Date < out[j].Date
		}
		return out[i].Instant.Before(out[j].Instant)
	})

	return out, dropped
}
