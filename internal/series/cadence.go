package series

// maxCadenceSamplePairs bounds how many leading gaps the cadence heuristic
// inspects; a long series does not need every gap to classify.
const maxCadenceSamplePairs = 12

// InferCadence estimates the sampling cadence of a normalized series from
// the average whole-month gap between its leading points. Averages above 8
// months classify as annual, above 2 as quarterly, anything tighter as
// monthly. Series with fewer than 3 points default to monthly.
//
// This is best-effort detection, not a guarantee: irregular series (mixed
// cadences, long gaps) classify by whatever their early gaps average to.
func InferCadence(s Series) Cadence {
	if len(s) < 3 {
		return Monthly
	}

	pairs := len(s) - 1
	if pairs > maxCadenceSamplePairs {
		pairs = maxCadenceSamplePairs
	}

	totalMonths := 0
	for i := 1; i <= pairs; i++ {
		gap := s[i].Instant.MonthsSince(s[i-1].Instant)
		if gap < 1 {
			gap = 1 // same-month points must not zero the average
		}
		totalMonths += gap
	}

	avg := float64(totalMonths) / float64(pairs)
	switch {
	case avg > 8:
		return Annual
	case avg > 2:
		return Quarterly
	default:
		return Monthly
	}
}
