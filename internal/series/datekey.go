package series

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date key shapes accepted from upstream APIs, tried in order. First match
// wins, so the more specific quarter and "Mnn" shapes are checked before
// the plain year-month form.
var (
	quarterKeyRe   = regexp.MustCompile(`^(\d{4})-[Qq]([1-4])$`)
	monthPrefixRe  = regexp.MustCompile(`^(\d{4})-M(0[1-9]|1[0-2])$`)
	yearMonthRe    = regexp.MustCompile(`^(\d{4})-(0[1-9]|1[0-2])$`)
	fullDateRe     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	bareYearRe     = regexp.MustCompile(`^\d{4}$`)
)

// genericDateLayouts are the fallback layouts attempted when a key matches
// none of the documented shapes. Upstream sources occasionally emit these.
var genericDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// ParseDateKey resolves a date-key string into its canonical instant.
// A key that matches none of the accepted shapes returns an error so the
// caller can drop or flag the observation instead of silently mis-sorting
// it; malformed upstream data must never fail an entire series.
func ParseDateKey(key string) (Instant, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return Instant{}, fmt.Errorf("empty date key")
	}

	if m := quarterKeyRe.FindStringSubmatch(trimmed); m != nil {
		year, _ := strconv.Atoi(m[1])
		quarter, _ := strconv.Atoi(m[2])
		return Instant{Year: year, Month: (quarter - 1) * 3, Day: 1}, nil
	}

	if m := monthPrefixRe.FindStringSubmatch(trimmed); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		return Instant{Year: year, Month: month - 1, Day: 1}, nil
	}

	if m := yearMonthRe.FindStringSubmatch(trimmed); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		return Instant{Year: year, Month: month - 1, Day: 1}, nil
	}

	if fullDateRe.MatchString(trimmed) {
		t, err := time.Parse("2006-01-02", trimmed)
		if err != nil {
			return Instant{}, fmt.Errorf("invalid calendar date %q: %w", key, err)
		}
		return instantFromTime(t), nil
	}

	if bareYearRe.MatchString(trimmed) {
		year, _ := strconv.Atoi(trimmed)
		return Instant{Year: year, Month: 0, Day: 1}, nil
	}

	for _, layout := range genericDateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return instantFromTime(t), nil
		}
	}

	return Instant{}, fmt.Errorf("unparseable date key %q", key)
}

func instantFromTime(t time.Time) Instant {
	return Instant{Year: t.Year(), Month: int(t.Month()) - 1, Day: t.Day()}
}
