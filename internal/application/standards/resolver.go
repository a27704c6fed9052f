package standards

import "time"

// Interval is the active-range contract shared by both standard families.
// IntervalEnd returning nil means the standard is open-ended.
type Interval interface {
	IntervalStart() time.Time
	IntervalEnd() *time.Time
}

// Contains reports whether [start, end or +inf) contains t, at date granularity.
func Contains(iv Interval, t time.Time) bool {
	target := dateOnly(t)
	start := dateOnly(iv.IntervalStart())
	if target.Before(start) {
		return false
	}
	if end := iv.IntervalEnd(); end != nil {
		if target.After(dateOnly(*end)) {
			return false
		}
	}
	return true
}

// IntersectsYear reports whether the interval touches any day of the year.
func IntersectsYear(iv Interval, year int) bool {
	if iv.IntervalStart().Year() > year {
		return false
	}
	if end := iv.IntervalEnd(); end != nil && end.Year() < year {
		return false
	}
	return true
}

// MonthRange returns the interval's covered month range within year, clamped
// to the interval's own bounds. ok is false when the interval does not
// intersect the year at all.
func MonthRange(iv Interval, year int) (first, last int, ok bool) {
	if !IntersectsYear(iv, year) {
		return 0, 0, false
	}
	first, last = 1, 12
	if start := iv.IntervalStart(); start.Year() == year {
		first = int(start.Month())
	}
	if end := iv.IntervalEnd(); end != nil && end.Year() == year {
		last = int(end.Month())
	}
	if first > last {
		return 0, 0, false
	}
	return first, last, true
}

// Resolve returns the single standard governing the month containing target.
// Filter is interval containment; when overlapping intervals leave more than
// one candidate, the one with the latest start date wins. That is a policy
// choice ("last definition wins") — overlapping standards are not otherwise
// disambiguated, so the most recently effective agreement is taken as the
// operative one.
func Resolve[S Interval](candidates []S, target time.Time) (S, bool) {
	matched := make([]S, 0, len(candidates))
	for _, s := range candidates {
		if Contains(s, target) {
			matched = append(matched, s)
		}
	}
	return Latest(matched)
}

// Latest returns the candidate with the latest start date. Same tie-break
// policy as Resolve, for callers that have already filtered by range.
func Latest[S Interval](candidates []S) (S, bool) {
	var winner S
	found := false
	for _, s := range candidates {
		if !found || s.IntervalStart().After(winner.IntervalStart()) {
			winner = s
			found = true
		}
	}
	return winner, found
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
