// Package ledger implements the period ledger engine: period-key
// derivation, partitioning of dated entries into periods, balance and
// carryover computation, and the mutation operations that keep a budget
// self-consistent under out-of-order edits. Everything here is pure
// in-memory logic; persistence and time are the caller's concern.
package ledger

import (
	"time"

	"budgeteer/internal/models"
)

// PeriodKeyLayout is the format of period keys: the YYYY-MM-DD of the
// period's start day.
const PeriodKeyLayout = "2006-01-02"

// PeriodKeyOf returns the key of the period containing date under the
// given rule. It is a pure function of its inputs.
func PeriodKeyOf(date time.Time, rule models.PeriodRule) string {
	return PeriodStartOf(date, rule).Format(PeriodKeyLayout)
}

// PeriodStartOf returns midnight of the first day of the period
// containing date.
func PeriodStartOf(date time.Time, rule models.PeriodRule) time.Time {
	rule = rule.OrDefault()
	y, m, d := date.Date()
	loc := date.Location()

	s1 := clampDay(rule.StartDay1, y, m)
	s2 := clampDay(rule.StartDay2, y, m)

	switch {
	case d >= s2:
		return time.Date(y, m, s2, 0, 0, 0, 0, loc)
	case d >= s1:
		return time.Date(y, m, s1, 0, 0, 0, 0, loc)
	default:
		// The date precedes the month's first window, so it belongs to
		// the second window of the previous month, which wraps across the
		// month boundary.
		prev := time.Date(y, m, 1, 0, 0, 0, 0, loc).AddDate(0, -1, 0)
		py, pm, _ := prev.Date()
		return time.Date(py, pm, clampDay(rule.StartDay2, py, pm), 0, 0, 0, 0, loc)
	}
}

// PeriodBoundsOf returns the inclusive bounds of the period containing
// date: midnight of the start day through 23:59:59.999 of the last day.
func PeriodBoundsOf(date time.Time, rule models.PeriodRule) (start, end time.Time) {
	start = PeriodStartOf(date, rule)
	end = nextPeriodStart(start, rule).Add(-time.Millisecond)
	return start, end
}

// nextPeriodStart returns the start of the period following the one
// that starts at start. Periods are contiguous, so this is also the
// exclusive upper bound of the current one.
func nextPeriodStart(start time.Time, rule models.PeriodRule) time.Time {
	rule = rule.OrDefault()
	y, m, d := start.Date()
	loc := start.Location()

	s2 := clampDay(rule.StartDay2, y, m)
	if d < s2 {
		return time.Date(y, m, s2, 0, 0, 0, 0, loc)
	}

	next := time.Date(y, m, 1, 0, 0, 0, 0, loc).AddDate(0, 1, 0)
	ny, nm, _ := next.Date()
	return time.Date(ny, nm, clampDay(rule.StartDay1, ny, nm), 0, 0, 0, 0, loc)
}

// clampDay limits a configured start day to the number of days in the
// month, so rules like {1, 30} still resolve in February.
func clampDay(day, year int, month time.Month) int {
	last := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
	if day > last {
		return last
	}
	return day
}
