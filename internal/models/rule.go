package models

// PeriodRule configures how calendar dates split into recurring pay
// periods: two window start days per month. The default {1, 16} splits
// each month into halves. A pair like {5, 21} wraps: the window
// starting on day 21 extends into day 4 of the next month.
type PeriodRule struct {
	StartDay1 int `json:"start_day_1"`
	StartDay2 int `json:"start_day_2"`
}

// DefaultPeriodRule returns the fixed month-halves rule.
func DefaultPeriodRule() PeriodRule {
	return PeriodRule{StartDay1: 1, StartDay2: 16}
}

// OrDefault substitutes the default rule for the zero value, so budgets
// persisted before rules were configurable keep working.
func (r PeriodRule) OrDefault() PeriodRule {
	if r.StartDay1 == 0 && r.StartDay2 == 0 {
		return DefaultPeriodRule()
	}
	return r
}

// Valid reports whether the rule is acceptable as user configuration:
// both start days within 1..28 (so they exist in every month) and
// strictly ordered. The ledger engine itself tolerates any pair by
// clamping, but configured rules are held to this.
func (r PeriodRule) Valid() bool {
	return r.StartDay1 >= 1 && r.StartDay1 < r.StartDay2 && r.StartDay2 <= 28
}
