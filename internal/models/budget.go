package models

import "time"

// Budget is the root ledger value: exactly one current period plus a
// history of past periods. Period date ranges are pairwise
// non-overlapping and contiguous under the budget's rule, so an entry's
// date uniquely determines its period.
type Budget struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	Rule      PeriodRule `json:"rule"`

	CurrentPeriod Period `json:"current_period"`

	// PastPeriods is kept sorted by start date, oldest first.
	PastPeriods []Period `json:"past_periods"`
}

// FindPeriod returns the period (current or past) with the given id,
// or nil when no such period exists.
func (b *Budget) FindPeriod(periodID string) *Period {
	if b.CurrentPeriod.ID == periodID {
		return &b.CurrentPeriod
	}
	for i := range b.PastPeriods {
		if b.PastPeriods[i].ID == periodID {
			return &b.PastPeriods[i]
		}
	}
	return nil
}
