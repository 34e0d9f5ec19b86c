package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CarriedOver splits the net balance carried into the current period
// into its two non-negative facets. At most one of the two is non-zero
// at any time.
type CarriedOver struct {
	Savings decimal.Decimal `json:"savings"`
	Debt    decimal.Decimal `json:"debt"`
}

// Period is a contiguous, non-overlapping date range bucketing entries
// for budgeting purposes. StartDate is midnight of the period's first
// day; EndDate is 23:59:59.999 of its last day.
type Period struct {
	ID        string          `json:"id"`
	StartDate time.Time       `json:"start_date"`
	EndDate   time.Time       `json:"end_date"`
	Amount    decimal.Decimal `json:"amount"`
	Entries   []Entry         `json:"entries"`

	// CarriedOver is set on the current period only.
	CarriedOver *CarriedOver `json:"carried_over,omitempty"`

	// FinalBalance is meaningful on past periods only: the period's
	// amount minus everything spent in it. Positive is leftover savings,
	// negative is overspend.
	FinalBalance decimal.Decimal `json:"final_balance"`
}

// TotalSpent returns the sum of all entry amounts in the period.
func (p *Period) TotalSpent() decimal.Decimal {
	total := decimal.Zero
	for i := range p.Entries {
		total = total.Add(p.Entries[i].Amount)
	}
	return total
}

// EntryIndex returns the position of the entry with the given id, or -1.
func (p *Period) EntryIndex(entryID string) int {
	for i := range p.Entries {
		if p.Entries[i].ID == entryID {
			return i
		}
	}
	return -1
}
