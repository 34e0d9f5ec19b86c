package ledger

import (
	"github.com/shopspring/decimal"

	"budgeteer/internal/models"
)

// Recompute rederives every past period's final balance and the current
// period's carryover from scratch. All past periods contribute to the
// net carryover; tagged debt payments in the current period pay it
// down, and tagged savings withdrawals draw it down. Calling Recompute
// twice in a row yields the same budget as calling it once.
func Recompute(b *models.Budget) {
	netCarry := decimal.Zero
	for i := range b.PastPeriods {
		p := &b.PastPeriods[i]
		p.FinalBalance = p.Amount.Sub(p.TotalSpent())
		netCarry = netCarry.Add(p.FinalBalance)
	}

	adjusted := netCarry
	for i := range b.CurrentPeriod.Entries {
		e := &b.CurrentPeriod.Entries[i]
		switch {
		case e.IsDebtPayment():
			adjusted = adjusted.Add(e.Amount)
		case e.IsSavingsPayment():
			adjusted = adjusted.Sub(e.Amount)
		}
	}

	carried := models.CarriedOver{Savings: decimal.Zero, Debt: decimal.Zero}
	switch {
	case adjusted.IsPositive():
		carried.Savings = adjusted
	case adjusted.IsNegative():
		carried.Debt = adjusted.Neg()
	}
	b.CurrentPeriod.CarriedOver = &carried
}

// Summary is the derived read model for a budget's current period.
// Nothing in it is stored; it is computed at read time.
type Summary struct {
	// CurrentBalance is the period amount minus everything spent in the
	// period. It may go negative.
	CurrentBalance decimal.Decimal `json:"current_balance"`

	// AvailableFunds is what is left to spend once carryover is applied,
	// floored at zero. Entries flagged ExcludeFromDepletion do not
	// deplete it.
	AvailableFunds decimal.Decimal `json:"available_funds"`

	TotalSpent  decimal.Decimal    `json:"total_spent"`
	CarriedOver models.CarriedOver `json:"carried_over"`

	// PercentUsed is nil when the period amount is zero: the figure is
	// undefined rather than a fault.
	PercentUsed *float64 `json:"percent_used"`
}

// Summarize computes the current period's derived figures.
func Summarize(b *models.Budget) Summary {
	cur := &b.CurrentPeriod

	spent := cur.TotalSpent()
	depletion := decimal.Zero
	for i := range cur.Entries {
		if !cur.Entries[i].ExcludeFromDepletion {
			depletion = depletion.Add(cur.Entries[i].Amount)
		}
	}

	carried := models.CarriedOver{Savings: decimal.Zero, Debt: decimal.Zero}
	if cur.CarriedOver != nil {
		carried = *cur.CarriedOver
	}

	available := cur.Amount.Add(carried.Savings).Sub(carried.Debt).Sub(depletion)
	if available.IsNegative() {
		available = decimal.Zero
	}

	s := Summary{
		CurrentBalance: cur.Amount.Sub(spent),
		AvailableFunds: available,
		TotalSpent:     spent,
		CarriedOver:    carried,
	}
	if !cur.Amount.IsZero() {
		pct, _ := spent.Div(cur.Amount).Mul(decimal.NewFromInt(100)).Float64()
		s.PercentUsed = &pct
	}
	return s
}
