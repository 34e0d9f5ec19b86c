package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"budgeteer/internal/models"
	"budgeteer/internal/uuid"
)

// CarryKind names one facet of the carried-over balance.
type CarryKind string

const (
	CarryDebt    CarryKind = "debt"
	CarrySavings CarryKind = "savings"
)

// NewBudget creates a budget with an empty current period spanning the
// period containing now under the given rule.
func NewBudget(name string, rule models.PeriodRule, now time.Time) *models.Budget {
	rule = rule.OrDefault()
	b := &models.Budget{
		ID:            uuid.New(),
		Name:          name,
		CreatedAt:     now,
		Rule:          rule,
		CurrentPeriod: openPeriod(now, rule),
	}
	Recompute(b)
	return b
}

// AddEntry assigns the entry to its period and restores consistency.
func AddEntry(b *models.Budget, entry models.Entry) {
	AssignEntry(b, entry)
	finish(b)
}

// EntryPatch describes a partial update to an entry. Nil fields are
// left unchanged.
type EntryPatch struct {
	Amount               *decimal.Decimal
	Description          *string
	Date                 *time.Time
	ExcludeFromDepletion *bool
}

// EditEntry applies patch to the entry with the given id, wherever it
// lives. The entry is detached and re-assigned, so a date change moves
// it to the right period. Unknown ids are a no-op; the return value
// reports whether the entry was found.
func EditEntry(b *models.Budget, entryID string, patch EntryPatch) bool {
	entry, ok := removeEntry(b, entryID)
	if !ok {
		return false
	}
	if patch.Amount != nil {
		entry.Amount = *patch.Amount
	}
	if patch.Description != nil {
		entry.Description = *patch.Description
	}
	if patch.Date != nil {
		entry.Date = *patch.Date
	}
	if patch.ExcludeFromDepletion != nil {
		entry.ExcludeFromDepletion = *patch.ExcludeFromDepletion
	}
	AssignEntry(b, entry)
	finish(b)
	return true
}

// DeleteEntry removes the entry with the given id from whichever period
// holds it. Unknown ids are a no-op.
func DeleteEntry(b *models.Budget, entryID string) bool {
	if _, ok := removeEntry(b, entryID); !ok {
		return false
	}
	finish(b)
	return true
}

// SetPeriodAmount sets the budget amount of the period (current or
// past) with the given id. Negative amounts are accepted as given;
// downstream figures may go negative. Returns false when no such
// period exists.
func SetPeriodAmount(b *models.Budget, periodID string, amount decimal.Decimal) bool {
	p := b.FindPeriod(periodID)
	if p == nil {
		return false
	}
	p.Amount = amount
	finish(b)
	return true
}

// PayDown spends part of the carried-over balance: it appends a tagged
// payment entry to the current period, which the calculator then
// offsets against the carryover. The payment is capped at what is
// actually carried; a non-positive amount or an empty facet is a
// silent no-op. Returns the appended entry, or nil when nothing was
// done.
func PayDown(b *models.Budget, kind CarryKind, amount decimal.Decimal, now time.Time) *models.Entry {
	carried := models.CarriedOver{Savings: decimal.Zero, Debt: decimal.Zero}
	if b.CurrentPeriod.CarriedOver != nil {
		carried = *b.CurrentPeriod.CarriedOver
	}

	var available decimal.Decimal
	var description string
	switch kind {
	case CarryDebt:
		available = carried.Debt
		description = models.DebtPaymentDescription
	case CarrySavings:
		available = carried.Savings
		description = models.SavingsPaymentDescription
	default:
		return nil
	}

	if !available.IsPositive() || !amount.IsPositive() {
		return nil
	}

	entry := models.Entry{
		ID:          uuid.New(),
		Amount:      decimal.Min(available, amount),
		Date:        now,
		Description: description,
	}
	b.CurrentPeriod.Entries = append(b.CurrentPeriod.Entries, entry)
	finish(b)
	return &entry
}

// RolloverIfDue seals the current period into history and opens the
// period containing today. A future-dated entry may already have
// materialised today's window among the past periods; that period is
// promoted back to current, entries and all, so no period key is ever
// held twice. A multi-day gap is caught up in this single pass: the
// windows skipped while nothing ran can hold no entries, so landing
// directly on today's period leaves the ledger identical to sealing
// each skipped window in turn and pruning the empties. Calling it
// again on the same day is a no-op.
func RolloverIfDue(b *models.Budget, today time.Time) bool {
	if today.Before(b.CurrentPeriod.StartDate) {
		// Clock moved backwards; never roll into the past.
		return false
	}
	todayKey := PeriodKeyOf(today, b.Rule)
	if todayKey == PeriodKeyOf(b.CurrentPeriod.StartDate, b.Rule) {
		return false
	}

	sealed := b.CurrentPeriod
	sealed.CarriedOver = nil
	sealed.FinalBalance = sealed.Amount.Sub(sealed.TotalSpent())
	b.PastPeriods = append(b.PastPeriods, sealed)
	sortPeriods(b.PastPeriods)

	b.CurrentPeriod = takePeriod(b, today, todayKey)
	finish(b)
	return true
}

// takePeriod returns the period covering today as the new current
// period: an already-materialised one is detached from the past
// periods, otherwise a fresh empty period is opened.
func takePeriod(b *models.Budget, today time.Time, key string) models.Period {
	for i := range b.PastPeriods {
		if PeriodKeyOf(b.PastPeriods[i].StartDate, b.Rule) != key {
			continue
		}
		p := b.PastPeriods[i]
		p.FinalBalance = decimal.Zero
		b.PastPeriods = append(b.PastPeriods[:i], b.PastPeriods[i+1:]...)
		return p
	}
	return openPeriod(today, b.Rule)
}

func openPeriod(date time.Time, rule models.PeriodRule) models.Period {
	start, end := PeriodBoundsOf(date, rule)
	return models.Period{
		ID:        uuid.New(),
		StartDate: start,
		EndDate:   end,
		Amount:    decimal.Zero,
		Entries:   []models.Entry{},
	}
}

// finish restores the global invariants after a mutation: balances and
// carryover are recomputed and empty periods dropped.
func finish(b *models.Budget) {
	Recompute(b)
	prune(b)
}

// prune drops past periods holding no entries and no budget amount.
// The current period is never pruned; it is the one period a budget
// always has.
func prune(b *models.Budget) {
	kept := b.PastPeriods[:0]
	for _, p := range b.PastPeriods {
		if len(p.Entries) == 0 && p.Amount.IsZero() {
			continue
		}
		kept = append(kept, p)
	}
	b.PastPeriods = kept
}
