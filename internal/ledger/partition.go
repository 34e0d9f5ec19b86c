package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"budgeteer/internal/models"
	"budgeteer/internal/uuid"
)

// AssignEntry places entry into the unique period covering its date:
// the current period, a matching past period, or a newly materialised
// past period with a zero budget amount. Buckets are matched by period
// key, never by raw bounds, so every date resolves to exactly one
// bucket and no entry is ever rejected.
func AssignEntry(b *models.Budget, entry models.Entry) {
	key := PeriodKeyOf(entry.Date, b.Rule)

	if PeriodKeyOf(b.CurrentPeriod.StartDate, b.Rule) == key {
		b.CurrentPeriod.Entries = append(b.CurrentPeriod.Entries, entry)
		return
	}

	for i := range b.PastPeriods {
		if PeriodKeyOf(b.PastPeriods[i].StartDate, b.Rule) == key {
			b.PastPeriods[i].Entries = append(b.PastPeriods[i].Entries, entry)
			return
		}
	}

	start, end := PeriodBoundsOf(entry.Date, b.Rule)
	b.PastPeriods = append(b.PastPeriods, models.Period{
		ID:           uuid.New(),
		StartDate:    start,
		EndDate:      end,
		Amount:       decimal.Zero,
		Entries:      []models.Entry{entry},
		FinalBalance: entry.Amount.Neg(),
	})
	sortPeriods(b.PastPeriods)
}

// removeEntry detaches the entry with the given id from whichever
// period holds it, searching the current period first. It returns the
// removed entry and whether it was found.
func removeEntry(b *models.Budget, entryID string) (models.Entry, bool) {
	if i := b.CurrentPeriod.EntryIndex(entryID); i >= 0 {
		return cutEntry(&b.CurrentPeriod, i), true
	}
	for p := range b.PastPeriods {
		if i := b.PastPeriods[p].EntryIndex(entryID); i >= 0 {
			return cutEntry(&b.PastPeriods[p], i), true
		}
	}
	return models.Entry{}, false
}

func cutEntry(p *models.Period, i int) models.Entry {
	entry := p.Entries[i]
	p.Entries = append(p.Entries[:i], p.Entries[i+1:]...)
	return entry
}

func sortPeriods(periods []models.Period) {
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].StartDate.Before(periods[j].StartDate)
	})
}
