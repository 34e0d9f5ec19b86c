package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"budgeteer/internal/ledger"
	"budgeteer/internal/models"
	"budgeteer/internal/store"
	"budgeteer/internal/uuid"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

// CreateTestBudget creates and persists a budget with a unique name
// under the default month-halves rule, anchored at now.
func CreateTestBudget(t *testing.T, st store.Store, now time.Time) *models.Budget {
	t.Helper()

	name := fmt.Sprintf("Budget %d", counter.Add(1))
	b := ledger.NewBudget(name, models.DefaultPeriodRule(), now)
	if err := st.Save(b); err != nil {
		t.Fatalf("failed to save test budget: %v", err)
	}
	return b
}

// NewTestEntry builds an entry with the given amount, date, and description.
func NewTestEntry(t *testing.T, amount string, date time.Time, description string) models.Entry {
	t.Helper()

	value, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("bad fixture amount %q: %v", amount, err)
	}
	return models.Entry{
		ID:          uuid.New(),
		Amount:      value,
		Date:        date,
		Description: description,
	}
}
