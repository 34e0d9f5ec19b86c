package testutil_test

import (
	"testing"
	"time"

	"budgeteer/internal/errors"
	"budgeteer/internal/store"
	"budgeteer/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify the budgets table exists by doing a simple count query.
	var count int64
	if err := db.Table("budgets").Count(&count).Error; err != nil {
		t.Errorf("table %q should exist after migration: %v", "budgets", err)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	st := store.NewSQLiteStore(db)

	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	b := testutil.CreateTestBudget(t, st, now)
	if b.ID == "" {
		t.Fatal("budget should have a non-empty ID")
	}
	if !b.CurrentPeriod.StartDate.Equal(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected current period start: %v", b.CurrentPeriod.StartDate)
	}

	entry := testutil.NewTestEntry(t, "42.50", now, "groceries")
	testutil.AssertDecimal(t, "entry amount", "42.50", entry.Amount)
	if entry.Description != "groceries" {
		t.Errorf("expected groceries, got %q", entry.Description)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrBudgetNotFound, "custom message")
	testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
