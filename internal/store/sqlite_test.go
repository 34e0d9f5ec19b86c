package store_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"budgeteer/internal/ledger"
	"budgeteer/internal/models"
	"budgeteer/internal/pagination"
	"budgeteer/internal/store"
	"budgeteer/internal/testutil"
)

var anchor = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	st := store.NewSQLiteStore(db)

	b := testutil.CreateTestBudget(t, st, anchor)
	ledger.AddEntry(b, testutil.NewTestEntry(t, "120.50", anchor, "groceries"))
	ledger.AddEntry(b, testutil.NewTestEntry(t, "300", anchor.AddDate(0, -1, 0), "old bill"))
	testutil.AssertNoError(t, st.Save(b))

	loaded, err := st.Load(b.ID)
	testutil.AssertNoError(t, err)
	if loaded == nil {
		t.Fatal("expected budget, got nil")
	}

	if loaded.Name != b.Name {
		t.Errorf("name = %q, want %q", loaded.Name, b.Name)
	}
	if len(loaded.CurrentPeriod.Entries) != 1 {
		t.Fatalf("current entries = %d, want 1", len(loaded.CurrentPeriod.Entries))
	}
	testutil.AssertDecimal(t, "entry amount", "120.50", loaded.CurrentPeriod.Entries[0].Amount)
	if len(loaded.PastPeriods) != 1 {
		t.Fatalf("past periods = %d, want 1", len(loaded.PastPeriods))
	}
	testutil.AssertDecimal(t, "past final balance", "-300", loaded.PastPeriods[0].FinalBalance)
	if !loaded.CurrentPeriod.StartDate.Equal(b.CurrentPeriod.StartDate) {
		t.Errorf("start date = %s, want %s", loaded.CurrentPeriod.StartDate, b.CurrentPeriod.StartDate)
	}
}

func TestLoadMissingReturnsNil(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	st := store.NewSQLiteStore(db)

	loaded, err := st.Load("no-such-id")
	testutil.AssertNoError(t, err)
	if loaded != nil {
		t.Errorf("expected nil for missing budget, got %+v", loaded)
	}
}

func TestSaveOverwritesByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	st := store.NewSQLiteStore(db)

	b := testutil.CreateTestBudget(t, st, anchor)
	b.Name = "Renamed"
	ledger.SetPeriodAmount(b, b.CurrentPeriod.ID, decimal.RequireFromString("750"))
	testutil.AssertNoError(t, st.Save(b))

	loaded, err := st.Load(b.ID)
	testutil.AssertNoError(t, err)
	if loaded.Name != "Renamed" {
		t.Errorf("name = %q, want Renamed", loaded.Name)
	}
	testutil.AssertDecimal(t, "amount", "750", loaded.CurrentPeriod.Amount)

	page, err := st.List(pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if page.TotalItems != 1 {
		t.Errorf("total items = %d, want 1 (save must upsert)", page.TotalItems)
	}
}

func TestListNewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	st := store.NewSQLiteStore(db)

	older := ledger.NewBudget("Older", models.DefaultPeriodRule(), anchor.AddDate(0, 0, -3))
	newer := ledger.NewBudget("Newer", models.DefaultPeriodRule(), anchor)
	testutil.AssertNoError(t, st.Save(older))
	testutil.AssertNoError(t, st.Save(newer))

	page, err := st.List(pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if len(page.Data) != 2 {
		t.Fatalf("expected 2 budgets, got %d", len(page.Data))
	}
	if page.Data[0].Name != "Newer" {
		t.Errorf("first listed = %q, want Newer", page.Data[0].Name)
	}

	small, err := st.List(pagination.PageRequest{Page: 1, PageSize: 1})
	testutil.AssertNoError(t, err)
	if len(small.Data) != 1 || small.TotalPages != 2 {
		t.Errorf("page_size=1: got %d items, %d pages", len(small.Data), small.TotalPages)
	}
}

func TestDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	st := store.NewSQLiteStore(db)

	b := testutil.CreateTestBudget(t, st, anchor)
	testutil.AssertNoError(t, st.Delete(b.ID))

	loaded, err := st.Load(b.ID)
	testutil.AssertNoError(t, err)
	if loaded != nil {
		t.Error("budget still present after delete")
	}

	// Deleting a missing id is not an error.
	testutil.AssertNoError(t, st.Delete(b.ID))
}
