package services

import (
	"time"

	"budgeteer/internal/ledger"
	"budgeteer/internal/models"
	"budgeteer/internal/pagination"
)

// AddEntryInput carries the fields for a new entry. Amount is a raw
// arithmetic expression string ("10+5+3.25") evaluated at this
// boundary.
type AddEntryInput struct {
	Amount               string
	Description          string
	Date                 *time.Time // nil means now
	ExcludeFromDepletion bool
}

// EntryPatchInput describes a partial update to an entry. Nil fields
// are left unchanged. Amount, when set, is a raw expression string.
type EntryPatchInput struct {
	Amount               *string
	Description          *string
	Date                 *time.Time
	ExcludeFromDepletion *bool
}

// BudgetServicer defines the contract for budget ledger operations.
// Every operation first applies any due period rollover, then mutates,
// then persists once; a persistence failure is logged and the in-memory
// result is still returned.
type BudgetServicer interface {
	CreateBudget(name string, rule models.PeriodRule) (*models.Budget, error)
	GetBudget(id string) (*models.Budget, error)
	ListBudgets(page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	DeleteBudget(id string) error

	AddEntry(budgetID string, input AddEntryInput) (*models.Budget, error)
	EditEntry(budgetID, entryID string, patch EntryPatchInput) (*models.Budget, error)
	DeleteEntry(budgetID, entryID string) (*models.Budget, error)

	SetPeriodAmount(budgetID, periodID, amount string) (*models.Budget, error)
	PayDown(budgetID string, kind ledger.CarryKind, amount string) (*models.Budget, error)

	Summary(budgetID string) (*ledger.Summary, error)
}
