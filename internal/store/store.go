// Package store defines the persistence port for budgets and its
// SQLite-backed implementation. The ledger engine consumes persistence
// only through this contract; in-memory state stays authoritative for
// the session when a write fails.
package store

import (
	"budgeteer/internal/models"
	"budgeteer/internal/pagination"
)

// Store is the persistence port for budgets: one record per budget,
// keyed by id.
type Store interface {
	// Load returns the budget with the given id, or nil when absent.
	Load(id string) (*models.Budget, error)

	// Save overwrites the stored budget atomically by id.
	Save(b *models.Budget) error

	// List returns stored budgets, newest first.
	List(page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)

	// Delete removes the budget with the given id. Deleting an unknown
	// id is not an error.
	Delete(id string) error
}
