package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"budgeteer/internal/models"
	"budgeteer/internal/pagination"
)

// BudgetRecord is the row shape for the budgets table: the full budget
// ledger serialised as one JSON document per budget.
type BudgetRecord struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	Name      string `gorm:"not null"`
	Document  []byte `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the GORM table name.
func (BudgetRecord) TableName() string { return "budgets" }

// SQLiteStore persists budgets as JSON documents in an embedded SQLite
// database.
type SQLiteStore struct {
	db *gorm.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a Store backed by the given GORM connection.
func NewSQLiteStore(db *gorm.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Load returns the budget with the given id, or nil when absent.
func (s *SQLiteStore) Load(id string) (*models.Budget, error) {
	var rec BudgetRecord
	if err := s.db.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load budget %s: %w", id, err)
	}
	return decodeRecord(&rec)
}

// Save upserts the budget document by id in a single statement.
func (s *SQLiteStore) Save(b *models.Budget) error {
	doc, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("encode budget %s: %w", b.ID, err)
	}

	rec := BudgetRecord{
		ID:        b.ID,
		Name:      b.Name,
		Document:  doc,
		CreatedAt: b.CreatedAt,
	}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "document", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("save budget %s: %w", b.ID, err)
	}
	return nil
}

// List returns a page of stored budgets, newest first.
func (s *SQLiteStore) List(page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	base := s.db.Model(&BudgetRecord{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, fmt.Errorf("count budgets: %w", err)
	}

	var records []BudgetRecord
	if err := base.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}

	budgets := make([]models.Budget, 0, len(records))
	for i := range records {
		b, err := decodeRecord(&records[i])
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, *b)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// Delete removes the budget record with the given id.
func (s *SQLiteStore) Delete(id string) error {
	if err := s.db.Delete(&BudgetRecord{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete budget %s: %w", id, err)
	}
	return nil
}

func decodeRecord(rec *BudgetRecord) (*models.Budget, error) {
	var b models.Budget
	if err := json.Unmarshal(rec.Document, &b); err != nil {
		return nil, fmt.Errorf("decode budget %s: %w", rec.ID, err)
	}
	return &b, nil
}
