package services

import (
	"time"

	"github.com/shopspring/decimal"

	"budgeteer/internal/amountexpr"
	apperrors "budgeteer/internal/errors"
	"budgeteer/internal/ledger"
	"budgeteer/internal/logger"
	"budgeteer/internal/models"
	"budgeteer/internal/pagination"
	"budgeteer/internal/store"
	"budgeteer/internal/uuid"
)

// budgetService handles budget ledger operations. It owns the wall
// clock so rollover detection is testable.
type budgetService struct {
	store       store.Store
	defaultRule models.PeriodRule
	now         func() time.Time
}

// NewBudgetService creates a new BudgetServicer backed by the given
// store. defaultRule is used for budgets created without an explicit
// rule; the zero value falls back to the month-halves split.
func NewBudgetService(st store.Store, defaultRule models.PeriodRule) BudgetServicer {
	return &budgetService{store: st, defaultRule: defaultRule.OrDefault(), now: time.Now}
}

// CreateBudget creates a budget with an empty current period spanning
// today under the given rule. The zero rule selects the service's
// configured default.
func (s *budgetService) CreateBudget(name string, rule models.PeriodRule) (*models.Budget, error) {
	if (rule == models.PeriodRule{}) {
		rule = s.defaultRule
	} else if !rule.Valid() {
		return nil, apperrors.ErrInvalidRule
	}

	b := ledger.NewBudget(name, rule, s.now())
	s.persist(b)
	return b, nil
}

// GetBudget returns the budget by id, after applying any due rollover.
func (s *budgetService) GetBudget(id string) (*models.Budget, error) {
	b, rolled, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if rolled {
		s.persist(b)
	}
	return b, nil
}

// ListBudgets returns a page of stored budgets.
func (s *budgetService) ListBudgets(page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	result, err := s.store.List(page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return result, nil
}

// DeleteBudget removes the budget by id.
func (s *budgetService) DeleteBudget(id string) error {
	b, err := s.store.Load(id)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if b == nil {
		return apperrors.ErrBudgetNotFound
	}
	if err := s.store.Delete(id); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// AddEntry evaluates the amount expression and assigns a new entry to
// the period covering its date.
func (s *budgetService) AddEntry(budgetID string, input AddEntryInput) (*models.Budget, error) {
	amount, err := evalAmount(input.Amount)
	if err != nil {
		return nil, err
	}

	b, _, err := s.load(budgetID)
	if err != nil {
		return nil, err
	}

	date := s.now()
	if input.Date != nil {
		date = *input.Date
	}

	ledger.AddEntry(b, models.Entry{
		ID:                   uuid.New(),
		Amount:               amount,
		Date:                 date,
		Description:          input.Description,
		ExcludeFromDepletion: input.ExcludeFromDepletion,
	})
	s.persist(b)
	return b, nil
}

// EditEntry applies a partial update to an entry. An unknown entry id
// is a no-op: the budget is returned unchanged, matching idempotent
// deletes from concurrent views.
func (s *budgetService) EditEntry(budgetID, entryID string, patch EntryPatchInput) (*models.Budget, error) {
	enginePatch := ledger.EntryPatch{
		Description:          patch.Description,
		Date:                 patch.Date,
		ExcludeFromDepletion: patch.ExcludeFromDepletion,
	}
	if patch.Amount != nil {
		amount, err := evalAmount(*patch.Amount)
		if err != nil {
			return nil, err
		}
		enginePatch.Amount = &amount
	}

	b, _, err := s.load(budgetID)
	if err != nil {
		return nil, err
	}

	if !ledger.EditEntry(b, entryID, enginePatch) {
		logger.Get().Debugw("edit of unknown entry ignored", "budget_id", budgetID, "entry_id", entryID)
	}
	s.persist(b)
	return b, nil
}

// DeleteEntry removes an entry. An unknown entry id is a no-op.
func (s *budgetService) DeleteEntry(budgetID, entryID string) (*models.Budget, error) {
	b, _, err := s.load(budgetID)
	if err != nil {
		return nil, err
	}

	if !ledger.DeleteEntry(b, entryID) {
		logger.Get().Debugw("delete of unknown entry ignored", "budget_id", budgetID, "entry_id", entryID)
	}
	s.persist(b)
	return b, nil
}

// SetPeriodAmount sets the budget amount of a current or past period.
// Negative results of the expression are accepted as given.
func (s *budgetService) SetPeriodAmount(budgetID, periodID, amount string) (*models.Budget, error) {
	value, err := evalAmount(amount)
	if err != nil {
		return nil, err
	}

	b, _, err := s.load(budgetID)
	if err != nil {
		return nil, err
	}

	if !ledger.SetPeriodAmount(b, periodID, value) {
		return nil, apperrors.ErrPeriodNotFound
	}
	s.persist(b)
	return b, nil
}

// PayDown spends part of the carried-over debt or savings. Paying an
// empty facet is a silent no-op per the engine's contract.
func (s *budgetService) PayDown(budgetID string, kind ledger.CarryKind, amount string) (*models.Budget, error) {
	if kind != ledger.CarryDebt && kind != ledger.CarrySavings {
		return nil, apperrors.ErrInvalidCarryKind
	}

	value, err := evalAmount(amount)
	if err != nil {
		return nil, err
	}

	b, _, err := s.load(budgetID)
	if err != nil {
		return nil, err
	}

	ledger.PayDown(b, kind, value, s.now())
	s.persist(b)
	return b, nil
}

// Summary returns the derived figures for the budget's current period.
func (s *budgetService) Summary(budgetID string) (*ledger.Summary, error) {
	b, rolled, err := s.load(budgetID)
	if err != nil {
		return nil, err
	}
	if rolled {
		s.persist(b)
	}
	summary := ledger.Summarize(b)
	return &summary, nil
}

// load fetches the budget and applies any due rollover before the
// operation proper runs. The second return value reports whether a
// rollover happened, so read-only callers know to persist it.
func (s *budgetService) load(id string) (*models.Budget, bool, error) {
	b, err := s.store.Load(id)
	if err != nil {
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if b == nil {
		return nil, false, apperrors.ErrBudgetNotFound
	}
	rolled := ledger.RolloverIfDue(b, s.now())
	return b, rolled, nil
}

// persist writes the budget back, logging failures without failing the
// operation: the in-memory result stays authoritative for the session.
func (s *budgetService) persist(b *models.Budget) {
	if err := s.store.Save(b); err != nil {
		logger.Get().Warnw("budget save failed, continuing with in-memory state",
			"budget_id", b.ID,
			"error", err.Error(),
		)
	}
}

func evalAmount(expr string) (decimal.Decimal, error) {
	value, err := amountexpr.Eval(expr)
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInvalidAmountExpression, err)
	}
	return value, nil
}
