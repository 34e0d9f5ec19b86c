package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fixed entry descriptions used to classify carryover payments. The
// ledger engine recognises these by exact match on Description, so a
// payment entry survives edits to everything except its label.
const (
	DebtPaymentDescription    = "Debt Payment"
	SavingsPaymentDescription = "Savings Payment"
)

// Entry represents a single dated monetary transaction within a budget.
// Positive amounts are expenses and reduce the period balance; negative
// amounts are credits and increase it.
type Entry struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`

	// ExcludeFromDepletion marks an entry (e.g. a recurring bill) that
	// should not count against normal budget depletion. It still counts
	// toward period balances.
	ExcludeFromDepletion bool `json:"exclude_from_depletion,omitempty"`
}

// IsDebtPayment reports whether the entry is a tagged debt payment.
func (e *Entry) IsDebtPayment() bool {
	return e.Description == DebtPaymentDescription
}

// IsSavingsPayment reports whether the entry is a tagged savings withdrawal.
func (e *Entry) IsSavingsPayment() bool {
	return e.Description == SavingsPaymentDescription
}
