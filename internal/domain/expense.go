package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodDebit  PaymentMethod = "debit"
	PaymentMethodCredit PaymentMethod = "credit"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentMethodCash, PaymentMethodDebit, PaymentMethodCredit:
		return true
	default:
		return false
	}
}

// Expense is a single spending entry. CategoryIDs is what callers request;
// Categories is resolved by the expense service before persisting.
type Expense struct {
	EntityBase
	Description   string          `json:"description" validate:"required,max=200"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date" validate:"required"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	CategoryIDs   []uuid.UUID     `json:"categoryIds"`
	Categories    []Category      `json:"categories"`
}

func NewExpense(description string, amount decimal.Decimal, date time.Time, method PaymentMethod, categoryIDs []uuid.UUID) Expense {
	return Expense{
		EntityBase:    newEntityBase(),
		Description:   description,
		Amount:        amount,
		Date:          date,
		PaymentMethod: method,
		CategoryIDs:   categoryIDs,
	}
}
