package rest

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/totegamma/agenda/internal/domain"
)

type ExpenseForm struct {
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	PaymentMethod string          `json:"paymentMethod"`
	CategoryIDs   []uuid.UUID     `json:"categoryIds"`
}

type ExpenseListItem struct {
	ID            uuid.UUID       `json:"id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`
}

type ExpenseDetail struct {
	ID            uuid.UUID       `json:"id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	PaymentMethod string          `json:"paymentMethod"`
	Categories    []string        `json:"categories"`
}

type ExpenseMapper struct{}

func (ExpenseMapper) NewEntity(f ExpenseForm) domain.Expense {
	return domain.NewExpense(f.Description, f.Amount, f.Date, domain.PaymentMethod(f.PaymentMethod), f.CategoryIDs)
}

func (ExpenseMapper) Merge(f ExpenseForm, e domain.Expense) domain.Expense {
	e.Description = f.Description
	e.Amount = f.Amount
	e.Date = f.Date
	e.PaymentMethod = domain.PaymentMethod(f.PaymentMethod)
	e.CategoryIDs = f.CategoryIDs
	return e
}

func (ExpenseMapper) ToForm(e domain.Expense) ExpenseForm {
	ids := make([]uuid.UUID, len(e.CategoryIDs))
	copy(ids, e.CategoryIDs)
	return ExpenseForm{
		Description:   e.Description,
		Amount:        e.Amount,
		Date:          e.Date,
		PaymentMethod: string(e.PaymentMethod),
		CategoryIDs:   ids,
	}
}

func (ExpenseMapper) ToList(e domain.Expense) ExpenseListItem {
	return ExpenseListItem{
		ID:            e.ID,
		Description:   e.Description,
		Amount:        e.Amount,
		PaymentMethod: string(e.PaymentMethod),
	}
}

func (ExpenseMapper) ToDetail(e domain.Expense) ExpenseDetail {
	titles := make([]string, 0, len(e.Categories))
	for _, c := range e.Categories {
		titles = append(titles, c.Title)
	}
	return ExpenseDetail{
		ID:            e.ID,
		Description:   e.Description,
		Amount:        e.Amount,
		Date:          e.Date,
		PaymentMethod: string(e.PaymentMethod),
		Categories:    titles,
	}
}
