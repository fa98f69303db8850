package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/totegamma/agenda/internal/domain"
	"github.com/totegamma/agenda/internal/infra/database/models"
)

type ExpenseRepository struct {
	*crudRepository[domain.Expense, models.Expense]
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{
		crudRepository: &crudRepository[domain.Expense, models.Expense]{
			db:       db,
			resource: "expense",
			toModel:  expenseToModel,
			toDomain: expenseToDomain,
			preload:  []string{"Categories"},
		},
	}
}

// Insert writes the expense and its category links. Categories themselves
// are expected to exist already.
func (r *ExpenseRepository) Insert(ctx context.Context, expense domain.Expense) error {
	model := expenseToModel(expense)
	err := r.db.WithContext(ctx).Omit("Categories.*").Create(&model).Error
	return r.insertError(expense, err)
}

func (r *ExpenseRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("expense_categories").
		Where("category_id = ?", categoryID).
		Count(&n).Error
	if err != nil {
		return 0, errors.Wrap(err, "count expense categories")
	}
	return n, nil
}

// Update rewrites the expense columns and replaces its category links in one transaction.
func (r *ExpenseRepository) Update(ctx context.Context, expense domain.Expense) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.update(tx, expense); err != nil {
			return err
		}

		model := expenseToModel(expense)
		association := tx.Model(&model).Omit("Categories.*").Association("Categories")
		var err error
		if len(model.Categories) == 0 {
			err = association.Clear()
		} else {
			err = association.Replace(model.Categories)
		}
		if err != nil {
			return errors.Wrap(err, "replace expense categories")
		}
		return nil
	})
}

func expenseToModel(e domain.Expense) models.Expense {
	categories := make([]models.Category, 0, len(e.Categories))
	for _, c := range e.Categories {
		categories = append(categories, categoryToModel(c))
	}
	return models.Expense{
		ID:            e.ID,
		Description:   e.Description,
		Amount:        e.Amount,
		Date:          e.Date,
		PaymentMethod: string(e.PaymentMethod),
		Categories:    categories,
	}
}

func expenseToDomain(m models.Expense) domain.Expense {
	categories := make([]domain.Category, 0, len(m.Categories))
	ids := make([]uuid.UUID, 0, len(m.Categories))
	for _, c := range m.Categories {
		categories = append(categories, categoryToDomain(c))
		ids = append(ids, c.ID)
	}
	return domain.Expense{
		EntityBase:    domain.EntityBase{ID: m.ID},
		Description:   m.Description,
		Amount:        m.Amount,
		Date:          m.Date,
		PaymentMethod: domain.PaymentMethod(m.PaymentMethod),
		CategoryIDs:   ids,
		Categories:    categories,
	}
}
