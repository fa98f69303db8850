package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/totegamma/agenda/internal/domain"
)

// Repository defines persistence for a single entity type.
// SelectByID returns an error matching domain.ErrNotFound for unknown ids.
type Repository[E domain.Entity] interface {
	Insert(ctx context.Context, entity E) error
	Update(ctx context.Context, entity E) error
	Delete(ctx context.Context, entity E) error
	SelectAll(ctx context.Context) ([]E, error)
	SelectByID(ctx context.Context, id uuid.UUID) (E, error)
}

// CategoryRepository adds bulk lookup used when composing expenses.
type CategoryRepository interface {
	Repository[domain.Category]
	SelectMany(ctx context.Context, ids []uuid.UUID) ([]domain.Category, error)
}

// CategoryUsage counts the expenses linked to a category.
type CategoryUsage interface {
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}

// ExpenseRepository is the expense store. It also answers category usage.
type ExpenseRepository interface {
	Repository[domain.Expense]
	CategoryUsage
}

// Service is the business boundary consumed by the CRUD handlers.
// Failures are reported through the Result, never as Go errors.
type Service[E domain.Entity] interface {
	SelectAll(ctx context.Context) domain.Result[[]E]
	SelectByID(ctx context.Context, id uuid.UUID) domain.Result[E]
	Insert(ctx context.Context, entity E) domain.Result[E]
	Update(ctx context.Context, entity E) domain.Result[E]
	Delete(ctx context.Context, entity E) domain.Result[E]
}

// ChangePublisher broadcasts persisted mutations.
type ChangePublisher interface {
	Publish(ctx context.Context, event domain.ChangeEvent) error
}
