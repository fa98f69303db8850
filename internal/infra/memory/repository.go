// Package memory keeps entities in process memory. It backs the "memory"
// storage mode and is handy for tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/totegamma/agenda/internal/domain"
)

type Repository[E domain.Entity] struct {
	resource string
	store    *cache.Cache
	mu       sync.Mutex // serialises existence checks with writes
}

func NewRepository[E domain.Entity](resource string) *Repository[E] {
	return &Repository[E]{
		resource: resource,
		store:    cache.New(cache.NoExpiration, 0),
	}
}

func (r *Repository[E]) Insert(ctx context.Context, entity E) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.store.Add(entity.GetID().String(), entity, cache.NoExpiration)
	if err != nil {
		return domain.DuplicateError{Entity: r.resource, ID: entity.GetID()}
	}
	return nil
}

func (r *Repository[E]) Update(ctx context.Context, entity E) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.store.Replace(entity.GetID().String(), entity, cache.NoExpiration)
	if err != nil {
		return domain.NotFoundError{Entity: r.resource, ID: entity.GetID()}
	}
	return nil
}

func (r *Repository[E]) Delete(ctx context.Context, entity E) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := entity.GetID().String()
	if _, found := r.store.Get(key); !found {
		return domain.NotFoundError{Entity: r.resource, ID: entity.GetID()}
	}
	r.store.Delete(key)
	return nil
}

func (r *Repository[E]) SelectAll(ctx context.Context) ([]E, error) {
	items := r.store.Items()
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]E, 0, len(keys))
	for _, k := range keys {
		out = append(out, items[k].Object.(E))
	}
	return out, nil
}

func (r *Repository[E]) SelectByID(ctx context.Context, id uuid.UUID) (E, error) {
	v, found := r.store.Get(id.String())
	if !found {
		var zero E
		return zero, domain.NotFoundError{Entity: r.resource, ID: id}
	}
	return v.(E), nil
}

func (r *Repository[E]) selectMany(ids []uuid.UUID) []E {
	out := make([]E, 0, len(ids))
	for _, id := range ids {
		if v, found := r.store.Get(id.String()); found {
			out = append(out, v.(E))
		}
	}
	return out
}

// CategoryRepository adds the bulk lookup needed by expenses.
type CategoryRepository struct {
	*Repository[domain.Category]
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{Repository: NewRepository[domain.Category]("category")}
}

// SelectMany returns the categories that exist among ids, in ids order.
func (r *CategoryRepository) SelectMany(ctx context.Context, ids []uuid.UUID) ([]domain.Category, error) {
	return r.selectMany(ids), nil
}

// ExpenseRepository reloads linked categories on every read so renamed
// categories show up the way a postgres join would.
type ExpenseRepository struct {
	*Repository[domain.Expense]
	categories *CategoryRepository
}

func NewExpenseRepository(categories *CategoryRepository) *ExpenseRepository {
	return &ExpenseRepository{
		Repository: NewRepository[domain.Expense]("expense"),
		categories: categories,
	}
}

func (r *ExpenseRepository) SelectAll(ctx context.Context) ([]domain.Expense, error) {
	expenses, err := r.Repository.SelectAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range expenses {
		expenses[i] = r.withCategories(expenses[i])
	}
	return expenses, nil
}

func (r *ExpenseRepository) SelectByID(ctx context.Context, id uuid.UUID) (domain.Expense, error) {
	expense, err := r.Repository.SelectByID(ctx, id)
	if err != nil {
		return expense, err
	}
	return r.withCategories(expense), nil
}

func (r *ExpenseRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var n int64
	for _, item := range r.store.Items() {
		for _, id := range item.Object.(domain.Expense).CategoryIDs {
			if id == categoryID {
				n++
				break
			}
		}
	}
	return n, nil
}

func (r *ExpenseRepository) withCategories(expense domain.Expense) domain.Expense {
	categories := r.categories.selectMany(expense.CategoryIDs)
	ids := make([]uuid.UUID, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	expense.CategoryIDs = ids
	expense.Categories = categories
	return expense
}
