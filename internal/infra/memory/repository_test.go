package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totegamma/agenda/internal/domain"
)

func TestRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository[domain.Contact]("contact")

	c := domain.NewContact("Alice", "alice@example.com", "(11) 98888-7777", "", "")
	require.NoError(t, repo.Insert(ctx, c))
	assert.ErrorIs(t, repo.Insert(ctx, c), domain.ErrDuplicate)

	got, err := repo.SelectByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, got)

	c.Name = "Alice Cooper"
	require.NoError(t, repo.Update(ctx, c))
	got, _ = repo.SelectByID(ctx, c.ID)
	assert.Equal(t, "Alice Cooper", got.Name)

	require.NoError(t, repo.Delete(ctx, c))
	_, err = repo.SelectByID(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, c), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, c), domain.ErrNotFound)
}

func TestRepositorySelectAllSorted(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository[domain.Category]("category")

	for _, title := range []string{"a", "b", "c", "d"} {
		require.NoError(t, repo.Insert(ctx, domain.NewCategory(title)))
	}

	all, err := repo.SelectAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID.String(), all[i].ID.String())
	}
}

func TestCategorySelectMany(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository()

	food := domain.NewCategory("Food")
	travel := domain.NewCategory("Travel")
	require.NoError(t, repo.Insert(ctx, food))
	require.NoError(t, repo.Insert(ctx, travel))

	got, err := repo.SelectMany(ctx, []uuid.UUID{travel.ID, uuid.New(), food.ID})
	require.NoError(t, err)
	assert.Equal(t, []domain.Category{travel, food}, got)
}

func TestExpenseRepositoryFollowsCategories(t *testing.T) {
	ctx := context.Background()
	categories := NewCategoryRepository()
	repo := NewExpenseRepository(categories)

	food := domain.NewCategory("Food")
	travel := domain.NewCategory("Travel")
	require.NoError(t, categories.Insert(ctx, food))
	require.NoError(t, categories.Insert(ctx, travel))

	lunch := domain.NewExpense("Lunch", decimal.RequireFromString("25.90"), time.Now(), domain.PaymentMethodDebit,
		[]uuid.UUID{food.ID})
	lunch.Categories = []domain.Category{food}
	trip := domain.NewExpense("Train", decimal.RequireFromString("80"), time.Now(), domain.PaymentMethodCredit,
		[]uuid.UUID{food.ID, travel.ID})
	require.NoError(t, repo.Insert(ctx, lunch))
	require.NoError(t, repo.Insert(ctx, trip))

	n, err := repo.CountByCategory(ctx, food.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	n, err = repo.CountByCategory(ctx, uuid.New())
	require.NoError(t, err)
	assert.Zero(t, n)

	food.Title = "Meals"
	require.NoError(t, categories.Update(ctx, food))

	got, err := repo.SelectByID(ctx, lunch.ID)
	require.NoError(t, err)
	require.Len(t, got.Categories, 1)
	assert.Equal(t, "Meals", got.Categories[0].Title)

	all, err := repo.SelectAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, e := range all {
		assert.Equal(t, "Meals", e.Categories[0].Title)
	}
}
