package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/totegamma/agenda/internal/domain"
)

func NewExpenseUsecase(
	repo Repository[domain.Expense],
	categories CategoryRepository,
	validator *Validator,
	publisher ChangePublisher,
) *CrudUsecase[domain.Expense] {
	return NewCrudUsecase[domain.Expense](
		"expense", repo, validator, publisher,
		WithPrepare(resolveCategories(categories)),
		WithRules(positiveAmount, knownPaymentMethod),
	)
}

// resolveCategories loads the categories referenced by CategoryIDs in one
// bulk lookup and reports every id that does not exist.
func resolveCategories(categories CategoryRepository) Prepare[domain.Expense] {
	return func(ctx context.Context, expense domain.Expense) (domain.Expense, []string) {
		ids := uniqueIDs(expense.CategoryIDs)
		expense.CategoryIDs = ids
		expense.Categories = nil
		if len(ids) == 0 {
			return expense, nil
		}

		found, err := categories.SelectMany(ctx, ids)
		if err != nil {
			return expense, []string{"failed to select categories"}
		}

		byID := make(map[uuid.UUID]domain.Category, len(found))
		for _, c := range found {
			byID[c.ID] = c
		}

		var messages []string
		resolved := make([]domain.Category, 0, len(ids))
		for _, id := range ids {
			c, ok := byID[id]
			if !ok {
				messages = append(messages, fmt.Sprintf("category not found: %s", id))
				continue
			}
			resolved = append(resolved, c)
		}
		expense.Categories = resolved

		return expense, messages
	}
}

func positiveAmount(_ context.Context, expense domain.Expense) []string {
	if !expense.Amount.IsPositive() {
		return []string{"amount must be greater than zero"}
	}
	return nil
}

func knownPaymentMethod(_ context.Context, expense domain.Expense) []string {
	if !expense.PaymentMethod.Valid() {
		return []string{fmt.Sprintf("paymentMethod must be one of %s, %s, %s",
			domain.PaymentMethodCash, domain.PaymentMethodDebit, domain.PaymentMethodCredit)}
	}
	return nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
