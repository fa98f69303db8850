package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/totegamma/agenda/internal/domain"
)

func NewCategoryUsecase(
	repo CategoryRepository,
	usage CategoryUsage,
	validator *Validator,
	publisher ChangePublisher,
) *CrudUsecase[domain.Category] {
	return NewCrudUsecase[domain.Category](
		"category", repo, validator, publisher,
		WithRules(uniqueCategoryTitle(repo)),
		WithDeleteRules(categoryNotInUse(usage)),
	)
}

// categoryNotInUse keeps a category alive while expenses still link to it,
// so both storage modes agree on what a delete leaves behind.
func categoryNotInUse(usage CategoryUsage) Rule[domain.Category] {
	return func(ctx context.Context, category domain.Category) []string {
		n, err := usage.CountByCategory(ctx, category.ID)
		if err != nil {
			slog.ErrorContext(
				ctx, "failed to count category usage",
				slog.String("error", err.Error()),
				slog.String("module", "usecase"),
			)
			return []string{"failed to check category usage"}
		}
		if n > 0 {
			return []string{fmt.Sprintf("category is used by %d expense(s)", n)}
		}
		return nil
	}
}

// uniqueCategoryTitle rejects a title already used by another category, ignoring case.
func uniqueCategoryTitle(repo CategoryRepository) Rule[domain.Category] {
	return func(ctx context.Context, category domain.Category) []string {
		title := strings.TrimSpace(category.Title)
		if title == "" {
			return nil
		}

		existing, err := repo.SelectAll(ctx)
		if err != nil {
			return []string{"failed to check category title"}
		}

		for _, other := range existing {
			if other.ID == category.ID {
				continue
			}
			if strings.EqualFold(strings.TrimSpace(other.Title), title) {
				return []string{"category title already in use"}
			}
		}
		return nil
	}
}
