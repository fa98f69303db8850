package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/totegamma/agenda/internal/domain"
	"github.com/totegamma/agenda/internal/infra/database/models"
)

type CategoryRepository struct {
	*crudRepository[domain.Category, models.Category]
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{
		crudRepository: &crudRepository[domain.Category, models.Category]{
			db:       db,
			resource: "category",
			toModel:  categoryToModel,
			toDomain: categoryToDomain,
		},
	}
}

// SelectMany returns the categories that exist among ids, in ids order.
func (r *CategoryRepository) SelectMany(ctx context.Context, ids []uuid.UUID) ([]domain.Category, error) {
	if len(ids) == 0 {
		return []domain.Category{}, nil
	}

	var rows []models.Category
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "select categories")
	}

	byID := make(map[uuid.UUID]models.Category, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	out := make([]domain.Category, 0, len(rows))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			out = append(out, categoryToDomain(row))
		}
	}
	return out, nil
}

func categoryToModel(c domain.Category) models.Category {
	return models.Category{
		ID:    c.ID,
		Title: c.Title,
	}
}

func categoryToDomain(m models.Category) domain.Category {
	return domain.Category{
		EntityBase: domain.EntityBase{ID: m.ID},
		Title:      m.Title,
	}
}
