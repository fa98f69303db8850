package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/totegamma/agenda/internal/domain"
)

// crudRepository maps one domain entity onto one gorm model.
type crudRepository[E domain.Entity, M any] struct {
	db       *gorm.DB
	resource string
	toModel  func(E) M
	toDomain func(M) E
	preload  []string
}

func (r *crudRepository[E, M]) query(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	for _, p := range r.preload {
		q = q.Preload(p)
	}
	return q
}

func (r *crudRepository[E, M]) Insert(ctx context.Context, entity E) error {
	model := r.toModel(entity)
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&model).Error
	return r.insertError(entity, err)
}

func (r *crudRepository[E, M]) insertError(entity E, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.DuplicateError{Entity: r.resource, ID: entity.GetID()}
	default:
		return errors.Wrapf(err, "insert %s", r.resource)
	}
}

// Update overwrites every column but the creation date. It never inserts.
func (r *crudRepository[E, M]) Update(ctx context.Context, entity E) error {
	return r.update(r.db.WithContext(ctx), entity)
}

func (r *crudRepository[E, M]) update(tx *gorm.DB, entity E) error {
	model := r.toModel(entity)
	res := tx.Model(&model).Select("*").Omit(clause.Associations, "CDate").Updates(&model)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "update %s", r.resource)
	}
	if res.RowsAffected == 0 {
		return domain.NotFoundError{Entity: r.resource, ID: entity.GetID()}
	}
	return nil
}

func (r *crudRepository[E, M]) Delete(ctx context.Context, entity E) error {
	model := r.toModel(entity)
	res := r.db.WithContext(ctx).Delete(&model)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "delete %s", r.resource)
	}
	if res.RowsAffected == 0 {
		return domain.NotFoundError{Entity: r.resource, ID: entity.GetID()}
	}
	return nil
}

func (r *crudRepository[E, M]) SelectAll(ctx context.Context) ([]E, error) {
	var models []M
	if err := r.query(ctx).Order("c_date, id").Find(&models).Error; err != nil {
		return nil, errors.Wrapf(err, "select %ss", r.resource)
	}

	out := make([]E, 0, len(models))
	for _, m := range models {
		out = append(out, r.toDomain(m))
	}
	return out, nil
}

func (r *crudRepository[E, M]) SelectByID(ctx context.Context, id uuid.UUID) (E, error) {
	var model M
	err := r.query(ctx).Where("id = ?", id).Take(&model).Error
	if err != nil {
		var zero E
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, domain.NotFoundError{Entity: r.resource, ID: id}
		}
		return zero, errors.Wrapf(err, "select %s", r.resource)
	}
	return r.toDomain(model), nil
}
