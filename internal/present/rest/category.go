package rest

import (
	"github.com/google/uuid"

	"github.com/totegamma/agenda/internal/domain"
)

type CategoryForm struct {
	Title string `json:"title"`
}

type CategoryListItem struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type CategoryDetail struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type CategoryMapper struct{}

func (CategoryMapper) NewEntity(f CategoryForm) domain.Category {
	return domain.NewCategory(f.Title)
}

func (CategoryMapper) Merge(f CategoryForm, c domain.Category) domain.Category {
	c.Title = f.Title
	return c
}

func (CategoryMapper) ToForm(c domain.Category) CategoryForm {
	return CategoryForm{Title: c.Title}
}

func (CategoryMapper) ToList(c domain.Category) CategoryListItem {
	return CategoryListItem{ID: c.ID, Title: c.Title}
}

func (CategoryMapper) ToDetail(c domain.Category) CategoryDetail {
	return CategoryDetail{ID: c.ID, Title: c.Title}
}
