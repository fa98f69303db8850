package repository

import (
	"gorm.io/gorm"

	"github.com/totegamma/agenda/internal/domain"
	"github.com/totegamma/agenda/internal/infra/database/models"
)

type ContactRepository struct {
	*crudRepository[domain.Contact, models.Contact]
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{
		crudRepository: &crudRepository[domain.Contact, models.Contact]{
			db:       db,
			resource: "contact",
			toModel:  contactToModel,
			toDomain: contactToDomain,
		},
	}
}

func contactToModel(c domain.Contact) models.Contact {
	return models.Contact{
		ID:      c.ID,
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Company: c.Company,
		Role:    c.Role,
	}
}

func contactToDomain(m models.Contact) domain.Contact {
	return domain.Contact{
		EntityBase: domain.EntityBase{ID: m.ID},
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
		Company:    m.Company,
		Role:       m.Role,
	}
}
