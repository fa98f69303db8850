package rest

import (
	"github.com/google/uuid"

	"github.com/totegamma/agenda/internal/domain"
)

type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Role    string `json:"role"`
}

type ContactListItem struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Phone   string    `json:"phone"`
	Company string    `json:"company"`
}

type ContactDetail struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Phone   string    `json:"phone"`
	Company string    `json:"company"`
	Role    string    `json:"role"`
}

type ContactMapper struct{}

func (ContactMapper) NewEntity(f ContactForm) domain.Contact {
	return domain.NewContact(f.Name, f.Email, f.Phone, f.Company, f.Role)
}

func (ContactMapper) Merge(f ContactForm, c domain.Contact) domain.Contact {
	c.Name = f.Name
	c.Email = f.Email
	c.Phone = f.Phone
	c.Company = f.Company
	c.Role = f.Role
	return c
}

func (ContactMapper) ToForm(c domain.Contact) ContactForm {
	return ContactForm{
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Company: c.Company,
		Role:    c.Role,
	}
}

func (ContactMapper) ToList(c domain.Contact) ContactListItem {
	return ContactListItem{
		ID:      c.ID,
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Company: c.Company,
	}
}

func (ContactMapper) ToDetail(c domain.Contact) ContactDetail {
	return ContactDetail{
		ID:      c.ID,
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Company: c.Company,
		Role:    c.Role,
	}
}
