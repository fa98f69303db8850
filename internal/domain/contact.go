package domain

// Contact is an address book entry.
type Contact struct {
	EntityBase
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,phone"`
	Company string `json:"company" validate:"max=100"`
	Role    string `json:"role" validate:"max=100"`
}

func NewContact(name, email, phone, company, role string) Contact {
	return Contact{
		EntityBase: newEntityBase(),
		Name:       name,
		Email:      email,
		Phone:      phone,
		Company:    company,
		Role:       role,
	}
}
