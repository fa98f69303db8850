package domain

// Category groups expenses.
type Category struct {
	EntityBase
	Title string `json:"title" validate:"required,max=100"`
}

func NewCategory(title string) Category {
	return Category{
		EntityBase: newEntityBase(),
		Title:      title,
	}
}
