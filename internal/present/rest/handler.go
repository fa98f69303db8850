package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/totegamma/agenda/internal/domain"
	"github.com/totegamma/agenda/internal/present/rest/presenter"
	"github.com/totegamma/agenda/internal/usecase"
)

type Handler struct {
	contacts   *CrudHandler[domain.Contact, ContactForm, ContactListItem, ContactDetail]
	categories *CrudHandler[domain.Category, CategoryForm, CategoryListItem, CategoryDetail]
	expenses   *CrudHandler[domain.Expense, ExpenseForm, ExpenseListItem, ExpenseDetail]
	realtime   *RealtimeHandler
}

// NewHandler wires the CRUD endpoints. subscriber may be nil, in which case
// the realtime endpoint is not exposed.
func NewHandler(
	contacts usecase.Service[domain.Contact],
	categories usecase.Service[domain.Category],
	expenses usecase.Service[domain.Expense],
	subscriber ChangeSubscriber,
) *Handler {
	h := &Handler{
		contacts:   NewCrudHandler("contact", contacts, ContactMapper{}),
		categories: NewCrudHandler("category", categories, CategoryMapper{}),
		expenses:   NewCrudHandler("expense", expenses, ExpenseMapper{}),
	}
	if subscriber != nil {
		h.realtime = NewRealtimeHandler(subscriber)
	}
	return h
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.handleHealth)

	h.contacts.RegisterRoutes(e.Group("/api/contacts"))
	h.categories.RegisterRoutes(e.Group("/api/categories"))
	h.expenses.RegisterRoutes(e.Group("/api/expenses"))

	if h.realtime != nil {
		e.GET("/api/events", h.realtime.Stream)
	}
}

func (h *Handler) handleHealth(c echo.Context) error {
	return presenter.OK(c, echo.Map{"status": "ok"})
}
