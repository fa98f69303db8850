package rest

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/totegamma/agenda/internal/domain"
	"github.com/totegamma/agenda/internal/present/rest/presenter"
	"github.com/totegamma/agenda/internal/usecase"
)

// Mapper projects an entity to and from its request/response shapes.
// Mapping never fails; bad input is rejected by the service afterwards.
type Mapper[E domain.Entity, F, L, D any] interface {
	// NewEntity builds a new entity, with a fresh identity, from a form.
	NewEntity(form F) E
	// Merge overwrites the entity fields carried by the form, keeping its identity.
	Merge(form F, entity E) E
	ToForm(entity E) F
	ToList(entity E) L
	ToDetail(entity E) D
}

// CrudHandler exposes list/get/detail/create/update/delete for one entity type.
// Lookup failures answer 404; rejected mutations answer 400.
type CrudHandler[E domain.Entity, F, L, D any] struct {
	resource string
	service  usecase.Service[E]
	mapper   Mapper[E, F, L, D]
}

func NewCrudHandler[E domain.Entity, F, L, D any](
	resource string,
	service usecase.Service[E],
	mapper Mapper[E, F, L, D],
) *CrudHandler[E, F, L, D] {
	return &CrudHandler[E, F, L, D]{
		resource: resource,
		service:  service,
		mapper:   mapper,
	}
}

func (h *CrudHandler[E, F, L, D]) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListAll)
	g.GET("/:id", h.GetByID)
	g.GET("/full/:id", h.GetDetailByID)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *CrudHandler[E, F, L, D]) ListAll(c echo.Context) error {
	ctx := c.Request().Context()
	h.log(c, fmt.Sprintf("selecting all %ss", h.resource))

	result := h.service.SelectAll(ctx)
	if result.IsFailed() {
		return presenter.InternalError(c, result.Errors())
	}

	entities := result.Value()
	items := make([]L, 0, len(entities))
	for _, e := range entities {
		items = append(items, h.mapper.ToList(e))
	}

	return presenter.List(c, items, len(items))
}

func (h *CrudHandler[E, F, L, D]) GetByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, err.Error())
	}
	h.log(c, fmt.Sprintf("selecting %s", h.resource), slog.String("id", id.String()))

	result := h.service.SelectByID(c.Request().Context(), id)
	if result.IsFailed() {
		return presenter.NotFound(c, result.Errors())
	}

	return presenter.OK(c, h.mapper.ToForm(result.Value()))
}

func (h *CrudHandler[E, F, L, D]) GetDetailByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, err.Error())
	}
	h.log(c, fmt.Sprintf("selecting full %s", h.resource), slog.String("id", id.String()))

	result := h.service.SelectByID(c.Request().Context(), id)
	if result.IsFailed() {
		return presenter.NotFound(c, result.Errors())
	}

	return presenter.OK(c, h.mapper.ToDetail(result.Value()))
}

func (h *CrudHandler[E, F, L, D]) Create(c echo.Context) error {
	h.log(c, fmt.Sprintf("inserting %s", h.resource))

	var form F
	if err := bindBody(c, &form); err != nil {
		return presenter.BadRequestMessage(c, bindMessage(err))
	}

	entity := h.mapper.NewEntity(form)
	result := h.service.Insert(c.Request().Context(), entity)
	if result.IsFailed() {
		return presenter.BadRequest(c, result.Errors())
	}

	location := strings.TrimSuffix(c.Request().URL.Path, "/") + "/" + entity.GetID().String()
	return presenter.Created(c, location, form)
}

// Update overlays the request body on the current form of the entity, so
// fields missing from the body keep their stored values. The lookup and the
// write are two separate service calls.
func (h *CrudHandler[E, F, L, D]) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, err.Error())
	}
	h.log(c, fmt.Sprintf("updating %s", h.resource), slog.String("id", id.String()))

	ctx := c.Request().Context()
	found := h.service.SelectByID(ctx, id)
	if found.IsFailed() {
		return presenter.NotFound(c, found.Errors())
	}

	var form F
	merged := h.mapper.ToForm(found.Value())
	if err := bindBody(c, &form, &merged); err != nil {
		return presenter.BadRequestMessage(c, bindMessage(err))
	}

	entity := h.mapper.Merge(merged, found.Value())
	return h.processResult(c, h.service.Update(ctx, entity), &form)
}

func (h *CrudHandler[E, F, L, D]) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, err.Error())
	}
	h.log(c, fmt.Sprintf("deleting %s", h.resource), slog.String("id", id.String()))

	ctx := c.Request().Context()
	found := h.service.SelectByID(ctx, id)
	if found.IsFailed() {
		return presenter.NotFound(c, found.Errors())
	}

	return h.processResult(c, h.service.Delete(ctx, found.Value()), nil)
}

// processResult answers a mutation: rejected results are bad requests, and
// successful ones echo the caller's form when there is one.
func (h *CrudHandler[E, F, L, D]) processResult(c echo.Context, result domain.Result[E], form *F) error {
	if result.IsFailed() {
		return presenter.BadRequest(c, result.Errors())
	}
	if form == nil {
		return presenter.OK(c, nil)
	}
	return presenter.OK(c, *form)
}

func (h *CrudHandler[E, F, L, D]) log(c echo.Context, msg string, attrs ...any) {
	attrs = append(attrs, slog.String("resource", h.resource), slog.String("module", "rest"))
	slog.InfoContext(c.Request().Context(), msg, attrs...)
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id: %q", c.Param("id"))
	}
	return id, nil
}

// bindBody decodes the request body into every destination in turn.
func bindBody(c echo.Context, dst ...any) error {
	req := c.Request()
	if req.Body == nil {
		return nil
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return err
	}
	req.Body.Close()

	binder := &echo.DefaultBinder{}
	for _, d := range dst {
		req.Body = io.NopCloser(bytes.NewReader(body))
		if err := binder.BindBody(c, d); err != nil {
			return err
		}
	}
	return nil
}

func bindMessage(err error) string {
	if he, ok := err.(*echo.HTTPError); ok {
		return fmt.Sprint(he.Message)
	}
	return err.Error()
}
