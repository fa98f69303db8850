package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/totegamma/agenda/internal/domain"
)

var tracer = otel.Tracer("usecase")

// Rule checks a business constraint and returns the violated messages.
type Rule[E domain.Entity] func(ctx context.Context, entity E) []string

// Prepare enriches an entity before it is validated and written.
type Prepare[E domain.Entity] func(ctx context.Context, entity E) (E, []string)

type Option[E domain.Entity] func(*CrudUsecase[E])

func WithRules[E domain.Entity](rules ...Rule[E]) Option[E] {
	return func(u *CrudUsecase[E]) {
		u.rules = append(u.rules, rules...)
	}
}

// WithDeleteRules adds checks that must pass before an entity is deleted.
func WithDeleteRules[E domain.Entity](rules ...Rule[E]) Option[E] {
	return func(u *CrudUsecase[E]) {
		u.deleteRules = append(u.deleteRules, rules...)
	}
}

func WithPrepare[E domain.Entity](prepare Prepare[E]) Option[E] {
	return func(u *CrudUsecase[E]) {
		u.prepare = prepare
	}
}

// CrudUsecase implements Service on top of a Repository: it validates
// writes, persists them and publishes a change event on success.
type CrudUsecase[E domain.Entity] struct {
	resource  string
	repo      Repository[E]
	validator *Validator
	publisher ChangePublisher
	rules     []Rule[E]
	prepare   Prepare[E]

	deleteRules []Rule[E]
}

func NewCrudUsecase[E domain.Entity](
	resource string,
	repo Repository[E],
	validator *Validator,
	publisher ChangePublisher,
	opts ...Option[E],
) *CrudUsecase[E] {
	u := &CrudUsecase[E]{
		resource:  resource,
		repo:      repo,
		validator: validator,
		publisher: publisher,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *CrudUsecase[E]) Resource() string {
	return u.resource
}

func (u *CrudUsecase[E]) SelectAll(ctx context.Context) domain.Result[[]E] {
	ctx, span := u.start(ctx, "SelectAll")
	defer span.End()

	items, err := u.repo.SelectAll(ctx)
	if err != nil {
		u.fault(ctx, span, "select all", err)
		return domain.Fail[[]E](fmt.Sprintf("failed to select %ss", u.resource))
	}
	if items == nil {
		items = []E{}
	}
	return domain.Ok(items)
}

func (u *CrudUsecase[E]) SelectByID(ctx context.Context, id uuid.UUID) domain.Result[E] {
	ctx, span := u.start(ctx, "SelectByID")
	defer span.End()
	span.SetAttributes(attribute.String("id", id.String()))

	entity, err := u.repo.SelectByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Fail[E](fmt.Sprintf("%s not found", u.resource))
		}
		u.fault(ctx, span, "select by id", err)
		return domain.Fail[E](fmt.Sprintf("failed to select %s", u.resource))
	}
	return domain.Ok(entity)
}

func (u *CrudUsecase[E]) Insert(ctx context.Context, entity E) domain.Result[E] {
	ctx, span := u.start(ctx, "Insert")
	defer span.End()

	entity, messages := u.check(ctx, entity)
	if len(messages) > 0 {
		return domain.Fail[E](messages...)
	}

	if err := u.repo.Insert(ctx, entity); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return domain.Fail[E](fmt.Sprintf("%s already exists", u.resource))
		}
		u.fault(ctx, span, "insert", err)
		return domain.Fail[E](fmt.Sprintf("failed to insert %s", u.resource))
	}

	u.publish(ctx, domain.ChangeCreated, entity.GetID())
	return domain.Ok(entity)
}

func (u *CrudUsecase[E]) Update(ctx context.Context, entity E) domain.Result[E] {
	ctx, span := u.start(ctx, "Update")
	defer span.End()
	span.SetAttributes(attribute.String("id", entity.GetID().String()))

	entity, messages := u.check(ctx, entity)
	if len(messages) > 0 {
		return domain.Fail[E](messages...)
	}

	if err := u.repo.Update(ctx, entity); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Fail[E](fmt.Sprintf("%s not found", u.resource))
		}
		u.fault(ctx, span, "update", err)
		return domain.Fail[E](fmt.Sprintf("failed to update %s", u.resource))
	}

	u.publish(ctx, domain.ChangeUpdated, entity.GetID())
	return domain.Ok(entity)
}

func (u *CrudUsecase[E]) Delete(ctx context.Context, entity E) domain.Result[E] {
	ctx, span := u.start(ctx, "Delete")
	defer span.End()
	span.SetAttributes(attribute.String("id", entity.GetID().String()))

	var messages []string
	for _, rule := range u.deleteRules {
		messages = append(messages, rule(ctx, entity)...)
	}
	if len(messages) > 0 {
		return domain.Fail[E](messages...)
	}

	if err := u.repo.Delete(ctx, entity); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Fail[E](fmt.Sprintf("%s not found", u.resource))
		}
		u.fault(ctx, span, "delete", err)
		return domain.Fail[E](fmt.Sprintf("failed to delete %s", u.resource))
	}

	u.publish(ctx, domain.ChangeDeleted, entity.GetID())
	return domain.Ok(entity)
}

// check collects every violated rule instead of stopping at the first one.
func (u *CrudUsecase[E]) check(ctx context.Context, entity E) (E, []string) {
	var messages []string

	if u.prepare != nil {
		var prepared []string
		entity, prepared = u.prepare(ctx, entity)
		messages = append(messages, prepared...)
	}

	if u.validator != nil {
		messages = append(messages, u.validator.Messages(entity)...)
	}

	for _, rule := range u.rules {
		messages = append(messages, rule(ctx, entity)...)
	}

	return entity, messages
}

func (u *CrudUsecase[E]) publish(ctx context.Context, action domain.ChangeAction, id uuid.UUID) {
	if u.publisher == nil {
		return
	}

	event := domain.ChangeEvent{
		Entity: u.resource,
		Action: action,
		ID:     id,
		At:     time.Now().UTC(),
	}

	if err := u.publisher.Publish(ctx, event); err != nil {
		slog.WarnContext(
			ctx, "failed to publish change event",
			slog.String("resource", u.resource),
			slog.String("action", string(action)),
			slog.String("error", err.Error()),
			slog.String("module", "usecase"),
		)
	}
}

func (u *CrudUsecase[E]) fault(ctx context.Context, span trace.Span, op string, err error) {
	span.RecordError(errors.Wrapf(err, "%s %s failed", op, u.resource))
	slog.ErrorContext(
		ctx, fmt.Sprintf("%s %s failed", op, u.resource),
		slog.String("error", err.Error()),
		slog.String("module", "usecase"),
	)
}

func (u *CrudUsecase[E]) start(ctx context.Context, op string) (context.Context, trace.Span) {
	name := u.resource
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return tracer.Start(ctx, name+".Usecase."+op)
}
