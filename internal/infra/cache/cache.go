// Package cache puts memcache in front of a repository for lookups by id.
package cache

import (
	"context"
	"log/slog"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/totegamma/agenda/internal/domain"
	"github.com/totegamma/agenda/internal/usecase"
)

// Client is the subset of *memcache.Client used here.
type Client interface {
	Get(key string) (*memcache.Item, error)
	Set(item *memcache.Item) error
	Delete(key string) error
}

const defaultTTL = 300 // seconds

// Repository serves SelectByID from memcache when possible and drops the
// cached copy on every write. Cache faults only cost a round trip to the
// underlying repository.
type Repository[E domain.Entity] struct {
	usecase.Repository[E]
	client   Client
	resource string
	ttl      int32
}

func NewRepository[E domain.Entity](inner usecase.Repository[E], client Client, resource string) *Repository[E] {
	return &Repository[E]{
		Repository: inner,
		client:     client,
		resource:   resource,
		ttl:        defaultTTL,
	}
}

func (r *Repository[E]) key(id uuid.UUID) string {
	return "agenda:" + r.resource + ":" + id.String()
}

func (r *Repository[E]) SelectByID(ctx context.Context, id uuid.UUID) (E, error) {
	key := r.key(id)

	item, err := r.client.Get(key)
	if err == nil {
		var entity E
		if err := json.Unmarshal(item.Value, &entity); err == nil {
			return entity, nil
		}
		r.warn(ctx, "decode", err)
	} else if !errors.Is(err, memcache.ErrCacheMiss) {
		r.warn(ctx, "get", err)
	}

	entity, err := r.Repository.SelectByID(ctx, id)
	if err != nil {
		return entity, err
	}

	payload, err := json.Marshal(entity)
	if err != nil {
		r.warn(ctx, "encode", err)
		return entity, nil
	}
	if err := r.client.Set(&memcache.Item{Key: key, Value: payload, Expiration: r.ttl}); err != nil {
		r.warn(ctx, "set", err)
	}
	return entity, nil
}

func (r *Repository[E]) Update(ctx context.Context, entity E) error {
	err := r.Repository.Update(ctx, entity)
	r.invalidate(ctx, entity.GetID())
	return err
}

func (r *Repository[E]) Delete(ctx context.Context, entity E) error {
	err := r.Repository.Delete(ctx, entity)
	r.invalidate(ctx, entity.GetID())
	return err
}

func (r *Repository[E]) invalidate(ctx context.Context, id uuid.UUID) {
	err := r.client.Delete(r.key(id))
	if err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		r.warn(ctx, "delete", err)
	}
}

func (r *Repository[E]) warn(ctx context.Context, op string, err error) {
	slog.WarnContext(
		ctx, "memcache "+op+" failed",
		slog.String("resource", r.resource),
		slog.String("error", err.Error()),
		slog.String("module", "cache"),
	)
}

// CategoryRepository keeps the bulk lookup of the wrapped repository.
type CategoryRepository struct {
	*Repository[domain.Category]
	inner usecase.CategoryRepository
}

func NewCategoryRepository(inner usecase.CategoryRepository, client Client) *CategoryRepository {
	return &CategoryRepository{
		Repository: NewRepository[domain.Category](inner, client, "category"),
		inner:      inner,
	}
}

func (r *CategoryRepository) SelectMany(ctx context.Context, ids []uuid.UUID) ([]domain.Category, error) {
	return r.inner.SelectMany(ctx, ids)
}
