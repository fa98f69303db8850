package service

import (
	"context"
	"log/slog"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/totegamma/agenda/internal/domain"
)

// ChangeChannel is the redis channel carrying domain.ChangeEvent payloads.
const ChangeChannel = "agenda:changes"

type SignalService struct {
	rdb *redis.Client
}

func NewSignalService(redisClient *redis.Client) *SignalService {
	return &SignalService{
		rdb: redisClient,
	}
}

func (s *SignalService) Publish(ctx context.Context, event domain.ChangeEvent) error {

	jsonstr, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = s.rdb.Publish(ctx, ChangeChannel, jsonstr).Err()
	if err != nil {
		return err
	}

	return nil
}

// Subscribe forwards change events to output until ctx is done. Events for
// entities not listed in filter are dropped; an empty filter passes everything.
func (s *SignalService) Subscribe(ctx context.Context, filter []string, output chan<- domain.ChangeEvent) error {
	pubsub := s.rdb.Subscribe(ctx, ChangeChannel)
	defer pubsub.Close()

	// wait for the subscription to be confirmed before reporting readiness
	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}

	allowed := make(map[string]bool, len(filter))
	for _, f := range filter {
		allowed[f] = true
	}

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var event domain.ChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				slog.WarnContext(
					ctx, "dropping malformed change event",
					slog.String("error", err.Error()),
					slog.String("module", "signal"),
				)
				continue
			}

			if len(allowed) > 0 && !allowed[event.Entity] {
				continue
			}

			select {
			case output <- event:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
