package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totegamma/agenda/internal/domain"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestPublishWithoutSubscribers(t *testing.T) {
	s := NewSignalService(setupTestRedis(t))

	err := s.Publish(context.Background(), domain.ChangeEvent{
		Entity: "contact",
		Action: domain.ChangeCreated,
		ID:     uuid.New(),
		At:     time.Now().UTC(),
	})
	assert.NoError(t, err)
}

func TestSubscribeFiltersByEntity(t *testing.T) {
	client := setupTestRedis(t)
	s := NewSignalService(client)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	output := make(chan domain.ChangeEvent, 4)
	done := make(chan error, 1)
	go func() {
		done <- s.Subscribe(ctx, []string{"expense"}, output)
	}()

	// wait until the subscriber is registered
	require.Eventually(t, func() bool {
		n, err := client.PubSubNumSub(ctx, ChangeChannel).Result()
		return err == nil && n[ChangeChannel] == 1
	}, 2*time.Second, 10*time.Millisecond)

	contactID, expenseID := uuid.New(), uuid.New()
	require.NoError(t, s.Publish(ctx, domain.ChangeEvent{Entity: "contact", Action: domain.ChangeCreated, ID: contactID}))
	require.NoError(t, s.Publish(ctx, domain.ChangeEvent{Entity: "expense", Action: domain.ChangeDeleted, ID: expenseID}))

	select {
	case event := <-output:
		assert.Equal(t, "expense", event.Entity)
		assert.Equal(t, domain.ChangeDeleted, event.Action)
		assert.Equal(t, expenseID, event.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("expected an expense event")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber did not stop")
	}
	assert.Empty(t, output)
}
