package rest

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totegamma/agenda/internal/domain"
)

type fakeSubscriber struct {
	filters chan []string
	events  chan domain.ChangeEvent
}

func (f *fakeSubscriber) Subscribe(ctx context.Context, filter []string, output chan<- domain.ChangeEvent) error {
	f.filters <- filter
	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-f.events:
			output <- event
		}
	}
}

func TestRealtimeStream(t *testing.T) {
	sub := &fakeSubscriber{
		filters: make(chan []string, 1),
		events:  make(chan domain.ChangeEvent),
	}

	e := NewEcho(ServerOptions{})
	newTestHandler(sub).RegisterRoutes(e)

	server := httptest.NewServer(e)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/events?entities=contact,%20expense,"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()

	select {
	case filter := <-sub.filters:
		assert.Equal(t, []string{"contact", "expense"}, filter)
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber was not started")
	}

	sent := domain.ChangeEvent{
		Entity: "contact",
		Action: domain.ChangeCreated,
		ID:     uuid.New(),
		At:     time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC),
	}
	sub.events <- sent

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	var received domain.ChangeEvent
	require.NoError(t, ws.ReadJSON(&received))
	assert.Equal(t, sent.Entity, received.Entity)
	assert.Equal(t, sent.Action, received.Action)
	assert.Equal(t, sent.ID, received.ID)
	assert.True(t, sent.At.Equal(received.At))
}

func TestRealtimeDisabledWithoutSubscriber(t *testing.T) {
	e := newTestServer(t)

	res, env := do(t, e, "GET", "/api/events", nil)
	assert.Equal(t, 404, res.Code)
	assert.False(t, env.Success)
}
