package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/totegamma/agenda/internal/domain"
)

// ChangeSubscriber streams persisted changes, optionally filtered by entity name.
type ChangeSubscriber interface {
	Subscribe(ctx context.Context, filter []string, output chan<- domain.ChangeEvent) error
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type RealtimeHandler struct {
	subscriber ChangeSubscriber
}

func NewRealtimeHandler(subscriber ChangeSubscriber) *RealtimeHandler {
	return &RealtimeHandler{subscriber: subscriber}
}

// Stream upgrades to a websocket and pushes change events until either side
// goes away. ?entities=contact,expense narrows the stream.
func (h *RealtimeHandler) Stream(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer ws.Close()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	var filter []string
	for _, f := range strings.Split(c.QueryParam("entities"), ",") {
		if f = strings.TrimSpace(f); f != "" {
			filter = append(filter, f)
		}
	}

	output := make(chan domain.ChangeEvent)

	go func() {
		defer cancel()
		if err := h.subscriber.Subscribe(ctx, filter, output); err != nil {
			slog.ErrorContext(
				ctx, "Subscription failed",
				slog.String("error", err.Error()),
				slog.String("module", "socket"),
			)
		}
	}()

	// the client only sends heartbeats; a read error means it is gone
	go func() {
		defer cancel()
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				wsErr, ok := err.(*websocket.CloseError)
				if !ok || !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
					slog.DebugContext(
						ctx, "WebSocket closed",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-output:
			if err := ws.WriteJSON(event); err != nil {
				slog.ErrorContext(
					ctx, "Error writing message",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				return nil
			}
		}
	}
}
