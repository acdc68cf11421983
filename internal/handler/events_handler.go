package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"juegos/backend/internal/hub"
)

const eventBuffer = 16

// EventsHandler streams hub events to clients as server-sent events.
type EventsHandler struct {
	hub *hub.Hub
}

func NewEventsHandler(h *hub.Hub) *EventsHandler {
	return &EventsHandler{hub: h}
}

// StreamGameEvents godoc
// @Summary      Stream game changes
// @Description  Server-sent events, one "game" event per create, update or delete.
// @Tags         games
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200
// @Router       /events/games [get]
func (h *EventsHandler) StreamGameEvents(c *gin.Context) {
	client := h.hub.Subscribe(eventBuffer)
	defer h.hub.Unsubscribe(client)

	// The server write timeout would otherwise cut long-lived streams.
	_ = http.NewResponseController(c.Writer).SetWriteDeadline(time.Time{})

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("game", string(msg))
			return true
		case <-ctx.Done():
			return false
		}
	})
}
