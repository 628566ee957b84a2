package handler

import (
	"bufio"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/boardflow/backend/domain"
	"github.com/boardflow/backend/internal/bus"
	"github.com/boardflow/backend/internal/services"
	"github.com/boardflow/backend/pkg/httpcontext"
)

// StreamHandler holds push connections open and forwards every event
// published on the requested channel as a server-sent event. A client
// subscribes to exactly one channel per connection; anything missed
// while disconnected is gone and must be recovered via the board
// snapshot endpoint.
type StreamHandler struct {
	baseHandler
	bus               *bus.Bus
	presence          *services.Presence
	keepaliveInterval time.Duration
	bufferSize        int
}

func NewStreamHandler(
	eventBus *bus.Bus,
	presence *services.Presence,
	keepaliveInterval time.Duration,
	bufferSize int,
	adapter *httpcontext.Adapter,
	logger *zap.Logger,
) *StreamHandler {
	if keepaliveInterval <= 0 {
		keepaliveInterval = 20 * time.Second
	}
	if bufferSize <= 0 {
		bufferSize = 256
	}
	return &StreamHandler{
		baseHandler:       newBaseHandler(adapter, logger),
		bus:               eventBus,
		presence:          presence,
		keepaliveInterval: keepaliveInterval,
		bufferSize:        bufferSize,
	}
}

// @Summary Event stream
// @Tags stream
// @Router /stream [get]
func (h *StreamHandler) Subscribe(ctx *fasthttp.RequestCtx) {
	channel := string(ctx.QueryArgs().Peek("channel"))
	if channel == "" {
		h.respondInvalid(ctx, "channel is required")
		return
	}
	viewer := string(ctx.QueryArgs().Peek("viewer"))

	// Presence only applies to board channels; a task-detail viewer is
	// already counted through its board connection.
	boardID := ""
	if viewer != "" && !strings.HasPrefix(channel, "task:") {
		boardID = channel
	}

	events := make(chan domain.Event, h.bufferSize)
	unsubscribe := h.bus.Subscribe(channel, func(event domain.Event) {
		select {
		case events <- event:
		default:
			h.logger.Warn("dropping event for slow stream consumer",
				zap.String("channel", channel),
				zap.String("type", string(event.Type)))
		}
	})

	ctx.Response.Header.SetContentType("text/event-stream")
	ctx.Response.Header.Set("Cache-Control", "no-cache")
	ctx.Response.Header.Set("Connection", "keep-alive")
	ctx.Response.Header.Set("X-Accel-Buffering", "no")

	logger := h.logger
	presence := h.presence
	interval := h.keepaliveInterval

	ctx.Response.SetBodyStreamWriter(func(w *bufio.Writer) {
		defer unsubscribe()

		streamCtx := context.Background()
		if boardID != "" {
			presence.Join(streamCtx, boardID, viewer)
			defer presence.Leave(streamCtx, boardID, viewer)
		}

		// Confirms the subscription before any event arrives.
		if _, err := w.WriteString(": connected\n\n"); err != nil {
			return
		}
		if err := w.Flush(); err != nil {
			return
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case event := <-events:
				if err := writeEvent(w, event); err != nil {
					logger.Debug("stream client disconnected",
						zap.String("channel", channel), zap.Error(err))
					return
				}
			case <-ticker.C:
				if _, err := w.WriteString(": keepalive\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
				if boardID != "" {
					presence.Join(streamCtx, boardID, viewer)
				}
			}
		}
	})
}

func writeEvent(w *bufio.Writer, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := w.WriteString("event: " + string(event.Type) + "\n"); err != nil {
		return err
	}
	if _, err := w.WriteString("data: "); err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return err
	}
	if _, err := w.WriteString("\n\n"); err != nil {
		return err
	}
	return w.Flush()
}
