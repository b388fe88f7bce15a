package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"github.com/NachoSamo/SamoScore/internal/usecase"
)

const (
	streamWriteWait      = 10 * time.Second
	streamMaxMessageSize = 512
)

type streamFrame struct {
	Type  string   `json:"type"`
	Data  *feedDTO `json:"data,omitempty"`
	Error string   `json:"error,omitempty"`
}

// StreamMatches upgrades to a websocket and pushes the day's feed right away
// and then on every stream interval until the client goes away.
func (h *Handler) StreamMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StreamMatches")
	defer span.End()

	query := h.feedQuery(r)
	// Each push must complete; superseding only applies to one-shot requests.
	query.SupersedeKey = ""

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnContext(ctx, "websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go h.drainStream(ctx, conn, cancel)

	ticker := h.clock.NewTicker(h.streamInterval)
	defer ticker.Stop()

	for {
		if err := h.pushFeed(ctx, conn, query); err != nil {
			if !errors.Is(err, context.Canceled) && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.DebugContext(ctx, "stream write failed", "error", err)
			}
			return
		}

		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(streamWriteWait))
			return
		case <-ticker.Chan():
		}
	}
}

// drainStream discards client frames and cancels the stream once the peer
// closes or the connection breaks.
func (h *Handler) drainStream(ctx context.Context, conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	conn.SetReadLimit(streamMaxMessageSize)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.DebugContext(ctx, "stream client closed unexpectedly", "error", err)
			}
			return
		}
	}
}

func (h *Handler) pushFeed(ctx context.Context, conn *websocket.Conn, query usecase.FeedQuery) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.pushFeed")
	defer span.End()

	frame := streamFrame{Type: "feed"}
	result, err := h.feed.Matches(ctx, query)
	switch {
	case err == nil:
		dto := feedToDTO(result, h.classifier)
		frame.Data = &dto
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		h.logger.WarnContext(ctx, "stream feed failed", "date", query.Date, "error", err)
		frame = streamFrame{Type: "error", Error: mapError(ctx, err).Reason}
	}

	payload, err := sonic.Marshal(frame)
	if err != nil {
		return err
	}
	if err := conn.SetWriteDeadline(time.Now().Add(streamWriteWait)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}
