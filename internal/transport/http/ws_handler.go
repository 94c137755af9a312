package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/presence-server/internal/core"
	"github.com/vovakirdan/presence-server/internal/service/rooms"
)

const wsWriteTimeout = 5 * time.Second

var errRateLimited = errors.New("inbound rate limit exceeded")

// WSHandler upgrades members of a room to a presence stream.
type WSHandler struct {
	rooms     *rooms.Service
	rateLimit int
	log       *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler. rateLimit caps inbound frames per minute.
func NewWSHandler(svc *rooms.Service, rateLimit int, logger *zerolog.Logger) *WSHandler {
	return &WSHandler{rooms: svc, rateLimit: rateLimit, log: logger}
}

// Handle serves GET /ws/?room=:id.
func (h *WSHandler) Handle(c *gin.Context) {
	who, ok := identityFrom(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: core.ErrCodeInternal})
		return
	}
	roomID, err := core.ParseRoomID(c.Query("room"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: core.ErrRoomNotFound.Error(), Code: core.ErrCodeRoomNotFound})
		return
	}

	ctx := c.Request.Context()

	sub, view, err := h.rooms.Subscribe(ctx, roomID, who)
	if errors.Is(err, core.ErrMustJoinFirst) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "join the room first", Code: ErrCodeNotMember})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	defer h.rooms.Unsubscribe(sub)

	conn, err := websocket.Accept(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	log := h.log.With().
		Uint64("room_id", uint64(roomID)).
		Str("subscriber_id", sub.ID).
		Logger()
	log.Debug().Msg("ws connected")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := h.write(ctx, conn, outboundFromView(view)); err != nil {
		log.Warn().Err(err).Msg("write ws snapshot")
		return
	}

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, newRateLimiter(h.rateLimit, time.Minute))
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, sub)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	switch {
	case errors.Is(err, errRateLimited):
		status = websocket.StatusPolicyViolation
		reason = err.Error()
	case err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF):
		if s := websocket.CloseStatus(err); s == websocket.StatusNormalClosure || s == websocket.StatusGoingAway {
			break
		}
		status = websocket.StatusInternalError
		reason = "internal error"
		log.Warn().Err(err).Msg("ws connection closed with error")
	}

	conn.Close(status, reason)
}

// readLoop discards client frames; only the rate limit applies.
func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, limiter *rateLimiter) error {
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			return err
		}
		if !limiter.allow() {
			return errRateLimited
		}
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, sub *core.Subscriber) error {
	for {
		select {
		case event, ok := <-sub.Events:
			if !ok {
				return nil
			}
			if err := h.write(ctx, conn, outboundFromEvent(event)); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (h *WSHandler) write(ctx context.Context, conn *websocket.Conn, v any) error {
	ctx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, v)
}
