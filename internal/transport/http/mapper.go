package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/presence-server/internal/core"
	"github.com/vovakirdan/presence-server/internal/proto"
	"github.com/vovakirdan/presence-server/internal/service/rooms"
)

// Transport-level error codes.
const (
	ErrCodeSessionCorrupt = "session_corrupt"
	ErrCodeBadRequest     = "bad_request"
	ErrCodeNotMember      = "not_member"
)

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// statusFor maps a domain error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrAlreadyMember):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrRoomFull):
		return http.StatusConflict
	case errors.Is(err, core.ErrIDSpaceExhausted):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, ErrorResponse{Error: "internal server error", Code: core.ErrCodeInternal})
		return
	}
	c.JSON(status, ErrorResponse{Error: err.Error(), Code: core.Code(err)})
}

func roomPath(id core.RoomID) string {
	return "/rooms/" + id.String()
}

func joinPath(id core.RoomID) string {
	return roomPath(id) + "/join"
}

func outboundFromView(view rooms.View) proto.Outbound {
	return proto.Outbound{
		Type:    proto.OutboundTypeEvent,
		Event:   proto.EventRoster,
		Version: proto.ProtocolVersion,
		Data: proto.EventRosterData{
			Room:   uint64(view.ID),
			Roster: view.Roster,
		},
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventMemberJoined:
		return proto.Outbound{
			Type:    proto.OutboundTypeEvent,
			Event:   proto.EventMemberJoined,
			Version: proto.ProtocolVersion,
			Data: proto.EventRosterData{
				Room:   uint64(event.Room),
				Roster: event.Roster,
				Joined: event.Nick,
			},
		}
	case core.EventRoster:
		return proto.Outbound{
			Type:    proto.OutboundTypeEvent,
			Event:   proto.EventRoster,
			Version: proto.ProtocolVersion,
			Data: proto.EventRosterData{
				Room:   uint64(event.Room),
				Roster: event.Roster,
			},
		}
	default:
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: "unknown_event", Msg: event.Kind.String()},
		}
	}
}
