package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/presence-server/internal/core"
	"github.com/vovakirdan/presence-server/internal/service/rooms"
)

// RoomHandlers provides HTTP handlers for room endpoints.
type RoomHandlers struct {
	rooms *rooms.Service
	log   *zerolog.Logger
}

// NewRoomHandlers creates a new room handlers instance.
func NewRoomHandlers(svc *rooms.Service, logger *zerolog.Logger) *RoomHandlers {
	return &RoomHandlers{
		rooms: svc,
		log:   logger,
	}
}

// CreateRoomRequest is the create room form. max_size may be zero.
type CreateRoomRequest struct {
	MaxSize *uint64 `form:"max_size" json:"max_size" binding:"required"`
}

// JoinRoomRequest is the join-by-id form.
type JoinRoomRequest struct {
	ID *uint64 `form:"id" json:"id" binding:"required"`
}

// RoomCreatedResponse is returned alongside the redirect to a new room.
type RoomCreatedResponse struct {
	ID uint64 `json:"id"`
}

// RoomResponse is a room as seen by one of its members.
type RoomResponse struct {
	ID       uint64   `json:"id"`
	Capacity uint64   `json:"capacity"`
	Roster   []string `json:"roster"`
}

// JoinPageResponse describes the join page of a room.
type JoinPageResponse struct {
	ID     uint64 `json:"id"`
	Member bool   `json:"member"`
}

// IdentityResponse is the caller's own identity.
type IdentityResponse struct {
	ID   string `json:"id"`
	Nick string `json:"nick"`
}

// CreateRoom handles room creation.
// POST /rooms/new
func (h *RoomHandlers) CreateRoom(c *gin.Context) {
	who, ok := h.identity(c)
	if !ok {
		return
	}

	var req CreateRoomRequest
	if err := c.ShouldBind(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid create room request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: ErrCodeBadRequest})
		return
	}

	id, err := h.rooms.CreateRoom(c.Request.Context(), *req.MaxSize, who)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", who.ID.String()).Msg("failed to create room")
		writeError(c, err)
		return
	}

	c.Header("Location", roomPath(id))
	c.JSON(http.StatusSeeOther, RoomCreatedResponse{ID: uint64(id)})
}

// ViewRoom returns the roster to members and sends everyone else to the join page.
// GET /rooms/:id
func (h *RoomHandlers) ViewRoom(c *gin.Context) {
	who, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := h.roomID(c)
	if !ok {
		return
	}

	view, err := h.rooms.ViewRoom(c.Request.Context(), id, who)
	if errors.Is(err, core.ErrMustJoinFirst) {
		c.Redirect(http.StatusSeeOther, joinPath(id))
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	h.log.Debug().Uint64("room_id", uint64(id)).Int("members", len(view.Roster)).Msg("room viewed")
	c.JSON(http.StatusOK, RoomResponse{
		ID:       uint64(view.ID),
		Capacity: view.Capacity,
		Roster:   view.Roster,
	})
}

// JoinPage describes the join step of a room, redirecting members straight to it.
// GET /rooms/:id/join
func (h *RoomHandlers) JoinPage(c *gin.Context) {
	who, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := h.roomID(c)
	if !ok {
		return
	}

	member, err := h.rooms.JoinPage(c.Request.Context(), id, who)
	if err != nil {
		writeError(c, err)
		return
	}
	if member {
		c.Redirect(http.StatusSeeOther, roomPath(id))
		return
	}
	c.JSON(http.StatusOK, JoinPageResponse{ID: uint64(id), Member: false})
}

// JoinRoom joins the room named in the path.
// POST /rooms/:id/join
func (h *RoomHandlers) JoinRoom(c *gin.Context) {
	id, ok := h.roomID(c)
	if !ok {
		return
	}
	h.join(c, id)
}

// JoinRoomForm joins the room named in the form body.
// POST /rooms/join
func (h *RoomHandlers) JoinRoomForm(c *gin.Context) {
	var req JoinRoomRequest
	if err := c.ShouldBind(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid join room request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: ErrCodeBadRequest})
		return
	}
	h.join(c, core.RoomID(*req.ID))
}

// Me returns the caller's identity.
// GET /me
func (h *RoomHandlers) Me(c *gin.Context) {
	who, ok := h.identity(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, IdentityResponse{ID: who.ID.String(), Nick: who.Nick})
}

func (h *RoomHandlers) join(c *gin.Context, id core.RoomID) {
	who, ok := h.identity(c)
	if !ok {
		return
	}

	if err := h.rooms.JoinRoom(c.Request.Context(), id, who); err != nil {
		h.log.Debug().Err(err).Uint64("room_id", uint64(id)).Str("user_id", who.ID.String()).Msg("join rejected")
		writeError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, roomPath(id))
}

func (h *RoomHandlers) identity(c *gin.Context) (core.Member, bool) {
	who, ok := identityFrom(c)
	if !ok {
		h.log.Error().Msg("identity not found in context")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: core.ErrCodeInternal})
		return core.Member{}, false
	}
	return who, true
}

// roomID parses the :id path parameter. Anything other than a base-10
// uint64 does not name a room.
func (h *RoomHandlers) roomID(c *gin.Context) (core.RoomID, bool) {
	id, err := core.ParseRoomID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: core.ErrRoomNotFound.Error(), Code: core.ErrCodeRoomNotFound})
		return 0, false
	}
	return id, true
}
