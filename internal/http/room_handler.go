package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/example/room-booking/internal/application"
	"github.com/example/room-booking/internal/booking"
)

type roomService interface {
	Register(ctx context.Context, params application.RegisterRoomParams) (booking.Room, error)
	Remove(ctx context.Context, block, roomID string) (bool, error)
	RemoveByID(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, filter booking.RoomFilter) ([]booking.Room, error)
	AvailableBlocks(ctx context.Context) []application.BlockAvailability
}

type RoomHandler struct {
	service   roomService
	responder responder
	logger    *slog.Logger
}

func NewRoomHandler(service roomService, logger *slog.Logger) *RoomHandler {
	base := defaultLogger(logger)
	return &RoomHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *RoomHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return handlerLogger(ctx, h.logger, "RoomHandler", operation, attrs...)
}

func (h *RoomHandler) Blocks(c *gin.Context) {
	blocks := h.service.AvailableBlocks(c.Request.Context())
	resp := blocksResponse{Blocks: make([]blockDTO, 0, len(blocks))}
	for _, b := range blocks {
		rooms := b.Rooms
		if rooms == nil {
			rooms = []string{}
		}
		resp.Blocks = append(resp.Blocks, blockDTO{Block: b.Block, Rooms: rooms})
	}
	h.responder.writeJSON(c, http.StatusOK, resp)
}

func (h *RoomHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	filter := booking.RoomFilter{
		Block: strings.TrimSpace(c.Query("block")),
		Type:  booking.RoomType(strings.TrimSpace(c.Query("type"))),
	}
	if raw := strings.TrimSpace(c.Query("minCapacity")); raw != "" {
		minCapacity, err := strconv.Atoi(raw)
		if err != nil || minCapacity < 0 {
			h.responder.writeError(c, http.StatusBadRequest, errors.New("minCapacity must be a non-negative integer"))
			return
		}
		filter.MinCapacity = minCapacity
	}

	rooms, err := h.service.List(ctx, filter)
	if err != nil {
		h.log(ctx, "List").ErrorContext(ctx, "room listing failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(c, err)
		return
	}

	resp := roomsResponse{Rooms: make([]roomDTO, 0, len(rooms))}
	for _, r := range rooms {
		resp.Rooms = append(resp.Rooms, toRoomDTO(r))
	}
	h.responder.writeJSON(c, http.StatusOK, resp)
}

func (h *RoomHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log(ctx, "Create", "error_kind", "bad_request").ErrorContext(ctx, "failed to decode room request", "error", err)
		h.responder.writeError(c, http.StatusBadRequest, errBadRequestBody)
		return
	}

	room, err := h.service.Register(ctx, req.toParams())
	if err != nil {
		h.responder.handleServiceError(c, err)
		return
	}

	h.responder.writeJSON(c, http.StatusCreated, roomResponse{Room: toRoomDTO(room)})
}

func (h *RoomHandler) Delete(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		h.responder.writeError(c, http.StatusBadRequest, errMissingID)
		return
	}
	if _, err := h.service.RemoveByID(c.Request.Context(), id); err != nil {
		h.responder.handleServiceError(c, err)
		return
	}
	h.responder.writeJSON(c, http.StatusNoContent, nil)
}

// DeleteByKey removes a room addressed by its block and room number.
func (h *RoomHandler) DeleteByKey(c *gin.Context) {
	if _, err := h.service.Remove(c.Request.Context(), c.Query("block"), c.Query("roomId")); err != nil {
		h.responder.handleServiceError(c, err)
		return
	}
	h.responder.writeJSON(c, http.StatusNoContent, nil)
}
