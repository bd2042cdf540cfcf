package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/example/room-booking/internal/application"
	"github.com/example/room-booking/internal/booking"
)

type reservationService interface {
	Book(ctx context.Context, params application.BookReservationParams) (booking.Reservation, error)
	Remove(ctx context.Context, params application.RemoveReservationParams) (bool, error)
	RemoveByID(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, filter booking.ReservationFilter) ([]application.ReservationListing, error)
}

type ReservationHandler struct {
	service   reservationService
	responder responder
	logger    *slog.Logger
}

func NewReservationHandler(service reservationService, logger *slog.Logger) *ReservationHandler {
	base := defaultLogger(logger)
	return &ReservationHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *ReservationHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return handlerLogger(ctx, h.logger, "ReservationHandler", operation, attrs...)
}

func (h *ReservationHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	period, ok := booking.ParsePeriod(c.Query("period"))
	if !ok {
		h.responder.writeError(c, http.StatusBadRequest, errors.New("period must be morning, afternoon or evening"))
		return
	}
	filter := booking.ReservationFilter{
		RequesterName: c.Query("requester"),
		Block:         strings.TrimSpace(c.Query("block")),
		Period:        period,
	}

	listings, err := h.service.List(ctx, filter)
	if err != nil {
		h.log(ctx, "List").ErrorContext(ctx, "reservation listing failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(c, err)
		return
	}

	resp := reservationsResponse{Reservations: make([]reservationDTO, 0, len(listings))}
	for _, l := range listings {
		dto := toReservationDTO(l.Reservation)
		dto.Status = string(l.Status)
		resp.Reservations = append(resp.Reservations, dto)
	}
	h.responder.writeJSON(c, http.StatusOK, resp)
}

func (h *ReservationHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req reservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log(ctx, "Create", "error_kind", "bad_request").ErrorContext(ctx, "failed to decode reservation request", "error", err)
		h.responder.writeError(c, http.StatusBadRequest, errBadRequestBody)
		return
	}
	params, vErr := req.toParams()
	if vErr != nil {
		h.responder.handleServiceError(c, vErr)
		return
	}

	res, err := h.service.Book(ctx, params)
	if err != nil {
		h.responder.handleServiceError(c, err)
		return
	}

	h.responder.writeJSON(c, http.StatusCreated, reservationResponse{Reservation: toReservationDTO(res)})
}

func (h *ReservationHandler) Delete(c *gin.Context) {
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

// DeleteByKey removes a reservation addressed by booking date, room and start time.
func (h *ReservationHandler) DeleteByKey(c *gin.Context) {
	bookedOn, err := booking.ParseDate(strings.TrimSpace(c.Query("bookedOn")))
	if err != nil {
		h.responder.writeError(c, http.StatusBadRequest, errors.New("bookedOn must use YYYY-MM-DD"))
		return
	}
	startTime, err := booking.ParseTimeOfDay(strings.TrimSpace(c.Query("startTime")))
	if err != nil {
		h.responder.writeError(c, http.StatusBadRequest, errors.New("startTime must use HH:MM"))
		return
	}
	roomID := strings.TrimSpace(c.Query("roomId"))
	if roomID == "" {
		h.responder.writeError(c, http.StatusBadRequest, errors.New("roomId is required"))
		return
	}

	if _, err := h.service.Remove(c.Request.Context(), application.RemoveReservationParams{
		BookedOn: bookedOn, RoomID: roomID, StartTime: startTime,
	}); err != nil {
		h.responder.handleServiceError(c, err)
		return
	}
	h.responder.writeJSON(c, http.StatusNoContent, nil)
}
