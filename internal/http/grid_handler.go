package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/room-booking/internal/grid"
)

type gridRenderer interface {
	Render(ctx context.Context) grid.Grid
}

type GridHandler struct {
	renderer  gridRenderer
	responder responder
}

func NewGridHandler(renderer gridRenderer) *GridHandler {
	return &GridHandler{renderer: renderer, responder: newResponder(nil)}
}

func (h *GridHandler) Get(c *gin.Context) {
	g := h.renderer.Render(c.Request.Context())
	h.responder.writeJSON(c, http.StatusOK, toGridResponse(g))
}
