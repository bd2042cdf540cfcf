package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	Rooms        *RoomHandler
	Reservations *ReservationHandler
	Grid         *GridHandler
	Logger       *slog.Logger
	CORSOrigins  []string
	// Health reports whether the backing store is usable. Nil means always healthy.
	Health func(ctx context.Context) error
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(cfg.Logger), CORS(cfg.CORSOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		if cfg.Health != nil {
			if err := cfg.Health(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	if cfg.Rooms != nil {
		api.GET("/blocks", cfg.Rooms.Blocks)
		api.GET("/rooms", cfg.Rooms.List)
		api.POST("/rooms", cfg.Rooms.Create)
		api.DELETE("/rooms", cfg.Rooms.DeleteByKey)
		api.DELETE("/rooms/:id", cfg.Rooms.Delete)
	}
	if cfg.Reservations != nil {
		api.GET("/reservations", cfg.Reservations.List)
		api.POST("/reservations", cfg.Reservations.Create)
		api.DELETE("/reservations", cfg.Reservations.DeleteByKey)
		api.DELETE("/reservations/:id", cfg.Reservations.Delete)
	}
	if cfg.Grid != nil {
		api.GET("/grid", cfg.Grid.Get)
	}

	return r
}
