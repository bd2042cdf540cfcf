package application

import (
	"context"
	"log/slog"

	"github.com/example/room-booking/internal/grid"
)

// GridService renders the weekly occupancy grid from the reservation registry.
type GridService struct {
	state  *State
	layout grid.Layout
	colors grid.ColorFunc
	logger *slog.Logger
}

// NewGridService constructs a grid service. A nil colors source draws random colors.
func NewGridService(state *State, layout grid.Layout, colors grid.ColorFunc) *GridService {
	return NewGridServiceWithLogger(state, layout, colors, nil)
}

// NewGridServiceWithLogger constructs a grid service with a specified logger.
func NewGridServiceWithLogger(state *State, layout grid.Layout, colors grid.ColorFunc, logger *slog.Logger) *GridService {
	if len(layout.Days) == 0 || len(layout.Slots) == 0 {
		layout = grid.DefaultLayout()
	}
	if colors == nil {
		colors = grid.RandomColors(nil)
	}
	return &GridService{state: state, layout: layout, colors: colors, logger: defaultLogger(logger)}
}

// Render recomputes the grid. Colors are assigned afresh on every call.
func (s *GridService) Render(ctx context.Context) grid.Grid {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	g := grid.Render(s.state.reservations.All(), s.layout, s.colors)
	serviceLogger(ctx, s.logger, "GridService", "Render").
		DebugContext(ctx, "grid rendered", "reservations", s.state.reservations.Len())
	return g
}
