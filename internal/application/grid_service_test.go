package application

import (
	"context"
	"testing"

	"github.com/example/room-booking/internal/grid"
)

func TestGridService_Render(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.reservations.Book(context.Background(), bookParams("08:00", "10:00")); err != nil {
		t.Fatalf("book: %v", err)
	}

	svc := NewGridServiceWithLogger(env.state, grid.Layout{}, grid.Palette("red", "blue"), discardLogger())
	g := svc.Render(context.Background())

	if len(g.Days) != 6 || len(g.Slots) != 18 {
		t.Fatalf("expected default 6x18 layout, got %dx%d", len(g.Days), len(g.Slots))
	}
	// Monday is the first column; 07:30 is before the booking, 08:20 and 09:10 inside it.
	if !g.Cells[0][0].Empty() {
		t.Fatalf("expected 07:30 Monday to be empty")
	}
	for _, slot := range []int{1, 2} {
		cell := g.Cells[slot][0]
		if cell.Empty() || cell.Color != "red" || cell.Label != "Block B-B201" || cell.Detail != "Databases" {
			t.Fatalf("unexpected cell at slot %d: %+v", slot, cell)
		}
	}
	if !g.Cells[3][0].Empty() {
		t.Fatalf("expected 10:10 Monday to be empty")
	}

	// Colors are reassigned on every render.
	again := svc.Render(context.Background())
	if again.Cells[1][0].Color != "blue" {
		t.Fatalf("expected next palette color on re-render, got %q", again.Cells[1][0].Color)
	}
}
