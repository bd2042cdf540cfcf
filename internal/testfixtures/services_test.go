package testfixtures

import (
	"context"
	"testing"
	"time"

	"github.com/example/room-booking/internal/application"
	"github.com/example/room-booking/internal/booking"
)

func TestServiceFactoryNewServices(t *testing.T) {
	factory := NewServiceFactory(WithIDGenerator(NewIDGenerator("fixture")))
	svcs := factory.NewServices(t, nil)

	room, err := svcs.Rooms.Register(context.Background(), application.RegisterRoomParams{
		Block: "Block A", RoomID: "A1", Capacity: 30, RoomType: booking.RoomTypeClassroom,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if room.ID != "fixture-1" {
		t.Fatalf("expected deterministic id, got %q", room.ID)
	}
	if room.RegisteredOn != ReferenceDate() {
		t.Fatalf("expected reference date, got %s", room.RegisteredOn)
	}

	monday := NextWeekday(factory.Clock.Today(), time.Monday)
	res, err := svcs.Reservations.Book(context.Background(), application.BookReservationParams{
		Block: "Block A", RoomID: "A1", StartDate: monday,
		StartTime: booking.MustTimeOfDay("08:00"), EndTime: booking.MustTimeOfDay("09:00"),
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if res.ID != "fixture-2" {
		t.Fatalf("expected ids shared across services, got %q", res.ID)
	}

	g := svcs.Grid.Render(context.Background())
	if g.Cells[1][0].Color != "#a" {
		t.Fatalf("expected palette color, got %q", g.Cells[1][0].Color)
	}
}

func TestServiceFactoryUsesSQLiteStore(t *testing.T) {
	store := NewSQLiteHarness(t)
	factory := NewServiceFactory()

	first := factory.NewServices(t, store)
	if _, err := first.Rooms.Register(context.Background(), application.RegisterRoomParams{
		Block: "Block C", RoomID: "C1", Capacity: 12, RoomType: booking.RoomTypeLaboratory,
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	second := factory.NewServices(t, store)
	if rooms := second.State.Rooms(); len(rooms) != 1 || rooms[0].RoomID != "C1" {
		t.Fatalf("expected room reloaded from storage, got %+v", rooms)
	}
}
