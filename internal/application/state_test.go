package application

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/example/room-booking/internal/booking"
	"github.com/example/room-booking/internal/events"
	"github.com/example/room-booking/internal/persistence"
	"github.com/example/room-booking/internal/persistence/memory"
)

type failingLoader struct {
	*memory.Storage
	err error
}

func (f failingLoader) LoadReservations(context.Context) ([]booking.Reservation, error) {
	return nil, f.err
}

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, events.Event) error {
	return errors.New("broker unreachable")
}

func TestState_Load(t *testing.T) {
	t.Run("restores both collections and reports overlaps", func(t *testing.T) {
		ctx := context.Background()
		store := memory.Open()
		monday := booking.NewDate(2025, time.March, 17)
		overlapping := []booking.Reservation{
			{ID: "a", Block: "Block B", RoomID: "B201", StartDate: monday,
				StartTime: booking.MustTimeOfDay("08:00"), EndTime: booking.MustTimeOfDay("10:00")},
			{ID: "b", Block: "Block B", RoomID: "B201", StartDate: monday.AddDays(7),
				StartTime: booking.MustTimeOfDay("09:00"), EndTime: booking.MustTimeOfDay("11:00")},
		}
		if err := store.PersistRooms(ctx, []booking.Room{{ID: "r", Block: "Block B", RoomID: "B201", Capacity: 10}}); err != nil {
			t.Fatalf("seed rooms: %v", err)
		}
		if err := store.PersistReservations(ctx, overlapping); err != nil {
			t.Fatalf("seed reservations: %v", err)
		}

		var buf bytes.Buffer
		state := NewState(store, WithStateLogger(slog.New(slog.NewTextHandler(&buf, nil))))
		if err := state.Load(ctx); err != nil {
			t.Fatalf("load: %v", err)
		}

		if len(state.Rooms()) != 1 || len(state.Reservations()) != 2 {
			t.Fatalf("expected 1 room and 2 reservations, got %d and %d", len(state.Rooms()), len(state.Reservations()))
		}
		if !strings.Contains(buf.String(), "stored reservations overlap") {
			t.Fatalf("expected overlap warning, got %q", buf.String())
		}
	})

	t.Run("wraps storage failures", func(t *testing.T) {
		boom := errors.New("corrupt")
		state := NewState(failingLoader{Storage: memory.Open(), err: boom}, WithStateLogger(discardLogger()))

		err := state.Load(context.Background())
		if !errors.Is(err, boom) {
			t.Fatalf("expected wrapped error, got %v", err)
		}
	})

	t.Run("nil store is always loaded", func(t *testing.T) {
		state := NewState(nil)
		svc := NewRoomServiceWithLogger(state, nil, nil, discardLogger())
		if _, err := svc.Register(context.Background(), RegisterRoomParams{
			Block: "Block A", RoomID: "A1", Capacity: 1, RoomType: booking.RoomTypeClassroom,
		}); err != nil {
			t.Fatalf("register: %v", err)
		}
	})
}

func TestState_PublishFailureIsNotFatal(t *testing.T) {
	env := newTestEnv(t, WithPublisher(failingPublisher{}))

	env.registerRoom(t, "Block A", "A1", 10, booking.RoomTypeClassroom)
	if len(env.persistErrs) != 0 {
		t.Fatalf("expected no persistence failures, got %v", env.persistErrs)
	}
	stored, _ := env.store.LoadRooms(context.Background())
	if len(stored) != 1 {
		t.Fatalf("expected room stored despite publish failure")
	}
}

func TestState_PersistErrorsPerCollection(t *testing.T) {
	env := newTestEnv(t)
	env.store.FailPersists(persistence.ErrConstraintViolation)

	if _, err := env.reservations.Book(context.Background(), bookParams("08:00", "09:00")); err != nil {
		t.Fatalf("book: %v", err)
	}
	if len(env.persistErrs) != 1 || env.persistErrs[0] != persistence.ReservationsCollection {
		t.Fatalf("expected reservations failure, got %v", env.persistErrs)
	}
	if len(env.state.Reservations()) != 1 {
		t.Fatalf("expected reservation kept in memory")
	}
}
