package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/example/room-booking/internal/booking"
	"github.com/example/room-booking/internal/events"
	"github.com/example/room-booking/internal/persistence/memory"
)

// Wednesday 12 March 2025.
var testNow = time.Date(2025, time.March, 12, 9, 30, 0, 0, time.UTC)

var nextMonday = booking.NewDate(2025, time.March, 17)

type testEnv struct {
	store        *memory.Storage
	state        *State
	recorder     *events.Recorder
	rooms        *RoomService
	reservations *ReservationService
	persistErrs  []string
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func newTestEnv(t *testing.T, opts ...StateOption) *testEnv {
	t.Helper()

	env := &testEnv{store: memory.Open(), recorder: &events.Recorder{}}
	base := []StateOption{
		WithPublisher(env.recorder),
		WithStateLogger(discardLogger()),
		WithPersistErrorHandler(func(collection string, err error) {
			env.persistErrs = append(env.persistErrs, collection)
		}),
	}
	env.state = NewState(env.store, append(base, opts...)...)
	if err := env.state.Load(context.Background()); err != nil {
		t.Fatalf("load state: %v", err)
	}

	now := func() time.Time { return testNow }
	env.rooms = NewRoomServiceWithLogger(env.state, sequentialIDs("room"), now, discardLogger())
	env.reservations = NewReservationServiceWithLogger(env.state, sequentialIDs("res"), now, discardLogger())
	return env
}

func (e *testEnv) registerRoom(t *testing.T, block, roomID string, capacity int, roomType booking.RoomType) booking.Room {
	t.Helper()
	room, err := e.rooms.Register(context.Background(), RegisterRoomParams{
		Block: block, RoomID: roomID, Capacity: capacity, RoomType: roomType,
	})
	if err != nil {
		t.Fatalf("register %s/%s: %v", block, roomID, err)
	}
	return room
}

func bookParams(start, end string) BookReservationParams {
	return BookReservationParams{
		Block:         "Block B",
		RoomID:        "B201",
		StartDate:     nextMonday,
		StartTime:     booking.MustTimeOfDay(start),
		EndTime:       booking.MustTimeOfDay(end),
		Capacity:      25,
		RequesterID:   "123.456.789-00",
		RequesterName: "Ana Souza",
		Subject:       "Databases",
	}
}

func requireValidation(t *testing.T, err error, field string) string {
	t.Helper()
	vErr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}
	reason, ok := vErr.FieldErrors[field]
	if !ok {
		t.Fatalf("expected error on field %q, got %v", field, vErr.FieldErrors)
	}
	return reason
}
