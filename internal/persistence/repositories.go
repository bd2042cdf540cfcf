package persistence

import (
	"context"

	"github.com/example/room-booking/internal/booking"
)

// Adapter loads both collections at startup and stores them after every
// mutation. Persist calls receive the full ordered collection; implementations
// replace what they hold.
type Adapter interface {
	LoadRooms(ctx context.Context) ([]booking.Room, error)
	LoadReservations(ctx context.Context) ([]booking.Reservation, error)
	PersistRooms(ctx context.Context, rooms []booking.Room) error
	PersistReservations(ctx context.Context, reservations []booking.Reservation) error
}

// Closer is implemented by adapters that hold connections or goroutines.
type Closer interface {
	Close() error
}
