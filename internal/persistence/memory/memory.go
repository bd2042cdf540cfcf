// Package memory provides a process-local persistence adapter. It is used for
// ephemeral deployments and as the default collaborator in tests.
package memory

import (
	"context"
	"sync"

	"github.com/example/room-booking/internal/booking"
	"github.com/example/room-booking/internal/persistence"
)

// Storage keeps the stored layout of both collections in memory.
type Storage struct {
	mu           sync.RWMutex
	rooms        []persistence.RoomRecord
	reservations []persistence.ReservationRecord

	// persistErr, when set, is returned by every persist call.
	persistErr error
}

// Open returns an empty Storage.
func Open() *Storage {
	return &Storage{}
}

// Close releases resources held by the storage. No-op for the in-memory implementation.
func (s *Storage) Close() error {
	return nil
}

// FailPersists makes subsequent persist calls return err. Passing nil restores normal behaviour.
func (s *Storage) FailPersists(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persistErr = err
}

// LoadRooms returns the stored rooms in insertion order.
func (s *Storage) LoadRooms(ctx context.Context) ([]booking.Room, error) {
	s.mu.RLock()
	records := cloneRecords(s.rooms)
	s.mu.RUnlock()

	return persistence.RoomsFromRecords(records)
}

// LoadReservations returns the stored reservations in insertion order.
func (s *Storage) LoadReservations(ctx context.Context) ([]booking.Reservation, error) {
	s.mu.RLock()
	records := cloneRecords(s.reservations)
	s.mu.RUnlock()

	return persistence.ReservationsFromRecords(ctx, records)
}

// PersistRooms replaces the stored rooms.
func (s *Storage) PersistRooms(ctx context.Context, rooms []booking.Room) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.persistErr != nil {
		return s.persistErr
	}
	s.rooms = persistence.RoomRecords(rooms)
	return nil
}

// PersistReservations replaces the stored reservations.
func (s *Storage) PersistReservations(ctx context.Context, reservations []booking.Reservation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.persistErr != nil {
		return s.persistErr
	}
	s.reservations = persistence.ReservationRecords(reservations)
	return nil
}

// SeedReservationRecords stores raw records, bypassing conversion. It lets
// callers load data written by other tools.
func (s *Storage) SeedReservationRecords(records []persistence.ReservationRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservations = cloneRecords(records)
}

// ReservationRecords returns a copy of the stored reservation layout.
func (s *Storage) ReservationRecords() []persistence.ReservationRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRecords(s.reservations)
}

func cloneRecords[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

var _ persistence.Adapter = (*Storage)(nil)
