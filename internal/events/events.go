// Package events publishes best-effort notifications about registry mutations.
// Failures are returned to the caller, which logs them and carries on.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/example/room-booking/internal/booking"
	"github.com/example/room-booking/internal/persistence"
)

// Kind names a mutation.
type Kind string

const (
	RoomRegistered     Kind = "room.registered"
	RoomRemoved        Kind = "room.removed"
	ReservationBooked  Kind = "reservation.booked"
	ReservationRemoved Kind = "reservation.removed"
)

// Event is the message body. Exactly one of Room or Reservation is set; the
// payload uses the persisted record layout.
type Event struct {
	Kind        Kind                           `json:"kind"`
	OccurredAt  time.Time                      `json:"occurredAt"`
	Room        *persistence.RoomRecord        `json:"room,omitempty"`
	Reservation *persistence.ReservationRecord `json:"reservation,omitempty"`
}

// RoomEvent builds an event carrying a room.
func RoomEvent(kind Kind, room booking.Room, at time.Time) Event {
	record := persistence.NewRoomRecord(room)
	return Event{Kind: kind, OccurredAt: at.UTC(), Room: &record}
}

// ReservationEvent builds an event carrying a reservation.
func ReservationEvent(kind Kind, res booking.Reservation, at time.Time) Event {
	record := persistence.NewReservationRecord(res)
	return Event{Kind: kind, OccurredAt: at.UTC(), Reservation: &record}
}

// Publisher delivers events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Nop discards every event.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, Event) error { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Publish implements Publisher.
func (r *Recorder) Publish(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Kinds returns the kinds of the recorded events in publish order.
func (r *Recorder) Kinds() []Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]Kind, 0, len(r.events))
	for _, e := range r.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}
