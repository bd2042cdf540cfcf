package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/room-booking/internal/booking"
)

var (
	roomCounter        uint64
	reservationCounter uint64
)

// ----------------------------- Room fixtures -----------------------------

// RoomOption configures the generated room.
type RoomOption func(*booking.Room)

// NewRoom returns a deterministic room with optional overrides. Each call
// yields a distinct (block, room) pair.
func NewRoom(opts ...RoomOption) booking.Room {
	idx := atomic.AddUint64(&roomCounter, 1)
	room := booking.Room{
		ID:           fmt.Sprintf("room-%03d", idx),
		Block:        "Block A",
		RoomID:       fmt.Sprintf("A%d", idx),
		Capacity:     30,
		RoomType:     booking.RoomTypeClassroom,
		RegisteredOn: ReferenceDate(),
	}
	for _, opt := range opts {
		opt(&room)
	}
	return room
}

// WithRoomID overrides the generated identifier.
func WithRoomID(id string) RoomOption {
	return func(r *booking.Room) {
		r.ID = id
	}
}

// WithRoomKey overrides the block and room number.
func WithRoomKey(block, roomID string) RoomOption {
	return func(r *booking.Room) {
		r.Block = block
		r.RoomID = roomID
	}
}

// WithCapacity overrides the room capacity.
func WithCapacity(capacity int) RoomOption {
	return func(r *booking.Room) {
		r.Capacity = capacity
	}
}

// WithRoomType overrides the room type.
func WithRoomType(t booking.RoomType) RoomOption {
	return func(r *booking.Room) {
		r.RoomType = t
	}
}

// -------------------------- Reservation fixtures --------------------------

// ReservationOption configures the generated reservation.
type ReservationOption func(*booking.Reservation)

// NewReservation returns a deterministic reservation for the Monday after
// ReferenceDate, 08:00 to 10:00 in Block B room B201.
func NewReservation(opts ...ReservationOption) booking.Reservation {
	idx := atomic.AddUint64(&reservationCounter, 1)
	res := booking.Reservation{
		ID:            fmt.Sprintf("reservation-%03d", idx),
		Block:         "Block B",
		RoomID:        "B201",
		RoomType:      booking.RoomTypeClassroom,
		StartDate:     NextWeekday(ReferenceDate(), time.Monday),
		StartTime:     booking.MustTimeOfDay("08:00"),
		EndTime:       booking.MustTimeOfDay("10:00"),
		RequesterID:   "123.456.789-00",
		RequesterName: "Ana Souza",
		BookedOn:      ReferenceDate(),
	}
	for _, opt := range opts {
		opt(&res)
	}
	return res
}

// WithReservationID overrides the generated identifier.
func WithReservationID(id string) ReservationOption {
	return func(r *booking.Reservation) {
		r.ID = id
	}
}

// ForRoom overrides the block and room.
func ForRoom(block, roomID string) ReservationOption {
	return func(r *booking.Reservation) {
		r.Block = block
		r.RoomID = roomID
	}
}

// OnDate overrides the start date.
func OnDate(d booking.Date) ReservationOption {
	return func(r *booking.Reservation) {
		r.StartDate = d
	}
}

// Until sets the end date.
func Until(d booking.Date) ReservationOption {
	return func(r *booking.Reservation) {
		r.EndDate = d
	}
}

// Between overrides the wall-clock window. It panics on malformed times.
func Between(start, end string) ReservationOption {
	return func(r *booking.Reservation) {
		r.StartTime = booking.MustTimeOfDay(start)
		r.EndTime = booking.MustTimeOfDay(end)
	}
}

// WithRequester overrides the requester identity.
func WithRequester(id, name string) ReservationOption {
	return func(r *booking.Reservation) {
		r.RequesterID = id
		r.RequesterName = name
	}
}

// WithSubject sets the subject shown in the grid.
func WithSubject(subject string) ReservationOption {
	return func(r *booking.Reservation) {
		r.Subject = subject
	}
}

// BookedOn overrides the booking date.
func BookedOn(d booking.Date) ReservationOption {
	return func(r *booking.Reservation) {
		r.BookedOn = d
	}
}
