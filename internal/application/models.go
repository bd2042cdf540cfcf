package application

import (
	"github.com/example/room-booking/internal/booking"
)

// RegisterRoomParams captures caller provided room fields.
type RegisterRoomParams struct {
	Block    string
	RoomID   string
	Capacity int
	RoomType booking.RoomType
}

// BookReservationParams captures caller provided reservation fields.
type BookReservationParams struct {
	Block     string
	RoomID    string
	StartDate booking.Date
	EndDate   booking.Date
	StartTime booking.TimeOfDay
	EndTime   booking.TimeOfDay
	// Capacity is the expected attendance. Zero means the registered room's capacity.
	Capacity      int
	RequesterID   string
	RequesterName string
	Subject       string
}

// RemoveReservationParams identifies a reservation by its legacy composite key.
type RemoveReservationParams struct {
	BookedOn  booking.Date
	RoomID    string
	StartTime booking.TimeOfDay
}

// ReservationListing is a reservation annotated for display.
type ReservationListing struct {
	booking.Reservation
	Status booking.ReservationStatus
}

// BlockAvailability lists the catalog rooms of a block that are not registered yet.
type BlockAvailability struct {
	Block string
	Rooms []string
}

// PersistErrorHandler is notified when storing a collection fails. The
// in-memory state is kept as is.
type PersistErrorHandler func(collection string, err error)
