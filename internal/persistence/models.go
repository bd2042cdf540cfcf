package persistence

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/room-booking/internal/booking"
	"github.com/example/room-booking/internal/logging"
)

// Collection names under which the two lists are stored.
const (
	RoomsCollection        = "rooms"
	ReservationsCollection = "reservations"
)

// RoomRecord is the stored layout of a room. JSON names are part of the
// on-disk format and must not change.
type RoomRecord struct {
	ID           string `json:"id"`
	Block        string `json:"block"`
	RoomID       string `json:"roomId"`
	Capacity     int    `json:"capacity"`
	RoomType     string `json:"roomType"`
	RegisteredOn string `json:"registeredOn"`
}

// ReservationRecord is the stored layout of a reservation. DayOfWeek is a
// materialized copy of the weekday of StartDate.
type ReservationRecord struct {
	ID            string `json:"id"`
	Block         string `json:"block"`
	RoomID        string `json:"roomId"`
	RoomType      string `json:"roomType"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	DayOfWeek     string `json:"dayOfWeek"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	RequesterID   string `json:"requesterId"`
	RequesterName string `json:"requesterName"`
	Subject       string `json:"subject"`
	BookedOn      string `json:"bookedOn"`
}

// NewRoomRecord converts a domain room to its stored layout.
func NewRoomRecord(r booking.Room) RoomRecord {
	return RoomRecord{
		ID:           r.ID,
		Block:        r.Block,
		RoomID:       r.RoomID,
		Capacity:     r.Capacity,
		RoomType:     string(r.RoomType),
		RegisteredOn: r.RegisteredOn.String(),
	}
}

// Room converts the record back into a domain room.
func (rec RoomRecord) Room() (booking.Room, error) {
	var registered booking.Date
	if err := registered.UnmarshalText([]byte(rec.RegisteredOn)); err != nil {
		return booking.Room{}, fmt.Errorf("%w: room %s registeredOn: %v", ErrInvalidRecord, rec.ID, err)
	}
	return booking.Room{
		ID:           rec.ID,
		Block:        rec.Block,
		RoomID:       rec.RoomID,
		Capacity:     rec.Capacity,
		RoomType:     booking.RoomType(rec.RoomType),
		RegisteredOn: registered,
	}, nil
}

// NewReservationRecord converts a domain reservation to its stored layout,
// materializing the derived weekday.
func NewReservationRecord(r booking.Reservation) ReservationRecord {
	return ReservationRecord{
		ID:            r.ID,
		Block:         r.Block,
		RoomID:        r.RoomID,
		RoomType:      string(r.RoomType),
		StartDate:     r.StartDate.String(),
		EndDate:       r.EndDate.String(),
		DayOfWeek:     booking.DayName(r.DayOfWeek()),
		StartTime:     r.StartTime.String(),
		EndTime:       r.EndTime.String(),
		RequesterID:   r.RequesterID,
		RequesterName: r.RequesterName,
		Subject:       r.Subject,
		BookedOn:      r.BookedOn.String(),
	}
}

// Reservation converts the record back into a domain reservation. The stored
// DayOfWeek is ignored; see StaleDayOfWeek.
func (rec ReservationRecord) Reservation() (booking.Reservation, error) {
	res := booking.Reservation{
		ID:            rec.ID,
		Block:         rec.Block,
		RoomID:        rec.RoomID,
		RoomType:      booking.RoomType(rec.RoomType),
		RequesterID:   rec.RequesterID,
		RequesterName: rec.RequesterName,
		Subject:       rec.Subject,
	}

	dates := []struct {
		name  string
		value string
		dst   *booking.Date
	}{
		{"startDate", rec.StartDate, &res.StartDate},
		{"endDate", rec.EndDate, &res.EndDate},
		{"bookedOn", rec.BookedOn, &res.BookedOn},
	}
	for _, d := range dates {
		if err := d.dst.UnmarshalText([]byte(d.value)); err != nil {
			return booking.Reservation{}, fmt.Errorf("%w: reservation %s %s: %v", ErrInvalidRecord, rec.ID, d.name, err)
		}
	}
	if res.StartDate.IsZero() {
		return booking.Reservation{}, fmt.Errorf("%w: reservation %s has no startDate", ErrInvalidRecord, rec.ID)
	}

	var err error
	if res.StartTime, err = booking.ParseTimeOfDay(rec.StartTime); err != nil {
		return booking.Reservation{}, fmt.Errorf("%w: reservation %s startTime: %v", ErrInvalidRecord, rec.ID, err)
	}
	if res.EndTime, err = booking.ParseTimeOfDay(rec.EndTime); err != nil {
		return booking.Reservation{}, fmt.Errorf("%w: reservation %s endTime: %v", ErrInvalidRecord, rec.ID, err)
	}
	return res, nil
}

// StaleDayOfWeek reports whether the materialized weekday disagrees with the
// one derived from StartDate. An empty stored value is not considered stale.
func (rec ReservationRecord) StaleDayOfWeek() bool {
	if rec.DayOfWeek == "" {
		return false
	}
	start, err := booking.ParseDate(rec.StartDate)
	if err != nil {
		return false
	}
	day, ok := booking.ParseDayName(rec.DayOfWeek)
	return !ok || day != start.Weekday()
}

// RoomRecords converts a room list to stored layout, keeping order.
func RoomRecords(rooms []booking.Room) []RoomRecord {
	out := make([]RoomRecord, len(rooms))
	for i, r := range rooms {
		out[i] = NewRoomRecord(r)
	}
	return out
}

// RoomsFromRecords decodes a stored room list, keeping order.
func RoomsFromRecords(records []RoomRecord) ([]booking.Room, error) {
	out := make([]booking.Room, 0, len(records))
	for _, rec := range records {
		room, err := rec.Room()
		if err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	return out, nil
}

// ReservationRecords converts a reservation list to stored layout, keeping order.
func ReservationRecords(reservations []booking.Reservation) []ReservationRecord {
	out := make([]ReservationRecord, len(reservations))
	for i, r := range reservations {
		out[i] = NewReservationRecord(r)
	}
	return out
}

// ReservationsFromRecords decodes a stored reservation list, keeping order.
// Records whose materialized weekday diverged are logged and recomputed.
func ReservationsFromRecords(ctx context.Context, records []ReservationRecord) ([]booking.Reservation, error) {
	out := make([]booking.Reservation, 0, len(records))
	for _, rec := range records {
		res, err := rec.Reservation()
		if err != nil {
			return nil, err
		}
		if rec.StaleDayOfWeek() {
			loggerFrom(ctx).WarnContext(ctx, "stored day of week diverged from start date; recomputed",
				"reservation_id", rec.ID,
				"stored_day", rec.DayOfWeek,
				"derived_day", booking.DayName(res.DayOfWeek()),
			)
		}
		out = append(out, res)
	}
	return out, nil
}

func loggerFrom(ctx context.Context) *slog.Logger {
	if logger := logging.FromContext(ctx); logger != nil {
		return logger
	}
	return slog.Default()
}
