package booking

import (
	"fmt"
	"strings"
	"time"
)

// DefaultAuditoriumCapacity is the occupant limit applied to the auditorium block.
const DefaultAuditoriumCapacity = 100

// Policy carries the tunable business rules used by the validation engine.
type Policy struct {
	AuditoriumBlock    string
	AuditoriumCapacity int
	Catalog            Catalog
}

// DefaultPolicy returns the rules used when nothing is configured.
func DefaultPolicy() Policy {
	return Policy{
		AuditoriumBlock:    DefaultAuditoriumBlock,
		AuditoriumCapacity: DefaultAuditoriumCapacity,
		Catalog:            DefaultCatalog(),
	}
}

func (p Policy) normalized() Policy {
	if p.AuditoriumBlock == "" {
		p.AuditoriumBlock = DefaultAuditoriumBlock
	}
	if p.AuditoriumCapacity <= 0 {
		p.AuditoriumCapacity = DefaultAuditoriumCapacity
	}
	return p
}

// IsAuditorium reports whether block is the auditorium pseudo-block.
func (p Policy) IsAuditorium(block string) bool {
	return strings.TrimSpace(block) == p.normalized().AuditoriumBlock
}

// Decision is the outcome of a validation. Reason is empty iff Accepted.
type Decision struct {
	Accepted bool
	// Field names the offending input when the decision is a rejection.
	Field  string
	Reason string
	// DayOfWeek is only meaningful for accepted reservations.
	DayOfWeek time.Weekday
}

func accept() Decision { return Decision{Accepted: true} }

func reject(field, format string, args ...any) Decision {
	return Decision{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// RoomInput is a proposed room registration.
type RoomInput struct {
	Block    string
	RoomID   string
	Capacity int
	RoomType RoomType
}

// ValidateRoom checks a proposed registration against the registered rooms.
func (p Policy) ValidateRoom(in RoomInput, existing []Room) Decision {
	p = p.normalized()
	block := strings.TrimSpace(in.Block)
	roomID := strings.TrimSpace(in.RoomID)

	switch {
	case block == "":
		return reject("block", "block is required")
	case roomID == "":
		return reject("room_id", "room is required")
	case in.Capacity < 1:
		return reject("capacity", "capacity must be at least 1")
	case strings.TrimSpace(string(in.RoomType)) == "":
		return reject("room_type", "room type is required")
	}

	if !p.Catalog.HasBlock(block) {
		return reject("block", "unknown block %q", block)
	}
	if !in.RoomType.Valid() {
		return reject("room_type", "unknown room type %q", in.RoomType)
	}

	for _, r := range existing {
		if r.Block == block && r.RoomID == roomID {
			return reject("room_id", "duplicate room: %s is already registered in %s", roomID, block)
		}
	}

	if block == p.AuditoriumBlock && in.Capacity > p.AuditoriumCapacity {
		return reject("capacity", "auditorium capacity cannot exceed %d", p.AuditoriumCapacity)
	}

	return accept()
}

// ReservationInput is a proposed booking.
type ReservationInput struct {
	Block     string
	RoomID    string
	StartDate Date
	EndDate   Date
	StartTime TimeOfDay
	EndTime   TimeOfDay
	// Capacity is the expected number of occupants.
	Capacity int
}

// ValidateReservation checks a proposed booking against the existing
// reservations. today is the caller's local calendar date; only dates strictly
// after it are bookable.
func (p Policy) ValidateReservation(in ReservationInput, today Date, existing []Reservation) Decision {
	p = p.normalized()
	block := strings.TrimSpace(in.Block)
	roomID := strings.TrimSpace(in.RoomID)

	if block == "" {
		return reject("block", "block and room are required")
	}
	if roomID == "" {
		return reject("room_id", "block and room are required")
	}

	if in.StartDate.IsZero() {
		return reject("start_date", "start date is required")
	}
	if !in.StartDate.After(today) {
		return reject("start_date", "start date must be in the future; bookings open from %s", today.AddDays(1))
	}
	if !in.EndDate.IsZero() && in.EndDate.Before(in.StartDate) {
		return reject("end_date", "end date must not be before start date")
	}

	if in.EndTime <= in.StartTime {
		return reject("end_time", "end time must be later than start time")
	}

	day := in.StartDate.Weekday()
	if IsWeekend(day) {
		return reject("start_date", "reservations are not allowed on %s", DayName(day))
	}

	if block == p.AuditoriumBlock && in.Capacity > p.AuditoriumCapacity {
		return reject("capacity", "auditorium capacity cannot exceed %d", p.AuditoriumCapacity)
	}

	slot := Slot{Block: block, RoomID: roomID, Day: day}
	span := Interval{Start: in.StartTime, End: in.EndTime}
	if clash, found := FindConflict(existing, slot, span); found {
		return reject("start_time", "room %s in %s is already booked on %s from %s to %s",
			roomID, block, DayName(day), clash.StartTime, clash.EndTime)
	}

	d := accept()
	d.DayOfWeek = day
	return d
}

// ValidateRoom checks in against existing using DefaultPolicy.
func ValidateRoom(in RoomInput, existing []Room) Decision {
	return DefaultPolicy().ValidateRoom(in, existing)
}

// ValidateReservation checks in against existing using DefaultPolicy.
func ValidateReservation(in ReservationInput, today Date, existing []Reservation) Decision {
	return DefaultPolicy().ValidateReservation(in, today, existing)
}
