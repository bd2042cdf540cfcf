package booking

import "time"

// RoomType classifies a bookable space.
type RoomType string

const (
	RoomTypeLaboratory RoomType = "Laboratory"
	RoomTypeClassroom  RoomType = "Classroom"
	RoomTypeAuditorium RoomType = "Auditorium"
)

// RoomTypes lists the supported room types in display order.
func RoomTypes() []RoomType {
	return []RoomType{RoomTypeLaboratory, RoomTypeClassroom, RoomTypeAuditorium}
}

// Valid reports whether t is one of the supported room types.
func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeLaboratory, RoomTypeClassroom, RoomTypeAuditorium:
		return true
	default:
		return false
	}
}

// Room is a registered bookable space. (Block, RoomID) is unique within a registry.
type Room struct {
	ID           string
	Block        string
	RoomID       string
	Capacity     int
	RoomType     RoomType
	RegisteredOn Date
}

// Reservation is one booked usage window of a room.
type Reservation struct {
	ID            string
	Block         string
	RoomID        string
	RoomType      RoomType
	StartDate     Date
	EndDate       Date
	StartTime     TimeOfDay
	EndTime       TimeOfDay
	RequesterID   string
	RequesterName string
	Subject       string
	BookedOn      Date
}

// DayOfWeek is derived from StartDate and is never stored independently in memory.
func (r Reservation) DayOfWeek() time.Weekday {
	return r.StartDate.Weekday()
}

// Span returns the half-open time interval the reservation occupies.
func (r Reservation) Span() Interval {
	return Interval{Start: r.StartTime, End: r.EndTime}
}

// ReservationStatus is the display state of a reservation relative to today.
type ReservationStatus string

const (
	StatusScheduled ReservationStatus = "scheduled"
	StatusCompleted ReservationStatus = "completed"
)

// StatusOn reports whether the reservation is still upcoming on the given day.
func (r Reservation) StatusOn(today Date) ReservationStatus {
	if r.StartDate.Before(today) {
		return StatusCompleted
	}
	return StatusScheduled
}
