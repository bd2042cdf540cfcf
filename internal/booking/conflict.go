package booking

import "time"

// Interval is a half-open [Start, End) wall-clock range.
type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Overlaps reports whether the two half-open intervals share at least one minute.
// Touching intervals such as 08:00-10:00 and 10:00-12:00 do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && i.End > other.Start
}

// Contains reports whether t falls inside the interval.
func (i Interval) Contains(t TimeOfDay) bool {
	return t >= i.Start && t < i.End
}

// Slot identifies the weekly room/day a reservation competes for.
type Slot struct {
	Block  string
	RoomID string
	Day    time.Weekday
}

// SlotOf returns the weekly slot occupied by r.
func SlotOf(r Reservation) Slot {
	return Slot{Block: r.Block, RoomID: r.RoomID, Day: r.DayOfWeek()}
}

// FindConflict returns the first existing reservation on the same slot whose
// interval overlaps span.
func FindConflict(existing []Reservation, slot Slot, span Interval) (Reservation, bool) {
	for _, r := range existing {
		if SlotOf(r) != slot {
			continue
		}
		if r.Span().Overlaps(span) {
			return r, true
		}
	}
	return Reservation{}, false
}

// Conflict details a pair of stored reservations that violate the no-overlap invariant.
type Conflict struct {
	ReservationID     string
	WithReservationID string
	Slot              Slot
}

// DetectConflicts scans a whole collection for invariant violations. The
// validation engine prevents these, so a non-empty result means the data was
// edited outside of the booking flow.
func DetectConflicts(reservations []Reservation) []Conflict {
	var conflicts []Conflict
	for i := range reservations {
		for j := i + 1; j < len(reservations); j++ {
			a, b := reservations[i], reservations[j]
			slot := SlotOf(a)
			if slot != SlotOf(b) || !a.Span().Overlaps(b.Span()) {
				continue
			}
			conflicts = append(conflicts, Conflict{
				ReservationID:     a.ID,
				WithReservationID: b.ID,
				Slot:              slot,
			})
		}
	}
	return conflicts
}
