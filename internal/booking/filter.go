package booking

import (
	"sort"
	"strings"
)

// RoomFilter narrows a room listing. Zero values pass everything.
type RoomFilter struct {
	Block       string
	Type        RoomType
	MinCapacity int
}

// FilterRooms returns the rooms matching every non-empty criterion, keeping order.
func FilterRooms(rooms []Room, f RoomFilter) []Room {
	out := make([]Room, 0, len(rooms))
	for _, r := range rooms {
		if f.Block != "" && r.Block != f.Block {
			continue
		}
		if f.Type != "" && r.RoomType != f.Type {
			continue
		}
		if f.MinCapacity > 0 && r.Capacity < f.MinCapacity {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ReservationFilter narrows a reservation listing. Zero values pass everything.
type ReservationFilter struct {
	// RequesterName is matched case-insensitively as a substring.
	RequesterName string
	Block         string
	Period        Period
}

// FilterReservations returns the reservations matching every non-empty criterion.
func FilterReservations(reservations []Reservation, f ReservationFilter) []Reservation {
	needle := strings.ToLower(strings.TrimSpace(f.RequesterName))
	out := make([]Reservation, 0, len(reservations))
	for _, r := range reservations {
		if needle != "" && !strings.Contains(strings.ToLower(r.RequesterName), needle) {
			continue
		}
		if f.Block != "" && r.Block != f.Block {
			continue
		}
		if !f.Period.Matches(r.StartTime) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SortByStartDateTime orders reservations by start date then start time.
// Ties keep their relative order.
func SortByStartDateTime(reservations []Reservation) {
	sort.SliceStable(reservations, func(i, j int) bool {
		a, b := reservations[i], reservations[j]
		if c := a.StartDate.Compare(b.StartDate); c != 0 {
			return c < 0
		}
		return a.StartTime < b.StartTime
	})
}
