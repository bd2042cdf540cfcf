// Package grid renders the weekly timetable matrix shown to users.
package grid

import (
	"fmt"
	"time"

	"github.com/example/room-booking/internal/booking"
)

// Layout fixes the grid axes: weekday columns and slot-start rows.
type Layout struct {
	Days  []time.Weekday
	Slots []booking.TimeOfDay
}

var defaultSlots = []string{
	"07:30", "08:20", "09:10", "10:10", "11:00", "11:50",
	"13:30", "14:20", "15:10", "16:20", "17:10", "18:00",
	"19:00", "19:50", "20:40", "21:30", "22:20", "23:00",
}

// DefaultLayout returns Monday to Saturday against the campus class periods.
func DefaultLayout() Layout {
	slots := make([]booking.TimeOfDay, len(defaultSlots))
	for i, s := range defaultSlots {
		slots[i] = booking.MustTimeOfDay(s)
	}
	return Layout{
		Days: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday, time.Saturday,
		},
		Slots: slots,
	}
}

// Cell is one (slot, day) intersection. Reservation is nil for empty cells.
type Cell struct {
	Reservation *booking.Reservation
	Color       string
	// Label is "Block-Room"; Detail is the subject or, failing that, the requester.
	Label  string
	Detail string
}

// Empty reports whether no reservation occupies the cell.
func (c Cell) Empty() bool { return c.Reservation == nil }

// Grid is the rendered matrix, indexed Cells[slot][day].
type Grid struct {
	Days  []time.Weekday
	Slots []booking.TimeOfDay
	Cells [][]Cell
}

// ColorKey identifies a reservation for color assignment.
func ColorKey(r booking.Reservation) string {
	return fmt.Sprintf("%s-%s-%s-%s", r.Block, r.RoomID, r.StartTime, booking.DayName(r.DayOfWeek()))
}

// Render computes the weekly grid. A cell shows the first reservation, in input
// order, whose weekday matches the column and whose [start, end) contains the
// slot start. Overlapping reservations never cause a failure; later ones are
// hidden. Colors are assigned on first encounter and reused for every cell of
// the same reservation within this call.
func Render(reservations []booking.Reservation, layout Layout, colors ColorFunc) Grid {
	if colors == nil {
		colors = RandomColors(nil)
	}
	assigned := make(map[string]string)

	g := Grid{
		Days:  append([]time.Weekday(nil), layout.Days...),
		Slots: append([]booking.TimeOfDay(nil), layout.Slots...),
		Cells: make([][]Cell, len(layout.Slots)),
	}

	for si, slot := range layout.Slots {
		row := make([]Cell, len(layout.Days))
		for di, day := range layout.Days {
			idx := occupant(reservations, day, slot)
			if idx < 0 {
				continue
			}
			res := reservations[idx]
			key := ColorKey(res)
			color, ok := assigned[key]
			if !ok {
				color = colors()
				assigned[key] = color
			}
			row[di] = Cell{
				Reservation: &res,
				Color:       color,
				Label:       res.Block + "-" + res.RoomID,
				Detail:      detail(res),
			}
		}
		g.Cells[si] = row
	}
	return g
}

func occupant(reservations []booking.Reservation, day time.Weekday, slot booking.TimeOfDay) int {
	for i, r := range reservations {
		if booking.DayAbbrev(r.DayOfWeek()) != booking.DayAbbrev(day) {
			continue
		}
		if r.Span().Contains(slot) {
			return i
		}
	}
	return -1
}

func detail(r booking.Reservation) string {
	if r.Subject != "" {
		return r.Subject
	}
	return r.RequesterName
}
