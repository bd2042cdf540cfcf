package booking

import (
	"strings"
	"time"
)

// DayName returns the full English weekday name. Indexing is Sunday-first,
// matching time.Weekday (0 = Sunday .. 6 = Saturday).
func DayName(day time.Weekday) string {
	return day.String()
}

// DayAbbrev returns the three letter abbreviation used as a grid column label.
func DayAbbrev(day time.Weekday) string {
	return day.String()[:3]
}

// ParseDayName resolves a full or abbreviated English weekday name.
func ParseDayName(name string) (time.Weekday, bool) {
	name = strings.TrimSpace(name)
	if len(name) < 3 {
		return 0, false
	}
	for day := time.Sunday; day <= time.Saturday; day++ {
		full := day.String()
		if strings.EqualFold(name, full) || strings.EqualFold(name, full[:3]) {
			return day, true
		}
	}
	return 0, false
}

// IsWeekend reports whether bookings are disallowed on the given day.
func IsWeekend(day time.Weekday) bool {
	return day == time.Saturday || day == time.Sunday
}

// Period is a coarse time-of-day bucket used to filter reservations.
type Period string

const (
	// PeriodAny matches every reservation.
	PeriodAny Period = ""
	// PeriodMorning covers 07:00 to 11:59.
	PeriodMorning Period = "morning"
	// PeriodAfternoon covers 13:00 to 17:59.
	PeriodAfternoon Period = "afternoon"
	// PeriodEvening covers 19:00 to 22:59.
	PeriodEvening Period = "evening"
)

type periodWindow struct {
	period Period
	from   TimeOfDay
	to     TimeOfDay // inclusive
}

var periodWindows = []periodWindow{
	{PeriodMorning, NewTimeOfDay(7, 0), NewTimeOfDay(11, 59)},
	{PeriodAfternoon, NewTimeOfDay(13, 0), NewTimeOfDay(17, 59)},
	{PeriodEvening, NewTimeOfDay(19, 0), NewTimeOfDay(22, 59)},
}

// ParsePeriod validates a period name. The empty string is PeriodAny.
func ParsePeriod(value string) (Period, bool) {
	p := Period(strings.ToLower(strings.TrimSpace(value)))
	if p == PeriodAny {
		return PeriodAny, true
	}
	for _, w := range periodWindows {
		if w.period == p {
			return p, true
		}
	}
	return PeriodAny, false
}

// PeriodOf returns the bucket containing t. Times in the gaps between windows
// (for example 12:30) belong to no period.
func PeriodOf(t TimeOfDay) (Period, bool) {
	for _, w := range periodWindows {
		if t >= w.from && t <= w.to {
			return w.period, true
		}
	}
	return PeriodAny, false
}

// Matches reports whether t passes a filter on p.
func (p Period) Matches(t TimeOfDay) bool {
	if p == PeriodAny {
		return true
	}
	got, ok := PeriodOf(t)
	return ok && got == p
}
