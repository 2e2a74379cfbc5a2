package utils

import (
	"time"
)

// AppointmentDateLayout is the wire format for appointment dates.
const AppointmentDateLayout = "2006-01-02"

func ParseAppointmentDate(dateStr string) (time.Time, error) {
	return time.ParseInLocation(AppointmentDateLayout, dateStr, time.Local)
}

func FormatAppointmentDate(t time.Time) string {
	return t.Format(AppointmentDateLayout)
}

func FormatTimeISO(t time.Time) string {
	return t.Format(time.RFC3339)
}

func ParseTimeISO(timeStr string) (time.Time, error) {
	return time.Parse(time.RFC3339, timeStr)
}

// StartOfDay returns local midnight of the supplied date.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999999999 of the supplied date. The booking
// capacity window is calendar-day based, not a rolling 24h.
func EndOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, 999999999, t.Location())
}

func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
