package models

import (
	"fmt"
	"time"
)

// TimeWindow is a single [From, To) booking window on one weekday,
// both ends given as wall-clock "HH:MM" strings.
type TimeWindow struct {
	From string `bson:"from" json:"from"`
	To   string `bson:"to" json:"to"`
}

// WeeklyAvailability maps a full weekday name ("Sunday".."Saturday") to the
// provider's window for that day. A missing key means the provider does not
// take bookings on that weekday. At most one window per weekday.
type WeeklyAvailability map[string]TimeWindow

// ParseClock converts an "HH:MM" wall-clock string to minutes from midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes from midnight as an "HH:MM" string.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// WindowFor returns the window for a weekday, if the provider has one.
func (wa WeeklyAvailability) WindowFor(day time.Weekday) (TimeWindow, bool) {
	win, ok := wa[day.String()]
	return win, ok
}
