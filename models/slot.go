package models

// Slot is a candidate (date, time) pair at which an appointment could be
// booked.
type Slot struct {
	Date string `json:"date"` // "2006-01-02"
	Time string `json:"time"` // "15:04"
}

// DaySlots is one horizon day's worth of open slots. Available is false when
// the provider has no window on that weekday, so callers can tell an
// unavailable day from a fully booked one; both render Slots as empty.
type DaySlots struct {
	Date      string `json:"date"`
	Available bool   `json:"available"`
	Slots     []Slot `json:"slots"`
}

// BookedSlotIndex maps a slot date to the times currently held by
// non-cancelled appointments for a single provider. It is derived from the
// appointment collection on read and is never independently authoritative.
type BookedSlotIndex map[string][]string

// Has reports whether the given (date, time) is already held.
func (idx BookedSlotIndex) Has(date, clock string) bool {
	for _, t := range idx[date] {
		if t == clock {
			return true
		}
	}
	return false
}
