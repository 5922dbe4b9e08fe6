package scheduling

import (
	"time"

	"medibook/models"
)

// SlotOptions tunes the slot walk. Zero values fall back to the platform
// defaults: a 6-day horizon starting tomorrow, 30-minute steps. Same-day
// slots are never generated; walk-ins are handled at the desk.
type SlotOptions struct {
	HorizonDays     int
	IntervalMinutes int
	StartOffsetDays int
	Now             time.Time
}

const (
	DefaultHorizonDays     = 6
	DefaultIntervalMinutes = 30
	defaultStartOffsetDays = 1
)

func (o SlotOptions) withDefaults() SlotOptions {
	if o.HorizonDays <= 0 {
		o.HorizonDays = DefaultHorizonDays
	}
	if o.IntervalMinutes <= 0 {
		o.IntervalMinutes = DefaultIntervalMinutes
	}
	if o.StartOffsetDays <= 0 {
		o.StartOffsetDays = defaultStartOffsetDays
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	return o
}

// GenerateSlots walks the horizon and produces one DaySlots per day. It is a
// pure function of its inputs: no I/O, no shared state, safe for any number
// of concurrent callers against the same snapshots.
//
// For each day the provider's weekday window is stepped from From to To in
// fixed intervals; the walk is half-open, so the last emitted start time is
// the last step strictly before To. Times already present in the booked
// index are skipped. A day without a window (or with a malformed one)
// yields an empty, unavailable day rather than an error.
func GenerateSlots(availability models.WeeklyAvailability, booked models.BookedSlotIndex, opts SlotOptions) []models.DaySlots {
	opts = opts.withDefaults()

	days := make([]models.DaySlots, 0, opts.HorizonDays)
	for offset := 0; offset < opts.HorizonDays; offset++ {
		day := opts.Now.AddDate(0, 0, opts.StartOffsetDays+offset)
		date := day.Format("2006-01-02")

		win, ok := availability.WindowFor(day.Weekday())
		if !ok {
			days = append(days, models.DaySlots{Date: date, Slots: []models.Slot{}})
			continue
		}
		from, errFrom := models.ParseClock(win.From)
		to, errTo := models.ParseClock(win.To)
		if errFrom != nil || errTo != nil || from >= to {
			days = append(days, models.DaySlots{Date: date, Slots: []models.Slot{}})
			continue
		}

		slots := []models.Slot{}
		for m := from; m < to; m += opts.IntervalMinutes {
			clock := models.FormatClock(m)
			if booked.Has(date, clock) {
				continue
			}
			slots = append(slots, models.Slot{Date: date, Time: clock})
		}
		days = append(days, models.DaySlots{Date: date, Available: true, Slots: slots})
	}
	return days
}
