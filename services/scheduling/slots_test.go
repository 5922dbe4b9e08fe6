package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medibook/models"
)

// fixedNow is a Sunday, so the first horizon day is Monday.
var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestGenerateSlotsHalfOpenWalk(t *testing.T) {
	weekly := models.WeeklyAvailability{
		"Monday": {From: "09:00", To: "10:00"},
	}
	opts := SlotOptions{HorizonDays: 1, Now: fixedNow}

	days := GenerateSlots(weekly, nil, opts)
	require.Len(t, days, 1)

	day := days[0]
	assert.Equal(t, "2026-03-02", day.Date)
	assert.True(t, day.Available)
	// The window end is exclusive: 10:00 itself is never emitted.
	require.Len(t, day.Slots, 2)
	assert.Equal(t, "09:00", day.Slots[0].Time)
	assert.Equal(t, "09:30", day.Slots[1].Time)
}

func TestGenerateSlotsSkipsBookedTimes(t *testing.T) {
	weekly := models.WeeklyAvailability{
		"Monday": {From: "09:00", To: "10:00"},
	}
	booked := models.BookedSlotIndex{
		"2026-03-02": {"09:00"},
	}

	days := GenerateSlots(weekly, booked, SlotOptions{HorizonDays: 1, Now: fixedNow})
	require.Len(t, days, 1)
	require.Len(t, days[0].Slots, 1)
	assert.Equal(t, "09:30", days[0].Slots[0].Time)
}

func TestGenerateSlotsDayWithoutWindow(t *testing.T) {
	weekly := models.WeeklyAvailability{
		"Monday": {From: "09:00", To: "12:00"},
	}

	// Horizon covers Monday through Saturday; only Monday has a window.
	days := GenerateSlots(weekly, nil, SlotOptions{Now: fixedNow})
	require.Len(t, days, DefaultHorizonDays)

	assert.True(t, days[0].Available)
	assert.NotEmpty(t, days[0].Slots)
	for _, day := range days[1:] {
		assert.False(t, day.Available, "day %s should be unavailable", day.Date)
		assert.Empty(t, day.Slots)
	}
}

func TestGenerateSlotsMalformedWindow(t *testing.T) {
	cases := map[string]models.TimeWindow{
		"not a clock":    {From: "morning", To: "10:00"},
		"inverted":       {From: "11:00", To: "09:00"},
		"zero width":     {From: "09:00", To: "09:00"},
		"missing bounds": {},
	}
	for name, win := range cases {
		t.Run(name, func(t *testing.T) {
			weekly := models.WeeklyAvailability{"Monday": win}
			days := GenerateSlots(weekly, nil, SlotOptions{HorizonDays: 1, Now: fixedNow})
			require.Len(t, days, 1)
			assert.False(t, days[0].Available)
			assert.Empty(t, days[0].Slots)
		})
	}
}

func TestGenerateSlotsNeverOutsideWindow(t *testing.T) {
	weekly := models.WeeklyAvailability{
		"Monday":  {From: "09:00", To: "17:00"},
		"Tuesday": {From: "13:00", To: "15:30"},
	}

	days := GenerateSlots(weekly, nil, SlotOptions{HorizonDays: 2, Now: fixedNow})
	require.Len(t, days, 2)

	for i, bounds := range []struct{ from, to string }{
		{"09:00", "17:00"},
		{"13:00", "15:30"},
	} {
		for _, slot := range days[i].Slots {
			assert.GreaterOrEqual(t, slot.Time, bounds.from)
			assert.Less(t, slot.Time, bounds.to)
			assert.Equal(t, days[i].Date, slot.Date)
		}
	}
}

func TestGenerateSlotsCustomInterval(t *testing.T) {
	weekly := models.WeeklyAvailability{
		"Monday": {From: "09:00", To: "10:00"},
	}
	days := GenerateSlots(weekly, nil, SlotOptions{HorizonDays: 1, IntervalMinutes: 15, Now: fixedNow})
	require.Len(t, days, 1)

	var times []string
	for _, s := range days[0].Slots {
		times = append(times, s.Time)
	}
	assert.Equal(t, []string{"09:00", "09:15", "09:30", "09:45"}, times)
}
