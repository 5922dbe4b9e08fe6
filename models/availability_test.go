package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"09:30", 570},
		{"17:00", 1020},
		{"23:59", 1439},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"", "9am", "24:00", "12:60", "12", "12:3"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatClockRoundTrip(t *testing.T) {
	for _, clock := range []string{"00:00", "09:30", "13:05", "23:30"} {
		m, err := ParseClock(clock)
		require.NoError(t, err)
		assert.Equal(t, clock, FormatClock(m))
	}
}

func TestWindowFor(t *testing.T) {
	weekly := WeeklyAvailability{
		"Monday": {From: "09:00", To: "17:00"},
	}

	win, ok := weekly.WindowFor(time.Monday)
	require.True(t, ok)
	assert.Equal(t, TimeWindow{From: "09:00", To: "17:00"}, win)

	_, ok = weekly.WindowFor(time.Tuesday)
	assert.False(t, ok)

	var empty WeeklyAvailability
	_, ok = empty.WindowFor(time.Monday)
	assert.False(t, ok)
}

func TestHoldsSlot(t *testing.T) {
	assert.True(t, HoldsSlot(StatusBooked))
	assert.True(t, HoldsSlot(StatusCompleted))
	assert.False(t, HoldsSlot(StatusCancelled))
}

func TestBookedSlotIndexHas(t *testing.T) {
	idx := BookedSlotIndex{
		"2026-03-02": {"09:00", "10:30"},
	}
	assert.True(t, idx.Has("2026-03-02", "09:00"))
	assert.False(t, idx.Has("2026-03-02", "09:30"))
	assert.False(t, idx.Has("2026-03-03", "09:00"))

	var empty BookedSlotIndex
	assert.False(t, empty.Has("2026-03-02", "09:00"))
}
