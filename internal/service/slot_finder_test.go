// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/domain"
)

func day(hour, minute int) time.Time {
	return time.Date(2026, 9, 7, hour, minute, 0, 0, time.Local)
}

func TestFindSlotsEmptyDay(t *testing.T) {
	slots := FindSlots(day(0, 0), 45, nil)

	require.NotEmpty(t, slots)
	assert.Equal(t, day(9, 0), slots[0].Start)
	assert.Equal(t, day(9, 45), slots[0].End)

	// The last candidate must still end inside working hours.
	last := slots[len(slots)-1]
	assert.False(t, last.End.After(day(18, 0)))
	assert.Equal(t, day(17, 0), last.Start)
}

func TestFindSlotsSkipsBusyIntervals(t *testing.T) {
	busy := []domain.TimeInterval{
		{Start: day(9, 0), End: day(10, 0)},
	}

	slots := FindSlots(day(0, 0), 45, busy)

	require.NotEmpty(t, slots)
	assert.Equal(t, day(10, 0), slots[0].Start, "slot starting when the busy interval ends is open")
	for _, slot := range slots {
		assert.False(t, slot.Start.Before(day(10, 0)))
	}
}

func TestFindSlotsBackToBackIsOpen(t *testing.T) {
	busy := []domain.TimeInterval{
		{Start: day(10, 0), End: day(10, 45)},
	}

	slots := FindSlots(day(0, 0), 45, busy)

	starts := make(map[time.Time]bool)
	for _, slot := range slots {
		starts[slot.Start] = true
	}
	assert.False(t, starts[day(10, 0)])
	assert.False(t, starts[day(10, 30)], "overlaps the tail of the busy interval")
	assert.True(t, starts[day(9, 0)], "ends exactly when the busy interval starts")
	assert.True(t, starts[day(11, 0)])
}

func TestFindSlotsZeroDurationDefaults(t *testing.T) {
	slots := FindSlots(day(0, 0), 0, nil)

	require.NotEmpty(t, slots)
	assert.Equal(t, 45*time.Minute, slots[0].End.Sub(slots[0].Start))
}

func TestFindFirstAvailable(t *testing.T) {
	busy := []domain.TimeInterval{
		{Start: day(9, 0), End: day(12, 0)},
	}

	slot, ok := FindFirstAvailable(day(0, 0), 30, busy)
	require.True(t, ok)
	assert.Equal(t, day(12, 0), slot.Start)
	assert.Equal(t, "12:00", slot.TimeLabel())
}

func TestFindFirstAvailableFullyBooked(t *testing.T) {
	busy := []domain.TimeInterval{
		{Start: day(9, 0), End: day(18, 0)},
	}

	_, ok := FindFirstAvailable(day(0, 0), 30, busy)
	assert.False(t, ok)
}
