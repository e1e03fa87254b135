// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"time"

	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-office-assistant-service/pkg/constants"
)

// Slot is a candidate meeting interval inside working hours.
type Slot struct {
	Start time.Time
	End   time.Time
}

// TimeLabel returns the slot start formatted for display in a chat reply.
func (s Slot) TimeLabel() string {
	return s.Start.Format(constants.TimeLayout)
}

// FindSlots returns the open slots on the given date that fit the requested
// duration. Candidates start at the top of working hours and advance in
// fixed increments; a candidate is open when it overlaps none of the busy
// intervals. A zero duration uses the default meeting length.
func FindSlots(date time.Time, durationMinutes int, busy []domain.TimeInterval) []Slot {
	if durationMinutes <= 0 {
		durationMinutes = constants.DefaultMeetingDurationMinutes
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(),
		constants.WorkingHoursStart, 0, 0, 0, date.Location())
	dayEnd := time.Date(date.Year(), date.Month(), date.Day(),
		constants.WorkingHoursEnd, 0, 0, 0, date.Location())
	duration := time.Duration(durationMinutes) * time.Minute
	step := time.Duration(constants.SlotIncrementMinutes) * time.Minute

	var slots []Slot
	for start := dayStart; !start.Add(duration).After(dayEnd); start = start.Add(step) {
		end := start.Add(duration)
		if !overlapsAny(start, end, busy) {
			slots = append(slots, Slot{Start: start, End: end})
		}
	}
	return slots
}

// FindFirstAvailable returns the earliest open slot on the date, or false
// when the day is fully booked.
func FindFirstAvailable(date time.Time, durationMinutes int, busy []domain.TimeInterval) (Slot, bool) {
	slots := FindSlots(date, durationMinutes, busy)
	if len(slots) == 0 {
		return Slot{}, false
	}
	return slots[0], true
}

// overlapsAny reports whether [start, end) intersects any busy interval.
// Intervals are half-open, so a slot that starts exactly when a busy
// interval ends is open.
func overlapsAny(start, end time.Time, busy []domain.TimeInterval) bool {
	for _, interval := range busy {
		if start.Before(interval.End) && end.After(interval.Start) {
			return true
		}
	}
	return false
}
