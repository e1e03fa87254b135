// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// Scheduling defaults
const (
	// DefaultMeetingDurationMinutes is applied when a meeting is committed without a duration
	DefaultMeetingDurationMinutes = 45

	// WorkingHoursStart is the hour (24h clock) at which the slot finder begins scanning
	WorkingHoursStart = 9

	// WorkingHoursEnd is the hour (24h clock) at which the slot finder stops scanning
	WorkingHoursEnd = 18

	// SlotIncrementMinutes is the step between candidate slot start times
	SlotIncrementMinutes = 30
)

// Date and time layouts used for all persisted meeting schedules
const (
	// DateLayout is the wire format for meeting dates
	DateLayout = "2006-01-02"

	// TimeLayout is the wire format for meeting start times
	TimeLayout = "15:04"
)
