// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"
	"time"
)

// CreateEventInput carries the fields needed to create a calendar event.
type CreateEventInput struct {
	Title           string
	Start           time.Time
	DurationMinutes int
	Description     string
	AttendeeEmails  []string
}

// CalendarEventResult is the outcome of a calendar mutation. Success is
// reported in-band so that callers can distinguish "the provider said no"
// from "the provider call itself failed".
type CalendarEventResult struct {
	Success   bool
	EventID   string
	HTMLLink  string
	MeetLink  string
	ErrorText string
}

// TimeInterval is a [Start, End) interval of busy calendar time.
type TimeInterval struct {
	Start time.Time
	End   time.Time
}

// CalendarProvider is the contract for a calendar backend, real or simulated.
type CalendarProvider interface {
	IsAuthenticated(ctx context.Context) bool
	CreateEvent(ctx context.Context, input CreateEventInput) (*CalendarEventResult, error)
	UpdateEvent(ctx context.Context, eventID string, start time.Time, durationMinutes int) (*CalendarEventResult, error)
	UpdateEventAttendees(ctx context.Context, eventID string, attendeeEmails []string) (*CalendarEventResult, error)
	BusyIntervals(ctx context.Context, date time.Time) ([]TimeInterval, error)
}

// CalendarRegistry maps a platform name to its provider.
type CalendarRegistry interface {
	GetProvider(platform string) (CalendarProvider, error)
	RegisterProvider(platform string, provider CalendarProvider)
}
