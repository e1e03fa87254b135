// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package calendar

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/domain"
)

// PlatformSimulated is the platform name for the simulated calendar provider.
const PlatformSimulated = "simulated"

// simulatedEvent is a calendar event held in memory by the simulated provider.
type simulatedEvent struct {
	ID              string
	Title           string
	Start           time.Time
	DurationMinutes int
	Description     string
	AttendeeEmails  []string
}

// SimulatedProvider is an in-memory calendar backend. It behaves like a real
// provider for scheduling flows without any external credentials, which makes
// it the default for local development and tests.
type SimulatedProvider struct {
	mu     sync.RWMutex
	events map[string]*simulatedEvent
}

// NewSimulatedProvider creates a new simulated calendar provider.
func NewSimulatedProvider() *SimulatedProvider {
	return &SimulatedProvider{
		events: make(map[string]*simulatedEvent),
	}
}

// IsAuthenticated always reports true since no credentials are involved.
func (p *SimulatedProvider) IsAuthenticated(ctx context.Context) bool {
	return true
}

// CreateEvent records a new event and returns simulated links for it.
func (p *SimulatedProvider) CreateEvent(ctx context.Context, input domain.CreateEventInput) (*domain.CalendarEventResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	eventID := "sim_" + uuid.New().String()
	p.events[eventID] = &simulatedEvent{
		ID:              eventID,
		Title:           input.Title,
		Start:           input.Start,
		DurationMinutes: input.DurationMinutes,
		Description:     input.Description,
		AttendeeEmails:  append([]string{}, input.AttendeeEmails...),
	}

	return &domain.CalendarEventResult{
		Success:  true,
		EventID:  eventID,
		HTMLLink: fmt.Sprintf("https://calendar.example.com/event/%s", eventID),
		MeetLink: fmt.Sprintf("https://meet.example.com/%s", eventID),
	}, nil
}

// UpdateEvent moves an existing event to a new start time and duration.
func (p *SimulatedProvider) UpdateEvent(ctx context.Context, eventID string, start time.Time, durationMinutes int) (*domain.CalendarEventResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	event, exists := p.events[eventID]
	if !exists {
		return &domain.CalendarEventResult{
			Success:   false,
			ErrorText: fmt.Sprintf("event %s not found", eventID),
		}, nil
	}

	event.Start = start
	event.DurationMinutes = durationMinutes

	return &domain.CalendarEventResult{
		Success:  true,
		EventID:  eventID,
		HTMLLink: fmt.Sprintf("https://calendar.example.com/event/%s", eventID),
	}, nil
}

// UpdateEventAttendees replaces the attendee list of an existing event.
func (p *SimulatedProvider) UpdateEventAttendees(ctx context.Context, eventID string, attendeeEmails []string) (*domain.CalendarEventResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	event, exists := p.events[eventID]
	if !exists {
		return &domain.CalendarEventResult{
			Success:   false,
			ErrorText: fmt.Sprintf("event %s not found", eventID),
		}, nil
	}

	event.AttendeeEmails = append([]string{}, attendeeEmails...)

	return &domain.CalendarEventResult{
		Success:  true,
		EventID:  eventID,
		HTMLLink: fmt.Sprintf("https://calendar.example.com/event/%s", eventID),
	}, nil
}

// BusyIntervals returns the busy intervals for the day containing date.
func (p *SimulatedProvider) BusyIntervals(ctx context.Context, date time.Time) ([]domain.TimeInterval, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var intervals []domain.TimeInterval
	for _, event := range p.events {
		end := event.Start.Add(time.Duration(event.DurationMinutes) * time.Minute)
		if event.Start.Before(dayEnd) && end.After(dayStart) {
			intervals = append(intervals, domain.TimeInterval{Start: event.Start, End: end})
		}
	}

	return intervals, nil
}

// UpcomingEvents returns events starting at or after now, for inspection in
// development tooling.
func (p *SimulatedProvider) UpcomingEvents(now time.Time) []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var ids []string
	for id, event := range p.events {
		if !event.Start.Before(now) {
			ids = append(ids, id)
		}
	}

	return ids
}
