// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import (
	"fmt"
	"time"
)

// MeetingStatus is the lifecycle status of a meeting record.
type MeetingStatus string

// MeetingStatus constants
const (
	MeetingStatusScheduled MeetingStatus = "scheduled"
	MeetingStatusCompleted MeetingStatus = "completed"
	MeetingStatusCancelled MeetingStatus = "cancelled"
)

// Valid reports whether the status is one of the known values.
func (s MeetingStatus) Valid() bool {
	switch s {
	case MeetingStatusScheduled, MeetingStatusCompleted, MeetingStatusCancelled:
		return true
	}
	return false
}

// MeetingRecord is the persisted representation of a committed meeting.
// Participants and ParticipantEmails are parallel arrays: index i of one
// corresponds to index i of the other.
type MeetingRecord struct {
	ID                string        `json:"id"`
	ThreadID          string        `json:"thread_id"`
	ParentMeetingID   string        `json:"parent_meeting_id,omitempty"`
	Owner             string        `json:"owner"`
	Title             string        `json:"title"`
	Date              string        `json:"date"` // YYYY-MM-DD
	Time              string        `json:"time"` // HH:MM, 24h
	DurationMinutes   int           `json:"duration_minutes"`
	Participants      []string      `json:"participants"`
	ParticipantEmails []string      `json:"participant_emails"`
	Description       string        `json:"description,omitempty"`
	CalendarEventID   string        `json:"calendar_event_id,omitempty"`
	CalendarEventLink string        `json:"calendar_event_link,omitempty"`
	MeetLink          string        `json:"meet_link,omitempty"`
	MinutesID         string        `json:"minutes_id,omitempty"`
	Status            MeetingStatus `json:"status"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// StartEnd parses the record's date and time into a concrete [start, end)
// interval. Records whose schedule cannot be parsed are considered malformed.
func (m *MeetingRecord) StartEnd() (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02 15:04", m.Date+" "+m.Time, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("malformed meeting schedule %q %q: %w", m.Date, m.Time, err)
	}
	end := start.Add(time.Duration(m.DurationMinutes) * time.Minute)
	return start, end, nil
}

// Tags generates a consistent set of searchable tags for the meeting.
func (m *MeetingRecord) Tags() []string {
	var tags []string
	if m.ID != "" {
		tags = append(tags, m.ID)
	}
	if m.Title != "" {
		tags = append(tags, m.Title)
	}
	if m.Owner != "" {
		tags = append(tags, m.Owner)
	}
	tags = append(tags, m.Participants...)
	return tags
}

// MeetingThread groups a root meeting with its follow-ups. The meeting ID
// list is append-only, holds no duplicates, and is never empty once created.
type MeetingThread struct {
	ID         string    `json:"id"`
	MeetingIDs []string  `json:"meeting_ids"`
	CreatedAt  time.Time `json:"created_at"`
}

// Contains reports whether the thread already holds the given meeting ID.
func (t *MeetingThread) Contains(meetingID string) bool {
	for _, id := range t.MeetingIDs {
		if id == meetingID {
			return true
		}
	}
	return false
}

// Append adds a meeting ID to the thread if not already present.
func (t *MeetingThread) Append(meetingID string) {
	if !t.Contains(meetingID) {
		t.MeetingIDs = append(t.MeetingIDs, meetingID)
	}
}

// Remove deletes a meeting ID from the thread, reporting whether it was present.
func (t *MeetingThread) Remove(meetingID string) bool {
	for i, id := range t.MeetingIDs {
		if id == meetingID {
			t.MeetingIDs = append(t.MeetingIDs[:i], t.MeetingIDs[i+1:]...)
			return true
		}
	}
	return false
}

// MeetingUpdate carries the fields that may be changed on an existing
// meeting record. Nil pointers and nil slices leave the current value
// untouched; Participants and ParticipantEmails must be set together to
// preserve the parallel-array invariant.
type MeetingUpdate struct {
	Title             *string        `json:"title,omitempty"`
	Date              *string        `json:"date,omitempty"`
	Time              *string        `json:"time,omitempty"`
	DurationMinutes   *int           `json:"duration_minutes,omitempty"`
	Description       *string        `json:"description,omitempty"`
	Participants      []string       `json:"participants,omitempty"`
	ParticipantEmails []string       `json:"participant_emails,omitempty"`
	CalendarEventID   *string        `json:"calendar_event_id,omitempty"`
	CalendarEventLink *string        `json:"calendar_event_link,omitempty"`
	MeetLink          *string        `json:"meet_link,omitempty"`
	MinutesID         *string        `json:"minutes_id,omitempty"`
	Status            *MeetingStatus `json:"status,omitempty"`
}
