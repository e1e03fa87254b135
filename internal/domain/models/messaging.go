// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

// MessageAction is the action of an indexing message.
type MessageAction string

// MessageAction constants
const (
	ActionCreated MessageAction = "created"
	ActionUpdated MessageAction = "updated"
	ActionDeleted MessageAction = "deleted"
)

// NATS subjects published by the assistant service.
const (
	// IndexContactSubject is the subject for contact indexing messages.
	IndexContactSubject = "lfx.index.contact"

	// IndexMeetingSubject is the subject for meeting indexing messages.
	IndexMeetingSubject = "lfx.index.meeting"

	// IndexMeetingMinutesSubject is the subject for meeting minutes indexing messages.
	IndexMeetingMinutesSubject = "lfx.index.meeting_minutes"

	// MeetingCreatedSubject is the subject for meeting lifecycle creation events.
	MeetingCreatedSubject = "lfx.office-assistant-service.meeting_created"

	// MeetingUpdatedSubject is the subject for meeting lifecycle update events.
	MeetingUpdatedSubject = "lfx.office-assistant-service.meeting_updated"

	// MeetingDeletedSubject is the subject for meeting lifecycle deletion events.
	MeetingDeletedSubject = "lfx.office-assistant-service.meeting_deleted"
)

// IndexerMessage is the envelope for index messages.
type IndexerMessage struct {
	Action  MessageAction     `json:"action"`
	Headers map[string]string `json:"headers,omitempty"`
	Data    any               `json:"data"`
	Tags    []string          `json:"tags,omitempty"`
}

// MeetingCreatedMessage is the payload of a meeting creation event.
type MeetingCreatedMessage struct {
	MeetingID string `json:"meeting_id"`
	ThreadID  string `json:"thread_id"`
	Owner     string `json:"owner"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

// MeetingUpdatedMessage is the payload of a meeting update event.
type MeetingUpdatedMessage struct {
	MeetingID string `json:"meeting_id"`
	Owner     string `json:"owner"`
	Changes   string `json:"changes,omitempty"`
}

// MeetingDeletedMessage is the payload of a meeting deletion event.
type MeetingDeletedMessage struct {
	MeetingID string `json:"meeting_id"`
	Owner     string `json:"owner"`
}
