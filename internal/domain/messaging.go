// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/domain/models"
)

// ContactIndexSender publishes indexing messages for directory contacts.
type ContactIndexSender interface {
	SendIndexContact(ctx context.Context, action models.MessageAction, data models.Contact) error
	SendDeleteIndexContact(ctx context.Context, data string) error
}

// MeetingIndexSender publishes indexing messages for meeting records.
type MeetingIndexSender interface {
	SendIndexMeeting(ctx context.Context, action models.MessageAction, data models.MeetingRecord) error
	SendDeleteIndexMeeting(ctx context.Context, data string) error
}

// MinutesIndexSender publishes indexing messages for minutes documents.
type MinutesIndexSender interface {
	SendIndexMeetingMinutes(ctx context.Context, action models.MessageAction, data models.MinutesDocument) error
	SendDeleteIndexMeetingMinutes(ctx context.Context, data string) error
}

// MeetingEventSender publishes lifecycle events consumed by other services.
type MeetingEventSender interface {
	SendMeetingCreated(ctx context.Context, data models.MeetingCreatedMessage) error
	SendMeetingUpdated(ctx context.Context, data models.MeetingUpdatedMessage) error
	SendMeetingDeleted(ctx context.Context, data models.MeetingDeletedMessage) error
}

// MessageBuilder aggregates all message publishing contracts.
type MessageBuilder interface {
	ContactIndexSender
	MeetingIndexSender
	MinutesIndexSender
	MeetingEventSender
}
