// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/domain/models"
)

// ContactRepository is the persistence contract for directory contacts.
type ContactRepository interface {
	Create(ctx context.Context, contact *models.Contact) error
	Exists(ctx context.Context, contactID string) (bool, error)
	Get(ctx context.Context, contactID string) (*models.Contact, error)
	GetWithRevision(ctx context.Context, contactID string) (*models.Contact, uint64, error)
	Update(ctx context.Context, contact *models.Contact, revision uint64) error
	Delete(ctx context.Context, contactID string, revision uint64) error
	ListAll(ctx context.Context) ([]*models.Contact, error)
}

// MeetingRepository is the persistence contract for meeting records.
type MeetingRepository interface {
	Create(ctx context.Context, meeting *models.MeetingRecord) error
	Exists(ctx context.Context, meetingID string) (bool, error)
	Get(ctx context.Context, meetingID string) (*models.MeetingRecord, error)
	GetWithRevision(ctx context.Context, meetingID string) (*models.MeetingRecord, uint64, error)
	Update(ctx context.Context, meeting *models.MeetingRecord, revision uint64) error
	Delete(ctx context.Context, meetingID string, revision uint64) error
	ListAll(ctx context.Context) ([]*models.MeetingRecord, error)
	ListByOwner(ctx context.Context, owner string) ([]*models.MeetingRecord, error)
}

// ThreadRepository is the persistence contract for meeting threads.
type ThreadRepository interface {
	Create(ctx context.Context, thread *models.MeetingThread) error
	Get(ctx context.Context, threadID string) (*models.MeetingThread, error)
	GetWithRevision(ctx context.Context, threadID string) (*models.MeetingThread, uint64, error)
	Update(ctx context.Context, thread *models.MeetingThread, revision uint64) error
	Delete(ctx context.Context, threadID string, revision uint64) error
	ListAll(ctx context.Context) ([]*models.MeetingThread, error)
}

// MinutesRepository is the persistence contract for minutes documents.
type MinutesRepository interface {
	Create(ctx context.Context, minutes *models.MinutesDocument) error
	Get(ctx context.Context, minutesID string) (*models.MinutesDocument, error)
	GetWithRevision(ctx context.Context, minutesID string) (*models.MinutesDocument, uint64, error)
	Update(ctx context.Context, minutes *models.MinutesDocument, revision uint64) error
	Delete(ctx context.Context, minutesID string, revision uint64) error
	ListAll(ctx context.Context) ([]*models.MinutesDocument, error)
}
