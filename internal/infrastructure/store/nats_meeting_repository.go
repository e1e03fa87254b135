// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"log/slog"
	"strings"

	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/logging"
)

// NatsMeetingRepository is the NATS KV store repository for meeting records.
// Besides the record itself it maintains an owner index so that per-owner
// listings do not require scanning every record in the bucket.
type NatsMeetingRepository struct {
	*NatsBaseRepository[models.MeetingRecord]
	keyBuilder *KeyBuilder
}

// NewNatsMeetingRepository creates a new NATS KV store repository for meetings.
func NewNatsMeetingRepository(kvStore INatsKeyValue) *NatsMeetingRepository {
	return &NatsMeetingRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.MeetingRecord](kvStore, "meeting"),
		keyBuilder:         NewKeyBuilder(""),
	}
}

func (r *NatsMeetingRepository) Create(ctx context.Context, meeting *models.MeetingRecord) error {
	err := r.NatsBaseRepository.Create(ctx, meeting.ID, meeting)
	if err != nil {
		return err
	}

	// The index is best-effort: a missing index entry degrades ListByOwner
	// but never loses the record.
	indexKey := r.keyBuilder.IndexKeyEncoded(KeyPrefixIndexOwner, meeting.Owner, meeting.ID)
	if err := r.PutIndex(ctx, indexKey); err != nil {
		slog.WarnContext(ctx, "failed to create owner index for meeting",
			logging.ErrKey, err, "meeting_id", meeting.ID, "owner", meeting.Owner)
	}

	return nil
}

func (r *NatsMeetingRepository) Exists(ctx context.Context, meetingID string) (bool, error) {
	return r.NatsBaseRepository.Exists(ctx, meetingID)
}

func (r *NatsMeetingRepository) Get(ctx context.Context, meetingID string) (*models.MeetingRecord, error) {
	return r.NatsBaseRepository.Get(ctx, meetingID)
}

func (r *NatsMeetingRepository) GetWithRevision(ctx context.Context, meetingID string) (*models.MeetingRecord, uint64, error) {
	return r.NatsBaseRepository.GetWithRevision(ctx, meetingID)
}

func (r *NatsMeetingRepository) Update(ctx context.Context, meeting *models.MeetingRecord, revision uint64) error {
	return r.NatsBaseRepository.Update(ctx, meeting.ID, meeting, revision)
}

func (r *NatsMeetingRepository) Delete(ctx context.Context, meetingID string, revision uint64) error {
	meeting, err := r.NatsBaseRepository.Get(ctx, meetingID)
	if err != nil {
		return err
	}

	if err := r.NatsBaseRepository.Delete(ctx, meetingID, revision); err != nil {
		return err
	}

	indexKey := r.keyBuilder.IndexKeyEncoded(KeyPrefixIndexOwner, meeting.Owner, meetingID)
	if err := r.DeleteIndex(ctx, indexKey); err != nil {
		slog.WarnContext(ctx, "failed to delete owner index for meeting",
			logging.ErrKey, err, "meeting_id", meetingID, "owner", meeting.Owner)
	}

	return nil
}

// ListAll lists every meeting record, skipping the encoded index keys that
// share the bucket with the records.
func (r *NatsMeetingRepository) ListAll(ctx context.Context) ([]*models.MeetingRecord, error) {
	keys, err := r.ListKeys(ctx)
	if err != nil {
		return nil, err
	}

	var meetings []*models.MeetingRecord
	for _, key := range keys {
		if !strings.HasPrefix(key, "meeting_") {
			continue
		}

		meeting, err := r.NatsBaseRepository.Get(ctx, key)
		if err != nil {
			slog.WarnContext(ctx, "failed to get meeting, skipping",
				"key", key, logging.ErrKey, err)
			continue
		}

		meetings = append(meetings, meeting)
	}

	return meetings, nil
}

// ListByOwner lists meetings for a single owner using the owner index.
func (r *NatsMeetingRepository) ListByOwner(ctx context.Context, owner string) ([]*models.MeetingRecord, error) {
	keys, err := r.ListKeys(ctx)
	if err != nil {
		return nil, err
	}

	indexPrefix := "/" + KeyPrefixIndex + "/" + KeyPrefixIndexOwner + "/" + owner + "/"

	var meetings []*models.MeetingRecord
	for _, key := range keys {
		if !strings.Contains(key, ".") {
			continue
		}

		decoded, err := r.keyBuilder.DecodeKey(key)
		if err != nil {
			slog.WarnContext(ctx, "failed to decode index key, skipping",
				"encoded_key", key, logging.ErrKey, err)
			continue
		}

		if !strings.HasPrefix(decoded, indexPrefix) {
			continue
		}

		meetingID := strings.TrimPrefix(decoded, indexPrefix)
		meeting, err := r.NatsBaseRepository.Get(ctx, meetingID)
		if err != nil {
			slog.WarnContext(ctx, "failed to get indexed meeting, skipping",
				"meeting_id", meetingID, logging.ErrKey, err)
			continue
		}

		meetings = append(meetings, meeting)
	}

	return meetings, nil
}
