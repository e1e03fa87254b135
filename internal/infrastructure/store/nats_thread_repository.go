// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/domain/models"
)

// NatsThreadRepository is the NATS KV store repository for meeting threads.
type NatsThreadRepository struct {
	*NatsBaseRepository[models.MeetingThread]
}

// NewNatsThreadRepository creates a new NATS KV store repository for threads.
func NewNatsThreadRepository(kvStore INatsKeyValue) *NatsThreadRepository {
	return &NatsThreadRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.MeetingThread](kvStore, "thread"),
	}
}

func (r *NatsThreadRepository) Create(ctx context.Context, thread *models.MeetingThread) error {
	return r.NatsBaseRepository.Create(ctx, thread.ID, thread)
}

func (r *NatsThreadRepository) Get(ctx context.Context, threadID string) (*models.MeetingThread, error) {
	return r.NatsBaseRepository.Get(ctx, threadID)
}

func (r *NatsThreadRepository) GetWithRevision(ctx context.Context, threadID string) (*models.MeetingThread, uint64, error) {
	return r.NatsBaseRepository.GetWithRevision(ctx, threadID)
}

func (r *NatsThreadRepository) Update(ctx context.Context, thread *models.MeetingThread, revision uint64) error {
	return r.NatsBaseRepository.Update(ctx, thread.ID, thread, revision)
}

func (r *NatsThreadRepository) Delete(ctx context.Context, threadID string, revision uint64) error {
	return r.NatsBaseRepository.Delete(ctx, threadID, revision)
}

func (r *NatsThreadRepository) ListAll(ctx context.Context) ([]*models.MeetingThread, error) {
	return r.ListEntities(ctx, "")
}
