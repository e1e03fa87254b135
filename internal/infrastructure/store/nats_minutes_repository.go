// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/domain/models"
)

// NatsMinutesRepository is the NATS KV store repository for minutes documents.
type NatsMinutesRepository struct {
	*NatsBaseRepository[models.MinutesDocument]
}

// NewNatsMinutesRepository creates a new NATS KV store repository for minutes.
func NewNatsMinutesRepository(kvStore INatsKeyValue) *NatsMinutesRepository {
	return &NatsMinutesRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.MinutesDocument](kvStore, "minutes document"),
	}
}

func (r *NatsMinutesRepository) Create(ctx context.Context, minutes *models.MinutesDocument) error {
	return r.NatsBaseRepository.Create(ctx, minutes.ID, minutes)
}

func (r *NatsMinutesRepository) Get(ctx context.Context, minutesID string) (*models.MinutesDocument, error) {
	return r.NatsBaseRepository.Get(ctx, minutesID)
}

func (r *NatsMinutesRepository) GetWithRevision(ctx context.Context, minutesID string) (*models.MinutesDocument, uint64, error) {
	return r.NatsBaseRepository.GetWithRevision(ctx, minutesID)
}

func (r *NatsMinutesRepository) Update(ctx context.Context, minutes *models.MinutesDocument, revision uint64) error {
	return r.NatsBaseRepository.Update(ctx, minutes.ID, minutes, revision)
}

func (r *NatsMinutesRepository) Delete(ctx context.Context, minutesID string, revision uint64) error {
	return r.NatsBaseRepository.Delete(ctx, minutesID, revision)
}

func (r *NatsMinutesRepository) ListAll(ctx context.Context) ([]*models.MinutesDocument, error) {
	return r.ListEntities(ctx, "")
}
