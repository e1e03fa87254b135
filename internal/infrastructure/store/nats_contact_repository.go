// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/domain/models"
)

// NatsContactRepository is the NATS KV store repository for directory contacts.
type NatsContactRepository struct {
	*NatsBaseRepository[models.Contact]
}

// NewNatsContactRepository creates a new NATS KV store repository for contacts.
func NewNatsContactRepository(kvStore INatsKeyValue) *NatsContactRepository {
	return &NatsContactRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.Contact](kvStore, "contact"),
	}
}

func (r *NatsContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	return r.NatsBaseRepository.Create(ctx, contact.ID, contact)
}

func (r *NatsContactRepository) Exists(ctx context.Context, contactID string) (bool, error) {
	return r.NatsBaseRepository.Exists(ctx, contactID)
}

func (r *NatsContactRepository) Get(ctx context.Context, contactID string) (*models.Contact, error) {
	return r.NatsBaseRepository.Get(ctx, contactID)
}

func (r *NatsContactRepository) GetWithRevision(ctx context.Context, contactID string) (*models.Contact, uint64, error) {
	return r.NatsBaseRepository.GetWithRevision(ctx, contactID)
}

func (r *NatsContactRepository) Update(ctx context.Context, contact *models.Contact, revision uint64) error {
	return r.NatsBaseRepository.Update(ctx, contact.ID, contact, revision)
}

func (r *NatsContactRepository) Delete(ctx context.Context, contactID string, revision uint64) error {
	return r.NatsBaseRepository.Delete(ctx, contactID, revision)
}

func (r *NatsContactRepository) ListAll(ctx context.Context) ([]*models.Contact, error) {
	return r.ListEntities(ctx, "")
}
