// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/infrastructure/calendar"
	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/infrastructure/email"
	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/infrastructure/store"
)

// setupNATS establishes the NATS connection used for both the KV stores and
// message publishing.
func setupNATS(env environment) (*nats.Conn, error) {
	natsConn, err := nats.Connect(env.NatsURL,
		nats.Name("lfx-v2-office-assistant-service"),
		nats.Timeout(10*time.Second),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", env.NatsURL, err)
	}
	return natsConn, nil
}

// repositories bundles the KV-backed stores of the service.
type repositories struct {
	Contact domain.ContactRepository
	Meeting domain.MeetingRepository
	Thread  domain.ThreadRepository
	Minutes domain.MinutesRepository
}

// setupRepositories creates or binds the JetStream KV buckets and wraps them
// in the typed repositories.
func setupRepositories(ctx context.Context, natsConn *nats.Conn) (*repositories, error) {
	js, err := jetstream.New(natsConn)
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	buckets := make(map[string]jetstream.KeyValue)
	for _, bucket := range []string{
		store.KVStoreNameContacts,
		store.KVStoreNameMeetings,
		store.KVStoreNameMeetingThreads,
		store.KVStoreNameMeetingMinutes,
	} {
		kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
			Bucket:  bucket,
			History: 20,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to bind KV bucket %s: %w", bucket, err)
		}
		buckets[bucket] = kv
	}

	return &repositories{
		Contact: store.NewNatsContactRepository(buckets[store.KVStoreNameContacts]),
		Meeting: store.NewNatsMeetingRepository(buckets[store.KVStoreNameMeetings]),
		Thread:  store.NewNatsThreadRepository(buckets[store.KVStoreNameMeetingThreads]),
		Minutes: store.NewNatsMinutesRepository(buckets[store.KVStoreNameMeetingMinutes]),
	}, nil
}

// setupEmailService selects the SMTP service when a host is configured and
// the logging-only service otherwise.
func setupEmailService(env environment) (domain.EmailService, error) {
	if env.SMTP.Host == "" {
		return email.NewNoOpService(), nil
	}
	return email.NewSMTPService(email.SMTPConfig{
		Host:     env.SMTP.Host,
		Port:     env.SMTP.Port,
		From:     env.SMTP.From,
		Username: env.SMTP.Username,
		Password: env.SMTP.Password,
	})
}

// setupCalendarRegistry registers the available calendar providers.
func setupCalendarRegistry() domain.CalendarRegistry {
	registry := calendar.NewRegistry()
	registry.RegisterProvider(calendar.PlatformSimulated, calendar.NewSimulatedProvider())
	return registry
}
