// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package main is the office assistant service API that drives scheduling
// conversations over a chat endpoint and persists its state in NATS.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/infrastructure/messaging"
	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/infrastructure/nlu"
	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/service"
)

func main() {
	env := parseEnv()
	flags := parseFlags(env.Port)

	logging.InitStructureLogConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	parser, err := nlu.NewGeminiParser(ctx, env.GeminiAPIKey, env.GeminiModel)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up command parser")
		os.Exit(1)
	}

	emailService, err := setupEmailService(env)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up email service")
		os.Exit(1)
	}

	natsConn, err := setupNATS(env)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up NATS")
		os.Exit(1)
	}

	repos, err := setupRepositories(ctx, natsConn)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up key-value stores")
		os.Exit(1)
	}

	serviceConfig := service.ServiceConfig{
		Platform:   env.CalendarPlatform,
		AdminUsers: env.AdminUsers,
	}
	messageBuilder := messaging.NewMessageBuilder(natsConn)
	calendarRegistry := setupCalendarRegistry()

	directoryService := service.NewDirectoryService(repos.Contact, messageBuilder)
	ledgerService := service.NewLedgerService(repos.Meeting, repos.Thread, messageBuilder, serviceConfig)
	minutesService := service.NewMinutesService(repos.Minutes, ledgerService, messageBuilder)
	conversationService := service.NewConversationService(
		parser,
		directoryService,
		ledgerService,
		minutesService,
		calendarRegistry,
		emailService,
		serviceConfig,
	)

	api := NewAssistantAPI(conversationService, natsConn)
	httpServer := setupHTTPServer(flags, api)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		slog.With("addr", httpServer.Addr).Info("starting http server")
		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.With(logging.ErrKey, err).Error("error shutting down http server")
		}

		if err := natsConn.Drain(); err != nil {
			slog.With(logging.ErrKey, err).Error("error draining NATS connection")
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		slog.With(logging.ErrKey, err).Error("server exited with error")
		os.Exit(1)
	}
	slog.Info("graceful shutdown complete")
}
