// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/nats-io/nats.go"

	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/infrastructure/calendar"
	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/logging"
)

// flags are the command line flags for the office assistant service.
type flags struct {
	Debug bool
	Port  string
	Bind  string
}

// environment are the environment variables for the office assistant service.
type environment struct {
	Port             string
	NatsURL          string
	GeminiAPIKey     string
	GeminiModel      string
	CalendarPlatform string
	AdminUsers       []string
	SMTP             smtpEnvironment
}

// smtpEnvironment holds the SMTP notification configuration. An empty host
// selects the logging-only email service.
type smtpEnvironment struct {
	Host     string
	Port     int
	From     string
	Username string
	Password string
}

// parseFlags parses command line flags for the office assistant service
func parseFlags(defaultPort string) flags {
	var debug = flag.Bool("d", false, "enable debug logging")
	var port = flag.String("p", defaultPort, "listen port")
	var bind = flag.String("bind", "*", "interface to bind on")

	flag.Usage = func() {
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()

	// Based on the debug flag, set the log level environment variable used by [logging.InitStructureLogConfig]
	if *debug {
		err := os.Setenv("LOG_LEVEL", "debug")
		if err != nil {
			slog.With(logging.ErrKey, err).Error("error setting log level")
			os.Exit(1)
		}
	}

	return flags{
		Debug: *debug,
		Port:  *port,
		Bind:  *bind,
	}
}

// parseEnv parses environment variables for the office assistant service
func parseEnv() environment {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = nats.DefaultURL
	}

	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		slog.Error("GEMINI_API_KEY environment variable is required but not set")
		os.Exit(1)
	}

	calendarPlatform := os.Getenv("CALENDAR_PLATFORM")
	if calendarPlatform == "" {
		calendarPlatform = calendar.PlatformSimulated
	}

	var adminUsers []string
	for _, user := range strings.Split(os.Getenv("ADMIN_USERS"), ",") {
		if trimmed := strings.TrimSpace(user); trimmed != "" {
			adminUsers = append(adminUsers, trimmed)
		}
	}

	return environment{
		Port:             port,
		NatsURL:          natsURL,
		GeminiAPIKey:     geminiAPIKey,
		GeminiModel:      os.Getenv("GEMINI_MODEL"),
		CalendarPlatform: calendarPlatform,
		AdminUsers:       adminUsers,
		SMTP:             parseSMTPEnv(),
	}
}

// parseSMTPEnv parses the SMTP configuration from environment variables
func parseSMTPEnv() smtpEnvironment {
	smtpPort := 587
	if raw := os.Getenv("SMTP_PORT"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			slog.With(logging.ErrKey, err, "port", raw).Error("invalid SMTP_PORT provided, using default")
		} else {
			smtpPort = parsed
		}
	}

	return smtpEnvironment{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     smtpPort,
		From:     os.Getenv("SMTP_FROM"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
	}
}
