// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/domain/models"
)

// CommandParser converts free-text user messages into structured commands.
// Implementations must degrade gracefully: a parser failure yields a
// general-chat command rather than an error that would crash the turn.
type CommandParser interface {
	// ParseCommand classifies a message and extracts scheduling fields,
	// using recent conversation history for context.
	ParseCommand(ctx context.Context, text string, history []models.ChatMessage) (*models.ParsedCommand, error)

	// ClassifyConfirmation decides whether a reply to a confirmation prompt
	// confirms, cancels, or modifies the pending meeting. Called only when
	// the lexical fast path cannot decide.
	ClassifyConfirmation(ctx context.Context, text string) (models.ConfirmationDecision, error)
}
