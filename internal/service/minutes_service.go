// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/logging"
)

// MinutesService stores and searches minutes-of-meeting documents.
type MinutesService struct {
	minutesRepo    domain.MinutesRepository
	ledger         *LedgerService
	messageBuilder domain.MessageBuilder
}

// NewMinutesService creates a new minutes service.
func NewMinutesService(minutesRepo domain.MinutesRepository, ledger *LedgerService, messageBuilder domain.MessageBuilder) *MinutesService {
	return &MinutesService{
		minutesRepo:    minutesRepo,
		ledger:         ledger,
		messageBuilder: messageBuilder,
	}
}

// StoreMinutes persists a minutes document and links it to its meeting,
// marking the meeting completed. The meeting link is best-effort: a failure
// to update the ledger does not lose the stored document.
func (s *MinutesService) StoreMinutes(ctx context.Context, principal string, minutes *models.MinutesDocument) (*models.MinutesDocument, error) {
	if minutes == nil || strings.TrimSpace(minutes.Title) == "" {
		return nil, domain.NewValidationError("minutes title is required")
	}

	minutes.ID = "mom_" + uuid.New().String()
	minutes.CreatedAt = time.Now().UTC()

	if err := s.minutesRepo.Create(ctx, minutes); err != nil {
		return nil, err
	}

	if minutes.MeetingID != "" {
		completed := models.MeetingStatusCompleted
		_, err := s.ledger.UpdateMeeting(ctx, principal, minutes.MeetingID, models.MeetingUpdate{
			MinutesID: &minutes.ID,
			Status:    &completed,
		})
		if err != nil {
			slog.WarnContext(ctx, "failed to link minutes to meeting", logging.ErrKey, err,
				"minutes_id", minutes.ID, "meeting_id", minutes.MeetingID)
		}
	}

	if err := s.messageBuilder.SendIndexMeetingMinutes(ctx, models.ActionCreated, *minutes); err != nil {
		slog.WarnContext(ctx, "failed to send minutes index message", logging.ErrKey, err,
			"minutes_id", minutes.ID)
	}

	return minutes, nil
}

// GetMinutes returns the minutes document with the given ID.
func (s *MinutesService) GetMinutes(ctx context.Context, minutesID string) (*models.MinutesDocument, error) {
	return s.minutesRepo.Get(ctx, minutesID)
}

// ListMinutes returns all minutes documents, newest first.
func (s *MinutesService) ListMinutes(ctx context.Context) ([]*models.MinutesDocument, error) {
	documents, err := s.minutesRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(documents, func(i, j int) bool {
		return documents[i].CreatedAt.After(documents[j].CreatedAt)
	})
	return documents, nil
}

// SearchMinutes returns the documents matching the query as a substring of
// title, an attendee name, the content, or an action item.
func (s *MinutesService) SearchMinutes(ctx context.Context, query string) ([]*models.MinutesDocument, error) {
	documents, err := s.ListMinutes(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	var matches []*models.MinutesDocument
	for _, document := range documents {
		if minutesMatch(document, needle) {
			matches = append(matches, document)
		}
	}
	return matches, nil
}

func minutesMatch(document *models.MinutesDocument, needle string) bool {
	if strings.Contains(strings.ToLower(document.Title), needle) ||
		strings.Contains(strings.ToLower(document.Content), needle) {
		return true
	}
	for _, attendee := range document.Attendees {
		if strings.Contains(strings.ToLower(attendee), needle) {
			return true
		}
	}
	for _, item := range document.ActionItems {
		if strings.Contains(strings.ToLower(item.Description), needle) {
			return true
		}
	}
	return false
}

// FormatMinutes renders a minutes document as chat-friendly markdown.
func (s *MinutesService) FormatMinutes(document *models.MinutesDocument) string {
	var b strings.Builder

	fmt.Fprintf(&b, "**%s**", document.Title)
	if document.Date != "" {
		fmt.Fprintf(&b, " (%s)", document.Date)
	}
	b.WriteString("\n")

	if len(document.Attendees) > 0 {
		fmt.Fprintf(&b, "Attendees: %s\n", strings.Join(document.Attendees, ", "))
	}
	if document.Content != "" {
		fmt.Fprintf(&b, "\n%s\n", document.Content)
	}
	if len(document.KeyDiscussionPoints) > 0 {
		b.WriteString("\nKey discussion points:\n")
		for _, point := range document.KeyDiscussionPoints {
			fmt.Fprintf(&b, "- %s\n", point)
		}
	}
	if len(document.Decisions) > 0 {
		b.WriteString("\nDecisions:\n")
		for _, decision := range document.Decisions {
			fmt.Fprintf(&b, "- %s\n", decision)
		}
	}
	if len(document.ActionItems) > 0 {
		b.WriteString("\nAction items:\n")
		for _, item := range document.ActionItems {
			line := "- " + item.Description
			if item.Owner != "" {
				line += " (" + item.Owner
				if item.Deadline != "" {
					line += ", due " + item.Deadline
				}
				line += ")"
			} else if item.Deadline != "" {
				line += " (due " + item.Deadline + ")"
			}
			b.WriteString(line + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
