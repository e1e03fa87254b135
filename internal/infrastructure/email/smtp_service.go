// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package email sends meeting notifications over SMTP with HTML and text
// bodies rendered from embedded templates.
package email

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/logging"
)

// SMTPService implements the EmailService interface using SMTP
type SMTPService struct {
	config    SMTPConfig
	templates *TemplateManager
	ics       MeetingICSGenerator
}

// SMTPConfig holds the SMTP server configuration
type SMTPConfig struct {
	Host     string
	Port     int
	From     string
	Username string // Optional for authenticated SMTP
	Password string // Optional for authenticated SMTP
}

// NewSMTPService creates a new SMTP email service
func NewSMTPService(config SMTPConfig) (*SMTPService, error) {
	templates, err := NewTemplateManager()
	if err != nil {
		return nil, err
	}

	return &SMTPService{
		config:    config,
		templates: templates,
		ics:       NewICSGenerator(),
	}, nil
}

// SendMeetingInvitation sends an invitation email to a meeting attendee
func (s *SMTPService) SendMeetingInvitation(ctx context.Context, invitation domain.EmailInvitation) error {
	ctx = logging.AppendCtx(ctx, slog.String("recipient_email", invitation.RecipientEmail))
	ctx = logging.AppendCtx(ctx, slog.String("meeting_title", invitation.MeetingTitle))

	rendered, err := s.templates.RenderInvitation(invitation)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render invitation templates", logging.ErrKey, err)
		return err
	}

	subject := fmt.Sprintf("Invitation: %s", invitation.MeetingTitle)

	var message string
	if invitation.ICSAttachment != nil {
		message = buildEmailMessageWithAttachment(invitation.RecipientEmail, subject,
			rendered.HTML, rendered.Text, invitation.ICSAttachment, s.config)
	} else {
		message = buildEmailMessage(invitation.RecipientEmail, subject,
			rendered.HTML, rendered.Text, s.config)
	}

	if err := sendEmailMessage(invitation.RecipientEmail, message, s.config); err != nil {
		slog.ErrorContext(ctx, "failed to send invitation email", logging.ErrKey, err)
		return err
	}

	slog.InfoContext(ctx, "invitation email sent successfully")
	return nil
}

// SendMeetingUpdate sends an update email to a meeting attendee
func (s *SMTPService) SendMeetingUpdate(ctx context.Context, update domain.EmailUpdate) error {
	ctx = logging.AppendCtx(ctx, slog.String("recipient_email", update.RecipientEmail))
	ctx = logging.AppendCtx(ctx, slog.String("meeting_title", update.MeetingTitle))

	rendered, err := s.templates.RenderUpdate(update)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render update templates", logging.ErrKey, err)
		return err
	}

	subject := fmt.Sprintf("Updated: %s", update.MeetingTitle)

	var message string
	if update.ICSAttachment != nil {
		message = buildEmailMessageWithAttachment(update.RecipientEmail, subject,
			rendered.HTML, rendered.Text, update.ICSAttachment, s.config)
	} else {
		message = buildEmailMessage(update.RecipientEmail, subject,
			rendered.HTML, rendered.Text, s.config)
	}

	if err := sendEmailMessage(update.RecipientEmail, message, s.config); err != nil {
		slog.ErrorContext(ctx, "failed to send update email", logging.ErrKey, err)
		return err
	}

	slog.InfoContext(ctx, "update email sent successfully")
	return nil
}

// SendMeetingCancellation sends a cancellation email to a meeting attendee
func (s *SMTPService) SendMeetingCancellation(ctx context.Context, cancellation domain.EmailCancellation) error {
	ctx = logging.AppendCtx(ctx, slog.String("recipient_email", cancellation.RecipientEmail))
	ctx = logging.AppendCtx(ctx, slog.String("meeting_title", cancellation.MeetingTitle))

	rendered, err := s.templates.RenderCancellation(cancellation)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render cancellation templates", logging.ErrKey, err)
		return err
	}

	subject := fmt.Sprintf("Meeting Cancellation: %s", cancellation.MeetingTitle)
	message := buildEmailMessage(cancellation.RecipientEmail, subject,
		rendered.HTML, rendered.Text, s.config)

	if err := sendEmailMessage(cancellation.RecipientEmail, message, s.config); err != nil {
		slog.ErrorContext(ctx, "failed to send cancellation email", logging.ErrKey, err)
		return err
	}

	slog.InfoContext(ctx, "cancellation email sent successfully")
	return nil
}

// BuildInvitationICSAttachment generates an ICS calendar attachment for an
// invitation so mail clients can add the event directly.
func (s *SMTPService) BuildInvitationICSAttachment(invitation domain.EmailInvitation, meetingID string) (*domain.EmailAttachment, error) {
	content, err := s.ics.GenerateMeetingInvitationICS(ICSMeetingInvitationParams{
		MeetingID:       meetingID,
		MeetingTitle:    invitation.MeetingTitle,
		Description:     invitation.Description,
		StartTime:       invitation.StartTime,
		DurationMinutes: invitation.Duration,
		JoinLink:        invitation.JoinLink,
		RecipientEmail:  invitation.RecipientEmail,
		OrganizerName:   invitation.Organizer,
	})
	if err != nil {
		return nil, err
	}

	return &domain.EmailAttachment{
		Filename:    "invite.ics",
		ContentType: "text/calendar; method=REQUEST",
		Content:     base64.StdEncoding.EncodeToString([]byte(content)),
	}, nil
}
