// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"
	"time"
)

// EmailService defines the interface for sending meeting emails.
// Sends are best-effort from the scheduler's point of view: a failure is
// logged by the caller and never rolls back a committed meeting.
type EmailService interface {
	SendMeetingInvitation(ctx context.Context, invitation EmailInvitation) error
	SendMeetingUpdate(ctx context.Context, update EmailUpdate) error
	SendMeetingCancellation(ctx context.Context, cancellation EmailCancellation) error
}

// EmailInvitation contains the data needed to send a meeting invitation email
type EmailInvitation struct {
	RecipientEmail string
	RecipientName  string
	MeetingTitle   string
	StartTime      time.Time
	Duration       int // Duration in minutes
	Description    string
	JoinLink       string
	Organizer      string
	ICSAttachment  *EmailAttachment // ICS calendar attachment
}

// EmailUpdate contains the data needed to send a meeting update email
type EmailUpdate struct {
	RecipientEmail string
	RecipientName  string
	MeetingTitle   string
	StartTime      time.Time
	Duration       int // Duration in minutes
	JoinLink       string
	Organizer      string
	ChangeSummary  string
	ICSAttachment  *EmailAttachment
}

// EmailCancellation contains the data needed to send a meeting cancellation email
type EmailCancellation struct {
	RecipientEmail string
	RecipientName  string
	MeetingTitle   string
	StartTime      time.Time
	Duration       int // Duration in minutes
	Organizer      string
	Reason         string // Optional reason for cancellation
}

// EmailAttachment represents a file attachment for an email
type EmailAttachment struct {
	Filename    string // Name of the attachment file
	ContentType string // MIME type of the attachment
	Content     string // Base64 encoded content
}
