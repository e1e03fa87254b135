// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package email

import (
	"fmt"
	"strings"
	"time"
)

// ICS constants for consistent values across all generated ICS files
const (
	ICSProdID         = "-//Linux Foundation//LFX Office Assistant Service//EN"
	ICALVersion       = "2.0"
	ICALScale         = "GREGORIAN"
	ICALMaxLineLength = 75 // this is arbitrarily set to 75 characters to avoid long lines
)

// UTF-8 byte masks for line folding safety
const (
	UTF8TwoBitMask         = 0xC0 // Mask to isolate first two bits (11000000)
	UTF8ContinuationPrefix = 0x80 // UTF-8 continuation byte prefix (10000000)
)

// MeetingICSGenerator is the interface for generating ICS calendar files
type MeetingICSGenerator interface {
	GenerateMeetingInvitationICS(params ICSMeetingInvitationParams) (string, error)
	GenerateMeetingCancellationICS(params ICSMeetingCancellationParams) (string, error)
}

// ICSGenerator generates ICS (iCalendar) files for meeting invitations
type ICSGenerator struct{}

// NewICSGenerator creates a new ICS generator
func NewICSGenerator() *ICSGenerator {
	return &ICSGenerator{}
}

// Ensure [ICSGenerator] implements [MeetingICSGenerator]
var _ MeetingICSGenerator = (*ICSGenerator)(nil)

// ICSMeetingInvitationParams contains the information needed to generate an
// ICS file for a meeting invitation
type ICSMeetingInvitationParams struct {
	MeetingID       string // Unique meeting identifier for consistent ICS UID
	MeetingTitle    string
	Description     string
	StartTime       time.Time
	DurationMinutes int
	JoinLink        string
	RecipientEmail  string
	OrganizerEmail  string
	OrganizerName   string
	Sequence        int // ICS sequence number for calendar updates
}

// GenerateMeetingInvitationICS generates an ICS file content for a meeting invitation
func (g *ICSGenerator) GenerateMeetingInvitationICS(params ICSMeetingInvitationParams) (string, error) {
	if params.MeetingID == "" {
		return "", fmt.Errorf("meeting ID is required for ICS generation")
	}

	dtstamp := time.Now().UTC().Format("20060102T150405Z")
	startUTC := params.StartTime.UTC()
	endUTC := startUTC.Add(time.Duration(params.DurationMinutes) * time.Minute)

	dtstart := startUTC.Format("20060102T150405Z")
	dtend := endUTC.Format("20060102T150405Z")

	var ics strings.Builder

	// Calendar header
	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString(fmt.Sprintf("VERSION:%s\r\n", ICALVersion))
	ics.WriteString(fmt.Sprintf("PRODID:%s\r\n", ICSProdID))
	ics.WriteString(fmt.Sprintf("CALSCALE:%s\r\n", ICALScale))
	ics.WriteString("METHOD:REQUEST\r\n")

	// Event
	ics.WriteString("BEGIN:VEVENT\r\n")
	ics.WriteString(fmt.Sprintf("UID:%s\r\n", params.MeetingID))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", dtstamp))
	if params.OrganizerEmail != "" {
		ics.WriteString(fmt.Sprintf("ORGANIZER;CN=%s:mailto:%s\r\n", params.OrganizerName, params.OrganizerEmail))
	}
	ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", dtstart))
	ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", dtend))

	// Meeting details
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICSText(params.MeetingTitle)))

	description := params.Description
	if params.JoinLink != "" {
		if description != "" {
			description += "\n\n"
		}
		description += "Join Meeting: " + params.JoinLink
	}
	if description != "" {
		ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICSText(description)))
	}

	if params.JoinLink != "" {
		ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", params.JoinLink))
		ics.WriteString(fmt.Sprintf("URL:%s\r\n", params.JoinLink))
	}

	// Attendee
	if params.RecipientEmail != "" {
		ics.WriteString(fmt.Sprintf("ATTENDEE;CUTYPE=INDIVIDUAL;ROLE=REQ-PARTICIPANT;PARTSTAT=NEEDS-ACTION;RSVP=TRUE;CN=%s:mailto:%s\r\n",
			params.RecipientEmail, params.RecipientEmail))
	}

	// Meeting properties
	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")
	ics.WriteString("CLASS:PUBLIC\r\n")
	ics.WriteString("PRIORITY:5\r\n")
	ics.WriteString(fmt.Sprintf("SEQUENCE:%d\r\n", params.Sequence))

	// Alarm
	ics.WriteString("BEGIN:VALARM\r\n")
	ics.WriteString("TRIGGER:-PT10M\r\n")
	ics.WriteString("ACTION:DISPLAY\r\n")
	ics.WriteString(fmt.Sprintf("DESCRIPTION:Reminder: %s\r\n", escapeICSText(params.MeetingTitle)))
	ics.WriteString("END:VALARM\r\n")

	ics.WriteString("END:VEVENT\r\n")
	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String(), nil
}

// ICSMeetingCancellationParams holds parameters for generating a meeting
// cancellation ICS file
type ICSMeetingCancellationParams struct {
	MeetingID       string
	MeetingTitle    string
	StartTime       time.Time
	DurationMinutes int
	RecipientEmail  string
	OrganizerEmail  string
	OrganizerName   string
	Sequence        int
}

// GenerateMeetingCancellationICS generates an ICS file that cancels an event
// previously sent with the same UID
func (g *ICSGenerator) GenerateMeetingCancellationICS(params ICSMeetingCancellationParams) (string, error) {
	if params.MeetingID == "" {
		return "", fmt.Errorf("meeting ID is required for ICS generation")
	}

	dtstamp := time.Now().UTC().Format("20060102T150405Z")
	startUTC := params.StartTime.UTC()
	endUTC := startUTC.Add(time.Duration(params.DurationMinutes) * time.Minute)

	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString(fmt.Sprintf("VERSION:%s\r\n", ICALVersion))
	ics.WriteString(fmt.Sprintf("PRODID:%s\r\n", ICSProdID))
	ics.WriteString(fmt.Sprintf("CALSCALE:%s\r\n", ICALScale))
	ics.WriteString("METHOD:CANCEL\r\n")

	ics.WriteString("BEGIN:VEVENT\r\n")
	ics.WriteString(fmt.Sprintf("UID:%s\r\n", params.MeetingID))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", dtstamp))
	if params.OrganizerEmail != "" {
		ics.WriteString(fmt.Sprintf("ORGANIZER;CN=%s:mailto:%s\r\n", params.OrganizerName, params.OrganizerEmail))
	}
	ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", startUTC.Format("20060102T150405Z")))
	ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", endUTC.Format("20060102T150405Z")))
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICSText(params.MeetingTitle)))

	if params.RecipientEmail != "" {
		ics.WriteString(fmt.Sprintf("ATTENDEE;CUTYPE=INDIVIDUAL;ROLE=REQ-PARTICIPANT;PARTSTAT=NEEDS-ACTION;RSVP=FALSE;CN=%s:mailto:%s\r\n",
			params.RecipientEmail, params.RecipientEmail))
	}

	ics.WriteString("STATUS:CANCELLED\r\n")
	ics.WriteString(fmt.Sprintf("SEQUENCE:%d\r\n", params.Sequence))
	ics.WriteString("END:VEVENT\r\n")
	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String(), nil
}

// escapeICSText escapes special characters in ICS text fields
func escapeICSText(text string) string {
	// Escape special characters according to RFC5545
	text = strings.ReplaceAll(text, "\\", "\\\\")
	text = strings.ReplaceAll(text, "\n", "\\n")
	text = strings.ReplaceAll(text, ",", "\\,")
	text = strings.ReplaceAll(text, ";", "\\;")

	// Fold long lines (75 characters max per line, continued lines start with space)
	return foldICSLine(text, ICALMaxLineLength)
}

// foldICSLine folds long lines according to RFC5545 (75 octets max)
func foldICSLine(line string, maxLength int) string {
	if len(line) <= maxLength {
		return line
	}

	var folded strings.Builder
	remaining := line
	first := true

	for len(remaining) > 0 {
		cutLength := maxLength
		if !first {
			cutLength = maxLength - 1 // Account for leading space on continued lines
		}

		if len(remaining) <= cutLength {
			if !first {
				folded.WriteString("\r\n ")
			}
			folded.WriteString(remaining)
			break
		}

		// Find a safe place to break (not in the middle of a UTF-8 sequence)
		breakPoint := cutLength
		for breakPoint > 0 && remaining[breakPoint-1]&UTF8TwoBitMask == UTF8ContinuationPrefix {
			breakPoint--
		}

		if !first {
			folded.WriteString("\r\n ")
		}
		folded.WriteString(remaining[:breakPoint])
		remaining = remaining[breakPoint:]
		first = false
	}

	return folded.String()
}
