// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package email

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMeetingInvitationICS(t *testing.T) {
	generator := NewICSGenerator()

	ics, err := generator.GenerateMeetingInvitationICS(ICSMeetingInvitationParams{
		MeetingID:       "meeting_123",
		MeetingTitle:    "Quarterly Planning",
		Description:     "Review goals",
		StartTime:       time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC),
		DurationMinutes: 45,
		JoinLink:        "https://meet.example.com/abc",
		RecipientEmail:  "john.smith@example.com",
		OrganizerEmail:  "assistant@example.com",
		OrganizerName:   "Office Assistant",
	})
	require.NoError(t, err)

	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Contains(t, ics, "METHOD:REQUEST")
	assert.Contains(t, ics, "UID:meeting_123")
	assert.Contains(t, ics, "DTSTART:20260901T140000Z")
	assert.Contains(t, ics, "DTEND:20260901T144500Z")
	assert.Contains(t, ics, "SUMMARY:Quarterly Planning")
	assert.Contains(t, ics, "STATUS:CONFIRMED")
	assert.Contains(t, ics, "john.smith@example.com")
	assert.Contains(t, ics, "END:VCALENDAR")
}

func TestGenerateMeetingInvitationICSRequiresID(t *testing.T) {
	generator := NewICSGenerator()

	_, err := generator.GenerateMeetingInvitationICS(ICSMeetingInvitationParams{
		MeetingTitle: "No ID",
	})
	assert.Error(t, err)
}

func TestGenerateMeetingCancellationICS(t *testing.T) {
	generator := NewICSGenerator()

	ics, err := generator.GenerateMeetingCancellationICS(ICSMeetingCancellationParams{
		MeetingID:       "meeting_123",
		MeetingTitle:    "Quarterly Planning",
		StartTime:       time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC),
		DurationMinutes: 45,
		RecipientEmail:  "john.smith@example.com",
		Sequence:        1,
	})
	require.NoError(t, err)

	assert.Contains(t, ics, "METHOD:CANCEL")
	assert.Contains(t, ics, "STATUS:CANCELLED")
	assert.Contains(t, ics, "SEQUENCE:1")
}

func TestEscapeICSText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "commas and semicolons",
			in:   "Planning, part 1; kickoff",
			want: "Planning\\, part 1\\; kickoff",
		},
		{
			name: "newlines",
			in:   "line one\nline two",
			want: "line one\\nline two",
		},
		{
			name: "backslashes",
			in:   `path\to\thing`,
			want: `path\\to\\thing`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeICSText(tt.in))
		})
	}
}

func TestFoldICSLine(t *testing.T) {
	short := "short line"
	assert.Equal(t, short, foldICSLine(short, ICALMaxLineLength))

	long := strings.Repeat("a", 200)
	folded := foldICSLine(long, ICALMaxLineLength)

	for i, line := range strings.Split(folded, "\r\n") {
		assert.LessOrEqual(t, len(line), ICALMaxLineLength, "line %d too long", i)
		if i > 0 {
			assert.True(t, strings.HasPrefix(line, " "), "continuation line %d must start with a space", i)
		}
	}
}

func TestFoldICSLineDoesNotSplitUTF8(t *testing.T) {
	long := strings.Repeat("é", 100)
	folded := foldICSLine(long, ICALMaxLineLength)

	for _, line := range strings.Split(folded, "\r\n") {
		trimmed := strings.TrimPrefix(line, " ")
		assert.True(t, strings.HasSuffix(strings.ToValidUTF8(trimmed, ""), ""), "folded line must stay valid UTF-8")
		assert.Equal(t, trimmed, strings.ToValidUTF8(trimmed, "?"))
	}
}
