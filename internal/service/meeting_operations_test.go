// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/domain/models"
)

func existingMeeting() *models.MeetingRecord {
	return &models.MeetingRecord{
		ID:                "meeting_1",
		Owner:             "local",
		Title:             "Roadmap Review",
		Date:              "2026-09-10",
		Time:              "10:00",
		DurationMinutes:   45,
		Participants:      []string{"John Smith", "Priya Patel"},
		ParticipantEmails: []string{"john.smith@example.com", "priya.patel@example.com"},
		CalendarEventID:   "evt_1",
		Status:            models.MeetingStatusScheduled,
	}
}

func TestRescheduleMovesMeeting(t *testing.T) {
	f := newConversationFixture(directoryFixture())
	conv := models.NewConversation()
	ctx := context.Background()

	meeting := existingMeeting()
	f.meetingRepo.On("ListByOwner", mock.Anything, "local").
		Return([]*models.MeetingRecord{meeting}, nil)
	f.meetingRepo.On("GetWithRevision", mock.Anything, "meeting_1").
		Return(meeting, uint64(2), nil)
	f.meetingRepo.On("Update", mock.Anything, mock.MatchedBy(func(m *models.MeetingRecord) bool {
		return m.Date == "2026-09-11" && m.Time == "14:00"
	}), uint64(2)).Return(nil)
	f.provider.On("UpdateEvent", mock.Anything, "evt_1", mock.Anything, 45).
		Return(&domain.CalendarEventResult{Success: true, EventID: "evt_1"}, nil)
	f.email.On("SendMeetingUpdate", mock.Anything, mock.Anything).Return(nil).Twice()

	f.parser.On("ParseCommand", mock.Anything, mock.Anything, mock.Anything).
		Return(&models.ParsedCommand{
			Intent: models.IntentRescheduleMeeting,
			TargetMeeting: &models.MeetingTarget{
				ParticipantHints: []string{"John"},
				NewDate:          "2026-09-11",
				NewTime:          "14:00",
			},
		}, nil).Once()

	reply, err := f.service.ProcessMessage(ctx, "local", conv, "move the meeting with John to Friday 2pm")
	require.NoError(t, err)
	assert.Contains(t, reply, "moved")
	assert.Contains(t, reply, "2026-09-11")
	f.meetingRepo.AssertExpectations(t)
	f.email.AssertExpectations(t)
}

func TestRescheduleFallsBackToRegexExtraction(t *testing.T) {
	f := newConversationFixture(directoryFixture())
	conv := models.NewConversation()
	ctx := context.Background()

	meeting := existingMeeting()
	f.meetingRepo.On("ListByOwner", mock.Anything, "local").
		Return([]*models.MeetingRecord{meeting}, nil)
	f.meetingRepo.On("GetWithRevision", mock.Anything, "meeting_1").
		Return(meeting, uint64(2), nil)
	f.meetingRepo.On("Update", mock.Anything, mock.MatchedBy(func(m *models.MeetingRecord) bool {
		return m.Date == "2026-09-10" && m.Time == "16:00"
	}), uint64(2)).Return(nil)
	f.provider.On("UpdateEvent", mock.Anything, "evt_1", mock.Anything, 45).
		Return(&domain.CalendarEventResult{Success: true}, nil)
	f.email.On("SendMeetingUpdate", mock.Anything, mock.Anything).Return(nil)

	f.parser.On("ParseCommand", mock.Anything, mock.Anything, mock.Anything).
		Return(&models.ParsedCommand{
			Intent:        models.IntentRescheduleMeeting,
			TargetMeeting: &models.MeetingTarget{ParticipantHints: []string{"John"}},
		}, nil).Once()

	reply, err := f.service.ProcessMessage(ctx, "local", conv, "push the John meeting to 4pm")
	require.NoError(t, err)
	assert.Contains(t, reply, "16:00")
}

func TestRescheduleWithoutNewTimeAsks(t *testing.T) {
	f := newConversationFixture(directoryFixture())
	conv := models.NewConversation()

	meeting := existingMeeting()
	f.meetingRepo.On("ListByOwner", mock.Anything, "local").
		Return([]*models.MeetingRecord{meeting}, nil)
	f.parser.On("ParseCommand", mock.Anything, mock.Anything, mock.Anything).
		Return(&models.ParsedCommand{
			Intent:        models.IntentRescheduleMeeting,
			TargetMeeting: &models.MeetingTarget{ParticipantHints: []string{"John"}},
		}, nil).Once()

	reply, err := f.service.ProcessMessage(context.Background(), "local", conv, "reschedule the John meeting")
	require.NoError(t, err)
	assert.Contains(t, reply, "When would you like to move")
}

func TestAddAttendeesToExistingMeeting(t *testing.T) {
	f := newConversationFixture(directoryFixture())
	conv := models.NewConversation()
	ctx := context.Background()

	meeting := existingMeeting()
	f.meetingRepo.On("ListByOwner", mock.Anything, "local").
		Return([]*models.MeetingRecord{meeting}, nil)
	f.meetingRepo.On("GetWithRevision", mock.Anything, "meeting_1").
		Return(meeting, uint64(2), nil)
	f.meetingRepo.On("Update", mock.Anything, mock.MatchedBy(func(m *models.MeetingRecord) bool {
		return len(m.Participants) == 3 && m.Participants[2] == "Sarah Johnson"
	}), uint64(2)).Return(nil)
	f.provider.On("UpdateEventAttendees", mock.Anything, "evt_1",
		mock.MatchedBy(func(emails []string) bool { return len(emails) == 3 })).
		Return(&domain.CalendarEventResult{Success: true}, nil)
	f.email.On("SendMeetingInvitation", mock.Anything,
		mock.MatchedBy(func(invitation domain.EmailInvitation) bool {
			return invitation.RecipientEmail == "sarah.johnson@example.com"
		})).Return(nil).Once()

	f.parser.On("ParseCommand", mock.Anything, mock.Anything, mock.Anything).
		Return(&models.ParsedCommand{
			Intent: models.IntentAddAttendees,
			TargetMeeting: &models.MeetingTarget{
				ParticipantHints: []string{"John"},
				AddNames:         []string{"Sarah"},
			},
		}, nil).Once()

	reply, err := f.service.ProcessMessage(ctx, "local", conv, "add Sarah to the John meeting")
	require.NoError(t, err)
	assert.Contains(t, reply, "added Sarah Johnson")
	f.email.AssertExpectations(t)
}

func TestAddAttendeesAlreadyPresent(t *testing.T) {
	f := newConversationFixture(directoryFixture())
	conv := models.NewConversation()

	meeting := existingMeeting()
	f.meetingRepo.On("ListByOwner", mock.Anything, "local").
		Return([]*models.MeetingRecord{meeting}, nil)
	f.parser.On("ParseCommand", mock.Anything, mock.Anything, mock.Anything).
		Return(&models.ParsedCommand{
			Intent: models.IntentAddAttendees,
			TargetMeeting: &models.MeetingTarget{
				ParticipantHints: []string{"John"},
				AddNames:         []string{"Priya"},
			},
		}, nil).Once()

	reply, err := f.service.ProcessMessage(context.Background(), "local", conv, "add Priya too")
	require.NoError(t, err)
	assert.Contains(t, reply, "already on")
	f.meetingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveAttendeesShrinksList(t *testing.T) {
	f := newConversationFixture(directoryFixture())
	conv := models.NewConversation()
	ctx := context.Background()

	meeting := existingMeeting()
	f.meetingRepo.On("ListByOwner", mock.Anything, "local").
		Return([]*models.MeetingRecord{meeting}, nil)
	f.meetingRepo.On("GetWithRevision", mock.Anything, "meeting_1").
		Return(meeting, uint64(2), nil)
	f.meetingRepo.On("Update", mock.Anything, mock.MatchedBy(func(m *models.MeetingRecord) bool {
		return len(m.Participants) == 1 && m.Participants[0] == "John Smith"
	}), uint64(2)).Return(nil)
	f.provider.On("UpdateEventAttendees", mock.Anything, "evt_1",
		mock.MatchedBy(func(emails []string) bool { return len(emails) == 1 })).
		Return(&domain.CalendarEventResult{Success: true}, nil)
	f.email.On("SendMeetingCancellation", mock.Anything,
		mock.MatchedBy(func(cancellation domain.EmailCancellation) bool {
			return cancellation.RecipientEmail == "priya.patel@example.com"
		})).Return(nil).Once()

	f.parser.On("ParseCommand", mock.Anything, mock.Anything, mock.Anything).
		Return(&models.ParsedCommand{
			Intent: models.IntentRemoveAttendees,
			TargetMeeting: &models.MeetingTarget{
				ParticipantHints: []string{"John"},
				RemoveNames:      []string{"Priya"},
			},
		}, nil).Once()

	reply, err := f.service.ProcessMessage(ctx, "local", conv, "take Priya off the John meeting")
	require.NoError(t, err)
	assert.Contains(t, reply, "removed Priya Patel")
	f.email.AssertExpectations(t)
}

func TestRemoveAttendeesUnknownNameChangesNothing(t *testing.T) {
	f := newConversationFixture(directoryFixture())
	conv := models.NewConversation()

	meeting := existingMeeting()
	f.meetingRepo.On("ListByOwner", mock.Anything, "local").
		Return([]*models.MeetingRecord{meeting}, nil)
	f.parser.On("ParseCommand", mock.Anything, mock.Anything, mock.Anything).
		Return(&models.ParsedCommand{
			Intent: models.IntentRemoveAttendees,
			TargetMeeting: &models.MeetingTarget{
				ParticipantHints: []string{"John"},
				RemoveNames:      []string{"Zelda"},
			},
		}, nil).Once()

	reply, err := f.service.ProcessMessage(context.Background(), "local", conv, "remove Zelda")
	require.NoError(t, err)
	assert.Contains(t, reply, "nothing was changed")
	f.meetingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelMeetingNotifiesAttendees(t *testing.T) {
	f := newConversationFixture(directoryFixture())
	conv := models.NewConversation()
	ctx := context.Background()

	meeting := existingMeeting()
	f.meetingRepo.On("ListByOwner", mock.Anything, "local").
		Return([]*models.MeetingRecord{meeting}, nil)
	f.meetingRepo.On("Get", mock.Anything, "meeting_1").Return(meeting, nil)
	f.meetingRepo.On("GetWithRevision", mock.Anything, "meeting_1").
		Return(meeting, uint64(2), nil)
	f.meetingRepo.On("Update", mock.Anything, mock.MatchedBy(func(m *models.MeetingRecord) bool {
		return m.Status == models.MeetingStatusCancelled
	}), uint64(2)).Return(nil)
	f.email.On("SendMeetingCancellation", mock.Anything, mock.Anything).Return(nil).Twice()

	f.parser.On("ParseCommand", mock.Anything, mock.Anything, mock.Anything).
		Return(&models.ParsedCommand{
			Intent:        models.IntentCancelMeeting,
			TargetMeeting: &models.MeetingTarget{ParticipantHints: []string{"John"}},
		}, nil).Once()

	reply, err := f.service.ProcessMessage(ctx, "local", conv, "cancel the John meeting")
	require.NoError(t, err)
	assert.Contains(t, reply, "cancelled")
	f.email.AssertExpectations(t)
}

func TestTargetMeetingNotFound(t *testing.T) {
	f := newConversationFixture(directoryFixture())
	conv := models.NewConversation()

	f.meetingRepo.On("ListByOwner", mock.Anything, "local").
		Return([]*models.MeetingRecord{}, nil)
	f.parser.On("ParseCommand", mock.Anything, mock.Anything, mock.Anything).
		Return(&models.ParsedCommand{
			Intent:        models.IntentRescheduleMeeting,
			TargetMeeting: &models.MeetingTarget{ParticipantHints: []string{"Nobody"}},
		}, nil).Once()

	reply, err := f.service.ProcessMessage(context.Background(), "local", conv, "move the Nobody meeting")
	require.NoError(t, err)
	assert.Contains(t, reply, "couldn't find a meeting")
}
