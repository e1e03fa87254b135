// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/domain/models"
)

type conversationFixture struct {
	service     *ConversationService
	parser      *domain.MockCommandParser
	contactRepo *domain.MockContactRepository
	meetingRepo *domain.MockMeetingRepository
	threadRepo  *domain.MockThreadRepository
	provider    *domain.MockCalendarProvider
	email       *domain.MockEmailService
}

func newConversationFixture(contacts []*models.Contact) *conversationFixture {
	parser := &domain.MockCommandParser{}
	contactRepo := &domain.MockContactRepository{}
	meetingRepo := &domain.MockMeetingRepository{}
	threadRepo := &domain.MockThreadRepository{}
	registry := &domain.MockCalendarRegistry{}
	provider := &domain.MockCalendarProvider{}
	email := &domain.MockEmailService{}
	builder := &domain.MockMessageBuilder{}
	allowPublishing(builder)

	contactRepo.On("ListAll", mock.Anything).Return(contacts, nil).Maybe()
	registry.On("GetProvider", "simulated").Return(provider, nil).Maybe()
	provider.On("IsAuthenticated", mock.Anything).Return(true).Maybe()
	provider.On("BusyIntervals", mock.Anything, mock.Anything).
		Return([]domain.TimeInterval{}, nil).Maybe()

	config := ServiceConfig{Platform: "simulated"}
	directory := NewDirectoryService(contactRepo, builder)
	ledger := NewLedgerService(meetingRepo, threadRepo, builder, config)
	minutes := NewMinutesService(&domain.MockMinutesRepository{}, ledger, builder)
	service := NewConversationService(parser, directory, ledger, minutes, registry, email, config)
	// A Monday morning.
	service.Now = func() time.Time {
		return time.Date(2026, 9, 7, 9, 0, 0, 0, time.Local)
	}

	return &conversationFixture{
		service:     service,
		parser:      parser,
		contactRepo: contactRepo,
		meetingRepo: meetingRepo,
		threadRepo:  threadRepo,
		provider:    provider,
		email:       email,
	}
}

func scheduleCommand(details *models.MeetingDetails) *models.ParsedCommand {
	return &models.ParsedCommand{
		Intent:  models.IntentScheduleMeeting,
		Details: details,
	}
}

func TestScheduleHappyPath(t *testing.T) {
	f := newConversationFixture(directoryFixture())
	conv := models.NewConversation()
	ctx := context.Background()

	f.parser.On("ParseCommand", mock.Anything, mock.Anything, mock.Anything).
		Return(scheduleCommand(&models.MeetingDetails{
			Date: "2026-09-08",
			Time: "15:00",
			Participants: []models.ParticipantSpec{
				{Name: "Sarah"},
			},
		}), nil).Once()
	f.meetingRepo.On("ListByOwner", mock.Anything, "local").
		Return([]*models.MeetingRecord{}, nil)

	reply, err := f.service.ProcessMessage(ctx, "local", conv, "set up a meeting with Sarah tomorrow at 3pm")
	require.NoError(t, err)
	assert.Equal(t, models.StateAwaitingConfirmation, conv.State)
	assert.Contains(t, reply, "Sarah Johnson")
	assert.Contains(t, reply, "15:00")
	assert.Contains(t, reply, "45 minutes (default)")

	f.meetingRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.threadRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.provider.On("CreateEvent", mock.Anything, mock.Anything).
		Return(&domain.CalendarEventResult{Success: true, EventID: "evt_1",
			HTMLLink: "https://calendar.example.com/event/evt_1",
			MeetLink: "https://meet.example.com/evt_1"}, nil)
	f.email.On("SendMeetingInvitation", mock.Anything,
		mock.MatchedBy(func(invitation domain.EmailInvitation) bool {
			return invitation.RecipientEmail == "sarah.johnson@example.com"
		})).Return(nil)

	reply, err = f.service.ProcessMessage(ctx, "local", conv, "yes")
	require.NoError(t, err)
	assert.Equal(t, models.StateIdle, conv.State)
	assert.Nil(t, conv.Draft)
	assert.Contains(t, reply, "Done")
	f.email.AssertExpectations(t)
}

func TestScheduleCollectsMissingFields(t *testing.T) {
	f := newConversationFixture(directoryFixture())
	conv := models.NewConversation()
	ctx := context.Background()

	f.parser.On("ParseCommand", mock.Anything, "meet with Priya", mock.Anything).
		Return(scheduleCommand(&models.MeetingDetails{
			Participants: []models.ParticipantSpec{{Name: "Priya"}},
		}), nil).Once()

	reply, err := f.service.ProcessMessage(ctx, "local", conv, "meet with Priya")
	require.NoError(t, err)
	assert.Equal(t, models.StateCollectingInfo, conv.State)
	assert.Contains(t, reply, "what date")
	assert.Contains(t, reply, "what time")
	assert.NotContains(t, reply, "attend", "participants were already given")

	f.parser.On("ParseCommand", mock.Anything, "tomorrow at 3pm", mock.Anything).
		Return(&models.ParsedCommand{Intent: models.IntentProvideInfo}, nil).Once()
	f.meetingRepo.On("ListByOwner", mock.Anything, "local").
		Return([]*models.MeetingRecord{}, nil)

	reply, err = f.service.ProcessMessage(ctx, "local", conv, "tomorrow at 3pm")
	require.NoError(t, err)
	assert.Equal(t, models.StateAwaitingConfirmation, conv.State)
	assert.Equal(t, "2026-09-08", conv.Draft.Date, "regex fallback fills the date")
	assert.Equal(t, "15:00", conv.Draft.Time, "regex fallback fills the time")
	assert.Contains(t, reply, "Priya Patel")
}

func TestScheduleConflictOffersAlternatives(t *testing.T) {
	f := newConversationFixture(directoryFixture())
	conv := models.NewConversation()
	ctx := context.Background()

	f.meetingRepo.On("ListByOwner", mock.Anything, "local").Return([]*models.MeetingRecord{
		{ID: "meeting_1", Owner: "local", Title: "Standup", Date: "2026-09-08",
			Time: "10:00", DurationMinutes: 45, Status: models.MeetingStatusScheduled},
	}, nil)
	f.parser.On("ParseCommand", mock.Anything, mock.Anything, mock.Anything).
		Return(scheduleCommand(&models.MeetingDetails{
			Date: "2026-09-08",
			Time: "10:30",
			Participants: []models.ParticipantSpec{
				{Name: "Priya"},
			},
		}), nil).Once()

	reply, err := f.service.ProcessMessage(ctx, "local", conv, "meet Priya tomorrow at 10:30")
	require.NoError(t, err)
	assert.Equal(t, models.StateAwaitingSlotChoice, conv.State)
	assert.Contains(t, reply, "Standup")
	assert.Contains(t, reply, "09:00", "the earliest open slot is offered")

	f.parser.On("ParseCommand", mock.Anything, "11:00 works", mock.Anything).
		Return(&models.ParsedCommand{Intent: models.IntentProvideInfo}, nil).Once()

	reply, err = f.service.ProcessMessage(ctx, "local", conv, "11:00 works")
	require.NoError(t, err)
	assert.Equal(t, models.StateAwaitingConfirmation, conv.State)
	assert.Equal(t, "11:00", conv.Draft.Time)
	assert.Contains(t, reply, "11:00")
}

func TestScheduleFirstAvailableSlot(t *testing.T) {
	f := newConversationFixture(directoryFixture())
	conv := models.NewConversation()
	ctx := context.Background()

	f.meetingRepo.On("ListByOwner", mock.Anything, "local").Return([]*models.MeetingRecord{
		{ID: "meeting_1", Owner: "local", Date: "2026-09-08", Time: "09:00",
			DurationMinutes: 60, Status: models.MeetingStatusScheduled},
	}, nil)
	f.parser.On("ParseCommand", mock.Anything, mock.Anything, mock.Anything).
		Return(scheduleCommand(&models.MeetingDetails{
			Date:              "2026-09-08",
			UseFirstAvailable: true,
			Participants: []models.ParticipantSpec{
				{Name: "Priya"},
			},
		}), nil).Once()

	reply, err := f.service.ProcessMessage(ctx, "local", conv, "first available slot tomorrow with Priya")
	require.NoError(t, err)
	assert.Equal(t, models.StateAwaitingConfirmation, conv.State)
	assert.Equal(t, "10:00", conv.Draft.Time, "earliest slot after the busy hour")
	assert.Contains(t, reply, "10:00")
}

func TestScheduleDisambiguation(t *testing.T) {
	f := newConversationFixture(directoryFixture())
	conv := models.NewConversation()
	ctx := context.Background()

	f.parser.On("ParseCommand", mock.Anything, mock.Anything, mock.Anything).
		Return(scheduleCommand(&models.MeetingDetails{
			Date: "2026-09-08",
			Time: "15:00",
			Participants: []models.ParticipantSpec{
				{Name: "John"},
			},
		}), nil).Once()

	reply, err := f.service.ProcessMessage(ctx, "local", conv, "meet John tomorrow at 3pm")
	require.NoError(t, err)
	assert.Equal(t, models.StateAwaitingDisambiguation, conv.State)
	assert.Contains(t, reply, "John Smith (Engineering)")
	assert.Contains(t, reply, "John Doe (Marketing)")

	f.parser.On("ParseCommand", mock.Anything, "the one from engineering", mock.Anything).
		Return(&models.ParsedCommand{Intent: models.IntentProvideInfo}, nil).Once()
	f.meetingRepo.On("ListByOwner", mock.Anything, "local").
		Return([]*models.MeetingRecord{}, nil)

	reply, err = f.service.ProcessMessage(ctx, "local", conv, "the one from engineering")
	require.NoError(t, err)
	assert.Equal(t, models.StateAwaitingConfirmation, conv.State)
	require.Len(t, conv.Resolved, 1)
	assert.Equal(t, "John Smith", conv.Resolved[0].Name)
	assert.Contains(t, reply, "John Smith")
}

func TestScheduleDepartmentGroupExpansion(t *testing.T) {
	f := newConversationFixture(directoryFixture())
	conv := models.NewConversation()
	ctx := context.Background()

	f.parser.On("ParseCommand", mock.Anything, mock.Anything, mock.Anything).
		Return(scheduleCommand(&models.MeetingDetails{
			Date: "2026-09-08",
			Time: "15:00",
			Participants: []models.ParticipantSpec{
				{Name: "Engineering", IsDepartmentGroup: true},
			},
		}), nil).Once()
	f.meetingRepo.On("ListByOwner", mock.Anything, "local").
		Return([]*models.MeetingRecord{}, nil)

	_, err := f.service.ProcessMessage(ctx, "local", conv, "meet the whole engineering team tomorrow at 3pm")
	require.NoError(t, err)
	assert.Equal(t, models.StateAwaitingConfirmation, conv.State)
	assert.Len(t, conv.Resolved, 2)
}

func TestConfirmationDeclinedResets(t *testing.T) {
	f := newConversationFixture(directoryFixture())
	conv := models.NewConversation()
	conv.State = models.StateAwaitingConfirmation
	conv.Draft = &models.MeetingDraft{Date: "2026-09-08", Time: "15:00"}

	reply, err := f.service.ProcessMessage(context.Background(), "local", conv, "no, forget it")
	require.NoError(t, err)
	assert.Equal(t, models.StateIdle, conv.State)
	assert.Nil(t, conv.Draft)
	assert.Contains(t, reply, "dropped")
}

func TestConfirmationModificationAdjustsDraft(t *testing.T) {
	f := newConversationFixture(directoryFixture())
	conv := models.NewConversation()
	conv.State = models.StateAwaitingConfirmation
	conv.Draft = &models.MeetingDraft{Date: "2026-09-08", Time: "15:00", DurationMinutes: 45}
	conv.Resolved = []models.Contact{
		{Name: "Priya Patel", Email: "priya.patel@example.com"},
	}

	f.parser.On("ClassifyConfirmation", mock.Anything, "make it 30 minutes").
		Return(models.DecisionModification, nil).Once()
	f.parser.On("ParseCommand", mock.Anything, "make it 30 minutes", mock.Anything).
		Return(&models.ParsedCommand{
			Intent:  models.IntentProvideInfo,
			Details: &models.MeetingDetails{DurationMinutes: 30},
		}, nil).Once()
	f.meetingRepo.On("ListByOwner", mock.Anything, "local").
		Return([]*models.MeetingRecord{}, nil)

	reply, err := f.service.ProcessMessage(context.Background(), "local", conv, "make it 30 minutes")
	require.NoError(t, err)
	assert.Equal(t, models.StateAwaitingConfirmation, conv.State)
	assert.Equal(t, 30, conv.Draft.DurationMinutes)
	assert.Contains(t, reply, "30 minutes")
}

func TestCalendarFailureDoesNotLoseMeeting(t *testing.T) {
	f := newConversationFixture(directoryFixture())
	conv := models.NewConversation()
	conv.State = models.StateAwaitingConfirmation
	conv.Draft = &models.MeetingDraft{Date: "2026-09-08", Time: "15:00", DurationMinutes: 45}
	conv.Resolved = []models.Contact{
		{Name: "Priya Patel", Email: "priya.patel@example.com"},
	}

	f.provider.On("CreateEvent", mock.Anything, mock.Anything).
		Return(&domain.CalendarEventResult{Success: false, ErrorText: "quota exceeded"}, nil)
	f.meetingRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.threadRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.email.On("SendMeetingInvitation", mock.Anything, mock.Anything).Return(nil)

	reply, err := f.service.ProcessMessage(context.Background(), "local", conv, "yes")
	require.NoError(t, err)
	assert.Equal(t, models.StateIdle, conv.State)
	assert.Contains(t, reply, "calendar invite could not be created")
	f.meetingRepo.AssertCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInterruptingIntentAbandonsDraft(t *testing.T) {
	f := newConversationFixture(directoryFixture())
	conv := models.NewConversation()
	conv.State = models.StateCollectingInfo
	conv.Draft = &models.MeetingDraft{Date: "2026-09-08"}

	f.parser.On("ParseCommand", mock.Anything, "show my meetings", mock.Anything).
		Return(&models.ParsedCommand{Intent: models.IntentListMeetings}, nil).Once()
	f.meetingRepo.On("ListByOwner", mock.Anything, "local").
		Return([]*models.MeetingRecord{}, nil)

	reply, err := f.service.ProcessMessage(context.Background(), "local", conv, "show my meetings")
	require.NoError(t, err)
	assert.Equal(t, models.StateIdle, conv.State)
	assert.Nil(t, conv.Draft)
	assert.Contains(t, reply, "no meetings")
}

func TestSlotChoiceInterruptingIntentAbandonsDraft(t *testing.T) {
	f := newConversationFixture(directoryFixture())
	conv := models.NewConversation()
	conv.State = models.StateAwaitingSlotChoice
	conv.Draft = &models.MeetingDraft{Date: "2026-09-08"}

	f.parser.On("ParseCommand", mock.Anything, "show my meetings", mock.Anything).
		Return(&models.ParsedCommand{Intent: models.IntentListMeetings}, nil).Once()
	f.meetingRepo.On("ListByOwner", mock.Anything, "local").
		Return([]*models.MeetingRecord{}, nil)

	reply, err := f.service.ProcessMessage(context.Background(), "local", conv, "show my meetings")
	require.NoError(t, err)
	assert.Equal(t, models.StateIdle, conv.State)
	assert.Nil(t, conv.Draft)
	assert.Contains(t, reply, "no meetings")
}

func TestDisambiguationInterruptingIntentAbandonsDraft(t *testing.T) {
	f := newConversationFixture(directoryFixture())
	conv := models.NewConversation()
	conv.State = models.StateAwaitingDisambiguation
	conv.Draft = &models.MeetingDraft{
		Date: "2026-09-08", Time: "15:00",
		ParticipantsRaw: []models.ParticipantSpec{{Name: "John"}},
	}
	conv.Disambiguation = map[string]models.DisambiguationEntry{
		"John": {
			Spec: models.ParticipantSpec{Name: "John"},
			Candidates: []models.Contact{
				{Name: "John Smith", Department: "Engineering"},
				{Name: "John Doe", Department: "Marketing"},
			},
		},
	}

	f.parser.On("ParseCommand", mock.Anything, "show my meetings", mock.Anything).
		Return(&models.ParsedCommand{Intent: models.IntentListMeetings}, nil).Once()
	f.meetingRepo.On("ListByOwner", mock.Anything, "local").
		Return([]*models.MeetingRecord{}, nil)

	reply, err := f.service.ProcessMessage(context.Background(), "local", conv, "show my meetings")
	require.NoError(t, err)
	assert.Equal(t, models.StateIdle, conv.State)
	assert.Nil(t, conv.Draft)
	assert.Empty(t, conv.Disambiguation)
	assert.Contains(t, reply, "no meetings")
}

func TestDisambiguationResolvesNameFromReply(t *testing.T) {
	f := newConversationFixture(directoryFixture())
	conv := models.NewConversation()
	ctx := context.Background()

	f.parser.On("ParseCommand", mock.Anything, "meet Sam tomorrow at 3pm", mock.Anything).
		Return(scheduleCommand(&models.MeetingDetails{
			Date: "2026-09-08",
			Time: "15:00",
			Participants: []models.ParticipantSpec{
				{Name: "Sam"},
			},
		}), nil).Once()

	reply, err := f.service.ProcessMessage(ctx, "local", conv, "meet Sam tomorrow at 3pm")
	require.NoError(t, err)
	assert.Equal(t, models.StateAwaitingDisambiguation, conv.State)
	assert.Contains(t, reply, "couldn't find anyone matching \"Sam\"")

	f.parser.On("ParseCommand", mock.Anything, "I meant John Smith from Engineering", mock.Anything).
		Return(&models.ParsedCommand{
			Intent: models.IntentProvideInfo,
			Details: &models.MeetingDetails{
				Participants: []models.ParticipantSpec{
					{Name: "John Smith", Department: "Engineering"},
				},
			},
		}, nil).Once()
	f.meetingRepo.On("ListByOwner", mock.Anything, "local").
		Return([]*models.MeetingRecord{}, nil)

	reply, err = f.service.ProcessMessage(ctx, "local", conv, "I meant John Smith from Engineering")
	require.NoError(t, err)
	assert.Equal(t, models.StateAwaitingConfirmation, conv.State)
	require.Len(t, conv.Resolved, 1)
	assert.Equal(t, "John Smith", conv.Resolved[0].Name)
	assert.Contains(t, reply, "John Smith")
}

func TestCommitNotifiesOrganizer(t *testing.T) {
	f := newConversationFixture(directoryFixture())
	conv := models.NewConversation()
	conv.State = models.StateAwaitingConfirmation
	conv.Draft = &models.MeetingDraft{Date: "2026-09-08", Time: "15:00", DurationMinutes: 45}
	conv.Resolved = []models.Contact{
		{Name: "Sarah Johnson", Email: "sarah.johnson@example.com"},
	}

	f.meetingRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.threadRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.provider.On("CreateEvent", mock.Anything, mock.Anything).
		Return(&domain.CalendarEventResult{Success: true, EventID: "evt_1"}, nil)
	f.email.On("SendMeetingInvitation", mock.Anything,
		mock.MatchedBy(func(invitation domain.EmailInvitation) bool {
			return invitation.RecipientEmail == "sarah.johnson@example.com"
		})).Return(nil).Once()
	f.email.On("SendMeetingInvitation", mock.Anything,
		mock.MatchedBy(func(invitation domain.EmailInvitation) bool {
			return invitation.RecipientEmail == "john.smith@example.com"
		})).Return(nil).Once()

	reply, err := f.service.ProcessMessage(context.Background(), "john.smith@example.com", conv, "yes")
	require.NoError(t, err)
	assert.Equal(t, models.StateIdle, conv.State)
	assert.Contains(t, reply, "Done")
	f.email.AssertExpectations(t)
}

func TestIdleConfirmationHasNothingInProgress(t *testing.T) {
	f := newConversationFixture(directoryFixture())
	conv := models.NewConversation()

	f.parser.On("ParseCommand", mock.Anything, "yes", mock.Anything).
		Return(&models.ParsedCommand{Intent: models.IntentConfirmation}, nil).Once()

	reply, err := f.service.ProcessMessage(context.Background(), "local", conv, "yes")
	require.NoError(t, err)
	assert.Contains(t, reply, "don't have a meeting in progress")
}

func TestGeneralChatPassesThroughResponse(t *testing.T) {
	f := newConversationFixture(directoryFixture())
	conv := models.NewConversation()

	f.parser.On("ParseCommand", mock.Anything, "hello there", mock.Anything).
		Return(&models.ParsedCommand{
			Intent:          models.IntentGeneralChat,
			ResponseMessage: "Hello! How can I help you today?",
		}, nil).Once()

	reply, err := f.service.ProcessMessage(context.Background(), "local", conv, "hello there")
	require.NoError(t, err)
	assert.Equal(t, "Hello! How can I help you today?", reply)
	assert.Len(t, conv.History, 2, "both turns are recorded")
}
