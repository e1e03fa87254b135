// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/domain/models"
)

// MockContactRepository is a mock implementation of ContactRepository.
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) Exists(ctx context.Context, contactID string) (bool, error) {
	args := m.Called(ctx, contactID)
	return args.Bool(0), args.Error(1)
}

func (m *MockContactRepository) Get(ctx context.Context, contactID string) (*models.Contact, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contact), args.Error(1)
}

func (m *MockContactRepository) GetWithRevision(ctx context.Context, contactID string) (*models.Contact, uint64, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*models.Contact), args.Get(1).(uint64), args.Error(2)
}

func (m *MockContactRepository) Update(ctx context.Context, contact *models.Contact, revision uint64) error {
	args := m.Called(ctx, contact, revision)
	return args.Error(0)
}

func (m *MockContactRepository) Delete(ctx context.Context, contactID string, revision uint64) error {
	args := m.Called(ctx, contactID, revision)
	return args.Error(0)
}

func (m *MockContactRepository) ListAll(ctx context.Context) ([]*models.Contact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Contact), args.Error(1)
}

// MockMeetingRepository is a mock implementation of MeetingRepository.
type MockMeetingRepository struct {
	mock.Mock
}

func (m *MockMeetingRepository) Create(ctx context.Context, meeting *models.MeetingRecord) error {
	args := m.Called(ctx, meeting)
	return args.Error(0)
}

func (m *MockMeetingRepository) Exists(ctx context.Context, meetingID string) (bool, error) {
	args := m.Called(ctx, meetingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMeetingRepository) Get(ctx context.Context, meetingID string) (*models.MeetingRecord, error) {
	args := m.Called(ctx, meetingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MeetingRecord), args.Error(1)
}

func (m *MockMeetingRepository) GetWithRevision(ctx context.Context, meetingID string) (*models.MeetingRecord, uint64, error) {
	args := m.Called(ctx, meetingID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*models.MeetingRecord), args.Get(1).(uint64), args.Error(2)
}

func (m *MockMeetingRepository) Update(ctx context.Context, meeting *models.MeetingRecord, revision uint64) error {
	args := m.Called(ctx, meeting, revision)
	return args.Error(0)
}

func (m *MockMeetingRepository) Delete(ctx context.Context, meetingID string, revision uint64) error {
	args := m.Called(ctx, meetingID, revision)
	return args.Error(0)
}

func (m *MockMeetingRepository) ListAll(ctx context.Context) ([]*models.MeetingRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MeetingRecord), args.Error(1)
}

func (m *MockMeetingRepository) ListByOwner(ctx context.Context, owner string) ([]*models.MeetingRecord, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MeetingRecord), args.Error(1)
}

// MockThreadRepository is a mock implementation of ThreadRepository.
type MockThreadRepository struct {
	mock.Mock
}

func (m *MockThreadRepository) Create(ctx context.Context, thread *models.MeetingThread) error {
	args := m.Called(ctx, thread)
	return args.Error(0)
}

func (m *MockThreadRepository) Get(ctx context.Context, threadID string) (*models.MeetingThread, error) {
	args := m.Called(ctx, threadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MeetingThread), args.Error(1)
}

func (m *MockThreadRepository) GetWithRevision(ctx context.Context, threadID string) (*models.MeetingThread, uint64, error) {
	args := m.Called(ctx, threadID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*models.MeetingThread), args.Get(1).(uint64), args.Error(2)
}

func (m *MockThreadRepository) Update(ctx context.Context, thread *models.MeetingThread, revision uint64) error {
	args := m.Called(ctx, thread, revision)
	return args.Error(0)
}

func (m *MockThreadRepository) Delete(ctx context.Context, threadID string, revision uint64) error {
	args := m.Called(ctx, threadID, revision)
	return args.Error(0)
}

func (m *MockThreadRepository) ListAll(ctx context.Context) ([]*models.MeetingThread, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MeetingThread), args.Error(1)
}

// MockMinutesRepository is a mock implementation of MinutesRepository.
type MockMinutesRepository struct {
	mock.Mock
}

func (m *MockMinutesRepository) Create(ctx context.Context, minutes *models.MinutesDocument) error {
	args := m.Called(ctx, minutes)
	return args.Error(0)
}

func (m *MockMinutesRepository) Get(ctx context.Context, minutesID string) (*models.MinutesDocument, error) {
	args := m.Called(ctx, minutesID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MinutesDocument), args.Error(1)
}

func (m *MockMinutesRepository) GetWithRevision(ctx context.Context, minutesID string) (*models.MinutesDocument, uint64, error) {
	args := m.Called(ctx, minutesID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*models.MinutesDocument), args.Get(1).(uint64), args.Error(2)
}

func (m *MockMinutesRepository) Update(ctx context.Context, minutes *models.MinutesDocument, revision uint64) error {
	args := m.Called(ctx, minutes, revision)
	return args.Error(0)
}

func (m *MockMinutesRepository) Delete(ctx context.Context, minutesID string, revision uint64) error {
	args := m.Called(ctx, minutesID, revision)
	return args.Error(0)
}

func (m *MockMinutesRepository) ListAll(ctx context.Context) ([]*models.MinutesDocument, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MinutesDocument), args.Error(1)
}

// MockMessageBuilder is a mock implementation of MessageBuilder.
type MockMessageBuilder struct {
	mock.Mock
}

func (m *MockMessageBuilder) SendIndexContact(ctx context.Context, action models.MessageAction, data models.Contact) error {
	args := m.Called(ctx, action, data)
	return args.Error(0)
}

func (m *MockMessageBuilder) SendDeleteIndexContact(ctx context.Context, data string) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

func (m *MockMessageBuilder) SendIndexMeeting(ctx context.Context, action models.MessageAction, data models.MeetingRecord) error {
	args := m.Called(ctx, action, data)
	return args.Error(0)
}

func (m *MockMessageBuilder) SendDeleteIndexMeeting(ctx context.Context, data string) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

func (m *MockMessageBuilder) SendIndexMeetingMinutes(ctx context.Context, action models.MessageAction, data models.MinutesDocument) error {
	args := m.Called(ctx, action, data)
	return args.Error(0)
}

func (m *MockMessageBuilder) SendDeleteIndexMeetingMinutes(ctx context.Context, data string) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

func (m *MockMessageBuilder) SendMeetingCreated(ctx context.Context, data models.MeetingCreatedMessage) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

func (m *MockMessageBuilder) SendMeetingUpdated(ctx context.Context, data models.MeetingUpdatedMessage) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

func (m *MockMessageBuilder) SendMeetingDeleted(ctx context.Context, data models.MeetingDeletedMessage) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

// MockCommandParser is a mock implementation of CommandParser.
type MockCommandParser struct {
	mock.Mock
}

func (m *MockCommandParser) ParseCommand(ctx context.Context, text string, history []models.ChatMessage) (*models.ParsedCommand, error) {
	args := m.Called(ctx, text, history)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ParsedCommand), args.Error(1)
}

func (m *MockCommandParser) ClassifyConfirmation(ctx context.Context, text string) (models.ConfirmationDecision, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(models.ConfirmationDecision), args.Error(1)
}

// MockCalendarProvider is a mock implementation of CalendarProvider.
type MockCalendarProvider struct {
	mock.Mock
}

func (m *MockCalendarProvider) IsAuthenticated(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockCalendarProvider) CreateEvent(ctx context.Context, input CreateEventInput) (*CalendarEventResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CalendarEventResult), args.Error(1)
}

func (m *MockCalendarProvider) UpdateEvent(ctx context.Context, eventID string, start time.Time, durationMinutes int) (*CalendarEventResult, error) {
	args := m.Called(ctx, eventID, start, durationMinutes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CalendarEventResult), args.Error(1)
}

func (m *MockCalendarProvider) UpdateEventAttendees(ctx context.Context, eventID string, attendeeEmails []string) (*CalendarEventResult, error) {
	args := m.Called(ctx, eventID, attendeeEmails)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CalendarEventResult), args.Error(1)
}

func (m *MockCalendarProvider) BusyIntervals(ctx context.Context, date time.Time) ([]TimeInterval, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]TimeInterval), args.Error(1)
}

// MockCalendarRegistry is a mock implementation of CalendarRegistry.
type MockCalendarRegistry struct {
	mock.Mock
}

func (m *MockCalendarRegistry) GetProvider(platform string) (CalendarProvider, error) {
	args := m.Called(platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(CalendarProvider), args.Error(1)
}

func (m *MockCalendarRegistry) RegisterProvider(platform string, provider CalendarProvider) {
	m.Called(platform, provider)
}

// MockEmailService is a mock implementation of EmailService.
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendMeetingInvitation(ctx context.Context, invitation EmailInvitation) error {
	args := m.Called(ctx, invitation)
	return args.Error(0)
}

func (m *MockEmailService) SendMeetingUpdate(ctx context.Context, update EmailUpdate) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

func (m *MockEmailService) SendMeetingCancellation(ctx context.Context, cancellation EmailCancellation) error {
	args := m.Called(ctx, cancellation)
	return args.Error(0)
}
