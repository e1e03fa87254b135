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

func newMinutesFixture() (*MinutesService, *domain.MockMinutesRepository, *domain.MockMeetingRepository, *domain.MockMessageBuilder) {
	minutesRepo := &domain.MockMinutesRepository{}
	meetingRepo := &domain.MockMeetingRepository{}
	builder := &domain.MockMessageBuilder{}
	allowPublishing(builder)
	ledger := NewLedgerService(meetingRepo, &domain.MockThreadRepository{}, builder, ServiceConfig{})
	return NewMinutesService(minutesRepo, ledger, builder), minutesRepo, meetingRepo, builder
}

func TestStoreMinutesLinksMeeting(t *testing.T) {
	service, minutesRepo, meetingRepo, builder := newMinutesFixture()
	builder.On("SendIndexMeetingMinutes", mock.Anything, models.ActionCreated, mock.Anything).Return(nil)

	minutesRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	meeting := &models.MeetingRecord{ID: "meeting_1", Owner: "local", Status: models.MeetingStatusScheduled}
	meetingRepo.On("GetWithRevision", mock.Anything, "meeting_1").Return(meeting, uint64(1), nil)
	meetingRepo.On("Update", mock.Anything, mock.MatchedBy(func(m *models.MeetingRecord) bool {
		return m.Status == models.MeetingStatusCompleted && m.MinutesID != ""
	}), uint64(1)).Return(nil)

	document, err := service.StoreMinutes(context.Background(), "local", &models.MinutesDocument{
		MeetingID: "meeting_1",
		Title:     "Roadmap Review Minutes",
	})

	require.NoError(t, err)
	assert.Contains(t, document.ID, "mom_")
	meetingRepo.AssertExpectations(t)
	builder.AssertExpectations(t)
}

func TestStoreMinutesSurvivesLedgerFailure(t *testing.T) {
	service, minutesRepo, meetingRepo, builder := newMinutesFixture()
	builder.On("SendIndexMeetingMinutes", mock.Anything, models.ActionCreated, mock.Anything).Return(nil)

	minutesRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	meetingRepo.On("GetWithRevision", mock.Anything, "meeting_gone").
		Return(nil, uint64(0), domain.NewNotFoundError("meeting not found"))

	document, err := service.StoreMinutes(context.Background(), "local", &models.MinutesDocument{
		MeetingID: "meeting_gone",
		Title:     "Orphan Minutes",
	})

	require.NoError(t, err, "a missing meeting does not lose the stored document")
	assert.NotEmpty(t, document.ID)
}

func TestStoreMinutesRequiresTitle(t *testing.T) {
	service, _, _, _ := newMinutesFixture()

	_, err := service.StoreMinutes(context.Background(), "local", &models.MinutesDocument{})
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
}

func TestSearchMinutesAcrossFields(t *testing.T) {
	service, minutesRepo, _, _ := newMinutesFixture()
	minutesRepo.On("ListAll", mock.Anything).Return([]*models.MinutesDocument{
		{ID: "mom_1", Title: "Roadmap Review", Attendees: []string{"John Smith"}},
		{ID: "mom_2", Title: "Design Sync", Content: "Discussed the Q4 roadmap in detail"},
		{ID: "mom_3", Title: "Standup", ActionItems: []models.ActionItem{
			{Description: "Publish the roadmap deck"},
		}},
		{ID: "mom_4", Title: "1:1"},
	}, nil)

	matches, err := service.SearchMinutes(context.Background(), "roadmap")
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestListMinutesNewestFirst(t *testing.T) {
	service, minutesRepo, _, _ := newMinutesFixture()
	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	minutesRepo.On("ListAll", mock.Anything).Return([]*models.MinutesDocument{
		{ID: "mom_old", CreatedAt: base},
		{ID: "mom_new", CreatedAt: base.Add(time.Hour)},
	}, nil)

	documents, err := service.ListMinutes(context.Background())
	require.NoError(t, err)
	require.Len(t, documents, 2)
	assert.Equal(t, "mom_new", documents[0].ID)
}

func TestFormatMinutes(t *testing.T) {
	service, _, _, _ := newMinutesFixture()

	formatted := service.FormatMinutes(&models.MinutesDocument{
		Title:     "Roadmap Review",
		Date:      "2026-09-10",
		Attendees: []string{"John Smith", "Priya Patel"},
		Content:   "We walked through the Q4 roadmap.",
		Decisions: []string{"Ship the beta in October"},
		ActionItems: []models.ActionItem{
			{Description: "Draft the launch plan", Owner: "Priya Patel", Deadline: "2026-09-20"},
		},
	})

	assert.Contains(t, formatted, "**Roadmap Review** (2026-09-10)")
	assert.Contains(t, formatted, "Attendees: John Smith, Priya Patel")
	assert.Contains(t, formatted, "- Ship the beta in October")
	assert.Contains(t, formatted, "- Draft the launch plan (Priya Patel, due 2026-09-20)")
}
