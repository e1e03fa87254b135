// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-office-assistant-service/pkg/constants"
)

// LedgerService manages persisted meeting records and their follow-up
// threads. Mutations are restricted to the meeting owner or an admin;
// unauthorized access is reported as not-found so that the existence of
// other users' meetings is not leaked.
type LedgerService struct {
	meetingRepo    domain.MeetingRepository
	threadRepo     domain.ThreadRepository
	messageBuilder domain.MessageBuilder
	config         ServiceConfig
}

// NewLedgerService creates a new meeting ledger service.
func NewLedgerService(meetingRepo domain.MeetingRepository, threadRepo domain.ThreadRepository, messageBuilder domain.MessageBuilder, config ServiceConfig) *LedgerService {
	return &LedgerService{
		meetingRepo:    meetingRepo,
		threadRepo:     threadRepo,
		messageBuilder: messageBuilder,
		config:         config,
	}
}

// canAccess reports whether the principal may mutate the meeting.
func (s *LedgerService) canAccess(principal string, meeting *models.MeetingRecord) bool {
	return meeting.Owner == principal || s.config.IsAdmin(principal)
}

// AddMeeting persists a new meeting record. When parentMeetingID is given the
// record joins the parent's thread; otherwise a new thread is started.
func (s *LedgerService) AddMeeting(ctx context.Context, meeting *models.MeetingRecord, parentMeetingID string) (*models.MeetingRecord, error) {
	if meeting == nil {
		return nil, domain.NewValidationError("meeting is required")
	}
	if len(meeting.Participants) != len(meeting.ParticipantEmails) {
		return nil, domain.NewValidationError("participants and participant emails must correspond")
	}

	now := time.Now().UTC()
	meeting.ID = "meeting_" + uuid.New().String()
	meeting.Status = models.MeetingStatusScheduled
	meeting.CreatedAt = now
	meeting.UpdatedAt = now
	if meeting.DurationMinutes == 0 {
		meeting.DurationMinutes = constants.DefaultMeetingDurationMinutes
	}

	thread, threadRevision, err := s.resolveThread(ctx, parentMeetingID)
	if err != nil {
		return nil, err
	}

	meeting.ParentMeetingID = parentMeetingID
	meeting.ThreadID = thread.ID
	thread.Append(meeting.ID)

	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, err
	}

	if threadRevision == 0 {
		err = s.threadRepo.Create(ctx, thread)
	} else {
		err = s.threadRepo.Update(ctx, thread, threadRevision)
	}
	if err != nil {
		return nil, err
	}

	s.publishMeetingCreated(ctx, meeting)
	return meeting, nil
}

// resolveThread finds the thread containing the parent meeting, or builds a
// new one. A zero revision marks a thread that does not exist yet.
func (s *LedgerService) resolveThread(ctx context.Context, parentMeetingID string) (*models.MeetingThread, uint64, error) {
	if parentMeetingID != "" {
		threads, err := s.threadRepo.ListAll(ctx)
		if err != nil {
			return nil, 0, err
		}
		for _, thread := range threads {
			if thread.Contains(parentMeetingID) {
				existing, revision, err := s.threadRepo.GetWithRevision(ctx, thread.ID)
				if err != nil {
					return nil, 0, err
				}
				return existing, revision, nil
			}
		}
	}

	thread := &models.MeetingThread{
		ID:        "thread_" + uuid.New().String(),
		CreatedAt: time.Now().UTC(),
	}
	if parentMeetingID != "" {
		// The parent predates thread tracking; adopt it into the new thread.
		thread.Append(parentMeetingID)
	}
	return thread, 0, nil
}

// publishMeetingCreated sends the index and event messages for a new record.
// Both are best-effort.
func (s *LedgerService) publishMeetingCreated(ctx context.Context, meeting *models.MeetingRecord) {
	if err := s.messageBuilder.SendIndexMeeting(ctx, models.ActionCreated, *meeting); err != nil {
		slog.WarnContext(ctx, "failed to send meeting index message", logging.ErrKey, err,
			"meeting_id", meeting.ID)
	}
	if err := s.messageBuilder.SendMeetingCreated(ctx, models.MeetingCreatedMessage{
		MeetingID: meeting.ID,
		ThreadID:  meeting.ThreadID,
		Owner:     meeting.Owner,
		Title:     meeting.Title,
		Date:      meeting.Date,
		Time:      meeting.Time,
	}); err != nil {
		slog.WarnContext(ctx, "failed to send meeting created message", logging.ErrKey, err,
			"meeting_id", meeting.ID)
	}
}

// GetMeeting returns the meeting when the principal may access it. An
// unauthorized meeting is reported as not found.
func (s *LedgerService) GetMeeting(ctx context.Context, principal, meetingID string) (*models.MeetingRecord, error) {
	meeting, err := s.meetingRepo.Get(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if !s.canAccess(principal, meeting) {
		return nil, domain.NewNotFoundError("meeting not found")
	}
	return meeting, nil
}

// GetThreadMeetings returns the meetings of a thread, oldest first.
func (s *LedgerService) GetThreadMeetings(ctx context.Context, threadID string) ([]*models.MeetingRecord, error) {
	thread, err := s.threadRepo.Get(ctx, threadID)
	if err != nil {
		return nil, err
	}

	var meetings []*models.MeetingRecord
	for _, meetingID := range thread.MeetingIDs {
		meeting, err := s.meetingRepo.Get(ctx, meetingID)
		if err != nil {
			slog.WarnContext(ctx, "thread references a missing meeting, skipping",
				logging.ErrKey, err, "thread_id", threadID, "meeting_id", meetingID)
			continue
		}
		meetings = append(meetings, meeting)
	}

	sort.Slice(meetings, func(i, j int) bool {
		return meetings[i].CreatedAt.Before(meetings[j].CreatedAt)
	})
	return meetings, nil
}

// GetRecentMeetings returns the principal's meetings, newest first, up to
// limit. A non-positive limit returns all of them.
func (s *LedgerService) GetRecentMeetings(ctx context.Context, principal string, limit int) ([]*models.MeetingRecord, error) {
	meetings, err := s.meetingRepo.ListByOwner(ctx, principal)
	if err != nil {
		return nil, err
	}

	sort.Slice(meetings, func(i, j int) bool {
		return meetings[i].CreatedAt.After(meetings[j].CreatedAt)
	})

	if limit > 0 && len(meetings) > limit {
		meetings = meetings[:limit]
	}
	return meetings, nil
}

// SearchMeetings returns the principal's meetings matching the query as a
// substring of title, description, or a participant name.
func (s *LedgerService) SearchMeetings(ctx context.Context, principal, query string) ([]*models.MeetingRecord, error) {
	meetings, err := s.meetingRepo.ListByOwner(ctx, principal)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	var matches []*models.MeetingRecord
	for _, meeting := range meetings {
		if strings.Contains(strings.ToLower(meeting.Title), needle) ||
			strings.Contains(strings.ToLower(meeting.Description), needle) {
			matches = append(matches, meeting)
			continue
		}
		for _, participant := range meeting.Participants {
			if strings.Contains(strings.ToLower(participant), needle) {
				matches = append(matches, meeting)
				break
			}
		}
	}
	return matches, nil
}

// GetConflictingMeetings returns the principal's non-cancelled meetings that
// overlap the candidate slot. Intervals are half-open, so back-to-back
// meetings do not conflict. Malformed records are skipped.
func (s *LedgerService) GetConflictingMeetings(ctx context.Context, principal, date, startTime string, durationMinutes int, excludeID string) ([]*models.MeetingRecord, error) {
	candidate := models.MeetingRecord{Date: date, Time: startTime, DurationMinutes: durationMinutes}
	candidateStart, candidateEnd, err := candidate.StartEnd()
	if err != nil {
		return nil, domain.NewValidationError("cannot parse candidate slot", err)
	}

	meetings, err := s.meetingRepo.ListByOwner(ctx, principal)
	if err != nil {
		return nil, err
	}

	var conflicts []*models.MeetingRecord
	for _, meeting := range meetings {
		if meeting.ID == excludeID || meeting.Status == models.MeetingStatusCancelled {
			continue
		}
		existingStart, existingEnd, err := meeting.StartEnd()
		if err != nil {
			slog.WarnContext(ctx, "skipping malformed meeting in conflict check",
				logging.ErrKey, err, "meeting_id", meeting.ID)
			continue
		}
		if candidateStart.Before(existingEnd) && candidateEnd.After(existingStart) {
			conflicts = append(conflicts, meeting)
		}
	}
	return conflicts, nil
}

// UpdateMeeting applies the partial update to a meeting the principal may
// mutate.
func (s *LedgerService) UpdateMeeting(ctx context.Context, principal, meetingID string, update models.MeetingUpdate) (*models.MeetingRecord, error) {
	meeting, revision, err := s.meetingRepo.GetWithRevision(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if !s.canAccess(principal, meeting) {
		return nil, domain.NewNotFoundError("meeting not found")
	}

	if (update.Participants == nil) != (update.ParticipantEmails == nil) ||
		len(update.Participants) != len(update.ParticipantEmails) {
		return nil, domain.NewValidationError("participants and participant emails must be updated together")
	}

	if update.Title != nil {
		meeting.Title = *update.Title
	}
	if update.Date != nil {
		meeting.Date = *update.Date
	}
	if update.Time != nil {
		meeting.Time = *update.Time
	}
	if update.DurationMinutes != nil {
		meeting.DurationMinutes = *update.DurationMinutes
	}
	if update.Description != nil {
		meeting.Description = *update.Description
	}
	if update.Participants != nil {
		meeting.Participants = update.Participants
		meeting.ParticipantEmails = update.ParticipantEmails
	}
	if update.CalendarEventID != nil {
		meeting.CalendarEventID = *update.CalendarEventID
	}
	if update.CalendarEventLink != nil {
		meeting.CalendarEventLink = *update.CalendarEventLink
	}
	if update.MeetLink != nil {
		meeting.MeetLink = *update.MeetLink
	}
	if update.MinutesID != nil {
		meeting.MinutesID = *update.MinutesID
	}
	if update.Status != nil {
		if !update.Status.Valid() {
			return nil, domain.NewValidationError("invalid meeting status")
		}
		meeting.Status = *update.Status
	}
	meeting.UpdatedAt = time.Now().UTC()

	if err := s.meetingRepo.Update(ctx, meeting, revision); err != nil {
		return nil, err
	}

	if err := s.messageBuilder.SendIndexMeeting(ctx, models.ActionUpdated, *meeting); err != nil {
		slog.WarnContext(ctx, "failed to send meeting index message", logging.ErrKey, err,
			"meeting_id", meeting.ID)
	}
	if err := s.messageBuilder.SendMeetingUpdated(ctx, models.MeetingUpdatedMessage{
		MeetingID: meeting.ID,
		Owner:     meeting.Owner,
	}); err != nil {
		slog.WarnContext(ctx, "failed to send meeting updated message", logging.ErrKey, err,
			"meeting_id", meeting.ID)
	}

	return meeting, nil
}

// CancelMeeting marks a meeting cancelled. Cancelling an already-cancelled
// meeting is a no-op, not an error.
func (s *LedgerService) CancelMeeting(ctx context.Context, principal, meetingID string) (*models.MeetingRecord, error) {
	meeting, err := s.GetMeeting(ctx, principal, meetingID)
	if err != nil {
		return nil, err
	}
	if meeting.Status == models.MeetingStatusCancelled {
		return meeting, nil
	}

	cancelled := models.MeetingStatusCancelled
	return s.UpdateMeeting(ctx, principal, meetingID, models.MeetingUpdate{Status: &cancelled})
}

// DeleteMeeting removes a meeting and prunes it from its thread. A thread
// left empty is removed entirely.
func (s *LedgerService) DeleteMeeting(ctx context.Context, principal, meetingID string) error {
	meeting, revision, err := s.meetingRepo.GetWithRevision(ctx, meetingID)
	if err != nil {
		return err
	}
	if !s.canAccess(principal, meeting) {
		return domain.NewNotFoundError("meeting not found")
	}

	if err := s.meetingRepo.Delete(ctx, meetingID, revision); err != nil {
		return err
	}

	if meeting.ThreadID != "" {
		if err := s.pruneThread(ctx, meeting.ThreadID, meetingID); err != nil {
			slog.WarnContext(ctx, "failed to prune thread after meeting delete",
				logging.ErrKey, err, "thread_id", meeting.ThreadID, "meeting_id", meetingID)
		}
	}

	if err := s.messageBuilder.SendDeleteIndexMeeting(ctx, meetingID); err != nil {
		slog.WarnContext(ctx, "failed to send meeting delete index message", logging.ErrKey, err,
			"meeting_id", meetingID)
	}
	if err := s.messageBuilder.SendMeetingDeleted(ctx, models.MeetingDeletedMessage{
		MeetingID: meetingID,
		Owner:     meeting.Owner,
	}); err != nil {
		slog.WarnContext(ctx, "failed to send meeting deleted message", logging.ErrKey, err,
			"meeting_id", meetingID)
	}

	return nil
}

// pruneThread removes the meeting from its thread, deleting the thread when
// it becomes empty.
func (s *LedgerService) pruneThread(ctx context.Context, threadID, meetingID string) error {
	thread, revision, err := s.threadRepo.GetWithRevision(ctx, threadID)
	if err != nil {
		return err
	}

	if !thread.Remove(meetingID) {
		return nil
	}

	if len(thread.MeetingIDs) == 0 {
		return s.threadRepo.Delete(ctx, threadID, revision)
	}
	return s.threadRepo.Update(ctx, thread, revision)
}

// FindRelatedMeetings returns the principal's non-cancelled meetings whose
// participant set overlaps the given names or whose title contains any
// keyword, newest first. Used to locate a follow-up's predecessor and to
// match reschedule or attendee-edit commands to a meeting.
func (s *LedgerService) FindRelatedMeetings(ctx context.Context, principal string, participantNames, titleKeywords []string) ([]*models.MeetingRecord, error) {
	meetings, err := s.meetingRepo.ListByOwner(ctx, principal)
	if err != nil {
		return nil, err
	}

	var matches []*models.MeetingRecord
	for _, meeting := range meetings {
		if meeting.Status == models.MeetingStatusCancelled {
			continue
		}
		if meetingMatchesHints(meeting, participantNames, titleKeywords) {
			matches = append(matches, meeting)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	return matches, nil
}

func meetingMatchesHints(meeting *models.MeetingRecord, participantNames, titleKeywords []string) bool {
	for _, name := range participantNames {
		needle := strings.ToLower(name)
		for _, participant := range meeting.Participants {
			haystack := strings.ToLower(participant)
			if strings.Contains(haystack, needle) || strings.Contains(needle, haystack) {
				return true
			}
		}
	}
	title := strings.ToLower(meeting.Title)
	for _, keyword := range titleKeywords {
		if keyword != "" && strings.Contains(title, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}
