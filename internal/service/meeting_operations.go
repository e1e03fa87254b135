// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-office-assistant-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-office-assistant-service/pkg/utils"
)

// findTargetMeeting matches a reschedule, cancel, or attendee-edit command
// to one of the principal's meetings via the parser's hints. The newest
// match wins. With no hints at all, the most recent meeting is assumed.
func (s *ConversationService) findTargetMeeting(ctx context.Context, principal string, target *models.MeetingTarget) (*models.MeetingRecord, error) {
	var hints []string
	if target != nil {
		hints = target.ParticipantHints
	}

	if len(hints) > 0 {
		matches, err := s.ledger.FindRelatedMeetings(ctx, principal, hints, hints)
		if err != nil {
			return nil, err
		}
		if len(matches) > 0 {
			return matches[0], nil
		}
		return nil, nil
	}

	recent, err := s.ledger.GetRecentMeetings(ctx, principal, 0)
	if err != nil {
		return nil, err
	}
	for _, meeting := range recent {
		if meeting.Status != models.MeetingStatusCancelled {
			return meeting, nil
		}
	}
	return nil, nil
}

const targetNotFoundReply = "I couldn't find a meeting matching that. Could you tell me who it was with or what it was about?"

// handleReschedule moves an existing meeting to a new date or time.
func (s *ConversationService) handleReschedule(ctx context.Context, principal string, cmd *models.ParsedCommand, text string) (string, error) {
	meeting, err := s.findTargetMeeting(ctx, principal, cmd.TargetMeeting)
	if err != nil {
		return "", err
	}
	if meeting == nil {
		return targetNotFoundReply, nil
	}

	newDate, newTime := "", ""
	if cmd.TargetMeeting != nil {
		newDate = cmd.TargetMeeting.NewDate
		newTime = cmd.TargetMeeting.NewTime
	}
	if newDate == "" {
		if date, ok := ExtractDate(text, s.Now()); ok {
			newDate = date
		}
	}
	if newTime == "" {
		if clock, ok := ExtractTime(text); ok {
			newTime = clock
		}
	}

	if newDate == "" && newTime == "" {
		return fmt.Sprintf("When would you like to move \"%s\" to?", meeting.Title), nil
	}
	if newDate == "" {
		newDate = meeting.Date
	}
	if newTime == "" {
		// Moving to a new day without a time lands at the start of
		// working hours.
		newTime = fmt.Sprintf("%02d:00", constants.WorkingHoursStart)
	}

	start, err := time.ParseInLocation(constants.DateLayout+" "+constants.TimeLayout,
		newDate+" "+newTime, time.Local)
	if err != nil {
		return "I couldn't make sense of that date and time. Could you rephrase it?", nil
	}

	update := models.MeetingUpdate{
		Date: utils.StringPtr(newDate),
		Time: utils.StringPtr(newTime),
	}
	s.rebindCalendarEvent(ctx, meeting, start, &update)

	updated, err := s.ledger.UpdateMeeting(ctx, principal, meeting.ID, update)
	if err != nil {
		return "", err
	}

	s.notifyUpdate(ctx, principal, updated,
		fmt.Sprintf("The meeting has been moved to %s at %s.", newDate, newTime))
	return fmt.Sprintf("Done, I've moved \"%s\" to %s at %s.", updated.Title, newDate, newTime), nil
}

// rebindCalendarEvent moves the meeting's calendar event to the new start,
// creating a fresh event when the old one cannot be updated. Calendar
// failures leave the update untouched.
func (s *ConversationService) rebindCalendarEvent(ctx context.Context, meeting *models.MeetingRecord, start time.Time, update *models.MeetingUpdate) {
	provider, err := s.calendarRegistry.GetProvider(s.config.Platform)
	if err != nil || !provider.IsAuthenticated(ctx) {
		return
	}

	if meeting.CalendarEventID != "" {
		result, err := provider.UpdateEvent(ctx, meeting.CalendarEventID, start, meeting.DurationMinutes)
		if err == nil && result != nil && result.Success {
			return
		}
		slog.WarnContext(ctx, "calendar event update failed, creating a replacement",
			logging.ErrKey, err, "event_id", meeting.CalendarEventID)
	}

	result, err := provider.CreateEvent(ctx, domain.CreateEventInput{
		Title:           meeting.Title,
		Start:           start,
		DurationMinutes: meeting.DurationMinutes,
		Description:     meeting.Description,
		AttendeeEmails:  meeting.ParticipantEmails,
	})
	if err != nil || result == nil || !result.Success {
		slog.WarnContext(ctx, "calendar event creation failed", logging.ErrKey, err,
			"meeting_id", meeting.ID)
		return
	}

	update.CalendarEventID = utils.StringPtr(result.EventID)
	update.CalendarEventLink = utils.StringPtr(result.HTMLLink)
	update.MeetLink = utils.StringPtr(result.MeetLink)
}

// handleAddAttendees resolves the new names and adds them to the meeting.
func (s *ConversationService) handleAddAttendees(ctx context.Context, principal string, cmd *models.ParsedCommand) (string, error) {
	meeting, err := s.findTargetMeeting(ctx, principal, cmd.TargetMeeting)
	if err != nil {
		return "", err
	}
	if meeting == nil {
		return targetNotFoundReply, nil
	}

	var names []string
	if cmd.TargetMeeting != nil {
		names = cmd.TargetMeeting.AddNames
	}
	if len(names) == 0 {
		return fmt.Sprintf("Who should I add to \"%s\"?", meeting.Title), nil
	}

	var added []models.Contact
	var unresolved []string
	for _, name := range names {
		candidates, err := s.directory.ResolveParticipant(ctx, name, "")
		if err != nil {
			return "", err
		}
		if len(candidates) != 1 {
			unresolved = append(unresolved, name)
			continue
		}
		added = append(added, *candidates[0])
	}
	if len(unresolved) > 0 {
		return fmt.Sprintf("I couldn't uniquely identify %s in the directory. Could you give me full names?",
			strings.Join(unresolved, ", ")), nil
	}

	participants := append([]string{}, meeting.Participants...)
	emails := append([]string{}, meeting.ParticipantEmails...)
	var newAttendees []models.Contact
	for _, contact := range added {
		if containsEmail(emails, contact.Email) {
			continue
		}
		participants = append(participants, contact.Name)
		emails = append(emails, contact.Email)
		newAttendees = append(newAttendees, contact)
	}
	if len(newAttendees) == 0 {
		return fmt.Sprintf("Everyone you mentioned is already on \"%s\".", meeting.Title), nil
	}

	s.updateEventAttendees(ctx, meeting, emails)

	updated, err := s.ledger.UpdateMeeting(ctx, principal, meeting.ID, models.MeetingUpdate{
		Participants:      participants,
		ParticipantEmails: emails,
	})
	if err != nil {
		return "", err
	}

	s.sendInvitations(ctx, principal, updated, newAttendees)

	addedNames := make([]string, 0, len(newAttendees))
	for _, contact := range newAttendees {
		addedNames = append(addedNames, contact.Name)
	}
	return fmt.Sprintf("Done, I've added %s to \"%s\".", strings.Join(addedNames, ", "), updated.Title), nil
}

// handleRemoveAttendees drops the named attendees from the meeting. When no
// name matches a current attendee, nothing is changed.
func (s *ConversationService) handleRemoveAttendees(ctx context.Context, principal string, cmd *models.ParsedCommand) (string, error) {
	meeting, err := s.findTargetMeeting(ctx, principal, cmd.TargetMeeting)
	if err != nil {
		return "", err
	}
	if meeting == nil {
		return targetNotFoundReply, nil
	}

	var names []string
	if cmd.TargetMeeting != nil {
		names = cmd.TargetMeeting.RemoveNames
	}
	if len(names) == 0 {
		return fmt.Sprintf("Who should I remove from \"%s\"?", meeting.Title), nil
	}

	var participants []string
	var emails []string
	var removed []string
	var removedEmails []string
	for i, participant := range meeting.Participants {
		if matchesAnyName(participant, names) {
			removed = append(removed, participant)
			if i < len(meeting.ParticipantEmails) {
				removedEmails = append(removedEmails, meeting.ParticipantEmails[i])
			}
			continue
		}
		participants = append(participants, participant)
		if i < len(meeting.ParticipantEmails) {
			emails = append(emails, meeting.ParticipantEmails[i])
		}
	}
	if len(removed) == 0 {
		return fmt.Sprintf("I couldn't find %s among the attendees of \"%s\", so nothing was changed.",
			strings.Join(names, ", "), meeting.Title), nil
	}

	s.updateEventAttendees(ctx, meeting, emails)

	updated, err := s.ledger.UpdateMeeting(ctx, principal, meeting.ID, models.MeetingUpdate{
		Participants:      participants,
		ParticipantEmails: emails,
	})
	if err != nil {
		return "", err
	}

	s.notifyCancellations(ctx, principal, updated, removed, removedEmails,
		"You have been removed from this meeting.")
	return fmt.Sprintf("Done, I've removed %s from \"%s\".", strings.Join(removed, ", "), updated.Title), nil
}

// handleCancelMeeting cancels the target meeting and notifies its attendees.
func (s *ConversationService) handleCancelMeeting(ctx context.Context, principal string, cmd *models.ParsedCommand) (string, error) {
	meeting, err := s.findTargetMeeting(ctx, principal, cmd.TargetMeeting)
	if err != nil {
		return "", err
	}
	if meeting == nil {
		return targetNotFoundReply, nil
	}

	cancelled, err := s.ledger.CancelMeeting(ctx, principal, meeting.ID)
	if err != nil {
		return "", err
	}

	s.notifyCancellations(ctx, principal, cancelled, cancelled.Participants,
		cancelled.ParticipantEmails, "The meeting has been cancelled.")
	return fmt.Sprintf("Done, I've cancelled \"%s\" on %s at %s.",
		cancelled.Title, cancelled.Date, cancelled.Time), nil
}

// updateEventAttendees syncs the calendar event's attendee list, when there
// is an event to sync.
func (s *ConversationService) updateEventAttendees(ctx context.Context, meeting *models.MeetingRecord, emails []string) {
	if meeting.CalendarEventID == "" {
		return
	}
	provider, err := s.calendarRegistry.GetProvider(s.config.Platform)
	if err != nil || !provider.IsAuthenticated(ctx) {
		return
	}
	result, err := provider.UpdateEventAttendees(ctx, meeting.CalendarEventID, emails)
	if err != nil || result == nil || !result.Success {
		slog.WarnContext(ctx, "calendar attendee update failed", logging.ErrKey, err,
			"event_id", meeting.CalendarEventID)
	}
}

// notifyUpdate emails every attendee about a change to the meeting.
func (s *ConversationService) notifyUpdate(ctx context.Context, principal string, meeting *models.MeetingRecord, changeSummary string) {
	start, _, err := meeting.StartEnd()
	if err != nil {
		return
	}
	for i, email := range meeting.ParticipantEmails {
		if email == "" {
			continue
		}
		name := ""
		if i < len(meeting.Participants) {
			name = meeting.Participants[i]
		}
		if err := s.emailService.SendMeetingUpdate(ctx, domain.EmailUpdate{
			RecipientEmail: email,
			RecipientName:  name,
			MeetingTitle:   meeting.Title,
			StartTime:      start,
			Duration:       meeting.DurationMinutes,
			JoinLink:       meeting.MeetLink,
			Organizer:      principal,
			ChangeSummary:  changeSummary,
		}); err != nil {
			slog.WarnContext(ctx, "failed to send update email", logging.ErrKey, err,
				"recipient", email, "meeting_id", meeting.ID)
		}
	}
}

// notifyCancellations emails the given recipients that the meeting no longer
// applies to them.
func (s *ConversationService) notifyCancellations(ctx context.Context, principal string, meeting *models.MeetingRecord, names, emails []string, reason string) {
	start, _, err := meeting.StartEnd()
	if err != nil {
		return
	}
	for i, email := range emails {
		if email == "" {
			continue
		}
		name := ""
		if i < len(names) {
			name = names[i]
		}
		if err := s.emailService.SendMeetingCancellation(ctx, domain.EmailCancellation{
			RecipientEmail: email,
			RecipientName:  name,
			MeetingTitle:   meeting.Title,
			StartTime:      start,
			Duration:       meeting.DurationMinutes,
			Organizer:      principal,
			Reason:         reason,
		}); err != nil {
			slog.WarnContext(ctx, "failed to send cancellation email", logging.ErrKey, err,
				"recipient", email, "meeting_id", meeting.ID)
		}
	}
}

// containsEmail reports whether the email is present, case-insensitively.
func containsEmail(emails []string, email string) bool {
	for _, existing := range emails {
		if strings.EqualFold(existing, email) {
			return true
		}
	}
	return false
}

// matchesAnyName reports whether the participant matches one of the names
// by substring or prefix, case-insensitively.
func matchesAnyName(participant string, names []string) bool {
	haystack := strings.ToLower(participant)
	for _, name := range names {
		needle := strings.ToLower(strings.TrimSpace(name))
		if needle == "" {
			continue
		}
		if strings.Contains(haystack, needle) || strings.HasPrefix(needle, haystack) {
			return true
		}
	}
	return false
}
