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
)

// ConversationService drives the dialogue state machine. Each incoming
// message is routed by the conversation's current state; the conversation
// object itself is owned by the caller's session layer.
type ConversationService struct {
	parser           domain.CommandParser
	directory        *DirectoryService
	ledger           *LedgerService
	minutes          *MinutesService
	calendarRegistry domain.CalendarRegistry
	emailService     domain.EmailService
	config           ServiceConfig

	// Now is swappable for tests.
	Now func() time.Time
}

// NewConversationService creates a new conversation service.
func NewConversationService(
	parser domain.CommandParser,
	directory *DirectoryService,
	ledger *LedgerService,
	minutes *MinutesService,
	calendarRegistry domain.CalendarRegistry,
	emailService domain.EmailService,
	config ServiceConfig,
) *ConversationService {
	return &ConversationService{
		parser:           parser,
		directory:        directory,
		ledger:           ledger,
		minutes:          minutes,
		calendarRegistry: calendarRegistry,
		emailService:     emailService,
		config:           config,
		Now:              time.Now,
	}
}

// invitationICSBuilder is implemented by email services that can produce an
// ICS attachment for an invitation. Plain implementations skip it.
type invitationICSBuilder interface {
	BuildInvitationICSAttachment(invitation domain.EmailInvitation, meetingID string) (*domain.EmailAttachment, error)
}

// ProcessMessage handles one user message and returns the assistant's reply.
// The reply and both transcript turns are recorded on the conversation.
func (s *ConversationService) ProcessMessage(ctx context.Context, principal string, conv *models.Conversation, text string) (string, error) {
	if conv.Disambiguation == nil {
		conv.Disambiguation = make(map[string]models.DisambiguationEntry)
	}
	if conv.State != models.StateIdle && conv.Draft == nil {
		// A corrupted session cannot be resumed; treat it as a fresh turn.
		conv.Reset()
	}
	conv.AppendHistory(models.RoleUser, text)

	var reply string
	var err error
	switch conv.State {
	case models.StateCollectingInfo:
		reply, err = s.handleCollecting(ctx, principal, conv, text)
	case models.StateAwaitingConfirmation:
		reply, err = s.handleConfirmation(ctx, principal, conv, text)
	case models.StateAwaitingSlotChoice:
		reply, err = s.handleSlotChoice(ctx, principal, conv, text)
	case models.StateAwaitingDisambiguation:
		reply, err = s.handleDisambiguation(ctx, principal, conv, text)
	default:
		reply, err = s.handleIdle(ctx, principal, conv, text)
	}
	if err != nil {
		return "", err
	}

	conv.AppendHistory(models.RoleAssistant, reply)
	return reply, nil
}

// handleIdle parses a fresh command and dispatches it.
func (s *ConversationService) handleIdle(ctx context.Context, principal string, conv *models.Conversation, text string) (string, error) {
	cmd, err := s.parser.ParseCommand(ctx, text, conv.History)
	if err != nil {
		return "", err
	}
	return s.dispatchCommand(ctx, principal, conv, cmd, text)
}

// dispatchCommand routes a parsed command from the idle state.
func (s *ConversationService) dispatchCommand(ctx context.Context, principal string, conv *models.Conversation, cmd *models.ParsedCommand, text string) (string, error) {
	switch cmd.Intent {
	case models.IntentScheduleMeeting, models.IntentScheduleFollowUp:
		return s.startScheduling(ctx, principal, conv, cmd)
	case models.IntentRescheduleMeeting:
		return s.handleReschedule(ctx, principal, cmd, text)
	case models.IntentAddAttendees:
		return s.handleAddAttendees(ctx, principal, cmd)
	case models.IntentRemoveAttendees:
		return s.handleRemoveAttendees(ctx, principal, cmd)
	case models.IntentCancelMeeting:
		return s.handleCancelMeeting(ctx, principal, cmd)
	case models.IntentListMeetings:
		return s.handleListMeetings(ctx, principal)
	case models.IntentSearchMinutes:
		return s.handleSearchMinutes(ctx, cmd, text)
	case models.IntentUploadRecording:
		return "Please share the transcript text or recording summary along with the meeting it belongs to, and I'll file the minutes for you.", nil
	case models.IntentManageContacts:
		return "You can manage contacts through the directory API. Tell me a name and I'll check whether it's already in the directory.", nil
	case models.IntentProvideInfo, models.IntentConfirmation:
		return "I don't have a meeting in progress right now. Would you like to schedule one?", nil
	default:
		if cmd.ResponseMessage != "" {
			return cmd.ResponseMessage, nil
		}
		return "I can schedule meetings, manage attendees, and search meeting minutes. What would you like to do?", nil
	}
}

// startScheduling seeds a new draft from the parsed command and advances it.
func (s *ConversationService) startScheduling(ctx context.Context, principal string, conv *models.Conversation, cmd *models.ParsedCommand) (string, error) {
	draft := &models.MeetingDraft{
		IsFollowUp: cmd.Intent == models.IntentScheduleFollowUp,
	}
	if details := cmd.Details; details != nil {
		draft.Title = details.Title
		draft.Date = details.Date
		draft.Time = details.Time
		draft.DurationMinutes = details.DurationMinutes
		draft.Description = details.Description
		draft.ParticipantsRaw = details.Participants
		draft.UseFirstAvailable = details.UseFirstAvailable
		draft.IsFollowUp = draft.IsFollowUp || details.IsFollowUp
		draft.FollowUpReference = details.FollowUpReference
	}

	conv.Draft = draft
	conv.Resolved = nil
	conv.Disambiguation = make(map[string]models.DisambiguationEntry)
	conv.State = models.StateCollectingInfo

	if err := s.resolveParticipants(ctx, conv); err != nil {
		return "", err
	}
	return s.advanceDraft(ctx, principal, conv)
}

// resolveParticipants resolves the draft's raw participant references
// against the directory. Resolved specs are consumed; ambiguous or unknown
// ones become disambiguation entries.
func (s *ConversationService) resolveParticipants(ctx context.Context, conv *models.Conversation) error {
	draft := conv.Draft
	var remaining []models.ParticipantSpec

	for _, spec := range draft.ParticipantsRaw {
		if spec.IsDepartmentGroup {
			department := spec.Department
			if department == "" {
				department = spec.Name
			}
			members, err := s.directory.GetDepartmentMembers(ctx, department)
			if err != nil {
				return err
			}
			if len(members) == 0 {
				conv.Disambiguation[spec.Name] = models.DisambiguationEntry{Spec: spec}
				remaining = append(remaining, spec)
				continue
			}
			for _, member := range members {
				addResolved(conv, *member)
			}
			continue
		}

		candidates, err := s.directory.ResolveParticipant(ctx, spec.Name, spec.Department)
		if err != nil {
			return err
		}
		if len(candidates) == 1 {
			addResolved(conv, *candidates[0])
			continue
		}

		entry := models.DisambiguationEntry{Spec: spec}
		for _, candidate := range candidates {
			entry.Candidates = append(entry.Candidates, *candidate)
		}
		conv.Disambiguation[spec.Name] = entry
		remaining = append(remaining, spec)
	}

	draft.ParticipantsRaw = remaining
	return nil
}

// addResolved appends a contact unless an equivalent one is already present.
// Contacts are deduplicated by email, falling back to name.
func addResolved(conv *models.Conversation, contact models.Contact) {
	for _, existing := range conv.Resolved {
		if contact.Email != "" && strings.EqualFold(existing.Email, contact.Email) {
			return
		}
		if contact.Email == "" && strings.EqualFold(existing.Name, contact.Name) {
			return
		}
	}
	conv.Resolved = append(conv.Resolved, contact)
}

// advanceDraft moves the conversation to its next state: disambiguation,
// collecting missing fields, slot choice on a conflict, or confirmation.
func (s *ConversationService) advanceDraft(ctx context.Context, principal string, conv *models.Conversation) (string, error) {
	if len(conv.Disambiguation) > 0 {
		conv.State = models.StateAwaitingDisambiguation
		return s.disambiguationPrompt(conv), nil
	}

	draft := conv.Draft
	conv.MissingFields = s.missingFields(conv)
	if len(conv.MissingFields) > 0 {
		conv.State = models.StateCollectingInfo
		return askForMissing(conv.MissingFields), nil
	}

	duration := draft.DurationMinutes
	if duration == 0 {
		duration = constants.DefaultMeetingDurationMinutes
	}

	if draft.UseFirstAvailable && draft.Time == "" {
		return s.pickFirstAvailable(ctx, principal, conv, duration)
	}

	conflicts, err := s.ledger.GetConflictingMeetings(ctx, principal, draft.Date, draft.Time, duration, "")
	if err != nil {
		return "", err
	}
	if len(conflicts) > 0 {
		return s.offerAlternatives(ctx, principal, conv, conflicts[0], duration)
	}

	conv.State = models.StateAwaitingConfirmation
	return s.confirmationPrompt(conv), nil
}

// missingFields lists the required draft fields that are still empty. The
// meeting length is never required: it defaults when the meeting commits.
func (s *ConversationService) missingFields(conv *models.Conversation) []models.MeetingField {
	draft := conv.Draft
	var missing []models.MeetingField
	if len(conv.Resolved) == 0 && len(draft.ParticipantsRaw) == 0 {
		missing = append(missing, models.FieldParticipants)
	}
	if draft.Date == "" {
		missing = append(missing, models.FieldDate)
	}
	if draft.Time == "" && !draft.UseFirstAvailable {
		missing = append(missing, models.FieldTime)
	}
	return missing
}

func askForMissing(missing []models.MeetingField) string {
	var wanted []string
	for _, field := range missing {
		switch field {
		case models.FieldParticipants:
			wanted = append(wanted, "who should attend")
		case models.FieldDate:
			wanted = append(wanted, "what date")
		case models.FieldTime:
			wanted = append(wanted, "what time")
		}
	}
	return fmt.Sprintf("Sure, I can set that up. Could you tell me %s?", strings.Join(wanted, " and "))
}

// pickFirstAvailable fills the draft's time with the earliest open slot on
// the requested date.
func (s *ConversationService) pickFirstAvailable(ctx context.Context, principal string, conv *models.Conversation, duration int) (string, error) {
	draft := conv.Draft
	date, err := time.ParseInLocation(constants.DateLayout, draft.Date, time.Local)
	if err != nil {
		conv.Draft.Date = ""
		conv.State = models.StateCollectingInfo
		return "I couldn't make sense of that date. What date would you like?", nil
	}

	busy, err := s.busyIntervals(ctx, principal, draft.Date, date)
	if err != nil {
		return "", err
	}

	slot, ok := FindFirstAvailable(date, duration, busy)
	if !ok {
		conv.Draft.Date = ""
		conv.State = models.StateCollectingInfo
		return fmt.Sprintf("It looks like %s is fully booked. Would another date work?", draft.Date), nil
	}

	draft.Time = slot.TimeLabel()
	conv.State = models.StateAwaitingConfirmation
	return s.confirmationPrompt(conv), nil
}

// offerAlternatives reports a conflict and proposes open slots on the same
// day.
func (s *ConversationService) offerAlternatives(ctx context.Context, principal string, conv *models.Conversation, conflict *models.MeetingRecord, duration int) (string, error) {
	draft := conv.Draft
	date, err := time.ParseInLocation(constants.DateLayout, draft.Date, time.Local)
	if err != nil {
		conv.Draft.Date = ""
		conv.State = models.StateCollectingInfo
		return "I couldn't make sense of that date. What date would you like?", nil
	}

	busy, err := s.busyIntervals(ctx, principal, draft.Date, date)
	if err != nil {
		return "", err
	}

	slots := FindSlots(date, duration, busy)
	if len(slots) == 0 {
		conv.Draft.Date = ""
		conv.State = models.StateCollectingInfo
		return fmt.Sprintf("That time clashes with \"%s\" and %s has no other openings. Would another date work?",
			conflict.Title, draft.Date), nil
	}

	labels := make([]string, 0, 3)
	for i, slot := range slots {
		if i == 3 {
			break
		}
		labels = append(labels, slot.TimeLabel())
	}

	draft.Time = ""
	conv.State = models.StateAwaitingSlotChoice
	return fmt.Sprintf("That time clashes with \"%s\". On %s I could do %s instead. Which works for you?",
		conflict.Title, draft.Date, strings.Join(labels, ", ")), nil
}

// busyIntervals combines the calendar provider's busy time with the owner's
// ledger meetings on the date. A missing or unauthenticated provider just
// contributes nothing.
func (s *ConversationService) busyIntervals(ctx context.Context, principal, dateText string, date time.Time) ([]domain.TimeInterval, error) {
	var busy []domain.TimeInterval

	if provider, err := s.calendarRegistry.GetProvider(s.config.Platform); err == nil && provider.IsAuthenticated(ctx) {
		intervals, err := provider.BusyIntervals(ctx, date)
		if err != nil {
			slog.WarnContext(ctx, "failed to fetch calendar busy intervals", logging.ErrKey, err)
		} else {
			busy = append(busy, intervals...)
		}
	}

	meetings, err := s.ledger.GetRecentMeetings(ctx, principal, 0)
	if err != nil {
		return nil, err
	}
	for _, meeting := range meetings {
		if meeting.Date != dateText || meeting.Status == models.MeetingStatusCancelled {
			continue
		}
		start, end, err := meeting.StartEnd()
		if err != nil {
			continue
		}
		busy = append(busy, domain.TimeInterval{Start: start, End: end})
	}
	return busy, nil
}

// confirmationPrompt summarizes the draft for a yes/no check.
func (s *ConversationService) confirmationPrompt(conv *models.Conversation) string {
	draft := conv.Draft

	names := make([]string, 0, len(conv.Resolved))
	for _, contact := range conv.Resolved {
		names = append(names, contact.Name)
	}

	durationText := fmt.Sprintf("%d minutes", draft.DurationMinutes)
	if draft.DurationMinutes == 0 {
		durationText = fmt.Sprintf("%d minutes (default)", constants.DefaultMeetingDurationMinutes)
	}

	return fmt.Sprintf("Here's what I have: a meeting with %s on %s at %s, %s. Shall I schedule it?",
		strings.Join(names, ", "), draft.Date, draft.Time, durationText)
}

// disambiguationPrompt asks the user to pick between candidate contacts, or
// to clarify a name nobody matched.
func (s *ConversationService) disambiguationPrompt(conv *models.Conversation) string {
	var parts []string
	for name, entry := range conv.Disambiguation {
		if len(entry.Candidates) == 0 {
			parts = append(parts, fmt.Sprintf("I couldn't find anyone matching \"%s\" in the directory. Could you give me a full name?", name))
			continue
		}
		options := make([]string, 0, len(entry.Candidates))
		for _, candidate := range entry.Candidates {
			label := candidate.Name
			if candidate.Department != "" {
				label = fmt.Sprintf("%s (%s)", candidate.Name, candidate.Department)
			}
			options = append(options, label)
		}
		parts = append(parts, fmt.Sprintf("I found %d people matching \"%s\": %s. Which one did you mean?",
			len(entry.Candidates), name, strings.Join(options, ", ")))
	}
	return strings.Join(parts, " ")
}

// handleCollecting merges newly provided details into the draft. Fields the
// user already gave are kept; only gaps are filled.
func (s *ConversationService) handleCollecting(ctx context.Context, principal string, conv *models.Conversation, text string) (string, error) {
	cmd, err := s.parser.ParseCommand(ctx, text, conv.History)
	if err != nil {
		return "", err
	}
	if cmd.Intent.Interrupting() {
		conv.Reset()
		return s.dispatchCommand(ctx, principal, conv, cmd, text)
	}

	s.mergeDetails(conv, cmd.Details, text, false)

	if err := s.resolveParticipants(ctx, conv); err != nil {
		return "", err
	}
	return s.advanceDraft(ctx, principal, conv)
}

// mergeDetails folds parsed details into the draft and falls back to regex
// extraction for anything the parser missed. With overwrite set, provided
// fields replace existing ones; otherwise only empty fields are filled.
func (s *ConversationService) mergeDetails(conv *models.Conversation, details *models.MeetingDetails, text string, overwrite bool) {
	draft := conv.Draft
	if details != nil {
		if details.Date != "" && (overwrite || draft.Date == "") {
			draft.Date = details.Date
		}
		if details.Time != "" && (overwrite || draft.Time == "") {
			draft.Time = details.Time
		}
		if details.DurationMinutes != 0 && (overwrite || draft.DurationMinutes == 0) {
			draft.DurationMinutes = details.DurationMinutes
		}
		if details.Title != "" && (overwrite || draft.Title == "") {
			draft.Title = details.Title
		}
		if details.Description != "" && (overwrite || draft.Description == "") {
			draft.Description = details.Description
		}
		if details.UseFirstAvailable {
			draft.UseFirstAvailable = true
		}
		draft.ParticipantsRaw = append(draft.ParticipantsRaw, details.Participants...)
	}

	now := s.Now()
	if draft.Date == "" {
		if date, ok := ExtractDate(text, now); ok {
			draft.Date = date
		}
	}
	if draft.Time == "" {
		if clock, ok := ExtractTime(text); ok {
			draft.Time = clock
		}
	}
	if draft.DurationMinutes == 0 {
		if minutes, ok := ExtractDuration(text); ok {
			draft.DurationMinutes = minutes
		}
	}
}

// Confirmation reply lexicons. Checked before asking the language model so
// that a plain "yes" never depends on an API call.
var (
	affirmativeReplies = map[string]struct{}{
		"yes": {}, "y": {}, "yeah": {}, "yep": {}, "sure": {}, "go ahead": {},
		"confirm": {}, "ok": {}, "okay": {}, "schedule it": {}, "do it": {},
		"please": {}, "yes please": {}, "sounds good": {}, "please do": {},
	}
	negativeReplies = map[string]struct{}{
		"no": {}, "n": {}, "nope": {}, "cancel": {}, "nevermind": {},
		"never mind": {}, "forget it": {}, "stop": {},
	}
)

func normalizeReply(text string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(text), ".!?,"))
}

// isNegativeReply matches the decline lexicon. A reply leading with a bare
// "no" counts even when more words follow, so "no, forget it" declines
// without a parser round trip.
func isNegativeReply(normalized string) bool {
	if _, ok := negativeReplies[normalized]; ok {
		return true
	}
	fields := strings.Fields(strings.ReplaceAll(normalized, ",", " "))
	return len(fields) > 0 && (fields[0] == "no" || fields[0] == "nope")
}

// handleConfirmation interprets the reply to a confirmation prompt.
func (s *ConversationService) handleConfirmation(ctx context.Context, principal string, conv *models.Conversation, text string) (string, error) {
	normalized := normalizeReply(text)
	if _, ok := affirmativeReplies[normalized]; ok {
		return s.commitMeeting(ctx, principal, conv)
	}
	if isNegativeReply(normalized) {
		conv.Reset()
		return "Okay, I've dropped that. Let me know if you need anything else.", nil
	}

	decision, err := s.parser.ClassifyConfirmation(ctx, text)
	if err != nil {
		decision = models.DecisionModification
	}
	switch decision {
	case models.DecisionConfirmed:
		return s.commitMeeting(ctx, principal, conv)
	case models.DecisionCancelled:
		conv.Reset()
		return "Okay, I've dropped that. Let me know if you need anything else.", nil
	}

	// The reply is a change request. Parse it and apply the changes.
	cmd, err := s.parser.ParseCommand(ctx, text, conv.History)
	if err != nil {
		return "", err
	}
	if cmd.Intent.Interrupting() {
		conv.Reset()
		return s.dispatchCommand(ctx, principal, conv, cmd, text)
	}

	s.mergeDetails(conv, cmd.Details, text, true)
	if err := s.resolveParticipants(ctx, conv); err != nil {
		return "", err
	}
	return s.advanceDraft(ctx, principal, conv)
}

// handleSlotChoice interprets the reply to an alternative-slot offer.
func (s *ConversationService) handleSlotChoice(ctx context.Context, principal string, conv *models.Conversation, text string) (string, error) {
	normalized := normalizeReply(text)
	if isNegativeReply(normalized) {
		conv.Reset()
		return "Okay, I've dropped that. Let me know if you need anything else.", nil
	}

	cmd, err := s.parser.ParseCommand(ctx, text, conv.History)
	if err != nil {
		return "", err
	}
	if cmd.Intent.Interrupting() {
		conv.Reset()
		return s.dispatchCommand(ctx, principal, conv, cmd, text)
	}

	if strings.Contains(normalized, "first") || strings.Contains(normalized, "earliest") {
		conv.Draft.UseFirstAvailable = true
		return s.advanceDraft(ctx, principal, conv)
	}

	if clock, ok := ExtractTime(text); ok {
		conv.Draft.Time = clock
		return s.advanceDraft(ctx, principal, conv)
	}
	if date, ok := ExtractDate(text, s.Now()); ok {
		conv.Draft.Date = date
		conv.Draft.Time = ""
		conv.Draft.UseFirstAvailable = true
		return s.advanceDraft(ctx, principal, conv)
	}

	return "Please pick one of the suggested times, give me another time or date, or say cancel.", nil
}

// handleDisambiguation matches the reply against the outstanding candidate
// sets and re-prompts if ambiguity remains.
func (s *ConversationService) handleDisambiguation(ctx context.Context, principal string, conv *models.Conversation, text string) (string, error) {
	normalized := normalizeReply(text)
	if isNegativeReply(normalized) {
		conv.Reset()
		return "Okay, I've dropped that. Let me know if you need anything else.", nil
	}

	cmd, err := s.parser.ParseCommand(ctx, text, conv.History)
	if err != nil {
		return "", err
	}
	if cmd.Intent.Interrupting() {
		conv.Reset()
		return s.dispatchCommand(ctx, principal, conv, cmd, text)
	}

	for name, entry := range conv.Disambiguation {
		if len(entry.Candidates) == 0 {
			// The name matched nobody; re-resolve from the parser's extracted
			// names, or the whole reply when it extracted none.
			refs := []models.ParticipantSpec{{Name: strings.TrimSpace(text), Department: entry.Spec.Department}}
			if cmd.Details != nil && len(cmd.Details.Participants) > 0 {
				refs = cmd.Details.Participants
			}
			for _, ref := range refs {
				department := ref.Department
				if department == "" {
					department = entry.Spec.Department
				}
				candidates, err := s.directory.ResolveParticipant(ctx, ref.Name, department)
				if err != nil {
					return "", err
				}
				if len(candidates) == 1 {
					addResolved(conv, *candidates[0])
					delete(conv.Disambiguation, name)
					removeSpec(conv.Draft, name)
					break
				}
			}
			continue
		}

		if chosen, ok := pickCandidate(entry.Candidates, text); ok {
			addResolved(conv, chosen)
			delete(conv.Disambiguation, name)
			removeSpec(conv.Draft, name)
		}
	}

	if len(conv.Disambiguation) > 0 {
		return s.disambiguationPrompt(conv), nil
	}
	return s.advanceDraft(ctx, principal, conv)
}

// pickCandidate matches the reply against a candidate's full name or
// department. The match must be unique to count.
func pickCandidate(candidates []models.Contact, reply string) (models.Contact, bool) {
	lower := strings.ToLower(reply)

	var matches []models.Contact
	for _, candidate := range candidates {
		if strings.Contains(lower, strings.ToLower(candidate.Name)) {
			matches = append(matches, candidate)
			continue
		}
		if candidate.Department != "" && strings.Contains(lower, strings.ToLower(candidate.Department)) {
			matches = append(matches, candidate)
		}
	}
	if len(matches) == 1 {
		return matches[0], true
	}
	return models.Contact{}, false
}

// removeSpec drops a resolved participant reference from the draft.
func removeSpec(draft *models.MeetingDraft, name string) {
	var remaining []models.ParticipantSpec
	for _, spec := range draft.ParticipantsRaw {
		if !strings.EqualFold(spec.Name, name) {
			remaining = append(remaining, spec)
		}
	}
	draft.ParticipantsRaw = remaining
}

// commitMeeting persists the confirmed draft, creates the calendar event,
// and sends invitations. Calendar and email failures do not undo the saved
// meeting; only a persistence failure is fatal.
func (s *ConversationService) commitMeeting(ctx context.Context, principal string, conv *models.Conversation) (string, error) {
	draft := conv.Draft
	if draft == nil {
		conv.Reset()
		return "I don't have a meeting in progress right now. Would you like to schedule one?", nil
	}

	duration := draft.DurationMinutes
	if duration == 0 {
		duration = constants.DefaultMeetingDurationMinutes
	}

	title := draft.Title
	if title == "" {
		title = defaultMeetingTitle(conv.Resolved)
	}

	names := make([]string, 0, len(conv.Resolved))
	emails := make([]string, 0, len(conv.Resolved))
	for _, contact := range conv.Resolved {
		names = append(names, contact.Name)
		emails = append(emails, contact.Email)
	}

	record := &models.MeetingRecord{
		Owner:             principal,
		Title:             title,
		Date:              draft.Date,
		Time:              draft.Time,
		DurationMinutes:   duration,
		Description:       draft.Description,
		Participants:      names,
		ParticipantEmails: emails,
	}

	start, _, err := record.StartEnd()
	if err != nil {
		conv.Reset()
		return "I couldn't make sense of that date and time, so I've dropped the draft. Let's try again: when would you like to meet?", nil
	}

	calendarFailed := !s.bindCalendarEvent(ctx, record, start, duration, emails)

	parentID := ""
	if draft.IsFollowUp {
		parentID = s.findFollowUpParent(ctx, principal, names, draft.FollowUpReference)
	}

	meeting, err := s.ledger.AddMeeting(ctx, record, parentID)
	if err != nil {
		conv.Reset()
		return "", err
	}

	s.sendInvitations(ctx, principal, meeting, conv.Resolved)
	s.notifyOrganizer(ctx, principal, meeting)
	conv.Reset()

	reply := fmt.Sprintf("Done! I've scheduled \"%s\" on %s at %s (%d minutes) with %s.",
		meeting.Title, meeting.Date, meeting.Time, meeting.DurationMinutes, strings.Join(names, ", "))
	if calendarFailed {
		reply = fmt.Sprintf("I've scheduled \"%s\" on %s at %s (%d minutes) with %s, but the calendar invite could not be created.",
			meeting.Title, meeting.Date, meeting.Time, meeting.DurationMinutes, strings.Join(names, ", "))
	}
	return reply, nil
}

// bindCalendarEvent creates the calendar event and records its links on the
// meeting. Returns false when no event could be created.
func (s *ConversationService) bindCalendarEvent(ctx context.Context, record *models.MeetingRecord, start time.Time, duration int, emails []string) bool {
	provider, err := s.calendarRegistry.GetProvider(s.config.Platform)
	if err != nil || !provider.IsAuthenticated(ctx) {
		return false
	}

	result, err := provider.CreateEvent(ctx, domain.CreateEventInput{
		Title:           record.Title,
		Start:           start,
		DurationMinutes: duration,
		Description:     record.Description,
		AttendeeEmails:  emails,
	})
	if err != nil || result == nil || !result.Success {
		slog.WarnContext(ctx, "calendar event creation failed", logging.ErrKey, err)
		return false
	}

	record.CalendarEventID = result.EventID
	record.CalendarEventLink = result.HTMLLink
	record.MeetLink = result.MeetLink
	return true
}

// findFollowUpParent locates the predecessor of a follow-up meeting via
// participant overlap and the user's reference phrase.
func (s *ConversationService) findFollowUpParent(ctx context.Context, principal string, names []string, reference string) string {
	keywords := strings.Fields(reference)
	related, err := s.ledger.FindRelatedMeetings(ctx, principal, names, keywords)
	if err != nil {
		slog.WarnContext(ctx, "failed to find follow-up parent", logging.ErrKey, err)
		return ""
	}
	if len(related) == 0 {
		return ""
	}
	return related[0].ID
}

// defaultMeetingTitle builds a title from the first names of up to three
// attendees.
func defaultMeetingTitle(resolved []models.Contact) string {
	if len(resolved) == 0 {
		return "Meeting"
	}

	firstNames := make([]string, 0, 3)
	for i := range resolved {
		if i == 3 {
			break
		}
		firstNames = append(firstNames, resolved[i].FirstName())
	}

	title := "Meeting with " + strings.Join(firstNames, ", ")
	if len(resolved) > 3 {
		title += " and others"
	}
	return title
}

// sendInvitations emails each resolved attendee. Failures are logged and
// never surfaced to the user.
func (s *ConversationService) sendInvitations(ctx context.Context, principal string, meeting *models.MeetingRecord, resolved []models.Contact) {
	start, _, err := meeting.StartEnd()
	if err != nil {
		return
	}

	builder, canBuildICS := s.emailService.(invitationICSBuilder)
	for _, contact := range resolved {
		if contact.Email == "" {
			continue
		}

		invitation := domain.EmailInvitation{
			RecipientEmail: contact.Email,
			RecipientName:  contact.Name,
			MeetingTitle:   meeting.Title,
			StartTime:      start,
			Duration:       meeting.DurationMinutes,
			Description:    meeting.Description,
			JoinLink:       meeting.MeetLink,
			Organizer:      principal,
		}
		if canBuildICS {
			attachment, err := builder.BuildInvitationICSAttachment(invitation, meeting.ID)
			if err != nil {
				slog.WarnContext(ctx, "failed to build ICS attachment", logging.ErrKey, err,
					"meeting_id", meeting.ID)
			} else {
				invitation.ICSAttachment = attachment
			}
		}

		if err := s.emailService.SendMeetingInvitation(ctx, invitation); err != nil {
			slog.WarnContext(ctx, "failed to send invitation email", logging.ErrKey, err,
				"recipient", contact.Email, "meeting_id", meeting.ID)
		}
	}
}

// organizerContact resolves the principal to a directory contact. A principal
// that looks like an address but is not in the directory is mailed directly.
func (s *ConversationService) organizerContact(ctx context.Context, principal string) *models.Contact {
	if strings.Contains(principal, "@") {
		contact, err := s.directory.FindByEmail(ctx, principal)
		if err == nil && contact != nil {
			return contact
		}
		return &models.Contact{Name: principal, Email: principal}
	}

	contact, err := s.directory.FindByExactName(ctx, principal)
	if err != nil || contact == nil {
		return nil
	}
	return contact
}

// notifyOrganizer sends the organizer their own confirmation of a committed
// meeting. Skipped when the principal has no known address or is already on
// the attendee list.
func (s *ConversationService) notifyOrganizer(ctx context.Context, principal string, meeting *models.MeetingRecord) {
	organizer := s.organizerContact(ctx, principal)
	if organizer == nil || organizer.Email == "" {
		return
	}
	for _, email := range meeting.ParticipantEmails {
		if strings.EqualFold(email, organizer.Email) {
			return
		}
	}
	s.sendInvitations(ctx, principal, meeting, []models.Contact{*organizer})
}

// handleListMeetings formats the principal's upcoming meetings.
func (s *ConversationService) handleListMeetings(ctx context.Context, principal string) (string, error) {
	meetings, err := s.ledger.GetRecentMeetings(ctx, principal, 10)
	if err != nil {
		return "", err
	}
	if len(meetings) == 0 {
		return "You have no meetings on record.", nil
	}

	var b strings.Builder
	b.WriteString("Here are your meetings:\n")
	for _, meeting := range meetings {
		fmt.Fprintf(&b, "- \"%s\" on %s at %s with %s (%s)\n",
			meeting.Title, meeting.Date, meeting.Time,
			strings.Join(meeting.Participants, ", "), meeting.Status)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// handleSearchMinutes looks up minutes documents matching the query.
func (s *ConversationService) handleSearchMinutes(ctx context.Context, cmd *models.ParsedCommand, text string) (string, error) {
	query := cmd.SearchQuery
	if query == "" {
		query = text
	}

	documents, err := s.minutes.SearchMinutes(ctx, query)
	if err != nil {
		return "", err
	}
	if len(documents) == 0 {
		return fmt.Sprintf("I couldn't find any meeting minutes matching \"%s\".", query), nil
	}

	if len(documents) == 1 {
		return s.minutes.FormatMinutes(documents[0]), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I found %d minutes documents:\n", len(documents))
	for _, document := range documents {
		fmt.Fprintf(&b, "- %s", document.Title)
		if document.Date != "" {
			fmt.Fprintf(&b, " (%s)", document.Date)
		}
		b.WriteString("\n")
	}
	b.WriteString("Which one would you like to see?")
	return b.String(), nil
}
