// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

// Intent is the classified purpose of a user message.
type Intent string

// Intent constants
const (
	IntentScheduleMeeting   Intent = "schedule_meeting"
	IntentScheduleFollowUp  Intent = "schedule_followup"
	IntentRescheduleMeeting Intent = "reschedule_meeting"
	IntentAddAttendees      Intent = "add_attendees"
	IntentRemoveAttendees   Intent = "remove_attendees"
	IntentCancelMeeting     Intent = "cancel_meeting"
	IntentListMeetings      Intent = "list_meetings"
	IntentSearchMinutes     Intent = "search_mom"
	IntentUploadRecording   Intent = "upload_recording"
	IntentManageContacts    Intent = "manage_contacts"
	IntentProvideInfo       Intent = "provide_info"
	IntentConfirmation      Intent = "confirmation"
	IntentGeneralChat       Intent = "general_chat"
)

// Valid reports whether the intent is one of the known values.
func (i Intent) Valid() bool {
	switch i {
	case IntentScheduleMeeting, IntentScheduleFollowUp, IntentRescheduleMeeting,
		IntentAddAttendees, IntentRemoveAttendees, IntentCancelMeeting,
		IntentListMeetings, IntentSearchMinutes, IntentUploadRecording,
		IntentManageContacts, IntentProvideInfo, IntentConfirmation,
		IntentGeneralChat:
		return true
	}
	return false
}

// Interrupting reports whether the intent abandons an in-progress scheduling
// flow. When one of these arrives mid-flow, the conversation resets and the
// message is reprocessed as a fresh command.
func (i Intent) Interrupting() bool {
	switch i {
	case IntentListMeetings, IntentSearchMinutes, IntentUploadRecording,
		IntentManageContacts, IntentCancelMeeting, IntentRescheduleMeeting,
		IntentAddAttendees, IntentRemoveAttendees:
		return true
	}
	return false
}

// MeetingField identifies a required field of a meeting draft.
type MeetingField string

// MeetingField constants
const (
	FieldParticipants MeetingField = "participants"
	FieldDate         MeetingField = "date"
	FieldTime         MeetingField = "time"
	FieldDuration     MeetingField = "duration"
)

// ConfirmationDecision classifies a user reply to a confirmation prompt.
type ConfirmationDecision string

// ConfirmationDecision constants
const (
	DecisionConfirmed    ConfirmationDecision = "confirmed"
	DecisionCancelled    ConfirmationDecision = "cancelled"
	DecisionModification ConfirmationDecision = "modification"
)

// MeetingDetails holds the scheduling fields extracted from a message.
type MeetingDetails struct {
	Title             string            `json:"title,omitempty"`
	Date              string            `json:"date,omitempty"` // YYYY-MM-DD
	Time              string            `json:"time,omitempty"` // HH:MM, 24h
	DurationMinutes   int               `json:"duration_minutes,omitempty"`
	Description       string            `json:"description,omitempty"`
	Participants      []ParticipantSpec `json:"participants,omitempty"`
	UseFirstAvailable bool              `json:"use_first_available,omitempty"`
	IsFollowUp        bool              `json:"is_followup,omitempty"`
	FollowUpReference string            `json:"followup_reference,omitempty"`
}

// MeetingTarget identifies an existing meeting for reschedule, cancel and
// attendee-edit commands, via hints rather than IDs.
type MeetingTarget struct {
	ParticipantHints []string `json:"participant_hints,omitempty"`
	AddNames         []string `json:"add_names,omitempty"`
	RemoveNames      []string `json:"remove_names,omitempty"`
	NewDate          string   `json:"new_date,omitempty"`
	NewTime          string   `json:"new_time,omitempty"`
}

// ParsedCommand is the structured output of the command parser for one
// user message.
type ParsedCommand struct {
	Intent          Intent          `json:"intent"`
	Details         *MeetingDetails `json:"details,omitempty"`
	MissingFields   []MeetingField  `json:"missing_fields,omitempty"`
	SearchQuery     string          `json:"search_query,omitempty"`
	TargetMeeting   *MeetingTarget  `json:"target_meeting,omitempty"`
	ResponseMessage string          `json:"response_message,omitempty"`
}
