// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

// ConversationState is the dialogue state of one conversation.
type ConversationState string

// ConversationState constants
const (
	StateIdle                   ConversationState = "IDLE"
	StateCollectingInfo         ConversationState = "COLLECTING_INFO"
	StateAwaitingConfirmation   ConversationState = "AWAITING_CONFIRMATION"
	StateAwaitingSlotChoice     ConversationState = "AWAITING_SLOT_CHOICE"
	StateAwaitingDisambiguation ConversationState = "AWAITING_DISAMBIGUATION"
)

// Valid reports whether the state is one of the known values.
func (s ConversationState) Valid() bool {
	switch s {
	case StateIdle, StateCollectingInfo, StateAwaitingConfirmation,
		StateAwaitingSlotChoice, StateAwaitingDisambiguation:
		return true
	}
	return false
}

// Chat message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of the conversation transcript.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ParticipantSpec is a raw, unresolved participant reference from a message.
type ParticipantSpec struct {
	Name              string `json:"name"`
	Department        string `json:"department,omitempty"`
	IsDepartmentGroup bool   `json:"is_department_group,omitempty"`
}

// MeetingDraft is the in-progress, unpersisted meeting being assembled
// across a multi-turn conversation. It lives only inside the Conversation
// and is discarded on commit, cancellation, or intent switch.
type MeetingDraft struct {
	Title             string            `json:"title,omitempty"`
	Date              string            `json:"date,omitempty"` // YYYY-MM-DD
	Time              string            `json:"time,omitempty"` // HH:MM, 24h
	DurationMinutes   int               `json:"duration_minutes,omitempty"`
	Description       string            `json:"description,omitempty"`
	ParticipantsRaw   []ParticipantSpec `json:"participants_raw,omitempty"`
	UseFirstAvailable bool              `json:"use_first_available,omitempty"`
	IsFollowUp        bool              `json:"is_followup,omitempty"`
	FollowUpReference string            `json:"followup_reference,omitempty"`
}

// DisambiguationEntry holds one unresolved participant reference and the
// candidate contacts it matched. It exists only between the moment ambiguity
// is detected and the reply that resolves it.
type DisambiguationEntry struct {
	Spec       ParticipantSpec `json:"spec"`
	Candidates []Contact       `json:"candidates"`
}

// Conversation is the explicit per-conversation context object. It is owned
// by the caller's session layer and passed into every state-machine call;
// the services themselves hold no conversation state between calls.
type Conversation struct {
	State          ConversationState              `json:"state"`
	Draft          *MeetingDraft                  `json:"draft,omitempty"`
	Resolved       []Contact                      `json:"resolved,omitempty"`
	MissingFields  []MeetingField                 `json:"missing_fields,omitempty"`
	Disambiguation map[string]DisambiguationEntry `json:"disambiguation,omitempty"`
	History        []ChatMessage                  `json:"history,omitempty"`
}

// NewConversation creates an idle conversation with no draft.
func NewConversation() *Conversation {
	return &Conversation{
		State:          StateIdle,
		Disambiguation: make(map[string]DisambiguationEntry),
	}
}

// Reset abandons the in-progress draft and returns the conversation to idle.
// The transcript history is preserved.
func (c *Conversation) Reset() {
	c.State = StateIdle
	c.Draft = nil
	c.Resolved = nil
	c.MissingFields = nil
	c.Disambiguation = make(map[string]DisambiguationEntry)
}

// AppendHistory records one transcript turn.
func (c *Conversation) AppendHistory(role, content string) {
	c.History = append(c.History, ChatMessage{Role: role, Content: content})
}
