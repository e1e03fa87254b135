// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import "time"

// ActionItem is a single follow-up task captured in meeting minutes.
type ActionItem struct {
	Description string `json:"description"`
	Owner       string `json:"owner,omitempty"`
	Deadline    string `json:"deadline,omitempty"`
	Status      string `json:"status,omitempty"`
}

// MinutesDocument is a persisted minutes-of-meeting record. Transcription
// and audio summarization are opaque to the assistant: the document stores
// whatever transcript text and audio summary path the caller hands in.
type MinutesDocument struct {
	ID                  string       `json:"id"`
	MeetingID           string       `json:"meeting_id"`
	Title               string       `json:"title"`
	Date                string       `json:"date,omitempty"` // YYYY-MM-DD
	Attendees           []string     `json:"attendees,omitempty"`
	Content             string       `json:"content,omitempty"`
	ActionItems         []ActionItem `json:"action_items,omitempty"`
	KeyDiscussionPoints []string     `json:"key_discussion_points,omitempty"`
	Decisions           []string     `json:"decisions,omitempty"`
	Transcript          string       `json:"transcript,omitempty"`
	AudioSummaryPath    string       `json:"audio_summary_path,omitempty"`
	CreatedAt           time.Time    `json:"created_at"`
}

// Tags generates a consistent set of searchable tags for the minutes document.
func (d *MinutesDocument) Tags() []string {
	var tags []string
	if d.ID != "" {
		tags = append(tags, d.ID)
	}
	if d.MeetingID != "" {
		tags = append(tags, d.MeetingID)
	}
	if d.Title != "" {
		tags = append(tags, d.Title)
	}
	return tags
}
