// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package nlu parses free-text user messages into structured commands using
// the Gemini API.
package nlu

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/logging"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

// historyWindow is how many recent messages are included for context.
const historyWindow = 10

// GeminiParser implements domain.CommandParser on top of the Gemini API.
type GeminiParser struct {
	client *genai.Client
	model  string

	// Now is injectable for tests.
	Now func() time.Time
}

// NewGeminiParser creates a parser backed by the Gemini API.
func NewGeminiParser(ctx context.Context, apiKey, model string) (*GeminiParser, error) {
	if apiKey == "" {
		return nil, domain.NewValidationError("gemini api key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, domain.NewUnavailableError("failed to create gemini client", err)
	}

	return &GeminiParser{
		client: client,
		model:  model,
		Now:    time.Now,
	}, nil
}

// parsedWire is the JSON shape the model is instructed to return.
type parsedWire struct {
	Intent          string                 `json:"intent"`
	Details         *models.MeetingDetails `json:"details,omitempty"`
	MissingFields   []string               `json:"missing_fields,omitempty"`
	SearchQuery     string                 `json:"search_query,omitempty"`
	TargetMeeting   *models.MeetingTarget  `json:"target_meeting,omitempty"`
	ResponseMessage string                 `json:"response_message,omitempty"`
}

// ParseCommand classifies a message and extracts scheduling fields. Any
// failure degrades to a general-chat command so that one bad API call never
// breaks the conversation.
func (p *GeminiParser) ParseCommand(ctx context.Context, text string, history []models.ChatMessage) (*models.ParsedCommand, error) {
	prompt := p.buildParsePrompt(text, history)

	raw, err := p.generate(ctx, prompt, p.parseSystemInstruction())
	if err != nil {
		slog.WarnContext(ctx, "gemini parse call failed, degrading to general chat", logging.ErrKey, err)
		return fallbackCommand(), nil
	}

	var wire parsedWire
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &wire); err != nil {
		slog.WarnContext(ctx, "gemini returned unparseable JSON, degrading to general chat",
			logging.ErrKey, err, "raw_length", len(raw))
		return fallbackCommand(), nil
	}

	command := &models.ParsedCommand{
		Intent:          models.Intent(wire.Intent),
		Details:         wire.Details,
		SearchQuery:     wire.SearchQuery,
		TargetMeeting:   wire.TargetMeeting,
		ResponseMessage: wire.ResponseMessage,
	}
	for _, field := range wire.MissingFields {
		command.MissingFields = append(command.MissingFields, models.MeetingField(field))
	}

	if !command.Intent.Valid() {
		slog.WarnContext(ctx, "gemini returned unknown intent, degrading to general chat",
			"intent", wire.Intent)
		return fallbackCommand(), nil
	}

	return command, nil
}

// ClassifyConfirmation decides whether a reply confirms, cancels, or modifies
// a pending meeting. Failures degrade to modification, which re-enters the
// collection flow rather than committing or discarding anything.
func (p *GeminiParser) ClassifyConfirmation(ctx context.Context, text string) (models.ConfirmationDecision, error) {
	instruction := `You classify replies to a meeting confirmation prompt.
Respond with exactly one word: "confirmed" if the user agrees to schedule the meeting as proposed,
"cancelled" if the user wants to abandon it, or "modification" if the user wants to change any detail.`

	raw, err := p.generate(ctx, fmt.Sprintf("User reply: %q", text), instruction)
	if err != nil {
		slog.WarnContext(ctx, "gemini confirmation call failed, treating reply as modification", logging.ErrKey, err)
		return models.DecisionModification, nil
	}

	switch models.ConfirmationDecision(strings.ToLower(strings.TrimSpace(stripCodeFence(raw)))) {
	case models.DecisionConfirmed:
		return models.DecisionConfirmed, nil
	case models.DecisionCancelled:
		return models.DecisionCancelled, nil
	default:
		return models.DecisionModification, nil
	}
}

// generate runs a single Gemini generation and returns the text of the first
// candidate.
func (p *GeminiParser) generate(ctx context.Context, prompt, systemInstruction string) (string, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType:  "application/json",
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	}

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	response, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return "", err
	}

	text := response.Text()
	if text == "" {
		return "", domain.NewInternalError("gemini returned an empty response")
	}

	return text, nil
}

// parseSystemInstruction builds the extraction rules with today's date so the
// model can resolve relative expressions like "next Tuesday".
func (p *GeminiParser) parseSystemInstruction() string {
	now := p.Now()
	return fmt.Sprintf(`You are the command parser for an office scheduling assistant.
Today is %s (%s).

Classify the user's latest message into exactly one intent:
schedule_meeting, schedule_followup, reschedule_meeting, add_attendees, remove_attendees,
cancel_meeting, list_meetings, search_mom, upload_recording, manage_contacts,
provide_info, confirmation, general_chat.

Respond ONLY with a JSON object:
{
  "intent": "...",
  "details": {
    "title": "...",
    "date": "YYYY-MM-DD",
    "time": "HH:MM",
    "duration_minutes": 0,
    "description": "...",
    "participants": [{"name": "...", "department": "...", "is_department_group": false}],
    "use_first_available": false,
    "is_followup": false,
    "followup_reference": "..."
  },
  "missing_fields": ["participants", "date", "time"],
  "search_query": "...",
  "target_meeting": {
    "participant_hints": ["..."],
    "add_names": ["..."],
    "remove_names": ["..."],
    "new_date": "YYYY-MM-DD",
    "new_time": "HH:MM"
  },
  "response_message": "..."
}

Rules:
- Resolve relative dates ("tomorrow", "next Tuesday") to YYYY-MM-DD using today's date.
- Convert times to 24-hour HH:MM ("2pm" becomes "14:00").
- "the whole tech team" or similar yields a participant with is_department_group true and the department name.
- "first available slot" or "earliest free time" sets use_first_available true.
- A follow-up request ("follow-up with John") sets intent schedule_followup, is_followup true, and followup_reference.
- provide_info is for mid-flow answers that supply missing fields.
- Omit fields you did not extract rather than guessing.
- For general_chat, set response_message to a short helpful reply.`,
		now.Format("2006-01-02"), now.Weekday())
}

// buildParsePrompt packs the recent history plus the new message.
func (p *GeminiParser) buildParsePrompt(text string, history []models.ChatMessage) string {
	var b strings.Builder

	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	if len(history) > 0 {
		b.WriteString("Conversation so far:\n")
		for _, message := range history {
			fmt.Fprintf(&b, "%s: %s\n", message.Role, message.Content)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Latest user message: %s", text)
	return b.String()
}

// fallbackCommand is the degraded result when parsing is impossible.
func fallbackCommand() *models.ParsedCommand {
	return &models.ParsedCommand{
		Intent:          models.IntentGeneralChat,
		ResponseMessage: "Sorry, I had trouble understanding that. Could you rephrase it?",
	}
}

// stripCodeFence removes a markdown code fence if the model wrapped its
// output in one.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
