// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// RenderedEmail holds both HTML and text versions of a rendered email
type RenderedEmail struct {
	HTML string
	Text string
}

// MeetingTemplateManager defines the interface for rendering meeting email templates
type MeetingTemplateManager interface {
	RenderInvitation(data domain.EmailInvitation) (*RenderedEmail, error)
	RenderUpdate(data domain.EmailUpdate) (*RenderedEmail, error)
	RenderCancellation(data domain.EmailCancellation) (*RenderedEmail, error)
}

// TemplateManager is the default implementation of MeetingTemplateManager
type TemplateManager struct {
	templates Templates
}

// NewTemplateManager creates a new template manager with all templates loaded
func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{}

	// Define all templates to load
	templateConfigs := map[string]templateConfig{
		"invitationHTML":   {"meeting_invitation.html", "templates/meeting_invitation.html"},
		"invitationText":   {"meeting_invitation.txt", "templates/meeting_invitation.txt"},
		"updateHTML":       {"meeting_update.html", "templates/meeting_update.html"},
		"updateText":       {"meeting_update.txt", "templates/meeting_update.txt"},
		"cancellationHTML": {"meeting_cancellation.html", "templates/meeting_cancellation.html"},
		"cancellationText": {"meeting_cancellation.txt", "templates/meeting_cancellation.txt"},
	}

	// Load all templates
	loadedTemplates := make(map[string]*template.Template)
	for key, cfg := range templateConfigs {
		tmpl, err := loadTemplate(cfg)
		if err != nil {
			return nil, err
		}
		loadedTemplates[key] = tmpl
	}

	// Organize templates into the structure
	tm.templates = Templates{
		Meeting: MeetingTemplates{
			Invitation: TemplateSet{
				HTML: loadedTemplates["invitationHTML"],
				Text: loadedTemplates["invitationText"],
			},
			Update: TemplateSet{
				HTML: loadedTemplates["updateHTML"],
				Text: loadedTemplates["updateText"],
			},
			Cancellation: TemplateSet{
				HTML: loadedTemplates["cancellationHTML"],
				Text: loadedTemplates["cancellationText"],
			},
		},
	}

	return tm, nil
}

// Ensure TemplateManager implements MeetingTemplateManager
var _ MeetingTemplateManager = (*TemplateManager)(nil)

// RenderInvitation renders an invitation email with both HTML and text versions
func (tm *TemplateManager) RenderInvitation(data domain.EmailInvitation) (*RenderedEmail, error) {
	html, err := renderTemplate(tm.templates.Meeting.Invitation.HTML, data)
	if err != nil {
		return nil, fmt.Errorf("failed to render invitation HTML: %w", err)
	}

	text, err := renderTemplate(tm.templates.Meeting.Invitation.Text, data)
	if err != nil {
		return nil, fmt.Errorf("failed to render invitation text: %w", err)
	}

	return &RenderedEmail{HTML: html, Text: text}, nil
}

// RenderUpdate renders an update email with both HTML and text versions
func (tm *TemplateManager) RenderUpdate(data domain.EmailUpdate) (*RenderedEmail, error) {
	html, err := renderTemplate(tm.templates.Meeting.Update.HTML, data)
	if err != nil {
		return nil, fmt.Errorf("failed to render update HTML: %w", err)
	}

	text, err := renderTemplate(tm.templates.Meeting.Update.Text, data)
	if err != nil {
		return nil, fmt.Errorf("failed to render update text: %w", err)
	}

	return &RenderedEmail{HTML: html, Text: text}, nil
}

// RenderCancellation renders a cancellation email with both HTML and text versions
func (tm *TemplateManager) RenderCancellation(data domain.EmailCancellation) (*RenderedEmail, error) {
	html, err := renderTemplate(tm.templates.Meeting.Cancellation.HTML, data)
	if err != nil {
		return nil, fmt.Errorf("failed to render cancellation HTML: %w", err)
	}

	text, err := renderTemplate(tm.templates.Meeting.Cancellation.Text, data)
	if err != nil {
		return nil, fmt.Errorf("failed to render cancellation text: %w", err)
	}

	return &RenderedEmail{HTML: html, Text: text}, nil
}

// TemplateSet holds HTML and text versions of a template
type TemplateSet struct {
	HTML *template.Template
	Text *template.Template
}

// MeetingTemplates holds all meeting-related templates
type MeetingTemplates struct {
	Invitation   TemplateSet
	Update       TemplateSet
	Cancellation TemplateSet
}

// Templates holds all template categories
type Templates struct {
	Meeting MeetingTemplates
}

// templateConfig defines a template to be loaded
type templateConfig struct {
	name string
	path string
}

// loadTemplate loads a single template with the shared function map
func loadTemplate(config templateConfig) (*template.Template, error) {
	tmpl, err := template.New(config.name).Funcs(template.FuncMap{
		"formatTime":         formatTime,
		"formatDuration":     formatDuration,
		"capitalize":         capitalize,
		"newLineToBreakLine": newLineToBreakLine,
	}).ParseFS(templateFS, config.path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s template: %w", config.name, err)
	}
	return tmpl, nil
}

// renderTemplate renders any template with the provided data
func renderTemplate(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, data)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// formatTime formats a time for display in emails
func formatTime(t time.Time) string {
	// Format with ordinal day suffix
	day := t.Day()
	var suffix string
	switch {
	case day >= 11 && day <= 13:
		suffix = "th"
	case day%10 == 1:
		suffix = "st"
	case day%10 == 2:
		suffix = "nd"
	case day%10 == 3:
		suffix = "rd"
	default:
		suffix = "th"
	}

	// Format: Wednesday, September 15th, 10:30
	return fmt.Sprintf("%s, %s %d%s, %s",
		t.Format("Monday"),
		t.Format("January"),
		day,
		suffix,
		t.Format("15:04"))
}

// formatDuration formats duration in minutes to a human-readable string
func formatDuration(minutes int) string {
	if minutes < 60 {
		if minutes == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", minutes)
	}

	hours := minutes / 60
	remainingMinutes := minutes % 60

	if remainingMinutes == 0 {
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}

	hourLabel := "hours"
	if hours == 1 {
		hourLabel = "hour"
	}
	minuteLabel := "minutes"
	if remainingMinutes == 1 {
		minuteLabel = "minute"
	}
	return fmt.Sprintf("%d %s %d %s", hours, hourLabel, remainingMinutes, minuteLabel)
}

// capitalize capitalizes the first letter of a string
func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// newLineToBreakLine converts newlines to HTML break tags for proper email formatting
func newLineToBreakLine(s string) template.HTML {
	// Replace newlines with <br> tags
	escaped := template.HTMLEscapeString(s)
	replaced := strings.ReplaceAll(escaped, "\n", "<br>")
	// Return as template.HTML to prevent double escaping
	return template.HTML(replaced)
}
