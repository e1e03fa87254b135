// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/linuxfoundation/lfx-v2-office-assistant-service/pkg/constants"
)

// Regex fallbacks for when the language model misses a field the user
// plainly stated. They only need to cover common phrasings.
var (
	timeWithMeridiem   = regexp.MustCompile(`(?i)\b(\d{1,2}):(\d{2})\s*(am|pm)\b`)
	hourWithMeridiem   = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(am|pm)\b`)
	timeTwentyFourHour = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)

	durationMinutes = regexp.MustCompile(`(?i)\b(\d{1,3})\s*(?:minutes?|mins?)\b`)
	durationHours   = regexp.MustCompile(`(?i)\b(\d{1,2}(?:\.\d)?)\s*(?:hours?|hrs?)\b`)
	halfHour        = regexp.MustCompile(`(?i)\bhalf\s+(?:an\s+)?hour\b`)

	dayMonth = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?(january|february|march|april|may|june|july|august|september|october|november|december)(?:\s+(\d{4}))?\b`)
	monthDay = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s+(\d{4}))?\b`)
	isoDate  = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
)

var weekdayByName = map[string]rrule.Weekday{
	"monday":    rrule.MO,
	"tuesday":   rrule.TU,
	"wednesday": rrule.WE,
	"thursday":  rrule.TH,
	"friday":    rrule.FR,
	"saturday":  rrule.SA,
	"sunday":    rrule.SU,
}

var monthByName = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// ExtractTime pulls a start time out of free text, returning it in HH:MM
// form. Meridiem forms win over bare 24-hour forms so "3pm" is not read
// as a date fragment.
func ExtractTime(text string) (string, bool) {
	if m := timeWithMeridiem.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		return formatClock(applyMeridiem(hour, m[3]), minute), true
	}
	if m := hourWithMeridiem.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		return formatClock(applyMeridiem(hour, m[2]), 0), true
	}
	if m := timeTwentyFourHour.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour < 24 && minute < 60 {
			return formatClock(hour, minute), true
		}
	}
	return "", false
}

func applyMeridiem(hour int, meridiem string) int {
	meridiem = strings.ToLower(meridiem)
	if meridiem == "pm" && hour < 12 {
		return hour + 12
	}
	if meridiem == "am" && hour == 12 {
		return 0
	}
	return hour
}

func formatClock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// ExtractDuration pulls a meeting length in minutes out of free text.
// "default" and "usual" map to the standard meeting length.
func ExtractDuration(text string) (int, bool) {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "default") || strings.Contains(lower, "usual") {
		return constants.DefaultMeetingDurationMinutes, true
	}
	if halfHour.MatchString(text) {
		return 30, true
	}
	if m := durationHours.FindStringSubmatch(text); m != nil {
		hours, err := strconv.ParseFloat(m[1], 64)
		if err == nil && hours > 0 {
			return int(hours * 60), true
		}
	}
	if m := durationMinutes.FindStringSubmatch(text); m != nil {
		minutes, _ := strconv.Atoi(m[1])
		if minutes > 0 {
			return minutes, true
		}
	}
	return 0, false
}

// ExtractDate pulls a date out of free text relative to now, returning it
// in YYYY-MM-DD form. Weekday names resolve to the next future occurrence.
func ExtractDate(text string, now time.Time) (string, bool) {
	lower := strings.ToLower(text)

	if strings.Contains(lower, "tomorrow") {
		return now.AddDate(0, 0, 1).Format(constants.DateLayout), true
	}
	if strings.Contains(lower, "today") {
		return now.Format(constants.DateLayout), true
	}

	if date, ok := nextWeekdayIn(lower, now); ok {
		return date, true
	}

	if m := isoDate.FindStringSubmatch(text); m != nil {
		if parsed, err := time.Parse(constants.DateLayout, m[0]); err == nil {
			return parsed.Format(constants.DateLayout), true
		}
	}
	if m := dayMonth.FindStringSubmatch(text); m != nil {
		return buildDate(m[2], m[1], m[3], now)
	}
	if m := monthDay.FindStringSubmatch(text); m != nil {
		return buildDate(m[1], m[2], m[3], now)
	}
	return "", false
}

// nextWeekdayIn resolves a weekday mention to its next occurrence after now.
// "next monday" skips the coming monday when it falls within this week.
func nextWeekdayIn(lower string, now time.Time) (string, bool) {
	for name, weekday := range weekdayByName {
		if !strings.Contains(lower, name) {
			continue
		}

		rule, err := rrule.NewRRule(rrule.ROption{
			Freq:      rrule.WEEKLY,
			Byweekday: []rrule.Weekday{weekday},
			Dtstart:   now,
		})
		if err != nil {
			return "", false
		}

		next := rule.After(now, false)
		if next.IsZero() {
			return "", false
		}
		if strings.Contains(lower, "next "+name) && next.Sub(now) < 7*24*time.Hour {
			next = next.AddDate(0, 0, 7)
		}
		return next.Format(constants.DateLayout), true
	}
	return "", false
}

// buildDate assembles a date from month name, day, and optional year. An
// omitted year means the nearest future occurrence.
func buildDate(monthName, dayText, yearText string, now time.Time) (string, bool) {
	month, ok := monthByName[strings.ToLower(monthName)]
	if !ok {
		return "", false
	}
	day, err := strconv.Atoi(dayText)
	if err != nil || day < 1 || day > 31 {
		return "", false
	}

	year := now.Year()
	if yearText != "" {
		year, err = strconv.Atoi(yearText)
		if err != nil {
			return "", false
		}
	}

	date := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	if yearText == "" && date.Before(now.AddDate(0, 0, -1)) {
		date = date.AddDate(1, 0, 0)
	}
	return date.Format(constants.DateLayout), true
}
