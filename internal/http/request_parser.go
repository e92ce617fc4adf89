// Package http provides the web server and handlers.
//
// This file implements utilities for parsing and validating request data:
// form sanitization, entry form extraction, and week selection parameters.
package http

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ore/internal/core"
)

// EntryForm holds the parsed fields of an entry creation form.
type EntryForm struct {
	Date        core.Date
	Hours       core.Hours
	PersonSlug  string
	ProjectSlug string
}

// ParseEntryForm extracts an entry from form values. An empty date defaults
// to today; everything else is required.
func ParseEntryForm(form url.Values) (EntryForm, error) {
	var parsed EntryForm

	dateStr := strings.TrimSpace(form.Get("date"))
	if dateStr == "" {
		parsed.Date = core.DateOf(time.Now())
	} else {
		d, err := core.ParseDate(dateStr)
		if err != nil {
			return EntryForm{}, fmt.Errorf("date %q: %w", dateStr, err)
		}
		parsed.Date = d
	}

	hoursStr := strings.TrimSpace(form.Get("hours"))
	if hoursStr == "" {
		return EntryForm{}, fmt.Errorf("hours: %w", core.ErrInvalidHours)
	}
	// Accept both decimal comma and point.
	hoursStr = strings.ReplaceAll(hoursStr, ",", ".")
	hours, err := strconv.ParseFloat(hoursStr, 64)
	if err != nil {
		return EntryForm{}, fmt.Errorf("hours %q: %w", hoursStr, core.ErrInvalidHours)
	}
	parsed.Hours = core.Hours(hours)
	if err := parsed.Hours.Validate(); err != nil {
		return EntryForm{}, err
	}

	parsed.PersonSlug = sanitizeInput(form.Get("person"))
	if parsed.PersonSlug == "" {
		return EntryForm{}, core.ErrMissingPerson
	}
	parsed.ProjectSlug = sanitizeInput(form.Get("project"))
	if parsed.ProjectSlug == "" {
		return EntryForm{}, core.ErrMissingProject
	}

	return parsed, nil
}

// ParseWeekParam reads an optional week=YYYY-MM-DD query parameter and
// returns the start of the week containing that date. The second return is
// false when the parameter is absent or malformed.
func ParseWeekParam(query url.Values) (core.Date, bool) {
	v := strings.TrimSpace(query.Get("week"))
	if v == "" {
		return core.Date{}, false
	}
	d, err := core.ParseDate(v)
	if err != nil {
		return core.Date{}, false
	}
	return d, true
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
