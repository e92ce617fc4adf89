package http

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"ore/internal/core"
)

func TestParseEntryForm(t *testing.T) {
	form := url.Values{
		"date":    {"2024-03-11"},
		"hours":   {"7.5"},
		"person":  {"bob"},
		"project": {"alpha"},
	}

	parsed, err := ParseEntryForm(form)
	if err != nil {
		t.Fatalf("ParseEntryForm() error = %v", err)
	}
	if !parsed.Date.Equal(core.NewDate(2024, 3, 11)) {
		t.Errorf("date = %s, want 2024-03-11", parsed.Date.ISO())
	}
	if parsed.Hours != 7.5 {
		t.Errorf("hours = %v, want 7.5", parsed.Hours)
	}
	if parsed.PersonSlug != "bob" || parsed.ProjectSlug != "alpha" {
		t.Errorf("slugs = %q/%q, want bob/alpha", parsed.PersonSlug, parsed.ProjectSlug)
	}
}

func TestParseEntryFormDefaultsToToday(t *testing.T) {
	form := url.Values{
		"hours":   {"2"},
		"person":  {"bob"},
		"project": {"alpha"},
	}

	parsed, err := ParseEntryForm(form)
	if err != nil {
		t.Fatalf("ParseEntryForm() error = %v", err)
	}
	if !parsed.Date.Equal(core.DateOf(time.Now())) {
		t.Errorf("date = %s, want today", parsed.Date.ISO())
	}
}

func TestParseEntryFormDecimalComma(t *testing.T) {
	form := url.Values{
		"date":    {"2024-03-11"},
		"hours":   {"1,5"},
		"person":  {"bob"},
		"project": {"alpha"},
	}

	parsed, err := ParseEntryForm(form)
	if err != nil {
		t.Fatalf("ParseEntryForm() error = %v", err)
	}
	if parsed.Hours != 1.5 {
		t.Errorf("hours = %v, want 1.5", parsed.Hours)
	}
}

func TestParseEntryFormErrors(t *testing.T) {
	base := func() url.Values {
		return url.Values{
			"date":    {"2024-03-11"},
			"hours":   {"2"},
			"person":  {"bob"},
			"project": {"alpha"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(url.Values)
		wantErr error
	}{
		{
			name:    "bad date",
			mutate:  func(f url.Values) { f.Set("date", "11/03/2024") },
			wantErr: core.ErrInvalidDate,
		},
		{
			name:    "missing hours",
			mutate:  func(f url.Values) { f.Del("hours") },
			wantErr: core.ErrInvalidHours,
		},
		{
			name:    "non numeric hours",
			mutate:  func(f url.Values) { f.Set("hours", "lots") },
			wantErr: core.ErrInvalidHours,
		},
		{
			name:    "negative hours",
			mutate:  func(f url.Values) { f.Set("hours", "-1") },
			wantErr: core.ErrNegativeHours,
		},
		{
			name:    "missing person",
			mutate:  func(f url.Values) { f.Del("person") },
			wantErr: core.ErrMissingPerson,
		},
		{
			name:    "missing project",
			mutate:  func(f url.Values) { f.Del("project") },
			wantErr: core.ErrMissingProject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := base()
			tt.mutate(form)
			_, err := ParseEntryForm(form)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseEntryForm() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseWeekParam(t *testing.T) {
	if d, ok := ParseWeekParam(url.Values{"week": {"2024-03-13"}}); !ok || !d.Equal(core.NewDate(2024, 3, 13)) {
		t.Errorf("ParseWeekParam(2024-03-13) = %v, %v", d, ok)
	}
	if _, ok := ParseWeekParam(url.Values{}); ok {
		t.Error("ParseWeekParam(empty) should report absent")
	}
	if _, ok := ParseWeekParam(url.Values{"week": {"whenever"}}); ok {
		t.Error("ParseWeekParam(malformed) should report absent")
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  hello  ", "hello"},
		{"with\x00control\x07chars", "withcontrolchars"},
		{"tabs\tand\nnewlines kept", "tabs\tand\nnewlines kept"},
	}
	for _, tt := range tests {
		if got := sanitizeInput(tt.in); got != tt.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
