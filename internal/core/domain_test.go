package core

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{
			name:  "valid ISO date",
			input: "2024-03-11",
			want:  NewDate(2024, 3, 11),
		},
		{
			name:  "surrounding whitespace trimmed",
			input: " 2024-03-11 ",
			want:  NewDate(2024, 3, 11),
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "not zero padded",
			input:   "2024-3-1",
			wantErr: true,
		},
		{
			name:    "garbage",
			input:   "not-a-date",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDate) {
					t.Fatalf("ParseDate(%q) error = %v, want ErrInvalidDate", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	// 23:30 on March 11th in UTC+9 is still March 11th as a calendar date there,
	// but DateOf works in UTC: 14:30 UTC on the 11th.
	instant := time.Date(2024, 3, 11, 23, 30, 0, 0, loc)
	got := DateOf(instant)
	if !got.Equal(NewDate(2024, 3, 11)) {
		t.Errorf("DateOf(%v) = %v, want 2024-03-11", instant, got)
	}
}

func TestDateISO(t *testing.T) {
	d := NewDate(2024, 1, 5)
	if got := d.ISO(); got != "2024-01-05" {
		t.Errorf("ISO() = %q, want %q", got, "2024-01-05")
	}
}

func TestHoursValidate(t *testing.T) {
	tests := []struct {
		name  string
		hours Hours
		want  error
	}{
		{name: "zero is fine", hours: 0, want: nil},
		{name: "positive fraction", hours: 7.5, want: nil},
		{name: "negative", hours: -1, want: ErrNegativeHours},
		{name: "NaN", hours: Hours(math.NaN()), want: ErrInvalidHours},
		{name: "infinity", hours: Hours(math.Inf(1)), want: ErrInvalidHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.hours.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEntryValidate(t *testing.T) {
	valid := Entry{
		Date:    NewDate(2024, 3, 11),
		Hours:   8,
		Person:  Person{ID: 1, Name: "Bob", Slug: "bob"},
		Project: Project{ID: 1, Name: "Alpha", Slug: "alpha", Client: Client{ID: 1, Name: "Acme", Slug: "acme"}},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid entry: unexpected error %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Entry)
		want   error
	}{
		{name: "zero date", mutate: func(e *Entry) { e.Date = Date{} }, want: ErrInvalidDate},
		{name: "negative hours", mutate: func(e *Entry) { e.Hours = -2 }, want: ErrNegativeHours},
		{name: "missing person", mutate: func(e *Entry) { e.Person = Person{} }, want: ErrMissingPerson},
		{name: "missing project", mutate: func(e *Entry) { e.Project = Project{} }, want: ErrMissingProject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			if err := e.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple name", input: "Acme", want: "acme"},
		{name: "spaces become hyphens", input: "Acme Corp", want: "acme-corp"},
		{name: "punctuation collapsed", input: "Fix & Flip, Inc.", want: "fix-flip-inc"},
		{name: "leading and trailing junk", input: "  --Alpha--  ", want: "alpha"},
		{name: "digits kept", input: "Project 9", want: "project-9"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
