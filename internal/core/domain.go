package core

import (
	"errors"
	"math"
	"strings"
	"time"
)

type (
	// Date is a calendar date without a time component, pinned to UTC midnight.
	Date struct {
		time.Time
	}

	// Hours is a worked-hours quantity. Fractions are allowed (1.5 = ninety minutes).
	Hours float64

	Client struct {
		ID   int64
		Name string
		Slug string
	}

	Project struct {
		ID     int64
		Name   string
		Slug   string
		Client Client
	}

	Person struct {
		ID   int64
		Name string
		Slug string
	}

	// Entry is an immutable worked-time fact: a person spent hours on a project
	// on a date. Person and Project arrive fully resolved from storage; the
	// reporting code never looks anything up.
	Entry struct {
		ID      int64
		Date    Date
		Hours   Hours
		Person  Person
		Project Project
	}
)

var (
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidHours   = errors.New("invalid hours")
	ErrNegativeHours  = errors.New("negative hours")
	ErrEmptyName      = errors.New("empty name")
	ErrMissingPerson  = errors.New("missing person reference")
	ErrMissingProject = errors.New("missing project reference")
	ErrMissingClient  = errors.New("missing client reference")
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an arbitrary instant to its calendar date in UTC.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return NewDate(y, int(m), d)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// AddDays returns the date shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// Equal reports calendar equality.
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

// Before reports whether d falls strictly before other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d falls strictly after other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// ISO returns the zero-padded YYYY-MM-DD form used for storage and URLs.
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

func (h Hours) Validate() error {
	f := float64(h)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ErrInvalidHours
	}
	if f < 0 {
		return ErrNegativeHours
	}
	return nil
}

func (c Client) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyName
	}
	return nil
}

func (p Project) Validate() error {
	if len(strings.TrimSpace(p.Name)) == 0 {
		return ErrEmptyName
	}
	if p.Client.Slug == "" && p.Client.ID == 0 {
		return ErrMissingClient
	}
	return nil
}

func (p Person) Validate() error {
	if len(strings.TrimSpace(p.Name)) == 0 {
		return ErrEmptyName
	}
	return nil
}

func (e Entry) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := e.Hours.Validate(); err != nil {
		return err
	}
	if e.Person.Slug == "" && e.Person.ID == 0 {
		return ErrMissingPerson
	}
	if e.Project.Slug == "" && e.Project.ID == 0 {
		return ErrMissingProject
	}
	return nil
}
