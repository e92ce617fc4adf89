// Package report turns flat entry collections into the weekly, per-person,
// per-project and per-client views the UI renders. Everything here is pure:
// entries go in, sorted aggregates come out, nothing is cached or mutated.
package report

import (
	"time"

	"ore/internal/core"
)

// Week is a Monday-to-Sunday window. Both ends are inclusive: a Monday entry
// belongs to the week it starts, a Sunday entry closes the same week.
type Week struct {
	Start core.Date
	End   core.Date
}

// WeekOption pairs a week start with the label shown in week pickers.
type WeekOption struct {
	Start core.Date
	Label string
}

// WeekOf returns the week containing d.
func WeekOf(d core.Date) Week {
	offset := int(d.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday
	}
	start := d.AddDays(-offset)
	return Week{Start: start, End: start.AddDays(6)}
}

// Contains reports whether d falls inside the window.
func (w Week) Contains(d core.Date) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// RecentWeeks lists count week starts, newest first, beginning with the week
// containing ref. Labels use the full weekday and month names. The result is
// deterministic for a fixed ref.
func RecentWeeks(count int, ref core.Date) []WeekOption {
	if count <= 0 {
		return []WeekOption{}
	}

	options := make([]WeekOption, 0, count)
	start := WeekOf(ref).Start
	for i := 0; i < count; i++ {
		options = append(options, WeekOption{
			Start: start,
			Label: start.Format("Monday, 2 January 2006"),
		})
		start = start.AddDays(-7)
	}
	return options
}
