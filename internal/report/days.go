package report

import (
	"errors"
	"math"

	"ore/internal/core"
)

// Defaults for hour-to-day conversion. They are applied at call sites, never
// read from mutable package state, so individual reports can override them.
const (
	DefaultHoursPerDay = 8.0
	DefaultGranularity = 4
)

var (
	ErrInvalidDayLength   = errors.New("hours per day must be positive")
	ErrInvalidGranularity = errors.New("granularity must be positive")
)

// HoursToDays converts a summed hour total into day equivalents, rounding up
// to the nearest 1/granularity of a day. The rounding happens exactly once,
// on the already-summed total; rounding per entry and summing afterwards
// gives a different (wrong) result.
func HoursToDays(total core.Hours, hoursPerDay float64, granularity int) (float64, error) {
	if hoursPerDay <= 0 {
		return 0, ErrInvalidDayLength
	}
	if granularity <= 0 {
		return 0, ErrInvalidGranularity
	}
	if err := total.Validate(); err != nil {
		return 0, err
	}

	raw := float64(total) / hoursPerDay
	return math.Ceil(raw*float64(granularity)) / float64(granularity), nil
}
