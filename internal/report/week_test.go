package report

import (
	"testing"

	"ore/internal/core"
)

func TestWeekOf(t *testing.T) {
	tests := []struct {
		name      string
		date      core.Date
		wantStart core.Date
		wantEnd   core.Date
	}{
		{
			name:      "monday maps to itself",
			date:      core.NewDate(2024, 3, 11), // Monday
			wantStart: core.NewDate(2024, 3, 11),
			wantEnd:   core.NewDate(2024, 3, 17),
		},
		{
			name:      "midweek maps back to monday",
			date:      core.NewDate(2024, 3, 14), // Thursday
			wantStart: core.NewDate(2024, 3, 11),
			wantEnd:   core.NewDate(2024, 3, 17),
		},
		{
			name:      "sunday closes the same week",
			date:      core.NewDate(2024, 3, 17), // Sunday
			wantStart: core.NewDate(2024, 3, 11),
			wantEnd:   core.NewDate(2024, 3, 17),
		},
		{
			name:      "next monday starts a new week",
			date:      core.NewDate(2024, 3, 18),
			wantStart: core.NewDate(2024, 3, 18),
			wantEnd:   core.NewDate(2024, 3, 24),
		},
		{
			name:      "week spanning a month boundary",
			date:      core.NewDate(2024, 4, 1), // Monday
			wantStart: core.NewDate(2024, 4, 1),
			wantEnd:   core.NewDate(2024, 4, 7),
		},
		{
			name:      "week spanning a year boundary",
			date:      core.NewDate(2025, 1, 1), // Wednesday
			wantStart: core.NewDate(2024, 12, 30),
			wantEnd:   core.NewDate(2025, 1, 5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekOf(tt.date)
			if !got.Start.Equal(tt.wantStart) {
				t.Errorf("WeekOf(%s).Start = %s, want %s", tt.date.ISO(), got.Start.ISO(), tt.wantStart.ISO())
			}
			if !got.End.Equal(tt.wantEnd) {
				t.Errorf("WeekOf(%s).End = %s, want %s", tt.date.ISO(), got.End.ISO(), tt.wantEnd.ISO())
			}
		})
	}
}

func TestWeekContains(t *testing.T) {
	week := WeekOf(core.NewDate(2024, 3, 13))

	tests := []struct {
		name string
		date core.Date
		want bool
	}{
		{name: "monday inclusive", date: core.NewDate(2024, 3, 11), want: true},
		{name: "sunday inclusive", date: core.NewDate(2024, 3, 17), want: true},
		{name: "previous sunday excluded", date: core.NewDate(2024, 3, 10), want: false},
		{name: "next monday excluded", date: core.NewDate(2024, 3, 18), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := week.Contains(tt.date); got != tt.want {
				t.Errorf("Contains(%s) = %v, want %v", tt.date.ISO(), got, tt.want)
			}
		})
	}
}

func TestRecentWeeks(t *testing.T) {
	ref := core.NewDate(2024, 3, 14) // Thursday

	got := RecentWeeks(3, ref)
	if len(got) != 3 {
		t.Fatalf("RecentWeeks(3) returned %d options", len(got))
	}

	wantStarts := []core.Date{
		core.NewDate(2024, 3, 11),
		core.NewDate(2024, 3, 4),
		core.NewDate(2024, 2, 26),
	}
	for i, want := range wantStarts {
		if !got[i].Start.Equal(want) {
			t.Errorf("option %d start = %s, want %s", i, got[i].Start.ISO(), want.ISO())
		}
	}

	if got[0].Label != "Monday, 11 March 2024" {
		t.Errorf("label = %q, want %q", got[0].Label, "Monday, 11 March 2024")
	}
}

func TestRecentWeeksDeterministic(t *testing.T) {
	ref := core.NewDate(2024, 3, 14)
	first := RecentWeeks(5, ref)
	second := RecentWeeks(5, ref)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Start.Equal(second[i].Start) || first[i].Label != second[i].Label {
			t.Errorf("option %d differs between calls: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestRecentWeeksZeroCount(t *testing.T) {
	if got := RecentWeeks(0, core.NewDate(2024, 3, 14)); len(got) != 0 {
		t.Errorf("RecentWeeks(0) returned %d options, want 0", len(got))
	}
}
