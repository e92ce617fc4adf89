package report

import (
	"fmt"
	"sort"

	"ore/internal/core"
)

// Dimension selects the secondary grouping axis inside a week bucket.
// It returns the grouped entity's slug (the grouping key) and display name.
type Dimension func(e core.Entry) (slug, name string)

// ByProject groups a person's entries by the project worked on.
func ByProject(e core.Entry) (string, string) {
	return e.Project.Slug, e.Project.Name
}

// ByPerson groups a project's (or client's) entries by who worked.
func ByPerson(e core.Entry) (string, string) {
	return e.Person.Slug, e.Person.Name
}

// Row is one summed line in a weekly report: on Date, the entity identified
// by Slug/Name accounted for Hours.
type Row struct {
	Date  core.Date
	Slug  string
	Name  string
	Hours core.Hours
}

// WeekGroup is one week's worth of summed rows, rows ascending by date.
type WeekGroup struct {
	Week Week
	Rows []Row
}

// WeekEntries is one week's raw entries for the unfiltered index listing.
type WeekEntries struct {
	Week    Week
	Entries []core.Entry
}

type rowKey struct {
	date core.Date
	slug string
}

// Aggregate buckets entries into Monday-start weeks, groups each bucket by
// (dimension value, date), sums hours per group, and orders the result:
// weeks descending by start date, rows ascending by date within a week.
// Summation is exact; day conversion and any rounding happen elsewhere.
// An empty input yields an empty, non-nil slice.
func Aggregate(entries []core.Entry, dim Dimension) ([]WeekGroup, error) {
	buckets := make(map[core.Date]map[rowKey]*Row)

	for _, e := range entries {
		if e.Hours < 0 {
			return nil, fmt.Errorf("entry %d on %s: %w", e.ID, e.Date.ISO(), core.ErrNegativeHours)
		}

		week := WeekOf(e.Date)
		rows, ok := buckets[week.Start]
		if !ok {
			rows = make(map[rowKey]*Row)
			buckets[week.Start] = rows
		}

		slug, name := dim(e)
		key := rowKey{date: e.Date, slug: slug}
		if row, ok := rows[key]; ok {
			row.Hours += e.Hours
			continue
		}
		rows[key] = &Row{Date: e.Date, Slug: slug, Name: name, Hours: e.Hours}
	}

	groups := make([]WeekGroup, 0, len(buckets))
	for start, rows := range buckets {
		group := WeekGroup{
			Week: Week{Start: start, End: start.AddDays(6)},
			Rows: make([]Row, 0, len(rows)),
		}
		for _, row := range rows {
			group.Rows = append(group.Rows, *row)
		}
		sort.Slice(group.Rows, func(i, j int) bool {
			a, b := group.Rows[i], group.Rows[j]
			if !a.Date.Equal(b.Date) {
				return a.Date.Before(b.Date)
			}
			return a.Name < b.Name
		})
		groups = append(groups, group)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Week.Start.After(groups[j].Week.Start)
	})

	return groups, nil
}

// GroupByWeek partitions entries into weeks without any secondary grouping
// or summation, preserving per-entry granularity for the index listing.
// Weeks come newest first; entries within a week are ordered by date.
func GroupByWeek(entries []core.Entry) ([]WeekEntries, error) {
	buckets := make(map[core.Date][]core.Entry)

	for _, e := range entries {
		if e.Hours < 0 {
			return nil, fmt.Errorf("entry %d on %s: %w", e.ID, e.Date.ISO(), core.ErrNegativeHours)
		}
		start := WeekOf(e.Date).Start
		buckets[start] = append(buckets[start], e)
	}

	groups := make([]WeekEntries, 0, len(buckets))
	for start, week := range buckets {
		sort.SliceStable(week, func(i, j int) bool {
			return week[i].Date.Before(week[j].Date)
		})
		groups = append(groups, WeekEntries{
			Week:    Week{Start: start, End: start.AddDays(6)},
			Entries: week,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Week.Start.After(groups[j].Week.Start)
	})

	return groups, nil
}
