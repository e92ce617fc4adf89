package report

import (
	"fmt"
	"sort"

	"ore/internal/core"
)

// PersonHours is one person's summed hours inside a project rollup.
type PersonHours struct {
	Name  string
	Slug  string
	Hours core.Hours
}

// ProjectRollup is one project's all-time per-person breakdown.
type ProjectRollup struct {
	Project core.Project
	People  []PersonHours
}

// ProjectTotal is one project's summed hours inside a client summary.
type ProjectTotal struct {
	Name  string
	Slug  string
	Hours core.Hours
}

// PersonReport builds the weekly view of one person's entries, one row per
// (date, project) pair.
func PersonReport(entries []core.Entry) ([]WeekGroup, error) {
	return Aggregate(entries, ByProject)
}

// ProjectReport builds the weekly view of one project's entries, one row per
// (date, person) pair. A client's weekly report is the union of its
// projects' entries fed through this same grouping.
func ProjectReport(entries []core.Entry) ([]WeekGroup, error) {
	return Aggregate(entries, ByPerson)
}

// ClientRollup builds the all-time project/person summary for entries already
// scoped to one client: entries grouped by project, then each project's
// per-person hours summed. Projects and people come back ordered by name.
// Unlike the weekly views there is no week bucketing here.
func ClientRollup(entries []core.Entry) ([]ProjectRollup, error) {
	projects := make(map[string]core.Project)
	people := make(map[string]map[string]*PersonHours)

	for _, e := range entries {
		if e.Hours < 0 {
			return nil, fmt.Errorf("entry %d on %s: %w", e.ID, e.Date.ISO(), core.ErrNegativeHours)
		}

		slug := e.Project.Slug
		if _, ok := projects[slug]; !ok {
			projects[slug] = e.Project
			people[slug] = make(map[string]*PersonHours)
		}
		if ph, ok := people[slug][e.Person.Slug]; ok {
			ph.Hours += e.Hours
			continue
		}
		people[slug][e.Person.Slug] = &PersonHours{
			Name:  e.Person.Name,
			Slug:  e.Person.Slug,
			Hours: e.Hours,
		}
	}

	rollups := make([]ProjectRollup, 0, len(projects))
	for slug, project := range projects {
		r := ProjectRollup{
			Project: project,
			People:  make([]PersonHours, 0, len(people[slug])),
		}
		for _, ph := range people[slug] {
			r.People = append(r.People, *ph)
		}
		sort.Slice(r.People, func(i, j int) bool {
			return r.People[i].Name < r.People[j].Name
		})
		rollups = append(rollups, r)
	}

	sort.Slice(rollups, func(i, j int) bool {
		return rollups[i].Project.Name < rollups[j].Project.Name
	})

	return rollups, nil
}

// ProjectHours sums a client's entries per project, one row per project,
// ordered by project name.
func ProjectHours(entries []core.Entry) ([]ProjectTotal, error) {
	totals := make(map[string]*ProjectTotal)

	for _, e := range entries {
		if e.Hours < 0 {
			return nil, fmt.Errorf("entry %d on %s: %w", e.ID, e.Date.ISO(), core.ErrNegativeHours)
		}
		if t, ok := totals[e.Project.Slug]; ok {
			t.Hours += e.Hours
			continue
		}
		totals[e.Project.Slug] = &ProjectTotal{
			Name:  e.Project.Name,
			Slug:  e.Project.Slug,
			Hours: e.Hours,
		}
	}

	rows := make([]ProjectTotal, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, *t)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Name < rows[j].Name
	})

	return rows, nil
}

// TotalHours reduces per-project totals into one grand total.
func TotalHours(rows []ProjectTotal) core.Hours {
	var total core.Hours
	for _, r := range rows {
		total += r.Hours
	}
	return total
}
