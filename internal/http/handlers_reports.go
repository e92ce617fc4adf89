package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"ore/internal/core"
	"ore/internal/report"
	"ore/internal/storage"
)

// weekView is one rendered week of a report page.
type weekView struct {
	Label      string
	StartISO   string
	EndISO     string
	Rows       []rowView
	TotalHours string
	TotalDays  string
}

type rowView struct {
	DateISO string
	Weekday string
	Name    string
	Link    string
	Hours   string
}

// buildWeekViews renders aggregated week groups, converting each week's
// summed hours to day equivalents. linkPrefix decides where row names point
// (projects on a person page, people on a project page).
func (s *Server) buildWeekViews(groups []report.WeekGroup, linkPrefix string) ([]weekView, error) {
	views := make([]weekView, 0, len(groups))
	for _, g := range groups {
		var total core.Hours
		rows := make([]rowView, 0, len(g.Rows))
		for _, row := range g.Rows {
			total += row.Hours
			rows = append(rows, rowView{
				DateISO: row.Date.ISO(),
				Weekday: row.Date.Format("Mon"),
				Name:    row.Name,
				Link:    linkPrefix + "/" + row.Slug,
				Hours:   formatHours(row.Hours),
			})
		}
		days, err := report.HoursToDays(total, s.reportCfg.HoursPerDay, s.reportCfg.Granularity)
		if err != nil {
			return nil, err
		}
		views = append(views, weekView{
			Label:      g.Week.Start.Format("Monday, 2 January 2006"),
			StartISO:   g.Week.Start.ISO(),
			EndISO:     g.Week.End.ISO(),
			Rows:       rows,
			TotalHours: formatHours(total),
			TotalDays:  formatDays(days),
		})
	}
	return views, nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clients, err := s.backend.ListClients(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "List clients error", "error", err)
	}
	projects, err := s.backend.ListProjects(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "List projects error", "error", err)
	}
	people, err := s.backend.ListPeople(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "List people error", "error", err)
	}

	entries, err := s.backend.ListEntries(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "List entries error", "error", err)
		http.Error(w, "failed to load entries", http.StatusInternalServerError)
		return
	}

	// Optional week filter narrows the listing to one week.
	if d, ok := ParseWeekParam(r.URL.Query()); ok {
		week := report.WeekOf(d)
		filtered := entries[:0]
		for _, e := range entries {
			if week.Contains(e.Date) {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	grouped, err := report.GroupByWeek(entries)
	if err != nil {
		slog.ErrorContext(ctx, "Group entries error", "error", err)
		http.Error(w, "failed to build report", http.StatusInternalServerError)
		return
	}

	type entryRow struct {
		ID      int64
		DateISO string
		Weekday string
		Person  core.Person
		Project core.Project
		Hours   string
	}
	type weekListing struct {
		Label   string
		Entries []entryRow
	}

	weeks := make([]weekListing, 0, len(grouped))
	for _, g := range grouped {
		listing := weekListing{Label: g.Week.Start.Format("Monday, 2 January 2006")}
		for _, e := range g.Entries {
			listing.Entries = append(listing.Entries, entryRow{
				ID:      e.ID,
				DateISO: e.Date.ISO(),
				Weekday: e.Date.Format("Mon"),
				Person:  e.Person,
				Project: e.Project,
				Hours:   formatHours(e.Hours),
			})
		}
		weeks = append(weeks, listing)
	}

	data := struct {
		Today       string
		WeekOptions []report.WeekOption
		Clients     []core.Client
		Projects    []core.Project
		People      []core.Person
		Weeks       []weekListing
	}{
		Today:       core.DateOf(time.Now()).ISO(),
		WeekOptions: report.RecentWeeks(s.reportCfg.WeekCount, core.DateOf(time.Now())),
		Clients:     clients,
		Projects:    projects,
		People:      people,
		Weeks:       weeks,
	}

	s.render(w, r, "index.html", data)
}

func (s *Server) handlePersonReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := r.PathValue("slug")

	person, err := s.backend.GetPersonBySlug(ctx, slug)
	if err != nil {
		s.renderNotFound(w, r, err, "person", slug)
		return
	}

	entries, err := s.backend.ListEntriesByPerson(ctx, slug)
	if err != nil {
		slog.ErrorContext(ctx, "List person entries error", "error", err, "person", slug)
		http.Error(w, "failed to load entries", http.StatusInternalServerError)
		return
	}

	groups, err := report.PersonReport(entries)
	if err != nil {
		slog.ErrorContext(ctx, "Person report error", "error", err, "person", slug)
		http.Error(w, "failed to build report", http.StatusInternalServerError)
		return
	}

	weeks, err := s.buildWeekViews(groups, "/projects")
	if err != nil {
		slog.ErrorContext(ctx, "Person report conversion error", "error", err, "person", slug)
		http.Error(w, "failed to build report", http.StatusInternalServerError)
		return
	}

	data := struct {
		Person core.Person
		Weeks  []weekView
	}{Person: person, Weeks: weeks}

	s.render(w, r, "person.html", data)
}

func (s *Server) handleProjectReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := r.PathValue("slug")

	project, err := s.backend.GetProjectBySlug(ctx, slug)
	if err != nil {
		s.renderNotFound(w, r, err, "project", slug)
		return
	}

	entries, err := s.backend.ListEntriesByProject(ctx, slug)
	if err != nil {
		slog.ErrorContext(ctx, "List project entries error", "error", err, "project", slug)
		http.Error(w, "failed to load entries", http.StatusInternalServerError)
		return
	}

	groups, err := report.ProjectReport(entries)
	if err != nil {
		slog.ErrorContext(ctx, "Project report error", "error", err, "project", slug)
		http.Error(w, "failed to build report", http.StatusInternalServerError)
		return
	}

	weeks, err := s.buildWeekViews(groups, "/people")
	if err != nil {
		slog.ErrorContext(ctx, "Project report conversion error", "error", err, "project", slug)
		http.Error(w, "failed to build report", http.StatusInternalServerError)
		return
	}

	data := struct {
		Project core.Project
		Weeks   []weekView
	}{Project: project, Weeks: weeks}

	s.render(w, r, "project.html", data)
}

func (s *Server) handleClientReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := r.PathValue("slug")

	client, err := s.backend.GetClientBySlug(ctx, slug)
	if err != nil {
		s.renderNotFound(w, r, err, "client", slug)
		return
	}

	entries, err := s.backend.ListEntriesByClient(ctx, slug)
	if err != nil {
		slog.ErrorContext(ctx, "List client entries error", "error", err, "client", slug)
		http.Error(w, "failed to load entries", http.StatusInternalServerError)
		return
	}

	rollup, err := report.ClientRollup(entries)
	if err != nil {
		slog.ErrorContext(ctx, "Client rollup error", "error", err, "client", slug)
		http.Error(w, "failed to build report", http.StatusInternalServerError)
		return
	}

	totals, err := report.ProjectHours(entries)
	if err != nil {
		slog.ErrorContext(ctx, "Client totals error", "error", err, "client", slug)
		http.Error(w, "failed to build report", http.StatusInternalServerError)
		return
	}

	groups, err := report.ProjectReport(entries)
	if err != nil {
		slog.ErrorContext(ctx, "Client weekly report error", "error", err, "client", slug)
		http.Error(w, "failed to build report", http.StatusInternalServerError)
		return
	}
	weeks, err := s.buildWeekViews(groups, "/people")
	if err != nil {
		slog.ErrorContext(ctx, "Client report conversion error", "error", err, "client", slug)
		http.Error(w, "failed to build report", http.StatusInternalServerError)
		return
	}

	type personLine struct {
		Name  string
		Link  string
		Hours string
	}
	type projectBlock struct {
		Name   string
		Link   string
		People []personLine
	}
	type totalLine struct {
		Name  string
		Link  string
		Hours string
		Days  string
	}

	blocks := make([]projectBlock, 0, len(rollup))
	for _, pr := range rollup {
		block := projectBlock{Name: pr.Project.Name, Link: "/projects/" + pr.Project.Slug}
		for _, ph := range pr.People {
			block.People = append(block.People, personLine{
				Name:  ph.Name,
				Link:  "/people/" + ph.Slug,
				Hours: formatHours(ph.Hours),
			})
		}
		blocks = append(blocks, block)
	}

	grandHours := report.TotalHours(totals)
	grandDays, err := report.HoursToDays(grandHours, s.reportCfg.HoursPerDay, s.reportCfg.Granularity)
	if err != nil {
		slog.ErrorContext(ctx, "Grand total conversion error", "error", err, "client", slug)
		http.Error(w, "failed to build report", http.StatusInternalServerError)
		return
	}

	lines := make([]totalLine, 0, len(totals))
	for _, pt := range totals {
		days, err := report.HoursToDays(pt.Hours, s.reportCfg.HoursPerDay, s.reportCfg.Granularity)
		if err != nil {
			http.Error(w, "failed to build report", http.StatusInternalServerError)
			return
		}
		lines = append(lines, totalLine{
			Name:  pt.Name,
			Link:  "/projects/" + pt.Slug,
			Hours: formatHours(pt.Hours),
			Days:  formatDays(days),
		})
	}

	data := struct {
		Client     core.Client
		Projects   []projectBlock
		Totals     []totalLine
		GrandHours string
		GrandDays  string
		Weeks      []weekView
	}{
		Client:     client,
		Projects:   blocks,
		Totals:     lines,
		GrandHours: formatHours(grandHours),
		GrandDays:  formatDays(grandDays),
		Weeks:      weeks,
	}

	s.render(w, r, "client.html", data)
}

func (s *Server) renderNotFound(w http.ResponseWriter, r *http.Request, err error, kind, slug string) {
	if errors.Is(err, storage.ErrNotFound) {
		slog.InfoContext(r.Context(), "Unknown "+kind, "slug", slug)
		http.NotFound(w, r)
		return
	}
	slog.ErrorContext(r.Context(), "Lookup error", "error", err, "kind", kind, "slug", slug)
	http.Error(w, "lookup failed", http.StatusInternalServerError)
}

func formatHours(h core.Hours) string {
	return strconv.FormatFloat(float64(h), 'f', -1, 64)
}

func formatDays(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}
