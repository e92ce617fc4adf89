package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"ore/internal/core"
	"ore/internal/storage"
)

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(ctx, "Parse form error", "error", err, "url", r.URL.Path)
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form, err := ParseEntryForm(r.Form)
	if err != nil {
		slog.WarnContext(ctx, "Invalid entry form", "error", err)
		http.Error(w, "invalid entry: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	person, err := s.backend.GetPersonBySlug(ctx, form.PersonSlug)
	if err != nil {
		s.rejectUnknownRef(w, ctx, err, "person", form.PersonSlug)
		return
	}
	project, err := s.backend.GetProjectBySlug(ctx, form.ProjectSlug)
	if err != nil {
		s.rejectUnknownRef(w, ctx, err, "project", form.ProjectSlug)
		return
	}

	entry := core.Entry{
		Date:    form.Date,
		Hours:   form.Hours,
		Person:  person,
		Project: project,
	}

	id, err := s.backend.RecordEntry(ctx, entry)
	if err != nil {
		slog.ErrorContext(ctx, "Record entry error", "error", err,
			"person", person.Slug, "project", project.Slug)
		http.Error(w, "failed to save entry", http.StatusInternalServerError)
		return
	}

	slog.InfoContext(ctx, "Entry recorded",
		"id", id,
		"date", entry.Date.ISO(),
		"hours", float64(entry.Hours),
		"person", person.Slug,
		"project", project.Slug)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid entry id", http.StatusBadRequest)
		return
	}

	if err := s.backend.DeleteEntry(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		slog.ErrorContext(ctx, "Delete entry error", "error", err, "id", id)
		http.Error(w, "failed to delete entry", http.StatusInternalServerError)
		return
	}

	slog.InfoContext(ctx, "Entry deleted", "id", id)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) rejectUnknownRef(w http.ResponseWriter, ctx context.Context, err error, kind, slug string) {
	if errors.Is(err, storage.ErrNotFound) {
		slog.WarnContext(ctx, "Entry references unknown "+kind, "slug", slug)
		http.Error(w, "unknown "+kind+": "+slug, http.StatusUnprocessableEntity)
		return
	}
	slog.ErrorContext(ctx, "Lookup error", "error", err, "kind", kind, "slug", slug)
	http.Error(w, "lookup failed", http.StatusInternalServerError)
}
