package http

import (
	"errors"
	"log/slog"
	"net/http"

	"ore/internal/core"
	"ore/internal/storage"
)

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	name := sanitizeInput(r.Form.Get("name"))
	client, err := s.backend.CreateClient(ctx, name)
	if err != nil {
		if errors.Is(err, core.ErrEmptyName) {
			http.Error(w, "client name is required", http.StatusUnprocessableEntity)
			return
		}
		slog.ErrorContext(ctx, "Create client error", "error", err, "name", name)
		http.Error(w, "failed to create client", http.StatusInternalServerError)
		return
	}

	slog.InfoContext(ctx, "Client created", "slug", client.Slug)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	name := sanitizeInput(r.Form.Get("name"))
	clientSlug := sanitizeInput(r.Form.Get("client"))

	project, err := s.backend.CreateProject(ctx, name, clientSlug)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrEmptyName):
			http.Error(w, "project name is required", http.StatusUnprocessableEntity)
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "unknown client: "+clientSlug, http.StatusUnprocessableEntity)
		default:
			slog.ErrorContext(ctx, "Create project error", "error", err, "name", name, "client", clientSlug)
			http.Error(w, "failed to create project", http.StatusInternalServerError)
		}
		return
	}

	slog.InfoContext(ctx, "Project created", "slug", project.Slug, "client", clientSlug)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleCreatePerson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	name := sanitizeInput(r.Form.Get("name"))
	person, err := s.backend.CreatePerson(ctx, name)
	if err != nil {
		if errors.Is(err, core.ErrEmptyName) {
			http.Error(w, "person name is required", http.StatusUnprocessableEntity)
			return
		}
		slog.ErrorContext(ctx, "Create person error", "error", err, "name", name)
		http.Error(w, "failed to create person", http.StatusInternalServerError)
		return
	}

	slog.InfoContext(ctx, "Person created", "slug", person.Slug)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
