package http

import (
	"errors"
	"log/slog"
	"net/http"

	"ore/internal/auth"
)

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if s.sessions == nil || !s.sessions.Enabled() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, r, "login.html", struct{ Error string }{})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if s.sessions == nil || !s.sessions.Enabled() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	user := sanitizeInput(r.Form.Get("user"))
	password := r.Form.Get("password")

	token, err := s.sessions.Login(user, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			slog.WarnContext(ctx, "Login rejected", "user", user, "client_ip", extractClientIP(r))
			w.WriteHeader(http.StatusUnauthorized)
			s.render(w, r, "login.html", struct{ Error string }{Error: "Invalid credentials"})
			return
		}
		slog.ErrorContext(ctx, "Login error", "error", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	slog.InfoContext(ctx, "Login successful", "user", user)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if s.sessions != nil {
		if c, err := r.Cookie(auth.SessionCookie); err == nil {
			s.sessions.Logout(c.Value)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
