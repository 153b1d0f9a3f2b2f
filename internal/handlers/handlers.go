package handlers

import (
	"context"
	"encoding/json"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Hemanth0810/expense-tracker-app/internal/apperror"
	"github.com/Hemanth0810/expense-tracker-app/internal/auth"
	"github.com/Hemanth0810/expense-tracker-app/internal/expenses"
	"github.com/Hemanth0810/expense-tracker-app/internal/models"
	"github.com/Hemanth0810/expense-tracker-app/internal/reports"
	"github.com/Hemanth0810/expense-tracker-app/internal/sessionlog"
	"github.com/Hemanth0810/expense-tracker-app/internal/storage"
)

// Context key type to avoid collisions.
type contextKey string

const (
	// SessionContextKey is the context key for the validated session.
	SessionContextKey contextKey = "session"
	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "session"
)

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	db           *storage.DB
	creds        *auth.Service
	logins       *sessionlog.Ledger
	ledger       *expenses.Ledger
	reports      *reports.Engine
	templateDir  string
	secureCookie bool
	sessionTTL   time.Duration
	now          func() time.Time
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *storage.DB, creds *auth.Service, logins *sessionlog.Ledger, ledger *expenses.Ledger, eng *reports.Engine, templateDir string, secureCookie bool, sessionTTL time.Duration) *Handlers {
	return &Handlers{
		db:           db,
		creds:        creds,
		logins:       logins,
		ledger:       ledger,
		reports:      eng,
		templateDir:  templateDir,
		secureCookie: secureCookie,
		sessionTTL:   sessionTTL,
		now:          time.Now,
	}
}

// SessionFromContext retrieves the validated session from request context.
func SessionFromContext(r *http.Request) *storage.SessionInfo {
	if info, ok := r.Context().Value(SessionContextKey).(*storage.SessionInfo); ok {
		return info
	}
	return nil
}

// UserFromContext retrieves the authenticated user from request context.
func UserFromContext(r *http.Request) *models.User {
	if info := SessionFromContext(r); info != nil {
		return info.User
	}
	return nil
}

// RequireAuth gates a handler behind a valid session. The session, including
// the id of the login log opened at sign-in, is placed in the request
// context; requests without one are redirected to the login page.
func (h *Handlers) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		info, err := h.db.ValidateSession(r.Context(), cookie.Value, h.now())
		if err != nil {
			h.clearSessionCookie(w)
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		ctx := context.WithValue(r.Context(), SessionContextKey, info)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin gates a handler behind the admin flag. It must be nested
// inside RequireAuth.
func (h *Handlers) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r)
		if user == nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		if !user.IsAdmin {
			err := apperror.NewForbidden("Admin access required.")
			http.Error(w, err.Message, err.StatusCode())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Index renders the landing page, or sends authenticated users to their
// dashboard.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if _, err := h.db.ValidateSession(r.Context(), cookie.Value, h.now()); err == nil {
			http.Redirect(w, r, "/dashboard", http.StatusFound)
			return
		}
	}
	h.render(w, r, "index.html", nil)
}

func (h *Handlers) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, viewName string, data any) {
	tmpl, err := template.ParseFiles(filepath.Join(h.templateDir, "base.html"), filepath.Join(h.templateDir, viewName))
	if err != nil {
		slog.Error("parse template", "view", viewName, "error", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		slog.Error("execute template", "view", viewName, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode json response", "error", err)
	}
}

// handleError translates an application error into an HTTP response.
func handleError(w http.ResponseWriter, err error) {
	slog.Error("request failed", "error", err)
	http.Error(w, apperror.Message(err), apperror.StatusCode(err))
}

// clientIP extracts the client address from the request, without the port.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
