package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Hemanth0810/expense-tracker-app/internal/apperror"
	"github.com/Hemanth0810/expense-tracker-app/internal/auth"
)

// AuthViewModel holds data for the login and register pages.
type AuthViewModel struct {
	Error    string
	Message  string
	Username string
	Email    string
}

// RegisterForm renders the registration page.
func (h *Handlers) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "register.html", AuthViewModel{})
}

// Register handles the registration form submission.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, "register.html", AuthViewModel{Error: "Invalid form submission"})
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	email := r.FormValue("email")
	password := r.FormValue("password")

	if _, err := h.creds.Register(r.Context(), username, email, password); err != nil {
		if apperror.IsValidation(err) || apperror.IsConflict(err) {
			h.render(w, r, "register.html", AuthViewModel{
				Error:    apperror.Message(err),
				Username: username,
				Email:    email,
			})
			return
		}
		handleError(w, err)
		return
	}

	http.Redirect(w, r, "/login", http.StatusFound)
}

// LoginForm renders the login page.
func (h *Handlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	// If already logged in, go straight to the dashboard
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if _, err := h.db.ValidateSession(r.Context(), cookie.Value, h.now()); err == nil {
			http.Redirect(w, r, "/dashboard", http.StatusFound)
			return
		}
	}
	h.render(w, r, "login.html", AuthViewModel{})
}

// Login handles the login form submission. Success opens a login log and
// binds its id to the new session; a wrong password against an existing user
// has already been recorded by the credential service.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, "login.html", AuthViewModel{Error: "Invalid form submission"})
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if username == "" || password == "" {
		h.render(w, r, "login.html", AuthViewModel{Error: "Username and password are required"})
		return
	}

	meta := auth.LoginMeta{IPAddress: clientIP(r), UserAgent: r.UserAgent()}
	user, err := h.creds.Authenticate(r.Context(), username, password, meta)
	if err != nil {
		if apperror.IsAuthentication(err) {
			h.render(w, r, "login.html", AuthViewModel{Error: apperror.Message(err), Username: username})
			return
		}
		handleError(w, err)
		return
	}

	loginLog, err := h.logins.RecordLogin(r.Context(), user.ID, meta.IPAddress, meta.UserAgent)
	if err != nil {
		handleError(w, err)
		return
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		slog.Error("generate session token", "error", err)
		h.render(w, r, "login.html", AuthViewModel{Error: "An error occurred. Please try again."})
		return
	}

	now := h.now()
	if err := h.db.CreateSession(r.Context(), token, user.ID, &loginLog.ID, now, now.Add(h.sessionTTL)); err != nil {
		slog.Error("create session", "user_id", user.ID, "error", err)
		h.render(w, r, "login.html", AuthViewModel{Error: "An error occurred. Please try again."})
		return
	}

	h.setSessionCookie(w, token)
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// Logout closes the session's login log, deletes the session and clears the
// cookie.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	info := SessionFromContext(r)
	if info != nil {
		if info.LoginLogID != nil {
			if err := h.logins.RecordLogout(r.Context(), *info.LoginLogID); err != nil {
				slog.Error("record logout", "login_log_id", *info.LoginLogID, "error", err)
			}
		}
		if err := h.db.DeleteSession(r.Context(), info.Token); err != nil {
			slog.Error("delete session", "error", err)
		}
	}
	h.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusFound)
}
