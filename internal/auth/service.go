package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Hemanth0810/expense-tracker-app/internal/apperror"
	"github.com/Hemanth0810/expense-tracker-app/internal/models"
	"github.com/Hemanth0810/expense-tracker-app/internal/storage"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

// LoginRecorder records failed login attempts against existing users.
// Satisfied by sessionlog.Ledger.
type LoginRecorder interface {
	RecordFailedAttempt(ctx context.Context, userID int64, ipAddress, userAgent string) (*models.LoginLog, error)
}

// LoginMeta carries optional client details captured at login time.
type LoginMeta struct {
	IPAddress string
	UserAgent string
}

// Service implements registration and authentication over the user store.
type Service struct {
	db     *storage.DB
	logins LoginRecorder
}

// NewService creates a credential service. logins may be nil, in which case
// failed attempts are not recorded.
func NewService(db *storage.DB, logins LoginRecorder) *Service {
	return &Service{db: db, logins: logins}
}

// Register validates and creates a new user. The username conflict is checked
// before the email conflict; only the bcrypt hash of the password is stored.
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if len(username) < minUsernameLen {
		return nil, apperror.NewValidation(fmt.Sprintf("Username must be at least %d characters long.", minUsernameLen))
	}
	if len(password) < minPasswordLen {
		return nil, apperror.NewValidation(fmt.Sprintf("Password must be at least %d characters long.", minPasswordLen))
	}
	if email == "" {
		return nil, apperror.NewValidation("Email is required.")
	}

	if _, err := s.db.GetUserByUsername(ctx, username); err == nil {
		return nil, apperror.NewConflict("Username already exists.")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewDatabase("look up username", err)
	}

	if _, err := s.db.GetUserByEmail(ctx, email); err == nil {
		return nil, apperror.NewConflict("Email already registered.")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewDatabase("look up email", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, apperror.NewDatabase("hash password", err)
	}

	user, err := s.db.CreateUser(ctx, username, email, hash, false)
	if err != nil {
		// The pre-checks race with concurrent registration; the unique
		// constraints are the authority.
		if strings.Contains(err.Error(), "users.username") {
			return nil, apperror.NewConflict("Username already exists.")
		}
		if strings.Contains(err.Error(), "users.email") {
			return nil, apperror.NewConflict("Email already registered.")
		}
		return nil, apperror.NewDatabase("create user", err)
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Authenticate verifies credentials by exact username. The caller-facing
// error is the same for an unknown username and a wrong password, but a wrong
// password against an existing user records a failed-attempt login log;
// unknown usernames leave no trace.
func (s *Service) Authenticate(ctx context.Context, username, password string, meta LoginMeta) (*models.User, error) {
	user, err := s.db.GetUserByUsername(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewAuthentication("Invalid username or password.")
	}
	if err != nil {
		return nil, apperror.NewDatabase("look up user", err)
	}

	if !CheckPassword(password, user.PasswordHash) {
		if s.logins != nil {
			if _, logErr := s.logins.RecordFailedAttempt(ctx, user.ID, meta.IPAddress, meta.UserAgent); logErr != nil {
				slog.Error("record failed login attempt", "user_id", user.ID, "error", logErr)
			}
		}
		return nil, apperror.NewAuthentication("Invalid username or password.")
	}

	return user, nil
}
