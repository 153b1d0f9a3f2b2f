package storage

import (
	"context"
	"time"

	"github.com/Hemanth0810/expense-tracker-app/internal/models"
)

// CreateSession creates a new session for a user. loginLogID references the
// login log opened for this session, so logout can close it.
func (db *DB) CreateSession(ctx context.Context, token string, userID int64, loginLogID *int64, createdAt, expiresAt time.Time) error {
	_, err := db.conn.ExecContext(ctx,
		"INSERT INTO sessions (token, user_id, login_log_id, created_at, expires_at) VALUES (?, ?, ?, ?, ?)",
		token, userID, loginLogID, createdAt.UTC(), expiresAt.UTC(),
	)
	return err
}

// SessionInfo holds the authenticated user and the session's own state.
type SessionInfo struct {
	User       *models.User
	Token      string
	LoginLogID *int64
	ExpiresAt  time.Time
}

// ValidateSession checks a session token against the given reference time and
// returns the associated user with the session state.
func (db *DB) ValidateSession(ctx context.Context, token string, now time.Time) (*SessionInfo, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT u.id, u.username, u.email, u.password_hash, u.is_admin, u.created_at, s.login_log_id, s.expires_at
		FROM sessions s
		JOIN users u ON s.user_id = u.id
		WHERE s.token = ? AND s.expires_at > ?
	`, token, now.UTC())

	var (
		u    models.User
		info SessionInfo
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt, &info.LoginLogID, &info.ExpiresAt); err != nil {
		return nil, err
	}
	info.User = &u
	info.Token = token
	return &info, nil
}

// DeleteSession removes a session by token.
func (db *DB) DeleteSession(ctx context.Context, token string) error {
	_, err := db.conn.ExecContext(ctx, "DELETE FROM sessions WHERE token = ?", token)
	return err
}

// DeleteExpiredSessions removes all sessions expired as of the given time.
func (db *DB) DeleteExpiredSessions(ctx context.Context, now time.Time) error {
	_, err := db.conn.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at <= ?", now.UTC())
	return err
}
