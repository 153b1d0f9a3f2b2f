// Package sessionlog is the login-activity ledger: it records login and
// logout events per user and answers activity and audit queries.
package sessionlog

import (
	"context"
	"log/slog"
	"time"

	"github.com/Hemanth0810/expense-tracker-app/internal/apperror"
	"github.com/Hemanth0810/expense-tracker-app/internal/models"
	"github.com/Hemanth0810/expense-tracker-app/internal/storage"
)

const (
	// DefaultActivityLimit bounds per-user activity listings.
	DefaultActivityLimit = 50
	failureWindow        = 24 * time.Hour
)

// Ledger records and queries login activity. The clock is a field so tests
// can pin it.
type Ledger struct {
	db  *storage.DB
	now func() time.Time
}

// NewLedger creates a session ledger using the wall clock.
func NewLedger(db *storage.DB) *Ledger {
	return &Ledger{db: db, now: time.Now}
}

// RecordLogin creates an open login log after successful authentication.
func (l *Ledger) RecordLogin(ctx context.Context, userID int64, ipAddress, userAgent string) (*models.LoginLog, error) {
	log, err := l.db.InsertLoginLog(ctx, userID, l.now(), ipAddress, userAgent, true)
	if err != nil {
		return nil, apperror.NewDatabase("record login", err)
	}
	return log, nil
}

// RecordFailedAttempt creates a terminal failed-attempt log. It must only be
// called when the submitted username resolved to an existing user.
func (l *Ledger) RecordFailedAttempt(ctx context.Context, userID int64, ipAddress, userAgent string) (*models.LoginLog, error) {
	log, err := l.db.InsertLoginLog(ctx, userID, l.now(), ipAddress, userAgent, false)
	if err != nil {
		return nil, apperror.NewDatabase("record failed attempt", err)
	}
	return log, nil
}

// RecordLogout closes an open login log, setting logout_time and the session
// duration floored to whole minutes. Missing or already-closed logs are a
// no-op.
func (l *Ledger) RecordLogout(ctx context.Context, loginLogID int64) error {
	closed, err := l.db.CloseLoginLog(ctx, loginLogID, l.now())
	if err != nil {
		return apperror.NewDatabase("record logout", err)
	}
	if !closed {
		slog.Debug("logout for missing or closed login log", "login_log_id", loginLogID)
	}
	return nil
}

// ActivityFor returns a user's login logs, most recent first. limit <= 0
// falls back to DefaultActivityLimit.
func (l *Ledger) ActivityFor(ctx context.Context, userID int64, limit int) ([]models.LoginLog, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	logs, err := l.db.LoginActivity(ctx, userID, limit)
	if err != nil {
		return nil, apperror.NewDatabase("list login activity", err)
	}
	return logs, nil
}

// StatsFor summarizes a user's login activity. The average duration covers
// only closed sessions and is 0 when there are none.
func (l *Ledger) StatsFor(ctx context.Context, userID int64) (models.LoginStats, error) {
	stats, err := l.db.LoginStats(ctx, userID)
	if err != nil {
		return models.LoginStats{}, apperror.NewDatabase("compute login stats", err)
	}
	return stats, nil
}

// GlobalCounts returns system-wide successful and failed login counts.
func (l *Ledger) GlobalCounts(ctx context.Context) (successful, failed int64, err error) {
	successful, failed, err = l.db.GlobalLoginCounts(ctx)
	if err != nil {
		return 0, 0, apperror.NewDatabase("count logins", err)
	}
	return successful, failed, nil
}

// RecentLogins returns the n most recent successful logins with usernames.
func (l *Ledger) RecentLogins(ctx context.Context, n int) ([]storage.LoginWithUser, error) {
	logs, err := l.db.RecentLogins(ctx, n)
	if err != nil {
		return nil, apperror.NewDatabase("list recent logins", err)
	}
	return logs, nil
}

// TopUsers returns the n users with the most successful logins, with their
// last login time.
func (l *Ledger) TopUsers(ctx context.Context, n int) ([]storage.UserLoginCount, error) {
	counts, err := l.db.TopUsersByLogins(ctx, n)
	if err != nil {
		return nil, apperror.NewDatabase("rank users by logins", err)
	}
	return counts, nil
}

// RecentFailures returns all failed attempts within the trailing 24 hours.
func (l *Ledger) RecentFailures(ctx context.Context) ([]storage.LoginWithUser, error) {
	logs, err := l.db.FailedAttemptsSince(ctx, l.now().Add(-failureWindow))
	if err != nil {
		return nil, apperror.NewDatabase("list failed attempts", err)
	}
	return logs, nil
}
