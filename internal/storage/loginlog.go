package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/Hemanth0810/expense-tracker-app/internal/models"
)

// InsertLoginLog records a login attempt for an existing user.
func (db *DB) InsertLoginLog(ctx context.Context, userID int64, at time.Time, ipAddress, userAgent string, success bool) (*models.LoginLog, error) {
	result, err := db.conn.ExecContext(ctx,
		"INSERT INTO login_logs (user_id, login_time, ip_address, user_agent, success) VALUES (?, ?, ?, ?, ?)",
		userID, at.UTC(), nullString(ipAddress), nullString(userAgent), success,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return db.GetLoginLog(ctx, id)
}

// GetLoginLog retrieves a login log by id.
func (db *DB) GetLoginLog(ctx context.Context, id int64) (*models.LoginLog, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT id, user_id, login_time, ip_address, user_agent, success, logout_time, session_duration FROM login_logs WHERE id = ?",
		id,
	)
	return scanLoginLog(row)
}

// CloseLoginLog sets logout_time and the floored whole-minute duration on an
// open log, inside one transaction. It reports whether the log was closed by
// this call; a missing or already-closed log is a no-op.
func (db *DB) CloseLoginLog(ctx context.Context, id int64, at time.Time) (bool, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var loginTime time.Time
	err = tx.QueryRowContext(ctx,
		"SELECT login_time FROM login_logs WHERE id = ? AND logout_time IS NULL",
		id,
	).Scan(&loginTime)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	duration := int64(at.Sub(loginTime).Minutes())
	if duration < 0 {
		duration = 0
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE login_logs SET logout_time = ?, session_duration = ? WHERE id = ? AND logout_time IS NULL",
		at.UTC(), duration, id,
	); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// LoginActivity retrieves a user's login logs, most recent first.
func (db *DB) LoginActivity(ctx context.Context, userID int64, limit int) ([]models.LoginLog, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT id, user_id, login_time, ip_address, user_agent, success, logout_time, session_duration FROM login_logs WHERE user_id = ? ORDER BY login_time DESC, id DESC LIMIT ?",
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLoginLogs(rows)
}

// LoginLogCount returns the number of login logs for a user, across both
// successful and failed attempts.
func (db *DB) LoginLogCount(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := db.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM login_logs WHERE user_id = ?", userID,
	).Scan(&count)
	return count, err
}

// LoginStats summarizes a user's login activity. The average is computed only
// over logs carrying a duration and is 0 when there are none.
func (db *DB) LoginStats(ctx context.Context, userID int64) (models.LoginStats, error) {
	var stats models.LoginStats
	err := db.conn.QueryRowContext(ctx,
		`SELECT
			COUNT(CASE WHEN success = 1 THEN 1 END),
			COUNT(CASE WHEN success = 0 THEN 1 END),
			COALESCE(AVG(CASE WHEN session_duration IS NOT NULL THEN session_duration END), 0)
		 FROM login_logs WHERE user_id = ?`,
		userID,
	).Scan(&stats.SuccessfulLogins, &stats.FailedAttempts, &stats.AvgDuration)
	return stats, err
}

// GlobalLoginCounts returns the system-wide successful and failed login counts.
func (db *DB) GlobalLoginCounts(ctx context.Context) (successful, failed int64, err error) {
	err = db.conn.QueryRowContext(ctx,
		`SELECT
			COUNT(CASE WHEN success = 1 THEN 1 END),
			COUNT(CASE WHEN success = 0 THEN 1 END)
		 FROM login_logs`,
	).Scan(&successful, &failed)
	return successful, failed, err
}

// LoginWithUser is a login log joined with its owner's username.
type LoginWithUser struct {
	models.LoginLog
	Username string
}

// RecentLogins returns the n most recent successful logins across all users.
func (db *DB) RecentLogins(ctx context.Context, n int) ([]LoginWithUser, error) {
	return db.queryLoginsWithUser(ctx,
		`SELECT l.id, l.user_id, l.login_time, l.ip_address, l.user_agent, l.success, l.logout_time, l.session_duration, u.username
		 FROM login_logs l JOIN users u ON l.user_id = u.id
		 WHERE l.success = 1
		 ORDER BY l.login_time DESC, l.id DESC LIMIT ?`,
		n,
	)
}

// FailedAttemptsSince returns all failed attempts at or after the cutoff,
// most recent first.
func (db *DB) FailedAttemptsSince(ctx context.Context, cutoff time.Time) ([]LoginWithUser, error) {
	return db.queryLoginsWithUser(ctx,
		`SELECT l.id, l.user_id, l.login_time, l.ip_address, l.user_agent, l.success, l.logout_time, l.session_duration, u.username
		 FROM login_logs l JOIN users u ON l.user_id = u.id
		 WHERE l.success = 0 AND l.login_time >= ?
		 ORDER BY l.login_time DESC, l.id DESC`,
		cutoff.UTC(),
	)
}

// UserLoginCount is a per-user successful-login tally with the last login time.
type UserLoginCount struct {
	UserID    int64
	Username  string
	Logins    int64
	LastLogin time.Time
}

// TopUsersByLogins returns the n users with the most successful logins.
func (db *DB) TopUsersByLogins(ctx context.Context, n int) ([]UserLoginCount, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT u.id, u.username, COUNT(l.id)
		 FROM login_logs l JOIN users u ON l.user_id = u.id
		 WHERE l.success = 1
		 GROUP BY u.id, u.username
		 ORDER BY COUNT(l.id) DESC, u.username LIMIT ?`,
		n,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []UserLoginCount
	for rows.Next() {
		var c UserLoginCount
		if err := rows.Scan(&c.UserID, &c.Username, &c.Logins); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Last-login is read per user from the raw column; aggregate expressions
	// lose the column's declared type and come back untyped.
	for i := range counts {
		err := db.conn.QueryRowContext(ctx,
			"SELECT login_time FROM login_logs WHERE user_id = ? AND success = 1 ORDER BY login_time DESC, id DESC LIMIT 1",
			counts[i].UserID,
		).Scan(&counts[i].LastLogin)
		if err != nil {
			return nil, err
		}
	}
	return counts, nil
}

func (db *DB) queryLoginsWithUser(ctx context.Context, query string, args ...any) ([]LoginWithUser, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []LoginWithUser
	for rows.Next() {
		var (
			l      LoginWithUser
			ip, ua sql.NullString
		)
		if err := rows.Scan(&l.ID, &l.UserID, &l.LoginTime, &ip, &ua, &l.Success, &l.LogoutTime, &l.SessionDuration, &l.Username); err != nil {
			return nil, err
		}
		l.IPAddress = ip.String
		l.UserAgent = ua.String
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func collectLoginLogs(rows *sql.Rows) ([]models.LoginLog, error) {
	var logs []models.LoginLog
	for rows.Next() {
		l, err := scanLoginLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}

func scanLoginLog(row rowScanner) (*models.LoginLog, error) {
	var (
		l      models.LoginLog
		ip, ua sql.NullString
	)
	if err := row.Scan(&l.ID, &l.UserID, &l.LoginTime, &ip, &ua, &l.Success, &l.LogoutTime, &l.SessionDuration); err != nil {
		return nil, err
	}
	l.IPAddress = ip.String
	l.UserAgent = ua.String
	return &l, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
