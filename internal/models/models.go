package models

import "time"

// User represents a user account.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// Expense represents a financial expense record owned by a user.
type Expense struct {
	ID          int64     `json:"id"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UserID      int64     `json:"user_id"`
}

// DateString formats the expense date for forms and API payloads.
func (e Expense) DateString() string {
	return e.Date.Format("2006-01-02")
}

// LoginLog records one login attempt. A successful login stays open until
// logout closes it; a failed attempt is terminal at creation.
type LoginLog struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"user_id"`
	LoginTime       time.Time  `json:"login_time"`
	IPAddress       string     `json:"ip_address,omitempty"`
	UserAgent       string     `json:"user_agent,omitempty"`
	Success         bool       `json:"success"`
	LogoutTime      *time.Time `json:"logout_time,omitempty"`
	SessionDuration *int64     `json:"session_duration,omitempty"` // whole minutes
}

// LoginStats summarizes a user's login activity.
type LoginStats struct {
	SuccessfulLogins int64   `json:"successful_logins"`
	FailedAttempts   int64   `json:"failed_attempts"`
	AvgDuration      float64 `json:"avg_session_duration_minutes"`
}

// Session represents a server-side session. LoginLogID references the login
// log opened when the session was established, so logout can close it.
type Session struct {
	Token      string    `json:"token"`
	UserID     int64     `json:"user_id"`
	LoginLogID *int64    `json:"login_log_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}
