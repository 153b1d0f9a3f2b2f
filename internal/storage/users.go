package storage

import (
	"context"
	"time"

	"github.com/Hemanth0810/expense-tracker-app/internal/models"
)

// CreateUser inserts a new user and returns the stored record.
func (db *DB) CreateUser(ctx context.Context, username, email, passwordHash string, isAdmin bool) (*models.User, error) {
	result, err := db.conn.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, is_admin, created_at) VALUES (?, ?, ?, ?, ?)",
		username, email, passwordHash, isAdmin, time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return db.GetUserByID(ctx, id)
}

// GetUserByID retrieves a user by ID.
func (db *DB) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT id, username, email, password_hash, is_admin, created_at FROM users WHERE id = ?",
		id,
	)
	return scanUser(row)
}

// GetUserByUsername retrieves a user by exact username.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT id, username, email, password_hash, is_admin, created_at FROM users WHERE username = ?",
		username,
	)
	return scanUser(row)
}

// GetUserByEmail retrieves a user by email.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT id, username, email, password_hash, is_admin, created_at FROM users WHERE email = ?",
		email,
	)
	return scanUser(row)
}

// SetAdmin toggles a user's admin flag.
func (db *DB) SetAdmin(ctx context.Context, id int64, isAdmin bool) error {
	_, err := db.conn.ExecContext(ctx, "UPDATE users SET is_admin = ? WHERE id = ?", isAdmin, id)
	return err
}

// DeleteUser removes a user. Expenses, login logs and sessions go with it
// via ON DELETE CASCADE.
func (db *DB) DeleteUser(ctx context.Context, id int64) error {
	_, err := db.conn.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	return err
}

// ListUsers returns all users ordered by creation time, newest first.
func (db *DB) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT id, username, email, password_hash, is_admin, created_at FROM users ORDER BY created_at DESC, id DESC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UserCount returns the number of users in the database.
func (db *DB) UserCount(ctx context.Context) (int64, error) {
	var count int64
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
