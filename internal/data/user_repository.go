package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQLUserRepository is a concrete implementation of the UserRepository
// interface using sqlx.
type SQLUserRepository struct {
	db *sqlx.DB
}

// NewSQLUserRepository creates a new SQLUserRepository.
func NewSQLUserRepository(db *sqlx.DB) *SQLUserRepository {
	return &SQLUserRepository{db: db}
}

const selectUsers = `SELECT id, subject, username, first_name, last_name, email, created_at FROM users`

// GetUserByID retrieves a single user by their ID.
func (r *SQLUserRepository) GetUserByID(ctx context.Context, id int64) (*User, error) {
	var user User
	if err := r.db.GetContext(ctx, &user, selectUsers+` WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &user, nil
}

// GetUserByUsername retrieves a single user by their public username.
func (r *SQLUserRepository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := r.db.GetContext(ctx, &user, selectUsers+` WHERE username = ?`, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}

// UpsertBySubject finds the user carrying the given OIDC subject, creating
// them on first login. The username defaults to the subject's local part and
// can be kept; the profile editor only touches name and email.
func (r *SQLUserRepository) UpsertBySubject(ctx context.Context, subject, username, email string) (*User, error) {
	var user User
	err := r.db.GetContext(ctx, &user, selectUsers+` WHERE subject = ?`, subject)
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get user by subject: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (subject, username, email) VALUES (?, ?, ?)`,
		subject, username, email)
	if err != nil {
		return nil, fmt.Errorf("failed to create user for subject: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted user id: %w", err)
	}
	return r.GetUserByID(ctx, id)
}

// UpdateProfile updates the editable profile fields of a user.
func (r *SQLUserRepository) UpdateProfile(ctx context.Context, user *User) error {
	query := `UPDATE users SET first_name = :first_name, last_name = :last_name, email = :email WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user %d: %w", user.ID, ErrNotFound)
	}
	return nil
}
