package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/upanishads/sutra-api/internal/models"
	"github.com/upanishads/sutra-api/internal/server/storage"
)

// CreateUser inserts a new user and returns its id
func (s *Storage) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	query := `
		INSERT INTO users (first_name, last_name, email, password_hash, is_admin, phone_no)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	res, err := s.db.ExecContext(ctx, query,
		user.FirstName,
		nullString(user.LastName),
		user.Email,
		user.PasswordHash,
		user.IsAdmin,
		nullString(user.PhoneNo),
	)
	if err != nil {
		if err := mapConstraintErr(err); errors.Is(err, storage.ErrDuplicate) {
			return 0, err
		}
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get insert id: %w", err)
	}
	return id, nil
}

func (s *Storage) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var lastName, phoneNo sql.NullString

	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&lastName,
		&user.Email,
		&user.PasswordHash,
		&user.IsAdmin,
		&phoneNo,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.LastName = lastName.String
	user.PhoneNo = phoneNo.String
	return user, nil
}

// GetUserByID retrieves a user by id
func (s *Storage) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, first_name, last_name, email, password_hash, is_admin, phone_no
		FROM users
		WHERE id = ?
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, id))
}

// GetUserByEmail retrieves a user by email
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, first_name, last_name, email, password_hash, is_admin, phone_no
		FROM users
		WHERE email = ?
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, email))
}

// ListUsers returns all users
func (s *Storage) ListUsers(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, first_name, last_name, email, password_hash, is_admin, phone_no
		FROM users
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		var lastName, phoneNo sql.NullString
		if err := rows.Scan(&u.ID, &u.FirstName, &lastName, &u.Email, &u.PasswordHash, &u.IsAdmin, &phoneNo); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		u.LastName = lastName.String
		u.PhoneNo = phoneNo.String
		users = append(users, u)
	}
	return users, rows.Err()
}

// DeleteUser deletes a user by id
func (s *Storage) DeleteUser(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
