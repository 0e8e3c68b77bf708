package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"speakup/models"
)

const uniqueViolation = "23505"

// GetUser returns the user with the given username, or ErrNotFound.
func (s *Store) GetUser(ctx context.Context, username string) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	stmt := "SELECT username, password, email, first_name, last_name FROM users WHERE username = $1;"
	row := s.pool.QueryRow(ctx, stmt, username)

	var u models.User
	err := row.Scan(&u.Username, &u.PasswordHash, &u.Email, &u.FirstName, &u.LastName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("querying user %q: %w", username, err)
	}
	return u, nil
}

// insertUser adds a new user row. A unique violation on either the username
// primary key or the email constraint comes back as ErrDuplicate; nothing is
// committed in that case.
func (s *Store) insertUser(ctx context.Context, u models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	stmt := "INSERT INTO users (username, password, email, first_name, last_name) VALUES ($1, $2, $3, $4, $5);"
	_, err := s.pool.Exec(ctx, stmt, u.Username, u.PasswordHash, u.Email, u.FirstName, u.LastName)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("inserting user %q: %w", u.Username, err)
	}
	return nil
}

// DeleteUserCascade removes the user's feedback rows and the user row in a
// single transaction. Returns ErrNotFound if the user does not exist; in
// that case nothing is deleted.
func (s *Store) DeleteUserCascade(ctx context.Context, username string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning delete transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM feedback WHERE username = $1;", username); err != nil {
		return fmt.Errorf("deleting feedback for %q: %w", username, err)
	}

	tag, err := tx.Exec(ctx, "DELETE FROM users WHERE username = $1;", username)
	if err != nil {
		return fmt.Errorf("deleting user %q: %w", username, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}
