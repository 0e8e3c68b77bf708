package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"speakup/models"
)

// CreateFeedback inserts a new feedback row owned by fb.Username and returns
// the assigned id.
func (s *Store) CreateFeedback(ctx context.Context, fb models.Feedback) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	stmt := "INSERT INTO feedback (title, content, username) VALUES ($1, $2, $3) RETURNING id;"

	var id int
	err := s.pool.QueryRow(ctx, stmt, fb.Title, fb.Content, fb.Username).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting feedback for %q: %w", fb.Username, err)
	}
	return id, nil
}

// GetFeedback returns the feedback row with the given id, or ErrNotFound.
func (s *Store) GetFeedback(ctx context.Context, id int) (models.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	stmt := "SELECT id, title, content, username FROM feedback WHERE id = $1;"
	row := s.pool.QueryRow(ctx, stmt, id)

	var fb models.Feedback
	err := row.Scan(&fb.ID, &fb.Title, &fb.Content, &fb.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Feedback{}, ErrNotFound
		}
		return models.Feedback{}, fmt.Errorf("querying feedback %d: %w", id, err)
	}
	return fb, nil
}

// UpdateFeedback overwrites title and content of an existing row. The id and
// owner never change.
func (s *Store) UpdateFeedback(ctx context.Context, id int, title, content string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	stmt := "UPDATE feedback SET title = $1, content = $2 WHERE id = $3;"
	tag, err := s.pool.Exec(ctx, stmt, title, content, id)
	if err != nil {
		return fmt.Errorf("updating feedback %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteFeedback removes a single feedback row by id.
func (s *Store) DeleteFeedback(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	tag, err := s.pool.Exec(ctx, "DELETE FROM feedback WHERE id = $1;", id)
	if err != nil {
		return fmt.Errorf("deleting feedback %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListFeedbackForUser returns every feedback row owned by username, oldest
// first.
func (s *Store) ListFeedbackForUser(ctx context.Context, username string) ([]models.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	stmt := "SELECT id, title, content, username FROM feedback WHERE username = $1 ORDER BY id;"
	rows, err := s.pool.Query(ctx, stmt, username)
	if err != nil {
		return nil, fmt.Errorf("querying feedback for %q: %w", username, err)
	}
	defer rows.Close()

	feedback := []models.Feedback{}
	for rows.Next() {
		var fb models.Feedback
		if err := rows.Scan(&fb.ID, &fb.Title, &fb.Content, &fb.Username); err != nil {
			return nil, fmt.Errorf("scanning feedback row: %w", err)
		}
		feedback = append(feedback, fb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading feedback rows: %w", err)
	}

	return feedback, nil
}
