package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/stenodrill/internal/model"
)

// CreateAssignment stores a new reference text and returns it with its ID.
func (s *Store) CreateAssignment(ctx context.Context, title, text string) (model.Assignment, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Assignment{}, invalidf("title is empty")
	}
	if strings.TrimSpace(text) == "" {
		return model.Assignment{}, invalidf("text is empty")
	}
	a := model.Assignment{
		ID:        uuid.NewString(),
		Title:     title,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO assignments (id, title, text, created_at) VALUES (?, ?, ?, ?)`,
		a.ID, a.Title, a.Text, formatTime(a.CreatedAt))
	if err != nil {
		return model.Assignment{}, err
	}
	return a, nil
}

// GetAssignment loads one assignment by ID.
func (s *Store) GetAssignment(ctx context.Context, id string) (model.Assignment, error) {
	var a model.Assignment
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, text, created_at FROM assignments WHERE id = ?`, id).
		Scan(&a.ID, &a.Title, &a.Text, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Assignment{}, ErrNotFound
	}
	if err != nil {
		return model.Assignment{}, err
	}
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Assignment{}, err
	}
	return a, nil
}

// ListAssignments returns all assignments, oldest first.
func (s *Store) ListAssignments(ctx context.Context) ([]model.Assignment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, text, created_at FROM assignments ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var result []model.Assignment
	for rows.Next() {
		var a model.Assignment
		var createdAt string
		if err := rows.Scan(&a.ID, &a.Title, &a.Text, &createdAt); err != nil {
			return nil, err
		}
		if a.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteAssignment removes an assignment together with its scores.
func (s *Store) DeleteAssignment(ctx context.Context, id string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM score_mistakes WHERE score_id IN (SELECT id FROM scores WHERE assignment_id = ?)`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM scores WHERE assignment_id = ?`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM assignments WHERE id = ?`, id)
		if err != nil {
			return err
		}
		return rowsAffected(res)
	})
}
