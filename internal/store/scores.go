package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/verte-zerg/stenodrill/internal/evaluate"
	"github.com/verte-zerg/stenodrill/internal/model"
)

var scoreColumns = []string{
	"id", "assignment_id", "student_id", "wpm", "accuracy", "time_elapsed", "user_input",
	"skipped", "extra", "misspelled", "completed_at",
}

// SaveScore stores a student's attempt at an assignment. A previous score for
// the same assignment and student is replaced, mistakes included.
func (s *Store) SaveScore(ctx context.Context, score model.Score) (model.Score, error) {
	score.AssignmentID = strings.TrimSpace(score.AssignmentID)
	score.StudentID = strings.TrimSpace(score.StudentID)
	if score.AssignmentID == "" {
		return model.Score{}, invalidf("assignment id is empty")
	}
	if score.StudentID == "" {
		return model.Score{}, invalidf("student id is empty")
	}
	if score.CompletedAt.IsZero() {
		score.CompletedAt = time.Now()
	}
	score.CompletedAt = score.CompletedAt.UTC()
	if score.Mistakes == nil {
		score.Mistakes = []evaluate.Mistake{}
	}
	score.Counts = evaluate.CountMistakes(score.Mistakes)
	score.ID = uuid.NewString()

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM assignments WHERE id = ?`, score.AssignmentID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var previousID string
		err = tx.QueryRowContext(ctx,
			`SELECT id FROM scores WHERE assignment_id = ? AND student_id = ?`,
			score.AssignmentID, score.StudentID).Scan(&previousID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
		case err != nil:
			return err
		default:
			if _, err := tx.ExecContext(ctx, `DELETE FROM score_mistakes WHERE score_id = ?`, previousID); err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, `DELETE FROM scores WHERE id = ?`, previousID); err != nil {
				return err
			}
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO scores (id, assignment_id, student_id, wpm, accuracy, time_elapsed, user_input, skipped, extra, misspelled, completed_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			score.ID,
			score.AssignmentID,
			score.StudentID,
			score.WPM,
			score.Accuracy,
			score.TimeElapsed,
			score.UserInput,
			score.Counts.Skipped,
			score.Counts.Extra,
			score.Counts.Misspelled,
			formatTime(score.CompletedAt),
		); err != nil {
			return err
		}

		if len(score.Mistakes) == 0 {
			return nil
		}
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO score_mistakes (score_id, seq, expected, actual, position) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for i, m := range score.Mistakes {
			if _, err := stmt.ExecContext(ctx, score.ID, i, m.Expected, m.Actual, m.Position); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return model.Score{}, err
	}
	return score, nil
}

// GetScore returns the current score of a student for an assignment.
func (s *Store) GetScore(ctx context.Context, assignmentID, studentID string) (model.Score, error) {
	scores, err := s.ListScores(ctx, model.ScoreFilter{AssignmentID: assignmentID, StudentID: studentID})
	if err != nil {
		return model.Score{}, err
	}
	if len(scores) == 0 {
		return model.Score{}, ErrNotFound
	}
	return scores[0], nil
}

// ListScores returns scores matching the filter ordered by completion time,
// with their mistakes loaded.
func (s *Store) ListScores(ctx context.Context, filter model.ScoreFilter) ([]model.Score, error) {
	query := sqlBuilder.Select(scoreColumns...).From("scores").OrderBy("completed_at ASC", "student_id ASC")
	if filter.AssignmentID != "" {
		query = query.Where(squirrel.Eq{"assignment_id": filter.AssignmentID})
	}
	if filter.StudentID != "" {
		query = query.Where(squirrel.Eq{"student_id": filter.StudentID})
	}
	if filter.Since != nil {
		query = query.Where(squirrel.GtOrEq{"completed_at": formatTime(*filter.Since)})
	}
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	scores, err := s.queryScores(ctx, sqlStr, args)
	if err != nil {
		return nil, err
	}
	if filter.Last > 0 && len(scores) > filter.Last {
		scores = scores[len(scores)-filter.Last:]
	}
	if err := s.loadMistakes(ctx, scores); err != nil {
		return nil, err
	}
	return scores, nil
}

func (s *Store) queryScores(ctx context.Context, query string, args []any) ([]model.Score, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var scores []model.Score
	for rows.Next() {
		var sc model.Score
		var completedAt string
		if err := rows.Scan(
			&sc.ID,
			&sc.AssignmentID,
			&sc.StudentID,
			&sc.WPM,
			&sc.Accuracy,
			&sc.TimeElapsed,
			&sc.UserInput,
			&sc.Counts.Skipped,
			&sc.Counts.Extra,
			&sc.Counts.Misspelled,
			&completedAt,
		); err != nil {
			return nil, err
		}
		if sc.CompletedAt, err = parseTime(completedAt); err != nil {
			return nil, err
		}
		sc.Mistakes = []evaluate.Mistake{}
		scores = append(scores, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return scores, nil
}

func (s *Store) loadMistakes(ctx context.Context, scores []model.Score) error {
	if len(scores) == 0 {
		return nil
	}
	index := make(map[string]int, len(scores))
	ids := make([]string, len(scores))
	for i, sc := range scores {
		index[sc.ID] = i
		ids[i] = sc.ID
	}
	sqlStr, args, err := sqlBuilder.
		Select("score_id", "expected", "actual", "position").
		From("score_mistakes").
		Where(squirrel.Eq{"score_id": ids}).
		OrderBy("score_id", "seq").
		ToSql()
	if err != nil {
		return err
	}
	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	defer closeRows(rows)

	for rows.Next() {
		var scoreID string
		var m evaluate.Mistake
		if err := rows.Scan(&scoreID, &m.Expected, &m.Actual, &m.Position); err != nil {
			return err
		}
		i := index[scoreID]
		scores[i].Mistakes = append(scores[i].Mistakes, m)
	}
	return rows.Err()
}
