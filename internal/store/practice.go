package store

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/verte-zerg/stenodrill/internal/model"
)

// InsertPracticeSession stores a completed free-practice attempt.
func (s *Store) InsertPracticeSession(ctx context.Context, session model.PracticeSession) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO practice_sessions (started_at, ended_at, words, wpm, accuracy, mistakes, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		formatTime(session.StartedAt),
		formatTime(session.EndedAt),
		session.Words,
		session.WPM,
		session.Accuracy,
		session.Mistakes,
		session.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListPracticeSessions returns practice sessions filtered by cfg, oldest first.
func (s *Store) ListPracticeSessions(ctx context.Context, cfg model.StatsConfig) ([]model.PracticeSession, error) {
	query := sqlBuilder.
		Select("id", "started_at", "ended_at", "words", "wpm", "accuracy", "mistakes", "duration_ms").
		From("practice_sessions").
		OrderBy("ended_at ASC", "id ASC")
	if cfg.Since != nil {
		query = query.Where(squirrel.GtOrEq{"ended_at": formatTime(*cfg.Since)})
	}
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var sessions []model.PracticeSession
	for rows.Next() {
		var ps model.PracticeSession
		var startedAt, endedAt string
		if err := rows.Scan(&ps.ID, &startedAt, &endedAt, &ps.Words, &ps.WPM, &ps.Accuracy, &ps.Mistakes, &ps.DurationMs); err != nil {
			return nil, err
		}
		if ps.StartedAt, err = parseTime(startedAt); err != nil {
			return nil, err
		}
		if ps.EndedAt, err = parseTime(endedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}
	return sessions, nil
}
