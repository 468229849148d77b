package stats

import (
	"context"

	"github.com/verte-zerg/stenodrill/internal/model"
)

// ScoreLister is the part of the store a report needs.
type ScoreLister interface {
	ListScores(ctx context.Context, filter model.ScoreFilter) ([]model.Score, error)
}

// Report contains precomputed data for score rendering.
type Report struct {
	Scores  []model.Score `json:"scores"`
	Summary Summary       `json:"summary"`
	Missed  []string      `json:"missed"`
}

// BuildReport loads scores matching filter and summarizes them. topMissed
// bounds the missed-word list.
func BuildReport(ctx context.Context, src ScoreLister, filter model.ScoreFilter, topMissed int) (Report, error) {
	scores, err := src.ListScores(ctx, filter)
	if err != nil {
		return Report{}, err
	}
	if scores == nil {
		scores = []model.Score{}
	}
	missed := TopMissedWords(scores, topMissed)
	if missed == nil {
		missed = []string{}
	}
	return Report{
		Scores:  scores,
		Summary: SummarizeScores(scores),
		Missed:  missed,
	}, nil
}
