// Package model defines shared data structures.
package model

import (
	"time"

	"github.com/verte-zerg/stenodrill/internal/evaluate"
)

// PracticeConfig defines free-practice settings.
type PracticeConfig struct {
	Words        int
	CapsPct      float64
	PunctPct     float64
	PunctSet     string
	WordListPath string
}

// StatsConfig defines filters and options for practice history output.
type StatsConfig struct {
	Since       *time.Time
	Last        int
	CurveWindow int
}

// Assignment is a reference text published for students to type.
type Assignment struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Score is the stored result of a student's latest attempt at an assignment.
type Score struct {
	ID           string                 `json:"id"`
	AssignmentID string                 `json:"assignmentId"`
	StudentID    string                 `json:"studentId"`
	WPM          int                    `json:"wpm"`
	Accuracy     float64                `json:"accuracy"`
	TimeElapsed  float64                `json:"timeElapsed"`
	UserInput    string                 `json:"userInput"`
	Mistakes     []evaluate.Mistake     `json:"mistakes"`
	Counts       evaluate.MistakeCounts `json:"counts"`
	CompletedAt  time.Time              `json:"completedAt"`
}

// NewScore builds a Score from an evaluation result.
func NewScore(assignmentID, studentID string, res evaluate.Result, completedAt time.Time) Score {
	return Score{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		WPM:          res.WPM,
		Accuracy:     res.Accuracy,
		TimeElapsed:  res.TimeElapsed,
		UserInput:    res.UserInput,
		Mistakes:     res.Mistakes,
		Counts:       res.Counts(),
		CompletedAt:  completedAt,
	}
}

// ScoreFilter narrows a score listing.
type ScoreFilter struct {
	AssignmentID string
	StudentID    string
	Since        *time.Time
	Last         int
}

// PracticeSession captures a completed free-practice attempt.
type PracticeSession struct {
	ID         int64
	StartedAt  time.Time
	EndedAt    time.Time
	Words      int
	WPM        int
	Accuracy   float64
	Mistakes   int
	DurationMs int64
}
