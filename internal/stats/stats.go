// Package stats contains score summaries and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/stenodrill/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summary aggregates a set of scores.
type Summary struct {
	Count         int     `json:"count"`
	AvgWPM        float64 `json:"avgWpm"`
	BestWPM       int     `json:"bestWpm"`
	AvgAccuracy   float64 `json:"avgAccuracy"`
	TotalMistakes int     `json:"totalMistakes"`
}

// SummarizeScores computes averages over scores. An empty slice yields a zero Summary.
func SummarizeScores(scores []model.Score) Summary {
	if len(scores) == 0 {
		return Summary{}
	}
	var sum Summary
	var totalWPM, totalAcc float64
	for _, sc := range scores {
		totalWPM += float64(sc.WPM)
		totalAcc += sc.Accuracy
		if sc.WPM > sum.BestWPM {
			sum.BestWPM = sc.WPM
		}
		sum.TotalMistakes += sc.Counts.Total()
	}
	sum.Count = len(scores)
	sum.AvgWPM = totalWPM / float64(sum.Count)
	sum.AvgAccuracy = totalAcc / float64(sum.Count)
	return sum
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints a score summary block.
func RenderSummary(w io.Writer, sum Summary) error {
	if sum.Count == 0 {
		_, err := fmt.Fprintln(w, "No scores found.")
		return err
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Scores: %d", sum.Count),
		fmt.Sprintf("Avg WPM: %.2f", sum.AvgWPM),
		fmt.Sprintf("Best WPM: %d", sum.BestWPM),
		fmt.Sprintf("Avg Accuracy: %.2f%%", sum.AvgAccuracy),
		fmt.Sprintf("Mistakes: %d", sum.TotalMistakes),
		"",
	}
	return writeLines(w, lines)
}

// RenderScoreTable prints one row per score.
func RenderScoreTable(w io.Writer, scores []model.Score) error {
	if len(scores) == 0 {
		return nil
	}
	headers := []string{"Completed", "Assignment", "Student", "WPM", "Accuracy", "Skipped", "Extra", "Misspelled"}
	rows := make([][]string, 0, len(scores))
	for _, sc := range scores {
		rows = append(rows, []string{
			sc.CompletedAt.Local().Format(time.DateTime),
			shortID(sc.AssignmentID),
			sc.StudentID,
			fmt.Sprintf("%d", sc.WPM),
			fmt.Sprintf("%.2f%%", sc.Accuracy),
			fmt.Sprintf("%d", sc.Counts.Skipped),
			fmt.Sprintf("%d", sc.Counts.Extra),
			fmt.Sprintf("%d", sc.Counts.Misspelled),
		})
	}
	rightAlign := map[int]bool{3: true, 4: true, 5: true, 6: true, 7: true}
	lines := formatTable(headers, rows, rightAlign)
	return writeLines(w, append(lines, ""))
}

// RenderPractice prints practice history with smoothed learning curves.
func RenderPractice(w io.Writer, sessions []model.PracticeSession, window int) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No practice sessions found.")
		return err
	}
	wpms := make([]float64, len(sessions))
	accs := make([]float64, len(sessions))
	var totalWPM, totalAcc float64
	best := 0
	for i, s := range sessions {
		wpms[i] = float64(s.WPM)
		accs[i] = s.Accuracy
		totalWPM += wpms[i]
		totalAcc += s.Accuracy
		best = max(best, s.WPM)
	}
	count := float64(len(sessions))
	wpms = MovingAverage(wpms, window)
	accs = MovingAverage(accs, window)

	lines := []string{
		"Practice",
		fmt.Sprintf("Sessions: %d", len(sessions)),
		fmt.Sprintf("Avg WPM: %.2f", totalWPM/count),
		fmt.Sprintf("Best WPM: %d", best),
		fmt.Sprintf("Avg Accuracy: %.2f%%", totalAcc/count),
		"",
		"Learning Curves",
	}
	lines = append(lines, formatTable(nil, [][]string{
		{"WPM", Sparkline(wpms), fmt.Sprintf("%.1f", wpms[len(wpms)-1])},
		{"Accuracy", Sparkline(accs), fmt.Sprintf("%.1f%%", accs[len(accs)-1])},
	}, nil)...)
	return writeLines(w, append(lines, ""))
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
