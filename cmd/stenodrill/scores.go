package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/stenodrill/internal/model"
	"github.com/verte-zerg/stenodrill/internal/stats"
)

const defaultMissedTop = 10

var (
	scoresAssignment string
	scoresStudent    string
	scoresSince      string
	scoresLast       int
	scoresJSON       bool

	historySince       string
	historyLast        int
	historyCurveWindow int
)

func newScoresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Show assignment scores",
		Args:  cobra.NoArgs,
		RunE:  runScoresCmd,
	}
	cmd.Flags().StringVar(&scoresAssignment, "assignment", "", "assignment id filter")
	cmd.Flags().StringVar(&scoresStudent, "student", "", "student id filter")
	cmd.Flags().StringVar(&scoresSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&scoresLast, "last", 0, "limit to last N scores")
	cmd.Flags().BoolVar(&scoresJSON, "json", false, "print JSON")
	return cmd
}

func runScoresCmd(cmd *cobra.Command, _ []string) error {
	since, err := parseSince(scoresSince)
	if err != nil {
		return err
	}
	if scoresLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	env, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer env.sync()
	st, closeStore, err := env.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	filter := model.ScoreFilter{
		AssignmentID: scoresAssignment,
		StudentID:    scoresStudent,
		Since:        since,
		Last:         scoresLast,
	}
	report, err := stats.BuildReport(context.Background(), st, filter, defaultMissedTop)
	if err != nil {
		return fmt.Errorf("failed to load scores: %w", err)
	}

	w := cmd.OutOrStdout()
	if scoresJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	if err := stats.RenderSummary(w, report.Summary); err != nil {
		return err
	}
	if err := stats.RenderScoreTable(w, report.Scores); err != nil {
		return err
	}
	if len(report.Missed) == 0 {
		return nil
	}
	_, err = fmt.Fprintf(w, "Most missed: %s\n", strings.Join(report.Missed, ", "))
	return err
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show free-practice history",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&historyCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	since, err := parseSince(historySince)
	if err != nil {
		return err
	}
	env, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer env.sync()
	st, closeStore, err := env.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	cfg := model.StatsConfig{
		Since:       since,
		Last:        historyLast,
		CurveWindow: historyCurveWindow,
	}
	sessions, err := st.ListPracticeSessions(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to load practice history: %w", err)
	}
	return stats.RenderPractice(cmd.OutOrStdout(), sessions, cfg.CurveWindow)
}

func parseSince(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation(time.DateOnly, value, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid --since value: %w", err)
	}
	return &parsed, nil
}

func countWords(text string) int {
	return len(strings.FieldsFunc(text, unicode.IsSpace))
}
