package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/stenodrill/internal/model"
	"github.com/verte-zerg/stenodrill/internal/stats"
	"github.com/verte-zerg/stenodrill/internal/wordlist"
)

var (
	assignmentTitle string
	assignmentText  string
	assignmentFile  string
)

func newAssignmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assignment",
		Short: "Manage assignment texts",
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Store a new assignment",
		Args:  cobra.NoArgs,
		RunE:  runAssignmentAdd,
	}
	add.Flags().StringVar(&assignmentTitle, "title", "", "assignment title")
	add.Flags().StringVar(&assignmentText, "text", "", "reference text")
	add.Flags().StringVar(&assignmentFile, "file", "", "reference text file")
	add.MarkFlagsMutuallyExclusive("text", "file")
	add.MarkFlagsOneRequired("text", "file")
	_ = add.MarkFlagRequired("title")

	cmd.AddCommand(
		add,
		&cobra.Command{
			Use:   "list",
			Short: "List assignments",
			Args:  cobra.NoArgs,
			RunE:  runAssignmentList,
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show an assignment and its scores",
			Args:  cobra.ExactArgs(1),
			RunE:  runAssignmentShow,
		},
		&cobra.Command{
			Use:     "rm <id>",
			Aliases: []string{"delete"},
			Short:   "Delete an assignment and its scores",
			Args:    cobra.ExactArgs(1),
			RunE:    runAssignmentRemove,
		},
	)
	return cmd
}

func runAssignmentAdd(cmd *cobra.Command, _ []string) error {
	env, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer env.sync()

	text := assignmentText
	if assignmentFile != "" {
		if text, err = wordlist.LoadText(assignmentFile); err != nil {
			return fmt.Errorf("failed to read assignment text: %w", err)
		}
	}
	st, closeStore, err := env.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	a, err := st.CreateAssignment(context.Background(), assignmentTitle, text)
	if err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), a.ID)
	return err
}

func runAssignmentList(cmd *cobra.Command, _ []string) error {
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

	assignments, err := st.ListAssignments(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list assignments: %w", err)
	}
	w := cmd.OutOrStdout()
	if len(assignments) == 0 {
		_, err := fmt.Fprintln(w, "No assignments found.")
		return err
	}
	for _, a := range assignments {
		if _, err := fmt.Fprintf(w, "%s  %s  %s  (%d words)\n",
			a.ID, a.CreatedAt.Local().Format(time.DateOnly), a.Title, countWords(a.Text)); err != nil {
			return err
		}
	}
	return nil
}

func runAssignmentShow(cmd *cobra.Command, args []string) error {
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

	ctx := context.Background()
	a, err := st.GetAssignment(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to load assignment %q: %w", args[0], err)
	}
	w := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(w, "%s\n\n%s\n\n", a.Title, a.Text); err != nil {
		return err
	}
	report, err := stats.BuildReport(ctx, st, model.ScoreFilter{AssignmentID: a.ID}, 0)
	if err != nil {
		return fmt.Errorf("failed to load scores: %w", err)
	}
	if err := stats.RenderSummary(w, report.Summary); err != nil {
		return err
	}
	return stats.RenderScoreTable(w, report.Scores)
}

func runAssignmentRemove(cmd *cobra.Command, args []string) error {
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

	if err := st.DeleteAssignment(context.Background(), args[0]); err != nil {
		return fmt.Errorf("failed to delete assignment %q: %w", args[0], err)
	}
	return nil
}
