package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/stenodrill/internal/diffview"
	"github.com/verte-zerg/stenodrill/internal/evaluate"
	"github.com/verte-zerg/stenodrill/internal/wordlist"
)

var (
	evalText      string
	evalTextFile  string
	evalInput     string
	evalInputFile string
	evalElapsed   time.Duration
	evalJSON      bool
	evalDiff      bool
)

type evalOutput struct {
	Result evaluate.Result     `json:"result"`
	Diff   []evaluate.WordDiff `json:"diff,omitempty"`
}

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Score typed input against a reference text",
		Args:  cobra.NoArgs,
		RunE:  runEvalCmd,
	}
	cmd.Flags().StringVar(&evalText, "text", "", "reference text")
	cmd.Flags().StringVar(&evalTextFile, "text-file", "", "reference text file")
	cmd.Flags().StringVar(&evalInput, "input", "", "typed input")
	cmd.Flags().StringVar(&evalInputFile, "input-file", "", "typed input file (- for stdin)")
	cmd.Flags().DurationVar(&evalElapsed, "elapsed", 0, "time taken, e.g. 45s")
	cmd.Flags().BoolVar(&evalJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&evalDiff, "diff", false, "include a word diff")
	cmd.MarkFlagsMutuallyExclusive("text", "text-file")
	cmd.MarkFlagsMutuallyExclusive("input", "input-file")
	cmd.MarkFlagsOneRequired("text", "text-file")
	return cmd
}

func runEvalCmd(cmd *cobra.Command, _ []string) error {
	env, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer env.sync()

	if evalElapsed < 0 {
		return fmt.Errorf("--elapsed must be >= 0")
	}
	reference := evalText
	if evalTextFile != "" {
		if reference, err = wordlist.LoadText(evalTextFile); err != nil {
			return fmt.Errorf("failed to read reference: %w", err)
		}
	}
	input, err := readInput(cmd.InOrStdin())
	if err != nil {
		return err
	}

	res := env.evaluator.Evaluate(reference, input, evalElapsed)
	var diffs []evaluate.WordDiff
	if evalDiff {
		diffs = env.evaluator.Diff(reference, input)
	}
	return writeEval(cmd.OutOrStdout(), res, diffs)
}

func readInput(stdin io.Reader) (string, error) {
	switch evalInputFile {
	case "":
		return evalInput, nil
	case "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(evalInputFile)
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return string(data), nil
	}
}

func writeEval(w io.Writer, res evaluate.Result, diffs []evaluate.WordDiff) error {
	if evalJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(evalOutput{Result: res, Diff: diffs})
	}

	lines := []string{diffview.Summary(res)}
	for _, m := range res.Mistakes {
		lines = append(lines, "  "+describeMistake(m))
	}
	if diffs != nil {
		color, width := stdoutTerminal()
		lines = append(lines, "")
		if color {
			lines = append(lines, diffview.Render(diffs, width))
		} else {
			lines = append(lines, diffview.RenderPlain(diffs))
		}
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

func describeMistake(m evaluate.Mistake) string {
	switch m.Kind() {
	case evaluate.MistakeSkipped:
		return fmt.Sprintf("word %d: skipped %q", m.Position+1, m.Expected)
	case evaluate.MistakeExtra:
		return fmt.Sprintf("word %d: extra %q", m.Position+1, m.Actual)
	default:
		return fmt.Sprintf("word %d: typed %q, expected %q", m.Position+1, m.Actual, m.Expected)
	}
}
