package diffview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/stenodrill/internal/evaluate"
)

// Renderer turns word diffs into display text.
type Renderer struct {
	Styles Styles
}

// New returns a Renderer using styles.
func New(styles Styles) Renderer {
	return Renderer{Styles: styles}
}

// Render renders diffs with the default colors wrapped to width.
func Render(diffs []evaluate.WordDiff, width int) string {
	return New(DefaultStyles()).Render(diffs, width)
}

// Render renders diffs wrapped to width.
func (r Renderer) Render(diffs []evaluate.WordDiff, width int) string {
	return Wrap(r.Cells(diffs), width)
}

// Cells converts diffs to display cells. Adjacent word entries get a blank
// between them since typed-only whitespace is not part of a diff.
func (r Renderer) Cells(diffs []evaluate.WordDiff) []Cell {
	cells := make([]Cell, 0, len(diffs)*4)
	prevWord := false
	for _, d := range diffs {
		if d.Status == evaluate.StatusWhitespace || isBlank(d.Word) {
			cells = append(cells, whitespaceCells(d.Word)...)
			prevWord = false
			continue
		}
		if prevWord {
			cells = append(cells, SpaceCell(r.Styles.Pending))
		}
		cells = append(cells, r.wordCells(d)...)
		prevWord = true
	}
	return cells
}

func (r Renderer) wordCells(d evaluate.WordDiff) []Cell {
	if d.Status == evaluate.StatusIncorrect && len(d.CharDiffs) > 0 {
		cells := make([]Cell, 0, len(d.CharDiffs))
		for _, cd := range d.CharDiffs {
			cells = append(cells, NewCell(cd.Char, r.charStyle(cd.Status)))
		}
		return cells
	}
	style := r.wordStyle(d.Status)
	cells := make([]Cell, 0, len(d.Word))
	for _, ch := range d.Word {
		cells = append(cells, NewCell(string(ch), style))
	}
	return cells
}

func (r Renderer) wordStyle(status evaluate.WordStatus) lipgloss.Style {
	switch status {
	case evaluate.StatusCorrect:
		return r.Styles.Correct
	case evaluate.StatusIncorrect:
		return r.Styles.Incorrect
	case evaluate.StatusSkipped:
		return r.Styles.Skipped
	case evaluate.StatusExtra:
		return r.Styles.Extra
	default:
		return r.Styles.Pending
	}
}

func (r Renderer) charStyle(status evaluate.CharStatus) lipgloss.Style {
	switch status {
	case evaluate.CharCorrect:
		return r.Styles.Correct
	case evaluate.CharExtra:
		return r.Styles.Extra
	case evaluate.CharMissing:
		return r.Styles.Missing
	default:
		return r.Styles.Incorrect
	}
}

func whitespaceCells(ws string) []Cell {
	cells := make([]Cell, 0, len(ws))
	for _, ch := range ws {
		if ch == '\n' {
			cells = append(cells, BreakCell())
			continue
		}
		cells = append(cells, Cell{Text: " ", Width: 1, Space: true})
	}
	return cells
}

// RenderPlain renders diffs as annotated text: [-skipped-], {+extra+} and
// ~misspelled~. Pending words appear unmarked.
func RenderPlain(diffs []evaluate.WordDiff) string {
	var b strings.Builder
	prevWord := false
	for _, d := range diffs {
		if d.Status == evaluate.StatusWhitespace || isBlank(d.Word) {
			b.WriteString(d.Word)
			prevWord = false
			continue
		}
		if prevWord {
			b.WriteByte(' ')
		}
		switch d.Status {
		case evaluate.StatusSkipped:
			b.WriteString("[-" + d.Word + "-]")
		case evaluate.StatusExtra:
			b.WriteString("{+" + d.Word + "+}")
		case evaluate.StatusIncorrect:
			b.WriteString("~" + d.Word + "~")
		default:
			b.WriteString(d.Word)
		}
		prevWord = true
	}
	return b.String()
}

// Summary renders the one-line result header.
func Summary(res evaluate.Result) string {
	counts := res.Counts()
	return fmt.Sprintf("%d WPM · %.2f%% accuracy · %d %s (%d skipped, %d extra, %d misspelled) · %.1fs",
		res.WPM,
		res.Accuracy,
		counts.Total(),
		plural(counts.Total(), "mistake", "mistakes"),
		counts.Skipped,
		counts.Extra,
		counts.Misspelled,
		res.TimeElapsed,
	)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func isBlank(s string) bool {
	return s != "" && strings.TrimSpace(s) == ""
}
