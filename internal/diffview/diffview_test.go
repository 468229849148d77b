package diffview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/stenodrill/internal/evaluate"
)

func plainCells(s string) []Cell {
	cells := make([]Cell, 0, len(s))
	for _, ch := range s {
		switch ch {
		case '\n':
			cells = append(cells, BreakCell())
		case ' ':
			cells = append(cells, Cell{Text: " ", Width: 1, Space: true})
		default:
			cells = append(cells, Cell{Text: string(ch), Width: 1})
		}
	}
	return cells
}

func TestWrapBreaksAtSpaces(t *testing.T) {
	assert.Equal(t, "aa\nbb cc", Wrap(plainCells("aa bb cc"), 5))
	assert.Equal(t, "aa bb cc", Wrap(plainCells("aa bb cc"), 0))
	assert.Equal(t, "aa bb cc", Wrap(plainCells("aa bb cc"), 20))
}

func TestWrapSplitsLongWords(t *testing.T) {
	assert.Equal(t, "abc\ndef\ngh", Wrap(plainCells("abcdefgh"), 3))
}

func TestWrapHonorsBreaks(t *testing.T) {
	assert.Equal(t, "ab\ncd", Wrap(plainCells("ab\ncd"), 10))
	assert.Equal(t, "ab\ncd", Join(plainCells("ab\ncd")))
}

func TestNewCellMeasuresWideRunes(t *testing.T) {
	c := NewCell("日", PlainStyles().Correct)
	assert.Equal(t, 2, c.Width)
	assert.False(t, c.Space)
}

func TestRenderSkippedAndExtra(t *testing.T) {
	r := New(PlainStyles())
	assert.Equal(t, "the quick brown fox", r.Render(evaluate.Diff("the quick brown fox", "the quick fox"), 0))
	assert.Equal(t, "a x b", r.Render(evaluate.Diff("a b", "a x b"), 0))
}

func TestRenderKeepsReferenceLineBreaks(t *testing.T) {
	diffs := evaluate.Diff("one\ntwo", "one two")
	assert.Equal(t, "one\ntwo", New(PlainStyles()).Render(diffs, 80))
	assert.Equal(t, "one\ntwo", RenderPlain(diffs))
}

func TestCellsUseCharStatusStyles(t *testing.T) {
	styles := DefaultStyles()
	cells := New(styles).Cells(evaluate.Diff("cat", "cot"))
	require.Len(t, cells, 3)
	assert.Equal(t, styles.Correct.Render("c"), cells[0].Text)
	assert.Equal(t, styles.Incorrect.Render("o"), cells[1].Text)
	assert.Equal(t, styles.Correct.Render("t"), cells[2].Text)

	cells = New(styles).Cells(evaluate.Diff("cats", "cat"))
	require.Len(t, cells, 4)
	assert.Equal(t, styles.Missing.Render("s"), cells[3].Text)
}

func TestRenderPlainAnnotations(t *testing.T) {
	assert.Equal(t, "the quick [-brown-] fox", RenderPlain(evaluate.Diff("the quick brown fox", "the quick fox")))
	assert.Equal(t, "a {+x+} b", RenderPlain(evaluate.Diff("a b", "a x b")))
	assert.Equal(t, "~cot~", RenderPlain(evaluate.Diff("cat", "cot")))
	assert.Equal(t, "one two", RenderPlain(evaluate.Diff("one two", "")))
}

func TestSummary(t *testing.T) {
	res := evaluate.Evaluate("the quick brown fox", "the quick fox", 6*time.Second)
	assert.Equal(t, "26 WPM · 68.42% accuracy · 1 mistake (1 skipped, 0 extra, 0 misspelled) · 6.0s", Summary(res))

	clean := evaluate.Evaluate("a b", "a b", time.Second)
	assert.Contains(t, Summary(clean), "0 mistakes")
}
