package tui

import (
	"testing"

	"github.com/verte-zerg/stenodrill/internal/diffview"
)

func TestBuildCellsCursor(t *testing.T) {
	styles := diffview.DefaultStyles()
	cells := buildCells([]rune("ab"), []rune("a"), 1, styles)
	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(cells))
	}
	if cells[0].Text != styles.Correct.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if cells[1].Text != styles.Current.Underline(true).Render("b") {
		t.Fatalf("expected cursor style for second rune")
	}
}

func TestBuildCellsNoCursorWhenComplete(t *testing.T) {
	styles := diffview.DefaultStyles()
	cells := buildCells([]rune("a"), []rune("a"), -1, styles)
	if len(cells) != 1 {
		t.Fatalf("expected 1 cell, got %d", len(cells))
	}
	if cells[0].Text != styles.Correct.Render("a") {
		t.Fatalf("expected correct style for completed rune")
	}
}

func TestBuildCellsKeepsTargetOnMistype(t *testing.T) {
	styles := diffview.DefaultStyles()
	cells := buildCells([]rune("ab"), []rune("ax"), 2, styles)
	if cells[1].Text != styles.Incorrect.Render("b") {
		t.Fatalf("expected incorrect style showing the reference rune")
	}
}

func TestBuildCellsWordHighlighting(t *testing.T) {
	styles := diffview.DefaultStyles()
	cells := buildCells([]rune("one two"), []rune("o"), 1, styles)
	if cells[0].Text != styles.Correct.Render("o") {
		t.Fatalf("expected correct style for typed rune")
	}
	if cells[2].Text != styles.Current.Render("e") {
		t.Fatalf("expected current word style for untyped rune in current word")
	}
	if !cells[3].Space {
		t.Fatalf("expected space cell between words")
	}
	if cells[4].Text != styles.Pending.Render("t") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestBuildCellsWrongSpaceDot(t *testing.T) {
	styles := diffview.DefaultStyles()
	cells := buildCells([]rune("a b"), []rune("ax"), 2, styles)
	if cells[1].Text != styles.Incorrect.Render(wrongSpaceMark) {
		t.Fatalf("expected red dot for wrong space")
	}
}

func TestBuildCellsLineBreaks(t *testing.T) {
	styles := diffview.PlainStyles()
	cells := buildCells([]rune("ab\ncd"), nil, -1, styles)
	if got := diffview.Join(cells); got != "ab\ncd" {
		t.Fatalf("expected reference line break to survive, got %q", got)
	}
	cells = buildCells([]rune("ab\ncd"), []rune("ab"), 2, styles)
	if got := diffview.Join(cells); got != "ab"+styles.Pending.Underline(true).Render(newlineMark)+"\ncd" {
		t.Fatalf("expected newline marker at cursor, got %q", got)
	}
}

func TestFindWordsSplitsOnAnyWhitespace(t *testing.T) {
	words := findWords([]rune("ab\tc\nde"))
	if len(words) != 3 {
		t.Fatalf("expected 3 words, got %v", words)
	}
	if words[2].start != 5 || words[2].end != 7 {
		t.Fatalf("unexpected last word range: %+v", words[2])
	}
}
