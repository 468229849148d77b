package tui

import (
	"unicode"

	"github.com/verte-zerg/stenodrill/internal/diffview"
)

const (
	wrongSpaceMark = "•"
	newlineMark    = "↵"
)

// buildCells styles the reference text against what has been typed so far.
// cursorIndex < 0 hides the cursor.
func buildCells(targetRunes, inputRunes []rune, cursorIndex int, styles diffview.Styles) []diffview.Cell {
	words := findWords(targetRunes)
	currentWord := wordForCursor(words, cursorIndex)

	out := make([]diffview.Cell, 0, len(targetRunes))
	for i, target := range targetRunes {
		space := unicode.IsSpace(target)
		typed := i < len(inputRunes)
		style := styles.Pending
		displayed := string(target)
		switch {
		case typed && space && !unicode.IsSpace(inputRunes[i]):
			displayed = wrongSpaceMark
			style = styles.Incorrect
		case typed && (inputRunes[i] == target || space):
			style = styles.Correct
		case typed:
			style = styles.Incorrect
		case !space && currentWord != nil && i >= currentWord.start && i < currentWord.end:
			style = styles.Current
		}
		if i == cursorIndex && !typed {
			style = style.Underline(true)
		}

		if target == '\n' {
			if displayed == wrongSpaceMark || i == cursorIndex {
				mark := newlineMark
				if displayed == wrongSpaceMark {
					mark = wrongSpaceMark
				}
				out = append(out, diffview.NewCell(mark, style))
			}
			out = append(out, diffview.BreakCell())
			continue
		}
		if space && displayed != wrongSpaceMark {
			displayed = " "
		}
		cell := diffview.NewCell(displayed, style)
		cell.Space = space
		out = append(out, cell)
	}
	return out
}

type wordRange struct {
	start int
	end   int
}

func findWords(targetRunes []rune) []wordRange {
	words := []wordRange{}
	start := -1
	for i, r := range targetRunes {
		if unicode.IsSpace(r) {
			if start != -1 {
				words = append(words, wordRange{start: start, end: i})
				start = -1
			}
			continue
		}
		if start == -1 {
			start = i
		}
	}
	if start != -1 {
		words = append(words, wordRange{start: start, end: len(targetRunes)})
	}
	return words
}

func wordForCursor(words []wordRange, cursorIndex int) *wordRange {
	if len(words) == 0 || cursorIndex < 0 {
		return nil
	}
	for i, w := range words {
		if cursorIndex < w.end {
			return &words[i]
		}
	}
	return &words[len(words)-1]
}
