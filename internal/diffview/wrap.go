package diffview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Cell is one pre-styled display unit, usually a single character.
type Cell struct {
	Text  string
	Width int
	// Space marks a wrap opportunity; the cell is dropped when a line breaks on it.
	Space bool
	// Break forces a line break.
	Break bool
}

// NewCell styles s and measures its display width.
func NewCell(s string, style lipgloss.Style) Cell {
	return Cell{Text: style.Render(s), Width: runewidth.StringWidth(s)}
}

// SpaceCell returns a wrappable blank rendered with style.
func SpaceCell(style lipgloss.Style) Cell {
	return Cell{Text: style.Render(" "), Width: 1, Space: true}
}

// BreakCell returns a forced line break.
func BreakCell() Cell {
	return Cell{Break: true}
}

// Join renders cells without wrapping.
func Join(cells []Cell) string {
	var b strings.Builder
	for _, c := range cells {
		if c.Break {
			b.WriteByte('\n')
			continue
		}
		b.WriteString(c.Text)
	}
	return b.String()
}

// Wrap renders cells, breaking lines at the last space that keeps each line
// within width. A word longer than width is split. width <= 0 disables wrapping.
func Wrap(cells []Cell, width int) string {
	if width <= 0 {
		return Join(cells)
	}
	var out strings.Builder
	line := make([]Cell, 0, len(cells))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(cells); {
		item := cells[i]
		if item.Break {
			out.WriteString(Join(line))
			out.WriteByte('\n')
			line = line[:0]
			lineWidth = 0
			lastSpaceIdx = -1
			i++
			continue
		}
		if lineWidth+item.Width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(Join(line[:lastSpaceIdx]))
				out.WriteByte('\n')
				line = append([]Cell{}, line[lastSpaceIdx+1:]...)
				lineWidth = widthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(Join(line))
				out.WriteByte('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.Width
		if item.Space {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(Join(line))
	return out.String()
}

func widthOf(line []Cell) int {
	total := 0
	for _, item := range line {
		total += item.Width
	}
	return total
}

func lastSpaceIndex(line []Cell) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].Space {
			return i
		}
	}
	return -1
}
