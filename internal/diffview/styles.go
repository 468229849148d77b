// Package diffview renders word diffs for terminals and plain text.
package diffview

import "github.com/charmbracelet/lipgloss"

// Styles maps diff statuses to lipgloss styles.
type Styles struct {
	Correct   lipgloss.Style
	Incorrect lipgloss.Style
	Skipped   lipgloss.Style
	Extra     lipgloss.Style
	Missing   lipgloss.Style
	Pending   lipgloss.Style
	Current   lipgloss.Style
	Header    lipgloss.Style
}

// DefaultStyles returns the colored terminal palette.
func DefaultStyles() Styles {
	pending := lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	incorrect := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	return Styles{
		Correct:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")),
		Incorrect: incorrect,
		Skipped:   incorrect.Strikethrough(true),
		Extra:     lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Underline(true),
		Missing:   pending.Underline(true),
		Pending:   pending,
		Current:   lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")),
		Header:    lipgloss.NewStyle().Bold(true),
	}
}

// PlainStyles returns styles that leave text untouched.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Correct:   plain,
		Incorrect: plain,
		Skipped:   plain,
		Extra:     plain,
		Missing:   plain,
		Pending:   plain,
		Current:   plain,
		Header:    plain,
	}
}
