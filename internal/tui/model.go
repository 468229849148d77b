// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/stopwatch"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/stenodrill/internal/diffview"
	"github.com/verte-zerg/stenodrill/internal/evaluate"
	"github.com/verte-zerg/stenodrill/internal/generator"
	"github.com/verte-zerg/stenodrill/internal/model"
)

// Recorder persists finished attempts.
type Recorder interface {
	SaveScore(ctx context.Context, score model.Score) (model.Score, error)
	InsertPracticeSession(ctx context.Context, session model.PracticeSession) (int64, error)
	ListPracticeSessions(ctx context.Context, cfg model.StatsConfig) ([]model.PracticeSession, error)
}

// Options configures a typing session.
type Options struct {
	Recorder  Recorder
	Logger    *zap.Logger
	Evaluator evaluate.Evaluator
	// Styles defaults to diffview.DefaultStyles.
	Styles *diffview.Styles

	// Practice mode.
	Generator   *generator.Generator
	Words       []string
	Practice    generator.Options
	Focus       map[string]struct{}
	FocusFactor float64

	// Assignment mode, used when Assignment is set.
	Assignment *model.Assignment
	Student    string
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	opts   Options
	styles diffview.Styles
	log    *zap.Logger
	now    func() time.Time

	width  int
	height int

	targetRunes []rune
	inputRunes  []rune

	started   bool
	startedAt time.Time
	stopwatch stopwatch.Model

	done     bool
	result   evaluate.Result
	diffs    []evaluate.WordDiff
	viewport viewport.Model

	lastWPM  int
	lastAcc  float64
	hasLast  bool
	allWPM   float64
	allAcc   float64
	sessions int

	status string
}

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))

// NewModel constructs a typing TUI model.
func NewModel(opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Generator == nil {
		opts.Generator = generator.New()
	}
	styles := diffview.DefaultStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}
	m := &Model{
		opts:      opts,
		styles:    styles,
		log:       opts.Logger,
		now:       time.Now,
		stopwatch: stopwatch.NewWithInterval(100 * time.Millisecond),
		viewport:  viewport.New(0, 0),
	}
	m.resetSession()
	if !m.assignmentMode() {
		m.loadFooterStats()
	}
	return m
}

// Result returns the evaluation of the last finished attempt.
func (m *Model) Result() (evaluate.Result, bool) {
	return m.result, m.done
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()
		return m, nil
	case tea.KeyMsg:
		if m.done {
			return m.updateDone(msg)
		}
		return m, m.handleKey(msg)
	}
	var cmd tea.Cmd
	m.stopwatch, cmd = m.stopwatch.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return tea.Quit
	case tea.KeyBackspace, tea.KeyDelete:
		m.handleBackspace()
		return nil
	case tea.KeySpace:
		return m.handleRunes([]rune{' '})
	case tea.KeyTab:
		return m.handleRunes([]rune{'\t'})
	case tea.KeyEnter:
		if pos := len(m.inputRunes); pos < len(m.targetRunes) && m.targetRunes[pos] == '\n' {
			return m.handleRunes([]rune{'\n'})
		}
		if !m.started {
			return nil
		}
		return m.finishSession()
	case tea.KeyRunes:
		return m.handleRunes(msg.Runes)
	default:
		return nil
	}
}

func (m *Model) updateDone(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		if m.assignmentMode() {
			return m, tea.Quit
		}
		m.resetSession()
		return m, m.stopwatch.Reset()
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if len(m.targetRunes) == 0 {
		return ""
	}
	var content string
	if m.done {
		content = m.viewport.View()
	} else {
		cursorIndex := -1
		if len(m.inputRunes) < len(m.targetRunes) {
			cursorIndex = len(m.inputRunes)
		}
		cells := buildCells(m.targetRunes, m.inputRunes, cursorIndex, m.styles)
		if m.width == 0 || m.height == 0 {
			return diffview.Join(cells)
		}
		width := m.contentWidth()
		content = lipgloss.NewStyle().Width(width).Render(diffview.Wrap(cells, width))
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) contentWidth() int {
	return max(1, int(float64(m.width)*0.70))
}

func (m *Model) resizeViewport() {
	m.viewport.Width = m.contentWidth()
	m.viewport.Height = max(1, m.height-2)
	if m.done {
		m.viewport.SetContent(m.resultContent())
	}
}

func (m *Model) assignmentMode() bool {
	return m.opts.Assignment != nil
}

func (m *Model) handleBackspace() {
	if len(m.inputRunes) == 0 {
		return
	}
	m.inputRunes = m.inputRunes[:len(m.inputRunes)-1]
}

func (m *Model) handleRunes(runes []rune) tea.Cmd {
	var cmd tea.Cmd
	for _, r := range runes {
		if len(m.inputRunes) >= len(m.targetRunes) {
			break
		}
		if !m.started {
			m.started = true
			m.startedAt = m.now()
			cmd = m.stopwatch.Start()
		}
		m.inputRunes = append(m.inputRunes, r)
		if len(m.inputRunes) == len(m.targetRunes) {
			return tea.Batch(cmd, m.finishSession())
		}
	}
	return cmd
}

// liveResult scores the input against the part of the reference reached so far.
func (m *Model) liveResult() evaluate.Result {
	n := min(len(m.inputRunes), len(m.targetRunes))
	elapsed := time.Duration(0)
	if m.started {
		elapsed = m.now().Sub(m.startedAt)
	}
	return m.opts.Evaluator.Evaluate(string(m.targetRunes[:n]), string(m.inputRunes), elapsed)
}

func (m *Model) renderFooter() string {
	if len(m.targetRunes) == 0 {
		return ""
	}
	var segments []string
	if m.assignmentMode() {
		segments = append(segments, fmt.Sprintf("%s · %s", m.opts.Assignment.Title, m.opts.Student))
	}
	if m.done {
		segments = append(segments, diffview.Summary(m.result))
	} else {
		progress := int(float64(len(m.inputRunes)) / float64(len(m.targetRunes)) * 100)
		segments = append(segments, fmt.Sprintf("Progress %d%%", progress))
		if m.started {
			live := m.liveResult()
			segments = append(segments, fmt.Sprintf("%d WPM · %.1f%%", live.WPM, live.Accuracy), m.stopwatch.View())
		}
	}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %d WPM · %.1f%%", m.lastWPM, m.lastAcc))
		segments = append(segments, fmt.Sprintf("Avg %.1f WPM · %.1f%%", m.allWPM, m.allAcc))
	}
	if m.status != "" {
		segments = append(segments, m.status)
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) loadFooterStats() {
	if m.opts.Recorder == nil {
		return
	}
	sessions, err := m.opts.Recorder.ListPracticeSessions(context.Background(), model.StatsConfig{})
	if err != nil {
		m.log.Error("failed to load practice history", zap.Error(err))
		m.status = "history unavailable"
		return
	}
	for _, s := range sessions {
		m.recordFooter(s)
	}
}

func (m *Model) recordFooter(s model.PracticeSession) {
	n := float64(m.sessions)
	m.allWPM = (m.allWPM*n + float64(s.WPM)) / (n + 1)
	m.allAcc = (m.allAcc*n + s.Accuracy) / (n + 1)
	m.sessions++
	m.lastWPM = s.WPM
	m.lastAcc = s.Accuracy
	m.hasLast = true
}

func (m *Model) resetSession() {
	m.inputRunes = nil
	m.started = false
	m.startedAt = time.Time{}
	m.done = false
	m.result = evaluate.Result{}
	m.diffs = nil
	if m.assignmentMode() {
		m.targetRunes = []rune(m.opts.Assignment.Text)
		return
	}
	text := m.opts.Generator.Text(m.opts.Words, m.opts.Practice, m.opts.Focus, m.opts.FocusFactor)
	m.targetRunes = []rune(text)
}

func (m *Model) finishSession() tea.Cmd {
	if !m.started || m.done {
		return nil
	}
	endedAt := m.now()
	elapsed := endedAt.Sub(m.startedAt)
	reference := string(m.targetRunes)
	input := string(m.inputRunes)
	m.result = m.opts.Evaluator.Evaluate(reference, input, elapsed)
	m.diffs = m.opts.Evaluator.Diff(reference, input)
	m.done = true
	m.status = ""

	if m.assignmentMode() {
		m.saveScore(endedAt)
	} else {
		m.savePractice(endedAt, elapsed)
	}
	m.resizeViewport()
	m.viewport.SetContent(m.resultContent())
	m.viewport.GotoTop()
	return m.stopwatch.Stop()
}

func (m *Model) saveScore(endedAt time.Time) {
	if m.opts.Recorder == nil {
		return
	}
	score := model.NewScore(m.opts.Assignment.ID, m.opts.Student, m.result, endedAt)
	if _, err := m.opts.Recorder.SaveScore(context.Background(), score); err != nil {
		m.log.Error("failed to save score",
			zap.Error(err),
			zap.String("assignment", m.opts.Assignment.ID),
			zap.String("student", m.opts.Student))
		m.status = fmt.Sprintf("score not saved: %v", err)
		return
	}
	m.log.Info("score saved",
		zap.String("assignment", m.opts.Assignment.ID),
		zap.String("student", m.opts.Student),
		zap.Int("wpm", m.result.WPM),
		zap.Float64("accuracy", m.result.Accuracy))
}

func (m *Model) savePractice(endedAt time.Time, elapsed time.Duration) {
	session := model.PracticeSession{
		StartedAt:  m.startedAt,
		EndedAt:    endedAt,
		Words:      countWords(m.targetRunes),
		WPM:        m.result.WPM,
		Accuracy:   m.result.Accuracy,
		Mistakes:   len(m.result.Mistakes),
		DurationMs: elapsed.Milliseconds(),
	}
	if m.opts.Recorder != nil {
		if _, err := m.opts.Recorder.InsertPracticeSession(context.Background(), session); err != nil {
			m.log.Error("failed to save practice session", zap.Error(err))
			m.status = fmt.Sprintf("session not saved: %v", err)
		}
	}
	m.recordFooter(session)
}

func (m *Model) resultContent() string {
	hint := "Enter: next text · Esc: quit · ↑/↓: scroll"
	if m.assignmentMode() {
		hint = "Enter/Esc: quit · ↑/↓: scroll"
	}
	renderer := diffview.New(m.styles)
	return strings.Join([]string{
		m.styles.Header.Render(diffview.Summary(m.result)),
		"",
		renderer.Render(m.diffs, m.viewport.Width),
		"",
		footerStyle.Render(hint),
	}, "\n")
}

func countWords(runes []rune) int {
	return len(strings.FieldsFunc(string(runes), unicode.IsSpace))
}
