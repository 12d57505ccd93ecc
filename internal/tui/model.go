// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/lingotype/internal/locale"
	"github.com/verte-zerg/lingotype/internal/logger"
	"github.com/verte-zerg/lingotype/internal/model"
	"github.com/verte-zerg/lingotype/internal/session"
	"github.com/verte-zerg/lingotype/internal/stats"
	"github.com/verte-zerg/lingotype/internal/textfile"
)

// Recorder persists completed sessions.
type Recorder interface {
	InsertSession(ctx context.Context, stats model.SessionStats, chars []model.CharStats) (int64, error)
}

// WeakSource reports per-character totals over the most recent sessions.
type WeakSource interface {
	GetWeakChars(ctx context.Context, window int, lang string) ([]model.CharAggregate, error)
}

const (
	weakWindow = 20
	weakTop    = 5
)

// Options configures the typing UI.
type Options struct {
	Language locale.Code
	// Text replaces the default practice text when non-empty.
	Text     string
	Recorder Recorder
	// Weak feeds the weakest-characters hint; nil hides it.
	Weak     WeakSource
	Logger   *logger.Logger
	Clock    session.Clock
}

// Model implements the Bubble Tea typing UI. It is the display surface of a
// session.Controller: the controller pushes frames and completions into it,
// and View draws only what was pushed.
type Model struct {
	ctrl     *session.Controller
	sched    *tickScheduler
	recorder Recorder
	weak     WeakSource
	log      *logger.Logger

	frame session.Frame
	modal *session.Completion

	prompt    textinput.Model
	prompting bool
	status    string
	weakHint  string

	width  int
	height int
}

var (
	loadFile      = textfile.Load
	readClipboard = textfile.Clipboard
)

var (
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	referenceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C3A3B"))
	inputStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")).Italic(true)
	lockedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	labelStyle       = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F0F0F0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	modalStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 4).
			Align(lipgloss.Center)
)

// NewModel constructs a typing TUI model.
func NewModel(opts Options) *Model {
	m := &Model{
		sched:    &tickScheduler{},
		recorder: opts.Recorder,
		weak:     opts.Weak,
		log:      opts.Logger,
	}
	if m.log == nil {
		m.log = logger.Nop()
	}
	m.prompt = textinput.New()
	m.prompt.CharLimit = 4096

	m.ctrl = session.New(session.Options{
		Language:  opts.Language,
		Renderer:  m,
		Scheduler: m.sched,
		Clock:     opts.Clock,
		Logger:    m.log,
	})
	if opts.Text != "" {
		if err := m.ctrl.LoadText(opts.Text); err != nil {
			m.setLoadError(err)
		}
	}
	m.refreshWeak()
	return m
}

// Render implements session.Renderer.
func (m *Model) Render(f session.Frame) {
	m.frame = f
}

// Notify implements session.Renderer. The completion stays on screen until
// acknowledged, blocking all other input.
func (m *Model) Notify(c session.Completion) {
	m.modal = &c
	if m.recorder == nil {
		return
	}
	if _, err := m.recorder.InsertSession(context.Background(), c.Stats, c.Chars); err != nil {
		m.log.Error().Err(err).Str("attempt", c.Stats.AttemptID).Msg("failed to save session")
		return
	}
	m.refreshWeak()
}

// refreshWeak reloads the weakest characters of the active language.
func (m *Model) refreshWeak() {
	if m.weak == nil {
		return
	}
	lang := string(m.frame.Language)
	aggs, err := m.weak.GetWeakChars(context.Background(), weakWindow, lang)
	if err != nil {
		m.log.Warn().Err(err).Str("lang", lang).Msg("failed to load weak chars")
		m.weakHint = ""
		return
	}
	m.weakHint = stats.WeakLine(stats.WeakestChars(aggs, weakTop))
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.sched.drain()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		m.ctrl.Tick(msg.id)
		return m, m.sched.drain()
	case tea.KeyMsg:
		if key.Matches(msg, keys.quit) {
			return m, tea.Quit
		}
		if m.modal != nil {
			if key.Matches(msg, keys.dismiss) {
				m.modal = nil
			}
			return m, nil
		}
		if m.prompting {
			return m.updatePrompt(msg)
		}
		switch {
		case key.Matches(msg, keys.pause):
			m.ctrl.TogglePause()
		case key.Matches(msg, keys.language):
			m.status = ""
			m.ctrl.ToggleLanguage()
			m.refreshWeak()
		case key.Matches(msg, keys.open):
			return m, m.startPrompt()
		case key.Matches(msg, keys.paste):
			m.loadClipboard()
		default:
			m.handleTyping(msg)
		}
		return m, m.sched.drain()
	default:
		if m.prompting {
			var cmd tea.Cmd
			m.prompt, cmd = m.prompt.Update(msg)
			return m, cmd
		}
		return m, nil
	}
}

func (m *Model) handleTyping(msg tea.KeyMsg) {
	if m.frame.InputLocked {
		return
	}
	typed := []rune(m.frame.Typed)
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		if len(typed) == 0 {
			return
		}
		typed = typed[:len(typed)-1]
	case tea.KeySpace:
		typed = append(typed, ' ')
	case tea.KeyEnter:
		typed = append(typed, '\n')
	case tea.KeyTab:
		typed = append(typed, '\t')
	case tea.KeyRunes:
		if msg.Alt {
			return
		}
		typed = append(typed, msg.Runes...)
	default:
		return
	}
	m.ctrl.Keystroke(string(typed))
}

func (m *Model) startPrompt() tea.Cmd {
	m.prompting = true
	m.prompt.Prompt = locale.Table(m.frame.Language).LoadPrompt
	m.prompt.SetValue("")
	return m.prompt.Focus()
}

func (m *Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.cancel):
		m.prompting = false
		m.prompt.Blur()
		return m, nil
	case key.Matches(msg, keys.submit):
		path := m.prompt.Value()
		m.prompting = false
		m.prompt.Blur()
		m.loadFromFile(path)
		return m, m.sched.drain()
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) loadFromFile(path string) {
	text, err := loadFile(path)
	if err != nil {
		m.log.Warn().Err(err).Str("path", path).Msg("failed to load practice text")
		m.setLoadError(err)
		return
	}
	m.applyText(text)
}

func (m *Model) loadClipboard() {
	text, err := readClipboard()
	if err != nil {
		m.log.Warn().Err(err).Msg("failed to load practice text from clipboard")
		m.setLoadError(err)
		return
	}
	m.applyText(text)
}

func (m *Model) applyText(text string) {
	if err := m.ctrl.LoadText(text); err != nil {
		m.setLoadError(err)
		return
	}
	m.status = ""
}

func (m *Model) setLoadError(err error) {
	m.status = locale.Table(m.frame.Language).LoadFailed + ": " + err.Error()
}

// View implements tea.Model.
func (m *Model) View() string {
	contentWidth := 0
	if m.width > 0 {
		contentWidth = int(float64(m.width) * 0.70)
		if contentWidth < 1 {
			contentWidth = 1
		}
	}
	content := m.renderContent(contentWidth)
	if m.modal != nil {
		content = m.renderModal()
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	footer := footerStyle.Render(locale.Table(m.frame.Language).Help)
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderContent(width int) string {
	f := m.frame
	sections := []string{
		titleStyle.Render(f.Title),
		wrapStyledRunes(plainRunes(f.Reference, referenceStyle), width),
	}
	if len(f.Diff) > 0 {
		cursor := -1
		if n := len([]rune(f.Typed)); n < len(f.Diff) {
			cursor = n
		}
		sections = append(sections, wrapStyledRunes(buildStyledRunes(f.Diff, cursor), width))
	}
	sections = append(sections, m.renderInput(width), m.renderStatus())
	if m.weakHint != "" {
		sections = append(sections, footerStyle.Render(locale.Table(f.Language).WeakHint+m.weakHint))
	}
	if m.prompting {
		sections = append(sections, m.prompt.View())
	}
	if m.status != "" {
		sections = append(sections, errorStyle.Render(m.status))
	}
	block := strings.Join(sections, "\n\n")
	if width > 0 {
		return lipgloss.NewStyle().Width(width).Render(block)
	}
	return block
}

func (m *Model) renderInput(width int) string {
	f := m.frame
	if f.Typed == "" {
		return "> " + placeholderStyle.Render(f.Placeholder)
	}
	style := inputStyle
	if f.InputLocked {
		style = lockedStyle
	}
	return "> " + wrapStyledRunes(plainRunes(f.Typed, style), width-2)
}

func (m *Model) renderStatus() string {
	f := m.frame
	stats := footerStyle.Render(f.Timer + "   " + f.Accuracy)
	return lipgloss.JoinHorizontal(lipgloss.Center,
		stats,
		"  ",
		labelStyle.Render(f.PauseLabel),
		" ",
		labelStyle.Render(f.LanguageLabel),
	)
}

func (m *Model) renderModal() string {
	tbl := locale.Table(m.frame.Language)
	return modalStyle.Render(titleStyle.Render(m.modal.Message) + "\n\n" + footerStyle.Render(tbl.Dismiss))
}
