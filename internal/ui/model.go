// Package ui is ccm's full-screen terminal interface. A session ends either
// with the user quitting or with a handoff.Intent that needs the terminal.
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/ccm-dev/ccm/internal/auth"
	"github.com/ccm-dev/ccm/internal/config"
	"github.com/ccm-dev/ccm/internal/handoff"
	"github.com/ccm-dev/ccm/internal/profile"
)

// Screen is one page of the UI
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenDetail
	ScreenEditor
	ScreenSettings
)

// StatusFunc reports whether a profile has a stored credential
type StatusFunc func(profileID string) auth.Status

// Options wires the UI to ccm's state
type Options struct {
	Paths    config.Paths
	Registry *profile.Registry
	Status   StatusFunc
	// Theme overrides config.json for this run
	Theme config.ThemeName
	// Start is the first screen shown
	Start  Screen
	Notice string
	Logger *zap.Logger
	Now    func() time.Time
}

// Model is the bubbletea model for one UI session
type Model struct {
	opts     Options
	logger   *zap.Logger
	cfg      *config.Config
	profiles []profile.Profile
	status   map[string]auth.Status

	theme  Theme
	styles styles
	keys   keyMap
	help   help.Model

	screen   Screen
	history  []Screen
	selected int
	detailID string
	deleteID string
	editor   editor
	settings settingsState

	notice string
	errMsg string
	width  int

	intent *handoff.Intent
}

// New loads profiles and config from disk and builds a model
func New(opts Options) (Model, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Status == nil {
		opts.Status = func(string) auth.Status { return auth.StatusNoCredential }
	}

	cfg, err := config.Load(opts.Paths)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		opts:   opts,
		logger: opts.Logger,
		cfg:    cfg,
		keys:   newKeyMap(),
		help:   help.New(),
		screen: ScreenDashboard,
		notice: opts.Notice,
	}
	if err := m.reload(); err != nil {
		return Model{}, err
	}

	name := cfg.Theme
	if opts.Theme != "" {
		name = opts.Theme
	}
	m.setTheme(name)

	switch opts.Start {
	case ScreenEditor:
		m.openEditor(nil)
	case ScreenSettings:
		m.openSettings()
	}
	return m, nil
}

// Intent is the action the user chose, or nil when they quit
func (m Model) Intent() *handoff.Intent {
	return m.intent
}

func (m Model) Init() tea.Cmd {
	if m.screen == ScreenEditor {
		return m.editor.focusCmd()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.intent = nil
			return m, tea.Quit
		}
		m.notice = ""
		if m.deleteID != "" {
			return m.updateConfirm(msg)
		}
		switch m.screen {
		case ScreenDetail:
			return m.updateDetail(msg)
		case ScreenEditor:
			return m.updateEditor(msg)
		case ScreenSettings:
			return m.updateSettings(msg)
		default:
			return m.updateDashboard(msg)
		}
	}

	if m.screen == ScreenEditor {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if m.deleteID != "" {
		return m.viewConfirm()
	}
	switch m.screen {
	case ScreenDetail:
		return m.viewDetail()
	case ScreenEditor:
		return m.viewEditor()
	case ScreenSettings:
		return m.viewSettings()
	default:
		return m.viewDashboard()
	}
}

// reload re-reads profiles and their credential state
func (m *Model) reload() error {
	profiles, err := m.opts.Registry.List()
	if err != nil {
		return err
	}
	m.profiles = profiles
	m.status = make(map[string]auth.Status, len(profiles))
	for _, p := range profiles {
		m.status[p.ID] = m.opts.Status(p.ID)
	}
	if m.selected >= len(m.profiles) {
		m.selected = max(0, len(m.profiles)-1)
	}
	return nil
}

func (m *Model) setTheme(name config.ThemeName) {
	m.theme = ThemeFor(name)
	m.styles = newStyles(m.theme)
	m.help.Styles.ShortKey = m.help.Styles.ShortKey.Foreground(m.theme.ShortcutKey)
	m.help.Styles.ShortDesc = m.help.Styles.ShortDesc.Foreground(m.theme.TextMuted)
	m.help.Styles.ShortSeparator = m.help.Styles.ShortSeparator.Foreground(m.theme.Border)
}

func (m *Model) navigate(s Screen) {
	m.history = append(m.history, m.screen)
	m.screen = s
}

func (m *Model) back() {
	if n := len(m.history); n > 0 {
		m.screen = m.history[n-1]
		m.history = m.history[:n-1]
		return
	}
	m.screen = ScreenDashboard
}

func (m *Model) find(id string) *profile.Profile {
	for i := range m.profiles {
		if m.profiles[i].ID == id {
			return &m.profiles[i]
		}
	}
	return nil
}

func (m *Model) current() *profile.Profile {
	if m.selected < 0 || m.selected >= len(m.profiles) {
		return nil
	}
	return &m.profiles[m.selected]
}

// handOff records intent and ends the session
func (m Model) handOff(intent handoff.Intent) (tea.Model, tea.Cmd) {
	m.intent = &intent
	return m, tea.Quit
}

func (m *Model) fail(action string, err error) {
	m.logger.Warn("ui action failed", zap.String("action", action), zap.Error(err))
	m.errMsg = err.Error()
}
