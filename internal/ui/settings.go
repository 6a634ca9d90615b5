package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ccm-dev/ccm/internal/config"
)

type settingsSection int

const (
	sectionTheme settingsSection = iota
	sectionDefault
)

type settingsState struct {
	section    settingsSection
	themeIdx   int
	defaultIdx int
}

func (m *Model) openSettings() {
	m.settings = settingsState{themeIdx: 0, defaultIdx: -1}
	for i, t := range config.ThemeNames {
		if t == m.theme.Name {
			m.settings.themeIdx = i
		}
	}
	for i, p := range m.profiles {
		if p.ID == m.cfg.DefaultProfileID {
			m.settings.defaultIdx = i
		}
	}
	m.navigate(ScreenSettings)
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errMsg = ""
	s := &m.settings
	step := 0
	switch {
	case key.Matches(msg, m.keys.Back):
		m.back()
		return m, nil
	case key.Matches(msg, m.keys.Section):
		if s.section == sectionTheme {
			s.section = sectionDefault
		} else {
			s.section = sectionTheme
		}
		return m, nil
	case key.Matches(msg, m.keys.Left):
		step = -1
	case key.Matches(msg, m.keys.Right):
		step = 1
	default:
		return m, nil
	}

	switch s.section {
	case sectionTheme:
		n := len(config.ThemeNames)
		s.themeIdx = ((s.themeIdx+step)%n + n) % n
		name := config.ThemeNames[s.themeIdx]
		m.setTheme(name)
		m.cfg.Theme = name
	case sectionDefault:
		n := len(m.profiles)
		if n == 0 {
			return m, nil
		}
		if s.defaultIdx < 0 {
			// nothing chosen yet; left selects the last profile
			s.defaultIdx = 0
			if step < 0 {
				s.defaultIdx = n - 1
			}
		} else {
			s.defaultIdx = ((s.defaultIdx+step)%n + n) % n
		}
		m.cfg.DefaultProfileID = m.profiles[s.defaultIdx].ID
	}

	if err := config.Save(m.opts.Paths, m.cfg); err != nil {
		m.fail("save settings", err)
	}
	return m, nil
}

func (m Model) viewSettings() string {
	s := m.settings
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Settings") + "\n")
	b.WriteString(m.styles.dim.Render("Use ←/→ to change, Tab to switch section, Esc to go back") + "\n\n")

	heading := func(sec settingsSection, text string) string {
		if s.section == sec {
			return m.styles.selected.Render("▸ " + text)
		}
		return m.styles.muted.Render("  " + text)
	}
	choice := func(label string, chosen bool) string {
		if chosen {
			return m.styles.selected.Render("[" + label + "]")
		}
		return m.styles.muted.Render(label)
	}

	themes := make([]string, len(config.ThemeNames))
	for i, t := range config.ThemeNames {
		themes[i] = choice(string(t), i == s.themeIdx)
	}
	b.WriteString(heading(sectionTheme, "Theme:") + " " + strings.Join(themes, " ") + "\n\n")

	b.WriteString(heading(sectionDefault, "Default Profile:") + " ")
	if len(m.profiles) == 0 {
		b.WriteString(m.styles.muted.Render("No profiles"))
	} else {
		names := make([]string, len(m.profiles))
		for i, p := range m.profiles {
			names[i] = choice(p.Name, i == s.defaultIdx)
		}
		b.WriteString(strings.Join(names, " "))
	}
	b.WriteString("\n")

	return m.styles.frame.Padding(1, 2).Render(b.String()) + "\n" +
		m.footer(bindings{m.keys.Left, m.keys.Right, m.keys.Section, m.keys.Back})
}
