package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ccm-dev/ccm/internal/auth"
	"github.com/ccm-dev/ccm/internal/handoff"
	"github.com/ccm-dev/ccm/internal/profile"
)

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errMsg = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.profiles)-1 {
			m.selected++
		}
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case key.Matches(msg, m.keys.New):
		m.openEditor(nil)
		return m, m.editor.focusCmd()
	case key.Matches(msg, m.keys.Settings):
		m.openSettings()
		return m, nil
	}

	p := m.current()
	if p == nil {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Open):
		m.detailID = p.ID
		m.navigate(ScreenDetail)
	case key.Matches(msg, m.keys.Edit):
		m.openEditor(p)
		return m, m.editor.focusCmd()
	case key.Matches(msg, m.keys.Launch):
		return m.handOff(handoff.LaunchIntent(p.ID, p.Name, p.DefaultProjectDir))
	case key.Matches(msg, m.keys.Activate):
		return m.handOff(handoff.ActivateIntent(p.ID, p.Name))
	case key.Matches(msg, m.keys.Delete):
		m.deleteID = p.ID
	}
	return m, nil
}

func (m Model) viewDashboard() string {
	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(m.innerWidth(), lipgloss.Center, m.styles.title.Render("CCM · Profile Manager")))
	b.WriteString("\n\n")

	if len(m.profiles) == 0 {
		b.WriteString(m.styles.muted.Render("  No profiles yet. Press [n] to create one."))
		b.WriteString("\n")
	}
	for i, p := range m.profiles {
		b.WriteString(m.renderCard(p, i == m.selected))
		b.WriteString("\n")
	}

	out := m.styles.frame.Render(b.String()) + "\n"

	keys := bindings{m.keys.New}
	if len(m.profiles) > 0 {
		keys = append(keys, m.keys.Activate, m.keys.Launch, m.keys.Open, m.keys.Edit, m.keys.Delete)
	}
	keys = append(keys, m.keys.Settings, m.keys.Quit)
	return out + m.footer(keys)
}

func (m Model) renderCard(p profile.Profile, selected bool) string {
	marker := " "
	if selected {
		marker = m.styles.cursor.Render("▸")
	}
	status := m.status[p.ID]
	line := strings.Join([]string{
		marker,
		m.badge(status),
		profileStyle(p.Color, m.theme.Primary).Render(p.Name),
		m.styles.muted.Render(p.Email),
	}, " ")

	label := "Not logged in"
	if status == auth.StatusAuthenticated {
		label = "Logged in"
	}
	sub := m.styles.dim.Render(label + " · " + p.LastUsed(m.opts.Now()))
	return "  " + line + "\n      " + sub
}

func (m Model) badge(s auth.Status) string {
	if s == auth.StatusAuthenticated {
		return m.styles.success.Render("●")
	}
	return m.styles.muted.Render("○")
}

// footer renders the key hints plus any notice or error line
func (m Model) footer(keys bindings) string {
	var b strings.Builder
	b.WriteString(" " + m.help.View(keys) + "\n")
	if m.errMsg != "" {
		b.WriteString("\n " + m.styles.errorMsg.Render(m.errMsg) + "\n")
	}
	if m.notice != "" {
		b.WriteString("\n " + m.styles.notice.Render(m.notice) + "\n")
	}
	return b.String()
}

func (m Model) innerWidth() int {
	if m.width > 4 {
		return m.width - 4
	}
	return 48
}
