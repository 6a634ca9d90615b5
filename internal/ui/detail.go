package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ccm-dev/ccm/internal/auth"
	"github.com/ccm-dev/ccm/internal/handoff"
)

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errMsg = ""
	p := m.find(m.detailID)
	if key.Matches(msg, m.keys.Back) || p == nil {
		m.back()
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Login):
		return m.handOff(handoff.LoginIntent(p.ID, p.Name))
	case key.Matches(msg, m.keys.Edit):
		m.openEditor(p)
		return m, m.editor.focusCmd()
	case key.Matches(msg, m.keys.Delete):
		m.deleteID = p.ID
	}
	return m, nil
}

func (m Model) viewDetail() string {
	p := m.find(m.detailID)
	if p == nil {
		return m.styles.errorMsg.Render("Profile not found") + "\n"
	}

	status := m.status[p.ID]
	label := "Not logged in"
	if status == auth.StatusAuthenticated {
		label = "Logged in"
	}

	var b strings.Builder
	b.WriteString(m.badge(status) + " " + profileStyle(p.Color, m.theme.Primary).Render(p.Name) + "\n\n")
	row := func(name, value string) {
		b.WriteString(m.styles.label.Render(name) + m.styles.text.Render(value) + "\n")
	}
	row("Company", p.Company)
	row("Email", p.Email)
	row("Status", label)
	if p.DefaultProjectDir != "" {
		row("Dir", p.DefaultProjectDir)
	}
	row("Used", p.LastUsed(m.opts.Now()))
	b.WriteString(m.styles.label.Render("ID") + m.styles.dim.Render(p.ID))

	frame := m.styles.frame.Padding(1, 2)
	return frame.Render(b.String()) + "\n" +
		m.footer(bindings{m.keys.Login, m.keys.Edit, m.keys.Delete, m.keys.Back})
}
