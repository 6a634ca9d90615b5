package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ccm-dev/ccm/internal/config"
)

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		id := m.deleteID
		m.deleteID = ""
		if err := m.deleteProfile(id); err != nil {
			m.fail("delete", err)
			return m, nil
		}
		if m.screen == ScreenDetail {
			m.selected = 0
			m.back()
		} else if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Cancel):
		m.deleteID = ""
	}
	return m, nil
}

// deleteProfile drops the profile, its directory and any config references
func (m *Model) deleteProfile(id string) error {
	if _, err := m.opts.Registry.Delete(id); err != nil {
		return err
	}
	m.cfg.ForgetProfile(id)
	if err := config.Save(m.opts.Paths, m.cfg); err != nil {
		return err
	}
	return m.reload()
}

func (m Model) viewConfirm() string {
	name := m.deleteID
	if p := m.find(m.deleteID); p != nil {
		name = p.Name
	}
	body := m.styles.warning.Render("Delete Profile") + "\n" +
		m.styles.text.Render(fmt.Sprintf("Delete %q? This removes all saved credentials and config.", name)) + "\n\n" +
		m.styles.muted.Render("[y] confirm  [n] cancel")
	return m.styles.modal.Render(body) + "\n"
}
