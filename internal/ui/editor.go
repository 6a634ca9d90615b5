package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ccm-dev/ccm/internal/profile"
)

type field int

const (
	fieldName field = iota
	fieldCompany
	fieldEmail
	fieldColor
	fieldDir
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldName:    "Profile Name",
	fieldCompany: "Company",
	fieldEmail:   "Email",
	fieldColor:   "Color",
	fieldDir:     "Project Dir (optional)",
}

// editor is the sequential create/edit form
type editor struct {
	editID   string
	inputs   [fieldCount]textinput.Model
	colorIdx int
	focus    field
	err      string
}

// newEditor prepares the form; existing is nil for a new profile
func newEditor(existing *profile.Profile, count int) editor {
	e := editor{}
	for f := field(0); f < fieldCount; f++ {
		if f == fieldColor {
			continue
		}
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 256
		in.Width = 40
		e.inputs[f] = in
	}

	color := profile.NextColor(count)
	if existing != nil {
		e.editID = existing.ID
		e.inputs[fieldName].SetValue(existing.Name)
		e.inputs[fieldCompany].SetValue(existing.Company)
		e.inputs[fieldEmail].SetValue(existing.Email)
		e.inputs[fieldDir].SetValue(existing.DefaultProjectDir)
		if existing.Color != "" {
			color = existing.Color
		}
	}
	e.colorIdx = paletteIndex(color)
	e.focus = fieldName
	e.inputs[fieldName].Focus()
	return e
}

func paletteIndex(color string) int {
	for i, c := range profile.Colors {
		if strings.EqualFold(c, color) {
			return i
		}
	}
	return 0
}

func (e editor) focusCmd() tea.Cmd {
	if e.focus == fieldColor {
		return nil
	}
	return textinput.Blink
}

func (e *editor) advance() {
	if e.focus != fieldColor {
		e.inputs[e.focus].Blur()
	}
	e.focus++
	if e.focus < fieldCount && e.focus != fieldColor {
		e.inputs[e.focus].Focus()
	}
}

func (e *editor) cycleColor(step int) {
	n := len(profile.Colors)
	e.colorIdx = ((e.colorIdx+step)%n + n) % n
}

func (e editor) input() profile.Input {
	return profile.Input{
		Name:              strings.TrimSpace(e.inputs[fieldName].Value()),
		Company:           strings.TrimSpace(e.inputs[fieldCompany].Value()),
		Email:             strings.TrimSpace(e.inputs[fieldEmail].Value()),
		Color:             profile.Colors[e.colorIdx],
		DefaultProjectDir: strings.TrimSpace(e.inputs[fieldDir].Value()),
	}
}

// update forwards msg to the focused text field
func (e editor) update(msg tea.Msg) (editor, tea.Cmd) {
	if e.focus >= fieldCount || e.focus == fieldColor {
		return e, nil
	}
	var cmd tea.Cmd
	e.inputs[e.focus], cmd = e.inputs[e.focus].Update(msg)
	return e, cmd
}

func (m *Model) openEditor(existing *profile.Profile) {
	m.editor = newEditor(existing, len(m.profiles))
	m.navigate(ScreenEditor)
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := &m.editor
	switch {
	case key.Matches(msg, m.keys.Back):
		m.back()
		return m, nil
	case e.focus == fieldColor && key.Matches(msg, m.keys.Left):
		e.cycleColor(-1)
		return m, nil
	case e.focus == fieldColor && key.Matches(msg, m.keys.Right):
		e.cycleColor(1)
		return m, nil
	case key.Matches(msg, m.keys.Next):
		if e.focus < fieldCount-1 {
			e.advance()
			return m, e.focusCmd()
		}
		return m.submitEditor()
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.update(msg)
	return m, cmd
}

func (m Model) submitEditor() (tea.Model, tea.Cmd) {
	in := m.editor.input()
	if err := profile.Validate(in); err != nil {
		m.editor.err = "Name and email are required."
		return m, nil
	}

	if id := m.editor.editID; id != "" {
		patch := profile.Patch{
			Name:              &in.Name,
			Company:           &in.Company,
			Email:             &in.Email,
			Color:             &in.Color,
			DefaultProjectDir: &in.DefaultProjectDir,
		}
		if _, err := m.opts.Registry.Update(id, patch); err != nil {
			m.editor.err = err.Error()
			return m, nil
		}
	} else if _, err := m.opts.Registry.Create(in); err != nil {
		m.editor.err = err.Error()
		return m, nil
	}

	if err := m.reload(); err != nil {
		m.fail("reload", err)
	}
	if m.editor.editID == "" {
		m.selected = len(m.profiles) - 1
	}
	m.back()
	return m, nil
}

func (m Model) viewEditor() string {
	e := m.editor
	title := "New Profile"
	if e.editID != "" {
		title = "Edit Profile"
	}

	var b strings.Builder
	b.WriteString(m.styles.title.Render(title) + "\n")
	b.WriteString(m.styles.dim.Render("Press Enter to advance, Esc to cancel") + "\n\n")

	for f := field(0); f < fieldCount; f++ {
		active := f == e.focus
		done := f < e.focus

		mark := " "
		switch {
		case done:
			mark = m.styles.success.Render("✓")
		case active:
			mark = m.styles.selected.Render("▸")
		}

		labelStyle := m.styles.muted
		if active {
			labelStyle = m.styles.text
		}
		b.WriteString(mark + " " + labelStyle.Render(fieldLabels[f]+":") + " ")

		if f == fieldColor {
			swatches := make([]string, len(profile.Colors))
			for i, c := range profile.Colors {
				dot := "○"
				if i == e.colorIdx {
					dot = "●"
				}
				swatches[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render(dot)
			}
			b.WriteString(strings.Join(swatches, " "))
		} else if active {
			b.WriteString(e.inputs[f].View())
		} else {
			b.WriteString(labelStyle.Render(e.inputs[f].Value()))
		}
		b.WriteString("\n")
	}
	if e.err != "" {
		b.WriteString("\n" + m.styles.errorMsg.Render(e.err) + "\n")
	}

	keys := bindings{m.keys.Next, m.keys.Back}
	if e.focus == fieldColor {
		keys = bindings{m.keys.Left, m.keys.Right, m.keys.Next, m.keys.Back}
	}
	return m.styles.frame.Padding(1, 2).Render(b.String()) + "\n" + m.footer(keys)
}
