package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ccm-dev/ccm/internal/config"
)

// Theme is a named color set
type Theme struct {
	Name          config.ThemeName
	Text          lipgloss.Color
	TextMuted     lipgloss.Color
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Success       lipgloss.Color
	Warning       lipgloss.Color
	Error         lipgloss.Color
	Border        lipgloss.Color
	BorderFocused lipgloss.Color
	Selection     lipgloss.Color
	ShortcutKey   lipgloss.Color
}

var themes = map[config.ThemeName]Theme{
	config.ThemeMidnight: {
		Name:          config.ThemeMidnight,
		Text:          "#e2e8f0",
		TextMuted:     "#64748b",
		Primary:       "#818cf8",
		Secondary:     "#6366f1",
		Success:       "#34d399",
		Warning:       "#fbbf24",
		Error:         "#f87171",
		Border:        "#334155",
		BorderFocused: "#818cf8",
		Selection:     "#1e293b",
		ShortcutKey:   "#818cf8",
	},
	config.ThemeAura: {
		Name:          config.ThemeAura,
		Text:          "#e2e0f0",
		TextMuted:     "#7c7a8e",
		Primary:       "#c084fc",
		Secondary:     "#e879f9",
		Success:       "#34d399",
		Warning:       "#fbbf24",
		Error:         "#fb7185",
		Border:        "#3b3554",
		BorderFocused: "#c084fc",
		Selection:     "#1e1a2e",
		ShortcutKey:   "#e879f9",
	},
	config.ThemeMinimal: {
		Name:          config.ThemeMinimal,
		Text:          "#d4d4d4",
		TextMuted:     "#737373",
		Primary:       "#ffffff",
		Secondary:     "#a3a3a3",
		Success:       "#a3e635",
		Warning:       "#facc15",
		Error:         "#ef4444",
		Border:        "#404040",
		BorderFocused: "#ffffff",
		Selection:     "#262626",
		ShortcutKey:   "#ffffff",
	},
}

// ThemeFor returns the named theme, falling back to midnight
func ThemeFor(name config.ThemeName) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[config.ThemeMidnight]
}

// styles are the lipgloss styles derived from a theme
type styles struct {
	frame    lipgloss.Style
	modal    lipgloss.Style
	title    lipgloss.Style
	text     lipgloss.Style
	muted    lipgloss.Style
	dim      lipgloss.Style
	cursor   lipgloss.Style
	success  lipgloss.Style
	warning  lipgloss.Style
	errorMsg lipgloss.Style
	selected lipgloss.Style
	label    lipgloss.Style
	notice   lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Warning).
			Padding(1, 2),
		title:    lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		text:     lipgloss.NewStyle().Foreground(t.Text),
		muted:    lipgloss.NewStyle().Foreground(t.TextMuted),
		dim:      lipgloss.NewStyle().Foreground(t.TextMuted).Faint(true),
		cursor:   lipgloss.NewStyle().Foreground(t.BorderFocused),
		success:  lipgloss.NewStyle().Foreground(t.Success),
		warning:  lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		errorMsg: lipgloss.NewStyle().Foreground(t.Error),
		selected: lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		label:    lipgloss.NewStyle().Foreground(t.TextMuted).Width(9),
		notice: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Selection).
			Padding(0, 1),
	}
}

// profileStyle colors a profile name with its own color
func profileStyle(color string, fallback lipgloss.Color) lipgloss.Style {
	c := fallback
	if color != "" {
		c = lipgloss.Color(color)
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}
