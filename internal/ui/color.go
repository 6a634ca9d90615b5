package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorEnv forces a color profile: truecolor, 256, 16 or none
const ColorEnv = "CCM_COLOR"

// colorProfile picks the color profile from the environment. ok is false
// when the terminal should be asked instead.
func colorProfile(getenv func(string) string) (termenv.Profile, bool) {
	if getenv("NO_COLOR") != "" {
		return termenv.Ascii, true
	}
	switch strings.ToLower(strings.TrimSpace(getenv(ColorEnv))) {
	case "truecolor", "true", "24bit":
		return termenv.TrueColor, true
	case "256", "ansi256":
		return termenv.ANSI256, true
	case "16", "ansi", "basic":
		return termenv.ANSI, true
	case "none", "off", "ascii":
		return termenv.Ascii, true
	}
	if ct := getenv("COLORTERM"); ct == "truecolor" || ct == "24bit" {
		return termenv.TrueColor, true
	}
	return 0, false
}

// InitColorProfile configures lipgloss for the current terminal
func InitColorProfile() {
	if p, ok := colorProfile(os.Getenv); ok {
		lipgloss.SetColorProfile(p)
		return
	}
	lipgloss.SetColorProfile(termenv.NewOutput(os.Stdout).EnvColorProfile())
}
