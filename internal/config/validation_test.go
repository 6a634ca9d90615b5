package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTheme(t *testing.T) {
	tests := []struct {
		name        string
		theme       string
		expected    ThemeName
		expectedErr string
	}{
		{name: "Valid midnight theme", theme: "midnight", expected: ThemeMidnight},
		{name: "Valid aura theme", theme: "aura", expected: ThemeAura},
		{name: "Valid minimal theme", theme: "minimal", expected: ThemeMinimal},
		{name: "Invalid theme", theme: "solarized", expectedErr: "unsupported theme"},
		{name: "Empty theme", theme: "", expected: ThemeMidnight}, // Default to midnight, no error
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateTheme(tt.theme)
			if tt.expectedErr == "" {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, got)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
			}
		})
	}
}
