package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ThemeName identifies a UI color preset
type ThemeName string

const (
	ThemeMidnight ThemeName = "midnight"
	ThemeAura     ThemeName = "aura"
	ThemeMinimal  ThemeName = "minimal"
)

// ThemeNames lists the presets in display order
var ThemeNames = []ThemeName{ThemeMidnight, ThemeAura, ThemeMinimal}

// ValidateTheme checks if the given string is a valid ThemeName.
// An empty string selects the default theme.
func ValidateTheme(name string) (ThemeName, error) {
	if name == "" {
		return ThemeMidnight, nil
	}
	for _, t := range ThemeNames {
		if ThemeName(name) == t {
			return t, nil
		}
	}
	return "", fmt.Errorf("unsupported theme %q: must be one of midnight, aura, minimal", name)
}

// Config is the content of config.json
type Config struct {
	Theme               ThemeName         `json:"theme"`
	DefaultProfileID    string            `json:"defaultProfileId,omitempty"`
	DirectoryProfileMap map[string]string `json:"directoryProfileMap"`
	Backend             string            `json:"backend,omitempty"`
}

// Default returns the configuration used when config.json is absent
func Default() *Config {
	return &Config{
		Theme:               ThemeMidnight,
		DirectoryProfileMap: map[string]string{},
	}
}

// Load reads config.json, validates it and fills in defaults for missing
// fields. The tool directory is created if needed.
func Load(p Paths) (*Config, error) {
	if err := p.EnsureRoot(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p.ConfigFile())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", p.ConfigFile(), err)
	}
	if err := ValidateConfigJSON(data); err != nil {
		return nil, err
	}

	cfg := Default()
	if _, err := ReadJSON(p.ConfigFile(), cfg); err != nil {
		return nil, err
	}
	if cfg.Theme == "" {
		cfg.Theme = ThemeMidnight
	}
	if cfg.DirectoryProfileMap == nil {
		cfg.DirectoryProfileMap = map[string]string{}
	}
	return cfg, nil
}

// Save writes config.json
func Save(p Paths, cfg *Config) error {
	return WriteJSON(p.ConfigFile(), cfg, 0o600)
}

// ProfileForDir returns the profile mapped to dir or its closest mapped
// ancestor. The longest matching directory wins.
func (c *Config) ProfileForDir(dir string) (string, bool) {
	dir = filepath.Clean(dir)
	best, bestID := "", ""
	for mapped, id := range c.DirectoryProfileMap {
		m := filepath.Clean(mapped)
		if dir != m && !strings.HasPrefix(dir, strings.TrimSuffix(m, string(filepath.Separator))+string(filepath.Separator)) {
			continue
		}
		if len(m) > len(best) {
			best, bestID = m, id
		}
	}
	return bestID, bestID != ""
}

// MapDirectory associates dir with a profile.
func (c *Config) MapDirectory(dir, profileID string) {
	if c.DirectoryProfileMap == nil {
		c.DirectoryProfileMap = map[string]string{}
	}
	c.DirectoryProfileMap[filepath.Clean(dir)] = profileID
}

// UnmapDirectory removes dir from the map and reports whether it was mapped.
func (c *Config) UnmapDirectory(dir string) bool {
	dir = filepath.Clean(dir)
	if _, ok := c.DirectoryProfileMap[dir]; !ok {
		return false
	}
	delete(c.DirectoryProfileMap, dir)
	return true
}

// ForgetProfile drops every reference to a deleted profile.
func (c *Config) ForgetProfile(profileID string) {
	if c.DefaultProfileID == profileID {
		c.DefaultProfileID = ""
	}
	for dir, id := range c.DirectoryProfileMap {
		if id == profileID {
			delete(c.DirectoryProfileMap, dir)
		}
	}
}
