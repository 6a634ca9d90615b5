// Package config owns the on-disk layout of ccm: the tool directory, the
// per-profile directory mapping, config.json and active.json.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// HomeEnv overrides the tool directory (default ~/.ccm).
	HomeEnv = "CCM_HOME"

	dirName          = ".ccm"
	configFile       = "config.json"
	profilesFile     = "profiles.json"
	activeFile       = "active.json"
	profilesDir      = "profiles"
	credentialFile   = "credential.json"
	assistantDirName = ".claude"
	logsDir          = "logs"
)

// Paths maps ccm's files and profile ids to filesystem locations. It is the
// only place that knows the directory layout.
type Paths struct {
	Root string
}

// DefaultPaths resolves the tool directory from CCM_HOME or the real home
// directory. Resolve it once at startup: child processes run with a
// different environment and must not change where ccm keeps its state.
func DefaultPaths() (Paths, error) {
	if root := strings.TrimSpace(os.Getenv(HomeEnv)); root != "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			return Paths{}, fmt.Errorf("failed to resolve %s: %w", HomeEnv, err)
		}
		return Paths{Root: abs}, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, fmt.Errorf("failed to determine home directory: %w", err)
	}
	return Paths{Root: filepath.Join(home, dirName)}, nil
}

// ConfigFile is config.json.
func (p Paths) ConfigFile() string { return filepath.Join(p.Root, configFile) }

// ProfilesFile is profiles.json.
func (p Paths) ProfilesFile() string { return filepath.Join(p.Root, profilesFile) }

// ActiveFile is active.json.
func (p Paths) ActiveFile() string { return filepath.Join(p.Root, activeFile) }

// LogDir holds debug logs.
func (p Paths) LogDir() string { return filepath.Join(p.Root, logsDir) }

// ProfileDir is the private directory of one profile.
func (p Paths) ProfileDir(id string) string {
	return filepath.Join(p.Root, profilesDir, id)
}

// CredentialFile is the credential backup of one profile.
func (p Paths) CredentialFile(id string) string {
	return filepath.Join(p.ProfileDir(id), credentialFile)
}

// AssistantConfigDir is the isolated assistant config root of one profile.
func (p Paths) AssistantConfigDir(id string) string {
	return filepath.Join(p.ProfileDir(id), assistantDirName)
}

// EnsureRoot creates the tool directory.
func (p Paths) EnsureRoot() error {
	if err := os.MkdirAll(p.Root, 0o700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", p.Root, err)
	}
	return nil
}
