package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ccm-dev/ccm/internal/config"
)

// Registry persists the ordered profile list in profiles.json. Every
// mutation rewrites the whole file before returning.
type Registry struct {
	paths  config.Paths
	logger *zap.Logger
	now    func() time.Time
}

// NewRegistry creates a Registry rooted at paths
func NewRegistry(paths config.Paths, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{paths: paths, logger: logger, now: time.Now}
}

// List returns all profiles in stored order
func (r *Registry) List() ([]Profile, error) {
	data, err := os.ReadFile(r.paths.ProfilesFile())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Profile{}, nil
		}
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}
	if err := config.ValidateProfilesJSON(data); err != nil {
		return nil, err
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return []Profile{}, nil
	}
	var profiles []Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", r.paths.ProfilesFile(), err)
	}
	if profiles == nil {
		profiles = []Profile{}
	}
	return profiles, nil
}

func (r *Registry) save(profiles []Profile) error {
	if err := config.WriteJSON(r.paths.ProfilesFile(), profiles, 0o600); err != nil {
		return fmt.Errorf("failed to save profiles: %w", err)
	}
	return nil
}

// Get returns the profile with the given id
func (r *Registry) Get(id string) (*Profile, error) {
	profiles, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		if profiles[i].ID == id {
			return &profiles[i], nil
		}
	}
	return nil, ErrProfileNotFound
}

// FindByName looks a profile up by name, ignoring case
func (r *Registry) FindByName(name string) (*Profile, error) {
	profiles, err := r.List()
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	for i := range profiles {
		if strings.EqualFold(profiles[i].Name, name) {
			return &profiles[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrProfileNotFound, name)
}

// Create adds a profile and provisions its private directory tree
func (r *Registry) Create(in Input) (*Profile, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	profiles, err := r.List()
	if err != nil {
		return nil, err
	}

	now := r.now().UTC()
	p := Profile{
		ID:                uuid.NewString(),
		Name:              strings.TrimSpace(in.Name),
		Company:           strings.TrimSpace(in.Company),
		Email:             strings.TrimSpace(in.Email),
		Color:             in.Color,
		DefaultProjectDir: strings.TrimSpace(in.DefaultProjectDir),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if p.Color == "" {
		p.Color = NextColor(len(profiles))
	}

	// The assistant is pointed at this directory through CLAUDE_CONFIG_DIR.
	dir := r.paths.AssistantConfigDir(p.ID)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create profile directory %s: %w", dir, err)
	}

	profiles = append(profiles, p)
	if err := r.save(profiles); err != nil {
		return nil, err
	}
	r.logger.Info("profile created", zap.String("id", p.ID), zap.String("name", p.Name))
	return &p, nil
}

// Update merges patch into the profile with the given id
func (r *Registry) Update(id string, patch Patch) (*Profile, error) {
	profiles, err := r.List()
	if err != nil {
		return nil, err
	}
	idx := indexOf(profiles, id)
	if idx == -1 {
		return nil, ErrProfileNotFound
	}

	updated := profiles[idx]
	updated.apply(patch)
	if err := Validate(Input{Name: updated.Name, Email: updated.Email, Color: updated.Color}); err != nil {
		return nil, err
	}
	updated.UpdatedAt = r.now().UTC()
	profiles[idx] = updated

	if err := r.save(profiles); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a profile. The profile directory is removed afterwards on a
// best-effort basis; the registry entry is gone even if that fails.
func (r *Registry) Delete(id string) (bool, error) {
	profiles, err := r.List()
	if err != nil {
		return false, err
	}
	idx := indexOf(profiles, id)
	if idx == -1 {
		return false, nil
	}

	profiles = append(profiles[:idx], profiles[idx+1:]...)
	if err := r.save(profiles); err != nil {
		return false, err
	}

	if err := os.RemoveAll(r.paths.ProfileDir(id)); err != nil {
		r.logger.Warn("failed to remove profile directory", zap.String("id", id), zap.Error(err))
	}
	r.logger.Info("profile deleted", zap.String("id", id))
	return true, nil
}

// Touch records a launch of the profile
func (r *Registry) Touch(id string) error {
	profiles, err := r.List()
	if err != nil {
		return err
	}
	idx := indexOf(profiles, id)
	if idx == -1 {
		return nil
	}
	now := r.now().UTC()
	profiles[idx].LastUsedAt = &now
	return r.save(profiles)
}

func indexOf(profiles []Profile, id string) int {
	for i := range profiles {
		if profiles[i].ID == id {
			return i
		}
	}
	return -1
}
