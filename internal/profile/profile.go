// Package profile implements the registry of identities ccm can switch
// between. Each profile owns a private directory holding its credential
// backup and an isolated assistant config root.
package profile

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	// ErrProfileNotFound is returned when a profile doesn't exist
	ErrProfileNotFound = errors.New("profile not found")

	// ErrInvalidProfile is returned when required profile fields are missing
	ErrInvalidProfile = errors.New("invalid profile")
)

// Colors is the palette offered by the profile editor
var Colors = []string{"#818cf8", "#c084fc", "#f472b6", "#34d399", "#fbbf24", "#fb923c", "#60a5fa"}

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Profile is one identity
type Profile struct {
	ID                string     `json:"id" yaml:"id"`
	Name              string     `json:"name" yaml:"name"`
	Company           string     `json:"company" yaml:"company"`
	Email             string     `json:"email" yaml:"email"`
	Color             string     `json:"color" yaml:"color"`
	DefaultProjectDir string     `json:"defaultProjectDir,omitempty" yaml:"defaultProjectDir,omitempty"`
	CreatedAt         time.Time  `json:"createdAt" yaml:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt" yaml:"updatedAt"`
	LastUsedAt        *time.Time `json:"lastUsedAt,omitempty" yaml:"lastUsedAt,omitempty"`
}

// Input holds the user-editable fields of a new profile
type Input struct {
	Name              string
	Company           string
	Email             string
	Color             string
	DefaultProjectDir string
}

// Patch is a partial update; nil fields are left unchanged
type Patch struct {
	Name              *string
	Company           *string
	Email             *string
	Color             *string
	DefaultProjectDir *string
}

// Validate checks the fields every profile must carry
func Validate(in Input) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProfile)
	}
	if strings.TrimSpace(in.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidProfile)
	}
	if in.Color != "" && !colorPattern.MatchString(in.Color) {
		return fmt.Errorf("%w: color %q must look like #rrggbb", ErrInvalidProfile, in.Color)
	}
	return nil
}

// NextColor picks a palette color for the n-th profile
func NextColor(n int) string {
	if n < 0 {
		n = 0
	}
	return Colors[n%len(Colors)]
}

func (p *Profile) apply(patch Patch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Company != nil {
		p.Company = *patch.Company
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	if patch.Color != nil {
		p.Color = *patch.Color
	}
	if patch.DefaultProjectDir != nil {
		p.DefaultProjectDir = *patch.DefaultProjectDir
	}
}

// LastUsed renders how long ago the profile was launched
func (p Profile) LastUsed(now time.Time) string {
	if p.LastUsedAt == nil {
		return "Never used"
	}
	return "Last used " + TimeAgo(*p.LastUsedAt, now)
}

// TimeAgo formats the distance between t and now coarsely
func TimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	mins := int(d / time.Minute)
	switch {
	case mins < 1:
		return "just now"
	case mins < 60:
		return fmt.Sprintf("%d min ago", mins)
	case mins < 24*60:
		return fmt.Sprintf("%dh ago", mins/60)
	default:
		return fmt.Sprintf("%dd ago", mins/(24*60))
	}
}
