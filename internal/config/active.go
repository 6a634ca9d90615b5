package config

import (
	"time"
)

// ActiveMarker records which profile's credential is believed to occupy the
// shared OS store. It is advisory: the store itself is the source of truth.
type ActiveMarker struct {
	ProfileID   string    `json:"profileId"`
	ProfileName string    `json:"profileName"`
	ActivatedAt time.Time `json:"activatedAt"`
}

// LoadActive returns the current marker, or nil when none was written.
func LoadActive(p Paths) (*ActiveMarker, error) {
	var m ActiveMarker
	found, err := ReadJSON(p.ActiveFile(), &m)
	if err != nil || !found {
		return nil, err
	}
	return &m, nil
}

// SaveActive records profileID as the active profile.
func SaveActive(p Paths, profileID, profileName string, at time.Time) error {
	return WriteJSON(p.ActiveFile(), ActiveMarker{
		ProfileID:   profileID,
		ProfileName: profileName,
		ActivatedAt: at.UTC(),
	}, 0o600)
}
