package models

import "time"

// Settings holds the user preferences the due-reminder engine consults.
// A single row is kept in the database.
type Settings struct {
	SoundEnabled         bool      `json:"sound_enabled"`
	NotificationsEnabled bool      `json:"notifications_enabled"`
	AutoOpenLink         bool      `json:"auto_open_link"` // open the WhatsApp deep link without a click
	UpdatedAt            time.Time `json:"updated_at"`
}

// DefaultSettings returns the preferences applied before the user saves any.
func DefaultSettings() *Settings {
	return &Settings{
		SoundEnabled:         true,
		NotificationsEnabled: true,
		AutoOpenLink:         false,
		UpdatedAt:            time.Now(),
	}
}
