package repository

import (
	"context"

	"waremind/internal/database"
	"waremind/internal/models"
)

type SettingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the single settings row, falling back to defaults if the
// row is somehow missing.
func (r *SettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	settings := &models.Settings{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT sound_enabled, notifications_enabled, auto_open_link, updated_at
		 FROM settings WHERE settings_id = 1`,
	).Scan(&settings.SoundEnabled, &settings.NotificationsEnabled, &settings.AutoOpenLink, &settings.UpdatedAt)
	if err != nil {
		if mapNoRows(err) == ErrNotFound {
			return models.DefaultSettings(), nil
		}
		return nil, err
	}
	return settings, nil
}

func (r *SettingsRepository) Update(ctx context.Context, settings *models.Settings) error {
	err := r.db.Pool.QueryRow(ctx,
		`UPDATE settings SET sound_enabled = $1, notifications_enabled = $2, auto_open_link = $3, updated_at = NOW()
		 WHERE settings_id = 1
		 RETURNING updated_at`,
		settings.SoundEnabled, settings.NotificationsEnabled, settings.AutoOpenLink,
	).Scan(&settings.UpdatedAt)
	if err != nil {
		return mapNoRows(err)
	}
	r.db.NotifyChange(ctx, "settings", "update", 1)
	return nil
}
