package repository

import (
	"context"

	"waremind/internal/database"
	"waremind/internal/models"
)

type StickerRepository struct {
	db *database.DB
}

func NewStickerRepository(db *database.DB) *StickerRepository {
	return &StickerRepository{db: db}
}

func (r *StickerRepository) Create(ctx context.Context, sticker *models.Sticker) error {
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO stickers (name, url) VALUES ($1, $2)
		 RETURNING sticker_id, created_at`,
		sticker.Name, sticker.URL,
	).Scan(&sticker.StickerID, &sticker.CreatedAt)
	if err != nil {
		return err
	}
	r.db.NotifyChange(ctx, "sticker", "create", sticker.StickerID)
	return nil
}

func (r *StickerRepository) List(ctx context.Context) ([]*models.Sticker, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT sticker_id, name, url, created_at FROM stickers ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stickers []*models.Sticker
	for rows.Next() {
		sticker := &models.Sticker{}
		if err := rows.Scan(&sticker.StickerID, &sticker.Name, &sticker.URL, &sticker.CreatedAt); err != nil {
			return nil, err
		}
		stickers = append(stickers, sticker)
	}
	return stickers, rows.Err()
}

func (r *StickerRepository) GetByID(ctx context.Context, stickerID int64) (*models.Sticker, error) {
	sticker := &models.Sticker{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT sticker_id, name, url, created_at FROM stickers WHERE sticker_id = $1`,
		stickerID,
	).Scan(&sticker.StickerID, &sticker.Name, &sticker.URL, &sticker.CreatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return sticker, nil
}

func (r *StickerRepository) Update(ctx context.Context, sticker *models.Sticker) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE stickers SET name = $1, url = $2 WHERE sticker_id = $3`,
		sticker.Name, sticker.URL, sticker.StickerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	r.db.NotifyChange(ctx, "sticker", "update", sticker.StickerID)
	return nil
}

func (r *StickerRepository) Delete(ctx context.Context, stickerID int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM stickers WHERE sticker_id = $1`, stickerID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}
	r.db.NotifyChange(ctx, "sticker", "delete", stickerID)
	return true, nil
}
