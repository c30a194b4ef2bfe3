package models

import "time"

type Sticker struct {
	StickerID int64     `json:"sticker_id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}
