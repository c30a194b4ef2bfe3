package models

import "time"

// Status is a saved WhatsApp status draft. Statuses expire after 24 hours
// and are purged by the housekeeping job.
type Status struct {
	StatusID  int64     `json:"status_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
