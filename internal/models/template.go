package models

import "time"

// Template is a reusable message body the user can drop into a reminder.
type Template struct {
	TemplateID int64     `json:"template_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}
