package models

import "time"

type Contact struct {
	ContactID   int64     `json:"contact_id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
}
