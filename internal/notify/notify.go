// Package notify holds the side-effect capabilities invoked when a reminder
// fires: notification sinks, the deep-link opener and the alert-sound
// controller. Each capability is small so the due-reminder engine stays
// testable without a browser, Telegram, or audio hardware.
package notify

import (
	"context"
	"time"

	"waremind/internal/models"
)

// Notification is a due reminder rendered for delivery.
type Notification struct {
	Reminder models.Reminder `json:"reminder"`
	Link     string          `json:"link"` // wa.me deep link
	FiredAt  time.Time       `json:"fired_at"`
}

// Sink delivers a notification somewhere the user will see it. Failures are
// independent: the engine attempts every sink and logs what fails.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, n Notification) error
}

// LinkOpener opens a WhatsApp deep link without user interaction, used when
// the auto-trigger setting is on.
type LinkOpener interface {
	Open(ctx context.Context, link string) error
}
