package notify

import (
	"context"

	"waremind/internal/logger"
)

// LogSink writes every firing to the application log. Always registered.
type LogSink struct{}

func (LogSink) Name() string { return "log" }

func (LogSink) Deliver(_ context.Context, n Notification) error {
	logger.Log.Infof("Reminder %d due: contact=%q link=%s", n.Reminder.ID, n.Reminder.ContactName, n.Link)
	return nil
}
