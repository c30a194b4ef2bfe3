// Package jobs runs the nightly housekeeping: disabling spent one-time
// reminders and purging expired statuses.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"waremind/internal/logger"
	"waremind/internal/repository"
)

// statusLifetime matches WhatsApp's own status expiry.
const statusLifetime = 24 * time.Hour

type Runner struct {
	cron      *cron.Cron
	reminders *repository.ReminderRepository
	statuses  *repository.StatusRepository
	loc       *time.Location
}

func NewRunner(reminders *repository.ReminderRepository, statuses *repository.StatusRepository, loc *time.Location) *Runner {
	if loc == nil {
		loc = time.Local
	}
	return &Runner{
		cron:      cron.New(cron.WithLocation(loc)),
		reminders: reminders,
		statuses:  statuses,
		loc:       loc,
	}
}

func (r *Runner) Start() error {
	if _, err := r.cron.AddFunc("10 0 * * *", r.runHousekeeping); err != nil {
		return err
	}
	r.cron.Start()
	logger.Log.Info("Housekeeping jobs scheduled")
	return nil
}

func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

func (r *Runner) runHousekeeping() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now().In(r.loc)

	// A day of margin: fire_date carries no time of day, so a reminder dated
	// yesterday may have fired late last night and must stay checkable until
	// the date is unambiguously past.
	disabled, err := r.reminders.DeactivateExpiredOnce(ctx, now.AddDate(0, 0, -1))
	if err != nil {
		logger.Log.Errorf("Failed to deactivate expired one-time reminders: %v", err)
	} else if disabled > 0 {
		logger.Log.Infof("Deactivated %d expired one-time reminders", disabled)
	}

	purged, err := r.statuses.PurgeOlderThan(ctx, now.Add(-statusLifetime))
	if err != nil {
		logger.Log.Errorf("Failed to purge expired statuses: %v", err)
	} else if purged > 0 {
		logger.Log.Infof("Purged %d expired statuses", purged)
	}
}
