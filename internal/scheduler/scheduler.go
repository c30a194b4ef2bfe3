// Package scheduler drives the due-reminder engine: it holds the cached set
// of active reminders, polls it on a timer, and fires side effects at most
// once per due window.
//
// Polling, not push: recurrence has to be evaluated against the wall clock
// regardless of external events. The due tolerance and the re-fire cooldown
// together approximate "fire once near the scheduled instant" without an
// occurrence-instance identity in the data model.
package scheduler

import (
	"context"
	"sync"
	"time"

	"waremind/internal/logger"
	"waremind/internal/models"
	"waremind/internal/notify"
	"waremind/internal/recurrence"
	"waremind/internal/whatsapp"
)

// Clock abstracts time.Now so tests can pin the wall clock. The returned
// instant's location is the one all occurrence arithmetic runs in.
type Clock interface {
	Now() time.Time
}

type SystemClock struct {
	Loc *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Loc != nil {
		return time.Now().In(c.Loc)
	}
	return time.Now()
}

// TriggerStore persists last-triggered write-backs.
type TriggerStore interface {
	SetLastTriggered(ctx context.Context, reminderID int64, firedAt time.Time) error
}

// SettingsSource yields the current user preferences.
type SettingsSource interface {
	Get(ctx context.Context) (*models.Settings, error)
}

type Config struct {
	Tick      time.Duration // poll period
	Tolerance time.Duration // half-width of the due window around an occurrence
	Cooldown  time.Duration // minimum interval between fires of one reminder
}

func (c *Config) applyDefaults() {
	if c.Tick <= 0 {
		c.Tick = 15 * time.Second
	}
	if c.Tolerance <= 0 {
		c.Tolerance = 30 * time.Second
	}
	if c.Cooldown <= 0 {
		c.Cooldown = 5 * time.Minute
	}
}

type Scheduler struct {
	cfg      Config
	clock    Clock
	store    TriggerStore
	settings SettingsSource
	sound    *notify.SoundControl
	opener   notify.LinkOpener
	sinks    []notify.Sink

	mu        sync.Mutex
	reminders []*models.Reminder
	// fired keeps the in-process cooldown even when the last-triggered
	// write-back fails, so a broken store cannot cause re-fires within
	// this process's lifetime.
	fired       map[int64]time.Time
	subscribers []func(models.Reminder)

	notifyCh chan struct{}
}

func New(cfg Config, clock Clock, store TriggerStore, settings SettingsSource, sound *notify.SoundControl, opener notify.LinkOpener, sinks ...notify.Sink) *Scheduler {
	cfg.applyDefaults()
	return &Scheduler{
		cfg:      cfg,
		clock:    clock,
		store:    store,
		settings: settings,
		sound:    sound,
		opener:   opener,
		sinks:    sinks,
		fired:    map[int64]time.Time{},
		notifyCh: make(chan struct{}, 1),
	}
}

// Notify triggers an immediate check. Non-blocking if one is already pending.
func (s *Scheduler) Notify() {
	select {
	case s.notifyCh <- struct{}{}:
	default:
	}
}

// SetReminders replaces the cached scheduling subset. Callers pass the
// active reminders; the timer keeps running unchanged.
func (s *Scheduler) SetReminders(reminders []*models.Reminder) {
	s.mu.Lock()
	s.reminders = reminders
	s.mu.Unlock()
}

// Subscribe registers a handler invoked for every fired reminder. Multiple
// subscribers (UI relay, logging, metrics) can react independently.
func (s *Scheduler) Subscribe(handler func(models.Reminder)) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, handler)
	s.mu.Unlock()
}

func (s *Scheduler) IsSoundActive() bool {
	return s.sound.IsPlaying()
}

// Silence fades the alert sound out without touching reminder state.
func (s *Scheduler) Silence() {
	s.sound.FadeOut()
}

// Start runs the polling loop until ctx is cancelled, beginning with an
// immediate check. On shutdown any playing sound stops at once, no fade.
func (s *Scheduler) Start(ctx context.Context) {
	logger.Log.Infof("Scheduler started (tick=%s tolerance=%s cooldown=%s)", s.cfg.Tick, s.cfg.Tolerance, s.cfg.Cooldown)
	ticker := time.NewTicker(s.cfg.Tick)
	defer ticker.Stop()

	s.check(ctx)

	for {
		select {
		case <-ctx.Done():
			s.sound.StopNow()
			logger.Log.Info("Scheduler stopped")
			return
		case <-ticker.C:
			s.check(ctx)
		case <-s.notifyCh:
			s.check(ctx)
		}
	}
}

// check walks the cached reminders once. When nothing is due anymore and the
// alert sound still plays, it fades out.
func (s *Scheduler) check(ctx context.Context) {
	s.mu.Lock()
	reminders := make([]*models.Reminder, len(s.reminders))
	copy(reminders, s.reminders)
	s.mu.Unlock()

	settings := s.currentSettings(ctx)

	anyDue := false
	for _, reminder := range reminders {
		if s.checkOne(ctx, reminder, settings) {
			anyDue = true
		}
	}

	if !anyDue && s.sound.IsPlaying() {
		s.sound.FadeOut()
	}
}

// CheckReminder reports whether the reminder is due right now and fires its
// side effects when the cooldown allows. It is safe to call outside the
// polling loop, e.g. for a manual check from the API.
func (s *Scheduler) CheckReminder(ctx context.Context, reminder *models.Reminder) bool {
	return s.checkOne(ctx, reminder, s.currentSettings(ctx))
}

func (s *Scheduler) checkOne(ctx context.Context, reminder *models.Reminder, settings *models.Settings) bool {
	if !reminder.IsActive {
		return false
	}

	now := s.clock.Now()
	// The calculator only looks forward, so rewind the reference by the
	// tolerance: an instant that passed within the last tolerance interval
	// is still the nearest occurrence and lands inside the ± window below.
	next, ok := recurrence.Next(reminder, now.Add(-s.cfg.Tolerance))
	if !ok {
		return false
	}

	offset := next.Sub(now)
	if offset < -s.cfg.Tolerance || offset > s.cfg.Tolerance {
		return false
	}

	// Due. Fire only if the cooldown gate can be claimed.
	if !s.claimFire(reminder, now) {
		return true
	}

	s.fire(ctx, reminder, now, settings)
	return true
}

// claimFire applies the cooldown gate and records the firing instant in one
// critical section, so a manual check racing the polling loop cannot both
// pass the gate for the same due window.
func (s *Scheduler) claimFire(reminder *models.Reminder, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if last, ok := s.lastTriggeredLocked(reminder); ok && now.Sub(last) < s.cfg.Cooldown {
		return false
	}
	s.fired[reminder.ID] = now
	return true
}

// lastTriggeredLocked merges the persisted timestamp with the in-memory one
// and returns the most recent. Callers hold s.mu.
func (s *Scheduler) lastTriggeredLocked(reminder *models.Reminder) (time.Time, bool) {
	inMemory, hasMemory := s.fired[reminder.ID]

	persisted := reminder.LastTriggered
	switch {
	case hasMemory && persisted != nil:
		if inMemory.After(*persisted) {
			return inMemory, true
		}
		return *persisted, true
	case hasMemory:
		return inMemory, true
	case persisted != nil:
		return *persisted, true
	}
	return time.Time{}, false
}

// fire runs the side effects. The caller has already claimed the cooldown
// gate via claimFire.
func (s *Scheduler) fire(ctx context.Context, reminder *models.Reminder, now time.Time, settings *models.Settings) {
	s.mu.Lock()
	subscribers := make([]func(models.Reminder), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	firedAt := now
	reminder.LastTriggered = &firedAt

	link := whatsapp.Link(reminder.PhoneNumber, reminder.Message)
	notification := notify.Notification{Reminder: *reminder, Link: link, FiredAt: now}

	// Side effects are independent: a failing one must not block the rest.
	if settings.SoundEnabled {
		s.sound.Start()
	}
	if settings.NotificationsEnabled {
		for _, sink := range s.sinks {
			if err := sink.Deliver(ctx, notification); err != nil {
				logger.Log.Errorf("Failed to deliver reminder %d via %s: %v", reminder.ID, sink.Name(), err)
			}
		}
	}
	if settings.AutoOpenLink && s.opener != nil {
		if err := s.opener.Open(ctx, link); err != nil {
			logger.Log.Errorf("Failed to auto-open link for reminder %d: %v", reminder.ID, err)
		}
	}

	for _, handler := range subscribers {
		handler(*reminder)
	}

	// Fire-and-forget write-back: a failure is logged and the in-memory
	// cooldown still covers this process.
	go func(id int64, firedAt time.Time) {
		writeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.store.SetLastTriggered(writeCtx, id, firedAt); err != nil {
			logger.Log.Errorf("Failed to persist last-triggered for reminder %d: %v", id, err)
		}
	}(reminder.ID, now)

	logger.Log.Infof("Fired reminder %d (%s)", reminder.ID, reminder.ContactName)
}

func (s *Scheduler) currentSettings(ctx context.Context) *models.Settings {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		logger.Log.Errorf("Failed to load settings, using defaults: %v", err)
		return models.DefaultSettings()
	}
	return settings
}
