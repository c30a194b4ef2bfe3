package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"waremind/internal/ai"
	"waremind/internal/api"
	"waremind/internal/config"
	"waremind/internal/database"
	"waremind/internal/events"
	"waremind/internal/jobs"
	"waremind/internal/logger"
	"waremind/internal/notify"
	"waremind/internal/repository"
	"waremind/internal/scheduler"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.DatabaseURI == "" {
		log.Fatal("DATABASE_URI is required")
	}
	logger.Init(cfg)

	loc, err := cfg.Location()
	if err != nil {
		logger.Log.Fatalf("Failed to resolve timezone %q: %v", cfg.Timezone, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to database and run migrations
	db, err := database.New(ctx, cfg.DatabaseURI)
	if err != nil {
		logger.Log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Log.Info("Connected to database")

	if err := db.Migrate(ctx); err != nil {
		logger.Log.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	reminderRepo := repository.NewReminderRepository(db)
	contactRepo := repository.NewContactRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	statusRepo := repository.NewStatusRepository(db)
	stickerRepo := repository.NewStickerRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Event bus and notification channels
	bus := events.NewBus()

	sinks := []notify.Sink{&notify.LogSink{}, notify.NewEventSink(bus)}
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		telegramSink, err := notify.NewTelegramSink(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			logger.Log.Fatalf("Failed to initialize Telegram sink: %v", err)
		}
		sinks = append(sinks, telegramSink)
		logger.Log.Info("Telegram delivery enabled")
	}

	sound := notify.NewSoundControl(notify.NewEventPlayer(bus))
	opener := notify.NewEventOpener(bus)

	// Due-reminder engine
	sched := scheduler.New(
		scheduler.Config{
			Tick:      cfg.SchedulerTick,
			Tolerance: cfg.DueTolerance,
			Cooldown:  cfg.FireCooldown,
		},
		scheduler.SystemClock{Loc: loc},
		reminderRepo,
		settingsRepo,
		sound,
		opener,
		sinks...,
	)

	reloadReminders := func() {
		loadCtx, loadCancel := context.WithTimeout(ctx, 10*time.Second)
		defer loadCancel()
		active, err := reminderRepo.ListActive(loadCtx)
		if err != nil {
			logger.Log.Errorf("Failed to load active reminders: %v", err)
			return
		}
		sched.SetReminders(active)
	}
	reloadReminders()
	go sched.Start(ctx)

	// Change feed: refresh the engine's cache and relay changes to SSE
	// clients whenever any writer touches the database.
	go func() {
		err := db.Listen(ctx, func(change database.Change) {
			if change.Entity == "reminder" || change.Entity == "settings" {
				reloadReminders()
				sched.Notify()
			}
			bus.Publish(events.Event{Type: events.TypeChange, Data: change})
		})
		if err != nil && ctx.Err() == nil {
			logger.Log.Errorf("Change feed stopped: %v", err)
		}
	}()

	// Housekeeping jobs
	runner := jobs.NewRunner(reminderRepo, statusRepo, loc)
	if err := runner.Start(); err != nil {
		logger.Log.Fatalf("Failed to start housekeeping jobs: %v", err)
	}
	defer runner.Stop()

	// Optional AI draft parsing
	var aiClient *ai.Client
	if cfg.AIAPIKey != "" {
		aiClient = ai.New(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel)
		logger.Log.Infof("AI client initialized (model: %s)", cfg.AIModel)
	}

	// HTTP API
	server := api.NewServer(api.Deps{
		Reminders: reminderRepo,
		Contacts:  contactRepo,
		Templates: templateRepo,
		Statuses:  statusRepo,
		Stickers:  stickerRepo,
		Settings:  settingsRepo,
		Scheduler: sched,
		Bus:       bus,
		AI:        aiClient,
		Location:  loc,
	})
	httpServer := &http.Server{
		Addr:    cfg.Listen,
		Handler: server.Handler(),
	}

	go func() {
		logger.Log.Infof("Listening on %s", cfg.Listen)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Log.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("HTTP shutdown: %v", err)
	}
	cancel()
}
