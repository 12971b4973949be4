package app

import (
	"context"
	"time"

	"github.com/dbshield/dbshield/internal/adapter/compressor"
	"github.com/dbshield/dbshield/internal/adapter/database"
	"github.com/dbshield/dbshield/internal/adapter/storage"
	"github.com/dbshield/dbshield/internal/config"
	"github.com/dbshield/dbshield/internal/infrastructure/logger"
	"github.com/dbshield/dbshield/internal/infrastructure/schedule"
	"github.com/dbshield/dbshield/internal/usecase"
)

// App wires the engine together and drives it in daemon or one-shot mode.
type App struct {
	configPath    string
	cfg           *config.Config
	logger        *logger.Logger
	tracker       *schedule.FireTracker
	uploadTargets []usecase.UploadTarget
}

func New(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.App.LogLevel, cfg.App.LogFile)
	if err != nil {
		return nil, err
	}

	return &App{
		configPath:    configPath,
		cfg:           cfg,
		logger:        log,
		tracker:       schedule.NewFireTracker(),
		uploadTargets: initUploadTargets(cfg, log),
	}, nil
}

// initUploadTargets builds the remote mirror adapters once at startup; a
// misconfigured destination is dropped with an error, not fatal.
func initUploadTargets(cfg *config.Config, log *logger.Logger) []usecase.UploadTarget {
	var targets []usecase.UploadTarget

	for _, tc := range cfg.EnabledUploadTargets() {
		var stor usecase.UploadTarget

		switch tc.Type {
		case "s3":
			s, err := storage.NewS3(&tc)
			if err != nil {
				log.Errorf("failed to initialize S3 upload target: %v", err)
				continue
			}
			stor = usecase.UploadTarget{Name: "s3", Storage: s}
			log.Infof("S3 mirroring enabled (bucket: %s)", tc.Bucket)

		case "gdrive":
			s, err := storage.NewGDrive(&tc)
			if err != nil {
				log.Errorf("failed to initialize Google Drive upload target: %v", err)
				continue
			}
			stor = usecase.UploadTarget{Name: "gdrive", Storage: s}
			log.Infof("Google Drive mirroring enabled")

		case "telegram":
			s, err := storage.NewTelegram(&tc)
			if err != nil {
				log.Errorf("failed to initialize Telegram upload target: %v", err)
				continue
			}
			stor = usecase.UploadTarget{Name: "telegram", Storage: s}
			log.Infof("Telegram delivery enabled")

		default:
			log.Warnf("unknown upload target type: %s", tc.Type)
			continue
		}

		targets = append(targets, stor)
	}

	return targets
}

func (a *App) backupUsecase(cfg *config.Config) *usecase.Backup {
	return usecase.NewBackup(
		a.uploadTargets,
		compressor.NewGzip(),
		a.logger,
		cfg.Backup.Compress,
		cfg.Backup.DumpTimeout,
	)
}

// Daemon polls every tick, re-reading the configuration each time so edits
// take effect within one tick, and fires each enabled target whose cron
// schedule produced a due instant not yet serviced this run.
func (a *App) Daemon(ctx context.Context) error {
	tick := a.cfg.Backup.TickInterval
	a.logger.Infof("daemon started, polling every %s (lookback window %s)",
		tick, a.cfg.Backup.LookbackWindow)

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.logger.Infof("shutdown requested, stopping daemon")
			return nil
		case <-ticker.C:
		}

		cfg, err := config.Load(a.configPath)
		if err != nil {
			// Unreadable configuration aborts this tick only.
			a.logger.Errorf("failed to reload configuration: %v", err)
			continue
		}

		a.poll(ctx, cfg, time.Now())
	}
}

// poll evaluates every enabled scheduled target once against now. A
// failure for one target never affects the others.
func (a *App) poll(ctx context.Context, cfg *config.Config, now time.Time) {
	windowStart := now.Add(-cfg.Backup.LookbackWindow)

	for _, target := range cfg.EnabledTargets() {
		if target.Schedule == "" {
			continue
		}

		due, ok, err := schedule.NextFiring(target.Schedule, windowStart, now)
		if err != nil {
			a.logger.Errorf("[%s] invalid schedule, skipping: %v", target.Name, err)
			continue
		}
		if !ok || !a.tracker.ShouldFire(target.Name, due) {
			continue
		}

		a.logger.Infof("[%s] schedule fired at %s", target.Name, due.Format(time.RFC3339))
		if err := a.runTarget(ctx, cfg, target); err != nil {
			a.logger.Errorf("[%s] backup failed: %v", target.Name, err)
		}
		// The instant is marked serviced even after a failure, so a broken
		// target is retried on its next firing instead of every tick.
		a.tracker.MarkFired(target.Name, due)
	}
}

// RunOnce backs up every enabled target immediately, ignoring schedules
// and the fire tracker.
func (a *App) RunOnce(ctx context.Context) error {
	targets := a.cfg.EnabledTargets()
	if len(targets) == 0 {
		a.logger.Warnf("no enabled targets configured")
		return nil
	}

	for _, target := range targets {
		if err := a.runTarget(ctx, a.cfg, target); err != nil {
			a.logger.Errorf("[%s] backup failed: %v", target.Name, err)
		}
	}
	return nil
}

func (a *App) runTarget(ctx context.Context, cfg *config.Config, target config.TargetConfig) error {
	dumper, err := database.ForTarget(&target, a.logger)
	if err != nil {
		return err
	}
	_, _, err = a.backupUsecase(cfg).Execute(ctx, target, dumper)
	return err
}

// Logger exposes the application logger to the CLI layer.
func (a *App) Logger() *logger.Logger {
	return a.logger
}

func (a *App) Shutdown() {
	a.logger.Close()
}
