package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/padelyzer/booking-backend/internal/app"
	"github.com/padelyzer/booking-backend/internal/config"
	"github.com/padelyzer/booking-backend/internal/db"
	"github.com/padelyzer/booking-backend/internal/pricing"
)

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}
	if !cfg.IsProduction {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setupLogger(cfg)

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to db")
	}
	defer pool.Close()

	peakMultiplier, err := decimal.NewFromString(cfg.PeakMultiplier)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.PeakMultiplier).Msg("invalid PEAK_MULTIPLIER")
	}

	container := app.NewContainer(app.Config{
		DBPool:      pool,
		Logger:      log.Logger,
		NoShowGrace: cfg.NoShowGrace,
		PeakWindow: pricing.PeakWindow{
			Start: time.Duration(cfg.PeakStartHour) * time.Hour,
			End:   time.Duration(cfg.PeakEndHour) * time.Hour,
		},
		PeakMultiplier:      peakMultiplier,
		DefaultSlotDuration: time.Duration(cfg.DefaultSlotMinutes) * time.Minute,
		DefaultStep:         time.Duration(cfg.DefaultStepMinutes) * time.Minute,
	})

	scheduler, err := gocron.NewScheduler(
		gocron.WithGlobalJobOptions(
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					log.Error().
						Str("job_id", jobID.String()).
						Str("job_name", jobName).
						Interface("panic", recoverData).
						Msg("sweeper job panicked")
				}),
			),
		),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create scheduler")
	}

	_, err = scheduler.NewJob(
		gocron.CronJob(cfg.NoShowSweepCron, false),
		gocron.NewTask(func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			ids, err := container.Reservations.MarkNoShows(jobCtx)
			if err != nil {
				log.Error().Err(err).Msg("no-show sweep failed")
				return
			}
			log.Debug().Int("count", len(ids)).Msg("no-show sweep completed")
		}),
		gocron.WithName("no_show_sweep"),
	)
	if err != nil {
		log.Fatal().Err(err).Str("cron", cfg.NoShowSweepCron).Msg("failed to register sweep job")
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("cron", cfg.NoShowSweepCron).Msg("no-show sweeper running")
		scheduler.Start()
		<-ctx.Done()
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutdown signal received")
		return scheduler.Shutdown()
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("sweeper shutdown error")
	}
	log.Info().Msg("sweeper exited gracefully")
}
