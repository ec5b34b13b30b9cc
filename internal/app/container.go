package app

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/padelyzer/booking-backend/internal/availability"
	"github.com/padelyzer/booking-backend/internal/block"
	"github.com/padelyzer/booking-backend/internal/client"
	"github.com/padelyzer/booking-backend/internal/club"
	"github.com/padelyzer/booking-backend/internal/court"
	"github.com/padelyzer/booking-backend/internal/pricing"
	"github.com/padelyzer/booking-backend/internal/reservation"
)

// Config holds the dependencies and settings required to wire the modules.
type Config struct {
	DBPool         *pgxpool.Pool
	Logger         zerolog.Logger
	NoShowGrace    time.Duration
	PeakWindow     pricing.PeakWindow
	PeakMultiplier decimal.Decimal

	// Fallbacks for availability queries that leave duration or step unset.
	DefaultSlotDuration time.Duration
	DefaultStep         time.Duration

	// Notifier and Payments default to logging implementations when nil;
	// the embedding layer injects real collaborators.
	Notifier reservation.Notifier
	Payments reservation.PaymentProcessor
}

// Container holds the initialized services that are needed externally.
type Container struct {
	Clubs        club.Service
	Courts       court.Service
	Clients      client.Service
	Blocks       block.Service
	Reservations *reservation.Manager
	Availability availability.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	if cfg.Notifier == nil {
		cfg.Notifier = reservation.LogNotifier{Log: cfg.Logger}
	}
	if cfg.Payments == nil {
		cfg.Payments = reservation.LogPayments{Log: cfg.Logger}
	}
	if cfg.PeakWindow == (pricing.PeakWindow{}) {
		cfg.PeakWindow = pricing.DefaultPeakWindow
	}
	if cfg.PeakMultiplier.IsZero() {
		cfg.PeakMultiplier = decimal.NewFromInt(1)
	}

	pricer := pricing.NewCalculator(cfg.PeakWindow, cfg.PeakMultiplier)

	// Club Module
	clubRepo := club.NewPgxRepository(cfg.DBPool)
	clubService := club.NewService(clubRepo, cfg.Logger)

	// Court Module
	courtRepo := court.NewPgxRepository(cfg.DBPool)
	courtService := court.NewService(courtRepo, clubService)

	// Client Module
	clientRepo := client.NewPgxRepository(cfg.DBPool)
	clientService := client.NewService(clientRepo)

	// Blocked Slot Module
	blockRepo := block.NewPgxRepository(cfg.DBPool)
	blockService := block.NewService(blockRepo)

	// Reservation Module
	resRepo := reservation.NewPgxRepository(cfg.DBPool)
	checker := reservation.NewChecker(resRepo, blockRepo)
	manager := reservation.NewManager(reservation.ManagerParams{
		Repo:        resRepo,
		Checker:     checker,
		Courts:      courtService,
		Clubs:       clubService,
		Pricer:      pricer,
		Notifier:    cfg.Notifier,
		Payments:    cfg.Payments,
		NoShowGrace: cfg.NoShowGrace,
		Logger:      cfg.Logger,
	})

	// Availability Module
	availService := availability.NewService(courtService, clubService, checker, pricer,
		availability.Defaults{SlotDuration: cfg.DefaultSlotDuration, Step: cfg.DefaultStep},
		cfg.Logger)

	return &Container{
		Clubs:        clubService,
		Courts:       courtService,
		Clients:      clientService,
		Blocks:       blockService,
		Reservations: manager,
		Availability: availService,
	}
}
