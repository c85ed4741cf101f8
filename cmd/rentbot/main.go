package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/skaterent/rentbot/internal/audit"
	"github.com/skaterent/rentbot/internal/config"
	"github.com/skaterent/rentbot/internal/db"
	"github.com/skaterent/rentbot/internal/kafka"
	"github.com/skaterent/rentbot/internal/logger"
	"github.com/skaterent/rentbot/internal/metrics"
	"github.com/skaterent/rentbot/internal/opsserver"
	"github.com/skaterent/rentbot/internal/ratelimit"
	"github.com/skaterent/rentbot/internal/report"
	"github.com/skaterent/rentbot/internal/repository/postgresql"
	"github.com/skaterent/rentbot/internal/scheduler"
	"github.com/skaterent/rentbot/internal/session"
	"github.com/skaterent/rentbot/internal/storage"
	"github.com/skaterent/rentbot/internal/telegram"
	"github.com/skaterent/rentbot/internal/wizard"
	"github.com/skaterent/rentbot/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	envFile := config.LoadEnvFile()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Configuration error:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	defer log.Sync()

	if envFile != "" {
		log.Info("Loaded environment file", zap.String("path", envFile))
	}

	if err := run(cfg, log); err != nil {
		log.Fatal("rentbot stopped with error", zap.Error(err))
	}
	log.Info("rentbot gracefully stopped")
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	database, err := db.NewDb(ctx, db.Options{
		Host:         cfg.DB.Host,
		Port:         cfg.DB.Port,
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Name:         cfg.DB.Name,
		QueryTimeout: cfg.DB.QueryTimeout,
	}, log)
	if err != nil {
		return fmt.Errorf("database init: %w", err)
	}
	defer database.Close()

	if cfg.DB.AutoMigrate {
		if err := migrations.Apply(ctx, database, log); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	}

	var producer kafka.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer = kafka.NewWriterProducer(cfg.Kafka.Brokers, log)
	} else {
		log.Info("KAFKA_BROKERS not set, events go to the log")
		producer = kafka.NewLogProducer(log)
	}
	defer producer.Close()

	outbox := postgresql.NewOutboxTaskRepo(database)
	publisher := kafka.NewPublisher(outbox, producer, kafka.PublisherConfig{
		PollInterval: cfg.Outbox.PollInterval,
		BatchSize:    cfg.Outbox.BatchSize,
		MaxAttempts:  cfg.Outbox.MaxAttempts,
		Lease:        cfg.Outbox.Lease,
	}, log)

	updatesAudit := audit.NewManager(audit.Config{Topic: cfg.Kafka.UpdatesTopic}, producer, log)
	// Shutdown, not the signal, ends the manager so late events still drain.
	updatesAudit.Start(context.Background())

	rentals := storage.NewRentalStorage(
		database,
		postgresql.NewCustomerRepo(database),
		postgresql.NewInventoryRepo(database),
		postgresql.NewRentalRepo(database),
		postgresql.NewActionLogRepo(database),
		outbox,
		storage.Options{
			HourlyRate:       cfg.Rental.HourlyRate,
			MaxActiveRentals: cfg.Rental.MaxActiveRentals,
			Topic:            cfg.Kafka.Topic,
		},
		log,
	)

	generator, err := report.NewGenerator(postgresql.NewReportRepo(database), cfg.Reports.Dir, log)
	if err != nil {
		return fmt.Errorf("report generator: %w", err)
	}

	sessions := session.NewStore[wizard.State](metrics.ActiveSessions)
	machine := wizard.New(rentals, generator, sessions, wizard.Options{
		Admins:         cfg.Bot.AdminIDs,
		SupportContact: cfg.Bot.SupportContact,
		FileRetention:  cfg.Reports.FileRetention,
	}, log)

	var limiter telegram.Limiter
	if cfg.Redis.URL != "" {
		client, err := ratelimit.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer client.Close()
		limiter = ratelimit.New(client, cfg.Redis.RateLimit, cfg.Redis.RateWindow, log)
		log.Info("Rate limiting enabled", zap.Int("limit", cfg.Redis.RateLimit), zap.Duration("window", cfg.Redis.RateWindow))
	}

	api, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		return fmt.Errorf("telegram: %w", err)
	}
	api.Debug = cfg.Bot.Debug
	log.Info("Authorized on Telegram", zap.String("account", api.Self.UserName))

	bot := telegram.NewBot(api, machine, limiter, updatesAudit, telegram.Options{HandlerTimeout: cfg.Bot.HandlerTimeout}, log)

	jobs := scheduler.NewJobRunner(rentals, generator, sessions, scheduler.JobConfig{
		LogRetention:  time.Duration(cfg.Retention.LogRetentionDays) * 24 * time.Hour,
		FileRetention: cfg.Reports.FileRetention,
		SessionIdle:   cfg.Bot.SessionIdle,
	}, log)
	sched, err := scheduler.New(jobs, scheduler.Specs{
		CleanupLogs:   cfg.Retention.CleanupLogsCron,
		CleanupFiles:  cfg.Retention.CleanupFilesCron,
		SweepSessions: cfg.Retention.SweepSessionsCron,
	}, log)
	if err != nil {
		return err
	}

	ops := opsserver.New(database, cfg.OpsAddr, log)

	sched.Start()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return bot.Run(gctx)
	})
	g.Go(func() error {
		return publisher.Run(gctx)
	})
	g.Go(func() error {
		return ops.Run()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		publisher.Shutdown(shutdownCtx)
		return ops.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	log.Info("Shutting down")

	sched.Stop()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	updatesAudit.Shutdown(shutdownCtx)

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
