package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/courtbooking/internal/app"
	"github.com/Freeeeeet/courtbooking/internal/config"
	"github.com/Freeeeeet/courtbooking/internal/controller"
	"github.com/Freeeeeet/courtbooking/internal/events"
	"github.com/Freeeeeet/courtbooking/internal/lock"
	"github.com/Freeeeeet/courtbooking/internal/notify"
	"github.com/Freeeeeet/courtbooking/internal/repository"
	"github.com/Freeeeeet/courtbooking/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, envLoaded, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Application stopped with error", zap.Error(err))
	}

	logger.Info("Application stopped", zap.Bool("env_file_loaded", envLoaded))
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	location, err := cfg.Location()
	if err != nil {
		return err
	}

	logger.Info("Starting court booking service",
		zap.String("environment", cfg.Environment),
		zap.String("timezone", location.String()),
		zap.Int("recurring_horizon_weeks", cfg.RecurringHorizonWeeks))

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		migrator.Close()
		return err
	}
	migrator.Close()

	// Репозитории
	courtRepo := repository.NewCourtRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	guestRepo := repository.NewGuestRepository(pool)
	recurringRepo := repository.NewRecurringScheduleRepository(pool, logger)

	// Блокировка кортов: Redis при нескольких репликах, иначе внутри процесса
	var locker service.CourtLocker
	if cfg.RedisEnabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			return err
		}
		locker = lock.NewRedisLocker(client, cfg.CourtLockTTL, logger)
		logger.Info("Using redis court locker", zap.String("addr", cfg.RedisAddr))
	} else {
		locker = lock.NewLocalLocker()
		logger.Info("Using in-process court locker")
	}

	// Получатели событий
	var publishers []events.Publisher
	if cfg.KafkaEnabled() {
		kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaBookingTopic, logger)
		defer kafkaPublisher.Close()
		publishers = append(publishers, kafkaPublisher)
	}

	var botInstance *bot.Bot
	if cfg.TelegramEnabled() {
		botInstance, err = bot.New(cfg.TelegramToken)
		if err != nil {
			return err
		}
		if cfg.TelegramNotifyChatID != 0 {
			publishers = append(publishers, notify.NewTelegramNotifier(botInstance, cfg.TelegramNotifyChatID, location, logger))
		}
	}

	// Сервисы
	courtService := service.NewCourtService(courtRepo, logger)
	bookingService := service.NewBookingService(
		courtRepo,
		bookingRepo,
		guestRepo,
		recurringRepo,
		locker,
		logger,
		service.WithLocation(location),
		service.WithRecurringHorizon(cfg.RecurringHorizonWeeks),
		service.WithPublishers(publishers...),
	)

	scheduler, err := app.NewScheduler(bookingService, cfg.CompletionSweepInterval, logger)
	if err != nil {
		return err
	}
	if err := scheduler.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := scheduler.Stop(); err != nil {
			logger.Error("Failed to stop scheduler", zap.Error(err))
		}
	}()

	if botInstance == nil {
		logger.Info("TELEGRAM_TOKEN is not set, running without bot")
		<-ctx.Done()
		return nil
	}

	botController := controller.NewBotController(botInstance, courtService, bookingService, location, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		return err
	}

	botController.Start(ctx)
	return nil
}
