package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingCompleter завершает подтверждённые бронирования, время которых прошло
type BookingCompleter interface {
	CompleteElapsed(ctx context.Context) (int, error)
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	scheduler gocron.Scheduler
	completer BookingCompleter
	interval  time.Duration
	logger    *zap.Logger
}

// NewScheduler создаёт новый планировщик
func NewScheduler(completer BookingCompleter, interval time.Duration, logger *zap.Logger) (*Scheduler, error) {
	sched, err := gocron.NewScheduler(
		gocron.WithGlobalJobOptions(
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					logger.Error("Scheduler job panicked",
						zap.String("job_id", jobID.String()),
						zap.String("job_name", jobName),
						zap.Any("panic", recoverData))
				}),
			),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	return &Scheduler{
		scheduler: sched,
		completer: completer,
		interval:  interval,
		logger:    logger,
	}, nil
}

// Start регистрирует задачи и запускает планировщик.
// Нулевой интервал отключает завершение бронирований.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.interval <= 0 {
		s.logger.Info("Completion sweep disabled")
		return nil
	}

	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() { s.completeElapsed(ctx) }),
		gocron.WithName("complete-elapsed-bookings"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("add completion job: %w", err)
	}

	s.logger.Info("Starting background scheduler", zap.Duration("interval", s.interval))
	s.scheduler.Start()
	return nil
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() error {
	s.logger.Info("Stopping background scheduler")
	return s.scheduler.Shutdown()
}

func (s *Scheduler) completeElapsed(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	count, err := s.completer.CompleteElapsed(ctx)
	if err != nil {
		s.logger.Error("Failed to complete elapsed bookings", zap.Error(err))
		return
	}

	if count > 0 {
		s.logger.Info("Elapsed bookings completed", zap.Int("count", count))
	}
}
