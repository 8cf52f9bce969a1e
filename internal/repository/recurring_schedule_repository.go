package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/courtbooking/internal/model"
	"github.com/Freeeeeet/courtbooking/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// RecurringScheduleRepository хранит авторские записи регулярных бронирований
type RecurringScheduleRepository struct {
	*base.Repository
	logger *zap.Logger
}

// NewRecurringScheduleRepository создаёт новый репозиторий
func NewRecurringScheduleRepository(pool *pgxpool.Pool, logger *zap.Logger) *RecurringScheduleRepository {
	return &RecurringScheduleRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// Create сохраняет шаблон серии
func (r *RecurringScheduleRepository) Create(ctx context.Context, schedule *model.RecurringSchedule) error {
	query := `
		INSERT INTO recurring_schedules (court_id, team_id, days_of_week, start_minute, end_minute, effective_from, purpose, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.Pool().QueryRow(
		ctx,
		query,
		schedule.CourtID,
		schedule.TeamID,
		weekdaysToInts(schedule.DaysOfWeek),
		int32(schedule.StartTimeOfDay),
		int32(schedule.EndTimeOfDay),
		schedule.EffectiveFrom,
		schedule.Purpose,
		schedule.CreatedBy,
	).Scan(&schedule.ID, &schedule.CreatedAt)

	if err != nil {
		return fmt.Errorf("create recurring schedule: %w", err)
	}

	r.logger.Debug("Recurring schedule stored",
		zap.Int64("recurring_schedule_id", schedule.ID),
		zap.Int64("court_id", schedule.CourtID))

	return nil
}

// GetByID получает шаблон серии по ID
func (r *RecurringScheduleRepository) GetByID(ctx context.Context, id int64) (*model.RecurringSchedule, error) {
	query := `
		SELECT id, court_id, team_id, days_of_week, start_minute, end_minute, effective_from, purpose, created_by, created_at
		FROM recurring_schedules
		WHERE id = $1
	`

	schedule := &model.RecurringSchedule{}
	var days []int32
	var startMinute, endMinute int32

	err := r.Pool().QueryRow(ctx, query, id).Scan(
		&schedule.ID,
		&schedule.CourtID,
		&schedule.TeamID,
		&days,
		&startMinute,
		&endMinute,
		&schedule.EffectiveFrom,
		&schedule.Purpose,
		&schedule.CreatedBy,
		&schedule.CreatedAt,
	)

	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get recurring schedule by id: %w", err)
	}

	schedule.DaysOfWeek = intsToWeekdays(days)
	schedule.StartTimeOfDay = model.TimeOfDay(startMinute)
	schedule.EndTimeOfDay = model.TimeOfDay(endMinute)

	return schedule, nil
}

func weekdaysToInts(days []time.Weekday) []int32 {
	out := make([]int32, len(days))
	for i, d := range days {
		out[i] = int32(d)
	}
	return out
}

func intsToWeekdays(days []int32) []time.Weekday {
	out := make([]time.Weekday, len(days))
	for i, d := range days {
		out[i] = time.Weekday(d)
	}
	return out
}
