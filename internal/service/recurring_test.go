package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/courtbooking/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOccurrences(t *testing.T) {
	schedule := &model.RecurringSchedule{
		DaysOfWeek:    []time.Weekday{time.Wednesday, time.Monday},
		EffectiveFrom: at(3, 15, 0), // вторник, время суток не важно
	}

	dates := Occurrences(schedule, 2, time.UTC)
	assert.Equal(t, []time.Time{at(4, 0, 0), at(9, 0, 0), at(11, 0, 0), at(16, 0, 0)}, dates)
}

func TestOccurrences_DefaultHorizon(t *testing.T) {
	schedule := &model.RecurringSchedule{
		DaysOfWeek:    []time.Weekday{time.Saturday},
		EffectiveFrom: at(2, 0, 0),
	}

	dates := Occurrences(schedule, RecurringHorizonWeeks, time.UTC)
	require.Len(t, dates, RecurringHorizonWeeks)
	last := dates[len(dates)-1]
	assert.True(t, last.Before(at(2, 0, 0).AddDate(0, 0, RecurringHorizonWeeks*7)))
}

func TestOccurrences_UsesCalendarDateOfEffectiveFrom(t *testing.T) {
	tests := []struct {
		zone          string
		effectiveFrom time.Time
	}{
		// полночь UTC в Нью-Йорке ещё воскресенье 18 октября
		{zone: "America/New_York", effectiveFrom: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)},
		// 23:30 UTC в Москве уже вторник 20 октября
		{zone: "Europe/Moscow", effectiveFrom: time.Date(2026, 10, 19, 23, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.zone, func(t *testing.T) {
			loc, err := time.LoadLocation(tt.zone)
			require.NoError(t, err)

			schedule := &model.RecurringSchedule{
				DaysOfWeek:    []time.Weekday{time.Sunday, time.Monday},
				EffectiveFrom: tt.effectiveFrom,
			}

			assert.Equal(t, []time.Time{
				time.Date(2026, 10, 19, 0, 0, 0, 0, loc),
				time.Date(2026, 10, 25, 0, 0, 0, 0, loc),
			}, Occurrences(schedule, 1, loc))
		})
	}
}

func TestLocalDate(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	got := LocalDate(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), loc)
	assert.True(t, got.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, loc)))
	assert.Equal(t, time.Monday, got.Weekday())
}

func TestExpandSchedule_CollectsRejections(t *testing.T) {
	schedule := &model.RecurringSchedule{
		DaysOfWeek:     []time.Weekday{time.Monday},
		StartTimeOfDay: model.NewTimeOfDay(18, 0),
		EndTimeOfDay:   model.NewTimeOfDay(19, 0),
		EffectiveFrom:  at(2, 0, 0),
	}

	var calls []Window
	accept := func(_ context.Context, w Window) (*model.Booking, error) {
		calls = append(calls, w)
		switch len(calls) {
		case 2:
			return nil, &TimeSlotConflictError{CourtID: 1, BookingID: 9}
		case 3:
			return nil, &CourtUnavailableError{CourtID: 1, Weekday: time.Monday}
		case 4:
			return nil, errors.New("connection reset")
		}
		return &model.Booking{ID: int64(len(calls)), StartTime: w.Start, EndTime: w.End}, nil
	}

	result, err := expandSchedule(context.Background(), schedule, 5, time.UTC, accept)
	require.NoError(t, err)

	require.Len(t, calls, 5)
	assert.Equal(t, Window{Start: at(2, 18, 0), End: at(2, 19, 0)}, calls[0])

	require.Len(t, result.Accepted, 2)
	require.Len(t, result.Rejected, 3)
	assert.Equal(t, ReasonBookingConflict, result.Rejected[0].Reason)
	assert.Equal(t, at(9, 0, 0), result.Rejected[0].Date)
	assert.Equal(t, ReasonAvailabilityClosed, result.Rejected[1].Reason)
	assert.Equal(t, ReasonError, result.Rejected[2].Reason)
}

func TestExpandSchedule_StopsOnCancelledContext(t *testing.T) {
	schedule := &model.RecurringSchedule{
		DaysOfWeek:     []time.Weekday{time.Monday},
		StartTimeOfDay: model.NewTimeOfDay(18, 0),
		EndTimeOfDay:   model.NewTimeOfDay(19, 0),
		EffectiveFrom:  at(2, 0, 0),
	}

	ctx, cancel := context.WithCancel(context.Background())
	accept := func(_ context.Context, w Window) (*model.Booking, error) {
		cancel()
		return &model.Booking{StartTime: w.Start, EndTime: w.End}, nil
	}

	result, err := expandSchedule(ctx, schedule, 4, time.UTC, accept)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, result.Accepted, 1)
}
