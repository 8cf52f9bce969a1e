package service

import (
	"context"
	"errors"
	"time"

	"github.com/Freeeeeet/courtbooking/internal/model"
)

// RecurringHorizonWeeks сколько недель вперёд от EffectiveFrom разворачивается
// регулярное бронирование. Продуктовое решение: серия "каждую неделю навсегда"
// материализуется на фиксированный срок, а не открытым рядом.
const RecurringHorizonWeeks = 52

type RejectionReason string

const (
	ReasonAvailabilityClosed RejectionReason = "availability_closed"
	ReasonBookingConflict    RejectionReason = "booking_conflict"
	ReasonInvalidWindow      RejectionReason = "invalid_window"
	ReasonError              RejectionReason = "error"
)

// RejectedOccurrence дата, которую не удалось забронировать, и причина
type RejectedOccurrence struct {
	Date   time.Time       `json:"date"`
	Reason RejectionReason `json:"reason"`
	Err    error           `json:"-"`
}

// RecurringResult частичный результат развёртки: серия не "всё или ничего"
type RecurringResult struct {
	Schedule *model.RecurringSchedule `json:"schedule"`
	Accepted []*model.Booking         `json:"accepted"`
	Rejected []RejectedOccurrence     `json:"rejected"`
}

// Occurrences возвращает даты (локальная полночь) в горизонте
// [EffectiveFrom, EffectiveFrom + horizonWeeks недель), у которых день недели
// входит в расписание
func Occurrences(schedule *model.RecurringSchedule, horizonWeeks int, loc *time.Location) []time.Time {
	first := LocalDate(schedule.EffectiveFrom, loc)
	days := horizonWeeks * 7

	var dates []time.Time
	for i := 0; i < days; i++ {
		date := first.AddDate(0, 0, i)
		if schedule.HasWeekday(date.Weekday()) {
			dates = append(dates, date)
		}
	}
	return dates
}

// LocalDate полночь в loc для календарной даты t. Берутся год, месяц и день
// самого t без перевода в loc: DATE из БД приходит полночью UTC.
func LocalDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// acceptFunc путь принятия одиночного бронирования
type acceptFunc func(ctx context.Context, w Window) (*model.Booking, error)

// expandSchedule последовательно отправляет каждое вхождение в accept.
// Ошибка одного вхождения не останавливает остальные.
func expandSchedule(ctx context.Context, schedule *model.RecurringSchedule, horizonWeeks int, loc *time.Location, accept acceptFunc) (*RecurringResult, error) {
	result := &RecurringResult{Schedule: schedule}

	for _, date := range Occurrences(schedule, horizonWeeks, loc) {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		w := Window{
			Start: schedule.StartTimeOfDay.On(date, loc),
			End:   schedule.EndTimeOfDay.On(date, loc),
		}

		booking, err := accept(ctx, w)
		if err != nil {
			result.Rejected = append(result.Rejected, RejectedOccurrence{
				Date:   date,
				Reason: rejectionReason(err),
				Err:    err,
			})
			continue
		}
		result.Accepted = append(result.Accepted, booking)
	}

	return result, nil
}

func rejectionReason(err error) RejectionReason {
	switch {
	case errors.Is(err, ErrCourtUnavailable):
		return ReasonAvailabilityClosed
	case errors.Is(err, ErrTimeSlotConflict):
		return ReasonBookingConflict
	case errors.Is(err, ErrInvalidWindow):
		return ReasonInvalidWindow
	}
	return ReasonError
}
