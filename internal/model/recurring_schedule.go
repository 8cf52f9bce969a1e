package model

import (
	"time"
)

// RecurringSchedule авторская запись регулярного бронирования.
// После развёртки живыми остаются только созданные Booking, шаблон
// не ограничивает их дальнейшие изменения.
type RecurringSchedule struct {
	ID             int64          `json:"id"`
	CourtID        int64          `json:"court_id"`
	TeamID         *int64         `json:"team_id"`
	DaysOfWeek     []time.Weekday `json:"days_of_week"`
	StartTimeOfDay TimeOfDay      `json:"start_time_of_day"`
	EndTimeOfDay   TimeOfDay      `json:"end_time_of_day"`
	EffectiveFrom  time.Time      `json:"effective_from"` // дата, время суток игнорируется
	Purpose        BookingPurpose `json:"purpose"`
	CreatedBy      *int64         `json:"created_by"`
	CreatedAt      time.Time      `json:"created_at"`
}

// HasWeekday проверяет входит ли день недели в расписание
func (s *RecurringSchedule) HasWeekday(weekday time.Weekday) bool {
	for _, d := range s.DaysOfWeek {
		if d == weekday {
			return true
		}
	}
	return false
}
