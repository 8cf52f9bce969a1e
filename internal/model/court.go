package model

import "time"

type Court struct {
	ID              int64        `json:"id"`
	Name            string       `json:"name"`
	HourlyRateCents int64        `json:"hourly_rate_cents"` // в центах, только для расчёта цены
	Availability    Availability `json:"availability"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// SlotsFor возвращает открытые окна корта на день недели
func (c *Court) SlotsFor(weekday time.Weekday) []TimeSlot {
	return c.Availability.SlotsFor(weekday)
}
