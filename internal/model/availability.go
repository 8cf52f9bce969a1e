package model

import (
	"fmt"
	"sort"
	"time"
)

// MinutesPerDay конец суток, допустим только как конец слота
const MinutesPerDay = 24 * 60

// TimeOfDay время суток в минутах от локальной полуночи (0..1440)
type TimeOfDay int

// NewTimeOfDay создаёт время суток из часов и минут
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// ParseTimeOfDay разбирает строку формата HH:MM
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	if hour < 0 || minute < 0 || minute > 59 || hour > 24 || (hour == 24 && minute != 0) {
		return 0, fmt.Errorf("parse time of day %q: out of range", s)
	}
	return NewTimeOfDay(hour, minute), nil
}

// ClockOf возвращает время суток момента t в его локации (секунды отбрасываются)
func ClockOf(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute())
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// Valid проверяет что значение лежит в пределах суток
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t <= MinutesPerDay
}

// On возвращает абсолютный момент для даты date (берутся год, месяц и день в loc)
func (t TimeOfDay) On(date time.Time, loc *time.Location) time.Time {
	d := date.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, loc)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// TimeSlot открытое окно корта внутри одного дня, [Start, End)
type TimeSlot struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// Contains проверяет что окно [start, end) целиком внутри слота
func (s TimeSlot) Contains(start, end TimeOfDay) bool {
	return start >= s.Start && end <= s.End
}

func (s TimeSlot) String() string {
	return s.Start.String() + "-" + s.End.String()
}

func (s TimeSlot) validate() error {
	if !s.Start.Valid() || !s.End.Valid() || s.Start >= MinutesPerDay {
		return fmt.Errorf("slot %s: time out of range", s)
	}
	if s.Start >= s.End {
		return fmt.Errorf("slot %s: start must be before end", s)
	}
	return nil
}

// Availability недельный шаблон открытых окон корта
type Availability map[time.Weekday][]TimeSlot

// SlotsFor возвращает упорядоченные слоты дня недели.
// Пустой результат означает что в этот день корт не бронируется.
func (a Availability) SlotsFor(weekday time.Weekday) []TimeSlot {
	slots := a[weekday]
	if len(slots) == 0 {
		return []TimeSlot{}
	}

	out := make([]TimeSlot, len(slots))
	copy(out, slots)
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// Covers проверяет что окно [start, end) целиком лежит в одном из слотов дня
func (a Availability) Covers(weekday time.Weekday, start, end TimeOfDay) bool {
	for _, slot := range a[weekday] {
		if slot.Contains(start, end) {
			return true
		}
	}
	return false
}

// Validate проверяет корректность слотов и отсутствие пересечений внутри дня
// Вызывается при каждой записи шаблона
func (a Availability) Validate() error {
	for weekday := range a {
		if weekday < time.Sunday || weekday > time.Saturday {
			return fmt.Errorf("unknown weekday %d", weekday)
		}

		sorted := a.SlotsFor(weekday)
		for i, slot := range sorted {
			if err := slot.validate(); err != nil {
				return fmt.Errorf("%s: %w", weekday, err)
			}
			if i > 0 && slot.Start < sorted[i-1].End {
				return fmt.Errorf("%s: slot %s overlaps %s", weekday, slot, sorted[i-1])
			}
		}
	}
	return nil
}
