package service

import (
	"time"

	"github.com/Freeeeeet/courtbooking/internal/model"
)

// Window полуинтервал [Start, End) в абсолютном времени
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps единственное определение пересечения для записи и чтения.
// Касание концами (candidate.Start == existing.End) пересечением не считается.
func Overlaps(candidate, existing Window) bool {
	return candidate.Start.Before(existing.End) && candidate.End.After(existing.Start)
}

// FindConflict возвращает первое активное бронирование, пересекающееся с окном.
// Отменённые и завершённые бронирования корт не занимают.
func FindConflict(candidate Window, existing []*model.Booking) *model.Booking {
	for _, b := range existing {
		if !b.Status.Blocking() {
			continue
		}
		if Overlaps(candidate, Window{Start: b.StartTime, End: b.EndTime}) {
			return b
		}
	}
	return nil
}

// LocalWindow проекция окна на настенные часы площадки
type LocalWindow struct {
	Date    time.Time // локальная полночь дня начала
	Weekday time.Weekday
	Start   model.TimeOfDay
	End     model.TimeOfDay
}

// ToLocalWindow переводит окно в локальное время суток.
// ok == false если окно переходит через полночь; конец ровно в 00:00
// следующего дня считается концом суток (24:00).
func ToLocalWindow(w Window, loc *time.Location) (LocalWindow, bool) {
	start := w.Start.In(loc)
	end := w.End.In(loc)
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)

	lw := LocalWindow{
		Date:    day,
		Weekday: start.Weekday(),
		Start:   model.ClockOf(start),
	}

	switch {
	case sameDate(start, end):
		lw.End = model.ClockOf(end)
	case end.Equal(day.AddDate(0, 0, 1)):
		lw.End = model.MinutesPerDay
	default:
		return lw, false
	}
	return lw, true
}

// CheckAvailability проверяет что окно целиком внутри открытого слота корта
func CheckAvailability(court *model.Court, w Window, loc *time.Location) error {
	lw, ok := ToLocalWindow(w, loc)
	if !ok {
		return &CourtUnavailableError{
			CourtID: court.ID,
			Weekday: lw.Weekday,
			Reason:  "booking crosses midnight",
		}
	}

	if !court.Availability.Covers(lw.Weekday, lw.Start, lw.End) {
		return &CourtUnavailableError{
			CourtID: court.ID,
			Weekday: lw.Weekday,
			Start:   lw.Start,
			End:     lw.End,
		}
	}
	return nil
}

// FreeWindows вычитает занятые окна из открытых слотов дня
func FreeWindows(slots []model.TimeSlot, day time.Time, loc *time.Location, busy []*model.Booking, notBefore time.Time) []Window {
	var free []Window
	for _, slot := range slots {
		open := []Window{{Start: slot.Start.On(day, loc), End: slot.End.On(day, loc)}}

		for _, b := range busy {
			if !b.Status.Blocking() {
				continue
			}
			open = subtract(open, Window{Start: b.StartTime, End: b.EndTime})
		}

		for _, w := range open {
			if w.Start.Before(notBefore) {
				w.Start = notBefore
			}
			if w.Start.Before(w.End) {
				free = append(free, w)
			}
		}
	}
	return free
}

func subtract(windows []Window, busy Window) []Window {
	out := make([]Window, 0, len(windows)+1)
	for _, w := range windows {
		if !Overlaps(w, busy) {
			out = append(out, w)
			continue
		}
		if w.Start.Before(busy.Start) {
			out = append(out, Window{Start: w.Start, End: busy.Start})
		}
		if busy.End.Before(w.End) {
			out = append(out, Window{Start: busy.End, End: w.End})
		}
	}
	return out
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
