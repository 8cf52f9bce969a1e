package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/courtbooking/internal/model"
)

var (
	ErrInvalidWindow     = errors.New("invalid booking window")
	ErrCourtUnavailable  = errors.New("court unavailable")
	ErrTimeSlotConflict  = errors.New("time slot conflict")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidRequest    = errors.New("invalid request")
)

// CourtUnavailableError окно не покрыто ни одним открытым слотом корта
type CourtUnavailableError struct {
	CourtID int64
	Weekday time.Weekday
	Start   model.TimeOfDay
	End     model.TimeOfDay
	Reason  string
}

func (e *CourtUnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("court %d unavailable on %s: %s", e.CourtID, e.Weekday, e.Reason)
	}
	return fmt.Sprintf("court %d unavailable on %s %s-%s", e.CourtID, e.Weekday, e.Start, e.End)
}

func (e *CourtUnavailableError) Unwrap() error { return ErrCourtUnavailable }

// TimeSlotConflictError окно пересекается с активным бронированием
type TimeSlotConflictError struct {
	CourtID   int64
	BookingID int64 // 0 если конфликт пойман только ограничением БД
	Start     time.Time
	End       time.Time
}

func (e *TimeSlotConflictError) Error() string {
	if e.BookingID == 0 {
		return fmt.Sprintf("court %d: time slot already taken", e.CourtID)
	}
	return fmt.Sprintf("court %d: conflicts with booking %d (%s - %s)",
		e.CourtID, e.BookingID, e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

func (e *TimeSlotConflictError) Unwrap() error { return ErrTimeSlotConflict }

// InvalidTransitionError недопустимый переход статуса или статуса оплаты
type InvalidTransitionError struct {
	Field string
	From  string
	To    string
}

func (e *InvalidTransitionError) Error() string {
	from := e.From
	if from == "" {
		from = "<new>"
	}
	return fmt.Sprintf("invalid %s transition %s -> %s", e.Field, from, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

func notFound(entity string, id any) error {
	return fmt.Errorf("%w: %s %v", ErrNotFound, entity, id)
}

func invalidWindow(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidWindow, msg)
}

func invalidRequest(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, msg)
}
