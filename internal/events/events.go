package events

import (
	"context"
	"time"

	"github.com/Freeeeeet/courtbooking/internal/model"
)

type Type string

const (
	TypeBookingCreated Type = "booking.created"
	TypeStatusChanged  Type = "booking.status_changed"
	TypePaymentChanged Type = "booking.payment_changed"
)

// BookingEvent событие жизненного цикла бронирования
type BookingEvent struct {
	Type             Type      `json:"type"`
	BookingID        int64     `json:"booking_id"`
	CourtID          int64     `json:"court_id"`
	BookingReference string    `json:"booking_reference,omitempty"`
	Purpose          string    `json:"purpose"`
	Status           string    `json:"status"`
	PreviousStatus   string    `json:"previous_status,omitempty"`
	PaymentStatus    string    `json:"payment_status"`
	PreviousPayment  string    `json:"previous_payment_status,omitempty"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	TotalPriceCents  int64     `json:"total_price_cents"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// Publisher получатель событий бронирований (Kafka, Telegram)
type Publisher interface {
	Publish(ctx context.Context, event BookingEvent) error
}

// NewBookingEvent собирает событие из текущего состояния бронирования
func NewBookingEvent(eventType Type, b *model.Booking, occurredAt time.Time) BookingEvent {
	return BookingEvent{
		Type:             eventType,
		BookingID:        b.ID,
		CourtID:          b.CourtID,
		BookingReference: b.BookingReference,
		Purpose:          string(b.Purpose),
		Status:           string(b.Status),
		PaymentStatus:    string(b.PaymentStatus),
		StartTime:        b.StartTime,
		EndTime:          b.EndTime,
		TotalPriceCents:  b.TotalPriceCents,
		OccurredAt:       occurredAt,
	}
}
