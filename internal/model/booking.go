package model

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"   // Ожидает подтверждения администратором
	BookingStatusConfirmed BookingStatus = "confirmed" // Подтверждено
	BookingStatusCancelled BookingStatus = "cancelled" // Отменено
	BookingStatusCompleted BookingStatus = "completed" // Завершено
)

// Blocking возвращает true для статусов, которые занимают корт
func (s BookingStatus) Blocking() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// Terminal возвращает true для статусов без исходящих переходов
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusCompleted
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPaid, PaymentStatusRefunded:
		return true
	}
	return false
}

type BookingPurpose string

const (
	PurposeRental   BookingPurpose = "rental"
	PurposeTraining BookingPurpose = "training"
	PurposeMatch    BookingPurpose = "match"
	PurposeOther    BookingPurpose = "other"
)

func (p BookingPurpose) Valid() bool {
	switch p {
	case PurposeRental, PurposeTraining, PurposeMatch, PurposeOther:
		return true
	}
	return false
}

// AllowsTeam команда имеет смысл только для тренировок и матчей
func (p BookingPurpose) AllowsTeam() bool {
	return p == PurposeTraining || p == PurposeMatch
}

type Booking struct {
	ID                  int64          `json:"id"`
	CourtID             int64          `json:"court_id"`
	StartTime           time.Time      `json:"start_time"`
	EndTime             time.Time      `json:"end_time"`
	Purpose             BookingPurpose `json:"purpose"`
	TeamID              *int64         `json:"team_id"`
	UserID              *int64         `json:"user_id"`
	GuestID             *int64         `json:"guest_id"`
	IsGuestBooking      bool           `json:"is_guest_booking"`
	BookingReference    string         `json:"booking_reference"`
	Status              BookingStatus  `json:"status"`
	PaymentStatus       PaymentStatus  `json:"payment_status"`      // имеет смысл только для аренды
	TotalPriceCents     int64          `json:"total_price_cents"`   // считается один раз при создании
	RecurringScheduleID *int64         `json:"recurring_schedule_id"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`

	// Заполняется сервисом при создании и при поиске по коду, в таблице bookings нет
	Guest *Guest `json:"guest,omitempty"`
}

// Duration длительность бронирования
func (b *Booking) Duration() time.Duration {
	return b.EndTime.Sub(b.StartTime)
}
