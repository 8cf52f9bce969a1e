package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/courtbooking/internal/model"
	"github.com/Freeeeeet/courtbooking/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingColumns = `
	id, court_id, start_time, end_time, purpose, team_id, user_id, guest_id,
	is_guest_booking, COALESCE(booking_reference, ''), status, payment_status,
	total_price_cents, recurring_schedule_id, created_at, updated_at
`

type BookingRepository struct {
	*base.Repository
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт бронирование. Запись по одному корту сериализуется
// advisory-локом транзакции, пересечение активных окон дополнительно
// запрещено ограничением bookings_no_overlap. Нарушение возвращается как ErrOverlap.
// Если у брони есть booking.Guest без ID, гость создаётся в той же транзакции
// и откатывается вместе с отклонённой бронью.
func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	guestCreated := false
	err := r.RunInTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, booking.CourtID); err != nil {
			return fmt.Errorf("lock court: %w", err)
		}

		if booking.Guest != nil && booking.GuestID == nil {
			if err := insertGuest(ctx, tx, booking.Guest); err != nil {
				return err
			}
			booking.GuestID = &booking.Guest.ID
			guestCreated = true
		}

		query := `
			INSERT INTO bookings (
				court_id, start_time, end_time, purpose, team_id, user_id, guest_id,
				is_guest_booking, booking_reference, status, payment_status,
				total_price_cents, recurring_schedule_id
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11, $12, $13)
			RETURNING id, created_at, updated_at
		`

		return tx.QueryRow(ctx, query,
			booking.CourtID,
			booking.StartTime,
			booking.EndTime,
			booking.Purpose,
			booking.TeamID,
			booking.UserID,
			booking.GuestID,
			booking.IsGuestBooking,
			booking.BookingReference,
			booking.Status,
			booking.PaymentStatus,
			booking.TotalPriceCents,
			booking.RecurringScheduleID,
		).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	})

	if err != nil {
		if guestCreated {
			booking.Guest.ID = 0
			booking.GuestID = nil
		}
		if base.IsExclusionViolation(err) {
			return ErrOverlap
		}
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

// GetByID получает бронирование по ID
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.Pool().QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}

	return booking, nil
}

// GetByReference получает гостевое бронирование по коду
func (r *BookingRepository) GetByReference(ctx context.Context, reference string) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_reference = $1`

	booking, err := scanBooking(r.Pool().QueryRow(ctx, query, reference))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by reference: %w", err)
	}

	return booking, nil
}

// ListActiveByCourt активные бронирования корта, пересекающие [from, to)
func (r *BookingRepository) ListActiveByCourt(ctx context.Context, courtID int64, from, to time.Time) ([]*model.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE court_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND start_time < $3
		  AND end_time > $2
		ORDER BY start_time
	`

	return r.list(ctx, query, courtID, from, to)
}

// ListByCourt все бронирования корта в интервале, включая отменённые
func (r *BookingRepository) ListByCourt(ctx context.Context, courtID int64, from, to time.Time) ([]*model.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE court_id = $1
		  AND start_time < $3
		  AND end_time > $2
		ORDER BY start_time, id
	`

	return r.list(ctx, query, courtID, from, to)
}

// ListEndedBefore бронирования в статусе status, закончившиеся до before
func (r *BookingRepository) ListEndedBefore(ctx context.Context, status model.BookingStatus, before time.Time) ([]*model.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = $1
		  AND end_time <= $2
		ORDER BY end_time
	`

	return r.list(ctx, query, status, before)
}

// UpdateStatus меняет статус, только если текущий равен from
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, from, to model.BookingStatus) (bool, error) {
	query := `
		UPDATE bookings
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	affected, err := r.ExecAffected(ctx, query, id, from, to)
	if err != nil {
		return false, fmt.Errorf("update booking status: %w", err)
	}

	return affected == 1, nil
}

// UpdatePaymentStatus меняет статус оплаты, только если текущий равен from
func (r *BookingRepository) UpdatePaymentStatus(ctx context.Context, id int64, from, to model.PaymentStatus) (bool, error) {
	query := `
		UPDATE bookings
		SET payment_status = $3, updated_at = NOW()
		WHERE id = $1 AND payment_status = $2
	`

	affected, err := r.ExecAffected(ctx, query, id, from, to)
	if err != nil {
		return false, fmt.Errorf("update payment status: %w", err)
	}

	return affected == 1, nil
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...interface{}) ([]*model.Booking, error) {
	rows, err := r.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*model.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var booking model.Booking
	err := row.Scan(
		&booking.ID,
		&booking.CourtID,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Purpose,
		&booking.TeamID,
		&booking.UserID,
		&booking.GuestID,
		&booking.IsGuestBooking,
		&booking.BookingReference,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.TotalPriceCents,
		&booking.RecurringScheduleID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
