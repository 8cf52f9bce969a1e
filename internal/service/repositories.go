package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/courtbooking/internal/model"
)

// Репозитории возвращают (nil, nil), если запись не найдена

type CourtRepository interface {
	Create(ctx context.Context, court *model.Court) error
	GetByID(ctx context.Context, id int64) (*model.Court, error)
	List(ctx context.Context) ([]*model.Court, error)
	Update(ctx context.Context, court *model.Court) error
	Delete(ctx context.Context, id int64) error
}

type BookingRepository interface {
	// Create возвращает repository.ErrOverlap, если БД отклонила пересечение.
	// booking.Guest без ID сохраняется атомарно с бронью, GuestID заполняется.
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id int64) (*model.Booking, error)
	GetByReference(ctx context.Context, reference string) (*model.Booking, error)
	// ListActiveByCourt активные (pending/confirmed) бронирования корта, пересекающие [from, to)
	ListActiveByCourt(ctx context.Context, courtID int64, from, to time.Time) ([]*model.Booking, error)
	ListByCourt(ctx context.Context, courtID int64, from, to time.Time) ([]*model.Booking, error)
	ListEndedBefore(ctx context.Context, status model.BookingStatus, before time.Time) ([]*model.Booking, error)
	// UpdateStatus меняет статус только если текущий равен from
	UpdateStatus(ctx context.Context, id int64, from, to model.BookingStatus) (bool, error)
	UpdatePaymentStatus(ctx context.Context, id int64, from, to model.PaymentStatus) (bool, error)
}

type GuestRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Guest, error)
}

type RecurringScheduleRepository interface {
	Create(ctx context.Context, schedule *model.RecurringSchedule) error
	GetByID(ctx context.Context, id int64) (*model.RecurringSchedule, error)
}

// CourtLocker сериализует проверку пересечений и запись для одного корта
type CourtLocker interface {
	Lock(ctx context.Context, courtID int64) (unlock func(), err error)
}
