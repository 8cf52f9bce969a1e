package service

import (
	"context"
	"sync"
	"time"

	"github.com/Freeeeeet/courtbooking/internal/events"
	"github.com/Freeeeeet/courtbooking/internal/model"
	"github.com/Freeeeeet/courtbooking/internal/repository"
)

type memCourtRepo struct {
	mu     sync.Mutex
	nextID int64
	courts map[int64]model.Court
}

func newMemCourtRepo() *memCourtRepo {
	return &memCourtRepo{courts: make(map[int64]model.Court)}
}

func (r *memCourtRepo) Create(_ context.Context, court *model.Court) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	court.ID = r.nextID
	r.courts[court.ID] = *court
	return nil
}

func (r *memCourtRepo) GetByID(_ context.Context, id int64) (*model.Court, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	court, ok := r.courts[id]
	if !ok {
		return nil, nil
	}
	return &court, nil
}

func (r *memCourtRepo) List(_ context.Context) ([]*model.Court, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Court
	for id := int64(1); id <= r.nextID; id++ {
		if court, ok := r.courts[id]; ok {
			out = append(out, &court)
		}
	}
	return out, nil
}

func (r *memCourtRepo) Update(_ context.Context, court *model.Court) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.courts[court.ID] = *court
	return nil
}

func (r *memCourtRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.courts, id)
	return nil
}

// memBookingRepo повторяет поведение таблицы bookings, включая ограничение
// на пересечение активных окон одного корта
type memBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings []model.Booking

	// skipList прячет существующие брони от ListActiveByCourt, чтобы
	// проверить срабатывание ограничения хранилища
	skipList bool

	// guests получает гостя только вместе с успешно созданной бронью
	guests *memGuestRepo
}

func newMemBookingRepo(guests *memGuestRepo) *memBookingRepo {
	return &memBookingRepo{guests: guests}
}

func (r *memBookingRepo) Create(_ context.Context, booking *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if booking.Status.Blocking() {
		for _, b := range r.bookings {
			if b.CourtID == booking.CourtID && b.Status.Blocking() &&
				b.StartTime.Before(booking.EndTime) && b.EndTime.After(booking.StartTime) {
				return repository.ErrOverlap
			}
		}
	}

	if booking.Guest != nil && booking.GuestID == nil {
		r.guests.create(booking.Guest)
		booking.GuestID = &booking.Guest.ID
	}

	r.nextID++
	booking.ID = r.nextID
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt

	stored := *booking
	stored.Guest = nil
	r.bookings = append(r.bookings, stored)
	return nil
}

func (r *memBookingRepo) GetByID(_ context.Context, id int64) (*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, nil
}

func (r *memBookingRepo) GetByReference(_ context.Context, reference string) (*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.BookingReference != "" && b.BookingReference == reference {
			return &b, nil
		}
	}
	return nil, nil
}

func (r *memBookingRepo) ListActiveByCourt(_ context.Context, courtID int64, from, to time.Time) ([]*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.skipList {
		return nil, nil
	}
	var out []*model.Booking
	for _, b := range r.bookings {
		if b.CourtID == courtID && b.Status.Blocking() && b.StartTime.Before(to) && b.EndTime.After(from) {
			b := b
			out = append(out, &b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) ListByCourt(_ context.Context, courtID int64, from, to time.Time) ([]*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Booking
	for _, b := range r.bookings {
		if b.CourtID == courtID && b.StartTime.Before(to) && b.EndTime.After(from) {
			b := b
			out = append(out, &b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) ListEndedBefore(_ context.Context, status model.BookingStatus, before time.Time) ([]*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Booking
	for _, b := range r.bookings {
		if b.Status == status && !b.EndTime.After(before) {
			b := b
			out = append(out, &b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) UpdateStatus(_ context.Context, id int64, from, to model.BookingStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.bookings {
		if r.bookings[i].ID == id && r.bookings[i].Status == from {
			r.bookings[i].Status = to
			return true, nil
		}
	}
	return false, nil
}

func (r *memBookingRepo) UpdatePaymentStatus(_ context.Context, id int64, from, to model.PaymentStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.bookings {
		if r.bookings[i].ID == id && r.bookings[i].PaymentStatus == from {
			r.bookings[i].PaymentStatus = to
			return true, nil
		}
	}
	return false, nil
}

// setStatus меняет статус в обход сервиса для подготовки данных
func (r *memBookingRepo) setStatus(id int64, status model.BookingStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.bookings {
		if r.bookings[i].ID == id {
			r.bookings[i].Status = status
		}
	}
}

func (r *memBookingRepo) all() []model.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Booking, len(r.bookings))
	copy(out, r.bookings)
	return out
}

type memGuestRepo struct {
	mu     sync.Mutex
	guests []model.Guest
}

func (r *memGuestRepo) create(guest *model.Guest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	guest.ID = int64(len(r.guests) + 1)
	guest.CreatedAt = time.Now()
	r.guests = append(r.guests, *guest)
}

func (r *memGuestRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.guests)
}

func (r *memGuestRepo) GetByID(_ context.Context, id int64) (*model.Guest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.guests {
		if g.ID == id {
			return &g, nil
		}
	}
	return nil, nil
}

type memRecurringRepo struct {
	mu        sync.Mutex
	schedules []model.RecurringSchedule
}

func (r *memRecurringRepo) Create(_ context.Context, schedule *model.RecurringSchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	schedule.ID = int64(len(r.schedules) + 1)
	schedule.CreatedAt = time.Now()
	r.schedules = append(r.schedules, *schedule)
	return nil
}

func (r *memRecurringRepo) GetByID(_ context.Context, id int64) (*model.RecurringSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.schedules {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.BookingEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Type, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}
