package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/courtbooking/internal/events"
	"github.com/Freeeeeet/courtbooking/internal/model"
	"github.com/Freeeeeet/courtbooking/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService struct {
	courtRepo     CourtRepository
	bookingRepo   BookingRepository
	guestRepo     GuestRepository
	recurringRepo RecurringScheduleRepository
	locker        CourtLocker
	publishers    []events.Publisher
	logger        *zap.Logger

	now          func() time.Time
	location     *time.Location
	horizonWeeks int
}

type BookingServiceOption func(*BookingService)

// WithClock подменяет источник текущего времени
func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

// WithLocation задаёт часовой пояс площадки, в котором считаются дни недели и слоты
func WithLocation(loc *time.Location) BookingServiceOption {
	return func(s *BookingService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithRecurringHorizon переопределяет горизонт развёртки регулярных бронирований
func WithRecurringHorizon(weeks int) BookingServiceOption {
	return func(s *BookingService) {
		if weeks > 0 {
			s.horizonWeeks = weeks
		}
	}
}

// WithPublishers подключает получателей событий бронирований
func WithPublishers(publishers ...events.Publisher) BookingServiceOption {
	return func(s *BookingService) {
		s.publishers = append(s.publishers, publishers...)
	}
}

func NewBookingService(
	courtRepo CourtRepository,
	bookingRepo BookingRepository,
	guestRepo GuestRepository,
	recurringRepo RecurringScheduleRepository,
	locker CourtLocker,
	logger *zap.Logger,
	opts ...BookingServiceOption,
) *BookingService {
	s := &BookingService{
		courtRepo:     courtRepo,
		bookingRepo:   bookingRepo,
		guestRepo:     guestRepo,
		recurringRepo: recurringRepo,
		locker:        locker,
		logger:        logger,
		now:           time.Now,
		location:      time.UTC,
		horizonWeeks:  RecurringHorizonWeeks,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GuestInfo данные гостя без регистрации
type GuestInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// BookingRequest запрос на одиночное бронирование
type BookingRequest struct {
	CourtID int64
	Start   time.Time
	End     time.Time
	Purpose model.BookingPurpose
	TeamID  *int64
	UserID  *int64
	Guest   *GuestInfo
	// InitialStatus пустой означает pending; confirmed только для администратора
	InitialStatus model.BookingStatus
	Actor         model.Actor
}

// RequestBooking проверяет окно по шаблону доступности и существующим
// бронированиям и сохраняет принятое бронирование
func (s *BookingService) RequestBooking(ctx context.Context, req BookingRequest) (*model.Booking, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	court, err := s.courtRepo.GetByID(ctx, req.CourtID)
	if err != nil {
		return nil, fmt.Errorf("get court: %w", err)
	}
	if court == nil {
		return nil, notFound("court", req.CourtID)
	}

	return s.accept(ctx, court, req, Window{Start: req.Start, End: req.End}, nil)
}

func (s *BookingService) validateRequest(req BookingRequest) error {
	if !req.Purpose.Valid() {
		return invalidRequest(fmt.Sprintf("unknown purpose %q", req.Purpose))
	}
	if req.TeamID != nil && !req.Purpose.AllowsTeam() {
		return invalidRequest("team is allowed only for training and match")
	}
	if req.Guest != nil {
		if req.UserID != nil {
			return invalidRequest("booking cannot belong to both user and guest")
		}
		if strings.TrimSpace(req.Guest.Name) == "" {
			return invalidRequest("guest name is required")
		}
	}

	status := req.InitialStatus
	if status == "" {
		status = model.BookingStatusPending
	}
	return CheckInitialStatus(status, req.Actor)
}

// accept общий путь принятия для одиночных бронирований и вхождений серии
func (s *BookingService) accept(ctx context.Context, court *model.Court, req BookingRequest, w Window, recurringID *int64) (*model.Booking, error) {
	if err := s.checkWindow(w); err != nil {
		return nil, err
	}

	if err := CheckAvailability(court, w, s.location); err != nil {
		s.logger.Debug("Booking rejected: court unavailable",
			zap.Int64("court_id", court.ID),
			zap.Time("start_time", w.Start),
			zap.Error(err),
		)
		return nil, err
	}

	status := req.InitialStatus
	if status == "" {
		status = model.BookingStatusPending
	}

	booking := &model.Booking{
		CourtID:             court.ID,
		StartTime:           w.Start,
		EndTime:             w.End,
		Purpose:             req.Purpose,
		TeamID:              req.TeamID,
		UserID:              req.UserID,
		Status:              status,
		PaymentStatus:       model.PaymentStatusUnpaid,
		RecurringScheduleID: recurringID,
	}
	if req.Purpose == model.PurposeRental {
		booking.TotalPriceCents = TotalPriceCents(court.HourlyRateCents, w.End.Sub(w.Start))
	}

	unlock, err := s.locker.Lock(ctx, court.ID)
	if err != nil {
		return nil, fmt.Errorf("lock court: %w", err)
	}
	defer unlock()

	existing, err := s.bookingRepo.ListActiveByCourt(ctx, court.ID, w.Start, w.End)
	if err != nil {
		return nil, fmt.Errorf("list court bookings: %w", err)
	}
	if conflict := FindConflict(w, existing); conflict != nil {
		s.logger.Debug("Booking rejected: time slot conflict",
			zap.Int64("court_id", court.ID),
			zap.Int64("conflicting_booking_id", conflict.ID),
			zap.Time("start_time", w.Start),
		)
		return nil, conflictError(court.ID, conflict)
	}

	if req.Guest != nil {
		// гость сохраняется репозиторием вместе с бронью
		booking.Guest = &model.Guest{
			Name:  strings.TrimSpace(req.Guest.Name),
			Email: req.Guest.Email,
			Phone: req.Guest.Phone,
		}
		booking.IsGuestBooking = true
		booking.BookingReference = newBookingReference()
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			// пересечение поймала БД: другой экземпляр успел раньше
			return nil, s.storageConflict(ctx, court.ID, w)
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.logger.Info("Booking accepted",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("court_id", court.ID),
		zap.Time("start_time", booking.StartTime),
		zap.Time("end_time", booking.EndTime),
		zap.String("purpose", string(booking.Purpose)),
		zap.String("status", string(booking.Status)),
	)

	s.publish(ctx, events.NewBookingEvent(events.TypeBookingCreated, booking, s.now()))

	return booking, nil
}

func (s *BookingService) checkWindow(w Window) error {
	if !w.Start.Before(w.End) {
		return invalidWindow("start must be before end")
	}
	if w.Start.Before(s.now()) {
		return invalidWindow("start is in the past")
	}
	if !minuteAligned(w.Start) || !minuteAligned(w.End) {
		return invalidWindow("times must be whole minutes")
	}
	return nil
}

func (s *BookingService) storageConflict(ctx context.Context, courtID int64, w Window) error {
	existing, err := s.bookingRepo.ListActiveByCourt(ctx, courtID, w.Start, w.End)
	if err == nil {
		if conflict := FindConflict(w, existing); conflict != nil {
			return conflictError(courtID, conflict)
		}
	}
	return &TimeSlotConflictError{CourtID: courtID}
}

func conflictError(courtID int64, conflict *model.Booking) error {
	return &TimeSlotConflictError{
		CourtID:   courtID,
		BookingID: conflict.ID,
		Start:     conflict.StartTime,
		End:       conflict.EndTime,
	}
}

// TotalPriceCents цена аренды: ставка за час × длительность в часах,
// округление до цента половиной вверх
func TotalPriceCents(hourlyRateCents int64, d time.Duration) int64 {
	seconds := int64(d / time.Second)
	return (hourlyRateCents*seconds + 1800) / 3600
}

func minuteAligned(t time.Time) bool {
	return t.Second() == 0 && t.Nanosecond() == 0
}

func newBookingReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "BK-" + strings.ToUpper(id[:8])
}

// RecurringRequest запрос на регулярное бронирование
type RecurringRequest struct {
	CourtID        int64
	TeamID         *int64
	DaysOfWeek     []time.Weekday
	StartTimeOfDay model.TimeOfDay
	EndTimeOfDay   model.TimeOfDay
	EffectiveFrom  time.Time
	Purpose        model.BookingPurpose
	InitialStatus  model.BookingStatus
	Actor          model.Actor
}

// RequestRecurringBooking сохраняет шаблон серии и разворачивает его в
// отдельные бронирования. Каждое вхождение проходит тот же путь, что и
// одиночное бронирование; отклонённые даты возвращаются в Rejected.
func (s *BookingService) RequestRecurringBooking(ctx context.Context, req RecurringRequest) (*RecurringResult, error) {
	if len(req.DaysOfWeek) == 0 {
		return nil, invalidRequest("days of week must not be empty")
	}
	for _, d := range req.DaysOfWeek {
		if d < time.Sunday || d > time.Saturday {
			return nil, invalidRequest(fmt.Sprintf("unknown weekday %d", d))
		}
	}
	if !req.StartTimeOfDay.Valid() || !req.EndTimeOfDay.Valid() || req.StartTimeOfDay >= req.EndTimeOfDay {
		return nil, invalidWindow("start time of day must be before end time of day")
	}

	single := BookingRequest{
		CourtID:       req.CourtID,
		Purpose:       req.Purpose,
		TeamID:        req.TeamID,
		UserID:        req.Actor.UserID,
		InitialStatus: req.InitialStatus,
		Actor:         req.Actor,
	}
	if err := s.validateRequest(single); err != nil {
		return nil, err
	}

	court, err := s.courtRepo.GetByID(ctx, req.CourtID)
	if err != nil {
		return nil, fmt.Errorf("get court: %w", err)
	}
	if court == nil {
		return nil, notFound("court", req.CourtID)
	}

	schedule := &model.RecurringSchedule{
		CourtID:        req.CourtID,
		TeamID:         req.TeamID,
		DaysOfWeek:     req.DaysOfWeek,
		StartTimeOfDay: req.StartTimeOfDay,
		EndTimeOfDay:   req.EndTimeOfDay,
		EffectiveFrom:  LocalDate(req.EffectiveFrom, s.location),
		Purpose:        req.Purpose,
		CreatedBy:      req.Actor.UserID,
	}
	if err := s.recurringRepo.Create(ctx, schedule); err != nil {
		return nil, fmt.Errorf("create recurring schedule: %w", err)
	}

	result, err := expandSchedule(ctx, schedule, s.horizonWeeks, s.location, func(ctx context.Context, w Window) (*model.Booking, error) {
		return s.accept(ctx, court, single, w, &schedule.ID)
	})
	if err != nil {
		return result, fmt.Errorf("expand recurring schedule: %w", err)
	}

	s.logger.Info("Recurring schedule expanded",
		zap.Int64("recurring_schedule_id", schedule.ID),
		zap.Int64("court_id", court.ID),
		zap.Int("horizon_weeks", s.horizonWeeks),
		zap.Int("accepted", len(result.Accepted)),
		zap.Int("rejected", len(result.Rejected)),
	)

	return result, nil
}

// DayAvailability картина дня корта для календаря. Носит рекомендательный
// характер: между чтением и запросом бронирования окно могут занять.
type DayAvailability struct {
	CourtID  int64            `json:"court_id"`
	Date     time.Time        `json:"date"`
	Weekday  time.Weekday     `json:"weekday"`
	Slots    []model.TimeSlot `json:"slots"`
	Bookings []*model.Booking `json:"bookings"`
	Free     []Window         `json:"free"`
}

// QueryAvailability возвращает слоты шаблона, активные бронирования и
// свободные окна корта на дату. Ничего не блокирует и не меняет.
// От date берутся только год, месяц и день.
func (s *BookingService) QueryAvailability(ctx context.Context, courtID int64, date time.Time) (*DayAvailability, error) {
	court, err := s.courtRepo.GetByID(ctx, courtID)
	if err != nil {
		return nil, fmt.Errorf("get court: %w", err)
	}
	if court == nil {
		return nil, notFound("court", courtID)
	}

	day := LocalDate(date, s.location)
	slots := court.SlotsFor(day.Weekday())

	bookings, err := s.bookingRepo.ListActiveByCourt(ctx, courtID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("list court bookings: %w", err)
	}

	// бронирование в прошлом будет отклонено, поэтому прошедшее время не свободно
	notBefore := s.now().Truncate(time.Minute)
	if notBefore.Before(s.now()) {
		notBefore = notBefore.Add(time.Minute)
	}

	return &DayAvailability{
		CourtID:  courtID,
		Date:     day,
		Weekday:  day.Weekday(),
		Slots:    slots,
		Bookings: bookings,
		Free:     FreeWindows(slots, day, s.location, bookings, notBefore),
	}, nil
}

// GetBooking получает бронирование по ID
func (s *BookingService) GetBooking(ctx context.Context, bookingID int64) (*model.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, notFound("booking", bookingID)
	}
	return booking, nil
}

// GetByReference находит гостевое бронирование по коду
func (s *BookingService) GetByReference(ctx context.Context, reference string) (*model.Booking, error) {
	reference = strings.ToUpper(strings.TrimSpace(reference))
	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("get booking by reference: %w", err)
	}
	if booking == nil {
		return nil, notFound("booking", reference)
	}

	if booking.GuestID != nil {
		guest, err := s.guestRepo.GetByID(ctx, *booking.GuestID)
		if err != nil {
			return nil, fmt.Errorf("get guest: %w", err)
		}
		booking.Guest = guest
	}

	return booking, nil
}

// GetRecurringSchedule получает шаблон серии, из которой создано бронирование
func (s *BookingService) GetRecurringSchedule(ctx context.Context, scheduleID int64) (*model.RecurringSchedule, error) {
	schedule, err := s.recurringRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("get recurring schedule: %w", err)
	}
	if schedule == nil {
		return nil, notFound("recurring schedule", scheduleID)
	}
	return schedule, nil
}

// ListCourtBookings все бронирования корта (включая отменённые) в интервале
func (s *BookingService) ListCourtBookings(ctx context.Context, courtID int64, from, to time.Time) ([]*model.Booking, error) {
	if !from.Before(to) {
		return nil, invalidWindow("from must be before to")
	}
	return s.bookingRepo.ListByCourt(ctx, courtID, from, to)
}

// TransitionStatus переводит бронирование в новый статус по действию администратора
func (s *BookingService) TransitionStatus(ctx context.Context, bookingID int64, to model.BookingStatus, actor model.Actor) (*model.Booking, error) {
	if !actor.CanManage {
		return nil, ErrForbidden
	}

	booking, err := s.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := CheckTransition(booking.Status, to); err != nil {
		return nil, err
	}

	return s.applyStatus(ctx, booking, to)
}

// Cancel самостоятельная отмена владельцем (пользователь или гость по коду)
// или отмена администратором. Статус оплаты не меняется.
func (s *BookingService) Cancel(ctx context.Context, bookingID int64, actor model.Actor) (*model.Booking, error) {
	booking, err := s.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return s.cancel(ctx, booking, actor)
}

// CancelByReference отмена гостем по коду бронирования
func (s *BookingService) CancelByReference(ctx context.Context, reference string) (*model.Booking, error) {
	booking, err := s.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	return s.cancel(ctx, booking, model.Actor{GuestReference: booking.BookingReference})
}

func (s *BookingService) cancel(ctx context.Context, booking *model.Booking, actor model.Actor) (*model.Booking, error) {
	if !actor.CanManage && !actor.Owns(booking) {
		return nil, ErrForbidden
	}

	if err := CheckSelfCancel(booking.Status); err != nil {
		return nil, err
	}

	return s.applyStatus(ctx, booking, model.BookingStatusCancelled)
}

func (s *BookingService) applyStatus(ctx context.Context, booking *model.Booking, to model.BookingStatus) (*model.Booking, error) {
	from := booking.Status

	updated, err := s.bookingRepo.UpdateStatus(ctx, booking.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	if !updated {
		// статус успели изменить параллельно
		current, err := s.GetBooking(ctx, booking.ID)
		if err != nil {
			return nil, err
		}
		return nil, &InvalidTransitionError{Field: "status", From: string(current.Status), To: string(to)}
	}

	booking.Status = to
	booking.UpdatedAt = s.now()

	s.logger.Info("Booking status changed",
		zap.Int64("booking_id", booking.ID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)

	event := events.NewBookingEvent(events.TypeStatusChanged, booking, s.now())
	event.PreviousStatus = string(from)
	s.publish(ctx, event)

	return booking, nil
}

// SetPaymentStatus фиксирует статус оплаты аренды. Статус бронирования не меняется.
func (s *BookingService) SetPaymentStatus(ctx context.Context, bookingID int64, to model.PaymentStatus) (*model.Booking, error) {
	booking, err := s.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := CheckPaymentTransition(booking, to); err != nil {
		return nil, err
	}

	from := booking.PaymentStatus
	updated, err := s.bookingRepo.UpdatePaymentStatus(ctx, booking.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("update payment status: %w", err)
	}
	if !updated {
		current, err := s.GetBooking(ctx, booking.ID)
		if err != nil {
			return nil, err
		}
		return nil, &InvalidTransitionError{Field: "payment status", From: string(current.PaymentStatus), To: string(to)}
	}

	booking.PaymentStatus = to
	booking.UpdatedAt = s.now()

	s.logger.Info("Booking payment status changed",
		zap.Int64("booking_id", booking.ID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)

	event := events.NewBookingEvent(events.TypePaymentChanged, booking, s.now())
	event.PreviousPayment = string(from)
	s.publish(ctx, event)

	return booking, nil
}

// CompleteElapsed завершает подтверждённые бронирования, время которых прошло
func (s *BookingService) CompleteElapsed(ctx context.Context) (int, error) {
	bookings, err := s.bookingRepo.ListEndedBefore(ctx, model.BookingStatusConfirmed, s.now())
	if err != nil {
		return 0, fmt.Errorf("list elapsed bookings: %w", err)
	}

	count := 0
	for _, booking := range bookings {
		if _, err := s.TransitionStatus(ctx, booking.ID, model.BookingStatusCompleted, model.SystemActor()); err != nil {
			s.logger.Warn("Failed to complete booking",
				zap.Int64("booking_id", booking.ID),
				zap.Error(err),
			)
			continue
		}
		count++
	}

	return count, nil
}

// publish рассылает событие; ошибки получателей не влияют на результат операции
func (s *BookingService) publish(ctx context.Context, event events.BookingEvent) {
	for _, p := range s.publishers {
		if err := p.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish booking event",
				zap.String("type", string(event.Type)),
				zap.Int64("booking_id", event.BookingID),
				zap.Error(err),
			)
		}
	}
}
