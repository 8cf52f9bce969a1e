package handlers

import (
	"time"

	"github.com/Freeeeeet/courtbooking/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	courtService   *service.CourtService
	bookingService *service.BookingService
	location       *time.Location
	now            func() time.Time
	logger         *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	courtService *service.CourtService,
	bookingService *service.BookingService,
	location *time.Location,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		courtService:   courtService,
		bookingService: bookingService,
		location:       location,
		now:            time.Now,
		logger:         logger,
	}
}
