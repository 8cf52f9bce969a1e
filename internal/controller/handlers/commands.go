package handlers

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/courtbooking/internal/controller/formatting"
	"github.com/Freeeeeet/courtbooking/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const helpText = "📚 Справка по командам:\n\n" +
	"/courts - Список кортов\n" +
	"/availability &lt;корт&gt; [ГГГГ-ММ-ДД] - Свободное время корта на дату\n" +
	"/booking &lt;номер или код&gt; - Информация о бронировании\n" +
	"/cancel &lt;номер или код&gt; - Отменить своё бронирование\n" +
	"/help - Показать эту справку\n\n" +
	"Гостевые бронирования ищутся по коду вида BK-XXXXXXXX."

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Здесь можно посмотреть свободное время кортов и управлять своими бронированиями.\n\n%s",
		update.Message.From.FirstName,
		helpText,
	)

	h.sendMessage(ctx, b, update.Message.Chat.ID, welcomeText)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleCourts обрабатывает команду /courts
func (h *Handlers) HandleCourts(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	courts, err := h.courtService.ListCourts(ctx)
	if err != nil {
		h.logger.Error("Failed to list courts", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, errorText(err))
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, formatting.FormatCourts(courts))
}

// HandleAvailability обрабатывает команду /availability <корт> [дата]
func (h *Handlers) HandleAvailability(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	courtID, date, err := parseAvailabilityArgs(commandArgs(update.Message.Text), h.now(), h.location)
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Формат: /availability <корт> [ГГГГ-ММ-ДД]")
		return
	}

	court, err := h.courtService.GetCourt(ctx, courtID)
	if err != nil {
		h.sendError(ctx, b, chatID, errorText(err))
		return
	}

	day, err := h.bookingService.QueryAvailability(ctx, courtID, date)
	if err != nil {
		h.logger.Error("Failed to query availability",
			zap.Int64("court_id", courtID),
			zap.Time("date", date),
			zap.Error(err))
		h.sendError(ctx, b, chatID, errorText(err))
		return
	}

	h.sendMessage(ctx, b, chatID, formatting.FormatDayAvailability(court, day, h.location))
}

// HandleBooking обрабатывает команду /booking <номер или код>
func (h *Handlers) HandleBooking(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	booking, ok := h.findBooking(ctx, b, update)
	if !ok {
		return
	}

	text := formatting.FormatBooking(booking, h.location)
	if booking.RecurringScheduleID != nil {
		schedule, err := h.bookingService.GetRecurringSchedule(ctx, *booking.RecurringScheduleID)
		if err != nil {
			h.logger.Warn("Failed to get recurring schedule",
				zap.Int64("recurring_schedule_id", *booking.RecurringScheduleID),
				zap.Error(err))
		} else {
			text += "\n🔁 Серия: " + formatting.FormatRecurringSchedule(schedule)
		}
	}

	h.sendMessage(ctx, b, chatID, text)
}

// HandleCancel обрабатывает команду /cancel <номер или код>
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	args := commandArgs(update.Message.Text)
	if len(args) != 1 {
		h.sendError(ctx, b, chatID, "❌ Формат: /cancel <номер или код>")
		return
	}

	key, err := parseBookingKey(args[0])
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Формат: /cancel <номер или код>")
		return
	}

	var booking *model.Booking
	if key.Reference != "" {
		booking, err = h.bookingService.CancelByReference(ctx, key.Reference)
	} else {
		booking, err = h.bookingService.Cancel(ctx, key.ID, actorFor(update))
	}
	if err != nil {
		h.logger.Info("Cancel rejected",
			zap.Int64("telegram_id", update.Message.From.ID),
			zap.String("key", args[0]),
			zap.Error(err))
		h.sendError(ctx, b, chatID, errorText(err))
		return
	}

	h.sendMessage(ctx, b, chatID, "✅ Бронирование отменено.\n\n"+formatting.FormatBooking(booking, h.location))
}

// findBooking ищет бронирование по коду или по номеру. По номеру показываются
// только собственные бронирования пользователя.
func (h *Handlers) findBooking(ctx context.Context, b *bot.Bot, update *models.Update) (*model.Booking, bool) {
	chatID := update.Message.Chat.ID

	args := commandArgs(update.Message.Text)
	if len(args) != 1 {
		h.sendError(ctx, b, chatID, "❌ Формат: /booking <номер или код>")
		return nil, false
	}

	key, err := parseBookingKey(args[0])
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Формат: /booking <номер или код>")
		return nil, false
	}

	if key.Reference != "" {
		booking, err := h.bookingService.GetByReference(ctx, key.Reference)
		if err != nil {
			h.sendError(ctx, b, chatID, errorText(err))
			return nil, false
		}
		return booking, true
	}

	booking, err := h.bookingService.GetBooking(ctx, key.ID)
	if err != nil {
		h.sendError(ctx, b, chatID, errorText(err))
		return nil, false
	}
	if !actorFor(update).Owns(booking) {
		h.sendError(ctx, b, chatID, "❌ Не найдено.")
		return nil, false
	}

	return booking, true
}
