package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/courtbooking/internal/controller/formatting"
	"github.com/Freeeeeet/courtbooking/internal/events"
	"github.com/Freeeeeet/courtbooking/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type messageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// TelegramNotifier пишет о событиях бронирований в чат администраторов
type TelegramNotifier struct {
	sender   messageSender
	chatID   int64
	location *time.Location
	logger   *zap.Logger
}

func NewTelegramNotifier(sender messageSender, chatID int64, location *time.Location, logger *zap.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		sender:   sender,
		chatID:   chatID,
		location: location,
		logger:   logger,
	}
}

// Publish отправляет уведомление в чат
func (n *TelegramNotifier) Publish(ctx context.Context, event events.BookingEvent) error {
	_, err := n.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    n.chatID,
		Text:      n.format(event),
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return fmt.Errorf("send telegram notification: %w", err)
	}

	n.logger.Debug("Booking notification sent",
		zap.String("type", string(event.Type)),
		zap.Int64("booking_id", event.BookingID))

	return nil
}

func (n *TelegramNotifier) format(event events.BookingEvent) string {
	start := event.StartTime.In(n.location)
	when := fmt.Sprintf("%s %s",
		formatting.FormatDateWithWeekday(start),
		formatting.FormatTimeRange(start, event.EndTime.In(n.location)))

	status := formatting.GetBookingStatusDisplay(model.BookingStatus(event.Status))

	switch event.Type {
	case events.TypeBookingCreated:
		return fmt.Sprintf("🆕 <b>Новое бронирование #%d</b>\nКорт #%d, %s\n%s %s",
			event.BookingID, event.CourtID, when, status.Emoji, status.Text)
	case events.TypeStatusChanged:
		previous := formatting.GetBookingStatusDisplay(model.BookingStatus(event.PreviousStatus))
		return fmt.Sprintf("🔄 <b>Бронирование #%d</b>\nКорт #%d, %s\n%s → %s",
			event.BookingID, event.CourtID, when, previous.Text, status.Text)
	case events.TypePaymentChanged:
		payment := formatting.GetPaymentStatusDisplay(model.PaymentStatus(event.PaymentStatus))
		return fmt.Sprintf("%s <b>Бронирование #%d</b>\n%s: %s",
			payment.Emoji, event.BookingID, payment.Text, formatting.FormatPrice(event.TotalPriceCents))
	}

	return fmt.Sprintf("Бронирование #%d: %s", event.BookingID, event.Type)
}
