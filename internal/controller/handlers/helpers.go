package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/courtbooking/internal/controller/formatting"
	"github.com/Freeeeeet/courtbooking/internal/model"
	"github.com/Freeeeeet/courtbooking/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// sendMessage отправляет HTML сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}

// actorFor идентичность пользователя Telegram для операций движка
func actorFor(update *models.Update) model.Actor {
	userID := update.Message.From.ID
	return model.Actor{UserID: &userID}
}

// commandArgs аргументы команды без самой команды
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) <= 1 {
		return nil
	}
	return fields[1:]
}

// bookingKey либо ID бронирования, либо код гостевого бронирования
type bookingKey struct {
	ID        int64
	Reference string
}

func parseBookingKey(arg string) (bookingKey, error) {
	arg = strings.TrimSpace(arg)
	if strings.HasPrefix(strings.ToUpper(arg), referencePrefix) {
		return bookingKey{Reference: strings.ToUpper(arg)}, nil
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(arg, "#"), 10, 64)
	if err != nil || id <= 0 {
		return bookingKey{}, fmt.Errorf("invalid booking key %q", arg)
	}
	return bookingKey{ID: id}, nil
}

// parseAvailabilityArgs разбирает "<court_id> [YYYY-MM-DD]"; без даты берётся сегодня
func parseAvailabilityArgs(args []string, now time.Time, loc *time.Location) (int64, time.Time, error) {
	if len(args) == 0 || len(args) > 2 {
		return 0, time.Time{}, errors.New("usage: /availability <court_id> [YYYY-MM-DD]")
	}

	courtID, err := strconv.ParseInt(strings.TrimPrefix(args[0], "#"), 10, 64)
	if err != nil || courtID <= 0 {
		return 0, time.Time{}, fmt.Errorf("invalid court id %q", args[0])
	}

	if len(args) == 1 {
		return courtID, now.In(loc), nil
	}

	date, err := time.ParseInLocation(dateLayout, args[1], loc)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("invalid date %q: %w", args[1], err)
	}
	return courtID, date, nil
}

// errorText переводит доменную ошибку в текст для пользователя
func errorText(err error) string {
	var unavailable *service.CourtUnavailableError
	var conflict *service.TimeSlotConflictError

	switch {
	case errors.As(err, &unavailable):
		return fmt.Sprintf("🚫 Корт закрыт: %s.", formatting.GetWeekdayName(unavailable.Weekday))
	case errors.As(err, &conflict):
		return "🔴 Это время уже занято."
	case errors.Is(err, service.ErrNotFound):
		return "❌ Не найдено."
	case errors.Is(err, service.ErrForbidden):
		return "⛔️ Недостаточно прав для этого действия."
	case errors.Is(err, service.ErrInvalidTransition):
		return "❌ Действие недоступно для бронирования в текущем статусе."
	case errors.Is(err, service.ErrInvalidWindow), errors.Is(err, service.ErrInvalidRequest):
		return "❌ Некорректный запрос."
	}
	return "❌ Произошла ошибка. Попробуйте позже."
}
