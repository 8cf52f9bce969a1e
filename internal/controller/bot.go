package controller

import (
	"context"
	"time"

	"github.com/Freeeeeet/courtbooking/internal/controller/handlers"
	"github.com/Freeeeeet/courtbooking/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot      *bot.Bot
	handlers *handlers.Handlers
	logger   *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	courtService *service.CourtService,
	bookingService *service.BookingService,
	location *time.Location,
	logger *zap.Logger,
) *BotController {
	return &BotController{
		bot:      botInstance,
		handlers: handlers.NewHandlers(courtService, bookingService, location, logger),
		logger:   logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/courts", bot.MatchTypeExact, c.handlers.HandleCourts)

	// Команды с аргументами
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/availability", bot.MatchTypePrefix, c.handlers.HandleAvailability)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/booking", bot.MatchTypePrefix, c.handlers.HandleBooking)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypePrefix, c.handlers.HandleCancel)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "help", Description: "❓ Справка по командам"},
		{Command: "courts", Description: "🎾 Список кортов"},
		{Command: "availability", Description: "🗓 Свободное время корта"},
		{Command: "booking", Description: "🔖 Моё бронирование"},
		{Command: "cancel", Description: "❌ Отменить бронирование"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("Bot commands menu set")
	return nil
}

// Start запускает бота и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) {
	c.logger.Info("Starting bot")
	c.bot.Start(ctx)
}
