package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DBDSN          string `envconfig:"DB_DSN" required:"true"`
	Environment    string `envconfig:"ENV" default:"development"`
	Timezone       string `envconfig:"TIMEZONE" default:"UTC"`
	MigrationsPath string `envconfig:"MIGRATIONS_PATH" default:"migrations"`

	RecurringHorizonWeeks   int           `envconfig:"RECURRING_HORIZON_WEEKS" default:"52"`
	CompletionSweepInterval time.Duration `envconfig:"COMPLETION_SWEEP_INTERVAL" default:"15m"`

	TelegramToken        string `envconfig:"TELEGRAM_TOKEN"`
	TelegramNotifyChatID int64  `envconfig:"TELEGRAM_NOTIFY_CHAT_ID"`

	// При пустом REDIS_ADDR корты блокируются внутри процесса
	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	CourtLockTTL  time.Duration `envconfig:"COURT_LOCK_TTL" default:"10s"`

	KafkaBrokers      []string `envconfig:"KAFKA_BROKERS"`
	KafkaBookingTopic string   `envconfig:"KAFKA_BOOKING_TOPIC" default:"court-bookings"`
}

// Load читает .env (если есть) и переменные окружения.
// Возвращает признак того, что .env был найден, чтобы main мог это залогировать.
func Load() (*Config, bool, error) {
	envLoaded := godotenv.Load(".env") == nil

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, envLoaded, fmt.Errorf("process env: %w", err)
	}

	if cfg.RecurringHorizonWeeks <= 0 {
		return nil, envLoaded, fmt.Errorf("RECURRING_HORIZON_WEEKS must be positive, got %d", cfg.RecurringHorizonWeeks)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, envLoaded, err
	}

	return &cfg, envLoaded, nil
}

// Location часовой пояс площадки
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != ""
}
