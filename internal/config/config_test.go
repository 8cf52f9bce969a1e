package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_DSN", "postgres://localhost/courts")

	cfg, envLoaded, err := Load()
	require.NoError(t, err)
	assert.False(t, envLoaded)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, 52, cfg.RecurringHorizonWeeks)
	assert.Equal(t, 15*time.Minute, cfg.CompletionSweepInterval)
	assert.Equal(t, 10*time.Second, cfg.CourtLockTTL)
	assert.Equal(t, "court-bookings", cfg.KafkaBookingTopic)

	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.KafkaEnabled())
	assert.False(t, cfg.TelegramEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_DSN", "postgres://localhost/courts")
	t.Setenv("TIMEZONE", "Europe/Moscow")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("COMPLETION_SWEEP_INTERVAL", "0s")

	cfg, _, err := Load()
	require.NoError(t, err)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())

	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.KafkaEnabled())
	assert.True(t, cfg.TelegramEnabled())
	assert.Zero(t, cfg.CompletionSweepInterval)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing dsn", env: map[string]string{}},
		{name: "bad timezone", env: map[string]string{"DB_DSN": "dsn", "TIMEZONE": "Mars/Olympus"}},
		{name: "zero horizon", env: map[string]string{"DB_DSN": "dsn", "RECURRING_HORIZON_WEEKS": "0"}},
		{name: "bad duration", env: map[string]string{"DB_DSN": "dsn", "COURT_LOCK_TTL": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv("DB_DSN", "")
			os.Unsetenv("DB_DSN")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, _, err := Load()
			assert.Error(t, err)
		})
	}
}
