package config

import (
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("EMAIL_USER", "clinic@example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, "smtp", cfg.EmailProvider)
	assert.Equal(t, "clinic@example.com", cfg.EmailFrom)
	assert.Equal(t, []string{"clinic@example.com"}, cfg.EmailRecipients)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.ChannelTimeout)
	assert.Equal(t, tgbotapi.APIEndpoint, cfg.TelegramAPIEndpoint)
}

func TestLoadConfigRecipientsList(t *testing.T) {
	t.Setenv("EMAIL_USER", "clinic@example.com")
	t.Setenv("EMAIL_RECIPIENTS", " a@example.com, ,b@example.com ")
	t.Setenv("EMAIL_PROVIDER", " Brevo ")
	t.Setenv("BREVO_BASE_URL", "https://brevo.test/")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.EmailRecipients)
	assert.Equal(t, "brevo", cfg.EmailProvider)
	assert.Equal(t, "https://brevo.test", cfg.BrevoBaseURL)
}

func TestLoadConfigInvalidDuration(t *testing.T) {
	t.Setenv("CHANNEL_TIMEOUT", "soon")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLocationFallback(t *testing.T) {
	cfg := &Config{NotifyTimezone: "Mars/Olympus_Mons"}
	assert.Equal(t, time.UTC, cfg.Location())

	cfg.NotifyTimezone = "UTC"
	assert.Equal(t, "UTC", cfg.Location().String())
}
