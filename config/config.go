package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
)

type Config struct {
	Port       string `env:"PORT" envDefault:"3001"`
	AppName    string `env:"APP_NAME" envDefault:"Dental Smile Backend"`
	AppVersion string `env:"APP_VERSION" envDefault:"1.0.0"`
	SiteName   string `env:"SITE_NAME" envDefault:"Dental Smile"`

	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	SwaggerEnabled bool     `env:"SWAGGER_ENABLED" envDefault:"true"`

	// Logging
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile       string `env:"LOG_FILE"`
	LogMaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"10"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	LogMaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" envDefault:"28"`

	// Dispatch
	ChannelTimeout time.Duration `env:"CHANNEL_TIMEOUT" envDefault:"10s"`
	NotifyTimezone string        `env:"NOTIFY_TIMEZONE" envDefault:"Europe/Berlin"`

	// Email
	EmailProvider   string   `env:"EMAIL_PROVIDER" envDefault:"smtp"`
	SMTPHost        string   `env:"SMTP_HOST" envDefault:"smtp-mail.outlook.com"`
	SMTPPort        string   `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername    string   `env:"EMAIL_USER"`
	SMTPPassword    string   `env:"EMAIL_PASS"`
	EmailFrom       string   `env:"EMAIL_FROM"`
	EmailFromName   string   `env:"EMAIL_FROM_NAME" envDefault:"Dental Smile Website"`
	EmailRecipients []string `env:"EMAIL_RECIPIENTS" envSeparator:","`
	BrevoAPIKey     string   `env:"BREVO_API_KEY"`
	BrevoBaseURL    string   `env:"BREVO_BASE_URL" envDefault:"https://api.brevo.com"`

	// Telegram
	TelegramBotToken    string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID      string `env:"TELEGRAM_CHAT_ID"`
	TelegramAPIEndpoint string `env:"TELEGRAM_API_ENDPOINT"`
}

func LoadConfig() (*Config, error) {
	// Only effective locally; production injects the environment directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.normalize()

	if cfg.SMTPUsername == "" && cfg.BrevoAPIKey == "" {
		log.Println("WARNING: no email credentials configured. Email channel will report failures.")
	}
	if cfg.TelegramBotToken == "" || cfg.TelegramChatID == "" {
		log.Println("WARNING: TELEGRAM_BOT_TOKEN/TELEGRAM_CHAT_ID not configured. Telegram channel will report failures.")
	}

	return cfg, nil
}

// normalize fills derived defaults that struct tags cannot express.
func (c *Config) normalize() {
	c.EmailProvider = strings.ToLower(strings.TrimSpace(c.EmailProvider))
	c.BrevoBaseURL = strings.TrimRight(c.BrevoBaseURL, "/")

	if c.EmailFrom == "" {
		c.EmailFrom = c.SMTPUsername
	}
	c.EmailRecipients = splitList(c.EmailRecipients)
	if len(c.EmailRecipients) == 0 && c.EmailFrom != "" {
		c.EmailRecipients = []string{c.EmailFrom}
	}
	c.AllowedOrigins = splitList(c.AllowedOrigins)

	if c.TelegramAPIEndpoint == "" {
		c.TelegramAPIEndpoint = tgbotapi.APIEndpoint
	}
	if c.ChannelTimeout <= 0 {
		c.ChannelTimeout = 10 * time.Second
	}
}

// Location resolves NotifyTimezone, falling back to UTC when it is unknown.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.NotifyTimezone)
	if err != nil {
		log.Printf("WARNING: unknown NOTIFY_TIMEZONE %q, using UTC", c.NotifyTimezone)
		return time.UTC
	}
	return loc
}

// splitList trims entries and drops empty ones.
func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
