package telegram

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"dental-smile-backend/config"
	"dental-smile-backend/internal/domain"
)

// Notifier posts HTML-formatted messages to one chat through the Bot API.
type Notifier struct {
	token    string
	chatID   string
	endpoint string
	client   *http.Client
}

func NewNotifier(cfg *config.Config) *Notifier {
	endpoint := cfg.TelegramAPIEndpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	return &Notifier{
		token:    cfg.TelegramBotToken,
		chatID:   strings.TrimSpace(cfg.TelegramChatID),
		endpoint: endpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (n *Notifier) IsConfigured() bool {
	return n.token != "" && n.chatID != ""
}

// Notify sends text with parse mode HTML. The request is bound to ctx.
func (n *Notifier) Notify(ctx context.Context, text string) error {
	if !n.IsConfigured() {
		return fmt.Errorf("telegram: %w", domain.ErrChannelNotConfigured)
	}

	msg := n.newMessage(text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := n.bot(ctx).Send(msg); err != nil {
		return fmt.Errorf("telegram: sendMessage failed: %w", err)
	}
	return nil
}

// newMessage addresses numeric chat ids directly and anything else as a
// channel username.
func (n *Notifier) newMessage(text string) tgbotapi.MessageConfig {
	if id, err := strconv.ParseInt(n.chatID, 10, 64); err == nil {
		return tgbotapi.NewMessage(id, text)
	}
	username := n.chatID
	if !strings.HasPrefix(username, "@") {
		username = "@" + username
	}
	return tgbotapi.NewMessageToChannel(username, text)
}

// bot builds a BotAPI without the getMe round trip tgbotapi.NewBotAPI makes,
// so a bad token only surfaces as a failed send.
func (n *Notifier) bot(ctx context.Context) *tgbotapi.BotAPI {
	bot := &tgbotapi.BotAPI{
		Token:  n.token,
		Client: &contextClient{ctx: ctx, client: n.client},
		Buffer: 100,
	}
	bot.SetAPIEndpoint(n.endpoint)
	return bot
}

// contextClient attaches ctx to requests issued by tgbotapi, which builds
// them without one.
type contextClient struct {
	ctx    context.Context
	client *http.Client
}

func (c *contextClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req.WithContext(c.ctx))
}
