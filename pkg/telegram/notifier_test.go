package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"dental-smile-backend/config"
	"dental-smile-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBotAPI records sendMessage calls and replies with reply.
type fakeBotAPI struct {
	mu     sync.Mutex
	paths  []string
	params []url.Values
	status int
	reply  string
}

func (f *fakeBotAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	f.mu.Lock()
	f.paths = append(f.paths, r.URL.Path)
	f.params = append(f.params, r.PostForm)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if f.status != 0 {
		w.WriteHeader(f.status)
	}
	_, _ = w.Write([]byte(f.reply))
}

const okReply = `{"ok":true,"result":{"message_id":7,"date":1760870400,"chat":{"id":-1001,"type":"supergroup"},"text":"hi"}}`

func newTestNotifier(t *testing.T, api *fakeBotAPI, chatID string) *Notifier {
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	return NewNotifier(&config.Config{
		TelegramBotToken:    "123:abc",
		TelegramChatID:      chatID,
		TelegramAPIEndpoint: srv.URL + "/bot%s/%s",
	})
}

func TestNotifySendsHTMLMessage(t *testing.T) {
	api := &fakeBotAPI{reply: okReply}
	n := newTestNotifier(t, api, "-1001")

	require.NoError(t, n.Notify(context.Background(), "<b>New request</b>"))

	require.Len(t, api.paths, 1)
	assert.Equal(t, "/bot123:abc/sendMessage", api.paths[0])
	assert.Equal(t, "-1001", api.params[0].Get("chat_id"))
	assert.Equal(t, "<b>New request</b>", api.params[0].Get("text"))
	assert.Equal(t, "HTML", api.params[0].Get("parse_mode"))
}

func TestNotifyChannelUsername(t *testing.T) {
	api := &fakeBotAPI{reply: okReply}
	n := newTestNotifier(t, api, "clinic_leads")

	require.NoError(t, n.Notify(context.Background(), "hi"))
	assert.Equal(t, "@clinic_leads", api.params[0].Get("chat_id"))
}

func TestNotifyAPIError(t *testing.T) {
	api := &fakeBotAPI{
		status: http.StatusBadRequest,
		reply:  `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`,
	}
	n := newTestNotifier(t, api, "42")

	err := n.Notify(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestNotifyNotConfigured(t *testing.T) {
	n := NewNotifier(&config.Config{TelegramBotToken: "123:abc"})

	assert.False(t, n.IsConfigured())
	assert.ErrorIs(t, n.Notify(context.Background(), "hi"), domain.ErrChannelNotConfigured)
}

func TestNotifyHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	n := NewNotifier(&config.Config{
		TelegramBotToken:    "123:abc",
		TelegramChatID:      "42",
		TelegramAPIEndpoint: srv.URL + "/bot%s/%s",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := n.Notify(ctx, "hi")
	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}
