package v1_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	v1 "dental-smile-backend/internal/delivery/http/v1"
	"dental-smile-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(new(MockEmailSender), new(MockChatNotifier))

	var previous time.Time
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var body usecase.HealthStatus
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "ok", body.Status)

		ts, err := time.Parse(time.RFC3339Nano, body.Timestamp)
		require.NoError(t, err)
		assert.False(t, ts.Before(previous))
		previous = ts
	}
}

func TestRootInfo(t *testing.T) {
	r := newTestRouter(new(MockEmailSender), new(MockChatNotifier))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var info v1.ServiceInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "Dental Smile Backend", info.Name)
	assert.Equal(t, "1.0.0", info.Version)
	assert.Contains(t, info.Endpoints, "POST /api/contact")
	assert.Contains(t, info.Endpoints, "GET /api/health")
	assert.NotContains(t, info.Endpoints, "GET /swagger/index.html")
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(new(MockEmailSender), new(MockChatNotifier))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/leads", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Route not found")
}
