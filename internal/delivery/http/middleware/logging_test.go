package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invento/internal/delivery/http/helpers"
)

// capturingHandler records the last log record for assertions.
type capturingHandler struct {
	mu     sync.Mutex
	record slog.Record
}

func (h *capturingHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *capturingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record = r.Clone()
	return nil
}

func (h *capturingHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }

func (h *capturingHandler) WithGroup(_ string) slog.Handler { return h }

func (h *capturingHandler) attrs() map[string]slog.Value {
	h.mu.Lock()
	defer h.mu.Unlock()
	attrs := make(map[string]slog.Value)
	h.record.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value
		return true
	})
	return attrs
}

func TestLoggingMiddleware(t *testing.T) {
	var cap capturingHandler
	logger := slog.New(&cap)

	tests := []struct {
		name          string
		handlerStatus int
		path          string
		method        string
	}{
		{"ok status", http.StatusOK, "/api/events", http.MethodGet},
		{"created", http.StatusCreated, "/api/users", http.MethodPost},
		{"conflict", http.StatusConflict, "/api/events/register/solo-demo", http.MethodPost},
		{"server error", http.StatusInternalServerError, "/api/events/create-order", http.MethodPost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ctxID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxID = RequestIDFromContext(r.Context())
				w.WriteHeader(tt.handlerStatus)
				_, _ = w.Write([]byte("{}"))
			})
			handler := LoggingMiddleware(logger, next)
			req := httptest.NewRequest(tt.method, "http://test"+tt.path, nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			require.Equal(t, "request", cap.record.Message)
			attrs := cap.attrs()
			require.Equal(t, tt.method, attrs["method"].String())
			require.Equal(t, tt.path, attrs["path"].String())
			require.Equal(t, int64(tt.handlerStatus), attrs["status"].Int64())
			require.GreaterOrEqual(t, attrs["duration_ms"].Int64(), int64(0))
			require.Equal(t, int64(2), attrs["bytes"].Int64())
			require.Equal(t, tt.handlerStatus, rr.Code)

			assert.NotEmpty(t, ctxID)
			assert.Equal(t, ctxID, rr.Header().Get(RequestIDHeader))
			assert.Equal(t, ctxID, attrs["request_id"].String())
		})
	}
}

func TestLoggingMiddleware_ReusesClientRequestID(t *testing.T) {
	var cap capturingHandler
	handler := LoggingMiddleware(slog.New(&cap), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, "req-123", rr.Header().Get(RequestIDHeader))
	assert.Equal(t, int64(http.StatusOK), cap.attrs()["status"].Int64())
}

func TestRecoverer(t *testing.T) {
	var cap capturingHandler
	handler := Recoverer(slog.New(&cap), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/events", nil))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var body helpers.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, helpers.ErrNameInternal, body.Error)
	assert.Equal(t, "panic serving request", cap.record.Message)
	assert.Equal(t, "boom", cap.attrs()["panic"].String())
}
