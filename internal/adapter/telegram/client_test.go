package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"roadmap-checkup/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newNotifier(t *testing.T, handler http.HandlerFunc) *Notifier {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewNotifier(config.TelegramConfig{
		BaseURL:  srv.URL,
		BotToken: "123:abc",
		ChatID:   "248929032",
	}, srv.Client())
}

func TestNotifier_SendLead(t *testing.T) {
	var got sendMessageRequest
	n := newNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bot123:abc/sendMessage", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	err := n.SendLead(context.Background(), "🎯 НОВА ЗАЯВКА")
	require.NoError(t, err)
	assert.Equal(t, "248929032", got.ChatID)
	assert.Equal(t, "🎯 НОВА ЗАЯВКА", got.Text)
}

func TestNotifier_NonSuccessStatus(t *testing.T) {
	n := newNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	})

	err := n.SendLead(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Contains(t, err.Error(), "chat not found")
}

func TestNotifier_TokenMissing(t *testing.T) {
	n := NewNotifier(config.TelegramConfig{BaseURL: "http://127.0.0.1:0", ChatID: "1"}, nil)
	assert.ErrorIs(t, n.SendLead(context.Background(), "text"), ErrTokenMissing)
}

func TestNotifier_RecordsSpanOnFailure(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	n := newNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	require.Error(t, n.SendLead(context.Background(), "text"))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "telegram.send_message", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}
