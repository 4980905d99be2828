package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"roadmap-checkup/internal/config"
	"roadmap-checkup/internal/domain"
	"roadmap-checkup/internal/logger"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("roadmap.internal.adapter.telegram")

var ErrTokenMissing = errors.New("telegram: bot token missing")

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

// Notifier posts lead reports to one Telegram chat via the Bot API.
type Notifier struct {
	baseURL    string
	token      string
	chatID     string
	httpClient *http.Client
}

// NewNotifier builds a notifier from config. A nil httpClient gets one with
// the configured timeout.
func NewNotifier(cfg config.TelegramConfig, httpClient *http.Client) *Notifier {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Notifier{
		baseURL:    cfg.BaseURL,
		token:      cfg.BotToken,
		chatID:     cfg.ChatID,
		httpClient: httpClient,
	}
}

var _ domain.LeadNotifier = (*Notifier)(nil)

// SendLead delivers text as a plain message. Any non-2xx answer is a failure.
func (n *Notifier) SendLead(ctx context.Context, text string) error {
	if n.token == "" {
		return ErrTokenMissing
	}

	ctx, span := tracer.Start(ctx, "telegram.send_message", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.String("telegram.chat_id", n.chatID))

	if err := n.send(ctx, text); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Get().Error("Failed to send lead to Telegram", zap.String("chat_id", n.chatID), zap.Error(err))
		return err
	}

	logger.Get().Info("Lead sent to Telegram", zap.String("chat_id", n.chatID))
	return nil
}

func (n *Notifier) send(ctx context.Context, text string) error {
	payload, err := json.Marshal(sendMessageRequest{ChatID: n.chatID, Text: text})
	if err != nil {
		return fmt.Errorf("telegram: marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("telegram: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("telegram: send failed: status %d, body: %s", resp.StatusCode, bytes.TrimSpace(body))
	}
	return nil
}
