package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/squadhelp/internal/domain"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
)

type Poster interface {
	Post(ctx context.Context, url string, headers http.Header, body []byte) (statusCode int, respBody []byte, err error)
}

// WebhookSink posts every event as JSON to a single URL.
type WebhookSink struct {
	url           string
	client        Poster
	retryInterval time.Duration
}

func NewWebhookSink(url string, client Poster) *WebhookSink {
	return &WebhookSink{
		url:           url,
		client:        client,
		retryInterval: retryInterval,
	}
}

func (s *WebhookSink) Deliver(ctx context.Context, event domain.RatingChanged) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	headers := http.Header{"Content-Type": []string{"application/json"}}

	for attempt := 1; attempt <= maxRetries; attempt++ {
		statusCode, _, err := s.client.Post(ctx, s.url, headers, body)
		if err == nil && statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err == nil {
			err = fmt.Errorf("unexpected status code %d", statusCode)
		}
		if attempt == maxRetries {
			return fmt.Errorf("failed to deliver event after %d retries: %w", maxRetries, err)
		}

		zap.L().Warn("webhook delivery failed, retrying", zap.Int("attempt", attempt), zap.Error(err))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.retryInterval * time.Duration(attempt)):
		}
	}
	return nil
}

// LogSink only writes events to the log.
type LogSink struct{}

func (LogSink) Deliver(_ context.Context, event domain.RatingChanged) error {
	fields := []zap.Field{zap.Int("creatorID", event.CreatorID), zap.Time("changedAt", event.ChangedAt)}
	if event.Rating != nil {
		fields = append(fields, zap.Float64("rating", *event.Rating))
	}
	zap.L().Info("creator rating changed", fields...)
	return nil
}
