// FILE: internal/pkg/webhook/notifier.go
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"subhub-be/internal/config"
	"subhub-be/internal/model"
	"subhub-be/internal/pkg/logger"
	"subhub-be/internal/repository/contract"
)

const (
	EventPaymentSuccess        = "PAYMENT_SUCCESS"
	EventSubscriptionCancelled = "SUBSCRIPTION_CANCELLED"
	EventSubscriptionExpired   = "SUBSCRIPTION_EXPIRED"
)

// Payload is the JSON body POSTed to the configured endpoint.
type Payload struct {
	Event          string    `json:"event"`
	SubscriptionId uuid.UUID `json:"subscriptionId"`
	UserId         string    `json:"userId"`
	UserEmail      string    `json:"userEmail"`
	Amount         float64   `json:"amount"`
	Timestamp      time.Time `json:"timestamp"`
}

type INotifier interface {
	Notify(ctx context.Context, payload Payload) error
}

type notifier struct {
	cfg        config.WebhookConfig
	client     *http.Client
	log        logger.ILogger
	deliveries contract.WebhookDeliveryRepository
}

// NewNotifier builds the retrying HTTP notifier. Configuration is fixed for
// the notifier's lifetime. The deliveries repository is optional; when nil the
// audit row is skipped.
func NewNotifier(cfg config.WebhookConfig, log logger.ILogger, deliveries contract.WebhookDeliveryRepository) INotifier {
	return &notifier{
		cfg:        cfg,
		client:     &http.Client{},
		log:        log,
		deliveries: deliveries,
	}
}

// Notify delivers the payload with up to MaxRetries sequential attempts.
// Backoff is linear: after failed attempt n it waits RetryDelay*n. Each
// attempt carries its own timeout; there is no overall deadline across the
// retry loop. Success on any attempt returns immediately.
func (n *notifier) Notify(ctx context.Context, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	var lastErr error
	attempts := 0
	for attempt := 1; attempt <= n.cfg.MaxRetries; attempt++ {
		attempts = attempt
		lastErr = n.attempt(ctx, body)
		if lastErr == nil {
			n.log.Info("webhook", "Webhook notified successfully", map[string]interface{}{
				"attempt":        attempt,
				"event":          payload.Event,
				"subscriptionId": payload.SubscriptionId,
			})
			n.record(ctx, payload, body, attempt, true, nil)
			return nil
		}

		n.log.Warn("webhook", "Webhook attempt failed", map[string]interface{}{
			"attempt":    attempt,
			"maxRetries": n.cfg.MaxRetries,
			"event":      payload.Event,
			"error":      lastErr.Error(),
		})

		if attempt < n.cfg.MaxRetries {
			if err := sleep(ctx, n.cfg.RetryDelay*time.Duration(attempt)); err != nil {
				lastErr = err
				break
			}
		}
	}

	// attempts can fall short of MaxRetries when the context is cancelled
	// mid-backoff; report what actually happened.
	n.log.Error("webhook", "Webhook failed after all retries", map[string]interface{}{
		"attempts":       attempts,
		"maxRetries":     n.cfg.MaxRetries,
		"event":          payload.Event,
		"subscriptionId": payload.SubscriptionId,
		"error":          lastErr.Error(),
	})
	n.record(ctx, payload, body, attempts, false, lastErr)

	return fmt.Errorf("webhook failed after %d retries: %w", attempts, lastErr)
}

func (n *notifier) attempt(ctx context.Context, body []byte) error {
	attemptCtx, cancel := context.WithTimeout(ctx, n.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, n.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

func (n *notifier) record(ctx context.Context, payload Payload, body []byte, attempts int, success bool, lastErr error) {
	if n.deliveries == nil {
		return
	}

	delivery := &model.WebhookDelivery{
		Id:             uuid.New(),
		SubscriptionId: payload.SubscriptionId,
		Event:          payload.Event,
		Payload:        datatypes.JSON(body),
		Attempts:       attempts,
		Success:        success,
	}
	if lastErr != nil {
		msg := lastErr.Error()
		delivery.LastError = &msg
	}

	if err := n.deliveries.Create(ctx, delivery); err != nil {
		n.log.Warn("webhook", "Failed to record webhook delivery", map[string]interface{}{
			"subscriptionId": payload.SubscriptionId,
			"error":          err.Error(),
		})
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
