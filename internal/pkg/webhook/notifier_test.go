package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"subhub-be/internal/config"
	"subhub-be/internal/repository/contract"
	"subhub-be/internal/repository/memory"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type recordingServer struct {
	mu        sync.Mutex
	hits      []time.Time
	bodies    [][]byte
	headers   []http.Header
	failFirst int // respond 500 to this many leading requests
}

func (rs *recordingServer) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		rs.mu.Lock()
		rs.hits = append(rs.hits, time.Now())
		rs.bodies = append(rs.bodies, body)
		rs.headers = append(rs.headers, r.Header.Clone())
		n := len(rs.hits)
		rs.mu.Unlock()

		if n <= rs.failFirst {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func (rs *recordingServer) attempts() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return len(rs.hits)
}

func testPayload() Payload {
	return Payload{
		Event:          EventPaymentSuccess,
		SubscriptionId: uuid.New(),
		UserId:         "user-001",
		UserEmail:      "john@example.com",
		Amount:         99.99,
		Timestamp:      time.Now(),
	}
}

// deliveries is the interface type so a nil argument stays a nil interface
// inside the notifier and the audit row is skipped.
func newTestNotifier(url string, maxRetries int, retryDelay time.Duration, deliveries contract.WebhookDeliveryRepository) INotifier {
	cfg := config.WebhookConfig{
		URL:        url,
		Timeout:    2 * time.Second,
		MaxRetries: maxRetries,
		RetryDelay: retryDelay,
	}
	return NewNotifier(cfg, nopLogger{}, deliveries)
}

func TestNotifySucceedsFirstAttempt(t *testing.T) {
	rs := &recordingServer{}
	srv := httptest.NewServer(rs.handler())
	defer srv.Close()

	deliveries := memory.NewWebhookDeliveryRepository()
	notifier := newTestNotifier(srv.URL, 3, 100*time.Millisecond, deliveries)

	payload := testPayload()
	err := notifier.Notify(context.Background(), payload)

	assert.NoError(t, err)
	assert.Equal(t, 1, rs.attempts())

	// Wire format
	assert.Equal(t, "application/json", rs.headers[0].Get("Content-Type"))
	var sent Payload
	assert.NoError(t, json.Unmarshal(rs.bodies[0], &sent))
	assert.Equal(t, EventPaymentSuccess, sent.Event)
	assert.Equal(t, payload.SubscriptionId, sent.SubscriptionId)

	// Audit row
	rows, err := deliveries.FindAllBySubscriptionId(context.Background(), payload.SubscriptionId)
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.True(t, rows[0].Success)
	assert.Equal(t, 1, rows[0].Attempts)
	assert.Nil(t, rows[0].LastError)
}

func TestNotifyRecoversOnSecondAttempt(t *testing.T) {
	rs := &recordingServer{failFirst: 1}
	srv := httptest.NewServer(rs.handler())
	defer srv.Close()

	notifier := newTestNotifier(srv.URL, 3, 50*time.Millisecond, nil)

	err := notifier.Notify(context.Background(), testPayload())

	assert.NoError(t, err)
	assert.Equal(t, 2, rs.attempts())
}

func TestNotifyExhaustsRetriesWithLinearBackoff(t *testing.T) {
	rs := &recordingServer{failFirst: 100}
	srv := httptest.NewServer(rs.handler())
	defer srv.Close()

	deliveries := memory.NewWebhookDeliveryRepository()
	notifier := newTestNotifier(srv.URL, 3, 100*time.Millisecond, deliveries)

	payload := testPayload()
	start := time.Now()
	err := notifier.Notify(context.Background(), payload)
	elapsed := time.Since(start)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "webhook failed after 3 retries")
	assert.Equal(t, 3, rs.attempts())

	// Linear backoff: 1*delay then 2*delay between attempts.
	gap1 := rs.hits[1].Sub(rs.hits[0])
	gap2 := rs.hits[2].Sub(rs.hits[1])
	assert.GreaterOrEqual(t, gap1, 100*time.Millisecond)
	assert.Less(t, gap1, 200*time.Millisecond)
	assert.GreaterOrEqual(t, gap2, 200*time.Millisecond)
	assert.Less(t, gap2, 350*time.Millisecond)
	assert.GreaterOrEqual(t, elapsed, 300*time.Millisecond)

	rows, err := deliveries.FindAllBySubscriptionId(context.Background(), payload.SubscriptionId)
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.False(t, rows[0].Success)
	assert.Equal(t, 3, rows[0].Attempts)
	if assert.NotNil(t, rows[0].LastError) {
		assert.Contains(t, *rows[0].LastError, "status 500")
	}
}

func TestNotifyRetriesOnConnectionError(t *testing.T) {
	rs := &recordingServer{}
	srv := httptest.NewServer(rs.handler())
	url := srv.URL
	srv.Close() // nothing is listening anymore

	notifier := newTestNotifier(url, 2, 10*time.Millisecond, nil)

	err := notifier.Notify(context.Background(), testPayload())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "webhook failed after 2 retries")
	assert.Equal(t, 0, rs.attempts())
}

func TestNotifyStopsWhenContextCancelled(t *testing.T) {
	rs := &recordingServer{failFirst: 100}
	srv := httptest.NewServer(rs.handler())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	deliveries := memory.NewWebhookDeliveryRepository()
	notifier := newTestNotifier(srv.URL, 5, 200*time.Millisecond, deliveries)

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	payload := testPayload()
	err := notifier.Notify(ctx, payload)

	assert.Error(t, err)
	// Cancelled during the first backoff wait, so only one attempt landed and
	// both the error and the audit row say so, not the configured maximum.
	assert.Equal(t, 1, rs.attempts())
	assert.Contains(t, err.Error(), "webhook failed after 1 retries")

	rows, findErr := deliveries.FindAllBySubscriptionId(context.Background(), payload.SubscriptionId)
	assert.NoError(t, findErr)
	assert.Len(t, rows, 1)
	assert.False(t, rows[0].Success)
	assert.Equal(t, 1, rows[0].Attempts)
}

func TestNotifySkipsAuditWithoutDeliveryRepository(t *testing.T) {
	rs := &recordingServer{failFirst: 1}
	srv := httptest.NewServer(rs.handler())
	defer srv.Close()

	notifier := newTestNotifier(srv.URL, 3, 10*time.Millisecond, nil)

	// Success after a retry still records an audit row when a repository is
	// wired; without one the call must be skipped, not dereferenced.
	assert.NoError(t, notifier.Notify(context.Background(), testPayload()))
	assert.Equal(t, 2, rs.attempts())
}
