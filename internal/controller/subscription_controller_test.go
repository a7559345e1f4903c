package controller

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"subhub-be/internal/dto"
	"subhub-be/internal/pkg/serverutils"
	"subhub-be/internal/pkg/webhook"
	"subhub-be/internal/repository/memory"
	"subhub-be/internal/service"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type fakeNotifier struct {
	payloads []webhook.Payload
	err      error
}

func (f *fakeNotifier) Notify(_ context.Context, payload webhook.Payload) error {
	f.payloads = append(f.payloads, payload)
	return f.err
}

func newTestApp(notifier *fakeNotifier) *fiber.App {
	factory := memory.NewRepositoryFactory()
	svc := service.NewSubscriptionService(factory, notifier, nil, nil, memory.NewSubscriptionCache(), nopLogger{})

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(nopLogger{}))

	api := app.Group("/api")
	NewSubscriptionController(svc).RegisterRoutes(api)

	app.Use(serverutils.NotFoundHandler)
	return app
}

func postSubscription(t *testing.T, app *fiber.App, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/subscriptions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)

	rec := httptest.NewRecorder()
	rec.Code = resp.StatusCode
	_, copyErr := rec.Body.ReadFrom(resp.Body)
	assert.NoError(t, copyErr)
	return rec
}

const validBody = `{"userId":"user-001","userEmail":"john@example.com","userName":"John Doe","paymentMethod":"CREDIT_CARD","amount":99.99}`

func TestSubscriptionLifecycleOverHTTP(t *testing.T) {
	notifier := &fakeNotifier{}
	app := newTestApp(notifier)

	// 1. Create
	rec := postSubscription(t, app, validBody)
	assert.Equal(t, 201, rec.Code)

	var created serverutils.BaseResponse[dto.SubscriptionResponse]
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "success", created.Status)
	assert.Equal(t, "ACTIVE", created.Data.Status)
	assert.Equal(t, "user-001", created.Data.UserId)
	assert.Len(t, notifier.payloads, 1)

	// 2. Read it back, projection must match
	req := httptest.NewRequest("GET", "/api/subscriptions/"+created.Data.Id.String(), nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var fetched serverutils.BaseResponse[dto.SubscriptionResponse]
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&fetched))
	assert.Equal(t, created.Data, fetched.Data)

	// 3. Same user again -> conflict
	rec = postSubscription(t, app, validBody)
	assert.Equal(t, 409, rec.Code)

	var conflict serverutils.BaseResponse[any]
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conflict))
	assert.Equal(t, "error", conflict.Status)
	assert.Equal(t, "CONFLICT", conflict.Code)
	assert.Equal(t, "User already has an active subscription", conflict.Message)
}

func TestSubscribeValidation(t *testing.T) {
	app := newTestApp(&fakeNotifier{})

	t.Run("Missing fields report per-field errors", func(t *testing.T) {
		rec := postSubscription(t, app, `{"userEmail":"not-an-email","amount":-1}`)
		assert.Equal(t, 400, rec.Code)

		var res serverutils.BaseResponse[any]
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "VALIDATION_ERROR", res.Code)

		fields := make([]string, 0, len(res.Errors))
		for _, fe := range res.Errors {
			fields = append(fields, fe.Field)
		}
		assert.Contains(t, fields, "userId")
		assert.Contains(t, fields, "userEmail")
		assert.Contains(t, fields, "userName")
		assert.Contains(t, fields, "paymentMethod")
		assert.Contains(t, fields, "amount")
	})

	t.Run("Unknown payment method rejected", func(t *testing.T) {
		rec := postSubscription(t, app, `{"userId":"u","userEmail":"a@b.com","userName":"Jo","paymentMethod":"BITCOIN","amount":10}`)
		assert.Equal(t, 400, rec.Code)
	})

	t.Run("Malformed JSON body rejected", func(t *testing.T) {
		rec := postSubscription(t, app, `{not json`)
		assert.Equal(t, 400, rec.Code)
	})
}

func TestGetSubscriptionErrors(t *testing.T) {
	app := newTestApp(&fakeNotifier{})

	t.Run("Invalid id format", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/subscriptions/not-a-uuid", nil)
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("Unknown id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/subscriptions/4b6b8cbd-5df9-4a4c-8aae-96c6b4c42678", nil)
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)

		var res serverutils.BaseResponse[any]
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
		assert.Equal(t, "NOT_FOUND", res.Code)
	})

	t.Run("Unmatched route", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/nope", nil)
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)

		var res serverutils.BaseResponse[any]
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
		assert.Equal(t, "Route not found", res.Message)
	})
}

func TestCancelOverHTTP(t *testing.T) {
	notifier := &fakeNotifier{}
	app := newTestApp(notifier)

	rec := postSubscription(t, app, validBody)
	assert.Equal(t, 201, rec.Code)

	var created serverutils.BaseResponse[dto.SubscriptionResponse]
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	req := httptest.NewRequest("POST", "/api/subscriptions/"+created.Data.Id.String()+"/cancel", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var cancelled serverutils.BaseResponse[dto.SubscriptionResponse]
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&cancelled))
	assert.Equal(t, "CANCELLED", cancelled.Data.Status)

	// Second cancel is a domain error, not a silent no-op
	resp, err = app.Test(httptest.NewRequest("POST", "/api/subscriptions/"+created.Data.Id.String()+"/cancel", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, 422, resp.StatusCode)

	var res serverutils.BaseResponse[any]
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, "SUBSCRIPTION_ALREADY_CANCELLED", res.Code)
}
