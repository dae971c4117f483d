package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripewebhook "github.com/stripe/stripe-go/v78/webhook"

	"github.com/willjrcristo/course-checkout/internal/collaborator"
	"github.com/willjrcristo/course-checkout/internal/domain"
	"github.com/willjrcristo/course-checkout/internal/repository"
	"github.com/willjrcristo/course-checkout/internal/service"
	"github.com/willjrcristo/course-checkout/internal/webhook"
)

const scenarioSecret = "whsec_scenario"

type countingScheduler struct{ calls []string }

func (s *countingScheduler) ScheduleEnd(_ context.Context, subscriptionID string) error {
	s.calls = append(s.calls, subscriptionID)
	return nil
}

type app struct {
	router    http.Handler
	store     *repository.MemoryStore
	scheduler *countingScheduler
}

// newApp liga os serviços reais como no cmd/api, com armazenamento em memória.
func newApp(t *testing.T) *app {
	catalog := domain.PriceCatalog{Full: "price_full", Down: "price_down", Recurring: "price_rec"}
	store := repository.NewMemoryStore()
	scheduler := &countingScheduler{}

	verifier, err := webhook.NewVerifier(scenarioSecret, 0)
	require.NoError(t, err)
	webhooks, err := service.NewWebhookService(verifier, service.Collaborators{
		Enroller:  collaborator.NewRepositoryEnroller(store.Enrollments()),
		Notifier:  collaborator.NewLogNotifier("https://portal.example"),
		Access:    collaborator.NewRepositoryAccessManager(store.Enrollments()),
		Scheduler: scheduler,
		Ledger:    store.Installments(),
	}, service.WebhookPolicy{
		DefaultCourseID:        "soc-analyst-foundations",
		DefaultPaymentPlan:     "full",
		InstallmentCount:       6,
		InstallmentCountSource: service.CountByAttempt,
	})
	require.NoError(t, err)

	router := Routes(
		NewCheckoutHandler(
			service.NewAgreementService(store.Agreements(), catalog, "soc-analyst-foundations"),
			service.NewCheckoutService(catalog, collaborator.NewPlaceholderSessionCreator(), "https://techstep.example"),
		),
		NewStripeWebhookHandler(webhooks),
	)
	return &app{router: router, store: store, scheduler: scheduler}
}

func (a *app) sendWebhook(body, secret string) *httptest.ResponseRecorder {
	payload := []byte(body)
	req := httptest.NewRequest(http.MethodPost, "/stripe/webhook", bytes.NewReader(payload))
	signed := stripewebhook.GenerateTestSignedPayload(&stripewebhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: time.Now(),
	})
	req.Header.Set("Stripe-Signature", signed.Header)
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

func TestScenario_Agreement(t *testing.T) {
	a := newApp(t)

	rr := postJSON(t, a.router, "/agreement/store", map[string]interface{}{
		"course":            "soc-analyst-foundations",
		"paymentPlan":       "monthly",
		"customerName":      "Jane Doe",
		"customerEmail":     "jane@example.com",
		"agreementAccepted": true,
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp agreementResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AgreementID)

	list, _ := a.store.Agreements().List(context.Background())
	require.Len(t, list, 1)
	assert.Equal(t, resp.AgreementID, list[0].ID)

	// Aceite falso não grava nada.
	rr = postJSON(t, a.router, "/agreement/store", map[string]interface{}{
		"course":            "soc-analyst-foundations",
		"paymentPlan":       "monthly",
		"customerName":      "Jane Doe",
		"customerEmail":     "jane@example.com",
		"agreementAccepted": false,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	list, _ = a.store.Agreements().List(context.Background())
	assert.Len(t, list, 1)
}

func TestScenario_MonthlySessionConfig(t *testing.T) {
	a := newApp(t)

	rr := postJSON(t, a.router, "/checkout/create", map[string]string{
		"paymentPlan": "monthly",
		"courseId":    "soc-analyst-foundations",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var sess domain.CheckoutSession
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sess))
	assert.Equal(t, []domain.LineItem{
		{Price: "price_down", Quantity: 1},
		{Price: "price_rec", Quantity: 1},
	}, sess.Config.LineItems)
	assert.Equal(t, domain.SessionModeRecurring, sess.Config.Mode)
	assert.Contains(t, sess.CheckoutURL, "monthly_soc-analyst-foundations_")
	assert.Contains(t, sess.SessionID, "cs_test_")
}

func TestScenario_CheckoutCompletedWebhook(t *testing.T) {
	a := newApp(t)
	body := `{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_1","customer":"cus_1",
		"customer_details":{"email":"jane@example.com","name":"Jane Doe"},
		"metadata":{"courseId":"soc-analyst-foundations","paymentPlan":"monthly"}}}}`

	rr := a.sendWebhook(body, "whsec_wrong")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	list, _ := a.store.Enrollments().List(context.Background())
	assert.Empty(t, list)

	rr = a.sendWebhook(body, scenarioSecret)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"received":true}`, rr.Body.String())
	list, _ = a.store.Enrollments().List(context.Background())
	assert.Len(t, list, 1)
}

func TestScenario_InstallmentTermination(t *testing.T) {
	for _, tc := range []struct {
		name   string
		object string
		calls  int
	}{
		{name: "6 tentativas", object: `{"id":"in_1","subscription":"sub_1","attempt_count":6}`, calls: 1},
		{name: "5 tentativas", object: `{"id":"in_1","subscription":"sub_1","attempt_count":5}`, calls: 0},
		{name: "6 tentativas sem assinatura", object: `{"attempt_count":6}`, calls: 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a := newApp(t)
			body := `{"type":"invoice.payment_succeeded","data":{"object":` + tc.object + `}}`

			rr := a.sendWebhook(body, scenarioSecret)
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Len(t, a.scheduler.calls, tc.calls)
		})
	}
}

func TestScenario_UnknownEventIsAcknowledged(t *testing.T) {
	a := newApp(t)
	rr := a.sendWebhook(`{"type":"charge.refunded","data":{"object":{"id":"ch_1"}}}`, scenarioSecret)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = a.sendWebhook(`{"data":{}}`, scenarioSecret)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"received":true}`, rr.Body.String())
}
