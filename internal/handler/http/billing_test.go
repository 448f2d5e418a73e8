package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/report-buddy/internal/adapter"
	"github.com/MKhiriev/report-buddy/internal/app"
	"github.com/MKhiriev/report-buddy/internal/service"
	"github.com/MKhiriev/report-buddy/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// checkout and portal
// ─────────────────────────────────────────────

func TestCreateCheckoutSession(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantPlan models.SubscriptionTier
	}{
		{name: "empty body", body: ""},
		{name: "pro plan", body: `{"plan":"pro"}`, wantPlan: models.TierPro},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcs := testServices()
			var got models.CheckoutRequest
			svcs.BillingService = &mockBillingService{checkoutFn: func(_ context.Context, _ string, req models.CheckoutRequest) (models.BillingURL, error) {
				got = req
				return models.BillingURL{URL: "https://checkout.stripe.test/c/1"}, nil
			}}
			api := newTestAPI(t, svcs, Limiters{})

			rr := doRequest(t, api, http.MethodPost, "/api/stripe/create-checkout-session", tt.body)

			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tt.wantPlan, got.Plan)
			assert.JSONEq(t, `{"url":"https://checkout.stripe.test/c/1"}`, rr.Body.String())
		})
	}
}

func TestCreateCheckoutSession_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{name: "already subscribed", err: service.ErrAlreadySubscribed, wantStatus: http.StatusBadRequest, wantError: app.MsgAlreadySubscribed},
		{name: "billing disabled", err: service.ErrBillingDisabled, wantStatus: http.StatusServiceUnavailable, wantError: app.MsgBillingNotConfigured},
		{name: "provider failure", err: fmt.Errorf("stripe: %s", "rate limited"), wantStatus: http.StatusInternalServerError, wantError: app.MsgFailedToCreateCheckout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcs := testServices()
			svcs.BillingService = &mockBillingService{checkoutFn: func(context.Context, string, models.CheckoutRequest) (models.BillingURL, error) {
				return models.BillingURL{}, tt.err
			}}
			api := newTestAPI(t, svcs, Limiters{})

			rr := doRequest(t, api, http.MethodPost, "/api/stripe/create-checkout-session", "")

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantError, errorBody(t, rr)["error"])
		})
	}
}

func TestCreatePortalSession(t *testing.T) {
	svcs := testServices()
	svcs.BillingService = &mockBillingService{portalFn: func(_ context.Context, userID string) (models.BillingURL, error) {
		if userID != testUserID {
			return models.BillingURL{}, service.ErrNoBillingAccount
		}
		return models.BillingURL{URL: "https://billing.stripe.test/p/1"}, nil
	}}
	api := newTestAPI(t, svcs, Limiters{})

	rr := doRequest(t, api, http.MethodPost, "/api/stripe/create-portal-session", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "https://billing.stripe.test/p/1", decodeBody[models.BillingURL](t, rr).URL)
}

func TestCreatePortalSession_NoCustomer(t *testing.T) {
	svcs := testServices()
	svcs.BillingService = &mockBillingService{portalFn: func(context.Context, string) (models.BillingURL, error) {
		return models.BillingURL{}, service.ErrNoBillingAccount
	}}
	api := newTestAPI(t, svcs, Limiters{})

	rr := doRequest(t, api, http.MethodPost, "/api/stripe/create-portal-session", "")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, app.MsgNoBillingAccount, errorBody(t, rr)["error"])
}

// ─────────────────────────────────────────────
// POST /api/stripe/webhook
// ─────────────────────────────────────────────

func sendWebhook(t *testing.T, api http.Handler, payload, signature string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/stripe/webhook", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set(stripeSignatureHeader, signature)
	}
	rr := httptest.NewRecorder()
	api.ServeHTTP(rr, req)
	return rr
}

func TestStripeWebhook_PassesRawBodyAndSignature(t *testing.T) {
	const payload = `{"id":"evt_1","type":"customer.subscription.updated"}`

	svcs := testServices()
	var (
		gotPayload   []byte
		gotSignature string
	)
	svcs.BillingService = &mockBillingService{webhookFn: func(_ context.Context, p []byte, sig string) error {
		gotPayload, gotSignature = p, sig
		return nil
	}}
	api := newTestAPI(t, svcs, Limiters{})

	rr := sendWebhook(t, api, payload, "t=1,v1=abc")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"received":true}`, rr.Body.String())
	assert.Equal(t, payload, string(gotPayload))
	assert.Equal(t, "t=1,v1=abc", gotSignature)
}

func TestStripeWebhook_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{name: "bad signature", err: fmt.Errorf("construct event: %w", adapter.ErrInvalidSignature), wantStatus: http.StatusBadRequest, wantError: app.MsgInvalidWebhookSignature},
		{name: "malformed event", err: adapter.ErrMalformedEvent, wantStatus: http.StatusBadRequest, wantError: app.MsgInvalidWebhookPayload},
		{name: "unmapped failure", err: fmt.Errorf("decode: %s", "unexpected EOF"), wantStatus: http.StatusBadRequest, wantError: app.MsgInvalidWebhookSignature},
		{name: "billing disabled", err: service.ErrBillingDisabled, wantStatus: http.StatusServiceUnavailable, wantError: app.MsgBillingNotConfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcs := testServices()
			svcs.BillingService = &mockBillingService{webhookFn: func(context.Context, []byte, string) error {
				return tt.err
			}}
			api := newTestAPI(t, svcs, Limiters{})

			rr := sendWebhook(t, api, `{}`, "t=1,v1=bad")

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantError, errorBody(t, rr)["error"])
		})
	}
}

func TestStripeWebhook_BodyTooLarge(t *testing.T) {
	api := newTestAPI(t, testServices(), Limiters{})

	rr := sendWebhook(t, api, strings.Repeat("x", 3<<20), "t=1,v1=abc")

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Equal(t, app.MsgRequestBodyTooLarge, errorBody(t, rr)["error"])
}
