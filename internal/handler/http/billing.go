package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/MKhiriev/report-buddy/internal/app"
	"github.com/MKhiriev/report-buddy/internal/logger"
	"github.com/MKhiriev/report-buddy/internal/service"
	"github.com/MKhiriev/report-buddy/internal/utils"
	"github.com/MKhiriev/report-buddy/models"
)

const stripeSignatureHeader = "Stripe-Signature"

type webhookResponse struct {
	Received bool `json:"received"`
}

// createCheckoutSession accepts an optional {"plan"} body; an empty body
// selects the standard plan.
func (h *Handler) createCheckoutSession(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req models.CheckoutRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}

	url, err := h.services.BillingService.CreateCheckout(r.Context(), id, req)
	if err != nil {
		h.respondError(w, r, err, app.MsgFailedToCreateCheckout)
		return
	}

	_, _ = utils.WriteJSON(w, url, http.StatusOK)
}

func (h *Handler) createPortalSession(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	url, err := h.services.BillingService.CreatePortal(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err, app.MsgFailedToCreatePortal)
		return
	}

	_, _ = utils.WriteJSON(w, url, http.StatusOK)
}

// stripeWebhook verifies the signature over the raw body. Once verified the
// event is always acknowledged.
func (h *Handler) stripeWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		logger.FromRequest(r).Warn().Err(err).Msg("failed to read webhook body")
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			utils.WriteError(w, app.MsgRequestBodyTooLarge, http.StatusRequestEntityTooLarge)
			return
		}
		utils.WriteError(w, app.MsgInvalidWebhookPayload, http.StatusBadRequest)
		return
	}

	err = h.services.BillingService.HandleWebhook(r.Context(), payload, r.Header.Get(stripeSignatureHeader))
	switch {
	case err == nil:
		_, _ = utils.WriteJSON(w, webhookResponse{Received: true}, http.StatusOK)
	case errors.Is(err, service.ErrBillingDisabled):
		h.respondError(w, r, err, app.MsgBillingNotConfigured)
	default:
		logger.FromRequest(r).Warn().Err(err).Msg("webhook rejected")
		utils.WriteError(w, messageFromError(err, app.MsgInvalidWebhookSignature, nil), http.StatusBadRequest)
	}
}
