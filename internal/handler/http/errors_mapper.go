package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/report-buddy/internal/adapter"
	"github.com/MKhiriev/report-buddy/internal/app"
	"github.com/MKhiriev/report-buddy/internal/logger"
	"github.com/MKhiriev/report-buddy/internal/service"
	"github.com/MKhiriev/report-buddy/internal/store"
	"github.com/MKhiriev/report-buddy/internal/utils"
	"github.com/MKhiriev/report-buddy/internal/validators"
)

var errorStatusMap = map[error]int{
	service.ErrEmailRequired:        http.StatusBadRequest,
	service.ErrNoReportContent:      http.StatusBadRequest,
	service.ErrExampleQuotaExceeded: http.StatusBadRequest,
	service.ErrSessionNotActive:     http.StatusBadRequest,
	service.ErrSessionCompleted:     http.StatusBadRequest,
	service.ErrAlreadySubscribed:    http.StatusBadRequest,
	service.ErrNoBillingAccount:     http.StatusBadRequest,
	service.ErrAIUnavailable:        http.StatusBadGateway,
	service.ErrAIInvalidResponse:    http.StatusBadGateway,
	service.ErrBillingDisabled:      http.StatusServiceUnavailable,

	adapter.ErrInvalidSignature: http.StatusBadRequest,
	adapter.ErrMalformedEvent:   http.StatusBadRequest,

	store.ErrUserNotFound:         http.StatusNotFound,
	store.ErrReportNotFound:       http.StatusNotFound,
	store.ErrStyleProfileNotFound: http.StatusNotFound,
	store.ErrExampleNotFound:      http.StatusNotFound,
	store.ErrPolicyNotFound:       http.StatusNotFound,
	store.ErrSessionNotFound:      http.StatusNotFound,
	store.ErrExampleQuotaExceeded: http.StatusBadRequest,
	store.ErrSessionNotActive:     http.StatusBadRequest,
	store.ErrSessionCompleted:     http.StatusBadRequest,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
	store.ErrEncodingJSON:         http.StatusInternalServerError,
}

// errorMessageMap holds the client-facing message of every error whose
// status is below 500. Server failures use the message of the route.
var errorMessageMap = map[error]string{
	service.ErrEmailRequired:        app.MsgEmailRequired,
	service.ErrNoReportContent:      app.MsgNoContentToAnalyze,
	service.ErrExampleQuotaExceeded: app.MsgExampleQuotaExceeded,
	service.ErrSessionNotActive:     app.MsgSessionNotActive,
	service.ErrSessionCompleted:     app.MsgSessionAlreadyCompleted,
	service.ErrAlreadySubscribed:    app.MsgAlreadySubscribed,
	service.ErrNoBillingAccount:     app.MsgNoBillingAccount,
	service.ErrAIUnavailable:        app.MsgAIUnavailable,
	service.ErrAIInvalidResponse:    app.MsgAIInvalidResponse,
	service.ErrBillingDisabled:      app.MsgBillingNotConfigured,

	adapter.ErrInvalidSignature: app.MsgInvalidWebhookSignature,
	adapter.ErrMalformedEvent:   app.MsgInvalidWebhookPayload,

	store.ErrUserNotFound:         app.MsgUserNotFound,
	store.ErrReportNotFound:       app.MsgReportNotFound,
	store.ErrStyleProfileNotFound: app.MsgStyleProfileNotFound,
	store.ErrExampleNotFound:      app.MsgExampleNotFound,
	store.ErrPolicyNotFound:       app.MsgPolicyNotFound,
	store.ErrSessionNotFound:      app.MsgSessionNotFound,
	store.ErrExampleQuotaExceeded: app.MsgExampleQuotaExceeded,
	store.ErrSessionNotActive:     app.MsgSessionNotActive,
	store.ErrSessionCompleted:     app.MsgSessionAlreadyCompleted,
}

func statusFromError(err error) int {
	if errors.Is(err, validators.ErrInvalidInput) {
		return http.StatusBadRequest
	}
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageOverride replaces the message of target on a single route.
type messageOverride struct {
	target  error
	message string
}

func messageFromError(err error, fallback string, overrides []messageOverride) string {
	for _, o := range overrides {
		if errors.Is(err, o.target) {
			return o.message
		}
	}

	var inputErr *validators.InputError
	if errors.As(err, &inputErr) {
		return inputErr.Error()
	}

	for target, message := range errorMessageMap {
		if errors.Is(err, target) {
			return message
		}
	}
	return fallback
}

// respondError writes the JSON error reply for err. fallback is the message
// of unmapped failures.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error, fallback string, overrides ...messageOverride) {
	status := statusFromError(err)
	body := utils.ErrorResponse{
		Error:     messageFromError(err, fallback, overrides),
		Retryable: errors.Is(err, service.ErrAIInvalidResponse),
	}

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg(fallback)
	} else {
		log.Debug().Err(err).Int("status", status).Msg(body.Error)
	}

	_, _ = utils.WriteJSON(w, body, status)
}
