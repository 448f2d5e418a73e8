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
)

// auth is an HTTP middleware that enforces bearer token authentication.
//
// It extracts the token from the "Authorization" header, verifies it with
// the configured [adapter.TokenVerifier] and resolves the identity to a local
// account via [service.UserService.Resolve], creating the account on first
// sight. On success the account is stored in the request context with
// [utils.WithUser] and the request logger is tagged with the user id.
//
// Rejections:
//   - missing or malformed header: 401 "Access token required"
//   - expired token: 401 "Token expired"
//   - malformed token or bad signature: 401 "Invalid token"
//   - any other verification failure: 403 "Authentication failed"
//   - first sight without an email: 400 "Email is required for registration"
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		token, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			log.Debug().Err(err).Msg("missing bearer token")
			utils.WriteError(w, app.MsgAccessTokenRequired, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		identity, err := h.verifier.Verify(ctx, token)
		if err != nil {
			switch {
			case errors.Is(err, adapter.ErrTokenExpired):
				log.Debug().Err(err).Msg("token expired")
				utils.WriteError(w, app.MsgTokenExpired, http.StatusUnauthorized)
			case errors.Is(err, adapter.ErrInvalidToken):
				log.Warn().Err(err).Msg("invalid token")
				utils.WriteError(w, app.MsgInvalidToken, http.StatusUnauthorized)
			default:
				log.Err(err).Msg("token verification failed")
				utils.WriteError(w, app.MsgAuthenticationFailed, http.StatusForbidden)
			}
			return
		}

		user, err := h.services.UserService.Resolve(ctx, identity)
		if err != nil {
			if errors.Is(err, service.ErrEmailRequired) {
				log.Debug().Str("uid", identity.UID).Msg("identity without email")
				utils.WriteError(w, app.MsgEmailRequired, http.StatusBadRequest)
				return
			}
			log.Err(err).Str("uid", identity.UID).Msg("failed to resolve user")
			utils.WriteError(w, app.MsgInternalServerError, http.StatusInternalServerError)
			return
		}

		userLog := log.WithUser(user.ID)
		ctx = userLog.WithContext(utils.WithUser(ctx, &user))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireSubscription rejects users without an active subscription or trial.
func (h *Handler) requireSubscription(next http.Handler) http.Handler {
	return h.gate(next, false)
}

// requirePro rejects users without access to the pro tier. Users without
// any subscription get the subscription-required answer instead.
func (h *Handler) requirePro(next http.Handler) http.Handler {
	return h.gate(next, true)
}

// denial returns the message and code for a refused request, or "" when
// access is granted.
func denial(a service.Access, pro bool) (message, code string) {
	switch {
	case !a.Subscribed:
		return app.MsgSubscriptionRequired, app.CodeSubscriptionRequired
	case pro && !a.Pro:
		return app.MsgProSubscriptionRequired, app.CodeProRequired
	default:
		return "", ""
	}
}

func (h *Handler) gate(next http.Handler, pro bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := userID(w, r)
		if !ok {
			return
		}

		access, err := h.services.AccessService.Evaluate(r.Context(), id)
		if err != nil {
			log := logger.FromRequest(r)
			if errors.Is(err, store.ErrUserNotFound) {
				log.Warn().Err(err).Msg("subscription check for unknown user")
				_, _ = utils.WriteJSON(w, utils.ErrorResponse{
					Error: app.MsgUserNotFound,
					Code:  app.CodeSubscriptionRequired,
				}, http.StatusForbidden)
				return
			}
			log.Err(err).Msg("failed to verify subscription")
			utils.WriteError(w, app.MsgFailedToVerifySubscription, http.StatusInternalServerError)
			return
		}

		if message, code := denial(access, pro); code != "" {
			logger.FromRequest(r).Info().Str("code", code).Msg("access denied")
			_, _ = utils.WriteJSON(w, utils.ErrorResponse{Error: message, Code: code}, http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

