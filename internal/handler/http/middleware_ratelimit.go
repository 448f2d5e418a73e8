package http

import (
	"net/http"

	"github.com/MKhiriev/report-buddy/internal/logger"
	"github.com/MKhiriev/report-buddy/internal/ratelimit"
	"github.com/MKhiriev/report-buddy/internal/utils"
)

// rateLimit rejects requests past the quota of limiter with 429. Requests
// are bucketed by client IP. A nil limiter lets everything through.
func (h *Handler) rateLimit(limiter ratelimit.Limiter, message string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ClientIP(r, h.trusted)
			if !limiter.Allow(r.Context(), ip) {
				logger.FromRequest(r).Warn().Str("client_ip", ip).Str("uri", r.RequestURI).Msg("rate limit exceeded")
				utils.WriteError(w, message, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
