package http

import (
	"github.com/MKhiriev/report-buddy/internal/app"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(withSecurityHeaders)
	router.Use(h.withCORS)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGzip)
	router.Use(h.withBodyLimit)

	router.Route("/api", func(r chi.Router) {
		r.Use(h.rateLimit(h.limiters.General, app.MsgTooManyRequests))

		// routes without authorization
		r.Get("/health", h.health)
		r.Get("/version", h.getServerVersion)
		r.Post("/stripe/webhook", h.stripeWebhook)

		r.Route("/auth", func(r chi.Router) {
			r.Use(h.rateLimit(h.limiters.Auth, app.MsgTooManyAuthAttempts))
			r.Use(h.auth)

			r.Post("/verify", h.verify)
			r.Put("/profile", h.updateAuthProfile)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Use(h.rateLimit(h.limiters.AI, app.MsgTooManyRequests))
			r.Use(h.auth)

			r.Post("/", h.createReport)
			r.Get("/", h.listReports)
			r.Get("/{id}", h.getReport)
			r.Put("/{id}", h.updateReport)
			r.Delete("/{id}", h.deleteReport)

			r.Group(func(r chi.Router) {
				r.Use(h.requireSubscription)

				r.Post("/{id}/suggest-charges", h.suggestCharges)
				r.Post("/{id}/check-elements", h.checkElements)
			})
		})

		r.Route("/generate", func(r chi.Router) {
			r.Use(h.rateLimit(h.limiters.AI, app.MsgTooManyRequests))
			r.Use(h.auth)
			r.Use(h.requireSubscription)

			r.Post("/check", h.checkTranscript)
			r.Post("/report", h.generateReport)
			r.Post("/refine", h.refineReport)
		})

		r.Route("/legal", func(r chi.Router) {
			r.Use(h.rateLimit(h.limiters.AI, app.MsgTooManyRequests))
			r.Use(h.auth)
			r.Use(h.requireSubscription)

			r.Post("/analyze/{reportId}", h.analyzeReport)
			r.Post("/policy", h.uploadPolicy)
			r.Get("/policies", h.listPolicies)
			r.Delete("/policy/{id}", h.deletePolicy)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/", h.getProfile)
			r.Put("/", h.updateProfile)
			r.Put("/style/{reportType}", h.updateStyle)
			r.Post("/examples", h.uploadExample)
			r.Get("/examples", h.listExamples)
			r.Delete("/examples/{id}", h.deleteExample)
		})

		r.Route("/court-prep", func(r chi.Router) {
			r.Use(h.rateLimit(h.limiters.AI, app.MsgTooManyRequests))
			r.Use(h.auth)
			r.Use(h.requirePro)

			r.Post("/start", h.startCourtPrep)
			r.Post("/message", h.courtPrepMessage)
			r.Post("/debrief", h.courtPrepDebrief)
			r.Post("/end", h.endCourtPrep)
			r.Get("/session/{id}", h.getCourtPrepSession)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Post("/stripe/create-checkout-session", h.createCheckoutSession)
			r.Post("/stripe/create-portal-session", h.createPortalSession)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
