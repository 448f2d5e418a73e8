// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// buildRouter creates a minimal chi.Mux shaped like the API: a mounted
// sub-router with URL parameters. It does not use Handler.Init() to avoid
// service setup.
func buildRouter() *chi.Mux {
	router := chi.NewRouter()

	router.Route("/api/reports", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("reports"))
		})
		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		})
		r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(chi.URLParam(r, "id")))
		})
		r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})
	router.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

// ─────────────────────────────────────────────
// CheckHTTPMethod
// ─────────────────────────────────────────────

func TestCheckHTTPMethod_TableTest(t *testing.T) {
	router := buildRouter()

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{name: "GET list", method: http.MethodGet, path: "/api/reports", expectedStatus: http.StatusOK},
		{name: "POST create", method: http.MethodPost, path: "/api/reports", expectedStatus: http.StatusCreated},
		{name: "GET by id", method: http.MethodGet, path: "/api/reports/r1", expectedStatus: http.StatusOK},
		{name: "DELETE by id", method: http.MethodDelete, path: "/api/reports/r1", expectedStatus: http.StatusOK},
		{name: "GET health", method: http.MethodGet, path: "/api/health", expectedStatus: http.StatusOK},

		{name: "PATCH by id is hidden", method: http.MethodPatch, path: "/api/reports/r1", expectedStatus: http.StatusNotFound},
		{name: "PUT list is hidden", method: http.MethodPut, path: "/api/reports", expectedStatus: http.StatusNotFound},
		{name: "POST health is hidden", method: http.MethodPost, path: "/api/health", expectedStatus: http.StatusNotFound},
		{name: "unknown path", method: http.MethodGet, path: "/api/nonexistent", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func TestCheckHTTPMethod_PassThroughBody(t *testing.T) {
	router := buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/reports/abc", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "abc", rr.Body.String())
}

func TestCheckHTTPMethod_WrongMethodReturns404NotMethodNotAllowed(t *testing.T) {
	router := buildRouter()

	for _, method := range []string{http.MethodPut, http.MethodPatch, http.MethodHead} {
		t.Run(method+" /api/reports/r1", func(t *testing.T) {
			req := httptest.NewRequest(method, "/api/reports/r1", nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusNotFound, rr.Code,
				"wrong method on existing route should return 404, not 405")
		})
	}
}

func TestCheckHTTPMethod_ConcurrentRequests(t *testing.T) {
	router := buildRouter()
	const n = 50
	done := make(chan bool, n)

	for i := 0; i < n; i++ {
		go func(i int) {
			method, want := http.MethodGet, http.StatusOK
			if i%2 == 1 {
				method, want = http.MethodPatch, http.StatusNotFound
			}
			req := httptest.NewRequest(method, "/api/reports/r1", nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			done <- rr.Code == want
		}(i)
	}

	for i := 0; i < n; i++ {
		assert.True(t, <-done)
	}
}
