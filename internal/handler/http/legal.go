package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/report-buddy/internal/app"
	"github.com/MKhiriev/report-buddy/internal/utils"
	"github.com/MKhiriev/report-buddy/models"
	"github.com/go-chi/chi/v5"
)

type policyUploadResponse struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	IsCaseLaw bool      `json:"is_case_law"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handler) analyzeReport(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	analysis, err := h.services.LegalService.AnalyzeReport(r.Context(), id, chi.URLParam(r, "reportId"))
	if err != nil {
		h.respondError(w, r, err, app.MsgFailedToAnalyzeReport)
		return
	}

	_, _ = utils.WriteJSON(w, analysis, http.StatusOK)
}

func (h *Handler) uploadPolicy(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req models.PolicyUploadRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	doc, err := h.services.LegalService.UploadPolicy(r.Context(), id, req)
	if err != nil {
		h.respondError(w, r, err, app.MsgFailedToUploadPolicy)
		return
	}

	_, _ = utils.WriteJSON(w, policyUploadResponse{
		ID:        doc.ID,
		Filename:  doc.Filename,
		IsCaseLaw: doc.IsCaseLaw,
		CreatedAt: doc.CreatedAt,
	}, http.StatusCreated)
}

// listPolicies returns document metadata without content.
func (h *Handler) listPolicies(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	docs, err := h.services.LegalService.ListPolicies(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err, app.MsgFailedToGetPolicies)
		return
	}
	if docs == nil {
		docs = []models.PolicyDocument{}
	}

	_, _ = utils.WriteJSON(w, docs, http.StatusOK)
}

func (h *Handler) deletePolicy(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	if err := h.services.LegalService.DeletePolicy(r.Context(), id, chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, err, app.MsgFailedToDeletePolicy)
		return
	}

	_, _ = utils.WriteJSON(w, messageResponse{Message: app.MsgPolicyDeleted}, http.StatusOK)
}
