package http

import (
	"net/http"

	"github.com/MKhiriev/report-buddy/internal/app"
	"github.com/MKhiriev/report-buddy/internal/service"
	"github.com/MKhiriev/report-buddy/internal/utils"
	"github.com/MKhiriev/report-buddy/models"
)

func (h *Handler) checkTranscript(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateCheckRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	check, err := h.services.GenerationService.CheckTranscript(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err, app.MsgFailedToCheckTranscript)
		return
	}

	_, _ = utils.WriteJSON(w, check, http.StatusOK)
}

func (h *Handler) generateReport(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req models.GenerateReportRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	generated, err := h.services.GenerationService.GenerateReport(r.Context(), id, req)
	if err != nil {
		h.respondError(w, r, err, app.MsgFailedToGenerateReport)
		return
	}

	_, _ = utils.WriteJSON(w, generated, http.StatusOK)
}

func (h *Handler) refineReport(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req models.RefineRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	refined, err := h.services.GenerationService.RefineReport(r.Context(), id, req)
	if err != nil {
		h.respondError(w, r, err, app.MsgFailedToRefineReport,
			messageOverride{target: service.ErrNoReportContent, message: app.MsgNoContentToRefine})
		return
	}

	_, _ = utils.WriteJSON(w, refined, http.StatusOK)
}
