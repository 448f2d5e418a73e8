package http

import (
	"net/http"

	"github.com/MKhiriev/report-buddy/internal/app"
	"github.com/MKhiriev/report-buddy/internal/service"
	"github.com/MKhiriev/report-buddy/internal/utils"
	"github.com/MKhiriev/report-buddy/models"
	"github.com/go-chi/chi/v5"
)

type messageResponse struct {
	Message string `json:"message"`
}

func (h *Handler) createReport(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req models.CreateReportRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	report, err := h.services.ReportService.CreateReport(r.Context(), id, req)
	if err != nil {
		h.respondError(w, r, err, app.MsgFailedToCreateReport)
		return
	}

	_, _ = utils.WriteJSON(w, report, http.StatusCreated)
}

// listReports accepts the optional page, limit and status query parameters.
func (h *Handler) listReports(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	page, okPage := positiveQueryInt(r, "page", defaultPage)
	limit, okLimit := positiveQueryInt(r, "limit", defaultLimit)
	if !okPage || !okLimit {
		utils.WriteError(w, app.MsgInvalidQueryParams, http.StatusBadRequest)
		return
	}

	filter := models.ReportListFilter{UserID: id, Page: page, Limit: limit}
	if status := r.URL.Query().Get("status"); status != "" {
		s := models.ReportStatus(status)
		filter.Status = &s
	}

	list, err := h.services.ReportService.ListReports(r.Context(), filter)
	if err != nil {
		h.respondError(w, r, err, app.MsgFailedToGetReports)
		return
	}

	_, _ = utils.WriteJSON(w, list, http.StatusOK)
}

func (h *Handler) getReport(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	report, err := h.services.ReportService.GetReport(r.Context(), id, chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err, app.MsgFailedToGetReport)
		return
	}

	_, _ = utils.WriteJSON(w, report, http.StatusOK)
}

func (h *Handler) updateReport(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var update models.ReportUpdate
	if !decodeJSON(w, r, &update) {
		return
	}

	report, err := h.services.ReportService.UpdateReport(r.Context(), id, chi.URLParam(r, "id"), update)
	if err != nil {
		h.respondError(w, r, err, app.MsgFailedToUpdateReport)
		return
	}

	_, _ = utils.WriteJSON(w, report, http.StatusOK)
}

func (h *Handler) deleteReport(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	if err := h.services.ReportService.DeleteReport(r.Context(), id, chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, err, app.MsgFailedToDeleteReport)
		return
	}

	_, _ = utils.WriteJSON(w, messageResponse{Message: app.MsgReportDeleted}, http.StatusOK)
}

func (h *Handler) suggestCharges(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	suggestions, err := h.services.ReportService.SuggestCharges(r.Context(), id, chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err, app.MsgFailedToSuggestCharges,
			messageOverride{target: service.ErrNoReportContent, message: app.MsgReportHasNoContent})
		return
	}

	_, _ = utils.WriteJSON(w, suggestions, http.StatusOK)
}

func (h *Handler) checkElements(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req models.CheckElementsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	analysis, err := h.services.ReportService.CheckElements(r.Context(), id, chi.URLParam(r, "id"), req)
	if err != nil {
		h.respondError(w, r, err, app.MsgFailedToCheckElements,
			messageOverride{target: service.ErrNoReportContent, message: app.MsgReportHasNoContent})
		return
	}

	_, _ = utils.WriteJSON(w, analysis, http.StatusOK)
}
