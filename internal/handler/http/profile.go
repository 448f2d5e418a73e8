package http

import (
	"net/http"

	"github.com/MKhiriev/report-buddy/internal/app"
	"github.com/MKhiriev/report-buddy/internal/utils"
	"github.com/MKhiriev/report-buddy/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	profile, err := h.services.ProfileService.GetProfile(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err, app.MsgFailedToGetProfile)
		return
	}

	_, _ = utils.WriteJSON(w, profile, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var update models.ProfileUpdate
	if !decodeJSON(w, r, &update) {
		return
	}

	user, err := h.services.ProfileService.UpdateProfile(r.Context(), id, update)
	if err != nil {
		h.respondError(w, r, err, app.MsgFailedToUpdateProfile)
		return
	}

	_, _ = utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) updateStyle(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var update models.StyleProfileUpdate
	if !decodeJSON(w, r, &update) {
		return
	}

	reportType := models.ReportType(chi.URLParam(r, "reportType"))
	profile, err := h.services.ProfileService.UpdateStyle(r.Context(), id, reportType, update)
	if err != nil {
		h.respondError(w, r, err, app.MsgFailedToUpdateStyle)
		return
	}

	_, _ = utils.WriteJSON(w, profile, http.StatusOK)
}

func (h *Handler) uploadExample(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req models.ExampleUploadRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	example, err := h.services.ProfileService.UploadExample(r.Context(), id, req)
	if err != nil {
		h.respondError(w, r, err, app.MsgFailedToUploadExample)
		return
	}

	_, _ = utils.WriteJSON(w, example, http.StatusCreated)
}

// listExamples accepts an optional report_type query filter.
func (h *Handler) listExamples(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var reportType *models.ReportType
	if raw := r.URL.Query().Get("report_type"); raw != "" {
		rt := models.ReportType(raw)
		reportType = &rt
	}

	examples, err := h.services.ProfileService.ListExamples(r.Context(), id, reportType)
	if err != nil {
		h.respondError(w, r, err, app.MsgFailedToGetExamples)
		return
	}
	if examples == nil {
		examples = []models.ExampleReportPreview{}
	}

	_, _ = utils.WriteJSON(w, examples, http.StatusOK)
}

func (h *Handler) deleteExample(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	if err := h.services.ProfileService.DeleteExample(r.Context(), id, chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, err, app.MsgFailedToDeleteExample)
		return
	}

	_, _ = utils.WriteJSON(w, messageResponse{Message: app.MsgExampleDeleted}, http.StatusOK)
}
