package http

import (
	"net/http"

	"github.com/MKhiriev/report-buddy/internal/app"
	"github.com/MKhiriev/report-buddy/internal/utils"
	"github.com/MKhiriev/report-buddy/models"
	"github.com/go-chi/chi/v5"
)

type courtPrepReply struct {
	Response string `json:"response"`
}

type courtPrepDebrief struct {
	Debrief string `json:"debrief"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func (h *Handler) startCourtPrep(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req models.CourtPrepStartRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	start, err := h.services.CourtPrepService.StartSession(r.Context(), id, req)
	if err != nil {
		h.respondError(w, r, err, app.MsgFailedToStartSession)
		return
	}

	_, _ = utils.WriteJSON(w, start, http.StatusOK)
}

func (h *Handler) courtPrepMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req models.CourtPrepMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	reply, err := h.services.CourtPrepService.SendMessage(r.Context(), id, req)
	if err != nil {
		h.respondError(w, r, err, app.MsgFailedToProcessMessage)
		return
	}

	_, _ = utils.WriteJSON(w, courtPrepReply{Response: reply}, http.StatusOK)
}

func (h *Handler) courtPrepDebrief(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req models.CourtPrepSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	debrief, err := h.services.CourtPrepService.Debrief(r.Context(), id, req)
	if err != nil {
		h.respondError(w, r, err, app.MsgFailedToGenerateDebrief)
		return
	}

	_, _ = utils.WriteJSON(w, courtPrepDebrief{Debrief: debrief}, http.StatusOK)
}

func (h *Handler) endCourtPrep(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req models.CourtPrepSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.services.CourtPrepService.EndSession(r.Context(), id, req); err != nil {
		h.respondError(w, r, err, app.MsgFailedToEndSession)
		return
	}

	_, _ = utils.WriteJSON(w, successResponse{Success: true}, http.StatusOK)
}

func (h *Handler) getCourtPrepSession(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	transcript, err := h.services.CourtPrepService.GetTranscript(r.Context(), id, chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err, app.MsgFailedToGetSession)
		return
	}

	_, _ = utils.WriteJSON(w, transcript, http.StatusOK)
}
