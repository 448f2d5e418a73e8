package http

import (
	"net/http"

	"github.com/MKhiriev/report-buddy/internal/app"
	"github.com/MKhiriev/report-buddy/internal/utils"
	"github.com/MKhiriev/report-buddy/models"
)

type verifyResponse struct {
	Message string              `json:"message"`
	User    models.VerifiedUser `json:"user"`
}

type authProfileRequest struct {
	Name models.Optional[string] `json:"name"`
}

type authProfileResponse struct {
	Message string `json:"message"`
	Name    string `json:"name"`
}

// verify is reached only after the auth middleware resolved the account, so
// it returns the account summary.
func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	user, err := h.services.UserService.Verify(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err, app.MsgAuthenticationFailed)
		return
	}

	_, _ = utils.WriteJSON(w, verifyResponse{Message: app.MsgAuthenticationSuccessful, User: user}, http.StatusOK)
}

// updateAuthProfile changes the display name only.
func (h *Handler) updateAuthProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req authProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.services.ProfileService.UpdateProfile(r.Context(), id, models.ProfileUpdate{Name: req.Name})
	if err != nil {
		h.respondError(w, r, err, app.MsgFailedToUpdateProfile)
		return
	}

	_, _ = utils.WriteJSON(w, authProfileResponse{Message: app.MsgProfileUpdated, Name: user.Name}, http.StatusOK)
}
