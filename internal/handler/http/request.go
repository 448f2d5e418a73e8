package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/MKhiriev/report-buddy/internal/app"
	"github.com/MKhiriev/report-buddy/internal/logger"
	"github.com/MKhiriev/report-buddy/internal/utils"
)

const (
	defaultPage  = 1
	defaultLimit = 25
)

// decodeJSON reads the request body into dst. On failure it writes the error
// reply and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}

	logger.FromRequest(r).Debug().Err(err).Msg("invalid request body")

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		utils.WriteError(w, app.MsgRequestBodyTooLarge, http.StatusRequestEntityTooLarge)
		return false
	}
	utils.WriteError(w, app.MsgInvalidJSON, http.StatusBadRequest)
	return false
}

// userID returns the id of the authenticated user. It writes a 500 reply
// and returns false when the auth middleware did not run.
func userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		logger.FromRequest(r).Err(errNoUserInContext).Str("uri", r.RequestURI).Send()
		utils.WriteError(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return "", false
	}
	return id, true
}

// positiveQueryInt parses an optional positive integer query parameter.
func positiveQueryInt(r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, false
	}
	return v, true
}
