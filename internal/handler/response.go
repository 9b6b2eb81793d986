package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/showtrack/showtrack-go/internal/model"
	"github.com/showtrack/showtrack-go/internal/service"
)

const maxBodyBytes = 1 << 20 // 1MB

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// errorResponse builds the {message, errors} body. The errors field echoes
// the underlying cause for diagnostics and is omitted when there is none.
func errorResponse(err error) model.ErrorResponse {
	resp := model.ErrorResponse{Message: service.Outcome(err).Error()}
	if cause := service.Cause(err); cause != nil {
		resp.Errors = cause.Error()
	}
	return resp
}

// decodeJSON reads a size-limited JSON body into v. On failure it writes the
// response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, model.ErrorResponse{Message: "request body too large"})
			return false
		}
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Message: "invalid request body", Errors: err.Error()})
		return false
	}
	return true
}
