package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/chessmind/chess-backend/internal/apperror"
)

// errorEnvelope - the JSON body every failed request carries.
type errorEnvelope struct {
	Error     bool           `json:"error"`
	Message   string         `json:"message"`
	ErrorCode string         `json:"error_code"`
	Details   map[string]any `json:"details,omitempty"`
	Status    int            `json:"status_code"`
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

// writeError renders a structured application error, or a generic 500 when
// the failure is not one of ours.
func (that *handlers) writeError(w http.ResponseWriter, err error) {
	envelope := errorEnvelope{
		Error:     true,
		Message:   "Internal server error",
		ErrorCode: apperror.CodeInternal,
		Status:    http.StatusInternalServerError,
	}

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		envelope.Message = appErr.Message
		envelope.ErrorCode = appErr.Code
		envelope.Details = appErr.Details
		envelope.Status = appErr.Status
	} else {
		that.logger.Error("unhandled error", "error", err)
	}

	w.Header().Set("X-Error-Handled", "true")
	w.Header().Set("X-Request-Id", uuid.NewString())

	that.writeJSON(w, envelope.Status, envelope)
}

func (that *handlers) writeValidationError(w http.ResponseWriter, field, reason string) {
	that.writeError(w, apperror.Validation(field, nil, reason))
}
