package server

import (
	"encoding/json"
	"net/http"

	"github.com/flowgrid/flowgrid/pkg/errors"
)

// ErrorResponse is the JSON error envelope. Code carries the machine-readable
// error code so clients can branch without parsing messages.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps structured error codes to HTTP status codes. Errors
// without a code are treated as internal and their message is not exposed.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)

	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		msg = "internal error"
		code = errors.ErrCodeInternal
	}

	writeJSON(w, status, ErrorResponse{Code: string(code), Message: msg})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidGraph,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidStyle,
		errors.ErrCodeInvalidOrientation, errors.ErrCodeInvalidRouting,
		errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeWorkflowNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeConflict:
		return http.StatusConflict
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// badRequest wraps a plain error as an INVALID_INPUT response.
func badRequest(w http.ResponseWriter, err error) {
	writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request"))
}
