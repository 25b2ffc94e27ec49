package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/pkordes/campmatch/internal/domain"
	"github.com/pkordes/campmatch/internal/validation"
)

// ErrorDetail is the body of every non-2xx response:
// {"error":{"code":"...","message":"..."}}.
type ErrorDetail struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Fields  []validation.FieldError `json:"fields,omitempty"`
}

// ErrorResponse wraps ErrorDetail.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("handler: encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

func notFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, "not_found", message)
}

func badRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, "invalid_request", message)
}

// validationFailed renders a 422. Field details are included when err
// carries them.
func validationFailed(w http.ResponseWriter, err error) {
	detail := ErrorDetail{Code: "validation_error", Message: publicMessage(err)}
	var verr *validation.Error
	if errors.As(err, &verr) {
		detail.Fields = verr.Fields
	}
	writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: detail})
}

// internalError logs err and renders a generic 500 so store details never
// reach the client.
func internalError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}

// serviceError maps a service error to a response. notFoundMsg is used for
// domain.ErrNotFound since only the handler knows what was looked up.
func serviceError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		notFound(w, notFoundMsg)
	case errors.Is(err, domain.ErrValidation):
		validationFailed(w, err)
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", publicMessage(err))
	default:
		internalError(w, r, err)
	}
}

// opPrefix matches the "pkg.Type.Method: " context every layer prepends.
var opPrefix = regexp.MustCompile(`^([a-z]+\.[A-Za-z]+\.[A-Za-z]+: )+`)

// publicMessage strips wrapping context and the trailing sentinel from err:
// "service.SessionService.Save: step must not be negative: validation error"
// becomes "step must not be negative".
func publicMessage(err error) string {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return verr.Error()
	}
	msg := opPrefix.ReplaceAllString(err.Error(), "")
	for _, sentinel := range []error{domain.ErrValidation, domain.ErrConflict, domain.ErrNotFound} {
		if trimmed := strings.TrimSuffix(msg, ": "+sentinel.Error()); trimmed != msg {
			return trimmed
		}
	}
	return msg
}
