// internal/common/errors/handler.go
package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorHandler writes errors to HTTP responses with standardized bodies.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// detailBody is the wire shape of every error response.
type detailBody struct {
	Detail string `json:"detail"`
}

// WriteError normalizes err and writes it as a JSON {"detail": ...} body.
func (h *ErrorHandler) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := h.normalizeError(err)

	if apiErr.Status >= http.StatusInternalServerError {
		h.logger.Error("request failed", map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
			"code":   string(apiErr.Code),
			"error":  err.Error(),
		})
	} else {
		h.logger.Warn("request rejected", map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
			"code":   string(apiErr.Code),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	_ = json.NewEncoder(w).Encode(detailBody{Detail: apiErr.Detail})
}

// normalizeError ensures we always have an APIError
func (h *ErrorHandler) normalizeError(err error) *APIError {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr
	}
	return NewInternalError(err)
}
