package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"taskapi/internal/redact"
)

// Envelope is the uniform response shape returned by every endpoint:
// {success, message, data, meta?} on success and {success:false, message,
// errors?} on failure.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    interface{}     `json:"data,omitempty"`
	Meta    *PaginationMeta `json:"meta,omitempty"`
	Errors  []FieldError    `json:"errors,omitempty"`
}

// PaginationMeta carries the pagination envelope returned alongside every
// list response.
type PaginationMeta struct {
	Total       int `json:"total"`
	CurrentPage int `json:"currentPage"`
	LastPage    int `json:"lastPage"`
	Limit       int `json:"limit"`
}

// FieldError describes one field-level validation failure.
type FieldError struct {
	Field string   `json:"field"`
	Error []string `json:"error"`
}

// DefaultSuccessMessage is used when a handler has nothing more specific to
// say about a successful request.
const DefaultSuccessMessage = "Request successful"

// RespondWithJSON writes a JSON response with the given status code and body.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithData writes a success envelope wrapping the given payload.
func RespondWithData(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	RespondWithJSON(w, r, status, Envelope{
		Success: true,
		Message: DefaultSuccessMessage,
		Data:    data,
	})
}

// RespondWithPage writes a success envelope wrapping one page of items plus
// its pagination meta.
func RespondWithPage(w http.ResponseWriter, r *http.Request, items interface{}, meta PaginationMeta) {
	RespondWithJSON(w, r, http.StatusOK, Envelope{
		Success: true,
		Message: DefaultSuccessMessage,
		Data:    items,
		Meta:    &meta,
	})
}

// RespondWithError writes a failure envelope with the given status code and
// user-facing message.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	slog.Debug("sending error response",
		"status_code", status,
		"message", message,
		"trace_id", GetTraceID(r.Context()),
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, Envelope{
		Success: false,
		Message: message,
	})
}

// RespondWithValidationErrors writes a failure envelope carrying field-level
// validation errors.
func RespondWithValidationErrors(w http.ResponseWriter, r *http.Request, errs []FieldError) {
	RespondWithJSON(w, r, http.StatusBadRequest, Envelope{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// RespondWithErrorAndLog writes a sanitized failure envelope and logs the
// underlying error with its trace ID. The raw error never reaches the
// client; 5xx responses log at ERROR level, everything else at DEBUG.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, Envelope{
		Success: false,
		Message: userMessage,
	})
}
