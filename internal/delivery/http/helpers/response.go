package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"invento/internal/domain"
)

// Error names that do not come from the domain taxonomy.
const (
	ErrNameInternal  = "InternalError"
	ErrNameRateLimit = "RateLimitError"
	ErrNameTimeout   = "TimeoutError"
)

// ErrorResponse is the body of every failed request. The frontend shows Message verbatim.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// MessageResponse is a bare acknowledgement.
// swagger:model MessageResponse
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode and encodes v.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteJSONError writes an ErrorResponse with the given status, name and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, name, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: name, Message: message})
}

// ErrorWriter translates service errors into responses.
// *domain.Error values keep their status, name and message. Anything else is logged and
// becomes a 500; its text is exposed as Detail only when ShowDetail is set.
type ErrorWriter struct {
	Logger     *slog.Logger
	ShowDetail bool
}

// NewErrorWriter returns an ErrorWriter. Details are hidden in production.
func NewErrorWriter(logger *slog.Logger, production bool) *ErrorWriter {
	return &ErrorWriter{Logger: logger, ShowDetail: !production}
}

// Write responds to r with err.
func (e *ErrorWriter) Write(w http.ResponseWriter, r *http.Request, err error) {
	var derr *domain.Error
	if errors.As(err, &derr) {
		e.Logger.DebugContext(r.Context(), "request rejected", "path", r.URL.Path, "method", r.Method, "error", derr.Name, "message", derr.Message)
		WriteJSONError(w, derr.Status, derr.Name, derr.Message)
		return
	}

	if errors.Is(err, context.DeadlineExceeded) {
		e.Logger.WarnContext(r.Context(), "request timed out", "path", r.URL.Path, "method", r.Method)
		WriteJSONError(w, http.StatusServiceUnavailable, ErrNameTimeout, "the server took too long to respond, please try again")
		return
	}

	e.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	resp := ErrorResponse{Error: ErrNameInternal, Message: "something went wrong, please try again"}
	if e.ShowDetail {
		resp.Detail = err.Error()
	}
	WriteJSON(w, http.StatusInternalServerError, resp)
}
