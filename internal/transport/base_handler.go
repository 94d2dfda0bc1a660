package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/kprasanna/staff-management/internal"
	"github.com/kprasanna/staff-management/pkg/logger"
)

// SessionTokenHeader carries the opaque session token. No cookies, no
// Authorization bearer convention.
const SessionTokenHeader = "x-session-token"

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.Logger.Error("http error", "status", status, "message", message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errorResp := map[string]interface{}{
		"code":    status,
		"message": message,
	}

	if err := json.NewEncoder(w).Encode(errorResp); err != nil {
		h.Logger.Error("failed to encode error response", "error", err)
	}
}

// WriteAppError maps an AppError onto the wire, including the advisory
// Retry-After header for rate-limited responses. Internal errors are
// logged with their cause but surfaced only as a generic message.
func (h *BaseHandler) WriteAppError(w http.ResponseWriter, appErr *internal.AppError) {
	if appErr.Type == internal.ErrorTypeInternal {
		h.Logger.Error("internal error", "message", appErr.Message, "cause", appErr.Cause)
	} else {
		h.Logger.Warn("request rejected", "status", appErr.StatusCode, "code", appErr.Code)
	}
	if appErr.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(appErr.RetryAfter))
	}
	status, body := appErr.ToHTTPResponse()
	h.WriteJSON(w, status, body)
}

// ExtractSessionToken reads the opaque session token from its header.
func (h *BaseHandler) ExtractSessionToken(r *http.Request) string {
	return r.Header.Get(SessionTokenHeader)
}
