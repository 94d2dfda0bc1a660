package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/kprasanna/staff-management/internal"
	"github.com/kprasanna/staff-management/internal/transport"
	"github.com/kprasanna/staff-management/pkg/logger"
)

type ServiceAPI interface {
	Login(dto LoginDTO) (*LoginResult, *internal.AppError)
	Logout(token string) *internal.AppError
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Guard   *Guard
}

func NewHandler(svc ServiceAPI, guard *Guard) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
		Guard:       guard,
	}
}

// Login handles POST /auth-login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, appErr := h.Service.Login(dto)
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

// Logout handles POST /auth-logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := h.ExtractSessionToken(r)
	if appErr := h.Service.Logout(token); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SessionMiddleware resolves the x-session-token header and attaches the
// caller's identity to the request context. Requests without a valid
// session never reach the wrapped handler.
func (h *Handler) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, appErr := h.Guard.RequireSession(h.ExtractSessionToken(r))
		if appErr != nil {
			h.WriteAppError(w, appErr)
			return
		}

		ctx := internal.ContextWithSession(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin guards admin-only routes. Must run inside
// SessionMiddleware.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := internal.SessionFromContext(r.Context())
		if !ok {
			h.WriteAppError(w, internal.ErrSessionInvalid)
			return
		}
		if appErr := h.Guard.RequireAdmin(identity); appErr != nil {
			h.WriteAppError(w, appErr)
			return
		}
		next.ServeHTTP(w, r)
	})
}
