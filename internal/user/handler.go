package user

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/kprasanna/staff-management/internal"
	"github.com/kprasanna/staff-management/internal/auth"
	"github.com/kprasanna/staff-management/internal/transport"
	"github.com/kprasanna/staff-management/pkg/logger"
)

type ServiceAPI interface {
	Create(identity internal.SessionIdentity, dto CreateUserDTO) (*auth.SanitizedUser, *internal.AppError)
	UpdatePassword(identity internal.SessionIdentity, dto UpdatePasswordDTO) *internal.AppError
	List() ([]auth.SanitizedUser, *internal.AppError)
	Update(identity internal.SessionIdentity, userID string, dto UpdateUserDTO) (*auth.SanitizedUser, *internal.AppError)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// CreateUser handles POST /auth-create-user. Runs behind the session
// middleware; the service enforces the admin requirement.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := internal.SessionFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrSessionInvalid)
		return
	}

	var dto CreateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, appErr := h.Service.Create(identity, dto)
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"user": created})
}

// UpdatePassword handles POST /auth-update-password.
func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := internal.SessionFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrSessionInvalid)
		return
	}

	var dto UpdatePasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if appErr := h.Service.UpdatePassword(identity, dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ListUsers handles GET /users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, appErr := h.Service.List()
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

// UpdateUser handles PATCH /users/{id}.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := internal.SessionFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrSessionInvalid)
		return
	}

	var dto UpdateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, appErr := h.Service.Update(identity, chi.URLParam(r, "id"), dto)
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"user": updated})
}
