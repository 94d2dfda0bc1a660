package staff

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/kprasanna/staff-management/internal"
	"github.com/kprasanna/staff-management/internal/transport"
	"github.com/kprasanna/staff-management/pkg/logger"
)

type ServiceAPI interface {
	Create(dto CreateStaffDTO) (*Staff, *internal.AppError)
	GetByID(id string) (*Staff, *internal.AppError)
	List(location string) ([]*Staff, *internal.AppError)
	Update(id string, dto UpdateStaffDTO) (*Staff, *internal.AppError)
	Delete(id string) *internal.AppError
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

func (h *Handler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var dto CreateStaffDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, appErr := h.Service.Create(dto)
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}
	h.WriteJSON(w, http.StatusOK, created)
}

func (h *Handler) GetStaff(w http.ResponseWriter, r *http.Request) {
	member, appErr := h.Service.GetByID(chi.URLParam(r, "id"))
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}
	h.WriteJSON(w, http.StatusOK, member)
}

func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	members, appErr := h.Service.List(r.URL.Query().Get("location"))
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"staff": members})
}

func (h *Handler) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	var dto UpdateStaffDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, appErr := h.Service.Update(chi.URLParam(r, "id"), dto)
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}
	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	if appErr := h.Service.Delete(chi.URLParam(r, "id")); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
