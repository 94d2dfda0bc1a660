package salarycategory

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
	GetAll() ([]*SalaryCategory, *internal.AppError)
	Create(dto CreateCategoryDTO) (*SalaryCategory, *internal.AppError)
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

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, appErr := h.Service.GetAll()
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var dto CreateCategoryDTO
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

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if appErr := h.Service.Delete(chi.URLParam(r, "id")); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
