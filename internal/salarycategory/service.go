package salarycategory

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/kprasanna/staff-management/internal"
	salarycategoryDatamodel "github.com/kprasanna/staff-management/internal/core/datamodel/salarycategory"
)

type RepositoryAPI interface {
	GetAll() ([]*salarycategoryDatamodel.SalaryCategory, error)
	// GetByID returns nil, nil when no record matches.
	GetByID(id string) (*salarycategoryDatamodel.SalaryCategory, error)
	Create(c *salarycategoryDatamodel.SalaryCategory) error
	Delete(id string) error
}

type CreateCategoryDTO struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

func (d CreateCategoryDTO) Validate() *internal.AppError {
	if strings.TrimSpace(d.Name) == "" {
		return internal.NewValidationFieldError("name",
			"name is required", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(d.Key) == "" {
		return internal.NewValidationFieldError("key",
			"key is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

func (s *Service) GetAll() ([]*SalaryCategory, *internal.AppError) {
	records, err := s.repo.GetAll()
	if err != nil {
		return nil, internal.NewInternalError("internal server error", err)
	}
	categories := make([]*SalaryCategory, 0, len(records))
	for _, record := range records {
		categories = append(categories, FromDataModel(record))
	}
	return categories, nil
}

func (s *Service) Create(dto CreateCategoryDTO) (*SalaryCategory, *internal.AppError) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	record := &salarycategoryDatamodel.SalaryCategory{
		ID:   uuid.NewString(),
		Name: strings.TrimSpace(dto.Name),
		Key:  strings.TrimSpace(dto.Key),
	}
	if err := s.repo.Create(record); err != nil {
		if isUniqueViolation(err) {
			return nil, internal.NewConflictError(
				"a salary category with this key already exists", internal.ErrCodeCategoryKeyExists)
		}
		return nil, internal.NewInternalError("internal server error", err)
	}

	s.logger.Info("salary category created", "category_id", record.ID, "key", record.Key)
	return FromDataModel(record), nil
}

func (s *Service) Delete(id string) *internal.AppError {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return internal.NewInternalError("internal server error", err)
	}
	if record == nil {
		return internal.ErrCategoryNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return internal.NewInternalError("internal server error", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
