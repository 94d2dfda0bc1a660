package staff

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kprasanna/staff-management/internal"
	staffDatamodel "github.com/kprasanna/staff-management/internal/core/datamodel/staff"
)

type RepositoryAPI interface {
	Create(s *staffDatamodel.Staff) error
	// GetByID returns nil, nil when no record matches.
	GetByID(id string) (*staffDatamodel.Staff, error)
	ListActive(location string) ([]*staffDatamodel.Staff, error)
	UpdateFields(id string, updates map[string]interface{}) error
	Deactivate(id string) error
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

func (s *Service) Create(dto CreateStaffDTO) (*Staff, *internal.AppError) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	record := &staffDatamodel.Staff{
		ID:           uuid.NewString(),
		Name:         dto.Name,
		Location:     dto.Location,
		Type:         dto.Type,
		Shift:        dto.Shift,
		RatePerDay:   dto.RatePerDay,
		RatePerShift: dto.RatePerShift,
		Experience:   dto.Experience,
		BasicSalary:  dto.BasicSalary,
		Incentive:    dto.Incentive,
		HRA:          dto.HRA,
		TotalSalary:  dto.TotalSalary,
		JoinedDate:   dto.JoinedDate,
		IsActive:     true,
		DisplayOrder: dto.DisplayOrder,
		ContactNo:    dto.ContactNo,
		Address:      dto.Address,
	}

	if err := s.repo.Create(record); err != nil {
		return nil, internal.NewInternalError("internal server error", err)
	}

	s.logger.Info("staff created", "staff_id", record.ID, "location", record.Location)
	return FromDataModel(record), nil
}

func (s *Service) GetByID(id string) (*Staff, *internal.AppError) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("internal server error", err)
	}
	if record == nil {
		return nil, internal.ErrStaffNotFound
	}
	return FromDataModel(record), nil
}

// List returns active staff, optionally filtered by location.
func (s *Service) List(location string) ([]*Staff, *internal.AppError) {
	records, err := s.repo.ListActive(location)
	if err != nil {
		return nil, internal.NewInternalError("internal server error", err)
	}
	result := make([]*Staff, 0, len(records))
	for _, record := range records {
		result = append(result, FromDataModel(record))
	}
	return result, nil
}

func (s *Service) Update(id string, dto UpdateStaffDTO) (*Staff, *internal.AppError) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("internal server error", err)
	}
	if record == nil {
		return nil, internal.ErrStaffNotFound
	}

	updates := map[string]interface{}{}
	setString := func(col string, v *string) {
		if v != nil {
			updates[col] = *v
		}
	}
	setInt := func(col string, v *int64) {
		if v != nil {
			updates[col] = *v
		}
	}
	setString("name", dto.Name)
	setString("location", dto.Location)
	setString("type", dto.Type)
	setString("experience", dto.Experience)
	setString("joined_date", dto.JoinedDate)
	setInt("basic_salary", dto.BasicSalary)
	setInt("incentive", dto.Incentive)
	setInt("hra", dto.HRA)
	setInt("total_salary", dto.TotalSalary)
	if dto.Shift != nil {
		updates["shift"] = dto.Shift
	}
	if dto.RatePerDay != nil {
		updates["rate_per_day"] = dto.RatePerDay
	}
	if dto.RatePerShift != nil {
		updates["rate_per_shift"] = dto.RatePerShift
	}
	if dto.DisplayOrder != nil {
		updates["display_order"] = dto.DisplayOrder
	}
	if dto.ContactNo != nil {
		updates["contact_number"] = dto.ContactNo
	}
	if dto.Address != nil {
		updates["address"] = dto.Address
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		if err := s.repo.UpdateFields(id, updates); err != nil {
			return nil, internal.NewInternalError("internal server error", err)
		}
	}

	refreshed, err := s.repo.GetByID(id)
	if err != nil || refreshed == nil {
		return nil, internal.NewInternalError("internal server error", err)
	}
	return FromDataModel(refreshed), nil
}

// Delete soft-deletes: the record goes inactive, history stays.
func (s *Service) Delete(id string) *internal.AppError {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return internal.NewInternalError("internal server error", err)
	}
	if record == nil {
		return internal.ErrStaffNotFound
	}
	if err := s.repo.Deactivate(id); err != nil {
		return internal.NewInternalError("internal server error", err)
	}
	s.logger.Info("staff deactivated", "staff_id", id)
	return nil
}
