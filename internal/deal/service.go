package deal

import (
	"log/slog"
	"time"

	"github.com/voltmover/crm/internal"
	dealDatamodel "github.com/voltmover/crm/internal/core/datamodel/deal"
)

type RepositoryAPI interface {
	Create(record *dealDatamodel.Deal) error
	GetByID(id int64) (*dealDatamodel.Deal, error)
	List(params ListParams) ([]*dealDatamodel.Deal, error)
	Update(record *dealDatamodel.Deal) error
	Delete(id int64) error
	ContactExists(contactID int64) (bool, error)
	OwnerExists(ownerID int64) (bool, error)
	StatsForStage(stage dealDatamodel.Stage) (count int64, totalValue float64, err error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) Create(dto CreateDealDTO) (*Deal, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	contactExists, err := s.repo.ContactExists(dto.ContactID)
	if err != nil {
		s.logger.Error("failed to check deal contact", "error", err, "contact_id", dto.ContactID)
		return nil, err
	}
	if !contactExists {
		return nil, internal.NewValidationFieldError("contact_id", "contact does not exist")
	}

	ownerExists, err := s.repo.OwnerExists(dto.OwnerID)
	if err != nil {
		s.logger.Error("failed to check deal owner", "error", err, "owner_id", dto.OwnerID)
		return nil, err
	}
	if !ownerExists {
		return nil, internal.NewValidationFieldError("owner_id", "owner does not exist")
	}

	stage := dealDatamodel.StageLead
	if dto.Stage != nil {
		stage = *dto.Stage
	}
	value := 0.0
	if dto.Value != nil {
		value = *dto.Value
	}
	probability := 0
	if dto.Probability != nil {
		probability = *dto.Probability
	}

	now := time.Now().UTC()
	record := &dealDatamodel.Deal{
		Title:             dto.Title,
		Description:       dto.Description,
		Value:             value,
		Stage:             stage,
		Probability:       probability,
		ExpectedCloseDate: dto.ExpectedCloseDate,
		ContactID:         dto.ContactID,
		OwnerID:           dto.OwnerID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create deal", "error", err, "owner_id", dto.OwnerID)
		return nil, err
	}

	s.logger.Info("deal created", "deal_id", record.ID, "stage", record.Stage, "value", record.Value)
	return FromDataModel(record), nil
}

func (s *Service) GetByID(id int64) (*Deal, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewNotFoundError("Deal not found", internal.ErrCodeDealNotFound)
	}
	return FromDataModel(record), nil
}

func (s *Service) List(params ListParams) ([]*Deal, error) {
	if params.Limit <= 0 {
		params.Limit = 100
	}
	if params.Skip < 0 {
		params.Skip = 0
	}

	records, err := s.repo.List(params)
	if err != nil {
		s.logger.Error("failed to list deals", "error", err)
		return nil, err
	}
	return FromDataModelSlice(records), nil
}

// Update applies only the fields supplied in the DTO. Moving a deal into a
// closed stage does not set the actual close date implicitly; callers
// supply it alongside the stage change.
func (s *Service) Update(id int64, dto UpdateDealDTO) (*Deal, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewNotFoundError("Deal not found", internal.ErrCodeDealNotFound)
	}

	if dto.Title != nil {
		record.Title = *dto.Title
	}
	if dto.Description != nil {
		record.Description = dto.Description
	}
	if dto.Value != nil {
		record.Value = *dto.Value
	}
	if dto.Stage != nil {
		record.Stage = *dto.Stage
	}
	if dto.Probability != nil {
		record.Probability = *dto.Probability
	}
	if dto.ExpectedCloseDate != nil {
		record.ExpectedCloseDate = dto.ExpectedCloseDate
	}
	if dto.ActualCloseDate != nil {
		record.ActualCloseDate = dto.ActualCloseDate
	}
	record.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to update deal", "error", err, "deal_id", id)
		return nil, err
	}

	return FromDataModel(record), nil
}

// Delete removes a deal; tasks referencing it keep existing with their
// deal reference cleared.
func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return internal.NewNotFoundError("Deal not found", internal.ErrCodeDealNotFound)
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete deal", "error", err, "deal_id", id)
		return err
	}

	s.logger.Info("deal deleted", "deal_id", id)
	return nil
}

// PipelineStats reports count and summed value per stage, iterating the
// fixed stage enumeration so every stage appears even when empty.
func (s *Service) PipelineStats() ([]StageStat, error) {
	stats := make([]StageStat, 0, len(dealDatamodel.Stages))

	for _, stage := range dealDatamodel.Stages {
		count, totalValue, err := s.repo.StatsForStage(stage)
		if err != nil {
			s.logger.Error("failed to aggregate pipeline stage", "error", err, "stage", stage)
			return nil, err
		}
		stats = append(stats, StageStat{
			Stage:      stage,
			Count:      count,
			TotalValue: totalValue,
		})
	}

	return stats, nil
}
