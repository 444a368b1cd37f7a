package contact

import (
	"log/slog"
	"time"

	"github.com/voltmover/crm/internal"
	contactDatamodel "github.com/voltmover/crm/internal/core/datamodel/contact"
)

type RepositoryAPI interface {
	Create(record *contactDatamodel.Contact) error
	GetByID(id int64) (*contactDatamodel.Contact, error)
	List(params ListParams) ([]*contactDatamodel.Contact, error)
	Update(record *contactDatamodel.Contact) error
	Delete(id int64) error
	OwnerExists(ownerID int64) (bool, error)
	CountDeals(contactID int64) (int64, error)
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

func (s *Service) Create(dto CreateContactDTO) (*Contact, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.OwnerExists(dto.OwnerID)
	if err != nil {
		s.logger.Error("failed to check contact owner", "error", err, "owner_id", dto.OwnerID)
		return nil, err
	}
	if !exists {
		return nil, internal.NewValidationFieldError("owner_id", "owner does not exist")
	}

	now := time.Now().UTC()
	record := &contactDatamodel.Contact{
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Email:     dto.Email,
		Phone:     dto.Phone,
		Company:   dto.Company,
		Position:  dto.Position,
		Address:   dto.Address,
		Notes:     dto.Notes,
		Tags:      dto.Tags,
		OwnerID:   dto.OwnerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create contact", "error", err, "owner_id", dto.OwnerID)
		return nil, err
	}

	s.logger.Info("contact created", "contact_id", record.ID, "owner_id", record.OwnerID)
	return FromDataModel(record), nil
}

func (s *Service) GetByID(id int64) (*Contact, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewNotFoundError("Contact not found", internal.ErrCodeContactNotFound)
	}
	return FromDataModel(record), nil
}

func (s *Service) List(params ListParams) ([]*Contact, error) {
	if params.Limit <= 0 {
		params.Limit = 100
	}
	if params.Skip < 0 {
		params.Skip = 0
	}

	records, err := s.repo.List(params)
	if err != nil {
		s.logger.Error("failed to list contacts", "error", err)
		return nil, err
	}
	return FromDataModelSlice(records), nil
}

// Update applies only the fields supplied in the DTO.
func (s *Service) Update(id int64, dto UpdateContactDTO) (*Contact, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewNotFoundError("Contact not found", internal.ErrCodeContactNotFound)
	}

	if dto.FirstName != nil {
		record.FirstName = *dto.FirstName
	}
	if dto.LastName != nil {
		record.LastName = *dto.LastName
	}
	if dto.Email != nil {
		record.Email = dto.Email
	}
	if dto.Phone != nil {
		record.Phone = dto.Phone
	}
	if dto.Company != nil {
		record.Company = dto.Company
	}
	if dto.Position != nil {
		record.Position = dto.Position
	}
	if dto.Address != nil {
		record.Address = dto.Address
	}
	if dto.Notes != nil {
		record.Notes = dto.Notes
	}
	if dto.Tags != nil {
		record.Tags = dto.Tags
	}
	record.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to update contact", "error", err, "contact_id", id)
		return nil, err
	}

	return FromDataModel(record), nil
}

// Delete removes a contact unless deals still reference it.
func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return internal.NewNotFoundError("Contact not found", internal.ErrCodeContactNotFound)
	}

	deals, err := s.repo.CountDeals(id)
	if err != nil {
		return err
	}
	if deals > 0 {
		return internal.NewConflictError("contact is referenced by existing deals", internal.ErrCodeDeleteRestricted)
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete contact", "error", err, "contact_id", id)
		return err
	}

	s.logger.Info("contact deleted", "contact_id", id)
	return nil
}
