package user

import (
	"log/slog"
	"time"

	"github.com/voltmover/crm/internal"
	userDatamodel "github.com/voltmover/crm/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	Create(record *userDatamodel.User) error
	GetByID(id int64) (*userDatamodel.User, error)
	List(params ListParams) ([]*userDatamodel.User, error)
	EmailOrUsernameTaken(email, username string, excludeID int64) (bool, error)
	Update(record *userDatamodel.User) error
	Delete(id int64) error
	CountOwnedRecords(userID int64) (int64, error)
}

// PasswordHasher hashes plaintext passwords for storage.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type Service struct {
	repo   RepositoryAPI
	hasher PasswordHasher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, hasher PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

func (s *Service) Create(dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.repo.EmailOrUsernameTaken(dto.Email, dto.Username, 0)
	if err != nil {
		s.logger.Error("failed to check user uniqueness", "error", err)
		return nil, err
	}
	if taken {
		return nil, internal.NewConflictError("email or username already in use", internal.ErrCodeDuplicateUser)
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, err
	}

	role := userDatamodel.RoleUser
	if dto.Role != nil {
		role = *dto.Role
	}
	isActive := true
	if dto.IsActive != nil {
		isActive = *dto.IsActive
	}

	now := time.Now().UTC()
	record := &userDatamodel.User{
		Email:        dto.Email,
		Username:     dto.Username,
		FullName:     dto.FullName,
		PasswordHash: hash,
		Role:         role,
		IsActive:     isActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create user", "error", err, "username", dto.Username)
		return nil, err
	}

	s.logger.Info("user created", "user_id", record.ID, "username", record.Username)
	return FromDataModel(record), nil
}

func (s *Service) GetByID(id int64) (*User, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
	}
	return FromDataModel(record), nil
}

func (s *Service) List(params ListParams) ([]*User, error) {
	records, err := s.repo.List(normalizeListParams(params))
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	return FromDataModelSlice(records), nil
}

// Update applies only the fields supplied in the DTO.
func (s *Service) Update(id int64, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
	}

	if dto.Email != nil || dto.Username != nil {
		email := record.Email
		if dto.Email != nil {
			email = *dto.Email
		}
		username := record.Username
		if dto.Username != nil {
			username = *dto.Username
		}
		taken, err := s.repo.EmailOrUsernameTaken(email, username, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, internal.NewConflictError("email or username already in use", internal.ErrCodeDuplicateUser)
		}
	}

	if dto.Email != nil {
		record.Email = *dto.Email
	}
	if dto.Username != nil {
		record.Username = *dto.Username
	}
	if dto.FullName != nil {
		record.FullName = *dto.FullName
	}
	if dto.Password != nil {
		hash, err := s.hasher.HashPassword(*dto.Password)
		if err != nil {
			return nil, err
		}
		record.PasswordHash = hash
	}
	if dto.Role != nil {
		record.Role = *dto.Role
	}
	if dto.IsActive != nil {
		record.IsActive = *dto.IsActive
	}
	record.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, err
	}

	return FromDataModel(record), nil
}

// Delete removes a user unless contacts, deals or tasks still reference it.
func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
	}

	owned, err := s.repo.CountOwnedRecords(id)
	if err != nil {
		return err
	}
	if owned > 0 {
		return internal.NewConflictError("user still owns contacts, deals or tasks", internal.ErrCodeDeleteRestricted)
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return err
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}

func normalizeListParams(params ListParams) ListParams {
	if params.Limit <= 0 {
		params.Limit = 100
	}
	if params.Skip < 0 {
		params.Skip = 0
	}
	return params
}
