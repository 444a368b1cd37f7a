package user

import (
	"strings"

	"github.com/voltmover/crm/internal"
	userDatamodel "github.com/voltmover/crm/internal/core/datamodel/user"
)

// CreateUserDTO is the request payload for creating a user. Role and
// IsActive fall back to their defaults when omitted.
type CreateUserDTO struct {
	Email    string              `json:"email"`
	Username string              `json:"username"`
	FullName string              `json:"full_name"`
	Password string              `json:"password"`
	Role     *userDatamodel.Role `json:"role,omitempty"`
	IsActive *bool               `json:"is_active,omitempty"`
}

func (dto CreateUserDTO) Validate() error {
	if dto.Email == "" {
		return internal.NewValidationFieldError("email", "email is required")
	}
	if !strings.Contains(dto.Email, "@") {
		return internal.NewValidationFieldError("email", "email is not a valid address")
	}
	if dto.Username == "" {
		return internal.NewValidationFieldError("username", "username is required")
	}
	if dto.FullName == "" {
		return internal.NewValidationFieldError("full_name", "full_name is required")
	}
	if dto.Password == "" {
		return internal.NewValidationFieldError("password", "password is required")
	}
	if dto.Role != nil && !dto.Role.Valid() {
		return internal.NewValidationError("invalid role", internal.ErrCodeInvalidRole)
	}
	return nil
}

// UpdateUserDTO carries only the fields present in the request body;
// nil pointers leave the stored value untouched.
type UpdateUserDTO struct {
	Email    *string             `json:"email"`
	Username *string             `json:"username"`
	FullName *string             `json:"full_name"`
	Password *string             `json:"password"`
	Role     *userDatamodel.Role `json:"role"`
	IsActive *bool               `json:"is_active"`
}

func (dto UpdateUserDTO) Validate() error {
	if dto.Email != nil && !strings.Contains(*dto.Email, "@") {
		return internal.NewValidationFieldError("email", "email is not a valid address")
	}
	if dto.Username != nil && *dto.Username == "" {
		return internal.NewValidationFieldError("username", "username cannot be empty")
	}
	if dto.FullName != nil && *dto.FullName == "" {
		return internal.NewValidationFieldError("full_name", "full_name cannot be empty")
	}
	if dto.Password != nil && *dto.Password == "" {
		return internal.NewValidationFieldError("password", "password cannot be empty")
	}
	if dto.Role != nil && !dto.Role.Valid() {
		return internal.NewValidationError("invalid role", internal.ErrCodeInvalidRole)
	}
	return nil
}

// ListParams are the common pagination and search controls.
type ListParams struct {
	Skip   int
	Limit  int
	Search string
}
