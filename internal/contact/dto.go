package contact

import "github.com/voltmover/crm/internal"

// CreateContactDTO is the request payload for creating a contact.
type CreateContactDTO struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Company   *string `json:"company"`
	Position  *string `json:"position"`
	Address   *string `json:"address"`
	Notes     *string `json:"notes"`
	Tags      *string `json:"tags"`
	OwnerID   int64   `json:"owner_id"`
}

func (dto CreateContactDTO) Validate() error {
	if dto.FirstName == "" {
		return internal.NewValidationFieldError("first_name", "first_name is required")
	}
	if dto.LastName == "" {
		return internal.NewValidationFieldError("last_name", "last_name is required")
	}
	if dto.OwnerID <= 0 {
		return internal.NewValidationFieldError("owner_id", "owner_id is required")
	}
	return nil
}

// UpdateContactDTO carries only the fields present in the request body.
type UpdateContactDTO struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Company   *string `json:"company"`
	Position  *string `json:"position"`
	Address   *string `json:"address"`
	Notes     *string `json:"notes"`
	Tags      *string `json:"tags"`
}

func (dto UpdateContactDTO) Validate() error {
	if dto.FirstName != nil && *dto.FirstName == "" {
		return internal.NewValidationFieldError("first_name", "first_name cannot be empty")
	}
	if dto.LastName != nil && *dto.LastName == "" {
		return internal.NewValidationFieldError("last_name", "last_name cannot be empty")
	}
	return nil
}

// ListParams are the pagination and search controls for contact listings.
// Search matches first name, last name, email and company.
type ListParams struct {
	Skip   int
	Limit  int
	Search string
}
