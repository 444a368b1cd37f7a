package deal

import (
	"time"

	"github.com/voltmover/crm/internal"
	dealDatamodel "github.com/voltmover/crm/internal/core/datamodel/deal"
)

// CreateDealDTO is the request payload for creating a deal. Value, stage
// and probability fall back to their defaults when omitted.
type CreateDealDTO struct {
	Title             string               `json:"title"`
	Description       *string              `json:"description"`
	Value             *float64             `json:"value"`
	Stage             *dealDatamodel.Stage `json:"stage"`
	Probability       *int                 `json:"probability"`
	ExpectedCloseDate *time.Time           `json:"expected_close_date"`
	ContactID         int64                `json:"contact_id"`
	OwnerID           int64                `json:"owner_id"`
}

func (dto CreateDealDTO) Validate() error {
	if dto.Title == "" {
		return internal.NewValidationFieldError("title", "title is required")
	}
	if dto.ContactID <= 0 {
		return internal.NewValidationFieldError("contact_id", "contact_id is required")
	}
	if dto.OwnerID <= 0 {
		return internal.NewValidationFieldError("owner_id", "owner_id is required")
	}
	if dto.Stage != nil && !dto.Stage.Valid() {
		return internal.NewValidationError("invalid deal stage", internal.ErrCodeInvalidStage)
	}
	if dto.Probability != nil && (*dto.Probability < 0 || *dto.Probability > 100) {
		return internal.NewValidationFieldError("probability", "probability must be between 0 and 100")
	}
	return nil
}

// UpdateDealDTO carries only the fields present in the request body.
type UpdateDealDTO struct {
	Title             *string              `json:"title"`
	Description       *string              `json:"description"`
	Value             *float64             `json:"value"`
	Stage             *dealDatamodel.Stage `json:"stage"`
	Probability       *int                 `json:"probability"`
	ExpectedCloseDate *time.Time           `json:"expected_close_date"`
	ActualCloseDate   *time.Time           `json:"actual_close_date"`
}

func (dto UpdateDealDTO) Validate() error {
	if dto.Title != nil && *dto.Title == "" {
		return internal.NewValidationFieldError("title", "title cannot be empty")
	}
	if dto.Stage != nil && !dto.Stage.Valid() {
		return internal.NewValidationError("invalid deal stage", internal.ErrCodeInvalidStage)
	}
	if dto.Probability != nil && (*dto.Probability < 0 || *dto.Probability > 100) {
		return internal.NewValidationFieldError("probability", "probability must be between 0 and 100")
	}
	return nil
}

// ListParams are the pagination, filter and search controls for deals.
// Search matches title and description.
type ListParams struct {
	Skip   int
	Limit  int
	Stage  *dealDatamodel.Stage
	Search string
}
