package deal

import (
	"time"

	dealDatamodel "github.com/voltmover/crm/internal/core/datamodel/deal"
)

// Deal is the domain representation returned by the API.
type Deal struct {
	ID                int64               `json:"id"`
	Title             string              `json:"title"`
	Description       *string             `json:"description,omitempty"`
	Value             float64             `json:"value"`
	Stage             dealDatamodel.Stage `json:"stage"`
	Probability       int                 `json:"probability"`
	ExpectedCloseDate *time.Time          `json:"expected_close_date,omitempty"`
	ActualCloseDate   *time.Time          `json:"actual_close_date,omitempty"`
	ContactID         int64               `json:"contact_id"`
	OwnerID           int64               `json:"owner_id"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// StageStat is one row of the pipeline summary.
type StageStat struct {
	Stage      dealDatamodel.Stage `json:"stage"`
	Count      int64               `json:"count"`
	TotalValue float64             `json:"total_value"`
}

func FromDataModel(d *dealDatamodel.Deal) *Deal {
	return &Deal{
		ID:                d.ID,
		Title:             d.Title,
		Description:       d.Description,
		Value:             d.Value,
		Stage:             d.Stage,
		Probability:       d.Probability,
		ExpectedCloseDate: d.ExpectedCloseDate,
		ActualCloseDate:   d.ActualCloseDate,
		ContactID:         d.ContactID,
		OwnerID:           d.OwnerID,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

func FromDataModelSlice(deals []*dealDatamodel.Deal) []*Deal {
	result := make([]*Deal, len(deals))
	for i, d := range deals {
		result[i] = FromDataModel(d)
	}
	return result
}
