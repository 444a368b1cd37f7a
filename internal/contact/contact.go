package contact

import (
	"time"

	contactDatamodel "github.com/voltmover/crm/internal/core/datamodel/contact"
)

// Contact is the domain representation returned by the API.
type Contact struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Company   *string   `json:"company,omitempty"`
	Position  *string   `json:"position,omitempty"`
	Address   *string   `json:"address,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	Tags      *string   `json:"tags,omitempty"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromDataModel(c *contactDatamodel.Contact) *Contact {
	return &Contact{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		Position:  c.Position,
		Address:   c.Address,
		Notes:     c.Notes,
		Tags:      c.Tags,
		OwnerID:   c.OwnerID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func FromDataModelSlice(contacts []*contactDatamodel.Contact) []*Contact {
	result := make([]*Contact, len(contacts))
	for i, c := range contacts {
		result[i] = FromDataModel(c)
	}
	return result
}
