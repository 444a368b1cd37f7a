package postgres

import (
	"github.com/voltmover/crm/internal/contact"
	contactDatamodel "github.com/voltmover/crm/internal/core/datamodel/contact"
	dealDatamodel "github.com/voltmover/crm/internal/core/datamodel/deal"
	userDatamodel "github.com/voltmover/crm/internal/core/datamodel/user"
	"gorm.io/gorm"
)

// ContactRepository implements contact.RepositoryAPI using GORM.
type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) contact.RepositoryAPI {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(record *contactDatamodel.Contact) error {
	return r.db.Create(record).Error
}

func (r *ContactRepository) GetByID(id int64) (*contactDatamodel.Contact, error) {
	var record contactDatamodel.Contact
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *ContactRepository) List(params contact.ListParams) ([]*contactDatamodel.Contact, error) {
	query := r.db.Model(&contactDatamodel.Contact{})

	if params.Search != "" {
		term := "%" + params.Search + "%"
		query = query.Where(
			"first_name LIKE ? OR last_name LIKE ? OR email LIKE ? OR company LIKE ?",
			term, term, term, term,
		)
	}

	var records []*contactDatamodel.Contact
	err := query.Order("id").
		Offset(params.Skip).
		Limit(params.Limit).
		Find(&records).Error
	return records, err
}

func (r *ContactRepository) Update(record *contactDatamodel.Contact) error {
	return r.db.Save(record).Error
}

func (r *ContactRepository) Delete(id int64) error {
	return r.db.Delete(&contactDatamodel.Contact{}, id).Error
}

func (r *ContactRepository) OwnerExists(ownerID int64) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).Where("id = ?", ownerID).Count(&count).Error
	return count > 0, err
}

func (r *ContactRepository) CountDeals(contactID int64) (int64, error) {
	var count int64
	err := r.db.Model(&dealDatamodel.Deal{}).Where("contact_id = ?", contactID).Count(&count).Error
	return count, err
}
