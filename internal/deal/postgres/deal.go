package postgres

import (
	activityDatamodel "github.com/voltmover/crm/internal/core/datamodel/activity"
	contactDatamodel "github.com/voltmover/crm/internal/core/datamodel/contact"
	dealDatamodel "github.com/voltmover/crm/internal/core/datamodel/deal"
	taskDatamodel "github.com/voltmover/crm/internal/core/datamodel/task"
	userDatamodel "github.com/voltmover/crm/internal/core/datamodel/user"
	"github.com/voltmover/crm/internal/deal"
	"gorm.io/gorm"
)

// DealRepository implements deal.RepositoryAPI using GORM.
type DealRepository struct {
	db *gorm.DB
}

func NewDealRepository(db *gorm.DB) deal.RepositoryAPI {
	return &DealRepository{db: db}
}

// Create inserts the deal and appends an audit row to the activity log in
// the same transaction.
func (r *DealRepository) Create(record *dealDatamodel.Deal) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		return tx.Create(&activityDatamodel.Activity{
			Type:      "deal",
			Subject:   "Deal created: " + record.Title,
			ContactID: &record.ContactID,
			DealID:    &record.ID,
			UserID:    record.OwnerID,
			CreatedAt: record.CreatedAt,
		}).Error
	})
}

func (r *DealRepository) GetByID(id int64) (*dealDatamodel.Deal, error) {
	var record dealDatamodel.Deal
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *DealRepository) List(params deal.ListParams) ([]*dealDatamodel.Deal, error) {
	query := r.db.Model(&dealDatamodel.Deal{})

	if params.Stage != nil {
		query = query.Where("stage = ?", *params.Stage)
	}
	if params.Search != "" {
		term := "%" + params.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", term, term)
	}

	var records []*dealDatamodel.Deal
	err := query.Order("id").
		Offset(params.Skip).
		Limit(params.Limit).
		Find(&records).Error
	return records, err
}

func (r *DealRepository) Update(record *dealDatamodel.Deal) error {
	return r.db.Save(record).Error
}

// Delete removes the deal and clears the optional deal reference on its
// tasks in the same transaction.
func (r *DealRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&taskDatamodel.Task{}).
			Where("deal_id = ?", id).
			Update("deal_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&dealDatamodel.Deal{}, id).Error
	})
}

func (r *DealRepository) ContactExists(contactID int64) (bool, error) {
	var count int64
	err := r.db.Model(&contactDatamodel.Contact{}).Where("id = ?", contactID).Count(&count).Error
	return count > 0, err
}

func (r *DealRepository) OwnerExists(ownerID int64) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).Where("id = ?", ownerID).Count(&count).Error
	return count > 0, err
}

func (r *DealRepository) StatsForStage(stage dealDatamodel.Stage) (int64, float64, error) {
	var result struct {
		Count      int64
		TotalValue float64
	}
	err := r.db.Model(&dealDatamodel.Deal{}).
		Select("COUNT(id) AS count, COALESCE(SUM(value), 0) AS total_value").
		Where("stage = ?", stage).
		Scan(&result).Error
	return result.Count, result.TotalValue, err
}
