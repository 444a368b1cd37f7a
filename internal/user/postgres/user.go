package postgres

import (
	contactDatamodel "github.com/voltmover/crm/internal/core/datamodel/contact"
	dealDatamodel "github.com/voltmover/crm/internal/core/datamodel/deal"
	taskDatamodel "github.com/voltmover/crm/internal/core/datamodel/task"
	userDatamodel "github.com/voltmover/crm/internal/core/datamodel/user"
	"github.com/voltmover/crm/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements user.RepositoryAPI using GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(record *userDatamodel.User) error {
	return r.db.Create(record).Error
}

func (r *UserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	var record userDatamodel.User
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *UserRepository) List(params user.ListParams) ([]*userDatamodel.User, error) {
	query := r.db.Model(&userDatamodel.User{})

	if params.Search != "" {
		term := "%" + params.Search + "%"
		query = query.Where(
			"username LIKE ? OR email LIKE ? OR full_name LIKE ?",
			term, term, term,
		)
	}

	var records []*userDatamodel.User
	err := query.Order("id").
		Offset(params.Skip).
		Limit(params.Limit).
		Find(&records).Error
	return records, err
}

func (r *UserRepository) EmailOrUsernameTaken(email, username string, excludeID int64) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).
		Where("(email = ? OR username = ?) AND id <> ?", email, username, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Update(record *userDatamodel.User) error {
	return r.db.Save(record).Error
}

func (r *UserRepository) Delete(id int64) error {
	return r.db.Delete(&userDatamodel.User{}, id).Error
}

// CountOwnedRecords counts contacts, deals and tasks that still reference
// the user, used to restrict deletes.
func (r *UserRepository) CountOwnedRecords(userID int64) (int64, error) {
	var contacts, deals, tasks int64

	if err := r.db.Model(&contactDatamodel.Contact{}).Where("owner_id = ?", userID).Count(&contacts).Error; err != nil {
		return 0, err
	}
	if err := r.db.Model(&dealDatamodel.Deal{}).Where("owner_id = ?", userID).Count(&deals).Error; err != nil {
		return 0, err
	}
	if err := r.db.Model(&taskDatamodel.Task{}).Where("assignee_id = ?", userID).Count(&tasks).Error; err != nil {
		return 0, err
	}

	return contacts + deals + tasks, nil
}
