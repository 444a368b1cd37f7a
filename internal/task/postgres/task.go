package postgres

import (
	"time"

	activityDatamodel "github.com/voltmover/crm/internal/core/datamodel/activity"
	dealDatamodel "github.com/voltmover/crm/internal/core/datamodel/deal"
	taskDatamodel "github.com/voltmover/crm/internal/core/datamodel/task"
	userDatamodel "github.com/voltmover/crm/internal/core/datamodel/user"
	"github.com/voltmover/crm/internal/task"
	"gorm.io/gorm"
)

// TaskRepository implements task.RepositoryAPI using GORM.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) task.RepositoryAPI {
	return &TaskRepository{db: db}
}

// Create inserts the task and appends an audit row to the activity log in
// the same transaction.
func (r *TaskRepository) Create(record *taskDatamodel.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		return tx.Create(&activityDatamodel.Activity{
			Type:      "task",
			Subject:   "Task created: " + record.Title,
			DealID:    record.DealID,
			UserID:    record.AssigneeID,
			CreatedAt: record.CreatedAt,
		}).Error
	})
}

func (r *TaskRepository) GetByID(id int64) (*taskDatamodel.Task, error) {
	var record taskDatamodel.Task
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *TaskRepository) List(params task.ListParams, now time.Time) ([]*taskDatamodel.Task, error) {
	query := r.db.Model(&taskDatamodel.Task{})

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Priority != nil {
		query = query.Where("priority = ?", *params.Priority)
	}
	if params.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *params.AssigneeID)
	}
	if params.Overdue {
		query = query.Where("due_date < ? AND status <> ?", now, taskDatamodel.StatusCompleted)
	}

	var records []*taskDatamodel.Task
	err := query.Order("id").
		Offset(params.Skip).
		Limit(params.Limit).
		Find(&records).Error
	return records, err
}

func (r *TaskRepository) Update(record *taskDatamodel.Task) error {
	return r.db.Save(record).Error
}

func (r *TaskRepository) Delete(id int64) error {
	return r.db.Delete(&taskDatamodel.Task{}, id).Error
}

func (r *TaskRepository) AssigneeExists(assigneeID int64) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).Where("id = ?", assigneeID).Count(&count).Error
	return count > 0, err
}

func (r *TaskRepository) DealExists(dealID int64) (bool, error) {
	var count int64
	err := r.db.Model(&dealDatamodel.Deal{}).Where("id = ?", dealID).Count(&count).Error
	return count > 0, err
}
