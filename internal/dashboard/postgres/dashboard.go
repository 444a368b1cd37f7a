package postgres

import (
	"time"

	contactDatamodel "github.com/voltmover/crm/internal/core/datamodel/contact"
	dealDatamodel "github.com/voltmover/crm/internal/core/datamodel/deal"
	taskDatamodel "github.com/voltmover/crm/internal/core/datamodel/task"
	"github.com/voltmover/crm/internal/dashboard"
	"gorm.io/gorm"
)

// DashboardRepository implements dashboard.RepositoryAPI using GORM
// aggregate queries.
type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) dashboard.RepositoryAPI {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) CountContacts() (int64, error) {
	var count int64
	err := r.db.Model(&contactDatamodel.Contact{}).Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountDeals() (int64, error) {
	var count int64
	err := r.db.Model(&dealDatamodel.Deal{}).Count(&count).Error
	return count, err
}

func (r *DashboardRepository) SumDealValue() (float64, error) {
	var total float64
	err := r.db.Model(&dealDatamodel.Deal{}).
		Select("COALESCE(SUM(value), 0)").
		Scan(&total).Error
	return total, err
}

func (r *DashboardRepository) CountDealsClosedBetween(stage dealDatamodel.Stage, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&dealDatamodel.Deal{}).
		Where("stage = ? AND actual_close_date >= ? AND actual_close_date < ?", stage, from, to).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountTasksPending() (int64, error) {
	var count int64
	err := r.db.Model(&taskDatamodel.Task{}).
		Where("status IN ?", []taskDatamodel.Status{taskDatamodel.StatusTodo, taskDatamodel.StatusInProgress}).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountTasksOverdue(now time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&taskDatamodel.Task{}).
		Where("due_date < ? AND status <> ?", now, taskDatamodel.StatusCompleted).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) StatsForStage(stage dealDatamodel.Stage) (int64, float64, error) {
	var result struct {
		Count int64
		Value float64
	}
	err := r.db.Model(&dealDatamodel.Deal{}).
		Select("COUNT(id) AS count, COALESCE(SUM(value), 0) AS value").
		Where("stage = ?", stage).
		Scan(&result).Error
	return result.Count, result.Value, err
}

func (r *DashboardRepository) RecentDeals(limit int) ([]*dashboard.RecentRecord, error) {
	var records []*dashboard.RecentRecord
	err := r.db.Model(&dealDatamodel.Deal{}).
		Select("deals.id, deals.title, users.full_name AS user_name, deals.created_at").
		Joins("JOIN users ON users.id = deals.owner_id").
		Order("deals.created_at DESC").
		Limit(limit).
		Scan(&records).Error
	return records, err
}

func (r *DashboardRepository) RecentTasks(limit int) ([]*dashboard.RecentRecord, error) {
	var records []*dashboard.RecentRecord
	err := r.db.Model(&taskDatamodel.Task{}).
		Select("tasks.id, tasks.title, users.full_name AS user_name, tasks.created_at").
		Joins("JOIN users ON users.id = tasks.assignee_id").
		Order("tasks.created_at DESC").
		Limit(limit).
		Scan(&records).Error
	return records, err
}
