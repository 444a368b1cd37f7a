package task

import (
	"time"

	taskDatamodel "github.com/voltmover/crm/internal/core/datamodel/task"
)

// Task is the domain representation returned by the API.
type Task struct {
	ID          int64                  `json:"id"`
	Title       string                 `json:"title"`
	Description *string                `json:"description,omitempty"`
	Status      taskDatamodel.Status   `json:"status"`
	Priority    taskDatamodel.Priority `json:"priority"`
	DueDate     *time.Time             `json:"due_date,omitempty"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	AssigneeID  int64                  `json:"assignee_id"`
	DealID      *int64                 `json:"deal_id,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// IsOverdue reports whether the task's due date has passed without the
// task being completed.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != taskDatamodel.StatusCompleted
}

func FromDataModel(t *taskDatamodel.Task) *Task {
	return &Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		CompletedAt: t.CompletedAt,
		AssigneeID:  t.AssigneeID,
		DealID:      t.DealID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func FromDataModelSlice(tasks []*taskDatamodel.Task) []*Task {
	result := make([]*Task, len(tasks))
	for i, t := range tasks {
		result[i] = FromDataModel(t)
	}
	return result
}
