package task

import (
	"time"

	"github.com/voltmover/crm/internal"
	taskDatamodel "github.com/voltmover/crm/internal/core/datamodel/task"
)

// CreateTaskDTO is the request payload for creating a task. Status and
// priority fall back to their defaults when omitted.
type CreateTaskDTO struct {
	Title       string                  `json:"title"`
	Description *string                 `json:"description"`
	Status      *taskDatamodel.Status   `json:"status"`
	Priority    *taskDatamodel.Priority `json:"priority"`
	DueDate     *time.Time              `json:"due_date"`
	AssigneeID  int64                   `json:"assignee_id"`
	DealID      *int64                  `json:"deal_id"`
}

func (dto CreateTaskDTO) Validate() error {
	if dto.Title == "" {
		return internal.NewValidationFieldError("title", "title is required")
	}
	if dto.AssigneeID <= 0 {
		return internal.NewValidationFieldError("assignee_id", "assignee_id is required")
	}
	if dto.Status != nil && !dto.Status.Valid() {
		return internal.NewValidationError("invalid task status", internal.ErrCodeInvalidStatus)
	}
	if dto.Priority != nil && !dto.Priority.Valid() {
		return internal.NewValidationError("invalid task priority", internal.ErrCodeInvalidPriority)
	}
	return nil
}

// UpdateTaskDTO carries only the fields present in the request body.
type UpdateTaskDTO struct {
	Title       *string                 `json:"title"`
	Description *string                 `json:"description"`
	Status      *taskDatamodel.Status   `json:"status"`
	Priority    *taskDatamodel.Priority `json:"priority"`
	DueDate     *time.Time              `json:"due_date"`
	CompletedAt *time.Time              `json:"completed_at"`
}

func (dto UpdateTaskDTO) Validate() error {
	if dto.Title != nil && *dto.Title == "" {
		return internal.NewValidationFieldError("title", "title cannot be empty")
	}
	if dto.Status != nil && !dto.Status.Valid() {
		return internal.NewValidationError("invalid task status", internal.ErrCodeInvalidStatus)
	}
	if dto.Priority != nil && !dto.Priority.Valid() {
		return internal.NewValidationError("invalid task priority", internal.ErrCodeInvalidPriority)
	}
	return nil
}

// ListParams are the pagination and filter controls for task listings.
// Overdue selects tasks whose due date is strictly before now and whose
// status is not completed.
type ListParams struct {
	Skip       int
	Limit      int
	Status     *taskDatamodel.Status
	Priority   *taskDatamodel.Priority
	AssigneeID *int64
	Overdue    bool
}
