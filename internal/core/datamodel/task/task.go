package task

import "time"

// Status is the closed set of task states.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Priority is the closed set of task priorities.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Task struct {
	ID          int64      `gorm:"primaryKey"`
	Title       string     `gorm:"not null"`
	Description *string    `gorm:"type:text"`
	Status      Status     `gorm:"type:varchar(20);default:todo;index"`
	Priority    Priority   `gorm:"type:varchar(20);default:medium"`
	DueDate     *time.Time `gorm:"column:due_date"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
	AssigneeID  int64      `gorm:"column:assignee_id;not null;index"`
	DealID      *int64     `gorm:"column:deal_id;index"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}
