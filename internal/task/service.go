package task

import (
	"log/slog"
	"time"

	"github.com/voltmover/crm/internal"
	taskDatamodel "github.com/voltmover/crm/internal/core/datamodel/task"
)

type RepositoryAPI interface {
	Create(record *taskDatamodel.Task) error
	GetByID(id int64) (*taskDatamodel.Task, error)
	List(params ListParams, now time.Time) ([]*taskDatamodel.Task, error)
	Update(record *taskDatamodel.Task) error
	Delete(id int64) error
	AssigneeExists(assigneeID int64) (bool, error)
	DealExists(dealID int64) (bool, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Create(dto CreateTaskDTO) (*Task, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	assigneeExists, err := s.repo.AssigneeExists(dto.AssigneeID)
	if err != nil {
		s.logger.Error("failed to check task assignee", "error", err, "assignee_id", dto.AssigneeID)
		return nil, err
	}
	if !assigneeExists {
		return nil, internal.NewValidationFieldError("assignee_id", "assignee does not exist")
	}

	if dto.DealID != nil {
		dealExists, err := s.repo.DealExists(*dto.DealID)
		if err != nil {
			s.logger.Error("failed to check task deal", "error", err, "deal_id", *dto.DealID)
			return nil, err
		}
		if !dealExists {
			return nil, internal.NewValidationFieldError("deal_id", "deal does not exist")
		}
	}

	status := taskDatamodel.StatusTodo
	if dto.Status != nil {
		status = *dto.Status
	}
	priority := taskDatamodel.PriorityMedium
	if dto.Priority != nil {
		priority = *dto.Priority
	}

	now := s.now()
	record := &taskDatamodel.Task{
		Title:       dto.Title,
		Description: dto.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     dto.DueDate,
		AssigneeID:  dto.AssigneeID,
		DealID:      dto.DealID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// A task may be created directly in the completed state.
	if status == taskDatamodel.StatusCompleted {
		record.CompletedAt = &now
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create task", "error", err, "assignee_id", dto.AssigneeID)
		return nil, err
	}

	s.logger.Info("task created", "task_id", record.ID, "assignee_id", record.AssigneeID, "status", record.Status)
	return FromDataModel(record), nil
}

func (s *Service) GetByID(id int64) (*Task, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewNotFoundError("Task not found", internal.ErrCodeTaskNotFound)
	}
	return FromDataModel(record), nil
}

func (s *Service) List(params ListParams) ([]*Task, error) {
	if params.Limit <= 0 {
		params.Limit = 100
	}
	if params.Skip < 0 {
		params.Skip = 0
	}

	records, err := s.repo.List(params, s.now())
	if err != nil {
		s.logger.Error("failed to list tasks", "error", err)
		return nil, err
	}
	return FromDataModelSlice(records), nil
}

// ListForAssignee restricts the listing to one assignee's tasks.
func (s *Service) ListForAssignee(assigneeID int64, params ListParams) ([]*Task, error) {
	params.AssigneeID = &assigneeID
	return s.List(params)
}

// Update applies only the fields supplied in the DTO. The first transition
// into the completed status stamps the completion time; an already-set
// completion timestamp is never overwritten or cleared by later status
// changes.
func (s *Service) Update(id int64, dto UpdateTaskDTO) (*Task, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewNotFoundError("Task not found", internal.ErrCodeTaskNotFound)
	}

	now := s.now()
	if dto.Status != nil && *dto.Status == taskDatamodel.StatusCompleted && record.CompletedAt == nil {
		record.CompletedAt = &now
	}

	if dto.Title != nil {
		record.Title = *dto.Title
	}
	if dto.Description != nil {
		record.Description = dto.Description
	}
	if dto.Status != nil {
		record.Status = *dto.Status
	}
	if dto.Priority != nil {
		record.Priority = *dto.Priority
	}
	if dto.DueDate != nil {
		record.DueDate = dto.DueDate
	}
	if dto.CompletedAt != nil {
		record.CompletedAt = dto.CompletedAt
	}
	record.UpdatedAt = now

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to update task", "error", err, "task_id", id)
		return nil, err
	}

	return FromDataModel(record), nil
}

func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return internal.NewNotFoundError("Task not found", internal.ErrCodeTaskNotFound)
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete task", "error", err, "task_id", id)
		return err
	}

	s.logger.Info("task deleted", "task_id", id)
	return nil
}
