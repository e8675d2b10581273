package engagement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/engagement"
	"github.com/salescrm/backend/internal/domain/shared"
)

// TaskService manages follow-up tasks
type TaskService struct {
	tasks          engagement.TaskRepository
	eventPublisher shared.EventPublisher
	now            func() time.Time
}

// NewTaskService creates a TaskService
func NewTaskService(tasks engagement.TaskRepository, eventPublisher shared.EventPublisher) *TaskService {
	return &TaskService{tasks: tasks, eventPublisher: eventPublisher, now: time.Now}
}

// CreateTask creates a todo task
func (s *TaskService) CreateTask(ctx context.Context, workspaceID uuid.UUID, req CreateTaskRequest) (*TaskResponse, error) {
	t, err := engagement.NewTask(workspaceID, req.Title, engagement.TaskPriority(req.Priority))
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := t.Update(t.Title, req.Description, t.Priority); err != nil {
			return nil, err
		}
	}
	t.Schedule(req.DueDate, req.AssigneeID, req.DealID, req.ContactID)

	if err := s.tasks.Save(ctx, t); err != nil {
		return nil, err
	}
	s.publishChanged(ctx, workspaceID, t.ID, engagement.TaskActionCreated)
	resp := ToTaskResponse(t, s.now())
	return &resp, nil
}

// GetTask returns one task
func (s *TaskService) GetTask(ctx context.Context, workspaceID, id uuid.UUID) (*TaskResponse, error) {
	t, err := s.tasks.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	resp := ToTaskResponse(t, s.now())
	return &resp, nil
}

// ListTasks lists tasks with status, priority, link and overdue filters
func (s *TaskService) ListTasks(ctx context.Context, workspaceID uuid.UUID, f TaskListFilter) (shared.Paginated[TaskResponse], error) {
	filter := shared.NewFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir, f.Search)
	if err := applyIDFilters(filter, map[string]string{
		"assignee_id": f.AssigneeID,
		"deal_id":     f.DealID,
		"contact_id":  f.ContactID,
	}); err != nil {
		return shared.Paginated[TaskResponse]{}, err
	}
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	if f.Priority != "" {
		filter.Filters["priority"] = f.Priority
	}
	if f.Overdue {
		filter.Filters["overdue"] = true
	}

	list, err := s.tasks.FindAllForWorkspace(ctx, workspaceID, filter)
	if err != nil {
		return shared.Paginated[TaskResponse]{}, err
	}
	total, err := s.tasks.CountForWorkspace(ctx, workspaceID, filter)
	if err != nil {
		return shared.Paginated[TaskResponse]{}, err
	}

	now := s.now()
	items := make([]TaskResponse, len(list))
	for i := range list {
		items[i] = ToTaskResponse(&list[i], now)
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// UpdateTask changes a task. Setting status to in_progress or todo on an open task is allowed;
// completion goes through CompleteTask.
func (s *TaskService) UpdateTask(ctx context.Context, workspaceID, id uuid.UUID, req UpdateTaskRequest) (*TaskResponse, error) {
	t, err := s.tasks.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}

	title, description, priority := t.Title, t.Description, t.Priority
	if req.Title != nil {
		title = *req.Title
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.Priority != nil {
		priority = engagement.TaskPriority(*req.Priority)
	}
	if err := t.Update(title, description, priority); err != nil {
		return nil, err
	}

	due, assignee, deal, contactID := t.DueDate, t.AssigneeID, t.DealID, t.ContactID
	if req.DueDate != nil {
		due = req.DueDate
	}
	if req.ClearDueDate {
		due = nil
	}
	if req.AssigneeID != nil {
		assignee = req.AssigneeID
	}
	if req.ClearAssignee {
		assignee = nil
	}
	if req.DealID != nil {
		deal = req.DealID
	}
	if req.ContactID != nil {
		contactID = req.ContactID
	}
	t.Schedule(due, assignee, deal, contactID)

	if req.Status != nil {
		switch engagement.TaskStatus(*req.Status) {
		case engagement.TaskStatusInProgress:
			err = t.Start()
		case engagement.TaskStatusTodo:
			if t.Status == engagement.TaskStatusDone {
				err = t.Reopen()
			} else {
				t.Status = engagement.TaskStatusTodo
			}
		default:
			err = shared.NewDomainError("INVALID_STATUS", "Use the complete endpoint to finish a task")
		}
		if err != nil {
			return nil, err
		}
	}

	if err := s.tasks.Save(ctx, t); err != nil {
		return nil, err
	}
	s.publishChanged(ctx, workspaceID, t.ID, engagement.TaskActionUpdated)
	resp := ToTaskResponse(t, s.now())
	return &resp, nil
}

// CompleteTask marks a task done and publishes TaskCompleted
func (s *TaskService) CompleteTask(ctx context.Context, workspaceID, id uuid.UUID) (*TaskResponse, error) {
	t, err := s.tasks.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if err := t.Complete(); err != nil {
		return nil, err
	}
	if err := s.tasks.Save(ctx, t); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		if events := t.GetDomainEvents(); len(events) > 0 {
			_ = s.eventPublisher.Publish(ctx, events...)
		}
	}
	t.ClearDomainEvents()

	resp := ToTaskResponse(t, s.now())
	return &resp, nil
}

// ReopenTask moves a completed task back to todo
func (s *TaskService) ReopenTask(ctx context.Context, workspaceID, id uuid.UUID) (*TaskResponse, error) {
	t, err := s.tasks.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if err := t.Reopen(); err != nil {
		return nil, err
	}
	if err := s.tasks.Save(ctx, t); err != nil {
		return nil, err
	}
	s.publishChanged(ctx, workspaceID, t.ID, engagement.TaskActionReopened)
	resp := ToTaskResponse(t, s.now())
	return &resp, nil
}

// DeleteTask removes a task
func (s *TaskService) DeleteTask(ctx context.Context, workspaceID, id uuid.UUID) error {
	if err := s.tasks.DeleteForWorkspace(ctx, workspaceID, id); err != nil {
		return err
	}
	s.publishChanged(ctx, workspaceID, id, engagement.TaskActionDeleted)
	return nil
}

// publishChanged announces a task change so cached task counts can be dropped
func (s *TaskService) publishChanged(ctx context.Context, workspaceID, id uuid.UUID, action string) {
	if s.eventPublisher == nil {
		return
	}
	// errors are logged by the event bus
	_ = s.eventPublisher.Publish(ctx, engagement.NewTaskChangedEvent(workspaceID, id, action))
}
