package engagement

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/shared"
)

// TaskStatus is the progress of a task
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// TaskPriority ranks tasks
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Task is a follow-up assigned to a user, optionally tied to a deal or contact
type Task struct {
	shared.WorkspaceAggregateRoot
	Title       string       `gorm:"type:varchar(200);not null"`
	Description string       `gorm:"type:text"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'todo';index"`
	Priority    TaskPriority `gorm:"type:varchar(10);not null;default:'medium'"`
	DueDate     *time.Time   `gorm:"index"`
	CompletedAt *time.Time
	AssigneeID  *uuid.UUID `gorm:"type:uuid;index"`
	DealID      *uuid.UUID `gorm:"type:uuid;index"`
	ContactID   *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Task) TableName() string {
	return "tasks"
}

// NewTask creates a todo task
func NewTask(workspaceID uuid.UUID, title string, priority TaskPriority) (*Task, error) {
	t := &Task{
		WorkspaceAggregateRoot: shared.NewWorkspaceAggregateRoot(workspaceID),
		Status:                 TaskStatusTodo,
	}
	if err := t.Update(title, "", priority); err != nil {
		return nil, err
	}
	return t, nil
}

// Update sets title, description and priority
func (t *Task) Update(title, description string, priority TaskPriority) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.Validation("Task title is required")
	}
	if len(title) > 200 {
		return shared.Validation("Task title cannot exceed 200 characters")
	}
	if priority == "" {
		priority = TaskPriorityMedium
	}
	switch priority {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
	default:
		return shared.NewDomainError("INVALID_PRIORITY", "Priority must be low, medium or high")
	}
	t.Title = title
	t.Description = description
	t.Priority = priority
	t.Touch()
	return nil
}

// Schedule sets the due date and links (nil clears)
func (t *Task) Schedule(dueDate *time.Time, assigneeID, dealID, contactID *uuid.UUID) {
	t.DueDate = dueDate
	t.AssigneeID = assigneeID
	t.DealID = dealID
	t.ContactID = contactID
	t.Touch()
}

// Start marks the task in progress
func (t *Task) Start() error {
	if t.Status == TaskStatusDone {
		return shared.NewDomainError("INVALID_STATE", "Completed tasks must be reopened first")
	}
	t.Status = TaskStatusInProgress
	t.Touch()
	return nil
}

// Complete marks the task done and stamps completed_at
func (t *Task) Complete() error {
	if t.Status == TaskStatusDone {
		return shared.NewDomainError("INVALID_STATE", "Task is already completed")
	}
	now := time.Now()
	t.Status = TaskStatusDone
	t.CompletedAt = &now
	t.UpdatedAt = now
	t.AddDomainEvent(NewTaskCompletedEvent(t))
	return nil
}

// Reopen moves a completed task back to todo
func (t *Task) Reopen() error {
	if t.Status != TaskStatusDone {
		return shared.NewDomainError("INVALID_STATE", "Only completed tasks can be reopened")
	}
	t.Status = TaskStatusTodo
	t.CompletedAt = nil
	t.Touch()
	return nil
}

// IsOverdue reports whether an unfinished task is past its due date
func (t *Task) IsOverdue(now time.Time) bool {
	return t.Status != TaskStatusDone && t.DueDate != nil && t.DueDate.Before(now)
}
