package engagement

import (
	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/shared"
)

// Event type constants
const (
	EventTypeTaskCompleted = "TaskCompleted"
	EventTypeTaskChanged   = "TaskChanged"

	AggregateTypeTask = "Task"
)

// TaskCompletedEvent is raised when a task is marked done
type TaskCompletedEvent struct {
	shared.BaseDomainEvent
	Title      string     `json:"title"`
	AssigneeID *uuid.UUID `json:"assignee_id,omitempty"`
	DealID     *uuid.UUID `json:"deal_id,omitempty"`
	ContactID  *uuid.UUID `json:"contact_id,omitempty"`
}

// NewTaskCompletedEvent creates a TaskCompletedEvent
func NewTaskCompletedEvent(t *Task) *TaskCompletedEvent {
	return &TaskCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTaskCompleted, AggregateTypeTask, t.ID, t.WorkspaceID),
		Title:           t.Title,
		AssigneeID:      t.AssigneeID,
		DealID:          t.DealID,
		ContactID:       t.ContactID,
	}
}

// Task change actions
const (
	TaskActionCreated  = "created"
	TaskActionUpdated  = "updated"
	TaskActionReopened = "reopened"
	TaskActionDeleted  = "deleted"
)

// TaskChangedEvent is raised when a task is created, edited, reopened or deleted
type TaskChangedEvent struct {
	shared.BaseDomainEvent
	Action string `json:"action"`
}

// NewTaskChangedEvent creates a TaskChangedEvent
func NewTaskChangedEvent(workspaceID, taskID uuid.UUID, action string) *TaskChangedEvent {
	return &TaskChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTaskChanged, AggregateTypeTask, taskID, workspaceID),
		Action:          action,
	}
}
