package identity

import (
	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/shared"
)

// Event type constants
const (
	EventTypeWorkspaceCreated = "WorkspaceCreated"
	EventTypeMemberAdded      = "MemberAdded"
	EventTypeMemberRemoved    = "MemberRemoved"

	AggregateTypeWorkspace = "Workspace"
)

// WorkspaceCreatedEvent is raised when a new workspace is set up
type WorkspaceCreatedEvent struct {
	shared.BaseDomainEvent
	Name    string    `json:"name"`
	Slug    string    `json:"slug"`
	OwnerID uuid.UUID `json:"owner_id"`
}

// NewWorkspaceCreatedEvent creates a WorkspaceCreatedEvent
func NewWorkspaceCreatedEvent(w *Workspace) *WorkspaceCreatedEvent {
	return &WorkspaceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeWorkspaceCreated, AggregateTypeWorkspace, w.ID, w.ID),
		Name:            w.Name,
		Slug:            w.Slug,
		OwnerID:         w.OwnerID,
	}
}

// MemberEvent is raised when membership changes
type MemberEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
	Role   Role      `json:"role"`
}

// NewMemberEvent creates a membership event of the given type
func NewMemberEvent(eventType string, m *Member) *MemberEvent {
	return &MemberEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeWorkspace, m.WorkspaceID, m.WorkspaceID),
		UserID:          m.UserID,
		Role:            m.Role,
	}
}
