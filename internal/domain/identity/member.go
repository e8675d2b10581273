package identity

import (
	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/shared"
)

// Role is a member's permission level inside a workspace
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// CanManage reports whether the role may manage members and API keys
func (r Role) CanManage() bool {
	return r == RoleOwner || r == RoleAdmin
}

// Member links a user to a workspace
type Member struct {
	shared.WorkspaceEntity
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	Role   Role      `gorm:"type:varchar(20);not null;default:'member'"`

	User *User `gorm:"foreignKey:UserID"`
}

// TableName returns the table name for GORM
func (Member) TableName() string {
	return "workspace_members"
}

// NewMember creates a membership
func NewMember(workspaceID, userID uuid.UUID, role Role) (*Member, error) {
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be one of owner, admin, member")
	}
	if userID == uuid.Nil {
		return nil, shared.Validation("User is required")
	}
	return &Member{
		WorkspaceEntity: shared.NewWorkspaceEntity(workspaceID),
		UserID:          userID,
		Role:            role,
	}, nil
}

// ChangeRole updates the role. ownerCount is the number of owners currently in the workspace.
func (m *Member) ChangeRole(role Role, ownerCount int64) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Role must be one of owner, admin, member")
	}
	if m.Role == RoleOwner && role != RoleOwner && ownerCount <= 1 {
		return shared.NewDomainError("INVALID_STATE", "A workspace must keep at least one owner")
	}
	m.Role = role
	m.Touch()
	return nil
}

// EnsureRemovable fails when removing m would leave the workspace without an owner
func (m *Member) EnsureRemovable(ownerCount int64) error {
	if m.Role == RoleOwner && ownerCount <= 1 {
		return shared.NewDomainError("INVALID_STATE", "A workspace must keep at least one owner")
	}
	return nil
}
