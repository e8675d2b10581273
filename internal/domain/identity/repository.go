package identity

import (
	"context"

	"github.com/google/uuid"
)

// WorkspaceRepository persists workspaces
type WorkspaceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Workspace, error)
	FindBySlug(ctx context.Context, slug string) (*Workspace, error)
	FindByMember(ctx context.Context, userID uuid.UUID) ([]Workspace, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Save(ctx context.Context, workspace *Workspace) error
}

// UserRepository persists users
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByExternalID(ctx context.Context, externalID string) (*User, error)
	Save(ctx context.Context, user *User) error
}

// MemberRepository persists workspace memberships
type MemberRepository interface {
	FindForWorkspace(ctx context.Context, workspaceID, userID uuid.UUID) (*Member, error)
	FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]Member, error)
	CountByRole(ctx context.Context, workspaceID uuid.UUID, role Role) (int64, error)
	Save(ctx context.Context, member *Member) error
	DeleteForWorkspace(ctx context.Context, workspaceID, userID uuid.UUID) error
}

// APIKeyRepository persists API keys
type APIKeyRepository interface {
	FindByPrefix(ctx context.Context, prefix string) (*APIKey, error)
	FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*APIKey, error)
	FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]APIKey, error)
	Save(ctx context.Context, key *APIKey) error
	TouchLastUsed(ctx context.Context, id uuid.UUID) error
}
