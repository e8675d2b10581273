package contact

import (
	"context"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/shared"
)

// ContactRepository persists contacts
type ContactRepository interface {
	FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*Contact, error)
	FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) ([]Contact, error)
	CountForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, contact *Contact) error
	DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error
}

// CompanyRepository persists companies
type CompanyRepository interface {
	FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*Company, error)
	FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) ([]Company, error)
	CountForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, company *Company) error
	// DeleteForWorkspace removes the company and detaches its contacts atomically
	DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error
}
