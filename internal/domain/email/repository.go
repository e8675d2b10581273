package email

import (
	"context"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/shared"
)

// TemplateRepository persists email templates
type TemplateRepository interface {
	FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*Template, error)
	FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) ([]Template, error)
	CountForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, template *Template) error
	DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error
}

// LogRepository persists email logs
type LogRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Log, error)
	FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*Log, error)
	FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) ([]Log, error)
	CountForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, log *Log) error
}
