package engagement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/shared"
)

// TaskRepository persists tasks
type TaskRepository interface {
	FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*Task, error)
	FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) ([]Task, error)
	CountForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (int64, error)
	CountDueBetween(ctx context.Context, workspaceID uuid.UUID, from, to time.Time) (int64, error)
	CountOverdue(ctx context.Context, workspaceID uuid.UUID, now time.Time) (int64, error)
	Save(ctx context.Context, task *Task) error
	DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error
}

// NoteRepository persists notes
type NoteRepository interface {
	FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*Note, error)
	FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) ([]Note, error)
	CountForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, note *Note) error
	DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error
}

// ActivityRepository persists timeline entries
type ActivityRepository interface {
	FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) ([]Activity, error)
	CountForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (int64, error)
	FindBetween(ctx context.Context, workspaceID uuid.UUID, from, to time.Time) ([]Activity, error)
	Save(ctx context.Context, activity *Activity) error
}

// FileRepository persists file metadata
type FileRepository interface {
	FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*File, error)
	FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) ([]File, error)
	CountForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, file *File) error
	DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error
}
