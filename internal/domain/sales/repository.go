package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PipelineRepository persists pipelines. Loaded pipelines include their stages.
type PipelineRepository interface {
	FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*Pipeline, error)
	FindDefault(ctx context.Context, workspaceID uuid.UUID) (*Pipeline, error)
	FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]Pipeline, error)
	Save(ctx context.Context, pipeline *Pipeline) error
	ClearDefault(ctx context.Context, workspaceID uuid.UUID) error
	DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error
}

// StageRepository persists pipeline stages
type StageRepository interface {
	FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*Stage, error)
	FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]Stage, error)
	Save(ctx context.Context, stage *Stage) error
	UpdatePosition(ctx context.Context, workspaceID, id uuid.UUID, position int) error
	DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error
}

// DealRepository persists deals
type DealRepository interface {
	FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*Deal, error)
	FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) ([]Deal, error)
	CountForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (int64, error)
	FindByPipeline(ctx context.Context, workspaceID, pipelineID uuid.UUID) ([]Deal, error)
	CountByStage(ctx context.Context, workspaceID, stageID uuid.UUID) (int64, error)
	CountByPipeline(ctx context.Context, workspaceID, pipelineID uuid.UUID) (int64, error)
	NextPosition(ctx context.Context, workspaceID, stageID uuid.UUID) (int, error)
	Save(ctx context.Context, deal *Deal) error
	UpdateValue(ctx context.Context, workspaceID, id uuid.UUID, value decimal.Decimal) error
	DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error
}

// DealEventRepository stores the deal audit trail
type DealEventRepository interface {
	Save(ctx context.Context, event *DealEvent) error
	FindByDeal(ctx context.Context, workspaceID, dealID uuid.UUID) ([]DealEvent, error)
}

// TranscriptRepository persists deal transcripts
type TranscriptRepository interface {
	FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*Transcript, error)
	FindByDeal(ctx context.Context, workspaceID, dealID uuid.UUID) ([]Transcript, error)
	Save(ctx context.Context, transcript *Transcript) error
	DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error
}

// RevenueItemRepository persists deal revenue items
type RevenueItemRepository interface {
	FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*RevenueItem, error)
	FindByDeal(ctx context.Context, workspaceID, dealID uuid.UUID) ([]RevenueItem, error)
	FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]RevenueItem, error)
	Save(ctx context.Context, item *RevenueItem) error
	DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error
}
