package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/sales"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPipelineRepository implements PipelineRepository using GORM
type GormPipelineRepository struct {
	db *gorm.DB
}

// NewGormPipelineRepository creates a new GormPipelineRepository
func NewGormPipelineRepository(db *gorm.DB) *GormPipelineRepository {
	return &GormPipelineRepository{db: db}
}

func (r *GormPipelineRepository) withStages(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Stages", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

// FindByIDForWorkspace finds a pipeline with its stages
func (r *GormPipelineRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*sales.Pipeline, error) {
	var p sales.Pipeline
	if err := r.withStages(ctx).
		Where("workspace_id = ? AND id = ?", workspaceID, id).
		First(&p).Error; err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

// FindDefault finds the workspace's default pipeline
func (r *GormPipelineRepository) FindDefault(ctx context.Context, workspaceID uuid.UUID) (*sales.Pipeline, error) {
	var p sales.Pipeline
	if err := r.withStages(ctx).
		Where("workspace_id = ? AND is_default = ?", workspaceID, true).
		First(&p).Error; err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

// FindAllForWorkspace lists pipelines with stages, default first
func (r *GormPipelineRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]sales.Pipeline, error) {
	var pipelines []sales.Pipeline
	if err := r.withStages(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("is_default DESC, name ASC").
		Find(&pipelines).Error; err != nil {
		return nil, err
	}
	return pipelines, nil
}

// Save writes the pipeline row and each of its stages
func (r *GormPipelineRepository) Save(ctx context.Context, p *sales.Pipeline) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(p).Error; err != nil {
			return translateError(err)
		}
		for i := range p.Stages {
			if err := tx.Save(&p.Stages[i]).Error; err != nil {
				return translateError(err)
			}
		}
		return nil
	})
}

// ClearDefault unsets the default flag on every pipeline of the workspace
func (r *GormPipelineRepository) ClearDefault(ctx context.Context, workspaceID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&sales.Pipeline{}).
		Where("workspace_id = ? AND is_default = ?", workspaceID, true).
		Updates(map[string]interface{}{"is_default": false, "updated_at": time.Now()}).Error
}

// DeleteForWorkspace deletes a pipeline; stages cascade
func (r *GormPipelineRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).
		Delete(&sales.Pipeline{}, "workspace_id = ? AND id = ?", workspaceID, id))
}

// GormStageRepository implements StageRepository using GORM
type GormStageRepository struct {
	db *gorm.DB
}

// NewGormStageRepository creates a new GormStageRepository
func NewGormStageRepository(db *gorm.DB) *GormStageRepository {
	return &GormStageRepository{db: db}
}

// FindByIDForWorkspace finds a stage within a workspace
func (r *GormStageRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*sales.Stage, error) {
	var s sales.Stage
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND id = ?", workspaceID, id).
		First(&s).Error; err != nil {
		return nil, translateError(err)
	}
	return &s, nil
}

// FindAllForWorkspace lists every stage of every pipeline
func (r *GormStageRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]sales.Stage, error) {
	var stages []sales.Stage
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("pipeline_id, position ASC").
		Find(&stages).Error; err != nil {
		return nil, err
	}
	return stages, nil
}

// Save creates or updates a stage
func (r *GormStageRepository) Save(ctx context.Context, stage *sales.Stage) error {
	return translateError(r.db.WithContext(ctx).Save(stage).Error)
}

// UpdatePosition writes a single stage position
func (r *GormStageRepository) UpdatePosition(ctx context.Context, workspaceID, id uuid.UUID, position int) error {
	result := r.db.WithContext(ctx).
		Model(&sales.Stage{}).
		Where("workspace_id = ? AND id = ?", workspaceID, id).
		Updates(map[string]interface{}{"position": position, "updated_at": time.Now()})
	return deleteResult(result)
}

// DeleteForWorkspace deletes a stage
func (r *GormStageRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).
		Delete(&sales.Stage{}, "workspace_id = ? AND id = ?", workspaceID, id))
}

var (
	_ sales.PipelineRepository = (*GormPipelineRepository)(nil)
	_ sales.StageRepository    = (*GormStageRepository)(nil)
)
