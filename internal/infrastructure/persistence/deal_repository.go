package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/sales"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormDealRepository implements DealRepository using GORM
type GormDealRepository struct {
	db *gorm.DB
}

// NewGormDealRepository creates a new GormDealRepository
func NewGormDealRepository(db *gorm.DB) *GormDealRepository {
	return &GormDealRepository{db: db}
}

// FindByIDForWorkspace finds a deal within a workspace
func (r *GormDealRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*sales.Deal, error) {
	var deal sales.Deal
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND id = ?", workspaceID, id).
		First(&deal).Error; err != nil {
		return nil, translateError(err)
	}
	return &deal, nil
}

// FindAllForWorkspace lists deals matching the filter
func (r *GormDealRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) ([]sales.Deal, error) {
	var deals []sales.Deal
	query := r.applyFilter(r.db.WithContext(ctx).Model(&sales.Deal{}).Where("workspace_id = ?", workspaceID), filter)
	query = paginate(query, filter, dealSortFields, "created_at DESC")
	if err := query.Find(&deals).Error; err != nil {
		return nil, err
	}
	return deals, nil
}

// CountForWorkspace counts deals matching the filter
func (r *GormDealRepository) CountForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&sales.Deal{}).Where("workspace_id = ?", workspaceID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByPipeline lists every deal of a pipeline ordered for the board
func (r *GormDealRepository) FindByPipeline(ctx context.Context, workspaceID, pipelineID uuid.UUID) ([]sales.Deal, error) {
	var deals []sales.Deal
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND pipeline_id = ?", workspaceID, pipelineID).
		Order("position ASC, created_at ASC").
		Find(&deals).Error; err != nil {
		return nil, err
	}
	return deals, nil
}

// CountByStage counts deals sitting in a stage
func (r *GormDealRepository) CountByStage(ctx context.Context, workspaceID, stageID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&sales.Deal{}).
		Where("workspace_id = ? AND stage_id = ?", workspaceID, stageID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByPipeline counts deals in a pipeline
func (r *GormDealRepository) CountByPipeline(ctx context.Context, workspaceID, pipelineID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&sales.Deal{}).
		Where("workspace_id = ? AND pipeline_id = ?", workspaceID, pipelineID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// NextPosition returns the position after the last deal of a stage
func (r *GormDealRepository) NextPosition(ctx context.Context, workspaceID, stageID uuid.UUID) (int, error) {
	var next int
	if err := r.db.WithContext(ctx).Model(&sales.Deal{}).
		Select("COALESCE(MAX(position), -1) + 1").
		Where("workspace_id = ? AND stage_id = ?", workspaceID, stageID).
		Scan(&next).Error; err != nil {
		return 0, err
	}
	return next, nil
}

// Save creates or updates a deal
func (r *GormDealRepository) Save(ctx context.Context, deal *sales.Deal) error {
	return translateError(r.db.WithContext(ctx).Save(deal).Error)
}

// UpdateValue writes a recomputed deal value
func (r *GormDealRepository) UpdateValue(ctx context.Context, workspaceID, id uuid.UUID, value decimal.Decimal) error {
	return deleteResult(r.db.WithContext(ctx).Model(&sales.Deal{}).
		Where("workspace_id = ? AND id = ?", workspaceID, id).
		Updates(map[string]interface{}{"value": value, "updated_at": time.Now()}))
}

// DeleteForWorkspace deletes a deal
func (r *GormDealRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).
		Delete(&sales.Deal{}, "workspace_id = ? AND id = ?", workspaceID, id))
}

func (r *GormDealRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = searchFilter(query, filter.Search, "title")
	query = equalityFilters(query, filter, "company_id", "contact_id", "owner_id", "pipeline_id", "stage_id", "status")
	if v, ok := filter.Filters["closed_from"]; ok {
		query = query.Where("closed_at >= ?", v)
	}
	if v, ok := filter.Filters["closed_to"]; ok {
		query = query.Where("closed_at < ?", v)
	}
	return query
}

// GormDealEventRepository implements DealEventRepository using GORM
type GormDealEventRepository struct {
	db *gorm.DB
}

// NewGormDealEventRepository creates a new GormDealEventRepository
func NewGormDealEventRepository(db *gorm.DB) *GormDealEventRepository {
	return &GormDealEventRepository{db: db}
}

// Save appends an audit row
func (r *GormDealEventRepository) Save(ctx context.Context, event *sales.DealEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// FindByDeal lists a deal's audit trail, newest first
func (r *GormDealEventRepository) FindByDeal(ctx context.Context, workspaceID, dealID uuid.UUID) ([]sales.DealEvent, error) {
	var events []sales.DealEvent
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND deal_id = ?", workspaceID, dealID).
		Order("created_at DESC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// GormTranscriptRepository implements TranscriptRepository using GORM
type GormTranscriptRepository struct {
	db *gorm.DB
}

// NewGormTranscriptRepository creates a new GormTranscriptRepository
func NewGormTranscriptRepository(db *gorm.DB) *GormTranscriptRepository {
	return &GormTranscriptRepository{db: db}
}

// FindByIDForWorkspace finds a transcript within a workspace
func (r *GormTranscriptRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*sales.Transcript, error) {
	var t sales.Transcript
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND id = ?", workspaceID, id).
		First(&t).Error; err != nil {
		return nil, translateError(err)
	}
	return &t, nil
}

// FindByDeal lists a deal's transcripts, newest first
func (r *GormTranscriptRepository) FindByDeal(ctx context.Context, workspaceID, dealID uuid.UUID) ([]sales.Transcript, error) {
	var transcripts []sales.Transcript
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND deal_id = ?", workspaceID, dealID).
		Order("created_at DESC").
		Find(&transcripts).Error; err != nil {
		return nil, err
	}
	return transcripts, nil
}

// Save creates or updates a transcript
func (r *GormTranscriptRepository) Save(ctx context.Context, t *sales.Transcript) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// DeleteForWorkspace deletes a transcript
func (r *GormTranscriptRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).
		Delete(&sales.Transcript{}, "workspace_id = ? AND id = ?", workspaceID, id))
}

// GormRevenueItemRepository implements RevenueItemRepository using GORM
type GormRevenueItemRepository struct {
	db *gorm.DB
}

// NewGormRevenueItemRepository creates a new GormRevenueItemRepository
func NewGormRevenueItemRepository(db *gorm.DB) *GormRevenueItemRepository {
	return &GormRevenueItemRepository{db: db}
}

// FindByIDForWorkspace finds a revenue item within a workspace
func (r *GormRevenueItemRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*sales.RevenueItem, error) {
	var item sales.RevenueItem
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND id = ?", workspaceID, id).
		First(&item).Error; err != nil {
		return nil, translateError(err)
	}
	return &item, nil
}

// FindByDeal lists a deal's revenue items in creation order
func (r *GormRevenueItemRepository) FindByDeal(ctx context.Context, workspaceID, dealID uuid.UUID) ([]sales.RevenueItem, error) {
	var items []sales.RevenueItem
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND deal_id = ?", workspaceID, dealID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindAllForWorkspace lists every revenue item of the workspace
func (r *GormRevenueItemRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]sales.RevenueItem, error) {
	var items []sales.RevenueItem
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates or updates a revenue item
func (r *GormRevenueItemRepository) Save(ctx context.Context, item *sales.RevenueItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// DeleteForWorkspace deletes a revenue item
func (r *GormRevenueItemRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).
		Delete(&sales.RevenueItem{}, "workspace_id = ? AND id = ?", workspaceID, id))
}

var (
	_ sales.DealRepository        = (*GormDealRepository)(nil)
	_ sales.DealEventRepository   = (*GormDealEventRepository)(nil)
	_ sales.TranscriptRepository  = (*GormTranscriptRepository)(nil)
	_ sales.RevenueItemRepository = (*GormRevenueItemRepository)(nil)
)
