package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/email"
	"github.com/salescrm/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormEmailTemplateRepository implements TemplateRepository using GORM
type GormEmailTemplateRepository struct {
	db *gorm.DB
}

// NewGormEmailTemplateRepository creates a new GormEmailTemplateRepository
func NewGormEmailTemplateRepository(db *gorm.DB) *GormEmailTemplateRepository {
	return &GormEmailTemplateRepository{db: db}
}

// FindByIDForWorkspace finds a template within a workspace
func (r *GormEmailTemplateRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*email.Template, error) {
	var t email.Template
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND id = ?", workspaceID, id).
		First(&t).Error; err != nil {
		return nil, translateError(err)
	}
	return &t, nil
}

// FindAllForWorkspace lists templates
func (r *GormEmailTemplateRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) ([]email.Template, error) {
	var templates []email.Template
	query := searchFilter(r.db.WithContext(ctx).Model(&email.Template{}).Where("workspace_id = ?", workspaceID), filter.Search, "name", "subject")
	query = paginate(query, filter, templateSortFields, "name ASC")
	if err := query.Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// CountForWorkspace counts templates
func (r *GormEmailTemplateRepository) CountForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := searchFilter(r.db.WithContext(ctx).Model(&email.Template{}).Where("workspace_id = ?", workspaceID), filter.Search, "name", "subject")
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a template
func (r *GormEmailTemplateRepository) Save(ctx context.Context, t *email.Template) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// DeleteForWorkspace deletes a template
func (r *GormEmailTemplateRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).
		Delete(&email.Template{}, "workspace_id = ? AND id = ?", workspaceID, id))
}

// GormEmailLogRepository implements LogRepository using GORM
type GormEmailLogRepository struct {
	db *gorm.DB
}

// NewGormEmailLogRepository creates a new GormEmailLogRepository
func NewGormEmailLogRepository(db *gorm.DB) *GormEmailLogRepository {
	return &GormEmailLogRepository{db: db}
}

// FindByID finds a log by ID. Used by the delivery worker, which carries the workspace in the job.
func (r *GormEmailLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*email.Log, error) {
	var l email.Log
	if err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &l, nil
}

// FindByIDForWorkspace finds a log within a workspace
func (r *GormEmailLogRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*email.Log, error) {
	var l email.Log
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND id = ?", workspaceID, id).
		First(&l).Error; err != nil {
		return nil, translateError(err)
	}
	return &l, nil
}

// FindAllForWorkspace lists logs matching the filter, newest first
func (r *GormEmailLogRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) ([]email.Log, error) {
	var logs []email.Log
	query := r.applyFilter(r.db.WithContext(ctx).Model(&email.Log{}).Where("workspace_id = ?", workspaceID), filter)
	query = paginate(query, filter, emailLogSortFields, "created_at DESC")
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// CountForWorkspace counts logs matching the filter
func (r *GormEmailLogRepository) CountForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&email.Log{}).Where("workspace_id = ?", workspaceID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a log
func (r *GormEmailLogRepository) Save(ctx context.Context, l *email.Log) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *GormEmailLogRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = searchFilter(query, filter.Search, "to_email", "subject")
	return equalityFilters(query, filter, "contact_id", "deal_id", "status", "template_id")
}

var (
	_ email.TemplateRepository = (*GormEmailTemplateRepository)(nil)
	_ email.LogRepository      = (*GormEmailLogRepository)(nil)
)
