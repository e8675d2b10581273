package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/engagement"
	"github.com/salescrm/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormTaskRepository implements TaskRepository using GORM
type GormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GormTaskRepository
func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

// FindByIDForWorkspace finds a task within a workspace
func (r *GormTaskRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*engagement.Task, error) {
	var t engagement.Task
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND id = ?", workspaceID, id).
		First(&t).Error; err != nil {
		return nil, translateError(err)
	}
	return &t, nil
}

// FindAllForWorkspace lists tasks matching the filter
func (r *GormTaskRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) ([]engagement.Task, error) {
	var tasks []engagement.Task
	query := r.applyFilter(r.db.WithContext(ctx).Model(&engagement.Task{}).Where("workspace_id = ?", workspaceID), filter)
	query = paginate(query, filter, taskSortFields, "due_date ASC, created_at DESC")
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// CountForWorkspace counts tasks matching the filter
func (r *GormTaskRepository) CountForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&engagement.Task{}).Where("workspace_id = ?", workspaceID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountDueBetween counts unfinished tasks due in [from, to)
func (r *GormTaskRepository) CountDueBetween(ctx context.Context, workspaceID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&engagement.Task{}).
		Where("workspace_id = ? AND status <> ? AND due_date >= ? AND due_date < ?",
			workspaceID, engagement.TaskStatusDone, from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountOverdue counts unfinished tasks due before now
func (r *GormTaskRepository) CountOverdue(ctx context.Context, workspaceID uuid.UUID, now time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&engagement.Task{}).
		Where("workspace_id = ? AND status <> ? AND due_date < ?", workspaceID, engagement.TaskStatusDone, now).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a task
func (r *GormTaskRepository) Save(ctx context.Context, t *engagement.Task) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// DeleteForWorkspace deletes a task
func (r *GormTaskRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).
		Delete(&engagement.Task{}, "workspace_id = ? AND id = ?", workspaceID, id))
}

func (r *GormTaskRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = searchFilter(query, filter.Search, "title")
	query = equalityFilters(query, filter, "assignee_id", "contact_id", "deal_id", "priority", "status")
	if overdue, ok := filter.Filters["overdue"].(bool); ok && overdue {
		query = query.Where("status <> ? AND due_date < ?", engagement.TaskStatusDone, time.Now())
	}
	return query
}

// GormNoteRepository implements NoteRepository using GORM
type GormNoteRepository struct {
	db *gorm.DB
}

// NewGormNoteRepository creates a new GormNoteRepository
func NewGormNoteRepository(db *gorm.DB) *GormNoteRepository {
	return &GormNoteRepository{db: db}
}

// FindByIDForWorkspace finds a note within a workspace
func (r *GormNoteRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*engagement.Note, error) {
	var n engagement.Note
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND id = ?", workspaceID, id).
		First(&n).Error; err != nil {
		return nil, translateError(err)
	}
	return &n, nil
}

// FindAllForWorkspace lists notes, newest first
func (r *GormNoteRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) ([]engagement.Note, error) {
	var notes []engagement.Note
	query := equalityFilters(r.db.WithContext(ctx).Model(&engagement.Note{}).Where("workspace_id = ?", workspaceID),
		filter, "author_id", "company_id", "contact_id", "deal_id")
	query = paginate(query, filter, commonSortFields, "created_at DESC")
	if err := query.Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// CountForWorkspace counts notes matching the filter
func (r *GormNoteRepository) CountForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := equalityFilters(r.db.WithContext(ctx).Model(&engagement.Note{}).Where("workspace_id = ?", workspaceID),
		filter, "author_id", "company_id", "contact_id", "deal_id")
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a note
func (r *GormNoteRepository) Save(ctx context.Context, n *engagement.Note) error {
	return r.db.WithContext(ctx).Save(n).Error
}

// DeleteForWorkspace deletes a note
func (r *GormNoteRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).
		Delete(&engagement.Note{}, "workspace_id = ? AND id = ?", workspaceID, id))
}

// GormActivityRepository implements ActivityRepository using GORM
type GormActivityRepository struct {
	db *gorm.DB
}

// NewGormActivityRepository creates a new GormActivityRepository
func NewGormActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

// FindAllForWorkspace lists activities, newest first
func (r *GormActivityRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) ([]engagement.Activity, error) {
	var activities []engagement.Activity
	query := r.applyFilter(r.db.WithContext(ctx).Model(&engagement.Activity{}).Where("workspace_id = ?", workspaceID), filter)
	query = paginate(query, filter, activitySortFields, "occurred_at DESC")
	if err := query.Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

// CountForWorkspace counts activities matching the filter
func (r *GormActivityRepository) CountForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&engagement.Activity{}).Where("workspace_id = ?", workspaceID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindBetween lists activities that occurred in [from, to)
func (r *GormActivityRepository) FindBetween(ctx context.Context, workspaceID uuid.UUID, from, to time.Time) ([]engagement.Activity, error) {
	var activities []engagement.Activity
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND occurred_at >= ? AND occurred_at < ?", workspaceID, from, to).
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

// Save appends an activity
func (r *GormActivityRepository) Save(ctx context.Context, a *engagement.Activity) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *GormActivityRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	return equalityFilters(query, filter, "company_id", "contact_id", "deal_id", "type", "user_id")
}

// GormFileRepository implements FileRepository using GORM
type GormFileRepository struct {
	db *gorm.DB
}

// NewGormFileRepository creates a new GormFileRepository
func NewGormFileRepository(db *gorm.DB) *GormFileRepository {
	return &GormFileRepository{db: db}
}

// FindByIDForWorkspace finds a file within a workspace
func (r *GormFileRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*engagement.File, error) {
	var f engagement.File
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND id = ?", workspaceID, id).
		First(&f).Error; err != nil {
		return nil, translateError(err)
	}
	return &f, nil
}

// FindAllForWorkspace lists files matching the filter
func (r *GormFileRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) ([]engagement.File, error) {
	var files []engagement.File
	query := equalityFilters(r.db.WithContext(ctx).Model(&engagement.File{}).Where("workspace_id = ?", workspaceID),
		filter, "company_id", "contact_id", "deal_id", "status")
	query = paginate(query, filter, fileSortFields, "created_at DESC")
	if err := query.Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

// CountForWorkspace counts files matching the filter
func (r *GormFileRepository) CountForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := equalityFilters(r.db.WithContext(ctx).Model(&engagement.File{}).Where("workspace_id = ?", workspaceID),
		filter, "company_id", "contact_id", "deal_id", "status")
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a file record
func (r *GormFileRepository) Save(ctx context.Context, f *engagement.File) error {
	return translateError(r.db.WithContext(ctx).Save(f).Error)
}

// DeleteForWorkspace deletes a file record
func (r *GormFileRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).
		Delete(&engagement.File{}, "workspace_id = ? AND id = ?", workspaceID, id))
}

var (
	_ engagement.TaskRepository     = (*GormTaskRepository)(nil)
	_ engagement.NoteRepository     = (*GormNoteRepository)(nil)
	_ engagement.ActivityRepository = (*GormActivityRepository)(nil)
	_ engagement.FileRepository     = (*GormFileRepository)(nil)
)
