package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/identity"
	"github.com/salescrm/backend/internal/infrastructure/persistence/workspace"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWorkspaceRepository implements WorkspaceRepository using GORM
type GormWorkspaceRepository struct {
	db *gorm.DB
}

// NewGormWorkspaceRepository creates a new GormWorkspaceRepository
func NewGormWorkspaceRepository(db *gorm.DB) *GormWorkspaceRepository {
	return &GormWorkspaceRepository{db: db}
}

// FindByID finds a workspace by its ID
func (r *GormWorkspaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Workspace, error) {
	var ws identity.Workspace
	if err := r.db.WithContext(ctx).First(&ws, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &ws, nil
}

// FindBySlug finds a workspace by its slug
func (r *GormWorkspaceRepository) FindBySlug(ctx context.Context, slug string) (*identity.Workspace, error) {
	var ws identity.Workspace
	if err := r.db.WithContext(ctx).First(&ws, "slug = ?", slug).Error; err != nil {
		return nil, translateError(err)
	}
	return &ws, nil
}

// FindByMember lists the workspaces a user belongs to
func (r *GormWorkspaceRepository) FindByMember(ctx context.Context, userID uuid.UUID) ([]identity.Workspace, error) {
	var workspaces []identity.Workspace
	err := r.db.WithContext(ctx).
		Joins("JOIN workspace_members wm ON wm.workspace_id = workspaces.id").
		Where("wm.user_id = ?", userID).
		Order("workspaces.name ASC").
		Find(&workspaces).Error
	if err != nil {
		return nil, err
	}
	return workspaces, nil
}

// ExistsBySlug checks whether the slug is taken
func (r *GormWorkspaceRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&identity.Workspace{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a workspace
func (r *GormWorkspaceRepository) Save(ctx context.Context, ws *identity.Workspace) error {
	return translateError(r.db.WithContext(ctx).Save(ws).Error)
}

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// FindByEmail finds a user by normalized email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// FindByExternalID finds a user by auth provider subject
func (r *GormUserRepository) FindByExternalID(ctx context.Context, externalID string) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).First(&user, "external_id = ?", externalID).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// Save creates or updates a user
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	return translateError(r.db.WithContext(ctx).Save(user).Error)
}

// GormMemberRepository implements MemberRepository using GORM
type GormMemberRepository struct {
	db *gorm.DB
}

// NewGormMemberRepository creates a new GormMemberRepository
func NewGormMemberRepository(db *gorm.DB) *GormMemberRepository {
	return &GormMemberRepository{db: db}
}

// FindForWorkspace finds a user's membership in a workspace
func (r *GormMemberRepository) FindForWorkspace(ctx context.Context, workspaceID, userID uuid.UUID) (*identity.Member, error) {
	var member identity.Member
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		First(&member).Error; err != nil {
		return nil, translateError(err)
	}
	return &member, nil
}

// FindAllForWorkspace lists members with their users, oldest first
func (r *GormMemberRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]identity.Member, error) {
	var members []identity.Member
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("workspace_id = ?", workspaceID).
		Order("created_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// CountByRole counts members holding a role
func (r *GormMemberRepository) CountByRole(ctx context.Context, workspaceID uuid.UUID, role identity.Role) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&identity.Member{}).
		Where("workspace_id = ? AND role = ?", workspaceID, role).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a membership
func (r *GormMemberRepository) Save(ctx context.Context, member *identity.Member) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(member).Error)
}

// DeleteForWorkspace removes a user's membership
func (r *GormMemberRepository) DeleteForWorkspace(ctx context.Context, workspaceID, userID uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).
		Delete(&identity.Member{}, "workspace_id = ? AND user_id = ?", workspaceID, userID))
}

// GormAPIKeyRepository implements APIKeyRepository using GORM
type GormAPIKeyRepository struct {
	db *gorm.DB
}

// NewGormAPIKeyRepository creates a new GormAPIKeyRepository
func NewGormAPIKeyRepository(db *gorm.DB) *GormAPIKeyRepository {
	return &GormAPIKeyRepository{db: db}
}

// FindByPrefix finds a key by its public prefix. Not workspace scoped: it resolves the workspace.
func (r *GormAPIKeyRepository) FindByPrefix(ctx context.Context, prefix string) (*identity.APIKey, error) {
	var key identity.APIKey
	if err := workspace.Skip(r.db.WithContext(ctx)).First(&key, "prefix = ?", prefix).Error; err != nil {
		return nil, translateError(err)
	}
	return &key, nil
}

// FindByIDForWorkspace finds a key within a workspace
func (r *GormAPIKeyRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*identity.APIKey, error) {
	var key identity.APIKey
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND id = ?", workspaceID, id).
		First(&key).Error; err != nil {
		return nil, translateError(err)
	}
	return &key, nil
}

// FindAllForWorkspace lists keys, newest first
func (r *GormAPIKeyRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]identity.APIKey, error) {
	var keys []identity.APIKey
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("created_at DESC").
		Find(&keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

// Save creates or updates a key
func (r *GormAPIKeyRepository) Save(ctx context.Context, key *identity.APIKey) error {
	return translateError(r.db.WithContext(ctx).Save(key).Error)
}

// TouchLastUsed stamps last_used_at without loading the row
func (r *GormAPIKeyRepository) TouchLastUsed(ctx context.Context, id uuid.UUID) error {
	return workspace.Skip(r.db.WithContext(ctx)).Model(&identity.APIKey{}).
		Where("id = ?", id).
		UpdateColumn("last_used_at", time.Now()).Error
}

var (
	_ identity.WorkspaceRepository = (*GormWorkspaceRepository)(nil)
	_ identity.UserRepository      = (*GormUserRepository)(nil)
	_ identity.MemberRepository    = (*GormMemberRepository)(nil)
	_ identity.APIKeyRepository    = (*GormAPIKeyRepository)(nil)
)
