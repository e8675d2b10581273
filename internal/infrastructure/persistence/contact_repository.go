package persistence

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/contact"
	"github.com/salescrm/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormContactRepository implements ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// FindByIDForWorkspace finds a contact within a workspace
func (r *GormContactRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*contact.Contact, error) {
	var c contact.Contact
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND id = ?", workspaceID, id).
		First(&c).Error; err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

// FindAllForWorkspace lists contacts matching the filter
func (r *GormContactRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) ([]contact.Contact, error) {
	var contacts []contact.Contact
	query := r.applyFilter(r.db.WithContext(ctx).Model(&contact.Contact{}).Where("workspace_id = ?", workspaceID), filter)
	query = paginate(query, filter, contactSortFields, "first_name ASC, last_name ASC")
	if err := query.Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// CountForWorkspace counts contacts matching the filter
func (r *GormContactRepository) CountForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&contact.Contact{}).Where("workspace_id = ?", workspaceID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a contact
func (r *GormContactRepository) Save(ctx context.Context, c *contact.Contact) error {
	return translateError(r.db.WithContext(ctx).Save(c).Error)
}

// DeleteForWorkspace deletes a contact
func (r *GormContactRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).
		Delete(&contact.Contact{}, "workspace_id = ? AND id = ?", workspaceID, id))
}

func (r *GormContactRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = searchFilter(query, filter.Search, "first_name", "last_name", "email")
	query = equalityFilters(query, filter, "company_id", "owner_id")
	if tag, ok := filter.Filters["tag"].(string); ok && tag != "" {
		quoted, _ := json.Marshal(strings.ToLower(tag))
		query = query.Where(`CAST(tags AS TEXT) LIKE ? ESCAPE '\'`, "%"+escapeLike(string(quoted))+"%")
	}
	return query
}

// GormCompanyRepository implements CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindByIDForWorkspace finds a company within a workspace
func (r *GormCompanyRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*contact.Company, error) {
	var c contact.Company
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND id = ?", workspaceID, id).
		First(&c).Error; err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

// FindAllForWorkspace lists companies matching the filter
func (r *GormCompanyRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) ([]contact.Company, error) {
	var companies []contact.Company
	query := r.applyFilter(r.db.WithContext(ctx).Model(&contact.Company{}).Where("workspace_id = ?", workspaceID), filter)
	query = paginate(query, filter, companySortFields, "name ASC")
	if err := query.Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// CountForWorkspace counts companies matching the filter
func (r *GormCompanyRepository) CountForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&contact.Company{}).Where("workspace_id = ?", workspaceID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a company
func (r *GormCompanyRepository) Save(ctx context.Context, c *contact.Company) error {
	return translateError(r.db.WithContext(ctx).Save(c).Error)
}

// DeleteForWorkspace detaches the company's contacts and deletes it in one transaction
func (r *GormCompanyRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&contact.Contact{}).
			Where("workspace_id = ? AND company_id = ?", workspaceID, id).
			Updates(map[string]interface{}{"company_id": nil, "updated_at": time.Now()}).Error; err != nil {
			return err
		}
		return deleteResult(tx.Delete(&contact.Company{}, "workspace_id = ? AND id = ?", workspaceID, id))
	})
}

func (r *GormCompanyRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = searchFilter(query, filter.Search, "name", "domain")
	return equalityFilters(query, filter, "industry", "size")
}

var (
	_ contact.ContactRepository = (*GormContactRepository)(nil)
	_ contact.CompanyRepository = (*GormCompanyRepository)(nil)
)
