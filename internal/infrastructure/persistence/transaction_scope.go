package persistence

import (
	"context"

	appidentity "github.com/salescrm/backend/internal/application/identity"
	appsales "github.com/salescrm/backend/internal/application/sales"
	"github.com/salescrm/backend/internal/domain/identity"
	"github.com/salescrm/backend/internal/domain/sales"
	"gorm.io/gorm"
)

// GormTransactionScope implements the application transaction scopes using GORM transactions
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction. An error from fn rolls it back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appsales.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// Identity returns the scope used for workspace provisioning
func (s *GormTransactionScope) Identity() *GormIdentityTransactionScope {
	return &GormIdentityTransactionScope{db: s.db}
}

// GormIdentityTransactionScope implements the identity transaction scope
type GormIdentityTransactionScope struct {
	db *gorm.DB
}

// Execute runs fn within a database transaction
func (s *GormIdentityTransactionScope) Execute(ctx context.Context, fn func(repos appidentity.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) PipelineRepo() sales.PipelineRepository {
	return NewGormPipelineRepository(r.tx)
}

func (r *gormTransactionalRepositories) StageRepo() sales.StageRepository {
	return NewGormStageRepository(r.tx)
}

func (r *gormTransactionalRepositories) DealRepo() sales.DealRepository {
	return NewGormDealRepository(r.tx)
}

func (r *gormTransactionalRepositories) DealEventRepo() sales.DealEventRepository {
	return NewGormDealEventRepository(r.tx)
}

func (r *gormTransactionalRepositories) RevenueItemRepo() sales.RevenueItemRepository {
	return NewGormRevenueItemRepository(r.tx)
}

func (r *gormTransactionalRepositories) WorkspaceRepo() identity.WorkspaceRepository {
	return NewGormWorkspaceRepository(r.tx)
}

func (r *gormTransactionalRepositories) MemberRepo() identity.MemberRepository {
	return NewGormMemberRepository(r.tx)
}

var (
	_ appsales.TransactionScope             = (*GormTransactionScope)(nil)
	_ appsales.TransactionalRepositories    = (*gormTransactionalRepositories)(nil)
	_ appidentity.TransactionScope          = (*GormIdentityTransactionScope)(nil)
	_ appidentity.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
)
