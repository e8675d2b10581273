package sales

import (
	"context"

	"github.com/salescrm/backend/internal/domain/sales"
)

// TransactionScope runs a unit of work against sales repositories sharing one database transaction.
// If fn returns an error the transaction is rolled back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the sales repositories bound to the current transaction
type TransactionalRepositories interface {
	PipelineRepo() sales.PipelineRepository
	StageRepo() sales.StageRepository
	DealRepo() sales.DealRepository
	DealEventRepo() sales.DealEventRepository
	RevenueItemRepo() sales.RevenueItemRepository
}

// Repositories is a plain bundle of sales repositories
type Repositories struct {
	Pipelines    sales.PipelineRepository
	Stages       sales.StageRepository
	Deals        sales.DealRepository
	DealEvents   sales.DealEventRepository
	RevenueItems sales.RevenueItemRepository
}

// NoOpTransactionScope runs fn against the bundled repositories without a transaction. Used in tests.
type NoOpTransactionScope struct {
	repos Repositories
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(repos Repositories) *NoOpTransactionScope {
	return &NoOpTransactionScope{repos: repos}
}

// Execute calls fn directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) PipelineRepo() sales.PipelineRepository       { return s.repos.Pipelines }
func (s *NoOpTransactionScope) StageRepo() sales.StageRepository             { return s.repos.Stages }
func (s *NoOpTransactionScope) DealRepo() sales.DealRepository               { return s.repos.Deals }
func (s *NoOpTransactionScope) DealEventRepo() sales.DealEventRepository     { return s.repos.DealEvents }
func (s *NoOpTransactionScope) RevenueItemRepo() sales.RevenueItemRepository { return s.repos.RevenueItems }

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
