package identity

import (
	"context"

	"github.com/salescrm/backend/internal/domain/identity"
	"github.com/salescrm/backend/internal/domain/sales"
)

// TransactionScope provides transactional access to the repositories touched when provisioning a workspace
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories are bound to the current transaction
type TransactionalRepositories interface {
	WorkspaceRepo() identity.WorkspaceRepository
	MemberRepo() identity.MemberRepository
	PipelineRepo() sales.PipelineRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use transactions
type NoOpTransactionScope struct {
	workspaces identity.WorkspaceRepository
	members    identity.MemberRepository
	pipelines  sales.PipelineRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	workspaces identity.WorkspaceRepository,
	members identity.MemberRepository,
	pipelines sales.PipelineRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{workspaces: workspaces, members: members, pipelines: pipelines}
}

// Execute runs fn without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// WorkspaceRepo returns the workspace repository
func (s *NoOpTransactionScope) WorkspaceRepo() identity.WorkspaceRepository { return s.workspaces }

// MemberRepo returns the member repository
func (s *NoOpTransactionScope) MemberRepo() identity.MemberRepository { return s.members }

// PipelineRepo returns the pipeline repository
func (s *NoOpTransactionScope) PipelineRepo() sales.PipelineRepository { return s.pipelines }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
