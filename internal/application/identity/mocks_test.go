package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/identity"
	"github.com/salescrm/backend/internal/domain/sales"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Workspace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) FindBySlug(ctx context.Context, slug string) (*identity.Workspace, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) FindByMember(ctx context.Context, userID uuid.UUID) ([]identity.Workspace, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]identity.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockWorkspaceRepository) Save(ctx context.Context, ws *identity.Workspace) error {
	return m.Called(ctx, ws).Error(0)
}

type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) FindForWorkspace(ctx context.Context, workspaceID, userID uuid.UUID) (*identity.Member, error) {
	args := m.Called(ctx, workspaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Member), args.Error(1)
}

func (m *MockMemberRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]identity.Member, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]identity.Member), args.Error(1)
}

func (m *MockMemberRepository) CountByRole(ctx context.Context, workspaceID uuid.UUID, role identity.Role) (int64, error) {
	args := m.Called(ctx, workspaceID, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMemberRepository) Save(ctx context.Context, member *identity.Member) error {
	return m.Called(ctx, member).Error(0)
}

func (m *MockMemberRepository) DeleteForWorkspace(ctx context.Context, workspaceID, userID uuid.UUID) error {
	return m.Called(ctx, workspaceID, userID).Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByExternalID(ctx context.Context, externalID string) (*identity.User, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

type MockAPIKeyRepository struct {
	mock.Mock
}

func (m *MockAPIKeyRepository) FindByPrefix(ctx context.Context, prefix string) (*identity.APIKey, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.APIKey), args.Error(1)
}

func (m *MockAPIKeyRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*identity.APIKey, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.APIKey), args.Error(1)
}

func (m *MockAPIKeyRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]identity.APIKey, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]identity.APIKey), args.Error(1)
}

func (m *MockAPIKeyRepository) Save(ctx context.Context, key *identity.APIKey) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockAPIKeyRepository) TouchLastUsed(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockPipelineRepository struct {
	mock.Mock
}

func (m *MockPipelineRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*sales.Pipeline, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Pipeline), args.Error(1)
}

func (m *MockPipelineRepository) FindDefault(ctx context.Context, workspaceID uuid.UUID) (*sales.Pipeline, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Pipeline), args.Error(1)
}

func (m *MockPipelineRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]sales.Pipeline, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]sales.Pipeline), args.Error(1)
}

func (m *MockPipelineRepository) Save(ctx context.Context, p *sales.Pipeline) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPipelineRepository) ClearDefault(ctx context.Context, workspaceID uuid.UUID) error {
	return m.Called(ctx, workspaceID).Error(0)
}

func (m *MockPipelineRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	return m.Called(ctx, workspaceID, id).Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	return m.Called(ctx, events).Error(0)
}

// plainHasher stores secrets with a marker prefix so tests can assert on hashes
type plainHasher struct{}

func (plainHasher) Hash(secret string) (string, error) { return "hashed:" + secret, nil }

func (plainHasher) Compare(hash, secret string) error {
	if hash != "hashed:"+secret {
		return errors.New("mismatch")
	}
	return nil
}
