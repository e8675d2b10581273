package contact

import (
	"context"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/contact"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*contact.Contact, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contact.Contact), args.Error(1)
}

func (m *MockContactRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) ([]contact.Contact, error) {
	args := m.Called(ctx, workspaceID, filter)
	return args.Get(0).([]contact.Contact), args.Error(1)
}

func (m *MockContactRepository) CountForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, workspaceID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockContactRepository) Save(ctx context.Context, c *contact.Contact) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockContactRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	return m.Called(ctx, workspaceID, id).Error(0)
}

type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*contact.Company, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contact.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) ([]contact.Company, error) {
	args := m.Called(ctx, workspaceID, filter)
	return args.Get(0).([]contact.Company), args.Error(1)
}

func (m *MockCompanyRepository) CountForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, workspaceID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCompanyRepository) Save(ctx context.Context, c *contact.Company) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCompanyRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	return m.Called(ctx, workspaceID, id).Error(0)
}
