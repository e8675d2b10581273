package email

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/email"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*email.Template, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*email.Template), args.Error(1)
}

func (m *MockTemplateRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) ([]email.Template, error) {
	args := m.Called(ctx, workspaceID, filter)
	return args.Get(0).([]email.Template), args.Error(1)
}

func (m *MockTemplateRepository) CountForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, workspaceID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTemplateRepository) Save(ctx context.Context, t *email.Template) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTemplateRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	return m.Called(ctx, workspaceID, id).Error(0)
}

type MockLogRepository struct {
	mock.Mock
}

func (m *MockLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*email.Log, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*email.Log), args.Error(1)
}

func (m *MockLogRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*email.Log, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*email.Log), args.Error(1)
}

func (m *MockLogRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) ([]email.Log, error) {
	args := m.Called(ctx, workspaceID, filter)
	return args.Get(0).([]email.Log), args.Error(1)
}

func (m *MockLogRepository) CountForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, workspaceID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLogRepository) Save(ctx context.Context, l *email.Log) error {
	return m.Called(ctx, l).Error(0)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, job DeliveryJob) error {
	return m.Called(ctx, job).Error(0)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg OutboundMessage) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockIdempotencyStore) Close() error { return nil }

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	return m.Called(ctx, events).Error(0)
}
