package engagement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/engagement"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*engagement.Task, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engagement.Task), args.Error(1)
}

func (m *MockTaskRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) ([]engagement.Task, error) {
	args := m.Called(ctx, workspaceID, filter)
	return args.Get(0).([]engagement.Task), args.Error(1)
}

func (m *MockTaskRepository) CountForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, workspaceID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) CountDueBetween(ctx context.Context, workspaceID uuid.UUID, from, to time.Time) (int64, error) {
	args := m.Called(ctx, workspaceID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) CountOverdue(ctx context.Context, workspaceID uuid.UUID, now time.Time) (int64, error) {
	args := m.Called(ctx, workspaceID, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) Save(ctx context.Context, task *engagement.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockTaskRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	return m.Called(ctx, workspaceID, id).Error(0)
}

type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*engagement.Note, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engagement.Note), args.Error(1)
}

func (m *MockNoteRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) ([]engagement.Note, error) {
	args := m.Called(ctx, workspaceID, filter)
	return args.Get(0).([]engagement.Note), args.Error(1)
}

func (m *MockNoteRepository) CountForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, workspaceID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNoteRepository) Save(ctx context.Context, note *engagement.Note) error {
	return m.Called(ctx, note).Error(0)
}

func (m *MockNoteRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	return m.Called(ctx, workspaceID, id).Error(0)
}

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) ([]engagement.Activity, error) {
	args := m.Called(ctx, workspaceID, filter)
	return args.Get(0).([]engagement.Activity), args.Error(1)
}

func (m *MockActivityRepository) CountForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, workspaceID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockActivityRepository) FindBetween(ctx context.Context, workspaceID uuid.UUID, from, to time.Time) ([]engagement.Activity, error) {
	args := m.Called(ctx, workspaceID, from, to)
	return args.Get(0).([]engagement.Activity), args.Error(1)
}

func (m *MockActivityRepository) Save(ctx context.Context, activity *engagement.Activity) error {
	return m.Called(ctx, activity).Error(0)
}

type MockFileRepository struct {
	mock.Mock
}

func (m *MockFileRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*engagement.File, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engagement.File), args.Error(1)
}

func (m *MockFileRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) ([]engagement.File, error) {
	args := m.Called(ctx, workspaceID, filter)
	return args.Get(0).([]engagement.File), args.Error(1)
}

func (m *MockFileRepository) CountForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, workspaceID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFileRepository) Save(ctx context.Context, file *engagement.File) error {
	return m.Called(ctx, file).Error(0)
}

func (m *MockFileRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	return m.Called(ctx, workspaceID, id).Error(0)
}

type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) PresignPut(ctx context.Context, key, contentType string) (PresignedURL, error) {
	args := m.Called(ctx, key, contentType)
	return args.Get(0).(PresignedURL), args.Error(1)
}

func (m *MockObjectStorage) PresignGet(ctx context.Context, key, downloadName string) (PresignedURL, error) {
	args := m.Called(ctx, key, downloadName)
	return args.Get(0).(PresignedURL), args.Error(1)
}

func (m *MockObjectStorage) ObjectExists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockObjectStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	return m.Called(ctx, events).Error(0)
}
