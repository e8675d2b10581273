package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/engagement"
	"github.com/salescrm/backend/internal/domain/sales"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockDealRepository struct {
	mock.Mock
}

func (m *MockDealRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*sales.Deal, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Deal), args.Error(1)
}

func (m *MockDealRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) ([]sales.Deal, error) {
	args := m.Called(ctx, workspaceID, filter)
	return args.Get(0).([]sales.Deal), args.Error(1)
}

func (m *MockDealRepository) CountForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, workspaceID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDealRepository) FindByPipeline(ctx context.Context, workspaceID, pipelineID uuid.UUID) ([]sales.Deal, error) {
	args := m.Called(ctx, workspaceID, pipelineID)
	return args.Get(0).([]sales.Deal), args.Error(1)
}

func (m *MockDealRepository) CountByStage(ctx context.Context, workspaceID, stageID uuid.UUID) (int64, error) {
	args := m.Called(ctx, workspaceID, stageID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDealRepository) CountByPipeline(ctx context.Context, workspaceID, pipelineID uuid.UUID) (int64, error) {
	args := m.Called(ctx, workspaceID, pipelineID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDealRepository) NextPosition(ctx context.Context, workspaceID, stageID uuid.UUID) (int, error) {
	args := m.Called(ctx, workspaceID, stageID)
	return args.Int(0), args.Error(1)
}

func (m *MockDealRepository) Save(ctx context.Context, deal *sales.Deal) error {
	return m.Called(ctx, deal).Error(0)
}

func (m *MockDealRepository) UpdateValue(ctx context.Context, workspaceID, id uuid.UUID, value decimal.Decimal) error {
	return m.Called(ctx, workspaceID, id, value).Error(0)
}

func (m *MockDealRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	return m.Called(ctx, workspaceID, id).Error(0)
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

type MockStageRepository struct {
	mock.Mock
}

func (m *MockStageRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*sales.Stage, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Stage), args.Error(1)
}

func (m *MockStageRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]sales.Stage, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]sales.Stage), args.Error(1)
}

func (m *MockStageRepository) Save(ctx context.Context, s *sales.Stage) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockStageRepository) UpdatePosition(ctx context.Context, workspaceID, id uuid.UUID, position int) error {
	return m.Called(ctx, workspaceID, id, position).Error(0)
}

func (m *MockStageRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	return m.Called(ctx, workspaceID, id).Error(0)
}

type MockRevenueItemRepository struct {
	mock.Mock
}

func (m *MockRevenueItemRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*sales.RevenueItem, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.RevenueItem), args.Error(1)
}

func (m *MockRevenueItemRepository) FindByDeal(ctx context.Context, workspaceID, dealID uuid.UUID) ([]sales.RevenueItem, error) {
	args := m.Called(ctx, workspaceID, dealID)
	return args.Get(0).([]sales.RevenueItem), args.Error(1)
}

func (m *MockRevenueItemRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]sales.RevenueItem, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]sales.RevenueItem), args.Error(1)
}

func (m *MockRevenueItemRepository) Save(ctx context.Context, item *sales.RevenueItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockRevenueItemRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	return m.Called(ctx, workspaceID, id).Error(0)
}

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

func (m *MockTaskRepository) Save(ctx context.Context, t *engagement.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTaskRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
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

func (m *MockActivityRepository) Save(ctx context.Context, a *engagement.Activity) error {
	return m.Called(ctx, a).Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, workspaceID uuid.UUID, key string, dest any) (bool, error) {
	args := m.Called(ctx, workspaceID, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, workspaceID uuid.UUID, key string, value any) error {
	return m.Called(ctx, workspaceID, key, value).Error(0)
}

func (m *MockCache) Invalidate(ctx context.Context, workspaceID uuid.UUID) error {
	return m.Called(ctx, workspaceID).Error(0)
}
