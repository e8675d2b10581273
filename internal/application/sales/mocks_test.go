package sales

import (
	"context"

	"github.com/google/uuid"
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

type MockDealEventRepository struct {
	mock.Mock
}

func (m *MockDealEventRepository) Save(ctx context.Context, e *sales.DealEvent) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockDealEventRepository) FindByDeal(ctx context.Context, workspaceID, dealID uuid.UUID) ([]sales.DealEvent, error) {
	args := m.Called(ctx, workspaceID, dealID)
	return args.Get(0).([]sales.DealEvent), args.Error(1)
}

type MockTranscriptRepository struct {
	mock.Mock
}

func (m *MockTranscriptRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*sales.Transcript, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Transcript), args.Error(1)
}

func (m *MockTranscriptRepository) FindByDeal(ctx context.Context, workspaceID, dealID uuid.UUID) ([]sales.Transcript, error) {
	args := m.Called(ctx, workspaceID, dealID)
	return args.Get(0).([]sales.Transcript), args.Error(1)
}

func (m *MockTranscriptRepository) Save(ctx context.Context, t *sales.Transcript) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTranscriptRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
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

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	return m.Called(ctx, events).Error(0)
}

type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) AnalyzeTranscript(ctx context.Context, title, content string) (*TranscriptAnalysis, error) {
	args := m.Called(ctx, title, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TranscriptAnalysis), args.Error(1)
}

// salesMocks bundles one mock per repository wired through a no-op transaction scope
type salesMocks struct {
	pipelines    *MockPipelineRepository
	stages       *MockStageRepository
	deals        *MockDealRepository
	dealEvents   *MockDealEventRepository
	revenueItems *MockRevenueItemRepository
	publisher    *MockEventPublisher
}

func newSalesMocks() *salesMocks {
	return &salesMocks{
		pipelines:    new(MockPipelineRepository),
		stages:       new(MockStageRepository),
		deals:        new(MockDealRepository),
		dealEvents:   new(MockDealEventRepository),
		revenueItems: new(MockRevenueItemRepository),
		publisher:    new(MockEventPublisher),
	}
}

func (m *salesMocks) repos() Repositories {
	return Repositories{
		Pipelines:    m.pipelines,
		Stages:       m.stages,
		Deals:        m.deals,
		DealEvents:   m.dealEvents,
		RevenueItems: m.revenueItems,
	}
}

func (m *salesMocks) scope() TransactionScope {
	return NewNoOpTransactionScope(m.repos())
}
