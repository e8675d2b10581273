package assistant

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/application/report"
	"github.com/salescrm/backend/internal/domain/contact"
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

type MockStats struct {
	mock.Mock
}

func (m *MockStats) Dashboard(ctx context.Context, workspaceID uuid.UUID) (*report.DashboardResponse, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.DashboardResponse), args.Error(1)
}

type MockToolMetrics struct {
	mock.Mock
}

func (m *MockToolMetrics) RecordToolCall(ctx context.Context, tool string, failed bool) {
	m.Called(ctx, tool, failed)
}

// scriptedModel replays canned completions and records every request
type scriptedModel struct {
	mu       sync.Mutex
	replies  []*Completion
	requests []CompletionRequest
}

func (m *scriptedModel) Complete(_ context.Context, req CompletionRequest) (*Completion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req.Messages = append([]Message(nil), req.Messages...)
	m.requests = append(m.requests, req)
	if len(m.replies) == 0 {
		return nil, errors.New("no scripted reply left")
	}
	r := m.replies[0]
	m.replies = m.replies[1:]
	return r, nil
}
