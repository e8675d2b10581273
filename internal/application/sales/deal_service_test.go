package sales

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/sales"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type dealFixture struct {
	*salesMocks
	svc      *DealService
	ws       uuid.UUID
	pipeline *sales.Pipeline
}

func newDealFixture(t *testing.T) *dealFixture {
	m := newSalesMocks()
	ws := uuid.New()
	f := &dealFixture{
		salesMocks: m,
		svc:        NewDealService(m.repos(), m.scope(), m.publisher),
		ws:         ws,
		pipeline:   newTestPipeline(t, ws),
	}
	m.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	return f
}

func (f *dealFixture) stageNamed(name string) *sales.Stage {
	for i := range f.pipeline.Stages {
		if f.pipeline.Stages[i].Name == name {
			return &f.pipeline.Stages[i]
		}
	}
	return nil
}

func (f *dealFixture) newDeal(t *testing.T, stage string, value int64) *sales.Deal {
	d, err := sales.NewDeal(f.ws, f.stageNamed(stage), "Acme renewal", decimal.NewFromInt(value), "EUR")
	require.NoError(t, err)
	d.ClearDomainEvents()
	return d
}

func publishedTypes(m *MockEventPublisher) []string {
	var out []string
	for _, call := range m.Calls {
		if call.Method != "Publish" {
			continue
		}
		for _, ev := range call.Arguments.Get(1).([]shared.DomainEvent) {
			out = append(out, ev.EventType())
		}
	}
	return out
}

func TestDealService_CreateDeal_DefaultPipelineFirstStage(t *testing.T) {
	f := newDealFixture(t)
	ctx := context.Background()
	lead := f.stageNamed("Lead")
	owner := uuid.New()

	f.pipelines.On("FindDefault", ctx, f.ws).Return(f.pipeline, nil)
	f.deals.On("NextPosition", ctx, f.ws, lead.ID).Return(4, nil)
	f.deals.On("Save", ctx, mock.AnythingOfType("*sales.Deal")).Return(nil)
	f.dealEvents.On("Save", ctx, mock.MatchedBy(func(e *sales.DealEvent) bool {
		return e.Type == sales.DealEventCreated && e.ToStageID != nil && *e.ToStageID == lead.ID
	})).Return(nil)

	resp, err := f.svc.CreateDeal(ctx, f.ws, CreateDealRequest{
		Title:    "Acme",
		Value:    decimal.RequireFromString("1200.50"),
		Currency: "eur",
		OwnerID:  &owner,
	})

	require.NoError(t, err)
	assert.Equal(t, lead.ID, resp.StageID)
	assert.Equal(t, f.pipeline.ID, resp.PipelineID)
	assert.Equal(t, 4, resp.Position)
	assert.Equal(t, "EUR", resp.Currency)
	assert.Equal(t, sales.DealStatusOpen, resp.Status)
	assert.Nil(t, resp.ClosedAt)
	assert.Equal(t, &owner, resp.OwnerID)
	assert.Equal(t, []string{sales.EventTypeDealCreated}, publishedTypes(f.publisher))
	f.dealEvents.AssertExpectations(t)
}

func TestDealService_CreateDeal_InWonStage(t *testing.T) {
	f := newDealFixture(t)
	ctx := context.Background()
	won := f.stageNamed("Won")

	f.pipelines.On("FindByIDForWorkspace", ctx, f.ws, f.pipeline.ID).Return(f.pipeline, nil)
	f.deals.On("NextPosition", ctx, f.ws, won.ID).Return(0, nil)
	f.deals.On("Save", ctx, mock.Anything).Return(nil)
	f.dealEvents.On("Save", ctx, mock.Anything).Return(nil)

	resp, err := f.svc.CreateDeal(ctx, f.ws, CreateDealRequest{
		Title:      "Signed already",
		PipelineID: &f.pipeline.ID,
		StageID:    &won.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, sales.DealStatusWon, resp.Status)
	assert.NotNil(t, resp.ClosedAt)
}

func TestDealService_CreateDeal_UnknownStage(t *testing.T) {
	f := newDealFixture(t)
	ctx := context.Background()
	missing := uuid.New()
	f.pipelines.On("FindDefault", ctx, f.ws).Return(f.pipeline, nil)

	_, err := f.svc.CreateDeal(ctx, f.ws, CreateDealRequest{Title: "x", StageID: &missing})

	assert.ErrorIs(t, err, shared.ErrNotFound)
	f.deals.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDealService_ListDeals_BuildsFilter(t *testing.T) {
	f := newDealFixture(t)
	ctx := context.Background()
	stageID := uuid.New()

	matches := mock.MatchedBy(func(fl shared.Filter) bool {
		return fl.Filters["stage_id"] == stageID && fl.Filters["status"] == "won" && fl.Search == "acme" && fl.PageSize == 20
	})
	f.deals.On("FindAllForWorkspace", ctx, f.ws, matches).Return([]sales.Deal{*f.newDeal(t, "Won", 10)}, nil)
	f.deals.On("CountForWorkspace", ctx, f.ws, matches).Return(int64(1), nil)

	page, err := f.svc.ListDeals(ctx, f.ws, DealListFilter{Search: "acme", StageID: stageID.String(), Status: "won"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Len(t, page.Items, 1)
}

func TestDealService_ListDeals_InvalidID(t *testing.T) {
	f := newDealFixture(t)

	_, err := f.svc.ListDeals(context.Background(), f.ws, DealListFilter{OwnerID: "nope"})

	assert.ErrorIs(t, err, shared.Validation(""))
}

func TestDealService_MoveDeal(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		from       string
		to         string
		lostReason string
		wantEvent  sales.DealEventType
		wantStatus sales.DealStatus
		wantClosed bool
		wantBus    string
	}{
		{name: "to open stage", from: "Lead", to: "Proposal", wantEvent: sales.DealEventStageChanged, wantStatus: sales.DealStatusOpen, wantBus: sales.EventTypeDealStageChanged},
		{name: "to won stage", from: "Negotiation", to: "Won", wantEvent: sales.DealEventWon, wantStatus: sales.DealStatusWon, wantClosed: true, wantBus: sales.EventTypeDealWon},
		{name: "to lost stage", from: "Proposal", to: "Lost", lostReason: "budget", wantEvent: sales.DealEventLost, wantStatus: sales.DealStatusLost, wantClosed: true, wantBus: sales.EventTypeDealLost},
		{name: "reopen lost deal", from: "Lost", to: "Qualified", wantEvent: sales.DealEventReopened, wantStatus: sales.DealStatusOpen, wantBus: sales.EventTypeDealStageChanged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDealFixture(t)
			deal := f.newDeal(t, tt.from, 500)
			to := f.stageNamed(tt.to)

			f.deals.On("FindByIDForWorkspace", ctx, f.ws, deal.ID).Return(deal, nil)
			f.stages.On("FindByIDForWorkspace", ctx, f.ws, to.ID).Return(to, nil)
			f.deals.On("NextPosition", ctx, f.ws, to.ID).Return(7, nil)
			f.deals.On("Save", ctx, deal).Return(nil)
			f.dealEvents.On("Save", ctx, mock.MatchedBy(func(e *sales.DealEvent) bool {
				return e.Type == tt.wantEvent && *e.ToStageID == to.ID
			})).Return(nil)

			resp, err := f.svc.MoveDeal(ctx, f.ws, deal.ID, MoveDealRequest{StageID: to.ID, LostReason: tt.lostReason})

			require.NoError(t, err)
			assert.True(t, resp.Moved)
			assert.Equal(t, string(tt.wantEvent), resp.Event)
			assert.Equal(t, tt.wantStatus, resp.Deal.Status)
			assert.Equal(t, tt.wantClosed, resp.Deal.ClosedAt != nil)
			assert.Equal(t, tt.lostReason, resp.Deal.LostReason)
			assert.Equal(t, 7, resp.Deal.Position)
			assert.Equal(t, []string{tt.wantBus}, publishedTypes(f.publisher))
			f.dealEvents.AssertExpectations(t)
		})
	}
}

func TestDealService_MoveDeal_SameStageNoPositionIsNoop(t *testing.T) {
	f := newDealFixture(t)
	ctx := context.Background()
	deal := f.newDeal(t, "Lead", 100)
	lead := f.stageNamed("Lead")

	f.deals.On("FindByIDForWorkspace", ctx, f.ws, deal.ID).Return(deal, nil)
	f.stages.On("FindByIDForWorkspace", ctx, f.ws, lead.ID).Return(lead, nil)

	resp, err := f.svc.MoveDeal(ctx, f.ws, deal.ID, MoveDealRequest{StageID: lead.ID})

	require.NoError(t, err)
	assert.False(t, resp.Moved)
	f.deals.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.dealEvents.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	assert.Empty(t, publishedTypes(f.publisher))
}

func TestDealService_MoveDeal_ReorderWithinStage(t *testing.T) {
	f := newDealFixture(t)
	ctx := context.Background()
	deal := f.newDeal(t, "Lead", 100)
	lead := f.stageNamed("Lead")
	pos := 3

	f.deals.On("FindByIDForWorkspace", ctx, f.ws, deal.ID).Return(deal, nil)
	f.stages.On("FindByIDForWorkspace", ctx, f.ws, lead.ID).Return(lead, nil)
	f.deals.On("Save", ctx, deal).Return(nil)
	f.dealEvents.On("Save", ctx, mock.MatchedBy(func(e *sales.DealEvent) bool {
		return e.Type == sales.DealEventReordered
	})).Return(nil)

	resp, err := f.svc.MoveDeal(ctx, f.ws, deal.ID, MoveDealRequest{StageID: lead.ID, Position: &pos})

	require.NoError(t, err)
	assert.Equal(t, 3, resp.Deal.Position)
	f.deals.AssertNotCalled(t, "NextPosition", mock.Anything, mock.Anything, mock.Anything)
}

func TestDealService_MoveDeal_OtherPipeline(t *testing.T) {
	f := newDealFixture(t)
	ctx := context.Background()
	deal := f.newDeal(t, "Lead", 100)
	foreign := newTestPipeline(t, f.ws).Stages[1]

	f.deals.On("FindByIDForWorkspace", ctx, f.ws, deal.ID).Return(deal, nil)
	f.stages.On("FindByIDForWorkspace", ctx, f.ws, foreign.ID).Return(&foreign, nil)

	_, err := f.svc.MoveDeal(ctx, f.ws, deal.ID, MoveDealRequest{StageID: foreign.ID})

	requireCode(t, err, "INVALID_STAGE")
}

func TestDealService_UpdateDeal_ValueChange(t *testing.T) {
	f := newDealFixture(t)
	ctx := context.Background()
	deal := f.newDeal(t, "Lead", 100)
	value := decimal.NewFromInt(250)

	f.deals.On("FindByIDForWorkspace", ctx, f.ws, deal.ID).Return(deal, nil)
	f.revenueItems.On("FindByDeal", ctx, f.ws, deal.ID).Return([]sales.RevenueItem{}, nil)
	f.deals.On("Save", ctx, deal).Return(nil)
	f.dealEvents.On("Save", ctx, mock.MatchedBy(func(e *sales.DealEvent) bool {
		var data map[string]string
		_ = json.Unmarshal([]byte(e.Data), &data)
		return e.Type == sales.DealEventValueChanged && data["from"] == "100.00" && data["to"] == "250.00"
	})).Return(nil)

	resp, err := f.svc.UpdateDeal(ctx, f.ws, deal.ID, UpdateDealRequest{Value: &value, ClearOwner: true})

	require.NoError(t, err)
	assert.True(t, value.Equal(resp.Value))
	assert.Nil(t, resp.OwnerID)
	assert.Equal(t, []string{sales.EventTypeDealValueChanged}, publishedTypes(f.publisher))
	f.dealEvents.AssertExpectations(t)
}

func TestDealService_UpdateDeal_ValueLockedByRevenueItems(t *testing.T) {
	f := newDealFixture(t)
	ctx := context.Background()
	deal := f.newDeal(t, "Lead", 100)
	item, err := sales.NewRevenueItem(deal, "Seats", decimal.NewFromInt(1), decimal.NewFromInt(100), sales.BillingMonthly)
	require.NoError(t, err)
	value := decimal.NewFromInt(999)

	f.deals.On("FindByIDForWorkspace", ctx, f.ws, deal.ID).Return(deal, nil)
	f.revenueItems.On("FindByDeal", ctx, f.ws, deal.ID).Return([]sales.RevenueItem{*item}, nil)

	_, err = f.svc.UpdateDeal(ctx, f.ws, deal.ID, UpdateDealRequest{Value: &value})

	requireCode(t, err, "INVALID_STATE")
	f.deals.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDealService_DeleteDeal_PublishesDeleted(t *testing.T) {
	f := newDealFixture(t)
	ctx := context.Background()
	deal := f.newDeal(t, "Lead", 100)

	f.deals.On("FindByIDForWorkspace", ctx, f.ws, deal.ID).Return(deal, nil)
	f.deals.On("DeleteForWorkspace", ctx, f.ws, deal.ID).Return(nil)

	require.NoError(t, f.svc.DeleteDeal(ctx, f.ws, deal.ID))
	assert.Equal(t, []string{sales.EventTypeDealDeleted}, publishedTypes(f.publisher))
}

func TestDealService_ListDealEvents(t *testing.T) {
	f := newDealFixture(t)
	ctx := context.Background()
	deal := f.newDeal(t, "Lead", 100)
	ev := sales.NewDealEvent(deal, sales.DealEventCreated, nil, nil)

	f.deals.On("FindByIDForWorkspace", ctx, f.ws, deal.ID).Return(deal, nil)
	f.dealEvents.On("FindByDeal", ctx, f.ws, deal.ID).Return([]sales.DealEvent{*ev}, nil)

	events, err := f.svc.ListDealEvents(ctx, f.ws, deal.ID)

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "created", events[0].Type)
	assert.JSONEq(t, `{}`, string(events[0].Data))
}

func TestDealService_UpdateDeal_OwnerChangePublishesUpdated(t *testing.T) {
	f := newDealFixture(t)
	ctx := context.Background()
	deal := f.newDeal(t, "Won", 900)
	owner := uuid.New()

	f.deals.On("FindByIDForWorkspace", ctx, f.ws, deal.ID).Return(deal, nil)
	f.deals.On("Save", ctx, deal).Return(nil)

	resp, err := f.svc.UpdateDeal(ctx, f.ws, deal.ID, UpdateDealRequest{OwnerID: &owner})

	require.NoError(t, err)
	assert.Equal(t, &owner, resp.OwnerID)
	assert.Equal(t, []string{sales.EventTypeDealUpdated}, publishedTypes(f.publisher))
	f.dealEvents.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDealService_UpdateDeal_NoChangePublishesNothing(t *testing.T) {
	f := newDealFixture(t)
	ctx := context.Background()
	deal := f.newDeal(t, "Lead", 100)
	title := deal.Title

	f.deals.On("FindByIDForWorkspace", ctx, f.ws, deal.ID).Return(deal, nil)
	f.deals.On("Save", ctx, deal).Return(nil)

	_, err := f.svc.UpdateDeal(ctx, f.ws, deal.ID, UpdateDealRequest{Title: &title})

	require.NoError(t, err)
	assert.Empty(t, publishedTypes(f.publisher))
}
