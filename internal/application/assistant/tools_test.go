package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/salescrm/backend/internal/application/report"
	"github.com/salescrm/backend/internal/domain/contact"
	"github.com/salescrm/backend/internal/domain/engagement"
	"github.com/salescrm/backend/internal/domain/sales"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var wsID = uuid.MustParse("0b7f3c2a-51f3-4b4e-9a55-3d8f6a0e1c22")

type toolboxFixture struct {
	deals      *MockDealRepository
	stages     *MockStageRepository
	contacts   *MockContactRepository
	activities *MockActivityRepository
	stats      *MockStats
	box        *Toolbox
}

func newToolboxFixture() *toolboxFixture {
	f := &toolboxFixture{
		deals:      new(MockDealRepository),
		stages:     new(MockStageRepository),
		contacts:   new(MockContactRepository),
		activities: new(MockActivityRepository),
		stats:      new(MockStats),
	}
	f.box = NewToolbox(f.deals, f.stages, f.contacts, f.activities, f.stats)
	return f
}

func makeRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func testPipeline(t *testing.T) *sales.Pipeline {
	t.Helper()
	p, err := sales.NewPipelineFromTemplates(wsID, "Sales", sales.DefaultStageTemplates())
	require.NoError(t, err)
	return p
}

func TestToolbox_Definitions(t *testing.T) {
	f := newToolboxFixture()

	defs := f.box.Definitions()
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}
	assert.Equal(t, []string{ToolSearchDeals, ToolGetStats, ToolSearchContacts, ToolGetActivities}, names)

	specs, err := f.box.Specs()
	require.NoError(t, err)
	require.Len(t, specs, 4)
	var schema map[string]any
	require.NoError(t, json.Unmarshal(specs[2].InputSchema, &schema))
	assert.Equal(t, "object", schema["type"])
	assert.Contains(t, schema["required"], "query")
}

func TestToolbox_SearchDeals(t *testing.T) {
	ctx := context.Background()

	t.Run("by query and status", func(t *testing.T) {
		f := newToolboxFixture()
		p := testPipeline(t)
		first, _ := p.FirstStage()
		deal, _ := sales.NewDeal(wsID, first, "Acme renewal", decimal.NewFromInt(1200), "EUR")

		f.stages.On("FindAllForWorkspace", ctx, wsID).Return(p.Stages, nil)
		filter := shared.NewFilter(1, 5, "updated_at", "desc", "acme")
		filter.Filters["status"] = "open"
		f.deals.On("FindAllForWorkspace", ctx, wsID, filter).Return([]sales.Deal{*deal}, nil)

		text, failed := f.box.Call(ctx, wsID, ToolSearchDeals, json.RawMessage(`{"query":"acme","status":"open","limit":5}`))

		assert.False(t, failed)
		assert.Contains(t, text, "Found 1 deals")
		assert.Contains(t, text, "Acme renewal | open | stage: Lead | 1200.00 EUR")
	})

	t.Run("by stage name filters in memory", func(t *testing.T) {
		f := newToolboxFixture()
		p := testPipeline(t)
		stages := p.OrderedStages()
		inLead, _ := sales.NewDeal(wsID, &stages[0], "Lead deal", decimal.NewFromInt(1), "USD")
		inProposal, _ := sales.NewDeal(wsID, &stages[2], "Proposal deal", decimal.NewFromInt(2), "USD")

		f.stages.On("FindAllForWorkspace", ctx, wsID).Return(p.Stages, nil)
		f.deals.On("FindAllForWorkspace", ctx, wsID, mock.MatchedBy(func(fl shared.Filter) bool {
			return fl.PageSize == 0
		})).Return([]sales.Deal{*inLead, *inProposal}, nil)

		text, failed := f.box.Call(ctx, wsID, ToolSearchDeals, json.RawMessage(`{"stage":"proposal"}`))

		assert.False(t, failed)
		assert.Contains(t, text, "Proposal deal")
		assert.NotContains(t, text, "Lead deal")
	})

	t.Run("unknown stage", func(t *testing.T) {
		f := newToolboxFixture()
		f.stages.On("FindAllForWorkspace", ctx, wsID).Return(testPipeline(t).Stages, nil)

		text, failed := f.box.Call(ctx, wsID, ToolSearchDeals, json.RawMessage(`{"stage":"Nope"}`))
		assert.False(t, failed)
		assert.Contains(t, text, `No stage named "Nope"`)
	})

	t.Run("bad status", func(t *testing.T) {
		f := newToolboxFixture()
		_, failed := f.box.Call(ctx, wsID, ToolSearchDeals, json.RawMessage(`{"status":"pending"}`))
		assert.True(t, failed)
	})
}

func TestToolbox_GetStats(t *testing.T) {
	ctx := context.Background()
	f := newToolboxFixture()
	f.stats.On("Dashboard", ctx, wsID).Return(&report.DashboardResponse{
		OpenDeals:      3,
		OpenValue:      decimal.NewFromInt(900),
		WonDeals:       1,
		WonValue:       decimal.NewFromInt(100),
		WinRate:        0.5,
		AverageWonDeal: decimal.NewFromInt(100),
	}, nil)

	text, failed := f.box.Call(ctx, wsID, ToolGetStats, nil)

	assert.False(t, failed)
	assert.Contains(t, text, "Open deals: 3 (value 900.00)")
	assert.Contains(t, text, "Win rate: 50.0%")
}

func TestToolbox_SearchContacts(t *testing.T) {
	ctx := context.Background()
	f := newToolboxFixture()

	_, failed := f.box.Call(ctx, wsID, ToolSearchContacts, json.RawMessage(`{}`))
	assert.True(t, failed)

	c, _ := contact.NewContact(wsID, "Ada", "Lovelace")
	require.NoError(t, c.SetContactInfo("ada@example.com", "", "CTO"))
	f.contacts.On("FindAllForWorkspace", ctx, wsID, shared.NewFilter(1, 10, "", "", "ada")).Return([]contact.Contact{*c}, nil)

	text, failed := f.box.Call(ctx, wsID, ToolSearchContacts, json.RawMessage(`{"query":"ada"}`))
	assert.False(t, failed)
	assert.Contains(t, text, "Ada Lovelace (CTO) | ada@example.com")
}

func TestToolbox_GetActivities(t *testing.T) {
	ctx := context.Background()
	f := newToolboxFixture()
	dealID := uuid.New()

	_, failed := f.box.Call(ctx, wsID, ToolGetActivities, json.RawMessage(`{"deal_id":"xyz"}`))
	assert.True(t, failed)

	a, _ := engagement.NewActivity(wsID, engagement.ActivityCall, "Discovery call", mustTime("2026-02-01T10:00:00Z"))
	filter := shared.NewFilter(1, 3, "occurred_at", "desc", "")
	filter.Filters["deal_id"] = dealID
	f.activities.On("FindAllForWorkspace", ctx, wsID, filter).Return([]engagement.Activity{*a}, nil)

	text, failed := f.box.Call(ctx, wsID, ToolGetActivities, json.RawMessage(`{"deal_id":"`+dealID.String()+`","limit":3}`))
	assert.False(t, failed)
	assert.Contains(t, text, "2026-02-01 10:00 | call | Discovery call")
}

func TestToolbox_CallErrors(t *testing.T) {
	ctx := context.Background()
	f := newToolboxFixture()

	text, failed := f.box.Call(ctx, wsID, "drop_tables", nil)
	assert.True(t, failed)
	assert.Contains(t, text, "unknown tool")

	_, failed = f.box.Call(ctx, wsID, ToolGetStats, json.RawMessage(`[1,2]`))
	assert.True(t, failed)

	f.stats.On("Dashboard", ctx, wsID).Return(nil, errors.New("db down"))
	text, failed = f.box.Call(ctx, wsID, ToolGetStats, json.RawMessage(`{}`))
	assert.True(t, failed)
	assert.Contains(t, text, "db down")
}

func TestToolbox_Handler(t *testing.T) {
	f := newToolboxFixture()
	h := f.box.Handler(wsID, "missing")
	res, err := h(context.Background(), makeRequest(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestLimitArg(t *testing.T) {
	assert.Equal(t, defaultToolLimit, limitArg(makeRequest(map[string]any{})))
	assert.Equal(t, 7, limitArg(makeRequest(map[string]any{"limit": float64(7)})))
	assert.Equal(t, maxToolLimit, limitArg(makeRequest(map[string]any{"limit": float64(500)})))
	assert.Equal(t, defaultToolLimit, limitArg(makeRequest(map[string]any{"limit": float64(-1)})))
}
