package sales

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stageByName(t *testing.T, p *Pipeline, name string) *Stage {
	t.Helper()
	for i := range p.Stages {
		if p.Stages[i].Name == name {
			return &p.Stages[i]
		}
	}
	t.Fatalf("stage %q not found", name)
	return nil
}

func TestNewDeal(t *testing.T) {
	p := newDefaultPipeline(t)
	lead := stageByName(t, p, "Lead")

	t.Run("creates open deal", func(t *testing.T) {
		d, err := NewDeal(p.WorkspaceID, lead, " Big renewal ", decimal.NewFromFloat(1200.456), "eur")
		require.NoError(t, err)

		assert.Equal(t, "Big renewal", d.Title)
		assert.True(t, decimal.NewFromFloat(1200.46).Equal(d.Value))
		assert.Equal(t, "EUR", d.Currency)
		assert.Equal(t, DealStatusOpen, d.Status)
		assert.Nil(t, d.ClosedAt)
		assert.Equal(t, p.ID, d.PipelineID)

		events := d.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeDealCreated, events[0].EventType())
	})

	t.Run("stamps closed_at when created in a won stage", func(t *testing.T) {
		d, err := NewDeal(p.WorkspaceID, stageByName(t, p, "Won"), "Signed", decimal.NewFromInt(10), "")
		require.NoError(t, err)
		assert.Equal(t, DealStatusWon, d.Status)
		assert.NotNil(t, d.ClosedAt)
		assert.Equal(t, "USD", d.Currency)
	})

	t.Run("rejects negative value", func(t *testing.T) {
		_, err := NewDeal(p.WorkspaceID, lead, "Bad", decimal.NewFromInt(-1), "USD")
		assert.Error(t, err)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := NewDeal(p.WorkspaceID, lead, "  ", decimal.Zero, "USD")
		assert.Error(t, err)
	})
}

func TestDeal_MoveTo(t *testing.T) {
	p := newDefaultPipeline(t)

	newDeal := func(t *testing.T) *Deal {
		d, err := NewDeal(p.WorkspaceID, stageByName(t, p, "Lead"), "Deal", decimal.NewFromInt(1000), "USD")
		require.NoError(t, err)
		d.ClearDomainEvents()
		return d
	}

	t.Run("moving to an open stage records stage_changed", func(t *testing.T) {
		d := newDeal(t)
		target := stageByName(t, p, "Proposal")

		result, err := d.MoveTo(target, nil, "")
		require.NoError(t, err)

		assert.True(t, result.Moved)
		assert.Equal(t, DealEventStageChanged, result.Type)
		assert.Equal(t, target.ID, d.StageID)
		assert.Equal(t, DealStatusOpen, d.Status)
		assert.Nil(t, d.ClosedAt)
		require.Len(t, d.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeDealStageChanged, d.GetDomainEvents()[0].EventType())
	})

	t.Run("moving to won stamps closed_at", func(t *testing.T) {
		d := newDeal(t)

		result, err := d.MoveTo(stageByName(t, p, "Won"), nil, "")
		require.NoError(t, err)

		assert.Equal(t, DealEventWon, result.Type)
		assert.Equal(t, DealStatusWon, d.Status)
		require.NotNil(t, d.ClosedAt)
		assert.Equal(t, EventTypeDealWon, d.GetDomainEvents()[0].EventType())
	})

	t.Run("moving to lost keeps the reason", func(t *testing.T) {
		d := newDeal(t)

		result, err := d.MoveTo(stageByName(t, p, "Lost"), nil, " budget cut ")
		require.NoError(t, err)

		assert.Equal(t, DealEventLost, result.Type)
		assert.Equal(t, DealStatusLost, d.Status)
		assert.Equal(t, "budget cut", d.LostReason)
		assert.NotNil(t, d.ClosedAt)
	})

	t.Run("moving a closed deal back reopens it", func(t *testing.T) {
		d := newDeal(t)
		_, err := d.MoveTo(stageByName(t, p, "Lost"), nil, "timing")
		require.NoError(t, err)

		result, err := d.MoveTo(stageByName(t, p, "Negotiation"), nil, "")
		require.NoError(t, err)

		assert.Equal(t, DealEventReopened, result.Type)
		assert.Equal(t, DealStatusOpen, d.Status)
		assert.Nil(t, d.ClosedAt)
		assert.Empty(t, d.LostReason)
	})

	t.Run("same stage without position is a no-op", func(t *testing.T) {
		d := newDeal(t)
		result, err := d.MoveTo(stageByName(t, p, "Lead"), nil, "")
		require.NoError(t, err)
		assert.False(t, result.Moved)
		assert.Empty(t, d.GetDomainEvents())
	})

	t.Run("same stage with new position reorders", func(t *testing.T) {
		d := newDeal(t)
		pos := 3
		result, err := d.MoveTo(stageByName(t, p, "Lead"), &pos, "")
		require.NoError(t, err)
		assert.True(t, result.Moved)
		assert.Equal(t, DealEventReordered, result.Type)
		assert.Equal(t, 3, d.Position)
		assert.Empty(t, d.GetDomainEvents())
	})

	t.Run("rejects stage from another pipeline", func(t *testing.T) {
		d := newDeal(t)
		other := newDefaultPipeline(t)
		_, err := d.MoveTo(&other.Stages[1], nil, "")
		assert.Error(t, err)
	})
}

func TestDeal_SetValue(t *testing.T) {
	p := newDefaultPipeline(t)
	d, err := NewDeal(p.WorkspaceID, &p.Stages[0], "Deal", decimal.NewFromInt(100), "USD")
	require.NoError(t, err)
	d.ClearDomainEvents()

	changed, err := d.SetValue(decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = d.SetValue(decimal.NewFromInt(250))
	require.NoError(t, err)
	assert.True(t, changed)
	require.Len(t, d.GetDomainEvents(), 1)
	assert.Equal(t, EventTypeDealValueChanged, d.GetDomainEvents()[0].EventType())

	_, err = d.SetValue(decimal.NewFromInt(-5))
	assert.Error(t, err)
}

func TestDeal_WeightedValue(t *testing.T) {
	d := &Deal{Value: decimal.NewFromInt(1000)}
	assert.True(t, decimal.NewFromInt(250).Equal(d.WeightedValue(25)))
	assert.True(t, decimal.Zero.Equal(d.WeightedValue(0)))
}

func TestSumRevenue(t *testing.T) {
	p := newDefaultPipeline(t)
	d, err := NewDeal(p.WorkspaceID, &p.Stages[0], "Deal", decimal.Zero, "USD")
	require.NoError(t, err)

	a, err := NewRevenueItem(d, "Seats", decimal.NewFromInt(10), decimal.NewFromFloat(49.99), BillingMonthly)
	require.NoError(t, err)
	b, err := NewRevenueItem(d, "Onboarding", decimal.NewFromInt(1), decimal.NewFromInt(500), "")
	require.NoError(t, err)
	assert.Equal(t, BillingOneTime, b.Billing)

	total := SumRevenue([]RevenueItem{*a, *b})
	assert.Equal(t, "999.9", total.String())

	_, err = NewRevenueItem(d, "Bad", decimal.Zero, decimal.NewFromInt(1), BillingOneTime)
	assert.Error(t, err)
	_, err = NewRevenueItem(d, "Bad", decimal.NewFromInt(1), decimal.NewFromInt(1), BillingType("weekly"))
	assert.Error(t, err)
}

func TestNewMoveEvent(t *testing.T) {
	p := newDefaultPipeline(t)
	d, err := NewDeal(p.WorkspaceID, &p.Stages[0], "Deal", decimal.Zero, "USD")
	require.NoError(t, err)
	actor := uuid.New()

	result, err := d.MoveTo(&p.Stages[5], nil, "no budget")
	require.NoError(t, err)

	e := NewMoveEvent(d, result, &actor)
	assert.Equal(t, DealEventLost, e.Type)
	assert.Equal(t, p.Stages[0].ID, *e.FromStageID)
	assert.Equal(t, p.Stages[5].ID, *e.ToStageID)
	assert.Contains(t, e.Data, `"lost_reason":"no budget"`)
	assert.Contains(t, e.Data, `"status":"lost"`)
}

func TestDeal_UpdatedEvent(t *testing.T) {
	p := newDefaultPipeline(t)
	newOpenDeal := func(t *testing.T) *Deal {
		d, err := NewDeal(p.WorkspaceID, &p.Stages[0], "Deal", decimal.NewFromInt(100), "USD")
		require.NoError(t, err)
		d.ClearDomainEvents()
		return d
	}

	t.Run("one event collects every changed field", func(t *testing.T) {
		d := newOpenDeal(t)
		owner := uuid.New()
		closeDate := time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC)

		require.NoError(t, d.Update("Deal v2", ""))
		d.SetLinks(nil, nil, &owner)
		d.SetExpectedCloseDate(&closeDate)

		events := d.GetDomainEvents()
		require.Len(t, events, 1)
		updated, ok := events[0].(*DealUpdatedEvent)
		require.True(t, ok)
		assert.Equal(t, EventTypeDealUpdated, updated.EventType())
		assert.Equal(t, []string{"title", "owner_id", "expected_close_date"}, updated.Fields)
	})

	t.Run("unchanged fields raise nothing", func(t *testing.T) {
		d := newOpenDeal(t)
		owner := uuid.New()
		d.OwnerID = &owner
		same := owner

		require.NoError(t, d.Update("Deal", ""))
		d.SetLinks(nil, nil, &same)
		d.SetExpectedCloseDate(nil)

		assert.Empty(t, d.GetDomainEvents())
	})

	t.Run("changes before creation is published join the created event", func(t *testing.T) {
		d, err := NewDeal(p.WorkspaceID, &p.Stages[0], "Deal", decimal.NewFromInt(100), "USD")
		require.NoError(t, err)
		owner := uuid.New()

		d.SetLinks(nil, nil, &owner)

		events := d.GetDomainEvents()
		require.Len(t, events, 1)
		created, ok := events[0].(*DealCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, &owner, created.OwnerID)
	})

	t.Run("revenue lines", func(t *testing.T) {
		d := newOpenDeal(t)
		d.RevenueItemsChanged()
		require.Len(t, d.GetDomainEvents(), 1)
		assert.Equal(t, []string{"revenue_items"}, d.GetDomainEvents()[0].(*DealUpdatedEvent).Fields)
	})
}
