package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/sales"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RevenueItemService manages deal line items and keeps the deal value equal to their sum
type RevenueItemService struct {
	repos          Repositories
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewRevenueItemService creates a RevenueItemService
func NewRevenueItemService(repos Repositories, txScope TransactionScope, eventPublisher shared.EventPublisher) *RevenueItemService {
	return &RevenueItemService{
		repos:          repos,
		txScope:        txScope,
		eventPublisher: eventPublisher,
	}
}

// AddRevenueItem adds a line to a deal and recomputes the deal value
func (s *RevenueItemService) AddRevenueItem(ctx context.Context, workspaceID, dealID uuid.UUID, req RevenueItemRequest) (*RevenueItemResponse, error) {
	deal, err := s.repos.Deals.FindByIDForWorkspace(ctx, workspaceID, dealID)
	if err != nil {
		return nil, err
	}
	item, err := sales.NewRevenueItem(deal, req.Name, quantityOrOne(req.Quantity), req.UnitPrice, sales.BillingType(req.Billing))
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.RevenueItemRepo().Save(ctx, item); err != nil {
			return err
		}
		return recomputeDealValue(ctx, repos, deal, req.ActorID)
	})
	if err != nil {
		return nil, err
	}
	publishDealEvents(ctx, s.eventPublisher, deal)
	resp := ToRevenueItemResponse(item)
	return &resp, nil
}

// ListRevenueItems lists a deal's lines with the current deal value
func (s *RevenueItemService) ListRevenueItems(ctx context.Context, workspaceID, dealID uuid.UUID) (*RevenueItemsResponse, error) {
	deal, err := s.repos.Deals.FindByIDForWorkspace(ctx, workspaceID, dealID)
	if err != nil {
		return nil, err
	}
	items, err := s.repos.RevenueItems.FindByDeal(ctx, workspaceID, dealID)
	if err != nil {
		return nil, err
	}
	out := &RevenueItemsResponse{
		Items:     make([]RevenueItemResponse, len(items)),
		DealValue: deal.Value,
	}
	for i := range items {
		out.Items[i] = ToRevenueItemResponse(&items[i])
	}
	return out, nil
}

// UpdateRevenueItem replaces a line's attributes and recomputes the deal value
func (s *RevenueItemService) UpdateRevenueItem(ctx context.Context, workspaceID, dealID, id uuid.UUID, req RevenueItemRequest) (*RevenueItemResponse, error) {
	deal, item, err := s.find(ctx, workspaceID, dealID, id)
	if err != nil {
		return nil, err
	}
	if err := item.Apply(req.Name, quantityOrOne(req.Quantity), req.UnitPrice, sales.BillingType(req.Billing)); err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.RevenueItemRepo().Save(ctx, item); err != nil {
			return err
		}
		return recomputeDealValue(ctx, repos, deal, req.ActorID)
	})
	if err != nil {
		return nil, err
	}
	publishDealEvents(ctx, s.eventPublisher, deal)
	resp := ToRevenueItemResponse(item)
	return &resp, nil
}

// DeleteRevenueItem removes a line. When lines remain the deal value is recomputed;
// removing the last line leaves the value as it was.
func (s *RevenueItemService) DeleteRevenueItem(ctx context.Context, workspaceID, dealID, id uuid.UUID, actorID *uuid.UUID) error {
	deal, _, err := s.find(ctx, workspaceID, dealID, id)
	if err != nil {
		return err
	}
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.RevenueItemRepo().DeleteForWorkspace(ctx, workspaceID, id); err != nil {
			return err
		}
		return recomputeDealValue(ctx, repos, deal, actorID)
	})
	if err != nil {
		return err
	}
	publishDealEvents(ctx, s.eventPublisher, deal)
	return nil
}

func (s *RevenueItemService) find(ctx context.Context, workspaceID, dealID, id uuid.UUID) (*sales.Deal, *sales.RevenueItem, error) {
	deal, err := s.repos.Deals.FindByIDForWorkspace(ctx, workspaceID, dealID)
	if err != nil {
		return nil, nil, err
	}
	item, err := s.repos.RevenueItems.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return nil, nil, err
	}
	if item.DealID != dealID {
		return nil, nil, shared.NotFound("Revenue item")
	}
	return deal, item, nil
}

// recomputeDealValue sets the deal value to the sum of its lines and records a value_changed event.
// The deal raises DealUpdated for the line change even when the sum stays the same.
func recomputeDealValue(ctx context.Context, repos TransactionalRepositories, deal *sales.Deal, actorID *uuid.UUID) error {
	deal.RevenueItemsChanged()
	items, err := repos.RevenueItemRepo().FindByDeal(ctx, deal.WorkspaceID, deal.ID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	previous := deal.Value
	changed, err := deal.SetValue(sales.SumRevenue(items))
	if err != nil || !changed {
		return err
	}
	if err := repos.DealRepo().UpdateValue(ctx, deal.WorkspaceID, deal.ID, deal.Value); err != nil {
		return err
	}
	return repos.DealEventRepo().Save(ctx, sales.NewDealEvent(deal, sales.DealEventValueChanged, actorID, map[string]any{
		"from":   previous.StringFixed(2),
		"to":     deal.Value.StringFixed(2),
		"source": "revenue_items",
	}))
}

// quantityOrOne defaults an omitted quantity to one; an explicit zero is kept and rejected by the domain
func quantityOrOne(q *decimal.Decimal) decimal.Decimal {
	if q == nil {
		return decimal.NewFromInt(1)
	}
	return *q
}
