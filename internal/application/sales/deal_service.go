package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/sales"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/salescrm/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// DealService manages deals and their audit trail
type DealService struct {
	repos          Repositories
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewDealService creates a DealService. eventPublisher may be nil.
func NewDealService(repos Repositories, txScope TransactionScope, eventPublisher shared.EventPublisher) *DealService {
	return &DealService{
		repos:          repos,
		txScope:        txScope,
		eventPublisher: eventPublisher,
	}
}

// CreateDeal creates a deal at the end of its stage and writes a created event
func (s *DealService) CreateDeal(ctx context.Context, workspaceID uuid.UUID, req CreateDealRequest) (*DealResponse, error) {
	pipeline, err := s.resolvePipeline(ctx, workspaceID, req.PipelineID)
	if err != nil {
		return nil, err
	}
	var stage *sales.Stage
	if req.StageID != nil {
		stage, err = pipeline.FindStage(*req.StageID)
	} else {
		stage, err = pipeline.FirstStage()
	}
	if err != nil {
		return nil, err
	}

	deal, err := sales.NewDeal(workspaceID, stage, req.Title, req.Value, req.Currency)
	if err != nil {
		return nil, err
	}
	deal.Description = req.Description
	deal.SetLinks(req.ContactID, req.CompanyID, req.OwnerID)
	deal.SetExpectedCloseDate(req.ExpectedCloseDate)

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		position, err := repos.DealRepo().NextPosition(ctx, workspaceID, stage.ID)
		if err != nil {
			return err
		}
		deal.Position = position
		if err := repos.DealRepo().Save(ctx, deal); err != nil {
			return err
		}
		event := sales.NewDealEvent(deal, sales.DealEventCreated, req.ActorID, map[string]any{
			"stage_id": stage.ID.String(),
			"value":    deal.Value.StringFixed(2),
			"currency": deal.Currency,
			"status":   string(deal.Status),
		})
		event.ToStageID = &stage.ID
		return repos.DealEventRepo().Save(ctx, event)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, deal)
	resp := ToDealResponse(deal)
	return &resp, nil
}

// GetDeal returns one deal
func (s *DealService) GetDeal(ctx context.Context, workspaceID, id uuid.UUID) (*DealResponse, error) {
	deal, err := s.repos.Deals.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	resp := ToDealResponse(deal)
	return &resp, nil
}

// ListDeals lists deals matching the filter
func (s *DealService) ListDeals(ctx context.Context, workspaceID uuid.UUID, f DealListFilter) (shared.Paginated[DealResponse], error) {
	filter := shared.NewFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir, f.Search)
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	ids := map[string]string{
		"pipeline_id": f.PipelineID,
		"stage_id":    f.StageID,
		"owner_id":    f.OwnerID,
		"contact_id":  f.ContactID,
		"company_id":  f.CompanyID,
	}
	for key, raw := range ids {
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return shared.Paginated[DealResponse]{}, shared.Validation("Invalid " + key)
		}
		filter.Filters[key] = id
	}

	deals, err := s.repos.Deals.FindAllForWorkspace(ctx, workspaceID, filter)
	if err != nil {
		return shared.Paginated[DealResponse]{}, err
	}
	total, err := s.repos.Deals.CountForWorkspace(ctx, workspaceID, filter)
	if err != nil {
		return shared.Paginated[DealResponse]{}, err
	}
	items := make([]DealResponse, len(deals))
	for i := range deals {
		items[i] = ToDealResponse(&deals[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// UpdateDeal changes a deal's fields. A deal with revenue items takes its value from them.
func (s *DealService) UpdateDeal(ctx context.Context, workspaceID, id uuid.UUID, req UpdateDealRequest) (*DealResponse, error) {
	deal, err := s.repos.Deals.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}

	title, description := deal.Title, deal.Description
	if req.Title != nil {
		title = *req.Title
	}
	if req.Description != nil {
		description = *req.Description
	}
	if err := deal.Update(title, description); err != nil {
		return nil, err
	}

	contactID, companyID, ownerID := deal.ContactID, deal.CompanyID, deal.OwnerID
	contactID = pickLink(contactID, req.ContactID, req.ClearContact)
	companyID = pickLink(companyID, req.CompanyID, req.ClearCompany)
	ownerID = pickLink(ownerID, req.OwnerID, req.ClearOwner)
	deal.SetLinks(contactID, companyID, ownerID)

	switch {
	case req.ClearCloseDate:
		deal.SetExpectedCloseDate(nil)
	case req.ExpectedCloseDate != nil:
		deal.SetExpectedCloseDate(req.ExpectedCloseDate)
	}

	previous := deal.Value
	valueChanged := false
	if req.Value != nil {
		items, err := s.repos.RevenueItems.FindByDeal(ctx, workspaceID, id)
		if err != nil {
			return nil, err
		}
		if len(items) > 0 && !req.Value.Equal(deal.Value) {
			return nil, shared.NewDomainError("INVALID_STATE", "Deal value is derived from its revenue items")
		}
		if valueChanged, err = deal.SetValue(*req.Value); err != nil {
			return nil, err
		}
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.DealRepo().Save(ctx, deal); err != nil {
			return err
		}
		if !valueChanged {
			return nil
		}
		return repos.DealEventRepo().Save(ctx, sales.NewDealEvent(deal, sales.DealEventValueChanged, req.ActorID, map[string]any{
			"from":   previous.StringFixed(2),
			"to":     deal.Value.StringFixed(2),
			"source": "manual",
		}))
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, deal)
	resp := ToDealResponse(deal)
	return &resp, nil
}

// DeleteDeal deletes a deal. Its events, transcripts and revenue items cascade.
func (s *DealService) DeleteDeal(ctx context.Context, workspaceID, id uuid.UUID) error {
	deal, err := s.repos.Deals.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return err
	}
	if err := s.repos.Deals.DeleteForWorkspace(ctx, workspaceID, id); err != nil {
		return err
	}
	deal.AddDomainEvent(sales.NewDealDeletedEvent(deal))
	s.publishDomainEvents(ctx, deal)
	return nil
}

// MoveDeal moves a deal to a stage of the same pipeline, applying won/lost side effects.
// Without a position a deal entering a new stage goes to the end of it.
// A move that changes nothing writes no event.
func (s *DealService) MoveDeal(ctx context.Context, workspaceID, id uuid.UUID, req MoveDealRequest) (*MoveDealResponse, error) {
	deal, err := s.repos.Deals.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	stage, err := s.repos.Stages.FindByIDForWorkspace(ctx, workspaceID, req.StageID)
	if err != nil {
		return nil, err
	}

	result, err := deal.MoveTo(stage, req.Position, req.LostReason)
	if err != nil {
		return nil, err
	}
	if !result.Moved {
		return &MoveDealResponse{Deal: ToDealResponse(deal)}, nil
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if req.Position == nil && result.FromStageID != result.ToStageID {
			position, err := repos.DealRepo().NextPosition(ctx, workspaceID, stage.ID)
			if err != nil {
				return err
			}
			deal.Position = position
		}
		if err := repos.DealRepo().Save(ctx, deal); err != nil {
			return err
		}
		return repos.DealEventRepo().Save(ctx, sales.NewMoveEvent(deal, result, req.ActorID))
	})
	if err != nil {
		return nil, err
	}

	logger.L(ctx).Debug("deal moved",
		zap.String("deal_id", deal.ID.String()),
		zap.String("event", string(result.Type)),
		zap.String("to_stage_id", stage.ID.String()),
	)
	s.publishDomainEvents(ctx, deal)
	return &MoveDealResponse{
		Deal:  ToDealResponse(deal),
		Moved: true,
		Event: string(result.Type),
	}, nil
}

// ListDealEvents returns a deal's audit trail, oldest first
func (s *DealService) ListDealEvents(ctx context.Context, workspaceID, dealID uuid.UUID) ([]DealEventResponse, error) {
	if _, err := s.repos.Deals.FindByIDForWorkspace(ctx, workspaceID, dealID); err != nil {
		return nil, err
	}
	events, err := s.repos.DealEvents.FindByDeal(ctx, workspaceID, dealID)
	if err != nil {
		return nil, err
	}
	out := make([]DealEventResponse, len(events))
	for i := range events {
		out[i] = ToDealEventResponse(&events[i])
	}
	return out, nil
}

func (s *DealService) resolvePipeline(ctx context.Context, workspaceID uuid.UUID, pipelineID *uuid.UUID) (*sales.Pipeline, error) {
	if pipelineID != nil {
		return s.repos.Pipelines.FindByIDForWorkspace(ctx, workspaceID, *pipelineID)
	}
	return s.repos.Pipelines.FindDefault(ctx, workspaceID)
}

// publishDomainEvents publishes and clears the deal's pending events
func (s *DealService) publishDomainEvents(ctx context.Context, deal *sales.Deal) {
	publishDealEvents(ctx, s.eventPublisher, deal)
}

func publishDealEvents(ctx context.Context, publisher shared.EventPublisher, deal *sales.Deal) {
	if publisher == nil {
		deal.ClearDomainEvents()
		return
	}
	events := deal.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	// errors are logged by the event bus
	_ = publisher.Publish(ctx, events...)
	deal.ClearDomainEvents()
}

func pickLink(current, next *uuid.UUID, clear bool) *uuid.UUID {
	switch {
	case clear:
		return nil
	case next != nil:
		return next
	}
	return current
}
