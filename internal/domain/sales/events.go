package sales

import (
	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event type constants
const (
	EventTypeDealCreated      = "DealCreated"
	EventTypeDealStageChanged = "DealStageChanged"
	EventTypeDealWon          = "DealWon"
	EventTypeDealLost         = "DealLost"
	EventTypeDealValueChanged = "DealValueChanged"
	EventTypeDealDeleted      = "DealDeleted"
	EventTypeDealUpdated      = "DealUpdated"

	EventTypePipelineChanged = "PipelineChanged"

	AggregateTypeDeal     = "Deal"
	AggregateTypePipeline = "Pipeline"
)

// Pipeline change actions
const (
	PipelineActionUpdated         = "pipeline_updated"
	PipelineActionDeleted         = "pipeline_deleted"
	PipelineActionStageAdded      = "stage_added"
	PipelineActionStageUpdated    = "stage_updated"
	PipelineActionStageDeleted    = "stage_deleted"
	PipelineActionStagesReordered = "stages_reordered"
)

// DealEventTypes lists every event type raised by deals
func DealEventTypes() []string {
	return []string{
		EventTypeDealCreated,
		EventTypeDealStageChanged,
		EventTypeDealWon,
		EventTypeDealLost,
		EventTypeDealValueChanged,
		EventTypeDealDeleted,
		EventTypeDealUpdated,
	}
}

// DealCreatedEvent is raised when a deal is created
type DealCreatedEvent struct {
	shared.BaseDomainEvent
	Title   string          `json:"title"`
	Value   decimal.Decimal `json:"value"`
	StageID uuid.UUID       `json:"stage_id"`
	OwnerID *uuid.UUID      `json:"owner_id,omitempty"`
}

// NewDealCreatedEvent creates a DealCreatedEvent
func NewDealCreatedEvent(d *Deal) *DealCreatedEvent {
	return &DealCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDealCreated, AggregateTypeDeal, d.ID, d.WorkspaceID),
		Title:           d.Title,
		Value:           d.Value,
		StageID:         d.StageID,
		OwnerID:         d.OwnerID,
	}
}

// DealStageChangedEvent is raised when a deal lands in a different stage.
// Its type is DealWon or DealLost when the target stage closes the deal.
type DealStageChangedEvent struct {
	shared.BaseDomainEvent
	Title       string          `json:"title"`
	FromStageID uuid.UUID       `json:"from_stage_id"`
	ToStageID   uuid.UUID       `json:"to_stage_id"`
	Status      DealStatus      `json:"status"`
	Value       decimal.Decimal `json:"value"`
	ContactID   *uuid.UUID      `json:"contact_id,omitempty"`
	CompanyID   *uuid.UUID      `json:"company_id,omitempty"`
}

// NewDealStageChangedEvent creates the event matching a move result
func NewDealStageChangedEvent(d *Deal, result MoveResult) *DealStageChangedEvent {
	eventType := EventTypeDealStageChanged
	switch result.Type {
	case DealEventWon:
		eventType = EventTypeDealWon
	case DealEventLost:
		eventType = EventTypeDealLost
	}
	return &DealStageChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeDeal, d.ID, d.WorkspaceID),
		Title:           d.Title,
		FromStageID:     result.FromStageID,
		ToStageID:       result.ToStageID,
		Status:          d.Status,
		Value:           d.Value,
		ContactID:       d.ContactID,
		CompanyID:       d.CompanyID,
	}
}

// DealValueChangedEvent is raised when the value changes
type DealValueChangedEvent struct {
	shared.BaseDomainEvent
	Previous decimal.Decimal `json:"previous"`
	Current  decimal.Decimal `json:"current"`
}

// NewDealValueChangedEvent creates a DealValueChangedEvent
func NewDealValueChangedEvent(d *Deal, previous decimal.Decimal) *DealValueChangedEvent {
	return &DealValueChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDealValueChanged, AggregateTypeDeal, d.ID, d.WorkspaceID),
		Previous:        previous,
		Current:         d.Value,
	}
}

// DealUpdatedEvent is raised when descriptive fields, links, the close date or revenue lines change.
// Fields names what changed; one event collects every change of a single update.
type DealUpdatedEvent struct {
	shared.BaseDomainEvent
	Fields []string `json:"fields"`
}

// NewDealUpdatedEvent creates a DealUpdatedEvent
func NewDealUpdatedEvent(d *Deal, fields ...string) *DealUpdatedEvent {
	return &DealUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDealUpdated, AggregateTypeDeal, d.ID, d.WorkspaceID),
		Fields:          fields,
	}
}

// DealDeletedEvent is raised after a deal is removed
type DealDeletedEvent struct {
	shared.BaseDomainEvent
}

// NewDealDeletedEvent creates a DealDeletedEvent
func NewDealDeletedEvent(d *Deal) *DealDeletedEvent {
	return &DealDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDealDeleted, AggregateTypeDeal, d.ID, d.WorkspaceID),
	}
}

// PipelineChangedEvent is raised when a pipeline or its stages change shape
type PipelineChangedEvent struct {
	shared.BaseDomainEvent
	Action  string     `json:"action"`
	StageID *uuid.UUID `json:"stage_id,omitempty"`
}

// NewPipelineChangedEvent creates a PipelineChangedEvent. stageID may be nil.
func NewPipelineChangedEvent(workspaceID, pipelineID uuid.UUID, action string, stageID *uuid.UUID) *PipelineChangedEvent {
	return &PipelineChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePipelineChanged, AggregateTypePipeline, pipelineID, workspaceID),
		Action:          action,
		StageID:         stageID,
	}
}
