package sales

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/shared"
)

// DealEventType classifies audit rows in deal_events
type DealEventType string

const (
	DealEventCreated      DealEventType = "created"
	DealEventStageChanged DealEventType = "stage_changed"
	DealEventReordered    DealEventType = "reordered"
	DealEventWon          DealEventType = "won"
	DealEventLost         DealEventType = "lost"
	DealEventReopened     DealEventType = "reopened"
	DealEventValueChanged DealEventType = "value_changed"
)

// DealEvent is an append-only audit entry for a deal
type DealEvent struct {
	shared.WorkspaceEntity
	DealID      uuid.UUID     `gorm:"type:uuid;not null;index"`
	Type        DealEventType `gorm:"type:varchar(30);not null"`
	FromStageID *uuid.UUID    `gorm:"type:uuid"`
	ToStageID   *uuid.UUID    `gorm:"type:uuid"`
	ActorID     *uuid.UUID    `gorm:"type:uuid"`
	Data        string        `gorm:"type:jsonb;not null;default:'{}'"`
}

// TableName returns the table name for GORM
func (DealEvent) TableName() string {
	return "deal_events"
}

// NewDealEvent creates an audit row. data is marshalled to JSON; nil yields {}.
func NewDealEvent(deal *Deal, eventType DealEventType, actorID *uuid.UUID, data map[string]any) *DealEvent {
	payload := "{}"
	if len(data) > 0 {
		if b, err := json.Marshal(data); err == nil {
			payload = string(b)
		}
	}
	return &DealEvent{
		WorkspaceEntity: shared.NewWorkspaceEntity(deal.WorkspaceID),
		DealID:          deal.ID,
		Type:            eventType,
		ActorID:         actorID,
		Data:            payload,
	}
}

// NewMoveEvent creates the audit row for a stage move
func NewMoveEvent(deal *Deal, result MoveResult, actorID *uuid.UUID) *DealEvent {
	from := result.FromStageID
	to := result.ToStageID
	data := map[string]any{"status": string(deal.Status), "position": deal.Position}
	if deal.LostReason != "" {
		data["lost_reason"] = deal.LostReason
	}
	e := NewDealEvent(deal, result.Type, actorID, data)
	e.FromStageID = &from
	e.ToStageID = &to
	return e
}
