package sales

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DealStatus is derived from the stage a deal sits in
type DealStatus string

const (
	DealStatusOpen DealStatus = "open"
	DealStatusWon  DealStatus = "won"
	DealStatusLost DealStatus = "lost"
)

// IsValid reports whether s is a known status
func (s DealStatus) IsValid() bool {
	switch s {
	case DealStatusOpen, DealStatusWon, DealStatusLost:
		return true
	}
	return false
}

// Deal is a sales opportunity moving through a pipeline
type Deal struct {
	shared.WorkspaceAggregateRoot
	PipelineID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	StageID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title             string          `gorm:"type:varchar(200);not null"`
	Value             decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Currency          string          `gorm:"type:varchar(3);not null;default:'USD'"`
	Position          int             `gorm:"not null;default:0"`
	Status            DealStatus      `gorm:"type:varchar(10);not null;default:'open';index"`
	ContactID         *uuid.UUID      `gorm:"type:uuid;index"`
	CompanyID         *uuid.UUID      `gorm:"type:uuid;index"`
	OwnerID           *uuid.UUID      `gorm:"type:uuid;index"`
	ExpectedCloseDate *time.Time      `gorm:"type:date"`
	ClosedAt          *time.Time
	LostReason        string `gorm:"type:text"`
	Description       string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Deal) TableName() string {
	return "deals"
}

// NewDeal creates a deal in the given stage. Closing stamps apply if the stage is won or lost.
func NewDeal(workspaceID uuid.UUID, stage *Stage, title string, value decimal.Decimal, currency string) (*Deal, error) {
	if stage == nil {
		return nil, shared.Validation("Deal stage is required")
	}
	title = strings.TrimSpace(title)
	if err := validateDealTitle(title); err != nil {
		return nil, err
	}
	if value.IsNegative() {
		return nil, shared.NewDomainError("INVALID_VALUE", "Deal value cannot be negative")
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = "USD"
	}
	if len(currency) != 3 {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency must be a 3-letter ISO code")
	}

	d := &Deal{
		WorkspaceAggregateRoot: shared.NewWorkspaceAggregateRoot(workspaceID),
		PipelineID:             stage.PipelineID,
		StageID:                stage.ID,
		Title:                  title,
		Value:                  value.Round(2),
		Currency:               currency,
		Status:                 DealStatusOpen,
	}
	d.applyStageOutcome(stage, "")
	d.AddDomainEvent(NewDealCreatedEvent(d))
	return d, nil
}

// Update changes the descriptive fields
func (d *Deal) Update(title, description string) error {
	title = strings.TrimSpace(title)
	if err := validateDealTitle(title); err != nil {
		return err
	}
	if title != d.Title {
		d.Title = title
		d.markUpdated("title")
	}
	if description != d.Description {
		d.Description = description
		d.markUpdated("description")
	}
	return nil
}

// SetValue changes the deal value. It returns true when the value actually changed.
func (d *Deal) SetValue(value decimal.Decimal) (bool, error) {
	if value.IsNegative() {
		return false, shared.NewDomainError("INVALID_VALUE", "Deal value cannot be negative")
	}
	value = value.Round(2)
	if d.Value.Equal(value) {
		return false, nil
	}
	previous := d.Value
	d.Value = value
	d.Touch()
	d.AddDomainEvent(NewDealValueChangedEvent(d, previous))
	return true, nil
}

// SetLinks points the deal at a contact, company and owner (nil clears)
func (d *Deal) SetLinks(contactID, companyID, ownerID *uuid.UUID) {
	if !sameID(d.ContactID, contactID) {
		d.ContactID = contactID
		d.markUpdated("contact_id")
	}
	if !sameID(d.CompanyID, companyID) {
		d.CompanyID = companyID
		d.markUpdated("company_id")
	}
	if !sameID(d.OwnerID, ownerID) {
		d.OwnerID = ownerID
		d.markUpdated("owner_id")
	}
}

// SetExpectedCloseDate sets or clears the expected close date
func (d *Deal) SetExpectedCloseDate(date *time.Time) {
	switch {
	case date == nil && d.ExpectedCloseDate == nil:
		return
	case date != nil && d.ExpectedCloseDate != nil && date.Equal(*d.ExpectedCloseDate):
		return
	}
	d.ExpectedCloseDate = date
	d.markUpdated("expected_close_date")
}

// RevenueItemsChanged records that the deal's revenue lines were added, edited or removed
func (d *Deal) RevenueItemsChanged() {
	d.markUpdated("revenue_items")
}

// markUpdated adds field to the pending DealUpdated event, raising one if none is pending.
// Changes made before a pending DealCreated is published are part of the creation.
func (d *Deal) markUpdated(field string) {
	d.Touch()
	for _, ev := range d.GetDomainEvents() {
		switch pending := ev.(type) {
		case *DealCreatedEvent:
			pending.Title = d.Title
			pending.OwnerID = d.OwnerID
			return
		case *DealUpdatedEvent:
			pending.Fields = append(pending.Fields, field)
			return
		}
	}
	d.AddDomainEvent(NewDealUpdatedEvent(d, field))
}

func sameID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// MoveResult describes what a move did
type MoveResult struct {
	FromStageID uuid.UUID
	ToStageID   uuid.UUID
	Type        DealEventType
	Moved       bool
}

// MoveTo moves the deal into the target stage, applying the won/lost side effects:
// a won or lost stage stamps ClosedAt, an open stage clears it.
// A move to the current stage without a position change is a no-op.
func (d *Deal) MoveTo(stage *Stage, position *int, lostReason string) (MoveResult, error) {
	if stage == nil {
		return MoveResult{}, shared.Validation("Target stage is required")
	}
	if stage.PipelineID != d.PipelineID {
		return MoveResult{}, shared.NewDomainError("INVALID_STAGE", "Stage belongs to a different pipeline")
	}
	if position != nil && *position < 0 {
		return MoveResult{}, shared.Validation("Position cannot be negative")
	}

	result := MoveResult{FromStageID: d.StageID, ToStageID: stage.ID}
	sameStage := d.StageID == stage.ID
	samePosition := position == nil || *position == d.Position
	if sameStage && samePosition {
		return result, nil
	}

	if position != nil {
		d.Position = *position
	}
	result.Moved = true
	if sameStage {
		result.Type = DealEventReordered
		d.Touch()
		return result, nil
	}

	wasClosed := d.Status != DealStatusOpen
	d.StageID = stage.ID
	d.applyStageOutcome(stage, lostReason)
	d.Touch()

	switch {
	case stage.IsWon:
		result.Type = DealEventWon
	case stage.IsLost:
		result.Type = DealEventLost
	case wasClosed:
		result.Type = DealEventReopened
	default:
		result.Type = DealEventStageChanged
	}
	d.AddDomainEvent(NewDealStageChangedEvent(d, result))
	return result, nil
}

func (d *Deal) applyStageOutcome(stage *Stage, lostReason string) {
	switch {
	case stage.IsWon:
		now := time.Now()
		d.Status = DealStatusWon
		d.ClosedAt = &now
		d.LostReason = ""
	case stage.IsLost:
		now := time.Now()
		d.Status = DealStatusLost
		d.ClosedAt = &now
		d.LostReason = strings.TrimSpace(lostReason)
	default:
		d.Status = DealStatusOpen
		d.ClosedAt = nil
		d.LostReason = ""
	}
}

// IsClosed reports whether the deal is won or lost
func (d *Deal) IsClosed() bool {
	return d.Status != DealStatusOpen
}

// WeightedValue is the value scaled by a stage probability percentage
func (d *Deal) WeightedValue(probability int) decimal.Decimal {
	return d.Value.Mul(decimal.NewFromInt(int64(probability))).Div(decimal.NewFromInt(100)).Round(2)
}

func validateDealTitle(title string) error {
	if title == "" {
		return shared.Validation("Deal title is required")
	}
	if len(title) > 200 {
		return shared.Validation("Deal title cannot exceed 200 characters")
	}
	return nil
}
