package sales

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Pipeline and stage DTOs
// =============================================================================

// StageInput describes a stage to create
type StageInput struct {
	Name        string `json:"name" binding:"required,min=1,max=120"`
	Color       string `json:"color" binding:"omitempty,hexcolor"`
	Probability int    `json:"probability" binding:"min=0,max=100"`
	IsWon       bool   `json:"is_won"`
	IsLost      bool   `json:"is_lost"`
}

func (s StageInput) template() sales.StageTemplate {
	return sales.StageTemplate{
		Name:        s.Name,
		Color:       s.Color,
		Probability: s.Probability,
		IsWon:       s.IsWon,
		IsLost:      s.IsLost,
	}
}

// CreatePipelineRequest creates a pipeline. Without stages the default set is used.
type CreatePipelineRequest struct {
	Name      string       `json:"name" binding:"required,min=1,max=120"`
	IsDefault bool         `json:"is_default"`
	Stages    []StageInput `json:"stages" binding:"omitempty,max=30,dive"`
}

// UpdatePipelineRequest renames a pipeline or makes it the default
type UpdatePipelineRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=120"`
	IsDefault *bool   `json:"is_default"`
}

// UpdateStageRequest changes a stage. Omitted fields keep their value.
type UpdateStageRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=120"`
	Color       *string `json:"color" binding:"omitempty,hexcolor"`
	Probability *int    `json:"probability" binding:"omitempty,min=0,max=100"`
	IsWon       *bool   `json:"is_won"`
	IsLost      *bool   `json:"is_lost"`
}

// StagePositionInput is one entry of a reorder request
type StagePositionInput struct {
	StageID  uuid.UUID `json:"stage_id" binding:"required"`
	Position int       `json:"position" binding:"min=0"`
}

// ReorderStagesRequest assigns new stage positions
type ReorderStagesRequest struct {
	Stages []StagePositionInput `json:"stages" binding:"required,min=1,dive"`
}

// StageResponse is a pipeline stage
type StageResponse struct {
	ID          uuid.UUID `json:"id"`
	PipelineID  uuid.UUID `json:"pipeline_id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Position    int       `json:"position"`
	Probability int       `json:"probability"`
	IsWon       bool      `json:"is_won"`
	IsLost      bool      `json:"is_lost"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PipelineResponse is a pipeline with its stages in order
type PipelineResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	IsDefault bool            `json:"is_default"`
	Stages    []StageResponse `json:"stages"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToStageResponse converts a domain stage
func ToStageResponse(s *sales.Stage) StageResponse {
	return StageResponse{
		ID:          s.ID,
		PipelineID:  s.PipelineID,
		Name:        s.Name,
		Color:       s.Color,
		Position:    s.Position,
		Probability: s.Probability,
		IsWon:       s.IsWon,
		IsLost:      s.IsLost,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ToPipelineResponse converts a domain pipeline
func ToPipelineResponse(p *sales.Pipeline) PipelineResponse {
	ordered := p.OrderedStages()
	stages := make([]StageResponse, len(ordered))
	for i := range ordered {
		stages[i] = ToStageResponse(&ordered[i])
	}
	return PipelineResponse{
		ID:        p.ID,
		Name:      p.Name,
		IsDefault: p.IsDefault,
		Stages:    stages,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// BoardColumn is one stage of the kanban board
type BoardColumn struct {
	Stage      StageResponse   `json:"stage"`
	Deals      []DealResponse  `json:"deals"`
	Count      int             `json:"count"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// BoardResponse is a pipeline laid out as columns
type BoardResponse struct {
	PipelineID uuid.UUID     `json:"pipeline_id"`
	Name       string        `json:"name"`
	Columns    []BoardColumn `json:"columns"`
}

// =============================================================================
// Deal DTOs
// =============================================================================

// CreateDealRequest creates a deal. Pipeline defaults to the workspace default, stage to its first.
type CreateDealRequest struct {
	Title             string          `json:"title" binding:"required,min=1,max=200"`
	Value             decimal.Decimal `json:"value"`
	Currency          string          `json:"currency" binding:"omitempty,len=3"`
	PipelineID        *uuid.UUID      `json:"pipeline_id"`
	StageID           *uuid.UUID      `json:"stage_id"`
	ContactID         *uuid.UUID      `json:"contact_id"`
	CompanyID         *uuid.UUID      `json:"company_id"`
	OwnerID           *uuid.UUID      `json:"owner_id"`
	ExpectedCloseDate *time.Time      `json:"expected_close_date"`
	Description       string          `json:"description" binding:"max=10000"`
	ActorID           *uuid.UUID      `json:"-"`
}

// UpdateDealRequest changes a deal. Omitted fields keep their value; Clear* empties a link.
type UpdateDealRequest struct {
	Title             *string          `json:"title" binding:"omitempty,min=1,max=200"`
	Description       *string          `json:"description" binding:"omitempty,max=10000"`
	Value             *decimal.Decimal `json:"value"`
	ContactID         *uuid.UUID       `json:"contact_id"`
	CompanyID         *uuid.UUID       `json:"company_id"`
	OwnerID           *uuid.UUID       `json:"owner_id"`
	ExpectedCloseDate *time.Time       `json:"expected_close_date"`
	ClearContact      bool             `json:"clear_contact"`
	ClearCompany      bool             `json:"clear_company"`
	ClearOwner        bool             `json:"clear_owner"`
	ClearCloseDate    bool             `json:"clear_expected_close_date"`
	ActorID           *uuid.UUID       `json:"-"`
}

// MoveDealRequest drags a deal to a stage and optionally a position within it
type MoveDealRequest struct {
	StageID    uuid.UUID  `json:"stage_id" binding:"required"`
	Position   *int       `json:"position" binding:"omitempty,min=0"`
	LostReason string     `json:"lost_reason" binding:"max=1000"`
	ActorID    *uuid.UUID `json:"-"`
}

// DealListFilter filters deals
type DealListFilter struct {
	Search     string `form:"search"`
	PipelineID string `form:"pipeline_id" binding:"omitempty,uuid"`
	StageID    string `form:"stage_id" binding:"omitempty,uuid"`
	OwnerID    string `form:"owner_id" binding:"omitempty,uuid"`
	ContactID  string `form:"contact_id" binding:"omitempty,uuid"`
	CompanyID  string `form:"company_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=open won lost"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// DealResponse is a deal
type DealResponse struct {
	ID                uuid.UUID        `json:"id"`
	PipelineID        uuid.UUID        `json:"pipeline_id"`
	StageID           uuid.UUID        `json:"stage_id"`
	Title             string           `json:"title"`
	Value             decimal.Decimal  `json:"value"`
	Currency          string           `json:"currency"`
	Position          int              `json:"position"`
	Status            sales.DealStatus `json:"status"`
	ContactID         *uuid.UUID       `json:"contact_id,omitempty"`
	CompanyID         *uuid.UUID       `json:"company_id,omitempty"`
	OwnerID           *uuid.UUID       `json:"owner_id,omitempty"`
	ExpectedCloseDate *time.Time       `json:"expected_close_date,omitempty"`
	ClosedAt          *time.Time       `json:"closed_at,omitempty"`
	LostReason        string           `json:"lost_reason,omitempty"`
	Description       string           `json:"description,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// ToDealResponse converts a domain deal
func ToDealResponse(d *sales.Deal) DealResponse {
	return DealResponse{
		ID:                d.ID,
		PipelineID:        d.PipelineID,
		StageID:           d.StageID,
		Title:             d.Title,
		Value:             d.Value,
		Currency:          d.Currency,
		Position:          d.Position,
		Status:            d.Status,
		ContactID:         d.ContactID,
		CompanyID:         d.CompanyID,
		OwnerID:           d.OwnerID,
		ExpectedCloseDate: d.ExpectedCloseDate,
		ClosedAt:          d.ClosedAt,
		LostReason:        d.LostReason,
		Description:       d.Description,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

// MoveDealResponse is the deal after a move and what the move did
type MoveDealResponse struct {
	Deal  DealResponse `json:"deal"`
	Moved bool         `json:"moved"`
	Event string       `json:"event,omitempty"`
}

// DealEventResponse is an audit entry
type DealEventResponse struct {
	ID          uuid.UUID       `json:"id"`
	DealID      uuid.UUID       `json:"deal_id"`
	Type        string          `json:"type"`
	FromStageID *uuid.UUID      `json:"from_stage_id,omitempty"`
	ToStageID   *uuid.UUID      `json:"to_stage_id,omitempty"`
	ActorID     *uuid.UUID      `json:"actor_id,omitempty"`
	Data        json.RawMessage `json:"data"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToDealEventResponse converts an audit row
func ToDealEventResponse(e *sales.DealEvent) DealEventResponse {
	data := json.RawMessage(e.Data)
	if !json.Valid(data) {
		data = json.RawMessage(`{}`)
	}
	return DealEventResponse{
		ID:          e.ID,
		DealID:      e.DealID,
		Type:        string(e.Type),
		FromStageID: e.FromStageID,
		ToStageID:   e.ToStageID,
		ActorID:     e.ActorID,
		Data:        data,
		CreatedAt:   e.CreatedAt,
	}
}

// =============================================================================
// Transcript DTOs
// =============================================================================

// AddTranscriptRequest attaches a transcript to a deal
type AddTranscriptRequest struct {
	Title      string     `json:"title" binding:"required,min=1,max=200"`
	Source     string     `json:"source" binding:"omitempty,oneof=call meeting email other"`
	Content    string     `json:"content" binding:"required"`
	RecordedAt *time.Time `json:"recorded_at"`
	CreatedBy  *uuid.UUID `json:"-"`
}

// TranscriptResponse is a transcript
type TranscriptResponse struct {
	ID         uuid.UUID  `json:"id"`
	DealID     uuid.UUID  `json:"deal_id"`
	Title      string     `json:"title"`
	Source     string     `json:"source"`
	Content    string     `json:"content,omitempty"`
	Summary    string     `json:"summary,omitempty"`
	RecordedAt *time.Time `json:"recorded_at,omitempty"`
	CreatedBy  *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ToTranscriptResponse converts a transcript. withContent=false omits the body for listings.
func ToTranscriptResponse(t *sales.Transcript, withContent bool) TranscriptResponse {
	resp := TranscriptResponse{
		ID:         t.ID,
		DealID:     t.DealID,
		Title:      t.Title,
		Source:     string(t.Source),
		Summary:    t.Summary,
		RecordedAt: t.RecordedAt,
		CreatedBy:  t.CreatedBy,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
	if withContent {
		resp.Content = t.Content
	}
	return resp
}

// TranscriptAnalysis is the structured summary produced by the model
type TranscriptAnalysis struct {
	Summary   string   `json:"summary"`
	NextSteps []string `json:"next_steps"`
	Sentiment string   `json:"sentiment"`
}

// AnalyzeTranscriptResponse is the analysis and the updated transcript
type AnalyzeTranscriptResponse struct {
	Transcript TranscriptResponse `json:"transcript"`
	Analysis   TranscriptAnalysis `json:"analysis"`
}

// =============================================================================
// Revenue item DTOs
// =============================================================================

// RevenueItemRequest creates or replaces a revenue item
type RevenueItemRequest struct {
	Name      string           `json:"name" binding:"required,min=1,max=200"`
	Quantity  *decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
	Billing   string           `json:"billing" binding:"omitempty,oneof=one_time monthly yearly"`
	ActorID   *uuid.UUID       `json:"-"`
}

// RevenueItemResponse is a revenue line
type RevenueItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	DealID    uuid.UUID       `json:"deal_id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Billing   string          `json:"billing"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToRevenueItemResponse converts a revenue item
func ToRevenueItemResponse(i *sales.RevenueItem) RevenueItemResponse {
	return RevenueItemResponse{
		ID:        i.ID,
		DealID:    i.DealID,
		Name:      i.Name,
		Quantity:  i.Quantity,
		UnitPrice: i.UnitPrice,
		Billing:   string(i.Billing),
		Total:     i.Total(),
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

// RevenueItemsResponse lists a deal's items with the recomputed deal value
type RevenueItemsResponse struct {
	Items     []RevenueItemResponse `json:"items"`
	DealValue decimal.Decimal       `json:"deal_value"`
}
