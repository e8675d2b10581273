package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/sales"
	"github.com/salescrm/backend/internal/domain/shared"
)

// TranscriptAnalyzer turns a transcript into a structured summary
type TranscriptAnalyzer interface {
	AnalyzeTranscript(ctx context.Context, title, content string) (*TranscriptAnalysis, error)
}

// ErrAnalyzerUnavailable is returned when no language model is configured
var ErrAnalyzerUnavailable = shared.NewDomainError("ASSISTANT_UNAVAILABLE", "Transcript analysis is not configured")

// TranscriptService manages call and meeting transcripts attached to deals
type TranscriptService struct {
	deals       sales.DealRepository
	transcripts sales.TranscriptRepository
	analyzer    TranscriptAnalyzer
}

// NewTranscriptService creates a TranscriptService. analyzer may be nil.
func NewTranscriptService(deals sales.DealRepository, transcripts sales.TranscriptRepository, analyzer TranscriptAnalyzer) *TranscriptService {
	return &TranscriptService{
		deals:       deals,
		transcripts: transcripts,
		analyzer:    analyzer,
	}
}

// AddTranscript attaches a transcript to a deal
func (s *TranscriptService) AddTranscript(ctx context.Context, workspaceID, dealID uuid.UUID, req AddTranscriptRequest) (*TranscriptResponse, error) {
	deal, err := s.deals.FindByIDForWorkspace(ctx, workspaceID, dealID)
	if err != nil {
		return nil, err
	}
	t, err := sales.NewTranscript(deal, req.Title, sales.TranscriptSource(req.Source), req.Content)
	if err != nil {
		return nil, err
	}
	t.RecordedAt = req.RecordedAt
	t.CreatedBy = req.CreatedBy
	if err := s.transcripts.Save(ctx, t); err != nil {
		return nil, err
	}
	resp := ToTranscriptResponse(t, true)
	return &resp, nil
}

// ListTranscripts lists a deal's transcripts without their bodies
func (s *TranscriptService) ListTranscripts(ctx context.Context, workspaceID, dealID uuid.UUID) ([]TranscriptResponse, error) {
	if _, err := s.deals.FindByIDForWorkspace(ctx, workspaceID, dealID); err != nil {
		return nil, err
	}
	list, err := s.transcripts.FindByDeal(ctx, workspaceID, dealID)
	if err != nil {
		return nil, err
	}
	out := make([]TranscriptResponse, len(list))
	for i := range list {
		out[i] = ToTranscriptResponse(&list[i], false)
	}
	return out, nil
}

// GetTranscript returns one transcript with its content
func (s *TranscriptService) GetTranscript(ctx context.Context, workspaceID, dealID, id uuid.UUID) (*TranscriptResponse, error) {
	t, err := s.find(ctx, workspaceID, dealID, id)
	if err != nil {
		return nil, err
	}
	resp := ToTranscriptResponse(t, true)
	return &resp, nil
}

// DeleteTranscript deletes a transcript
func (s *TranscriptService) DeleteTranscript(ctx context.Context, workspaceID, dealID, id uuid.UUID) error {
	if _, err := s.find(ctx, workspaceID, dealID, id); err != nil {
		return err
	}
	return s.transcripts.DeleteForWorkspace(ctx, workspaceID, id)
}

// AnalyzeTranscript asks the model for a summary, next steps and sentiment and stores the summary
func (s *TranscriptService) AnalyzeTranscript(ctx context.Context, workspaceID, dealID, id uuid.UUID) (*AnalyzeTranscriptResponse, error) {
	if s.analyzer == nil {
		return nil, ErrAnalyzerUnavailable
	}
	t, err := s.find(ctx, workspaceID, dealID, id)
	if err != nil {
		return nil, err
	}
	analysis, err := s.analyzer.AnalyzeTranscript(ctx, t.Title, t.Content)
	if err != nil {
		return nil, err
	}
	t.SetSummary(analysis.Summary)
	if err := s.transcripts.Save(ctx, t); err != nil {
		return nil, err
	}
	return &AnalyzeTranscriptResponse{
		Transcript: ToTranscriptResponse(t, false),
		Analysis:   *analysis,
	}, nil
}

func (s *TranscriptService) find(ctx context.Context, workspaceID, dealID, id uuid.UUID) (*sales.Transcript, error) {
	t, err := s.transcripts.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if t.DealID != dealID {
		return nil, shared.NotFound("Transcript")
	}
	return t, nil
}
