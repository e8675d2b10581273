package sales

import (
	"context"
	"errors"
	"testing"

	"github.com/salescrm/backend/internal/domain/sales"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTranscriptService_AddTranscript(t *testing.T) {
	f := newDealFixture(t)
	transcripts := new(MockTranscriptRepository)
	svc := NewTranscriptService(f.deals, transcripts, nil)
	ctx := context.Background()
	deal := f.newDeal(t, "Qualified", 100)

	f.deals.On("FindByIDForWorkspace", ctx, f.ws, deal.ID).Return(deal, nil)
	transcripts.On("Save", ctx, mock.AnythingOfType("*sales.Transcript")).Return(nil)

	resp, err := svc.AddTranscript(ctx, f.ws, deal.ID, AddTranscriptRequest{Title: "Discovery call", Content: "We talked."})

	require.NoError(t, err)
	assert.Equal(t, "call", resp.Source)
	assert.Equal(t, deal.ID, resp.DealID)
	assert.Equal(t, "We talked.", resp.Content)
}

func TestTranscriptService_ListTranscripts_OmitsContent(t *testing.T) {
	f := newDealFixture(t)
	transcripts := new(MockTranscriptRepository)
	svc := NewTranscriptService(f.deals, transcripts, nil)
	ctx := context.Background()
	deal := f.newDeal(t, "Qualified", 100)
	tr, err := sales.NewTranscript(deal, "Demo", sales.TranscriptSourceMeeting, "long text")
	require.NoError(t, err)

	f.deals.On("FindByIDForWorkspace", ctx, f.ws, deal.ID).Return(deal, nil)
	transcripts.On("FindByDeal", ctx, f.ws, deal.ID).Return([]sales.Transcript{*tr}, nil)

	list, err := svc.ListTranscripts(ctx, f.ws, deal.ID)

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].Content)
	assert.Equal(t, "meeting", list[0].Source)
}

func TestTranscriptService_AnalyzeTranscript(t *testing.T) {
	f := newDealFixture(t)
	transcripts := new(MockTranscriptRepository)
	analyzer := new(MockAnalyzer)
	svc := NewTranscriptService(f.deals, transcripts, analyzer)
	ctx := context.Background()
	deal := f.newDeal(t, "Qualified", 100)
	tr, err := sales.NewTranscript(deal, "Demo", sales.TranscriptSourceCall, "Customer wants a pilot.")
	require.NoError(t, err)

	analysis := &TranscriptAnalysis{Summary: "Pilot requested", NextSteps: []string{"Send pilot terms"}, Sentiment: "positive"}
	transcripts.On("FindByIDForWorkspace", ctx, f.ws, tr.ID).Return(tr, nil)
	analyzer.On("AnalyzeTranscript", ctx, "Demo", "Customer wants a pilot.").Return(analysis, nil)
	transcripts.On("Save", ctx, tr).Return(nil)

	resp, err := svc.AnalyzeTranscript(ctx, f.ws, deal.ID, tr.ID)

	require.NoError(t, err)
	assert.Equal(t, "Pilot requested", resp.Transcript.Summary)
	assert.Equal(t, []string{"Send pilot terms"}, resp.Analysis.NextSteps)
	transcripts.AssertExpectations(t)
}

func TestTranscriptService_AnalyzeTranscript_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("no analyzer", func(t *testing.T) {
		f := newDealFixture(t)
		svc := NewTranscriptService(f.deals, new(MockTranscriptRepository), nil)
		deal := f.newDeal(t, "Lead", 0)

		_, err := svc.AnalyzeTranscript(ctx, f.ws, deal.ID, deal.ID)

		assert.ErrorIs(t, err, ErrAnalyzerUnavailable)
	})

	t.Run("model error leaves summary untouched", func(t *testing.T) {
		f := newDealFixture(t)
		transcripts := new(MockTranscriptRepository)
		analyzer := new(MockAnalyzer)
		svc := NewTranscriptService(f.deals, transcripts, analyzer)
		deal := f.newDeal(t, "Lead", 0)
		tr, err := sales.NewTranscript(deal, "Demo", "", "text")
		require.NoError(t, err)

		transcripts.On("FindByIDForWorkspace", ctx, f.ws, tr.ID).Return(tr, nil)
		analyzer.On("AnalyzeTranscript", ctx, "Demo", "text").Return(nil, errors.New("upstream 529"))

		_, err = svc.AnalyzeTranscript(ctx, f.ws, deal.ID, tr.ID)

		require.Error(t, err)
		assert.Empty(t, tr.Summary)
		transcripts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
