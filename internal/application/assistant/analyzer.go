package assistant

import (
	"context"
	"fmt"
	"strings"

	appsales "github.com/salescrm/backend/internal/application/sales"
)

const maxAnalyzedChars = 100000

const analyzerPrompt = "You analyse sales call and meeting transcripts. Reply with a single JSON object " +
	`of the form {"summary": string, "next_steps": [string], "sentiment": "positive"|"neutral"|"negative"}. ` +
	"The summary is at most five sentences. Do not add any other text."

// TranscriptAnalyzer asks the model for a structured summary of a transcript
type TranscriptAnalyzer struct {
	model     Model
	maxTokens int
}

// NewTranscriptAnalyzer creates a TranscriptAnalyzer
func NewTranscriptAnalyzer(model Model, maxTokens int) *TranscriptAnalyzer {
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &TranscriptAnalyzer{model: model, maxTokens: maxTokens}
}

// AnalyzeTranscript summarises the transcript. The reply is parsed with ExtractJSON,
// so fenced or chatty model output is accepted.
func (a *TranscriptAnalyzer) AnalyzeTranscript(ctx context.Context, title, content string) (*appsales.TranscriptAnalysis, error) {
	if a.model == nil {
		return nil, ErrNotConfigured
	}
	if r := []rune(content); len(r) > maxAnalyzedChars {
		content = string(r[:maxAnalyzedChars])
	}
	completion, err := a.model.Complete(ctx, CompletionRequest{
		System: analyzerPrompt,
		Messages: []Message{{
			Role:    RoleUser,
			Content: []ContentBlock{TextBlock("Title: " + title + "\n\nTranscript:\n" + content)},
		}},
		MaxTokens: a.maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("transcript analysis: %w", err)
	}

	var out appsales.TranscriptAnalysis
	if err := DecodeJSON(completion.Text(), &out); err != nil {
		return nil, fmt.Errorf("transcript analysis reply: %w", err)
	}
	out.Summary = StripMarkdown(out.Summary)
	out.Sentiment = strings.ToLower(strings.TrimSpace(out.Sentiment))
	switch out.Sentiment {
	case "positive", "neutral", "negative":
	default:
		out.Sentiment = "neutral"
	}
	if out.NextSteps == nil {
		out.NextSteps = []string{}
	}
	return &out, nil
}

var _ appsales.TranscriptAnalyzer = (*TranscriptAnalyzer)(nil)
