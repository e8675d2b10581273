package sales

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/shared"
)

// TranscriptSource describes where a transcript came from
type TranscriptSource string

const (
	TranscriptSourceCall    TranscriptSource = "call"
	TranscriptSourceMeeting TranscriptSource = "meeting"
	TranscriptSourceEmail   TranscriptSource = "email"
	TranscriptSourceOther   TranscriptSource = "other"
)

// maxTranscriptLength caps stored transcript text (1 MiB)
const maxTranscriptLength = 1 << 20

// Transcript is the text of a call or meeting attached to a deal
type Transcript struct {
	shared.WorkspaceEntity
	DealID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	Title      string           `gorm:"type:varchar(200);not null"`
	Source     TranscriptSource `gorm:"type:varchar(20);not null;default:'call'"`
	Content    string           `gorm:"type:text;not null"`
	Summary    string           `gorm:"type:text"`
	RecordedAt *time.Time
	CreatedBy  *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Transcript) TableName() string {
	return "deal_transcripts"
}

// NewTranscript creates a transcript for a deal
func NewTranscript(deal *Deal, title string, source TranscriptSource, content string) (*Transcript, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.Validation("Transcript title is required")
	}
	if source == "" {
		source = TranscriptSourceCall
	}
	switch source {
	case TranscriptSourceCall, TranscriptSourceMeeting, TranscriptSourceEmail, TranscriptSourceOther:
	default:
		return nil, shared.NewDomainError("INVALID_SOURCE", "Transcript source must be call, meeting, email or other")
	}
	if strings.TrimSpace(content) == "" {
		return nil, shared.Validation("Transcript content is required")
	}
	if len(content) > maxTranscriptLength {
		return nil, shared.Validation("Transcript content is too large")
	}
	return &Transcript{
		WorkspaceEntity: shared.NewWorkspaceEntity(deal.WorkspaceID),
		DealID:          deal.ID,
		Title:           title,
		Source:          source,
		Content:         content,
	}, nil
}

// SetSummary stores an AI-produced summary
func (t *Transcript) SetSummary(summary string) {
	t.Summary = strings.TrimSpace(summary)
	t.Touch()
}
