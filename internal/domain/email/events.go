package email

import (
	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/shared"
)

// Event type constants
const (
	EventTypeEmailSent = "EmailSent"

	AggregateTypeEmail = "EmailLog"
)

// EmailSentEvent is raised when the provider accepts a message
type EmailSentEvent struct {
	shared.BaseDomainEvent
	ToEmail   string     `json:"to_email"`
	Subject   string     `json:"subject"`
	DealID    *uuid.UUID `json:"deal_id,omitempty"`
	ContactID *uuid.UUID `json:"contact_id,omitempty"`
	SentBy    *uuid.UUID `json:"sent_by,omitempty"`
}

// NewEmailSentEvent creates an EmailSentEvent
func NewEmailSentEvent(l *Log) *EmailSentEvent {
	return &EmailSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEmailSent, AggregateTypeEmail, l.ID, l.WorkspaceID),
		ToEmail:         l.ToEmail,
		Subject:         l.Subject,
		DealID:          l.DealID,
		ContactID:       l.ContactID,
		SentBy:          l.SentBy,
	}
}
