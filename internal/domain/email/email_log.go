package email

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/shared"
)

// LogStatus is the delivery state of an email
type LogStatus string

const (
	LogStatusQueued LogStatus = "queued"
	LogStatusSent   LogStatus = "sent"
	LogStatusFailed LogStatus = "failed"
)

// Log records an outbound email and its delivery outcome
type Log struct {
	shared.WorkspaceAggregateRoot
	TemplateID        *uuid.UUID `gorm:"type:uuid"`
	ToEmail           string     `gorm:"type:varchar(320);not null;index"`
	Subject           string     `gorm:"type:varchar(300);not null"`
	Body              string     `gorm:"type:text;not null"`
	Status            LogStatus  `gorm:"type:varchar(10);not null;default:'queued';index"`
	ProviderMessageID string     `gorm:"type:varchar(200)"`
	Error             string     `gorm:"type:text"`
	SentAt            *time.Time
	DealID            *uuid.UUID `gorm:"type:uuid;index"`
	ContactID         *uuid.UUID `gorm:"type:uuid;index"`
	SentBy            *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Log) TableName() string {
	return "email_logs"
}

// NewLog creates a queued email log for a rendered message
func NewLog(workspaceID uuid.UUID, to, subject, body string) (*Log, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(to))
	if err != nil {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Recipient email address is invalid")
	}
	if err := validateMessage(subject, body); err != nil {
		return nil, err
	}
	return &Log{
		WorkspaceAggregateRoot: shared.NewWorkspaceAggregateRoot(workspaceID),
		ToEmail:                strings.ToLower(addr.Address),
		Subject:                strings.TrimSpace(subject),
		Body:                   body,
		Status:                 LogStatusQueued,
	}, nil
}

// MarkSent records a successful delivery
func (l *Log) MarkSent(providerMessageID string) error {
	if l.Status != LogStatusQueued {
		return shared.NewDomainError("INVALID_STATE", "Only queued emails can be marked sent")
	}
	now := time.Now()
	l.Status = LogStatusSent
	l.ProviderMessageID = providerMessageID
	l.Error = ""
	l.SentAt = &now
	l.UpdatedAt = now
	l.AddDomainEvent(NewEmailSentEvent(l))
	return nil
}

// MarkFailed records a delivery failure
func (l *Log) MarkFailed(reason string) error {
	if l.Status != LogStatusQueued {
		return shared.NewDomainError("INVALID_STATE", "Only queued emails can be marked failed")
	}
	l.Status = LogStatusFailed
	l.Error = reason
	l.Touch()
	return nil
}

// IsQueued reports whether delivery is still pending
func (l *Log) IsQueued() bool {
	return l.Status == LogStatusQueued
}
