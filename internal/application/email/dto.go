package email

import (
	"time"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/email"
)

// =============================================================================
// Template DTOs
// =============================================================================

// CreateTemplateRequest creates an email template
type CreateTemplateRequest struct {
	Name      string     `json:"name" binding:"required,min=1,max=150"`
	Subject   string     `json:"subject" binding:"required,min=1,max=300"`
	Body      string     `json:"body" binding:"required"`
	CreatedBy *uuid.UUID `json:"-"`
}

// UpdateTemplateRequest changes a template. Omitted fields keep their value.
type UpdateTemplateRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=150"`
	Subject *string `json:"subject" binding:"omitempty,min=1,max=300"`
	Body    *string `json:"body" binding:"omitempty,min=1"`
}

// TemplateResponse is a template with the placeholders it uses
type TemplateResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Subject   string     `json:"subject"`
	Body      string     `json:"body"`
	Variables []string   `json:"variables"`
	CreatedBy *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TemplateListFilter filters templates
type TemplateListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToTemplateResponse converts a domain template
func ToTemplateResponse(t *email.Template) TemplateResponse {
	return TemplateResponse{
		ID:        t.ID,
		Name:      t.Name,
		Subject:   t.Subject,
		Body:      t.Body,
		Variables: t.Variables(),
		CreatedBy: t.CreatedBy,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// =============================================================================
// Sending and logs
// =============================================================================

// SendEmailRequest sends either a template or an inline subject and body
type SendEmailRequest struct {
	TemplateID *uuid.UUID        `json:"template_id"`
	ToEmail    string            `json:"to_email" binding:"required,email,max=320"`
	Subject    string            `json:"subject" binding:"max=300"`
	Body       string            `json:"body"`
	Variables  map[string]string `json:"variables"`
	DealID     *uuid.UUID        `json:"deal_id"`
	ContactID  *uuid.UUID        `json:"contact_id"`
	SentBy     *uuid.UUID        `json:"-"`
}

// EmailLogResponse is an email log row
type EmailLogResponse struct {
	ID                uuid.UUID       `json:"id"`
	TemplateID        *uuid.UUID      `json:"template_id,omitempty"`
	ToEmail           string          `json:"to_email"`
	Subject           string          `json:"subject"`
	Body              string          `json:"body"`
	Status            email.LogStatus `json:"status"`
	ProviderMessageID string          `json:"provider_message_id,omitempty"`
	Error             string          `json:"error,omitempty"`
	SentAt            *time.Time      `json:"sent_at,omitempty"`
	DealID            *uuid.UUID      `json:"deal_id,omitempty"`
	ContactID         *uuid.UUID      `json:"contact_id,omitempty"`
	SentBy            *uuid.UUID      `json:"sent_by,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// EmailLogListFilter filters email logs
type EmailLogListFilter struct {
	Search     string `form:"search"`
	Status     string `form:"status" binding:"omitempty,oneof=queued sent failed"`
	TemplateID string `form:"template_id" binding:"omitempty,uuid"`
	DealID     string `form:"deal_id" binding:"omitempty,uuid"`
	ContactID  string `form:"contact_id" binding:"omitempty,uuid"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToEmailLogResponse converts a domain email log
func ToEmailLogResponse(l *email.Log) EmailLogResponse {
	return EmailLogResponse{
		ID:                l.ID,
		TemplateID:        l.TemplateID,
		ToEmail:           l.ToEmail,
		Subject:           l.Subject,
		Body:              l.Body,
		Status:            l.Status,
		ProviderMessageID: l.ProviderMessageID,
		Error:             l.Error,
		SentAt:            l.SentAt,
		DealID:            l.DealID,
		ContactID:         l.ContactID,
		SentBy:            l.SentBy,
		CreatedAt:         l.CreatedAt,
	}
}

// DeliveryJob is the message handed to the dispatcher. The worker loads the log by ID.
type DeliveryJob struct {
	EmailLogID  uuid.UUID `json:"email_log_id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
}

// OutboundMessage is what the transactional email provider receives
type OutboundMessage struct {
	To      string
	Subject string
	Body    string
	// Tags are passed through to the provider for its own analytics
	Tags map[string]string
}
