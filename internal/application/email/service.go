package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/email"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/salescrm/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Dispatcher hands a queued email to whatever delivers it (RabbitMQ or an in-process pool)
type Dispatcher interface {
	Dispatch(ctx context.Context, job DeliveryJob) error
}

// EmailService manages templates, sends emails and exposes the email log
type EmailService struct {
	templates  email.TemplateRepository
	logs       email.LogRepository
	dispatcher Dispatcher
}

// NewEmailService creates an EmailService
func NewEmailService(templates email.TemplateRepository, logs email.LogRepository, dispatcher Dispatcher) *EmailService {
	return &EmailService{
		templates:  templates,
		logs:       logs,
		dispatcher: dispatcher,
	}
}

// CreateTemplate creates a template
func (s *EmailService) CreateTemplate(ctx context.Context, workspaceID uuid.UUID, req CreateTemplateRequest) (*TemplateResponse, error) {
	tpl, err := email.NewTemplate(workspaceID, req.Name, req.Subject, req.Body, req.CreatedBy)
	if err != nil {
		return nil, err
	}
	if err := s.templates.Save(ctx, tpl); err != nil {
		return nil, err
	}
	resp := ToTemplateResponse(tpl)
	return &resp, nil
}

// GetTemplate returns one template
func (s *EmailService) GetTemplate(ctx context.Context, workspaceID, id uuid.UUID) (*TemplateResponse, error) {
	tpl, err := s.templates.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	resp := ToTemplateResponse(tpl)
	return &resp, nil
}

// ListTemplates lists templates
func (s *EmailService) ListTemplates(ctx context.Context, workspaceID uuid.UUID, f TemplateListFilter) (shared.Paginated[TemplateResponse], error) {
	filter := shared.NewFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir, f.Search)
	tpls, err := s.templates.FindAllForWorkspace(ctx, workspaceID, filter)
	if err != nil {
		return shared.Paginated[TemplateResponse]{}, err
	}
	total, err := s.templates.CountForWorkspace(ctx, workspaceID, filter)
	if err != nil {
		return shared.Paginated[TemplateResponse]{}, err
	}
	items := make([]TemplateResponse, len(tpls))
	for i := range tpls {
		items[i] = ToTemplateResponse(&tpls[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// UpdateTemplate changes a template
func (s *EmailService) UpdateTemplate(ctx context.Context, workspaceID, id uuid.UUID, req UpdateTemplateRequest) (*TemplateResponse, error) {
	tpl, err := s.templates.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	name, subject, body := tpl.Name, tpl.Subject, tpl.Body
	if req.Name != nil {
		name = *req.Name
	}
	if req.Subject != nil {
		subject = *req.Subject
	}
	if req.Body != nil {
		body = *req.Body
	}
	if err := tpl.Update(name, subject, body); err != nil {
		return nil, err
	}
	if err := s.templates.Save(ctx, tpl); err != nil {
		return nil, err
	}
	resp := ToTemplateResponse(tpl)
	return &resp, nil
}

// DeleteTemplate deletes a template. Logs keep their template_id.
func (s *EmailService) DeleteTemplate(ctx context.Context, workspaceID, id uuid.UUID) error {
	return s.templates.DeleteForWorkspace(ctx, workspaceID, id)
}

// SendEmail renders the message, records it as queued and dispatches delivery.
// Either template_id or an inline subject and body is required.
func (s *EmailService) SendEmail(ctx context.Context, workspaceID uuid.UUID, req SendEmailRequest) (*EmailLogResponse, error) {
	subject, body := req.Subject, req.Body
	if req.TemplateID != nil {
		tpl, err := s.templates.FindByIDForWorkspace(ctx, workspaceID, *req.TemplateID)
		if err != nil {
			return nil, err
		}
		subject, body = tpl.Render(req.Variables)
	} else {
		if strings.TrimSpace(subject) == "" || strings.TrimSpace(body) == "" {
			return nil, shared.Validation("Either template_id or subject and body is required")
		}
		subject, body = email.Render(subject, req.Variables), email.Render(body, req.Variables)
	}

	log, err := email.NewLog(workspaceID, req.ToEmail, subject, body)
	if err != nil {
		return nil, err
	}
	log.TemplateID = req.TemplateID
	log.DealID = req.DealID
	log.ContactID = req.ContactID
	log.SentBy = req.SentBy

	if err := s.logs.Save(ctx, log); err != nil {
		return nil, err
	}

	job := DeliveryJob{EmailLogID: log.ID, WorkspaceID: workspaceID}
	if err := s.dispatcher.Dispatch(ctx, job); err != nil {
		logger.L(ctx).Error("email dispatch failed",
			zap.String("email_log_id", log.ID.String()),
			zap.Error(err),
		)
		if markErr := log.MarkFailed("dispatch failed: " + err.Error()); markErr == nil {
			if saveErr := s.logs.Save(ctx, log); saveErr != nil {
				logger.L(ctx).Error("failed to record dispatch failure", zap.Error(saveErr))
			}
		}
		return nil, fmt.Errorf("dispatch email %s: %w", log.ID, err)
	}

	resp := ToEmailLogResponse(log)
	return &resp, nil
}

// GetEmailLog returns one log row
func (s *EmailService) GetEmailLog(ctx context.Context, workspaceID, id uuid.UUID) (*EmailLogResponse, error) {
	l, err := s.logs.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	resp := ToEmailLogResponse(l)
	return &resp, nil
}

// ListEmailLogs lists email logs, newest first by default
func (s *EmailService) ListEmailLogs(ctx context.Context, workspaceID uuid.UUID, f EmailLogListFilter) (shared.Paginated[EmailLogResponse], error) {
	filter := shared.NewFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir, f.Search)
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	for key, raw := range map[string]string{"template_id": f.TemplateID, "deal_id": f.DealID, "contact_id": f.ContactID} {
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return shared.Paginated[EmailLogResponse]{}, shared.Validation("Invalid " + key)
		}
		filter.Filters[key] = id
	}

	logs, err := s.logs.FindAllForWorkspace(ctx, workspaceID, filter)
	if err != nil {
		return shared.Paginated[EmailLogResponse]{}, err
	}
	total, err := s.logs.CountForWorkspace(ctx, workspaceID, filter)
	if err != nil {
		return shared.Paginated[EmailLogResponse]{}, err
	}
	items := make([]EmailLogResponse, len(logs))
	for i := range logs {
		items[i] = ToEmailLogResponse(&logs[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}
