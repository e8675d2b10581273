package handler

import (
	"github.com/gin-gonic/gin"
	emailapp "github.com/salescrm/backend/internal/application/email"
)

// EmailHandler serves templates and outbound email
type EmailHandler struct {
	BaseHandler
	emails *emailapp.EmailService
}

// NewEmailHandler creates an EmailHandler
func NewEmailHandler(emails *emailapp.EmailService) *EmailHandler {
	return &EmailHandler{emails: emails}
}

// CreateTemplate godoc
// @ID           createEmailTemplate
// @Summary      Create an email template
// @Description  Subject and body may contain {{placeholder}} variables.
// @Tags         email
// @Accept       json
// @Produce      json
// @Param        request body emailapp.CreateTemplateRequest true "Template"
// @Success      201 {object} APIResponse[emailapp.TemplateResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /email/templates [post]
func (h *EmailHandler) CreateTemplate(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	var req emailapp.CreateTemplateRequest
	if !h.BindJSON(c, &req) {
		return
	}
	req.CreatedBy = h.Actor(c)
	tpl, err := h.emails.CreateTemplate(c.Request.Context(), wsID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tpl)
}

// ListTemplates godoc
// @ID           listEmailTemplates
// @Summary      List email templates
// @Tags         email
// @Produce      json
// @Param        search    query string false "Name search"
// @Param        page      query int    false "Page"
// @Param        page_size query int    false "Page size"
// @Success      200 {object} APIResponse[[]emailapp.TemplateResponse]
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /email/templates [get]
func (h *EmailHandler) ListTemplates(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	var filter emailapp.TemplateListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	page, err := h.emails.ListTemplates(c.Request.Context(), wsID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// GetTemplate godoc
// @ID           getEmailTemplate
// @Summary      Get an email template
// @Tags         email
// @Produce      json
// @Param        id path string true "Template ID"
// @Success      200 {object} APIResponse[emailapp.TemplateResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /email/templates/{id} [get]
func (h *EmailHandler) GetTemplate(c *gin.Context) {
	wsID, id, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	tpl, err := h.emails.GetTemplate(c.Request.Context(), wsID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tpl)
}

// UpdateTemplate godoc
// @ID           updateEmailTemplate
// @Summary      Update an email template
// @Tags         email
// @Accept       json
// @Produce      json
// @Param        id path string true "Template ID"
// @Param        request body emailapp.UpdateTemplateRequest true "Changes"
// @Success      200 {object} APIResponse[emailapp.TemplateResponse]
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /email/templates/{id} [patch]
func (h *EmailHandler) UpdateTemplate(c *gin.Context) {
	wsID, id, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	var req emailapp.UpdateTemplateRequest
	if !h.BindJSON(c, &req) {
		return
	}
	tpl, err := h.emails.UpdateTemplate(c.Request.Context(), wsID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tpl)
}

// DeleteTemplate godoc
// @ID           deleteEmailTemplate
// @Summary      Delete an email template
// @Tags         email
// @Param        id path string true "Template ID"
// @Success      204
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /email/templates/{id} [delete]
func (h *EmailHandler) DeleteTemplate(c *gin.Context) {
	wsID, id, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	if err := h.emails.DeleteTemplate(c.Request.Context(), wsID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Send godoc
// @ID           sendEmail
// @Summary      Queue an email
// @Description  Renders a template or inline subject and body, then queues delivery. Poll the log for the outcome.
// @Tags         email
// @Accept       json
// @Produce      json
// @Param        request body emailapp.SendEmailRequest true "Message"
// @Success      202 {object} APIResponse[emailapp.EmailLogResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /email/send [post]
func (h *EmailHandler) Send(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	var req emailapp.SendEmailRequest
	if !h.BindJSON(c, &req) {
		return
	}
	req.SentBy = h.Actor(c)
	log, err := h.emails.SendEmail(c.Request.Context(), wsID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Accepted(c, log)
}

// ListLogs godoc
// @ID           listEmailLogs
// @Summary      List sent and queued email
// @Tags         email
// @Produce      json
// @Param        status      query string false "queued, sent or failed"
// @Param        template_id query string false "Template ID"
// @Param        deal_id     query string false "Deal ID"
// @Param        page        query int    false "Page"
// @Param        page_size   query int    false "Page size"
// @Success      200 {object} APIResponse[[]emailapp.EmailLogResponse]
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /email/logs [get]
func (h *EmailHandler) ListLogs(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	var filter emailapp.EmailLogListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	page, err := h.emails.ListEmailLogs(c.Request.Context(), wsID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// GetLog godoc
// @ID           getEmailLog
// @Summary      Get an email log entry
// @Tags         email
// @Produce      json
// @Param        id path string true "Email log ID"
// @Success      200 {object} APIResponse[emailapp.EmailLogResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /email/logs/{id} [get]
func (h *EmailHandler) GetLog(c *gin.Context) {
	wsID, id, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	log, err := h.emails.GetEmailLog(c.Request.Context(), wsID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, log)
}
