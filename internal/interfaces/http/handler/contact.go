package handler

import (
	"github.com/gin-gonic/gin"
	contactapp "github.com/salescrm/backend/internal/application/contact"
)

// ContactHandler serves contacts and companies
type ContactHandler struct {
	BaseHandler
	contacts  *contactapp.ContactService
	companies *contactapp.CompanyService
}

// NewContactHandler creates a ContactHandler
func NewContactHandler(contacts *contactapp.ContactService, companies *contactapp.CompanyService) *ContactHandler {
	return &ContactHandler{contacts: contacts, companies: companies}
}

// CreateContact godoc
// @ID           createContact
// @Summary      Create a contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        request body contactapp.CreateContactRequest true "Contact"
// @Success      201 {object} APIResponse[contactapp.ContactResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /contacts [post]
func (h *ContactHandler) CreateContact(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	var req contactapp.CreateContactRequest
	if !h.BindJSON(c, &req) {
		return
	}
	contact, err := h.contacts.CreateContact(c.Request.Context(), wsID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, contact)
}

// ListContacts godoc
// @ID           listContacts
// @Summary      List contacts
// @Tags         contacts
// @Produce      json
// @Param        search     query string false "Search names and email"
// @Param        company_id query string false "Company ID"
// @Param        owner_id   query string false "Owner ID"
// @Param        tag        query string false "Tag"
// @Param        page       query int    false "Page"
// @Param        page_size  query int    false "Page size"
// @Success      200 {object} APIResponse[[]contactapp.ContactResponse]
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /contacts [get]
func (h *ContactHandler) ListContacts(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	var filter contactapp.ContactListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	page, err := h.contacts.ListContacts(c.Request.Context(), wsID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// GetContact godoc
// @ID           getContact
// @Summary      Get a contact
// @Tags         contacts
// @Produce      json
// @Param        id path string true "Contact ID"
// @Success      200 {object} APIResponse[contactapp.ContactResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /contacts/{id} [get]
func (h *ContactHandler) GetContact(c *gin.Context) {
	wsID, id, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	contact, err := h.contacts.GetContact(c.Request.Context(), wsID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contact)
}

// UpdateContact godoc
// @ID           updateContact
// @Summary      Update a contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        id path string true "Contact ID"
// @Param        request body contactapp.UpdateContactRequest true "Changes"
// @Success      200 {object} APIResponse[contactapp.ContactResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /contacts/{id} [patch]
func (h *ContactHandler) UpdateContact(c *gin.Context) {
	wsID, id, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	var req contactapp.UpdateContactRequest
	if !h.BindJSON(c, &req) {
		return
	}
	contact, err := h.contacts.UpdateContact(c.Request.Context(), wsID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contact)
}

// DeleteContact godoc
// @ID           deleteContact
// @Summary      Delete a contact
// @Tags         contacts
// @Param        id path string true "Contact ID"
// @Success      204
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /contacts/{id} [delete]
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	wsID, id, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	if err := h.contacts.DeleteContact(c.Request.Context(), wsID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateCompany godoc
// @ID           createCompany
// @Summary      Create a company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        request body contactapp.CompanyRequest true "Company"
// @Success      201 {object} APIResponse[contactapp.CompanyResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /companies [post]
func (h *ContactHandler) CreateCompany(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	var req contactapp.CompanyRequest
	if !h.BindJSON(c, &req) {
		return
	}
	company, err := h.companies.CreateCompany(c.Request.Context(), wsID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, company)
}

// ListCompanies godoc
// @ID           listCompanies
// @Summary      List companies
// @Tags         companies
// @Produce      json
// @Param        search    query string false "Search name and domain"
// @Param        industry  query string false "Industry"
// @Param        size      query string false "Size bucket"
// @Param        page      query int    false "Page"
// @Param        page_size query int    false "Page size"
// @Success      200 {object} APIResponse[[]contactapp.CompanyResponse]
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /companies [get]
func (h *ContactHandler) ListCompanies(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	var filter contactapp.CompanyListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	page, err := h.companies.ListCompanies(c.Request.Context(), wsID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// GetCompany godoc
// @ID           getCompany
// @Summary      Get a company
// @Tags         companies
// @Produce      json
// @Param        id path string true "Company ID"
// @Success      200 {object} APIResponse[contactapp.CompanyResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /companies/{id} [get]
func (h *ContactHandler) GetCompany(c *gin.Context) {
	wsID, id, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	company, err := h.companies.GetCompany(c.Request.Context(), wsID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, company)
}

// UpdateCompany godoc
// @ID           updateCompany
// @Summary      Replace a company's details
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        id path string true "Company ID"
// @Param        request body contactapp.CompanyRequest true "Company"
// @Success      200 {object} APIResponse[contactapp.CompanyResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /companies/{id} [put]
func (h *ContactHandler) UpdateCompany(c *gin.Context) {
	wsID, id, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	var req contactapp.CompanyRequest
	if !h.BindJSON(c, &req) {
		return
	}
	company, err := h.companies.UpdateCompany(c.Request.Context(), wsID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, company)
}

// DeleteCompany godoc
// @ID           deleteCompany
// @Summary      Delete a company
// @Description  Contacts of the company are detached, not deleted
// @Tags         companies
// @Param        id path string true "Company ID"
// @Success      204
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /companies/{id} [delete]
func (h *ContactHandler) DeleteCompany(c *gin.Context) {
	wsID, id, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	if err := h.companies.DeleteCompany(c.Request.Context(), wsID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
