package contact

import (
	"context"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/contact"
	"github.com/salescrm/backend/internal/domain/shared"
)

// ContactService manages contacts
type ContactService struct {
	contacts  contact.ContactRepository
	companies contact.CompanyRepository
}

// NewContactService creates a ContactService
func NewContactService(contacts contact.ContactRepository, companies contact.CompanyRepository) *ContactService {
	return &ContactService{contacts: contacts, companies: companies}
}

// CreateContact creates a contact, optionally linked to a company of the same workspace
func (s *ContactService) CreateContact(ctx context.Context, workspaceID uuid.UUID, req CreateContactRequest) (*ContactResponse, error) {
	c, err := contact.NewContact(workspaceID, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}
	if err := c.SetContactInfo(req.Email, req.Phone, req.JobTitle); err != nil {
		return nil, err
	}
	if err := c.SetTags(req.Tags); err != nil {
		return nil, err
	}
	if req.CompanyID != nil {
		if err := s.ensureCompany(ctx, workspaceID, *req.CompanyID); err != nil {
			return nil, err
		}
		c.SetCompany(req.CompanyID)
	}
	c.SetOwner(req.OwnerID)

	if err := s.contacts.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToContactResponse(c)
	return &resp, nil
}

// GetContact returns one contact
func (s *ContactService) GetContact(ctx context.Context, workspaceID, id uuid.UUID) (*ContactResponse, error) {
	c, err := s.contacts.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	resp := ToContactResponse(c)
	return &resp, nil
}

// ListContacts searches names and email and filters by company, owner or tag
func (s *ContactService) ListContacts(ctx context.Context, workspaceID uuid.UUID, f ContactListFilter) (shared.Paginated[ContactResponse], error) {
	filter := shared.NewFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir, f.Search)
	for key, raw := range map[string]string{"company_id": f.CompanyID, "owner_id": f.OwnerID} {
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return shared.Paginated[ContactResponse]{}, shared.Validation("Invalid " + key)
		}
		filter.Filters[key] = id
	}
	if f.Tag != "" {
		filter.Filters["tag"] = f.Tag
	}

	list, err := s.contacts.FindAllForWorkspace(ctx, workspaceID, filter)
	if err != nil {
		return shared.Paginated[ContactResponse]{}, err
	}
	total, err := s.contacts.CountForWorkspace(ctx, workspaceID, filter)
	if err != nil {
		return shared.Paginated[ContactResponse]{}, err
	}
	items := make([]ContactResponse, len(list))
	for i := range list {
		items[i] = ToContactResponse(&list[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// UpdateContact changes a contact. Omitted fields keep their value.
func (s *ContactService) UpdateContact(ctx context.Context, workspaceID, id uuid.UUID, req UpdateContactRequest) (*ContactResponse, error) {
	c, err := s.contacts.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}

	first, last := c.FirstName, c.LastName
	if req.FirstName != nil {
		first = *req.FirstName
	}
	if req.LastName != nil {
		last = *req.LastName
	}
	if err := c.Rename(first, last); err != nil {
		return nil, err
	}

	email, phone, job := c.Email, c.Phone, c.JobTitle
	if req.Email != nil {
		email = *req.Email
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if req.JobTitle != nil {
		job = *req.JobTitle
	}
	if err := c.SetContactInfo(email, phone, job); err != nil {
		return nil, err
	}

	if req.Tags != nil {
		if err := c.SetTags(req.Tags); err != nil {
			return nil, err
		}
	}

	switch {
	case req.ClearCompany:
		c.SetCompany(nil)
	case req.CompanyID != nil:
		if err := s.ensureCompany(ctx, workspaceID, *req.CompanyID); err != nil {
			return nil, err
		}
		c.SetCompany(req.CompanyID)
	}
	switch {
	case req.ClearOwner:
		c.SetOwner(nil)
	case req.OwnerID != nil:
		c.SetOwner(req.OwnerID)
	}

	if err := s.contacts.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToContactResponse(c)
	return &resp, nil
}

// DeleteContact deletes a contact. Deals, tasks and notes keep a null link.
func (s *ContactService) DeleteContact(ctx context.Context, workspaceID, id uuid.UUID) error {
	return s.contacts.DeleteForWorkspace(ctx, workspaceID, id)
}

func (s *ContactService) ensureCompany(ctx context.Context, workspaceID, companyID uuid.UUID) error {
	_, err := s.companies.FindByIDForWorkspace(ctx, workspaceID, companyID)
	return err
}
