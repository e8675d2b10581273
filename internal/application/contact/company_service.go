package contact

import (
	"context"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/contact"
	"github.com/salescrm/backend/internal/domain/shared"
)

// CompanyService manages companies
type CompanyService struct {
	companies contact.CompanyRepository
}

// NewCompanyService creates a CompanyService
func NewCompanyService(companies contact.CompanyRepository) *CompanyService {
	return &CompanyService{companies: companies}
}

// CreateCompany creates a company
func (s *CompanyService) CreateCompany(ctx context.Context, workspaceID uuid.UUID, req CompanyRequest) (*CompanyResponse, error) {
	c, err := contact.NewCompany(workspaceID, req.Name)
	if err != nil {
		return nil, err
	}
	if err := c.SetProfile(req.Domain, req.Industry, contact.CompanySize(req.Size), req.Website, req.Phone, req.Address); err != nil {
		return nil, err
	}
	if err := s.companies.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToCompanyResponse(c)
	return &resp, nil
}

// GetCompany returns one company
func (s *CompanyService) GetCompany(ctx context.Context, workspaceID, id uuid.UUID) (*CompanyResponse, error) {
	c, err := s.companies.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	resp := ToCompanyResponse(c)
	return &resp, nil
}

// ListCompanies searches name and domain and filters by industry or size
func (s *CompanyService) ListCompanies(ctx context.Context, workspaceID uuid.UUID, f CompanyListFilter) (shared.Paginated[CompanyResponse], error) {
	filter := shared.NewFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir, f.Search)
	if f.Industry != "" {
		filter.Filters["industry"] = f.Industry
	}
	if f.Size != "" {
		filter.Filters["size"] = f.Size
	}
	list, err := s.companies.FindAllForWorkspace(ctx, workspaceID, filter)
	if err != nil {
		return shared.Paginated[CompanyResponse]{}, err
	}
	total, err := s.companies.CountForWorkspace(ctx, workspaceID, filter)
	if err != nil {
		return shared.Paginated[CompanyResponse]{}, err
	}
	items := make([]CompanyResponse, len(list))
	for i := range list {
		items[i] = ToCompanyResponse(&list[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// UpdateCompany replaces a company's attributes
func (s *CompanyService) UpdateCompany(ctx context.Context, workspaceID, id uuid.UUID, req CompanyRequest) (*CompanyResponse, error) {
	c, err := s.companies.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if err := c.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := c.SetProfile(req.Domain, req.Industry, contact.CompanySize(req.Size), req.Website, req.Phone, req.Address); err != nil {
		return nil, err
	}
	if err := s.companies.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToCompanyResponse(c)
	return &resp, nil
}

// DeleteCompany deletes a company and detaches its contacts in the same transaction
func (s *CompanyService) DeleteCompany(ctx context.Context, workspaceID, id uuid.UUID) error {
	if _, err := s.companies.FindByIDForWorkspace(ctx, workspaceID, id); err != nil {
		return err
	}
	return s.companies.DeleteForWorkspace(ctx, workspaceID, id)
}
