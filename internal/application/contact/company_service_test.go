package contact

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/contact"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCompanyService_CreateCompany_DerivesDomain(t *testing.T) {
	companies := new(MockCompanyRepository)
	svc := NewCompanyService(companies)
	ctx := context.Background()
	companies.On("Save", ctx, mock.AnythingOfType("*contact.Company")).Return(nil)

	resp, err := svc.CreateCompany(ctx, uuid.New(), CompanyRequest{
		Name:    "Initech",
		Website: "https://www.Initech.com/about",
		Size:    "51-200",
	})

	require.NoError(t, err)
	assert.Equal(t, "initech.com", resp.Domain)
	assert.Equal(t, "51-200", resp.Size)
}

func TestCompanyService_CreateCompany_InvalidSize(t *testing.T) {
	companies := new(MockCompanyRepository)
	svc := NewCompanyService(companies)

	_, err := svc.CreateCompany(context.Background(), uuid.New(), CompanyRequest{Name: "Initech", Size: "huge"})

	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "INVALID_SIZE", de.Code)
	companies.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCompanyService_DeleteCompany(t *testing.T) {
	companies := new(MockCompanyRepository)
	svc := NewCompanyService(companies)
	ctx := context.Background()
	ws := uuid.New()
	c, err := contact.NewCompany(ws, "Initech")
	require.NoError(t, err)

	companies.On("FindByIDForWorkspace", ctx, ws, c.ID).Return(c, nil)
	companies.On("DeleteForWorkspace", ctx, ws, c.ID).Return(nil)
	require.NoError(t, svc.DeleteCompany(ctx, ws, c.ID))

	missing := uuid.New()
	companies.On("FindByIDForWorkspace", ctx, ws, missing).Return(nil, shared.NotFound("Company"))
	assert.ErrorIs(t, svc.DeleteCompany(ctx, ws, missing), shared.ErrNotFound)
	companies.AssertNumberOfCalls(t, "DeleteForWorkspace", 1)
}

func TestCompanyService_ListCompanies_Filters(t *testing.T) {
	companies := new(MockCompanyRepository)
	svc := NewCompanyService(companies)
	ctx := context.Background()
	ws := uuid.New()
	c, _ := contact.NewCompany(ws, "Initech")

	matches := mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["industry"] == "software" && f.Page == 2 && f.PageSize == 5
	})
	companies.On("FindAllForWorkspace", ctx, ws, matches).Return([]contact.Company{*c}, nil)
	companies.On("CountForWorkspace", ctx, ws, matches).Return(int64(6), nil)

	page, err := svc.ListCompanies(ctx, ws, CompanyListFilter{Industry: "software", Page: 2, PageSize: 5})

	require.NoError(t, err)
	assert.Equal(t, int64(6), page.Total)
	assert.Equal(t, 2, page.TotalPages)
}
