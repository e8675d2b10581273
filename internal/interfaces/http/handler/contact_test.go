package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	contactapp "github.com/salescrm/backend/internal/application/contact"
	"github.com/salescrm/backend/internal/domain/contact"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/salescrm/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockContactRepo struct{ mock.Mock }

func (m *mockContactRepo) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*contact.Contact, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contact.Contact), args.Error(1)
}

func (m *mockContactRepo) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) ([]contact.Contact, error) {
	args := m.Called(ctx, workspaceID, filter)
	return args.Get(0).([]contact.Contact), args.Error(1)
}

func (m *mockContactRepo) CountForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, workspaceID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockContactRepo) Save(ctx context.Context, c *contact.Contact) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockContactRepo) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	return m.Called(ctx, workspaceID, id).Error(0)
}

type mockCompanyRepo struct{ mock.Mock }

func (m *mockCompanyRepo) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*contact.Company, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contact.Company), args.Error(1)
}

func (m *mockCompanyRepo) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) ([]contact.Company, error) {
	args := m.Called(ctx, workspaceID, filter)
	return args.Get(0).([]contact.Company), args.Error(1)
}

func (m *mockCompanyRepo) CountForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, workspaceID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCompanyRepo) Save(ctx context.Context, c *contact.Company) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCompanyRepo) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	return m.Called(ctx, workspaceID, id).Error(0)
}

type contactFixture struct {
	workspaceID uuid.UUID
	contacts    *mockContactRepo
	companies   *mockCompanyRepo
	router      *gin.Engine
}

func newContactFixture() *contactFixture {
	f := &contactFixture{
		workspaceID: uuid.New(),
		contacts:    new(mockContactRepo),
		companies:   new(mockCompanyRepo),
	}
	h := NewContactHandler(
		contactapp.NewContactService(f.contacts, f.companies),
		contactapp.NewCompanyService(f.companies),
	)
	r := gin.New()
	g := r.Group("/api/v1", withWorkspace(f.workspaceID, nil))
	g.POST("/contacts", h.CreateContact)
	g.GET("/contacts", h.ListContacts)
	g.GET("/contacts/:id", h.GetContact)
	g.DELETE("/contacts/:id", h.DeleteContact)
	f.router = r
	return f
}

func TestContactHandler_CreateContact(t *testing.T) {
	f := newContactFixture()
	f.contacts.On("Save", mock.Anything, mock.MatchedBy(func(c *contact.Contact) bool {
		return c.WorkspaceID == f.workspaceID && c.FirstName == "Grace"
	})).Return(nil)

	w := doJSON(t, f.router, http.MethodPost, "/api/v1/contacts", map[string]any{
		"first_name": "Grace",
		"last_name":  "Hopper",
		"email":      "grace@example.com",
		"tags":       []string{"vip"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Success bool                       `json:"success"`
		Data    contactapp.ContactResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Grace Hopper", resp.Data.FullName)
	assert.Equal(t, []string{"vip"}, resp.Data.Tags)
	f.contacts.AssertExpectations(t)
}

func TestContactHandler_CreateContact_Validation(t *testing.T) {
	f := newContactFixture()

	w := doJSON(t, f.router, http.MethodPost, "/api/v1/contacts", map[string]any{"email": "not-an-email"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.NotEmpty(t, resp.Error.Details)
	f.contacts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestContactHandler_CreateContact_UnknownCompany(t *testing.T) {
	f := newContactFixture()
	companyID := uuid.New()
	f.companies.On("FindByIDForWorkspace", mock.Anything, f.workspaceID, companyID).Return(nil, shared.NotFound("Company"))

	w := doJSON(t, f.router, http.MethodPost, "/api/v1/contacts", map[string]any{
		"first_name": "Alan",
		"company_id": companyID,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrCodeNotFound, decodeResponse(t, w).Error.Code)
}

func TestContactHandler_GetContact(t *testing.T) {
	f := newContactFixture()
	c, err := contact.NewContact(f.workspaceID, "Ada", "Lovelace")
	require.NoError(t, err)
	f.contacts.On("FindByIDForWorkspace", mock.Anything, f.workspaceID, c.ID).Return(c, nil)

	missing := uuid.New()
	f.contacts.On("FindByIDForWorkspace", mock.Anything, f.workspaceID, missing).Return(nil, shared.NotFound("Contact"))

	w := doJSON(t, f.router, http.MethodGet, "/api/v1/contacts/"+c.ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, f.router, http.MethodGet, "/api/v1/contacts/"+missing.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContactHandler_ListContacts(t *testing.T) {
	f := newContactFixture()
	a, _ := contact.NewContact(f.workspaceID, "Ada", "")
	b, _ := contact.NewContact(f.workspaceID, "Bob", "")
	f.contacts.On("FindAllForWorkspace", mock.Anything, f.workspaceID, mock.Anything).Return([]contact.Contact{*a, *b}, nil)
	f.contacts.On("CountForWorkspace", mock.Anything, f.workspaceID, mock.Anything).Return(int64(7), nil)

	w := doJSON(t, f.router, http.MethodGet, "/api/v1/contacts?page=1&page_size=2&search=a", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(7), resp.Meta.Total)
	assert.Equal(t, 4, resp.Meta.TotalPages)
	assert.Len(t, resp.Data, 2)

	w = doJSON(t, f.router, http.MethodGet, "/api/v1/contacts?page_size=500", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, f.router, http.MethodGet, "/api/v1/contacts?company_id=oops", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestContactHandler_DeleteContact(t *testing.T) {
	f := newContactFixture()
	id := uuid.New()
	f.contacts.On("DeleteForWorkspace", mock.Anything, f.workspaceID, id).Return(nil)

	w := doJSON(t, f.router, http.MethodDelete, "/api/v1/contacts/"+id.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	f.contacts.AssertExpectations(t)
}
