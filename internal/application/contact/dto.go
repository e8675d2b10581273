package contact

import (
	"time"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/contact"
)

// CreateContactRequest creates a contact
type CreateContactRequest struct {
	FirstName string     `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string     `json:"last_name" binding:"max=100"`
	Email     string     `json:"email" binding:"omitempty,email,max=320"`
	Phone     string     `json:"phone" binding:"max=50"`
	JobTitle  string     `json:"job_title" binding:"max=150"`
	CompanyID *uuid.UUID `json:"company_id"`
	OwnerID   *uuid.UUID `json:"owner_id"`
	Tags      []string   `json:"tags" binding:"omitempty,max=50"`
}

// UpdateContactRequest changes a contact. Omitted fields keep their value.
type UpdateContactRequest struct {
	FirstName    *string    `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName     *string    `json:"last_name" binding:"omitempty,max=100"`
	Email        *string    `json:"email" binding:"omitempty,max=320"`
	Phone        *string    `json:"phone" binding:"omitempty,max=50"`
	JobTitle     *string    `json:"job_title" binding:"omitempty,max=150"`
	CompanyID    *uuid.UUID `json:"company_id"`
	OwnerID      *uuid.UUID `json:"owner_id"`
	Tags         []string   `json:"tags" binding:"omitempty,max=50"`
	ClearCompany bool       `json:"clear_company"`
	ClearOwner   bool       `json:"clear_owner"`
}

// ContactListFilter filters contacts
type ContactListFilter struct {
	Search    string `form:"search"`
	CompanyID string `form:"company_id" binding:"omitempty,uuid"`
	OwnerID   string `form:"owner_id" binding:"omitempty,uuid"`
	Tag       string `form:"tag"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ContactResponse is a contact
type ContactResponse struct {
	ID        uuid.UUID  `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	FullName  string     `json:"full_name"`
	Email     string     `json:"email,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	JobTitle  string     `json:"job_title,omitempty"`
	CompanyID *uuid.UUID `json:"company_id,omitempty"`
	OwnerID   *uuid.UUID `json:"owner_id,omitempty"`
	Tags      []string   `json:"tags"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ToContactResponse converts a domain contact
func ToContactResponse(c *contact.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		FullName:  c.FullName(),
		Email:     c.Email,
		Phone:     c.Phone,
		JobTitle:  c.JobTitle,
		CompanyID: c.CompanyID,
		OwnerID:   c.OwnerID,
		Tags:      c.TagList(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CompanyRequest creates or updates a company
type CompanyRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Domain   string `json:"domain" binding:"omitempty,max=200"`
	Industry string `json:"industry" binding:"max=100"`
	Size     string `json:"size" binding:"omitempty,oneof=1-10 11-50 51-200 201+"`
	Website  string `json:"website" binding:"omitempty,url,max=500"`
	Phone    string `json:"phone" binding:"max=50"`
	Address  string `json:"address" binding:"max=2000"`
}

// CompanyListFilter filters companies
type CompanyListFilter struct {
	Search   string `form:"search"`
	Industry string `form:"industry"`
	Size     string `form:"size"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CompanyResponse is a company
type CompanyResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Domain    string    `json:"domain,omitempty"`
	Industry  string    `json:"industry,omitempty"`
	Size      string    `json:"size,omitempty"`
	Website   string    `json:"website,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCompanyResponse converts a domain company
func ToCompanyResponse(c *contact.Company) CompanyResponse {
	return CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Domain:    c.Domain,
		Industry:  c.Industry,
		Size:      string(c.Size),
		Website:   c.Website,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
