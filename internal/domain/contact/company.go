package contact

import (
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/shared"
)

// CompanySize is a coarse headcount bucket
type CompanySize string

const (
	CompanySizeUnknown    CompanySize = ""
	CompanySizeSmall      CompanySize = "1-10"
	CompanySizeMedium     CompanySize = "11-50"
	CompanySizeLarge      CompanySize = "51-200"
	CompanySizeEnterprise CompanySize = "201+"
)

// Company is an organisation contacts and deals belong to
type Company struct {
	shared.WorkspaceAggregateRoot
	Name     string      `gorm:"type:varchar(200);not null"`
	Domain   string      `gorm:"type:varchar(200);index"`
	Industry string      `gorm:"type:varchar(100)"`
	Size     CompanySize `gorm:"type:varchar(20)"`
	Website  string      `gorm:"type:varchar(500)"`
	Phone    string      `gorm:"type:varchar(50)"`
	Address  string      `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Company) TableName() string {
	return "companies"
}

// NewCompany creates a company
func NewCompany(workspaceID uuid.UUID, name string) (*Company, error) {
	c := &Company{WorkspaceAggregateRoot: shared.NewWorkspaceAggregateRoot(workspaceID)}
	if err := c.Rename(name); err != nil {
		return nil, err
	}
	return c, nil
}

// Rename sets the company name
func (c *Company) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.Validation("Company name is required")
	}
	if len(name) > 200 {
		return shared.Validation("Company name cannot exceed 200 characters")
	}
	c.Name = name
	c.Touch()
	return nil
}

// SetProfile sets descriptive attributes. The domain is derived from the website when empty.
func (c *Company) SetProfile(domain, industry string, size CompanySize, website, phone, address string) error {
	switch size {
	case CompanySizeUnknown, CompanySizeSmall, CompanySizeMedium, CompanySizeLarge, CompanySizeEnterprise:
	default:
		return shared.NewDomainError("INVALID_SIZE", "Company size must be one of 1-10, 11-50, 51-200, 201+")
	}
	website = strings.TrimSpace(website)
	if website != "" {
		u, err := url.Parse(website)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return shared.NewDomainError("INVALID_WEBSITE", "Website must be an http(s) URL")
		}
		if domain == "" {
			domain = u.Hostname()
		}
	}
	c.Domain = NormalizeDomain(domain)
	c.Industry = strings.TrimSpace(industry)
	c.Size = size
	c.Website = website
	c.Phone = strings.TrimSpace(phone)
	c.Address = strings.TrimSpace(address)
	c.Touch()
	return nil
}

// NormalizeDomain lowercases a domain and strips a leading www.
func NormalizeDomain(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	return strings.TrimPrefix(domain, "www.")
}
