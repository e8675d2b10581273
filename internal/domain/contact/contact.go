package contact

import (
	"encoding/json"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/shared"
)

// Contact is a person the workspace sells to
type Contact struct {
	shared.WorkspaceAggregateRoot
	CompanyID *uuid.UUID `gorm:"type:uuid;index"`
	FirstName string     `gorm:"type:varchar(100);not null"`
	LastName  string     `gorm:"type:varchar(100)"`
	Email     string     `gorm:"type:varchar(320);index"`
	Phone     string     `gorm:"type:varchar(50)"`
	JobTitle  string     `gorm:"type:varchar(150)"`
	OwnerID   *uuid.UUID `gorm:"type:uuid;index"`
	Tags      string     `gorm:"type:jsonb;not null;default:'[]'"`
}

// TableName returns the table name for GORM
func (Contact) TableName() string {
	return "contacts"
}

// NewContact creates a contact
func NewContact(workspaceID uuid.UUID, firstName, lastName string) (*Contact, error) {
	c := &Contact{
		WorkspaceAggregateRoot: shared.NewWorkspaceAggregateRoot(workspaceID),
		Tags:                   "[]",
	}
	if err := c.Rename(firstName, lastName); err != nil {
		return nil, err
	}
	return c, nil
}

// Rename sets the contact's name
func (c *Contact) Rename(firstName, lastName string) error {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" {
		return shared.Validation("First name is required")
	}
	if len(firstName) > 100 || len(lastName) > 100 {
		return shared.Validation("Names cannot exceed 100 characters")
	}
	c.FirstName = firstName
	c.LastName = lastName
	c.Touch()
	return nil
}

// SetContactInfo sets email, phone and job title. Email may be empty.
func (c *Contact) SetContactInfo(email, phone, jobTitle string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}
	if len(phone) > 50 {
		return shared.Validation("Phone cannot exceed 50 characters")
	}
	if len(jobTitle) > 150 {
		return shared.Validation("Job title cannot exceed 150 characters")
	}
	c.Email = email
	c.Phone = strings.TrimSpace(phone)
	c.JobTitle = strings.TrimSpace(jobTitle)
	c.Touch()
	return nil
}

// SetCompany links the contact to a company (nil detaches)
func (c *Contact) SetCompany(companyID *uuid.UUID) {
	c.CompanyID = companyID
	c.Touch()
}

// SetOwner assigns the responsible user (nil clears)
func (c *Contact) SetOwner(ownerID *uuid.UUID) {
	c.OwnerID = ownerID
	c.Touch()
}

// SetTags replaces the tag list, dropping blanks and duplicates
func (c *Contact) SetTags(tags []string) error {
	cleaned := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if len(tag) > 50 {
			return shared.Validation("Tags cannot exceed 50 characters")
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		cleaned = append(cleaned, tag)
	}
	b, err := json.Marshal(cleaned)
	if err != nil {
		return err
	}
	c.Tags = string(b)
	c.Touch()
	return nil
}

// TagList decodes the stored tags
func (c *Contact) TagList() []string {
	var tags []string
	if err := json.Unmarshal([]byte(c.Tags), &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}

// FullName joins first and last name
func (c *Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
