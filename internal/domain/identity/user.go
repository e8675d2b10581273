package identity

import (
	"net/mail"
	"strings"

	"github.com/salescrm/backend/internal/domain/shared"
)

// User is a person known to the CRM. Credentials live with the hosted auth provider;
// ExternalID is the provider's subject claim.
type User struct {
	shared.BaseEntity
	Email      string `gorm:"type:varchar(320);not null;uniqueIndex"`
	FullName   string `gorm:"type:varchar(200)"`
	AvatarURL  string `gorm:"type:text"`
	ExternalID string `gorm:"type:varchar(200);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a user synced from the auth provider
func NewUser(externalID, email, fullName string) (*User, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, shared.Validation("External user ID is required")
	}
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	return &User{
		BaseEntity: shared.NewBaseEntity(),
		Email:      email,
		FullName:   strings.TrimSpace(fullName),
		ExternalID: externalID,
	}, nil
}

// UpdateProfile refreshes the profile fields from the auth provider
func (u *User) UpdateProfile(email, fullName, avatarURL string) error {
	email, err := NormalizeEmail(email)
	if err != nil {
		return err
	}
	u.Email = email
	u.FullName = strings.TrimSpace(fullName)
	u.AvatarURL = strings.TrimSpace(avatarURL)
	u.Touch()
	return nil
}

// NormalizeEmail validates an address and lowercases it
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", shared.Validation("Email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return email, nil
}
