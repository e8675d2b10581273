package identity

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/shared"
)

// APIKeyPrefix starts every issued key
const APIKeyPrefix = "crm"

const (
	prefixBytes = 6
	secretBytes = 24
)

// APIKey grants programmatic access to one workspace.
// The secret is only ever stored as a hash.
type APIKey struct {
	shared.WorkspaceEntity
	Name       string     `gorm:"type:varchar(100);not null"`
	Prefix     string     `gorm:"type:varchar(32);not null;uniqueIndex"`
	KeyHash    string     `gorm:"type:varchar(100);not null"`
	CreatedBy  *uuid.UUID `gorm:"type:uuid"`
	LastUsedAt *time.Time
	RevokedAt  *time.Time
}

// TableName returns the table name for GORM
func (APIKey) TableName() string {
	return "api_keys"
}

// GeneratedKey is a freshly minted key. Plaintext is shown to the caller once.
type GeneratedKey struct {
	Prefix    string
	Secret    string
	Plaintext string
}

// GenerateAPIKey mints a random key of the form crm_<prefix>_<secret>
func GenerateAPIKey() (GeneratedKey, error) {
	p := make([]byte, prefixBytes)
	s := make([]byte, secretBytes)
	if _, err := rand.Read(p); err != nil {
		return GeneratedKey{}, err
	}
	if _, err := rand.Read(s); err != nil {
		return GeneratedKey{}, err
	}
	prefix := hex.EncodeToString(p)
	secret := hex.EncodeToString(s)
	return GeneratedKey{
		Prefix:    prefix,
		Secret:    secret,
		Plaintext: APIKeyPrefix + "_" + prefix + "_" + secret,
	}, nil
}

// ParseAPIKey splits a raw key into its lookup prefix and secret
func ParseAPIKey(raw string) (prefix, secret string, err error) {
	parts := strings.Split(strings.TrimSpace(raw), "_")
	if len(parts) != 3 || parts[0] != APIKeyPrefix || parts[1] == "" || parts[2] == "" {
		return "", "", shared.NewDomainError("UNAUTHORIZED", "Malformed API key")
	}
	return parts[1], parts[2], nil
}

// LooksLikeAPIKey reports whether a bearer credential is an API key rather than a JWT
func LooksLikeAPIKey(raw string) bool {
	return strings.HasPrefix(raw, APIKeyPrefix+"_")
}

// NewAPIKey creates a key record from a hashed secret
func NewAPIKey(workspaceID uuid.UUID, name, prefix, hash string, createdBy *uuid.UUID) (*APIKey, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.Validation("API key name is required")
	}
	if len(name) > 100 {
		return nil, shared.Validation("API key name cannot exceed 100 characters")
	}
	return &APIKey{
		WorkspaceEntity: shared.NewWorkspaceEntity(workspaceID),
		Name:            name,
		Prefix:          prefix,
		KeyHash:         hash,
		CreatedBy:       createdBy,
	}, nil
}

// IsRevoked reports whether the key was revoked
func (k *APIKey) IsRevoked() bool {
	return k.RevokedAt != nil
}

// Revoke disables the key
func (k *APIKey) Revoke() error {
	if k.IsRevoked() {
		return shared.NewDomainError("INVALID_STATE", "API key is already revoked")
	}
	now := time.Now()
	k.RevokedAt = &now
	k.UpdatedAt = now
	return nil
}
