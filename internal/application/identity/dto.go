package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/identity"
)

// CreateWorkspaceRequest provisions a workspace for the calling user
type CreateWorkspaceRequest struct {
	Name     string    `json:"name" binding:"required,min=1,max=200"`
	Slug     string    `json:"slug" binding:"omitempty,max=100"`
	Currency string    `json:"currency" binding:"omitempty,len=3"`
	OwnerID  uuid.UUID `json:"-"`
}

// UpdateWorkspaceRequest changes workspace settings
type UpdateWorkspaceRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=200"`
	Currency *string `json:"currency" binding:"omitempty,len=3"`
}

// WorkspaceResponse is a workspace
type WorkspaceResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToWorkspaceResponse converts a domain workspace
func ToWorkspaceResponse(w *identity.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		ID:        w.ID,
		Name:      w.Name,
		Slug:      w.Slug,
		OwnerID:   w.OwnerID,
		Currency:  w.Currency,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// SyncUserRequest mirrors a user from the hosted auth provider
type SyncUserRequest struct {
	ExternalID string `json:"external_id" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	FullName   string `json:"full_name" binding:"max=200"`
	AvatarURL  string `json:"avatar_url" binding:"omitempty,url"`
}

// UserResponse is a user
type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	ExternalID string    `json:"external_id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	AvatarURL  string    `json:"avatar_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToUserResponse converts a domain user
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		ExternalID: u.ExternalID,
		Email:      u.Email,
		FullName:   u.FullName,
		AvatarURL:  u.AvatarURL,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// AddMemberRequest invites an existing user into the workspace
type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=owner admin member"`
}

// UpdateMemberRoleRequest changes a member's role
type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=owner admin member"`
}

// MemberResponse is a membership with the user's profile when loaded
type MemberResponse struct {
	ID        uuid.UUID     `json:"id"`
	UserID    uuid.UUID     `json:"user_id"`
	Role      identity.Role `json:"role"`
	Email     string        `json:"email,omitempty"`
	FullName  string        `json:"full_name,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// ToMemberResponse converts a membership
func ToMemberResponse(m *identity.Member) MemberResponse {
	resp := MemberResponse{
		ID:        m.ID,
		UserID:    m.UserID,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
	}
	if m.User != nil {
		resp.Email = m.User.Email
		resp.FullName = m.User.FullName
	}
	return resp
}

// CreateAPIKeyRequest issues a key
type CreateAPIKeyRequest struct {
	Name      string     `json:"name" binding:"required,min=1,max=100"`
	CreatedBy *uuid.UUID `json:"-"`
}

// APIKeyResponse describes a key without its secret
type APIKeyResponse struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Prefix     string     `json:"prefix"`
	CreatedBy  *uuid.UUID `json:"created_by,omitempty"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ToAPIKeyResponse converts a key record
func ToAPIKeyResponse(k *identity.APIKey) APIKeyResponse {
	return APIKeyResponse{
		ID:         k.ID,
		Name:       k.Name,
		Prefix:     k.Prefix,
		CreatedBy:  k.CreatedBy,
		LastUsedAt: k.LastUsedAt,
		RevokedAt:  k.RevokedAt,
		CreatedAt:  k.CreatedAt,
	}
}

// CreatedAPIKeyResponse carries the plaintext key. It is returned once, at creation.
type CreatedAPIKeyResponse struct {
	APIKeyResponse
	Key string `json:"key"`
}

// Principal is the caller resolved from an API key
type Principal struct {
	WorkspaceID uuid.UUID
	APIKeyID    uuid.UUID
}
