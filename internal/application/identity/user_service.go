package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/identity"
	"github.com/salescrm/backend/internal/domain/shared"
)

// UserService mirrors users from the hosted auth provider
type UserService struct {
	users identity.UserRepository
}

// NewUserService creates a UserService
func NewUserService(users identity.UserRepository) *UserService {
	return &UserService{users: users}
}

// SyncUser creates or refreshes the user identified by its provider subject
func (s *UserService) SyncUser(ctx context.Context, req SyncUserRequest) (*UserResponse, error) {
	user, err := s.users.FindByExternalID(ctx, req.ExternalID)
	switch {
	case err == nil:
		if err := user.UpdateProfile(req.Email, req.FullName, req.AvatarURL); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		user, err = identity.NewUser(req.ExternalID, req.Email, req.FullName)
		if err != nil {
			return nil, err
		}
		user.AvatarURL = req.AvatarURL
	default:
		return nil, err
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// GetByExternalID resolves a session subject to a user
func (s *UserService) GetByExternalID(ctx context.Context, externalID string) (*UserResponse, error) {
	user, err := s.users.FindByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// GetUser returns a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}
