package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/identity"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/salescrm/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ErrInvalidAPIKey is returned for unknown, revoked or mismatching keys
var ErrInvalidAPIKey = shared.NewDomainError("UNAUTHORIZED", "Invalid API key")

// SecretHasher hashes and verifies key secrets
type SecretHasher interface {
	Hash(secret string) (string, error)
	Compare(hash, secret string) error
}

// APIKeyService issues, lists, revokes and authenticates API keys
type APIKeyService struct {
	keys   identity.APIKeyRepository
	hasher SecretHasher
}

// NewAPIKeyService creates an APIKeyService
func NewAPIKeyService(keys identity.APIKeyRepository, hasher SecretHasher) *APIKeyService {
	return &APIKeyService{keys: keys, hasher: hasher}
}

// CreateAPIKey mints a key. The plaintext is only available in this response.
func (s *APIKeyService) CreateAPIKey(ctx context.Context, workspaceID uuid.UUID, req CreateAPIKeyRequest) (*CreatedAPIKeyResponse, error) {
	generated, err := identity.GenerateAPIKey()
	if err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(generated.Secret)
	if err != nil {
		return nil, err
	}
	key, err := identity.NewAPIKey(workspaceID, req.Name, generated.Prefix, hash, req.CreatedBy)
	if err != nil {
		return nil, err
	}
	if err := s.keys.Save(ctx, key); err != nil {
		return nil, err
	}
	return &CreatedAPIKeyResponse{
		APIKeyResponse: ToAPIKeyResponse(key),
		Key:            generated.Plaintext,
	}, nil
}

// ListAPIKeys lists the workspace's keys, revoked ones included
func (s *APIKeyService) ListAPIKeys(ctx context.Context, workspaceID uuid.UUID) ([]APIKeyResponse, error) {
	keys, err := s.keys.FindAllForWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	out := make([]APIKeyResponse, len(keys))
	for i := range keys {
		out[i] = ToAPIKeyResponse(&keys[i])
	}
	return out, nil
}

// RevokeAPIKey disables a key
func (s *APIKeyService) RevokeAPIKey(ctx context.Context, workspaceID, id uuid.UUID) error {
	key, err := s.keys.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return err
	}
	if err := key.Revoke(); err != nil {
		return err
	}
	return s.keys.Save(ctx, key)
}

// AuthenticateAPIKey resolves a raw key to its workspace
func (s *APIKeyService) AuthenticateAPIKey(ctx context.Context, raw string) (*Principal, error) {
	prefix, secret, err := identity.ParseAPIKey(raw)
	if err != nil {
		return nil, ErrInvalidAPIKey
	}
	key, err := s.keys.FindByPrefix(ctx, prefix)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidAPIKey
		}
		return nil, err
	}
	if key.IsRevoked() {
		return nil, ErrInvalidAPIKey
	}
	if err := s.hasher.Compare(key.KeyHash, secret); err != nil {
		return nil, ErrInvalidAPIKey
	}

	if err := s.keys.TouchLastUsed(ctx, key.ID); err != nil {
		logger.L(ctx).Warn("failed to touch api key",
			zap.String("api_key_id", key.ID.String()),
			zap.Error(err),
		)
	}
	return &Principal{WorkspaceID: key.WorkspaceID, APIKeyID: key.ID}, nil
}
