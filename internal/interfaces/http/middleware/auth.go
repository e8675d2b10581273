package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/application/identity"
	domainidentity "github.com/salescrm/backend/internal/domain/identity"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/salescrm/backend/internal/infrastructure/auth"
	"github.com/salescrm/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Auth context keys
const (
	WorkspaceIDKey  = "workspace_id"
	UserIDKey       = "user_id"
	SessionKey      = "auth_session"
	AuthMethodKey   = "auth_method"
	MemberRoleKey   = "member_role"
	APIKeyHeader    = "X-API-Key"
	WorkspaceHeader = "X-Workspace-ID"
	BearerPrefix    = "Bearer "
)

// Authentication methods recorded under AuthMethodKey
const (
	AuthMethodAPIKey  = "api_key"
	AuthMethodSession = "session"
)

// APIKeyAuthenticator resolves an API key to its workspace
type APIKeyAuthenticator interface {
	AuthenticateAPIKey(ctx context.Context, raw string) (*identity.Principal, error)
}

// SessionValidator verifies session tokens from the hosted auth provider
type SessionValidator interface {
	Validate(token string) (*auth.Session, error)
}

// UserResolver maps an auth provider subject to a local user
type UserResolver interface {
	GetByExternalID(ctx context.Context, externalID string) (*identity.UserResponse, error)
}

// MembershipAuthorizer confirms a user belongs to a workspace
type MembershipAuthorizer interface {
	Authorize(ctx context.Context, workspaceID, userID uuid.UUID) (*domainidentity.Member, error)
}

// Authenticator builds the authentication middlewares
type Authenticator struct {
	apiKeys    APIKeyAuthenticator
	sessions   SessionValidator
	users      UserResolver
	membership MembershipAuthorizer
	logger     *zap.Logger
}

// NewAuthenticator creates an Authenticator
func NewAuthenticator(apiKeys APIKeyAuthenticator, sessions SessionValidator, users UserResolver, membership MembershipAuthorizer, log *zap.Logger) *Authenticator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Authenticator{
		apiKeys:    apiKeys,
		sessions:   sessions,
		users:      users,
		membership: membership,
		logger:     log,
	}
}

// RequireSession accepts only a session token. The caller need not have a local user yet,
// which lets /users/sync create one.
func (a *Authenticator) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" || domainidentity.LooksLikeAPIKey(token) {
			abortWithError(c, "ERR_UNAUTHORIZED", "A session token is required")
			return
		}
		session, ok := a.validateSession(c, token)
		if !ok {
			return
		}
		c.Set(SessionKey, session)
		c.Set(AuthMethodKey, AuthMethodSession)
		if user, err := a.users.GetByExternalID(c.Request.Context(), session.ExternalID); err == nil {
			setUser(c, user.ID)
		}
		c.Next()
	}
}

// RequireWorkspace authenticates the caller and resolves the workspace every
// tenant-scoped route works in. API keys carry their workspace; session callers
// name it in X-Workspace-ID and must be members.
func (a *Authenticator) RequireWorkspace() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := apiKeyCredential(c); raw != "" {
			a.authenticateAPIKey(c, raw)
			return
		}

		token := bearerToken(c)
		if token == "" {
			abortWithError(c, "ERR_UNAUTHORIZED", "Missing credentials")
			return
		}
		session, ok := a.validateSession(c, token)
		if !ok {
			return
		}

		header := strings.TrimSpace(c.GetHeader(WorkspaceHeader))
		if header == "" {
			abortWithError(c, "ERR_WORKSPACE_REQUIRED", "X-Workspace-ID header is required")
			return
		}
		workspaceID, err := uuid.Parse(header)
		if err != nil {
			abortWithError(c, "ERR_INVALID_ID", "X-Workspace-ID must be a UUID")
			return
		}

		ctx := c.Request.Context()
		user, err := a.users.GetByExternalID(ctx, session.ExternalID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				abortWithError(c, "ERR_UNAUTHORIZED", "User is not registered; call /users/sync first")
				return
			}
			a.logger.Error("failed to resolve session user", zap.Error(err))
			abortWithError(c, "ERR_INTERNAL", "Failed to resolve user")
			return
		}
		member, err := a.membership.Authorize(ctx, workspaceID, user.ID)
		if err != nil {
			if errors.Is(err, shared.ErrForbidden) || errors.Is(err, shared.ErrNotFound) {
				abortWithError(c, "ERR_FORBIDDEN", "Not a member of this workspace")
				return
			}
			a.logger.Error("failed to check membership", zap.Error(err))
			abortWithError(c, "ERR_INTERNAL", "Failed to check membership")
			return
		}

		c.Set(SessionKey, session)
		c.Set(AuthMethodKey, AuthMethodSession)
		c.Set(MemberRoleKey, member.Role)
		setUser(c, user.ID)
		setWorkspace(c, workspaceID)
		c.Next()
	}
}

// RequireManager allows owners, admins and API keys
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(AuthMethodKey) == AuthMethodAPIKey {
			c.Next()
			return
		}
		role, _ := c.Get(MemberRoleKey)
		if r, ok := role.(domainidentity.Role); ok && r.CanManage() {
			c.Next()
			return
		}
		abortWithError(c, "ERR_FORBIDDEN", "Only workspace owners and admins can do this")
	}
}

func (a *Authenticator) authenticateAPIKey(c *gin.Context, raw string) {
	principal, err := a.apiKeys.AuthenticateAPIKey(c.Request.Context(), raw)
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			abortWithError(c, "ERR_UNAUTHORIZED", "Invalid API key")
			return
		}
		a.logger.Error("API key authentication failed", zap.Error(err))
		abortWithError(c, "ERR_INTERNAL", "Failed to authenticate API key")
		return
	}
	c.Set(AuthMethodKey, AuthMethodAPIKey)
	setWorkspace(c, principal.WorkspaceID)
	c.Next()
}

func (a *Authenticator) validateSession(c *gin.Context, token string) (*auth.Session, bool) {
	session, err := a.sessions.Validate(token)
	if err == nil {
		return session, true
	}
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		abortWithError(c, "ERR_UNAUTHORIZED", "Session has expired")
	case errors.Is(err, auth.ErrNotConfigured):
		abortWithError(c, "ERR_UNAUTHORIZED", "Session authentication is not enabled")
	default:
		logger.L(c.Request.Context()).Debug("session token rejected", zap.Error(err))
		abortWithError(c, "ERR_UNAUTHORIZED", "Invalid session token")
	}
	return nil, false
}

func apiKeyCredential(c *gin.Context) string {
	if key := strings.TrimSpace(c.GetHeader(APIKeyHeader)); key != "" {
		return key
	}
	if token := bearerToken(c); domainidentity.LooksLikeAPIKey(token) {
		return token
	}
	return ""
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
}

func setWorkspace(c *gin.Context, workspaceID uuid.UUID) {
	c.Set(WorkspaceIDKey, workspaceID.String())
	c.Request = c.Request.WithContext(logger.WithWorkspaceID(c.Request.Context(), workspaceID.String()))
}

func setUser(c *gin.Context, userID uuid.UUID) {
	c.Set(UserIDKey, userID.String())
	c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), userID.String()))
}

// WorkspaceID returns the workspace resolved by RequireWorkspace
func WorkspaceID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString(WorkspaceIDKey))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// UserID returns the local user behind a session, or nil for API key callers
func UserID(c *gin.Context) *uuid.UUID {
	id, err := uuid.Parse(c.GetString(UserIDKey))
	if err != nil {
		return nil
	}
	return &id
}

// Session returns the validated session token, if any
func Session(c *gin.Context) *auth.Session {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*auth.Session)
	return s
}
