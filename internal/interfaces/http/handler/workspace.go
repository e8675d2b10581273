package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/salescrm/backend/internal/application/identity"
	"github.com/salescrm/backend/internal/interfaces/http/dto"
	"github.com/salescrm/backend/internal/interfaces/http/middleware"
)

// WorkspaceHandler serves workspaces, members and API keys
type WorkspaceHandler struct {
	BaseHandler
	workspaces *identityapp.WorkspaceService
	apiKeys    *identityapp.APIKeyService
}

// NewWorkspaceHandler creates a WorkspaceHandler
func NewWorkspaceHandler(workspaces *identityapp.WorkspaceService, apiKeys *identityapp.APIKeyService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaces: workspaces, apiKeys: apiKeys}
}

// CreateWorkspace godoc
// @ID           createWorkspace
// @Summary      Create a workspace
// @Description  Creates a workspace owned by the caller, with a default pipeline
// @Tags         workspaces
// @Accept       json
// @Produce      json
// @Param        request body identityapp.CreateWorkspaceRequest true "Workspace"
// @Success      201 {object} APIResponse[identityapp.WorkspaceResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /workspaces [post]
func (h *WorkspaceHandler) CreateWorkspace(c *gin.Context) {
	userID := h.Actor(c)
	if userID == nil {
		h.Error(c, dto.ErrCodeUnauthorized, "User is not registered; call /users/sync first")
		return
	}
	var req identityapp.CreateWorkspaceRequest
	if !h.BindJSON(c, &req) {
		return
	}
	req.OwnerID = *userID

	ws, err := h.workspaces.CreateWorkspace(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, ws)
}

// ListWorkspaces godoc
// @ID           listWorkspaces
// @Summary      List the caller's workspaces
// @Tags         workspaces
// @Produce      json
// @Success      200 {object} APIResponse[[]identityapp.WorkspaceResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /workspaces [get]
func (h *WorkspaceHandler) ListWorkspaces(c *gin.Context) {
	userID := h.Actor(c)
	if userID == nil {
		h.Success(c, []identityapp.WorkspaceResponse{})
		return
	}
	list, err := h.workspaces.ListWorkspacesForUser(c.Request.Context(), *userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// GetWorkspace godoc
// @ID           getWorkspace
// @Summary      Get the current workspace
// @Tags         workspace
// @Produce      json
// @Success      200 {object} APIResponse[identityapp.WorkspaceResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /workspace [get]
func (h *WorkspaceHandler) GetWorkspace(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	ws, err := h.workspaces.GetWorkspace(c.Request.Context(), wsID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ws)
}

// UpdateWorkspace godoc
// @ID           updateWorkspace
// @Summary      Update workspace settings
// @Tags         workspace
// @Accept       json
// @Produce      json
// @Param        request body identityapp.UpdateWorkspaceRequest true "Changes"
// @Success      200 {object} APIResponse[identityapp.WorkspaceResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /workspace [patch]
func (h *WorkspaceHandler) UpdateWorkspace(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	var req identityapp.UpdateWorkspaceRequest
	if !h.BindJSON(c, &req) {
		return
	}
	ws, err := h.workspaces.UpdateWorkspace(c.Request.Context(), wsID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ws)
}

// ListMembers godoc
// @ID           listMembers
// @Summary      List workspace members
// @Tags         workspace
// @Produce      json
// @Success      200 {object} APIResponse[[]identityapp.MemberResponse]
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /workspace/members [get]
func (h *WorkspaceHandler) ListMembers(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	members, err := h.workspaces.ListMembers(c.Request.Context(), wsID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, members)
}

// AddMember godoc
// @ID           addMember
// @Summary      Add a registered user to the workspace
// @Tags         workspace
// @Accept       json
// @Produce      json
// @Param        request body identityapp.AddMemberRequest true "Member"
// @Success      201 {object} APIResponse[identityapp.MemberResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /workspace/members [post]
func (h *WorkspaceHandler) AddMember(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	var req identityapp.AddMemberRequest
	if !h.BindJSON(c, &req) {
		return
	}
	member, err := h.workspaces.AddMember(c.Request.Context(), wsID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, member)
}

// UpdateMemberRole godoc
// @ID           updateMemberRole
// @Summary      Change a member's role
// @Tags         workspace
// @Accept       json
// @Produce      json
// @Param        user_id path string true "User ID"
// @Param        request body identityapp.UpdateMemberRoleRequest true "Role"
// @Success      200 {object} APIResponse[identityapp.MemberResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /workspace/members/{user_id} [patch]
func (h *WorkspaceHandler) UpdateMemberRole(c *gin.Context) {
	wsID, userID, ok := h.ScopedID(c, "user_id")
	if !ok {
		return
	}
	var req identityapp.UpdateMemberRoleRequest
	if !h.BindJSON(c, &req) {
		return
	}
	member, err := h.workspaces.UpdateMemberRole(c.Request.Context(), wsID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, member)
}

// RemoveMember godoc
// @ID           removeMember
// @Summary      Remove a member
// @Tags         workspace
// @Param        user_id path string true "User ID"
// @Success      204
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /workspace/members/{user_id} [delete]
func (h *WorkspaceHandler) RemoveMember(c *gin.Context) {
	wsID, userID, ok := h.ScopedID(c, "user_id")
	if !ok {
		return
	}
	if err := h.workspaces.RemoveMember(c.Request.Context(), wsID, userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListAPIKeys godoc
// @ID           listAPIKeys
// @Summary      List API keys
// @Tags         workspace
// @Produce      json
// @Success      200 {object} APIResponse[[]identityapp.APIKeyResponse]
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /workspace/api-keys [get]
func (h *WorkspaceHandler) ListAPIKeys(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	keys, err := h.apiKeys.ListAPIKeys(c.Request.Context(), wsID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, keys)
}

// CreateAPIKey godoc
// @ID           createAPIKey
// @Summary      Issue an API key
// @Description  The plaintext key is only returned in this response
// @Tags         workspace
// @Accept       json
// @Produce      json
// @Param        request body identityapp.CreateAPIKeyRequest true "Key"
// @Success      201 {object} APIResponse[identityapp.CreatedAPIKeyResponse]
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /workspace/api-keys [post]
func (h *WorkspaceHandler) CreateAPIKey(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	var req identityapp.CreateAPIKeyRequest
	if !h.BindJSON(c, &req) {
		return
	}
	req.CreatedBy = h.Actor(c)
	key, err := h.apiKeys.CreateAPIKey(c.Request.Context(), wsID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, key)
}

// RevokeAPIKey godoc
// @ID           revokeAPIKey
// @Summary      Revoke an API key
// @Tags         workspace
// @Param        id path string true "API key ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /workspace/api-keys/{id} [delete]
func (h *WorkspaceHandler) RevokeAPIKey(c *gin.Context) {
	wsID, id, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	if err := h.apiKeys.RevokeAPIKey(c.Request.Context(), wsID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UserHandler mirrors users from the hosted auth provider
type UserHandler struct {
	BaseHandler
	users *identityapp.UserService
}

// NewUserHandler creates a UserHandler
func NewUserHandler(users *identityapp.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// syncProfile lets the client supply profile fields the token lacks
type syncProfile struct {
	Email     string `json:"email" binding:"omitempty,email"`
	FullName  string `json:"full_name" binding:"max=200"`
	AvatarURL string `json:"avatar_url" binding:"omitempty,url"`
}

// Sync godoc
// @ID           syncUser
// @Summary      Create or update the caller's user record
// @Description  Identity comes from the session token; the body may fill in profile fields
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body syncProfile false "Profile"
// @Success      200 {object} APIResponse[identityapp.UserResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users/sync [post]
func (h *UserHandler) Sync(c *gin.Context) {
	session := middleware.Session(c)
	if session == nil {
		h.Error(c, dto.ErrCodeUnauthorized, "A session token is required")
		return
	}
	var profile syncProfile
	if c.Request.ContentLength > 0 && !h.BindJSON(c, &profile) {
		return
	}

	req := identityapp.SyncUserRequest{
		ExternalID: session.ExternalID,
		Email:      firstNonEmpty(session.Email, profile.Email),
		FullName:   firstNonEmpty(session.FullName, profile.FullName),
		AvatarURL:  firstNonEmpty(session.AvatarURL, profile.AvatarURL),
	}
	user, err := h.users.SyncUser(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Me godoc
// @ID           getCurrentUser
// @Summary      Get the caller's user record
// @Tags         users
// @Produce      json
// @Success      200 {object} APIResponse[identityapp.UserResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	session := middleware.Session(c)
	if session == nil {
		h.Error(c, dto.ErrCodeUnauthorized, "A session token is required")
		return
	}
	user, err := h.users.GetByExternalID(c.Request.Context(), session.ExternalID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
