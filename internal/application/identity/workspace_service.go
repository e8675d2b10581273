package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/identity"
	"github.com/salescrm/backend/internal/domain/sales"
	"github.com/salescrm/backend/internal/domain/shared"
)

// DefaultPipelineName names the pipeline provisioned with every workspace
const DefaultPipelineName = "Sales Pipeline"

// ErrNotMember is returned when a user has no membership in the requested workspace
var ErrNotMember = shared.NewDomainError("FORBIDDEN", "You are not a member of this workspace")

// WorkspaceService manages workspaces and their members
type WorkspaceService struct {
	workspaces     identity.WorkspaceRepository
	members        identity.MemberRepository
	users          identity.UserRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewWorkspaceService creates a WorkspaceService. eventPublisher may be nil.
func NewWorkspaceService(
	workspaces identity.WorkspaceRepository,
	members identity.MemberRepository,
	users identity.UserRepository,
	txScope TransactionScope,
	eventPublisher shared.EventPublisher,
) *WorkspaceService {
	return &WorkspaceService{
		workspaces:     workspaces,
		members:        members,
		users:          users,
		txScope:        txScope,
		eventPublisher: eventPublisher,
	}
}

// CreateWorkspace creates the workspace, its owner membership and the default pipeline in one transaction
func (s *WorkspaceService) CreateWorkspace(ctx context.Context, req CreateWorkspaceRequest) (*WorkspaceResponse, error) {
	ws, err := identity.NewWorkspace(req.OwnerID, req.Name, req.Slug)
	if err != nil {
		return nil, err
	}
	if req.Currency != "" {
		if err := ws.SetCurrency(req.Currency); err != nil {
			return nil, err
		}
	}
	owner, err := identity.NewMember(ws.ID, req.OwnerID, identity.RoleOwner)
	if err != nil {
		return nil, err
	}
	pipeline, err := sales.NewPipelineFromTemplates(ws.ID, DefaultPipelineName, sales.DefaultStageTemplates())
	if err != nil {
		return nil, err
	}
	pipeline.IsDefault = true

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		exists, err := repos.WorkspaceRepo().ExistsBySlug(ctx, ws.Slug)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError("ALREADY_EXISTS", "Workspace slug is already taken")
		}
		if err := repos.WorkspaceRepo().Save(ctx, ws); err != nil {
			return err
		}
		if err := repos.MemberRepo().Save(ctx, owner); err != nil {
			return err
		}
		return repos.PipelineRepo().Save(ctx, pipeline)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, ws.GetDomainEvents()...)
	ws.ClearDomainEvents()
	resp := ToWorkspaceResponse(ws)
	return &resp, nil
}

// GetWorkspace returns a workspace
func (s *WorkspaceService) GetWorkspace(ctx context.Context, workspaceID uuid.UUID) (*WorkspaceResponse, error) {
	ws, err := s.workspaces.FindByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	resp := ToWorkspaceResponse(ws)
	return &resp, nil
}

// UpdateWorkspace changes the name or currency
func (s *WorkspaceService) UpdateWorkspace(ctx context.Context, workspaceID uuid.UUID, req UpdateWorkspaceRequest) (*WorkspaceResponse, error) {
	ws, err := s.workspaces.FindByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if err := ws.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Currency != nil {
		if err := ws.SetCurrency(*req.Currency); err != nil {
			return nil, err
		}
	}
	if err := s.workspaces.Save(ctx, ws); err != nil {
		return nil, err
	}
	resp := ToWorkspaceResponse(ws)
	return &resp, nil
}

// ListWorkspacesForUser lists the workspaces the user belongs to
func (s *WorkspaceService) ListWorkspacesForUser(ctx context.Context, userID uuid.UUID) ([]WorkspaceResponse, error) {
	list, err := s.workspaces.FindByMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]WorkspaceResponse, len(list))
	for i := range list {
		out[i] = ToWorkspaceResponse(&list[i])
	}
	return out, nil
}

// Authorize confirms the user is a member of the workspace and returns the membership
func (s *WorkspaceService) Authorize(ctx context.Context, workspaceID, userID uuid.UUID) (*identity.Member, error) {
	m, err := s.members.FindForWorkspace(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrNotMember
		}
		return nil, err
	}
	return m, nil
}

// ListMembers lists the workspace's members
func (s *WorkspaceService) ListMembers(ctx context.Context, workspaceID uuid.UUID) ([]MemberResponse, error) {
	members, err := s.members.FindAllForWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	out := make([]MemberResponse, len(members))
	for i := range members {
		out[i] = ToMemberResponse(&members[i])
	}
	return out, nil
}

// AddMember adds an existing user by email
func (s *WorkspaceService) AddMember(ctx context.Context, workspaceID uuid.UUID, req AddMemberRequest) (*MemberResponse, error) {
	email, err := identity.NormalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("User")
		}
		return nil, err
	}
	if _, err := s.members.FindForWorkspace(ctx, workspaceID, user.ID); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "User is already a member")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	m, err := identity.NewMember(workspaceID, user.ID, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}
	if err := s.members.Save(ctx, m); err != nil {
		return nil, err
	}
	m.User = user
	s.publish(ctx, identity.NewMemberEvent(identity.EventTypeMemberAdded, m))
	resp := ToMemberResponse(m)
	return &resp, nil
}

// UpdateMemberRole changes a member's role. The last owner cannot be demoted.
func (s *WorkspaceService) UpdateMemberRole(ctx context.Context, workspaceID, userID uuid.UUID, req UpdateMemberRoleRequest) (*MemberResponse, error) {
	m, err := s.members.FindForWorkspace(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	owners, err := s.members.CountByRole(ctx, workspaceID, identity.RoleOwner)
	if err != nil {
		return nil, err
	}
	if err := m.ChangeRole(identity.Role(req.Role), owners); err != nil {
		return nil, err
	}
	if err := s.members.Save(ctx, m); err != nil {
		return nil, err
	}
	resp := ToMemberResponse(m)
	return &resp, nil
}

// RemoveMember removes a member. The last owner cannot be removed.
func (s *WorkspaceService) RemoveMember(ctx context.Context, workspaceID, userID uuid.UUID) error {
	m, err := s.members.FindForWorkspace(ctx, workspaceID, userID)
	if err != nil {
		return err
	}
	owners, err := s.members.CountByRole(ctx, workspaceID, identity.RoleOwner)
	if err != nil {
		return err
	}
	if err := m.EnsureRemovable(owners); err != nil {
		return err
	}
	if err := s.members.DeleteForWorkspace(ctx, workspaceID, userID); err != nil {
		return err
	}
	s.publish(ctx, identity.NewMemberEvent(identity.EventTypeMemberRemoved, m))
	return nil
}

func (s *WorkspaceService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}
