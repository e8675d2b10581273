package engagement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/engagement"
	"github.com/salescrm/backend/internal/domain/shared"
)

// ActivityService records and lists the workspace timeline
type ActivityService struct {
	activities engagement.ActivityRepository
}

// NewActivityService creates an ActivityService
func NewActivityService(activities engagement.ActivityRepository) *ActivityService {
	return &ActivityService{activities: activities}
}

// LogActivity appends a timeline entry
func (s *ActivityService) LogActivity(ctx context.Context, workspaceID uuid.UUID, req LogActivityRequest) (*ActivityResponse, error) {
	var occurredAt time.Time
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}
	a, err := engagement.NewActivity(workspaceID, engagement.ActivityType(req.Type), req.Subject, occurredAt)
	if err != nil {
		return nil, err
	}
	a.Description = req.Description
	a.UserID = req.UserID
	a.Link(req.links())

	if err := s.activities.Save(ctx, a); err != nil {
		return nil, err
	}
	resp := ToActivityResponse(a)
	return &resp, nil
}

// ListActivities lists the timeline newest first
func (s *ActivityService) ListActivities(ctx context.Context, workspaceID uuid.UUID, f ActivityListFilter) (shared.Paginated[ActivityResponse], error) {
	filter := shared.NewFilter(f.Page, f.PageSize, "", "", "")
	if err := applyIDFilters(filter, map[string]string{
		"user_id":    f.UserID,
		"deal_id":    f.DealID,
		"contact_id": f.ContactID,
		"company_id": f.CompanyID,
	}); err != nil {
		return shared.Paginated[ActivityResponse]{}, err
	}
	if f.Type != "" {
		filter.Filters["type"] = f.Type
	}

	list, err := s.activities.FindAllForWorkspace(ctx, workspaceID, filter)
	if err != nil {
		return shared.Paginated[ActivityResponse]{}, err
	}
	total, err := s.activities.CountForWorkspace(ctx, workspaceID, filter)
	if err != nil {
		return shared.Paginated[ActivityResponse]{}, err
	}
	items := make([]ActivityResponse, len(list))
	for i := range list {
		items[i] = ToActivityResponse(&list[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}
