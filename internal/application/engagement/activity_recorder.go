package engagement

import (
	"context"
	"fmt"

	"github.com/salescrm/backend/internal/domain/email"
	"github.com/salescrm/backend/internal/domain/engagement"
	"github.com/salescrm/backend/internal/domain/sales"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/salescrm/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ActivityRecorder writes timeline entries for deal changes, completed tasks and sent emails
type ActivityRecorder struct {
	activities engagement.ActivityRepository
}

// NewActivityRecorder creates an ActivityRecorder
func NewActivityRecorder(activities engagement.ActivityRepository) *ActivityRecorder {
	return &ActivityRecorder{activities: activities}
}

// EventTypes returns the events that produce timeline entries
func (r *ActivityRecorder) EventTypes() []string {
	return []string{
		sales.EventTypeDealCreated,
		sales.EventTypeDealStageChanged,
		sales.EventTypeDealWon,
		sales.EventTypeDealLost,
		sales.EventTypeDealValueChanged,
		engagement.EventTypeTaskCompleted,
		email.EventTypeEmailSent,
	}
}

// Handle converts the event into an activity. Unknown payloads are ignored.
func (r *ActivityRecorder) Handle(ctx context.Context, event shared.DomainEvent) error {
	a, err := activityFor(event)
	if err != nil || a == nil {
		return err
	}
	if err := r.activities.Save(ctx, a); err != nil {
		logger.L(ctx).Warn("recording activity failed",
			zap.String("event_type", event.EventType()),
			zap.String("event_id", event.EventID().String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func activityFor(event shared.DomainEvent) (*engagement.Activity, error) {
	ws := event.WorkspaceID()
	switch ev := event.(type) {
	case *sales.DealCreatedEvent:
		id := ev.AggregateID()
		a, err := engagement.NewActivity(ws, engagement.ActivityDeal, "Deal created: "+ev.Title, ev.OccurredAt())
		if err != nil {
			return nil, err
		}
		a.UserID = ev.OwnerID
		a.Link(engagement.Links{DealID: &id})
		return a, nil

	case *sales.DealStageChangedEvent:
		id := ev.AggregateID()
		var subject string
		switch ev.EventType() {
		case sales.EventTypeDealWon:
			subject = "Deal won: " + ev.Title
		case sales.EventTypeDealLost:
			subject = "Deal lost: " + ev.Title
		default:
			subject = "Deal moved: " + ev.Title
		}
		a, err := engagement.NewActivity(ws, engagement.ActivityDeal, subject, ev.OccurredAt())
		if err != nil {
			return nil, err
		}
		a.Link(engagement.Links{DealID: &id, ContactID: ev.ContactID, CompanyID: ev.CompanyID})
		return a, nil

	case *sales.DealValueChangedEvent:
		id := ev.AggregateID()
		subject := fmt.Sprintf("Deal value changed from %s to %s", ev.Previous.StringFixed(2), ev.Current.StringFixed(2))
		a, err := engagement.NewActivity(ws, engagement.ActivityDeal, subject, ev.OccurredAt())
		if err != nil {
			return nil, err
		}
		a.Link(engagement.Links{DealID: &id})
		return a, nil

	case *engagement.TaskCompletedEvent:
		a, err := engagement.NewActivity(ws, engagement.ActivityTask, "Task completed: "+ev.Title, ev.OccurredAt())
		if err != nil {
			return nil, err
		}
		a.UserID = ev.AssigneeID
		a.Link(engagement.Links{DealID: ev.DealID, ContactID: ev.ContactID})
		return a, nil

	case *email.EmailSentEvent:
		a, err := engagement.NewActivity(ws, engagement.ActivityEmail, "Email sent: "+ev.Subject, ev.OccurredAt())
		if err != nil {
			return nil, err
		}
		a.Description = "To " + ev.ToEmail
		a.UserID = ev.SentBy
		a.Link(engagement.Links{DealID: ev.DealID, ContactID: ev.ContactID})
		return a, nil
	}
	return nil, nil
}

var _ shared.EventHandler = (*ActivityRecorder)(nil)
