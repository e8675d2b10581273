package telemetry

import (
	"context"

	"github.com/salescrm/backend/internal/domain/email"
	"github.com/salescrm/backend/internal/domain/engagement"
	"github.com/salescrm/backend/internal/domain/sales"
	"github.com/salescrm/backend/internal/domain/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// CRMMetrics counts business events. It is registered on the event bus
// and handed to the assistant as its tool-call recorder.
type CRMMetrics struct {
	dealsCreated   *Counter
	dealsClosed    *Counter
	dealValueWon   metric.Float64Counter
	tasksCompleted *Counter
	emailsSent     *Counter
	toolCalls      *Counter
}

// NewCRMMetrics creates the instruments on meter
func NewCRMMetrics(meter metric.Meter) (*CRMMetrics, error) {
	m := &CRMMetrics{}
	var err error
	if m.dealsCreated, err = NewCounter(meter, "crm_deals_created_total", "Deals created", "{deal}"); err != nil {
		return nil, err
	}
	if m.dealsClosed, err = NewCounter(meter, "crm_deals_closed_total", "Deals moved into a won or lost stage", "{deal}"); err != nil {
		return nil, err
	}
	if m.dealValueWon, err = meter.Float64Counter("crm_deal_value_won_total",
		metric.WithDescription("Sum of deal values at the moment they were won"),
	); err != nil {
		return nil, err
	}
	if m.tasksCompleted, err = NewCounter(meter, "crm_tasks_completed_total", "Tasks completed", "{task}"); err != nil {
		return nil, err
	}
	if m.emailsSent, err = NewCounter(meter, "crm_emails_sent_total", "Emails accepted by the provider", "{email}"); err != nil {
		return nil, err
	}
	if m.toolCalls, err = NewCounter(meter, "crm_assistant_tool_calls_total", "Assistant tool executions", "{call}"); err != nil {
		return nil, err
	}
	return m, nil
}

// EventTypes returns the events counted
func (m *CRMMetrics) EventTypes() []string {
	return []string{
		sales.EventTypeDealCreated,
		sales.EventTypeDealWon,
		sales.EventTypeDealLost,
		engagement.EventTypeTaskCompleted,
		email.EventTypeEmailSent,
	}
}

// Handle counts one event
func (m *CRMMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch ev := event.(type) {
	case *sales.DealCreatedEvent:
		m.dealsCreated.Inc(ctx)
	case *sales.DealStageChangedEvent:
		outcome := "lost"
		if ev.EventType() == sales.EventTypeDealWon {
			outcome = "won"
			m.dealValueWon.Add(ctx, ev.Value.InexactFloat64())
		}
		m.dealsClosed.Inc(ctx, attribute.String("outcome", outcome))
	case *engagement.TaskCompletedEvent:
		m.tasksCompleted.Inc(ctx)
	case *email.EmailSentEvent:
		m.emailsSent.Inc(ctx)
	}
	return nil
}

// RecordToolCall counts one assistant tool execution
func (m *CRMMetrics) RecordToolCall(ctx context.Context, tool string, failed bool) {
	m.toolCalls.Inc(ctx, attribute.String("tool", tool), attribute.Bool("failed", failed))
}

var _ shared.EventHandler = (*CRMMetrics)(nil)
