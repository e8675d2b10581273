package email

import (
	"context"
	"errors"

	"github.com/salescrm/backend/internal/domain/email"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/salescrm/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Sender delivers a message through the transactional email provider and returns its message ID
type Sender interface {
	Send(ctx context.Context, msg OutboundMessage) (string, error)
}

// Deliverer is the worker side of SendEmail: it sends a queued log and records the outcome.
// Jobs are deduplicated by email log ID, so redelivered queue messages do not send twice.
type Deliverer struct {
	logs        email.LogRepository
	sender      Sender
	idempotency shared.IdempotencyStore
	events      shared.EventPublisher
	logger      *zap.Logger
}

// NewDeliverer creates a Deliverer. events may be nil.
func NewDeliverer(logs email.LogRepository, sender Sender, idempotency shared.IdempotencyStore, events shared.EventPublisher, log *zap.Logger) *Deliverer {
	return &Deliverer{
		logs:        logs,
		sender:      sender,
		idempotency: idempotency,
		events:      events,
		logger:      log,
	}
}

// Deliver processes one job. Provider failures are recorded on the log and are not returned;
// a returned error means the outcome could not be stored and the job may be retried.
// The dedup key is released on every error return so the retry is not skipped.
func (d *Deliverer) Deliver(ctx context.Context, job DeliveryJob) (err error) {
	ctx = logger.WithWorkspaceID(ctx, job.WorkspaceID.String())
	log := d.logger.With(
		zap.String("email_log_id", job.EmailLogID.String()),
		zap.String("workspace_id", job.WorkspaceID.String()),
	)

	key := "email:" + job.EmailLogID.String()
	isNew, markErr := d.idempotency.MarkProcessed(ctx, key, shared.DefaultIdempotencyTTL)
	switch {
	case markErr != nil:
		log.Warn("idempotency check failed, delivering anyway", zap.Error(markErr))
	case !isNew:
		log.Debug("email already delivered, skipping")
		return nil
	default:
		defer func() {
			if err == nil {
				return
			}
			if relErr := d.idempotency.Release(context.WithoutCancel(ctx), key); relErr != nil {
				log.Warn("failed to release delivery key", zap.Error(relErr))
			}
		}()
	}

	entry, err := d.logs.FindByIDForWorkspace(ctx, job.WorkspaceID, job.EmailLogID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			log.Warn("email log vanished before delivery")
			return nil
		}
		return err
	}
	if !entry.IsQueued() {
		log.Debug("email no longer queued", zap.String("status", string(entry.Status)))
		return nil
	}

	msgID, sendErr := d.sender.Send(ctx, OutboundMessage{
		To:      entry.ToEmail,
		Subject: entry.Subject,
		Body:    entry.Body,
		Tags: map[string]string{
			"workspace_id": job.WorkspaceID.String(),
			"email_log_id": job.EmailLogID.String(),
		},
	})
	if sendErr != nil {
		log.Warn("email provider rejected message", zap.Error(sendErr))
		if err := entry.MarkFailed(sendErr.Error()); err != nil {
			return err
		}
		return d.logs.Save(ctx, entry)
	}

	if err := entry.MarkSent(msgID); err != nil {
		return err
	}
	if err := d.logs.Save(ctx, entry); err != nil {
		return err
	}
	log.Info("email sent", zap.String("provider_message_id", msgID))

	if d.events != nil {
		if err := d.events.Publish(ctx, entry.GetDomainEvents()...); err != nil {
			log.Warn("failed to publish email events", zap.Error(err))
		}
		entry.ClearDomainEvents()
	}
	return nil
}
