// Package queue dispatches email delivery jobs, either through RabbitMQ or an in-process worker pool.
package queue

import (
	"context"

	appemail "github.com/salescrm/backend/internal/application/email"
)

// Handler processes one delivery job. A nil error acknowledges the job.
type Handler func(ctx context.Context, job appemail.DeliveryJob) error
