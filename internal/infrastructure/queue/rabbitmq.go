package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	appemail "github.com/salescrm/backend/internal/application/email"
	"github.com/salescrm/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const (
	contentTypeJSON = "application/json"
	consumerTag     = "crm-email-worker"
)

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RabbitMQ publishes email jobs to a durable queue and consumes them with a worker pool.
// Jobs that fail twice are dead-lettered to "<queue>.dead".
type RabbitMQ struct {
	cfg    config.RabbitMQConfig
	conn   *amqp.Connection
	pub    publisher
	pubMu  sync.Mutex
	logger *zap.Logger

	closeOnce sync.Once
	wg        sync.WaitGroup
}

// DialRabbitMQ connects and declares the exchange, the queue and its dead-letter queue
func DialRabbitMQ(cfg config.RabbitMQConfig, logger *zap.Logger) (*RabbitMQ, error) {
	cfg = withDefaults(cfg)
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if err := declareTopology(ch, cfg); err != nil {
		_ = conn.Close()
		return nil, err
	}
	logger.Info("RabbitMQ connected",
		zap.String("exchange", cfg.Exchange),
		zap.String("queue", cfg.Queue),
	)
	return &RabbitMQ{cfg: cfg, conn: conn, pub: ch, logger: logger}, nil
}

func withDefaults(cfg config.RabbitMQConfig) config.RabbitMQConfig {
	if cfg.Exchange == "" {
		cfg.Exchange = "crm.email"
	}
	if cfg.Queue == "" {
		cfg.Queue = "crm.email.deliveries"
	}
	if cfg.RoutingKey == "" {
		cfg.RoutingKey = "email.send"
	}
	if cfg.Workers < 1 {
		cfg.Workers = 4
	}
	if cfg.Prefetch < 1 {
		cfg.Prefetch = cfg.Workers * 2
	}
	return cfg
}

func deadLetterQueue(queue string) string {
	return queue + ".dead"
}

func declareTopology(ch *amqp.Channel, cfg config.RabbitMQConfig) error {
	if err := ch.ExchangeDeclare(cfg.Exchange, amqp.ExchangeDirect, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}
	dlq := deadLetterQueue(cfg.Queue)
	if _, err := ch.QueueDeclare(dlq, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", dlq, err)
	}
	args := amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": dlq,
	}
	if _, err := ch.QueueDeclare(cfg.Queue, true, false, false, false, args); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", cfg.Queue, err)
	}
	if err := ch.QueueBind(cfg.Queue, cfg.RoutingKey, cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", cfg.Queue, err)
	}
	return nil
}

// Dispatch publishes a persistent job message
func (r *RabbitMQ) Dispatch(ctx context.Context, job appemail.DeliveryJob) error {
	msg, err := encodeJob(job)
	if err != nil {
		return err
	}
	r.pubMu.Lock()
	defer r.pubMu.Unlock()
	if err := r.pub.PublishWithContext(ctx, r.cfg.Exchange, r.cfg.RoutingKey, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish email job: %w", err)
	}
	return nil
}

func encodeJob(job appemail.DeliveryJob) (amqp.Publishing, error) {
	body, err := json.Marshal(job)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to encode email job: %w", err)
	}
	return amqp.Publishing{
		ContentType:  contentTypeJSON,
		DeliveryMode: amqp.Persistent,
		MessageId:    job.EmailLogID.String(),
		Timestamp:    time.Now().UTC(),
		Headers:      amqp.Table{"workspace_id": job.WorkspaceID.String()},
		Body:         body,
	}, nil
}

// Consume starts the worker pool on a dedicated channel. It returns once consuming has begun;
// workers exit when ctx is cancelled or the channel closes.
func (r *RabbitMQ) Consume(ctx context.Context, handler Handler) error {
	ch, err := r.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open consumer channel: %w", err)
	}
	if err := ch.Qos(r.cfg.Prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set prefetch: %w", err)
	}
	deliveries, err := ch.ConsumeWithContext(ctx, r.cfg.Queue, consumerTag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume %s: %w", r.cfg.Queue, err)
	}

	for i := 0; i < r.cfg.Workers; i++ {
		r.wg.Add(1)
		go func(worker int) {
			defer r.wg.Done()
			log := r.logger.With(zap.Int("worker", worker))
			for d := range deliveries {
				handleDelivery(ctx, d, handler, log)
			}
		}(i)
	}
	r.logger.Info("email workers consuming", zap.Int("workers", r.cfg.Workers), zap.Int("prefetch", r.cfg.Prefetch))
	return nil
}

// handleDelivery acks on success. A failed job is requeued once, then dead-lettered;
// an undecodable body is dead-lettered immediately.
func handleDelivery(ctx context.Context, d amqp.Delivery, handler Handler, log *zap.Logger) {
	var job appemail.DeliveryJob
	if err := json.Unmarshal(d.Body, &job); err != nil {
		log.Error("undecodable email job", zap.String("message_id", d.MessageId), zap.Error(err))
		if err := d.Reject(false); err != nil {
			log.Warn("reject failed", zap.Error(err))
		}
		return
	}

	if err := handler(ctx, job); err != nil {
		requeue := !d.Redelivered && !errors.Is(err, context.Canceled)
		log.Error("email job failed",
			zap.String("email_log_id", job.EmailLogID.String()),
			zap.Bool("requeue", requeue),
			zap.Error(err),
		)
		if err := d.Nack(false, requeue); err != nil {
			log.Warn("nack failed", zap.Error(err))
		}
		return
	}
	if err := d.Ack(false); err != nil {
		log.Warn("ack failed", zap.Error(err))
	}
}

// Close waits for workers and closes the connection
func (r *RabbitMQ) Close() error {
	var err error
	r.closeOnce.Do(func() {
		if r.conn != nil {
			err = r.conn.Close()
		}
		r.wg.Wait()
	})
	if err != nil && !errors.Is(err, amqp.ErrClosed) {
		return fmt.Errorf("failed to close RabbitMQ: %w", err)
	}
	return nil
}

var _ appemail.Dispatcher = (*RabbitMQ)(nil)
