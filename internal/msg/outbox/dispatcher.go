package outbox

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"messaging-back/internal/apperrors"
	"messaging-back/internal/metrics"
	"messaging-back/internal/model"
)

const (
	DefaultPollInterval = 1500 * time.Millisecond
	DefaultBatchSize    = 50
)

//go:generate mockgen -source=dispatcher.go -destination=mocks/dispatcher.go -package=mocks
type EventLog interface {
	ClaimBatch(ctx context.Context, limit int, now time.Time) ([]model.OutboxEvent, error)
	MarkSent(ctx context.Context, eventID uuid.UUID) error
	MarkFailed(ctx context.Context, event model.OutboxEvent, cause error) error
	Stats(ctx context.Context) (*model.OutboxStats, error)
}

type Config struct {
	Name           string
	PollInterval   time.Duration
	BatchSize      int
	WorkerCount    int
	HandlerTimeout time.Duration
}

type Dispatcher struct {
	l        *zap.Logger
	cfg      Config
	events   EventLog
	registry *Registry
	now      func() time.Time
}

type Option func(d *Dispatcher)

func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		d.now = now
	}
}

func NewDispatcher(l *zap.Logger, cfg Config, events EventLog, registry *Registry, opts ...Option) *Dispatcher {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 1
	}

	d := &Dispatcher{
		l:        l.With(zap.String("dispatcher", cfg.Name)),
		cfg:      cfg,
		events:   events,
		registry: registry,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Run polls until ctx is done. A batch that was already claimed is always finished.
func (d *Dispatcher) Run(ctx context.Context) {
	d.l.Info("Outbox dispatcher started",
		zap.Duration("poll_interval", d.cfg.PollInterval),
		zap.Int("batch_size", d.cfg.BatchSize),
		zap.Int("worker_count", d.cfg.WorkerCount),
		zap.Strings("topics", d.registry.Topics()),
	)

	ticker := time.NewTicker(d.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.l.Info("Outbox dispatcher stopped")

			return
		case <-ticker.C:
			if _, err := d.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
				d.l.Error("Failed to dispatch outbox batch", zap.Error(err))
			}

			d.observeQueue(ctx)
		}
	}
}

// RunOnce claims one batch and processes it, returning the number of claimed events.
func (d *Dispatcher) RunOnce(ctx context.Context) (int, error) {
	batch, err := d.events.ClaimBatch(ctx, d.cfg.BatchSize, d.now())
	if err != nil {
		return 0, fmt.Errorf("failed to claim batch: %w", err)
	}

	if len(batch) == 0 {
		return 0, nil
	}

	// handlers and marks of a claimed batch outlive shutdown
	batchCtx := context.WithoutCancel(ctx)

	var g errgroup.Group
	g.SetLimit(d.cfg.WorkerCount)

	for _, event := range batch {
		g.Go(func() error {
			d.process(batchCtx, event)

			return nil
		})
	}

	_ = g.Wait()

	return len(batch), nil
}

func (d *Dispatcher) process(ctx context.Context, event model.OutboxEvent) {
	log := d.l.With(
		zap.String("event_id", event.ID.String()),
		zap.String("topic", event.Topic),
		zap.Int("attempts", event.Attempts),
	)

	handler, ok := d.registry.Lookup(event.Topic)
	if !ok {
		log.Info("No handler registered for topic, marking event as sent")
		metrics.OutboxEventsDispatched.WithLabelValues(event.Topic, "unhandled").Inc()

		if err := d.events.MarkSent(ctx, event.ID); err != nil {
			log.Error("Failed to mark unhandled event as sent", zap.Error(err))
		}

		return
	}

	if err := d.invoke(ctx, handler, event); err != nil {
		log.Warn("Outbox handler failed", zap.Error(err))
		metrics.OutboxEventsDispatched.WithLabelValues(event.Topic, "failed").Inc()

		if mErr := d.events.MarkFailed(ctx, event, err); mErr != nil {
			log.Error("Failed to mark event as failed", zap.Error(mErr))
		}

		return
	}

	metrics.OutboxEventsDispatched.WithLabelValues(event.Topic, "sent").Inc()

	if err := d.events.MarkSent(ctx, event.ID); err != nil {
		log.Error("Failed to mark event as sent", zap.Error(err))
	}
}

// invoke decodes the payload and runs the handler. Every failure, a panic included, comes back as *apperrors.HandlerError.
func (d *Dispatcher) invoke(ctx context.Context, handler Handler, event model.OutboxEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}

		if err != nil {
			err = &apperrors.HandlerError{Topic: event.Topic, EventID: event.ID.String(), Cause: err}
		}
	}()

	payload, err := Decode(event.Topic, event.Payload)
	if err != nil {
		return err
	}

	if d.cfg.HandlerTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, d.cfg.HandlerTimeout)
		defer cancel()
	}

	started := time.Now()
	defer func() {
		metrics.OutboxHandlerDuration.WithLabelValues(event.Topic).Observe(time.Since(started).Seconds())
	}()

	return handler(ctx, Event{
		ID:        event.ID,
		Topic:     event.Topic,
		Payload:   payload,
		Attempts:  event.Attempts,
		CreatedAt: event.CreatedAt,
	})
}

func (d *Dispatcher) observeQueue(ctx context.Context) {
	stats, err := d.events.Stats(ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			d.l.Warn("Failed to read outbox stats", zap.Error(err))
		}

		return
	}

	metrics.OutboxPending.Set(float64(stats.Pending))

	if stats.OldestPendingAt == nil {
		metrics.OutboxOldestPendingAge.Set(0)

		return
	}

	metrics.OutboxOldestPendingAge.Set(d.now().Sub(*stats.OldestPendingAt).Seconds())
}
