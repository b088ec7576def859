// Package outbox publishes catalog events written to the outbox table.
package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/light-bringer/catalog-search-service/internal/models/m_outbox"
	"github.com/light-bringer/catalog-search-service/internal/pkg/clock"
)

// Store is the outbox table as seen by the relay.
type Store interface {
	// ClaimPending moves up to limit pending events to processing and
	// returns them, oldest first.
	ClaimPending(ctx context.Context, limit int) ([]*m_outbox.Data, error)
	MarkCompleted(ctx context.Context, eventID string, at time.Time) error
	MarkRetry(ctx context.Context, eventID string, retryCount int64, exhausted bool, cause string, at time.Time) error
}

// Message is one event handed to a Publisher.
type Message struct {
	EventID     string
	EventType   string
	AggregateID string
	Payload     []byte
}

// Publisher delivers messages to the event bus.
type Publisher interface {
	Publish(ctx context.Context, msgs ...Message) error
}

// Options tune the relay loop.
type Options struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// Relay drains the outbox: it claims pending events, publishes them and
// records the outcome. Events whose publish keeps failing are retried up to
// MaxRetries times and then marked failed.
type Relay struct {
	store     Store
	publisher Publisher
	clock     clock.Clock
	logger    *slog.Logger
	opts      Options
}

// NewRelay creates a relay.
func NewRelay(store Store, publisher Publisher, clk clock.Clock, logger *slog.Logger, opts Options) *Relay {
	return &Relay{
		store:     store,
		publisher: publisher,
		clock:     clk,
		logger:    logger.With("component", "outbox_relay"),
		opts:      opts,
	}
}

// Run processes batches until ctx is cancelled. A full batch is followed
// immediately by the next one; otherwise the relay waits for the interval.
func (r *Relay) Run(ctx context.Context) error {
	r.logger.Info("outbox relay started",
		"interval", r.opts.Interval,
		"batch_size", r.opts.BatchSize,
		"max_retries", r.opts.MaxRetries)

	ticker := time.NewTicker(r.opts.Interval)
	defer ticker.Stop()

	for {
		n, err := r.ProcessBatch(ctx)
		if err != nil && ctx.Err() == nil {
			r.logger.Warn("outbox batch failed", "error", err)
		}

		if err == nil && n == r.opts.BatchSize {
			continue
		}

		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// ProcessBatch claims and publishes one batch. It returns how many events
// were claimed.
func (r *Relay) ProcessBatch(ctx context.Context) (int, error) {
	events, err := r.store.ClaimPending(ctx, r.opts.BatchSize)
	if err != nil {
		return 0, err
	}

	var errs []error
	for _, event := range events {
		if err := r.processEvent(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(events) > 0 {
		r.logger.Debug("outbox batch processed", "claimed", len(events), "errors", len(errs))
	}
	return len(events), errors.Join(errs...)
}

func (r *Relay) processEvent(ctx context.Context, event *m_outbox.Data) error {
	msg, err := toMessage(event)
	if err == nil {
		err = r.publisher.Publish(ctx, msg)
	}

	now := r.clock.Now()
	if err == nil {
		return r.store.MarkCompleted(ctx, event.EventID, now)
	}

	retries := event.RetryCount + 1
	exhausted := retries >= int64(r.opts.MaxRetries)
	r.logger.Warn("failed to publish event",
		"event_id", event.EventID,
		"event_type", event.EventType,
		"retry_count", retries,
		"exhausted", exhausted,
		"error", err)

	if markErr := r.store.MarkRetry(ctx, event.EventID, retries, exhausted, err.Error(), now); markErr != nil {
		return markErr
	}
	return fmt.Errorf("event %s: %w", event.EventID, err)
}

func toMessage(event *m_outbox.Data) (Message, error) {
	payload := []byte("null")
	if event.Payload.Valid {
		b, err := json.Marshal(event.Payload.Value)
		if err != nil {
			return Message{}, fmt.Errorf("failed to encode payload: %w", err)
		}
		payload = b
	}

	return Message{
		EventID:     event.EventID,
		EventType:   event.EventType,
		AggregateID: event.AggregateID,
		Payload:     payload,
	}, nil
}
