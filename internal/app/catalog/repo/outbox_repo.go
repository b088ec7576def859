package repo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/catalog-search-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-search-service/internal/models/m_outbox"
	"github.com/light-bringer/catalog-search-service/internal/pkg/query"
)

// OutboxRepo implements OutboxRepository for Spanner. It also serves the
// relay that drains the table.
type OutboxRepo struct {
	client *spanner.Client
	model  *m_outbox.Model
}

// NewOutboxRepo creates a new OutboxRepo.
func NewOutboxRepo(client *spanner.Client) *OutboxRepo {
	return &OutboxRepo{
		client: client,
		model:  m_outbox.NewModel(),
	}
}

var _ contracts.OutboxRepository = (*OutboxRepo)(nil)

// InsertMut creates a mutation for inserting an outbox event.
func (r *OutboxRepo) InsertMut(event *contracts.OutboxEvent) *spanner.Mutation {
	// Wrap payload string as JSON for Spanner
	payload := spanner.NullJSON{Value: jsonValue(event.Payload), Valid: event.Payload != ""}

	data := &m_outbox.Data{
		EventID:     event.EventID,
		EventType:   event.EventType,
		AggregateID: event.AggregateID,
		Payload:     payload,
		Status:      event.Status,
		RetryCount:  0,
	}

	return r.model.InsertMut(data)
}

// EnrichEvent converts a domain event to an outbox event with metadata.
func (r *OutboxRepo) EnrichEvent(event domain.DomainEvent, payload string) *contracts.OutboxEvent {
	return &contracts.OutboxEvent{
		EventID:     uuid.New().String(),
		EventType:   event.EventType(),
		AggregateID: event.AggregateID(),
		Payload:     payload,
		Status:      m_outbox.StatusPending,
	}
}

// ClaimPending moves up to limit of the oldest pending events to processing
// and returns them. Claiming and reading happen in one transaction, so two
// relays never claim the same event.
func (r *OutboxRepo) ClaimPending(ctx context.Context, limit int) ([]*m_outbox.Data, error) {
	stmt := query.From(m_outbox.TableName).
		Select(m_outbox.Columns...).
		Where(query.Eq(m_outbox.Status, m_outbox.StatusPending)).
		OrderBy(m_outbox.CreatedAt, query.Asc).
		Limit(int64(limit)).
		Build()

	var claimed []*m_outbox.Data
	_, err := r.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		claimed = claimed[:0]

		iter := txn.Query(ctx, stmt)
		defer iter.Stop()

		muts := make([]*spanner.Mutation, 0, limit)
		for {
			row, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return fmt.Errorf("failed to iterate pending events: %w", err)
			}

			var event m_outbox.Data
			if err := row.ToStruct(&event); err != nil {
				return fmt.Errorf("failed to parse event: %w", err)
			}
			claimed = append(claimed, &event)
			muts = append(muts, r.model.ClaimMut(event.EventID))
		}

		if len(muts) == 0 {
			return nil
		}
		return txn.BufferWrite(muts)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to claim outbox events: %w", err)
	}

	return claimed, nil
}

// MarkCompleted records that an event was published.
func (r *OutboxRepo) MarkCompleted(ctx context.Context, eventID string, at time.Time) error {
	if _, err := r.client.Apply(ctx, []*spanner.Mutation{r.model.CompleteMut(eventID, at)}); err != nil {
		return fmt.Errorf("failed to mark event %s completed: %w", eventID, err)
	}
	return nil
}

// MarkRetry records a failed publish. exhausted moves the event to failed,
// otherwise it is pending again.
func (r *OutboxRepo) MarkRetry(ctx context.Context, eventID string, retryCount int64, exhausted bool, cause string, at time.Time) error {
	mut := r.model.RetryMut(eventID, retryCount, exhausted, cause, at)
	if _, err := r.client.Apply(ctx, []*spanner.Mutation{mut}); err != nil {
		return fmt.Errorf("failed to record retry for event %s: %w", eventID, err)
	}
	return nil
}

// jsonValue lets the Spanner client write a pre-encoded JSON document as is.
type jsonValue string

func (v jsonValue) MarshalJSON() ([]byte, error) {
	return []byte(v), nil
}
