package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/catalog-search-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/queries/list_events"
	"github.com/light-bringer/catalog-search-service/internal/models/m_outbox"
	"github.com/light-bringer/catalog-search-service/internal/pkg/query"
)

// EventsReadModel implements the EventsReadModel interface for Spanner.
type EventsReadModel struct {
	client *spanner.Client
}

// NewEventsReadModel creates a new EventsReadModel.
func NewEventsReadModel(client *spanner.Client) *EventsReadModel {
	return &EventsReadModel{
		client: client,
	}
}

// eventsQuery applies the request filters to the outbox table.
func eventsQuery(req *list_events.Request) *query.Builder {
	b := query.From(m_outbox.TableName).Select(m_outbox.Columns...)

	if req.EventType != nil {
		b = b.Where(query.Eq(m_outbox.EventType, *req.EventType))
	}
	if req.AggregateID != nil {
		b = b.Where(query.Eq(m_outbox.AggregateID, *req.AggregateID))
	}
	if req.Status != nil {
		b = b.Where(query.Eq(m_outbox.Status, *req.Status))
	}
	if req.Processed != nil {
		if *req.Processed {
			b = b.Where(query.IsNotNull(m_outbox.ProcessedAt))
		} else {
			b = b.Where(query.IsNull(m_outbox.ProcessedAt))
		}
	}

	return b
}

// ListEvents retrieves events from the outbox_events table with filtering,
// newest first, together with the count of all matching events.
func (r *EventsReadModel) ListEvents(ctx context.Context, req *list_events.Request) (*list_events.Result, error) {
	base := eventsQuery(req)

	txn := r.client.ReadOnlyTransaction()
	defer txn.Close()

	total, err := countRows(ctx, txn, base.Count().Build())
	if err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}

	stmt := base.
		OrderBy(m_outbox.CreatedAt, query.Desc).
		OrderBy(m_outbox.EventID, query.Asc).
		Limit(int64(req.Limit)).
		Build()

	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	events := make([]*m_outbox.Data, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate events: %w", err)
		}

		var event m_outbox.Data
		if err := row.ToStruct(&event); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		events = append(events, &event)
	}

	return &list_events.Result{Events: events, TotalCount: total}, nil
}

// countRows reads the single value of a COUNT(*) statement.
func countRows(ctx context.Context, q contracts.Queryer, stmt spanner.Statement) (int64, error) {
	iter := q.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := row.Columns(&count); err != nil {
		return 0, err
	}
	return count, nil
}
