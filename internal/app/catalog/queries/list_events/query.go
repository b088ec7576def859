package list_events

import (
	"context"

	"github.com/light-bringer/catalog-search-service/internal/models/m_outbox"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Request contains filtering parameters for listing events.
type Request struct {
	EventType   *string // Filter by event type (e.g., "product.created")
	AggregateID *string // Filter by aggregate ID
	Status      *string // Filter by status ("pending", "processing", "completed", "failed")
	Processed   *bool   // Filter on whether processed_at is set
	Limit       int     // Max number of events to return (default: 100)
}

// Result is a page of events plus the number of events matching the filter.
type Result struct {
	Events     []*m_outbox.Data
	TotalCount int64
}

// EventsReadModel defines the interface for reading events.
type EventsReadModel interface {
	ListEvents(ctx context.Context, req *Request) (*Result, error)
}

// Query handles the list events query use case.
type Query struct {
	readModel EventsReadModel
}

// NewQuery creates a new list events query.
func NewQuery(readModel EventsReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves the newest events matching the filter.
func (q *Query) Execute(ctx context.Context, req *Request) (*Result, error) {
	if req.Limit <= 0 {
		req.Limit = DefaultLimit
	}
	if req.Limit > MaxLimit {
		req.Limit = MaxLimit
	}

	return q.readModel.ListEvents(ctx, req)
}
