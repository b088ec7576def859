package m_outbox

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the outbox_events table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting an outbox event.
// created_at is the commit timestamp of the enclosing transaction.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		Columns,
		[]interface{}{
			data.EventID,
			data.EventType,
			data.AggregateID,
			data.Payload,
			data.Status,
			spanner.CommitTimestamp,
			data.ProcessedAt,
			data.RetryCount,
			data.ErrorMessage,
		},
	)
}

// ClaimMut marks an event as being published by the relay.
func (m *Model) ClaimMut(eventID string) *spanner.Mutation {
	return spanner.Update(TableName,
		[]string{EventID, Status},
		[]interface{}{eventID, StatusProcessing},
	)
}

// CompleteMut records a successful publish.
func (m *Model) CompleteMut(eventID string, at time.Time) *spanner.Mutation {
	return spanner.Update(TableName,
		[]string{EventID, Status, ProcessedAt, ErrorMessage},
		[]interface{}{eventID, StatusCompleted, at, spanner.NullString{}},
	)
}

// RetryMut records a failed publish attempt. The event goes back to pending,
// or to failed once retries are exhausted.
func (m *Model) RetryMut(eventID string, retryCount int64, exhausted bool, cause string, at time.Time) *spanner.Mutation {
	status := StatusPending
	processedAt := spanner.NullTime{}
	if exhausted {
		status = StatusFailed
		processedAt = spanner.NullTime{Time: at, Valid: true}
	}
	return spanner.Update(TableName,
		[]string{EventID, Status, RetryCount, ErrorMessage, ProcessedAt},
		[]interface{}{eventID, status, retryCount, spanner.NullString{StringVal: cause, Valid: true}, processedAt},
	)
}
