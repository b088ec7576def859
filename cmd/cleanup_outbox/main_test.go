package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetention(t *testing.T) {
	now := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	ret := newRetention(now, Config{CompletedRetentionDays: 30, FailedRetentionDays: 90})

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), ret.cutoff("completed"))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), ret.cutoff("failed"))

	t.Run("delete statement covers both statuses", func(t *testing.T) {
		stmt := ret.deleteStatement()
		assert.Equal(t,
			"DELETE FROM outbox_events WHERE ((status = @p0 AND processed_at < @p1) OR (status = @p2 AND processed_at < @p3))",
			stmt.SQL)
		assert.Equal(t, "completed", stmt.Params["p0"])
		assert.Equal(t, ret.completedCutoff, stmt.Params["p1"])
		assert.Equal(t, "failed", stmt.Params["p2"])
		assert.Equal(t, ret.failedCutoff, stmt.Params["p3"])
	})

	t.Run("count statement uses the status cutoff", func(t *testing.T) {
		stmt := ret.countStatement("failed")
		assert.Equal(t, "SELECT COUNT(*) FROM outbox_events WHERE status = @p0 AND processed_at < @p1", stmt.SQL)
		assert.Equal(t, ret.failedCutoff, stmt.Params["p1"])
	})
}
