package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/spf13/pflag"

	"github.com/light-bringer/catalog-search-service/internal/models/m_outbox"
	"github.com/light-bringer/catalog-search-service/internal/pkg/query"
)

// Config for the outbox cleanup job.
type Config struct {
	SpannerDB              string
	CompletedRetentionDays int
	FailedRetentionDays    int
	DryRun                 bool
}

func main() {
	config := Config{}
	pflag.StringVar(&config.SpannerDB, "database", "", "Spanner database (required, format: projects/PROJECT/instances/INSTANCE/databases/DATABASE)")
	pflag.IntVar(&config.CompletedRetentionDays, "completed-retention", 30, "Retention days for completed events")
	pflag.IntVar(&config.FailedRetentionDays, "failed-retention", 90, "Retention days for failed events")
	pflag.BoolVar(&config.DryRun, "dry-run", false, "Show what would be deleted without actually deleting")
	pflag.Parse()

	if config.SpannerDB == "" {
		log.Fatal("Error: --database flag is required")
	}

	if err := cleanupOutbox(context.Background(), config); err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}

	log.Println("Cleanup completed successfully")
}

// retention describes which finished events are old enough to delete.
type retention struct {
	completedCutoff time.Time
	failedCutoff    time.Time
}

func newRetention(now time.Time, config Config) retention {
	return retention{
		completedCutoff: now.AddDate(0, 0, -config.CompletedRetentionDays),
		failedCutoff:    now.AddDate(0, 0, -config.FailedRetentionDays),
	}
}

// cutoff returns the age limit for a terminal status.
func (r retention) cutoff(status string) time.Time {
	if status == m_outbox.StatusFailed {
		return r.failedCutoff
	}
	return r.completedCutoff
}

func (r retention) condition() query.Condition {
	return query.Or(
		query.And(query.Eq(m_outbox.Status, m_outbox.StatusCompleted), query.Lt(m_outbox.ProcessedAt, r.completedCutoff)),
		query.And(query.Eq(m_outbox.Status, m_outbox.StatusFailed), query.Lt(m_outbox.ProcessedAt, r.failedCutoff)),
	)
}

// countStatement counts expired events of one status.
func (r retention) countStatement(status string) spanner.Statement {
	return query.From(m_outbox.TableName).
		Where(query.Eq(m_outbox.Status, status), query.Lt(m_outbox.ProcessedAt, r.cutoff(status))).
		Count().
		Build()
}

func (r retention) deleteStatement() spanner.Statement {
	where, params := r.condition().SQL(0)
	return spanner.Statement{
		SQL:    fmt.Sprintf("DELETE FROM %s WHERE %s", m_outbox.TableName, where),
		Params: params,
	}
}

func cleanupOutbox(ctx context.Context, config Config) error {
	client, err := spanner.NewClient(ctx, config.SpannerDB)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	ret := newRetention(time.Now().UTC(), config)

	log.Printf("Starting outbox cleanup...")
	log.Printf("  Completed events cutoff: %s (retention: %d days)", ret.completedCutoff.Format(time.RFC3339), config.CompletedRetentionDays)
	log.Printf("  Failed events cutoff: %s (retention: %d days)", ret.failedCutoff.Format(time.RFC3339), config.FailedRetentionDays)
	log.Printf("  Dry run: %v", config.DryRun)

	if config.DryRun {
		return dryRunCleanup(ctx, client, ret)
	}
	return performCleanup(ctx, client, ret)
}

func dryRunCleanup(ctx context.Context, client *spanner.Client, ret retention) error {
	txn := client.ReadOnlyTransaction()
	defer txn.Close()

	var total int64
	for _, status := range []string{m_outbox.StatusCompleted, m_outbox.StatusFailed} {
		count, err := countRows(ctx, txn, ret.countStatement(status))
		if err != nil {
			return fmt.Errorf("failed to count %s events: %w", status, err)
		}
		log.Printf("  Would delete %d %s events", count, status)
		total += count
	}

	log.Printf("DRY RUN: Would delete %d total events", total)
	log.Println("Run without --dry-run to actually delete events")
	return nil
}

func performCleanup(ctx context.Context, client *spanner.Client, ret retention) error {
	// Partitioned DML: the table can outgrow a single transaction's mutation limit
	rowCount, err := client.PartitionedUpdate(ctx, ret.deleteStatement())
	if err != nil {
		return fmt.Errorf("failed to delete events: %w", err)
	}

	if rowCount == 0 {
		log.Println("No old events to delete")
		return nil
	}
	log.Printf("Successfully deleted at least %d events", rowCount)
	return nil
}

func countRows(ctx context.Context, txn *spanner.ReadOnlyTransaction, stmt spanner.Statement) (int64, error) {
	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := row.Columns(&count); err != nil {
		return 0, fmt.Errorf("failed to parse count: %w", err)
	}
	return count, nil
}
