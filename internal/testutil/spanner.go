package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-search-service/internal/models/m_category"
	"github.com/light-bringer/catalog-search-service/internal/models/m_product"
	"github.com/light-bringer/catalog-search-service/internal/pkg/committer"
)

// SetupSpannerTest creates a test Spanner client against a migrated
// database and returns a cleanup function. Tables are emptied before and
// after the test.
func SetupSpannerTest(t *testing.T) (*spanner.Client, func()) {
	t.Helper()

	if os.Getenv("SPANNER_EMULATOR_HOST") == "" {
		t.Skip("SPANNER_EMULATOR_HOST not set")
	}

	ctx := context.Background()
	client, err := spanner.NewClient(ctx, GetTestSpannerDB())
	require.NoError(t, err, "failed to create Spanner client")

	CleanDatabase(t, client)

	cleanup := func() {
		CleanDatabase(t, client)
		client.Close()
	}

	return client, cleanup
}

// GetTestSpannerDB returns the test Spanner database string.
func GetTestSpannerDB() string {
	if db := os.Getenv("SPANNER_TEST_DATABASE"); db != "" {
		return db
	}
	return "projects/test-project/instances/dev-instance/databases/catalog-test"
}

// CleanDatabase deletes all rows. Products go before categories because of
// the foreign key.
func CleanDatabase(t *testing.T, client *spanner.Client) {
	t.Helper()

	mutations := []*spanner.Mutation{
		spanner.Delete("outbox_events", spanner.AllKeys()),
		spanner.Delete(m_product.TableName, spanner.AllKeys()),
		spanner.Delete(m_category.TableName, spanner.AllKeys()),
	}

	_, err := client.Apply(context.Background(), mutations)
	require.NoError(t, err, "failed to clean database")
}

// SeedScenario writes the reference scenario with fixed ids.
func SeedScenario(t *testing.T, client *spanner.Client) {
	t.Helper()

	plan := committer.NewPlan()
	for _, c := range ScenarioCategories {
		plan.Add(m_category.NewModel().UpsertMut(&m_category.Data{
			CategoryID:  c.ID,
			Name:        c.Name,
			Description: c.Description,
			IsActive:    true,
		}))
	}
	for i, p := range ScenarioProducts() {
		plan.Add(productMut(p.ID, p, ScenarioBase.Add(time.Duration(i)*time.Hour), true))
	}

	err := committer.NewCommitter(client).Apply(context.Background(), plan)
	require.NoError(t, err, "failed to seed scenario")
}

// InsertTestProduct writes one product row with a fixed id.
func InsertTestProduct(t *testing.T, client *spanner.Client, p ScenarioProduct, createdDate time.Time, active bool) {
	t.Helper()

	_, err := client.Apply(context.Background(), []*spanner.Mutation{productMut(p.ID, p, createdDate, active)})
	require.NoError(t, err, "failed to insert test product")
}

func productMut(id int64, p ScenarioProduct, createdDate time.Time, active bool) *spanner.Mutation {
	data := &m_product.Data{
		ProductID:     id,
		Name:          p.Fields.Name,
		Description:   p.Fields.Description,
		CategoryID:    p.Fields.CategoryID,
		StockQuantity: p.Fields.StockQuantity,
		CreatedDate:   createdDate,
		IsActive:      active,
	}
	data.Price = *p.Fields.Price.Rat()
	return m_product.NewModel().UpsertMut(data)
}

// AssertRowCount asserts the number of rows in a table.
func AssertRowCount(t *testing.T, client *spanner.Client, table string, expectedCount int) {
	t.Helper()

	stmt := spanner.Statement{
		SQL: fmt.Sprintf("SELECT COUNT(*) FROM %s", table),
	}

	iter := client.Single().Query(context.Background(), stmt)
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err, "failed to query row count")

	var count int64
	require.NoError(t, row.Columns(&count), "failed to parse count")
	require.Equal(t, int64(expectedCount), count, "unexpected row count in table %s", table)
}
