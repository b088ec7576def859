package create_product

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-search-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/repo"
	"github.com/light-bringer/catalog-search-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-search-service/internal/testutil"
)

func setup() (*Interactor, *testutil.MemStore, *testutil.Runner, time.Time) {
	now := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	store := testutil.NewMemStore()
	store.AddCategory(1, "Electronics", "Electronic devices and accessories")
	runner := &testutil.Runner{}
	return NewInteractor(store, repo.NewOutboxRepo(nil), runner, clock.NewMockClock(now)), store, runner, now
}

func TestInteractor_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("creates active product with category name", func(t *testing.T) {
		interactor, store, runner, now := setup()

		view, err := interactor.Execute(ctx, &Request{
			Name:          "Laptop",
			Description:   "High-performance laptop",
			Price:         decimal.RequireFromString("999.99"),
			CategoryID:    1,
			StockQuantity: 50,
		})
		require.NoError(t, err)

		assert.NotZero(t, view.ID)
		assert.Equal(t, "Electronics", view.CategoryName)
		assert.Equal(t, now, view.CreatedDate)
		assert.True(t, store.IsActive(view.ID))

		// one outbox event in the same commit
		require.Len(t, runner.Plans, 1)
		assert.Equal(t, 1, runner.Plans[0].Count())
	})

	t.Run("validation failure never opens a transaction", func(t *testing.T) {
		interactor, _, runner, _ := setup()

		_, err := interactor.Execute(ctx, &Request{
			Name:       "",
			Price:      decimal.RequireFromString("-1"),
			CategoryID: 1,
		})
		assert.ErrorIs(t, err, domain.ErrEmptyName)
		assert.ErrorIs(t, err, domain.ErrNegativePrice)
		assert.Empty(t, runner.Plans)
	})

	t.Run("unknown category", func(t *testing.T) {
		interactor, _, runner, _ := setup()

		_, err := interactor.Execute(ctx, &Request{
			Name:       "Orphan",
			Price:      decimal.NewFromInt(5),
			CategoryID: 99,
		})
		assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
		assert.Empty(t, runner.Plans)
	})

	t.Run("transaction failure is returned", func(t *testing.T) {
		interactor, _, runner, _ := setup()
		runner.Err = errors.New("aborted")

		_, err := interactor.Execute(ctx, &Request{
			Name:       "Laptop",
			Price:      decimal.NewFromInt(5),
			CategoryID: 1,
		})
		assert.ErrorIs(t, err, runner.Err)
	})
}
