package create_category

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-search-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/repo"
	"github.com/light-bringer/catalog-search-service/internal/testutil"
)

func TestInteractor_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("creates category", func(t *testing.T) {
		store := testutil.NewMemStore()
		runner := &testutil.Runner{}
		interactor := NewInteractor(store.CategoryRepo(), repo.NewOutboxRepo(nil), runner)

		view, err := interactor.Execute(ctx, &Request{Name: "Toys", Description: "Games and toys"})
		require.NoError(t, err)
		assert.NotZero(t, view.ID)
		assert.Equal(t, "Toys", view.Name)

		categories, err := store.ListActiveCategories(ctx)
		require.NoError(t, err)
		require.Len(t, categories, 1)
		assert.Equal(t, view.ID, categories[0].ID)
		assert.Equal(t, 1, runner.Mutations())
	})

	t.Run("description required", func(t *testing.T) {
		runner := &testutil.Runner{}
		interactor := NewInteractor(testutil.NewMemStore().CategoryRepo(), repo.NewOutboxRepo(nil), runner)

		_, err := interactor.Execute(ctx, &Request{Name: "Toys"})
		assert.ErrorIs(t, err, domain.ErrEmptyCategoryDescription)
		assert.Empty(t, runner.Plans)
	})
}
