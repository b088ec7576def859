package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/catalog-search-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-search-service/internal/models/m_category"
)

var insertCategorySQL = fmt.Sprintf(
	"INSERT INTO %s (%s, %s, %s) VALUES (@name, @description, TRUE) THEN RETURN %s",
	m_category.TableName,
	m_category.Name, m_category.Description, m_category.IsActive,
	m_category.CategoryID,
)

// CategoryRepo implements CategoryRepository for Spanner.
// Inserts run in the caller's read-write transaction.
type CategoryRepo struct{}

// NewCategoryRepo creates a new CategoryRepo.
func NewCategoryRepo() contracts.CategoryRepository {
	return &CategoryRepo{}
}

// Insert stores a new category and returns its id.
func (r *CategoryRepo) Insert(ctx context.Context, txn *spanner.ReadWriteTransaction, category *domain.Category) (int64, error) {
	stmt := spanner.Statement{
		SQL: insertCategorySQL,
		Params: map[string]interface{}{
			"name":        category.Name(),
			"description": category.Description(),
		},
	}

	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to insert category: %w", err)
	}

	var id int64
	if err := row.Columns(&id); err != nil {
		return 0, fmt.Errorf("failed to parse category id: %w", err)
	}
	return id, nil
}
