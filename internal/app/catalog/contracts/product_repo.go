package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/catalog-search-service/internal/app/catalog/domain"
)

// Queryer runs a statement. Both read-only and read-write transactions
// satisfy it.
type Queryer interface {
	Query(ctx context.Context, statement spanner.Statement) *spanner.RowIterator
}

// ProductRepository defines product persistence inside a read-write
// transaction. Every statement that targets an existing product is guarded
// by is_active = TRUE.
type ProductRepository interface {
	// Insert stores a new product and returns the store-assigned id.
	// An unknown category yields domain.ErrCategoryNotFound.
	Insert(ctx context.Context, txn *spanner.ReadWriteTransaction, product *domain.Product) (int64, error)

	// UpdateActive replaces the mutable fields of an active product and
	// returns it as stored. Missing or inactive ids yield
	// domain.ErrProductNotFound.
	UpdateActive(ctx context.Context, txn *spanner.ReadWriteTransaction, id int64, fields domain.ProductFields) (*domain.Product, error)

	// SoftDeleteActive flips an active product to inactive and returns it.
	// Missing or already inactive ids yield domain.ErrProductNotFound.
	SoftDeleteActive(ctx context.Context, txn *spanner.ReadWriteTransaction, id int64) (*domain.Product, error)

	// View reads one active product joined with its category name.
	View(ctx context.Context, q Queryer, id int64) (*ProductView, error)
}

// CategoryRepository defines category persistence.
type CategoryRepository interface {
	// Insert stores a new category and returns the store-assigned id.
	Insert(ctx context.Context, txn *spanner.ReadWriteTransaction, category *domain.Category) (int64, error)
}
