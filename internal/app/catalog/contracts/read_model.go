package contracts

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/catalog-search-service/internal/app/catalog/domain"
)

// ProductView is the read shape of a product, joined with its category name.
type ProductView struct {
	ID            int64
	Name          string
	Description   string
	Price         decimal.Decimal
	CategoryID    int64
	CategoryName  string
	StockQuantity int64
	CreatedDate   time.Time
}

// CategoryView is the read shape of a category.
type CategoryView struct {
	ID          int64
	Name        string
	Description string
}

// ProductPage is one page of a product search.
type ProductPage struct {
	Items      []*ProductView
	TotalCount int64
	PageNumber int
	PageSize   int
	TotalPages int
}

// SearchSnapshot reads active products at a single point in time, so a
// count and the page fetched after it see the same data. Close must be
// called when done.
type SearchSnapshot interface {
	// CountActive counts active products matching pred, before pagination.
	CountActive(ctx context.Context, pred domain.Predicate) (int64, error)

	// FetchActive returns matching active products sorted by ord, then
	// skips offset rows and returns at most limit.
	FetchActive(ctx context.Context, pred domain.Predicate, ord domain.Ordering, offset, limit int64) ([]*ProductView, error)

	Close()
}

// SearchReader opens search snapshots.
type SearchReader interface {
	Snapshot() SearchSnapshot
}

// ProductReader reads individual and listed active products.
type ProductReader interface {
	// GetActiveProduct returns domain.ErrProductNotFound for missing or
	// inactive ids.
	GetActiveProduct(ctx context.Context, id int64) (*ProductView, error)

	// ListActiveProducts returns every active product ordered by name.
	ListActiveProducts(ctx context.Context) ([]*ProductView, error)
}

// CategoryReader reads categories.
type CategoryReader interface {
	ListActiveCategories(ctx context.Context) ([]*CategoryView, error)
}

// ReadModel defines the interface for catalog queries.
// Read models bypass the domain layer.
type ReadModel interface {
	SearchReader
	ProductReader
	CategoryReader
}
