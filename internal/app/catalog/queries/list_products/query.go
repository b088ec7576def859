package list_products

import (
	"context"

	"github.com/light-bringer/catalog-search-service/internal/app/catalog/contracts"
)

// Query lists every active product.
type Query struct {
	readModel contracts.ProductReader
}

// NewQuery creates a new list products query.
func NewQuery(readModel contracts.ProductReader) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute returns active products ordered by name.
func (q *Query) Execute(ctx context.Context) ([]*contracts.ProductView, error) {
	return q.readModel.ListActiveProducts(ctx)
}
