package get_product

import (
	"context"

	"github.com/light-bringer/catalog-search-service/internal/app/catalog/contracts"
)

// Request contains the product ID to retrieve.
type Request struct {
	ProductID int64
}

// Query handles the get product query use case.
type Query struct {
	readModel contracts.ProductReader
}

// NewQuery creates a new get product query.
func NewQuery(readModel contracts.ProductReader) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves an active product by ID. Inactive products are
// reported as domain.ErrProductNotFound.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.ProductView, error) {
	return q.readModel.GetActiveProduct(ctx, req.ProductID)
}
