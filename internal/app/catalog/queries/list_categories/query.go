package list_categories

import (
	"context"

	"github.com/light-bringer/catalog-search-service/internal/app/catalog/contracts"
)

// Query lists active categories.
type Query struct {
	readModel contracts.CategoryReader
}

func NewQuery(readModel contracts.CategoryReader) *Query {
	return &Query{readModel: readModel}
}

func (q *Query) Execute(ctx context.Context) ([]*contracts.CategoryView, error) {
	return q.readModel.ListActiveCategories(ctx)
}
