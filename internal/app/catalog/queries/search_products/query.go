package search_products

import (
	"context"
	"fmt"

	"github.com/light-bringer/catalog-search-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-search-service/internal/pkg/pager"
)

// Request is a product search. PageNumber and PageSize must be at least 1;
// callers validate them.
type Request struct {
	Filter     domain.SearchFilter
	SortBy     string
	SortOrder  string
	PageNumber int
	PageSize   int
}

// Query handles the product search use case.
type Query struct {
	reader contracts.SearchReader
}

// NewQuery creates a new search query.
func NewQuery(reader contracts.SearchReader) *Query {
	return &Query{
		reader: reader,
	}
}

// Execute counts the matching active products, then fetches the requested
// page in the requested order. Both reads share one snapshot, so the total
// and the page agree even under concurrent writes.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.ProductPage, error) {
	pred := domain.BuildPredicate(req.Filter)
	ord := domain.NewOrdering(req.SortBy, req.SortOrder)
	pg := pager.New(req.PageNumber, req.PageSize)

	snap := q.reader.Snapshot()
	defer snap.Close()

	total, err := snap.CountActive(ctx, pred)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	items := []*contracts.ProductView{}
	if !pg.PastEnd(total) {
		items, err = snap.FetchActive(ctx, pred, ord, pg.Offset(), pg.Limit())
		if err != nil {
			return nil, fmt.Errorf("failed to search products: %w", err)
		}
	}

	return &contracts.ProductPage{
		Items:      items,
		TotalCount: total,
		PageNumber: pg.Number(),
		PageSize:   pg.Size(),
		TotalPages: pg.TotalPages(total),
	}, nil
}
