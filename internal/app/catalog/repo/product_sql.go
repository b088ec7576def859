package repo

import (
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/catalog-search-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-search-service/internal/models/m_category"
	"github.com/light-bringer/catalog-search-service/internal/models/m_product"
	"github.com/light-bringer/catalog-search-service/internal/pkg/query"
)

// Table aliases used by every product read.
const (
	productAlias  = "p"
	categoryAlias = "c"
)

const numericScale = 9

func pcol(name string) string { return productAlias + "." + name }
func ccol(name string) string { return categoryAlias + "." + name }

// productViewColumns is the select list scanned by scanProductView, in order.
var productViewColumns = []string{
	pcol(m_product.ProductID),
	pcol(m_product.Name),
	pcol(m_product.Description),
	pcol(m_product.Price),
	pcol(m_product.CategoryID),
	ccol(m_category.Name) + " AS category_name",
	pcol(m_product.StockQuantity),
	pcol(m_product.CreatedDate),
}

// activeProducts is the base of every product read: products joined with
// their category and restricted to active rows.
func activeProducts() *query.Builder {
	return query.From(m_product.TableName+" "+productAlias).
		Join(
			m_category.TableName+" "+categoryAlias,
			ccol(m_category.CategoryID)+" = "+pcol(m_product.CategoryID),
		).
		Select(productViewColumns...).
		Where(query.Eq(pcol(m_product.IsActive), true))
}

// predicateConditions translates a search predicate into WHERE conditions.
// The active gate is already part of activeProducts.
func predicateConditions(pred domain.Predicate) []query.Condition {
	conds := make([]query.Condition, 0, len(pred.Tokens)+4)

	for _, token := range pred.Tokens {
		conds = append(conds, query.ContainsFold(token, pcol(m_product.Name), pcol(m_product.Description)))
	}
	if pred.CategoryID != nil {
		conds = append(conds, query.Eq(pcol(m_product.CategoryID), *pred.CategoryID))
	}
	// NUMERIC holds 9 fractional digits. Rounding each bound toward the inside
	// of the range at that scale matches the same stored prices as the exact bound.
	if pred.MinPrice != nil {
		conds = append(conds, query.Gte(pcol(m_product.Price), pred.MinPrice.RoundCeil(numericScale).Rat()))
	}
	if pred.MaxPrice != nil {
		conds = append(conds, query.Lte(pcol(m_product.Price), pred.MaxPrice.RoundFloor(numericScale).Rat()))
	}
	if pred.RequireInStock {
		conds = append(conds, query.Gt(pcol(m_product.StockQuantity), int64(0)))
	}

	return conds
}

// sortColumn maps a sort key to its column.
func sortColumn(key domain.SortKey) string {
	switch key {
	case domain.SortByPrice:
		return pcol(m_product.Price)
	case domain.SortByCreatedDate:
		return pcol(m_product.CreatedDate)
	case domain.SortByStockQuantity:
		return pcol(m_product.StockQuantity)
	case domain.SortByName:
		return pcol(m_product.Name)
	default:
		panic(fmt.Sprintf("repo: unhandled sort key %d", key))
	}
}

// applyOrdering adds the requested ordering followed by an id tiebreak, so
// equal sort values page deterministically.
func applyOrdering(b *query.Builder, ord domain.Ordering) *query.Builder {
	dir := query.Asc
	if ord.Descending {
		dir = query.Desc
	}
	return b.
		OrderBy(sortColumn(ord.Key), dir).
		OrderBy(pcol(m_product.ProductID), query.Asc)
}

// searchStatement builds the page query for a search.
func searchStatement(pred domain.Predicate, ord domain.Ordering, offset, limit int64) spanner.Statement {
	b := activeProducts().Where(predicateConditions(pred)...)
	return applyOrdering(b, ord).Limit(limit).Offset(offset).Build()
}

// countStatement counts the rows searchStatement pages through.
func countStatement(pred domain.Predicate) spanner.Statement {
	return activeProducts().Where(predicateConditions(pred)...).Count().Build()
}

// productByIDStatement reads a single active product.
func productByIDStatement(id int64) spanner.Statement {
	return activeProducts().Where(query.Eq(pcol(m_product.ProductID), id)).Build()
}

// listStatement reads every active product by name.
func listStatement() spanner.Statement {
	return applyOrdering(activeProducts(), domain.DefaultOrdering).Build()
}
