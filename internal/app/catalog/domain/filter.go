package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SearchFilter is the optional-filter part of a product search. A nil field
// places no constraint on the result.
type SearchFilter struct {
	SearchTerm *string
	CategoryID *int64
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	InStock    *bool
}

// Predicate is the normalized, conjunctive form of a SearchFilter. It always
// applies to active products only; the store adds that gate to every
// statement built from a Predicate.
type Predicate struct {
	// Tokens must each appear, ignoring case, in the name or the description.
	Tokens     []string
	CategoryID *int64
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	// RequireInStock limits results to stock_quantity > 0.
	RequireInStock bool
}

// BuildPredicate turns a filter request into a Predicate.
//
// InStock is asymmetric: true requires stock, false and nil are both
// "don't care". False never selects out-of-stock products.
func BuildPredicate(f SearchFilter) Predicate {
	p := Predicate{
		CategoryID: f.CategoryID,
		MinPrice:   f.MinPrice,
		MaxPrice:   f.MaxPrice,
	}
	if f.SearchTerm != nil {
		p.Tokens = Tokenize(*f.SearchTerm)
	}
	if f.InStock != nil && *f.InStock {
		p.RequireInStock = true
	}
	return p
}

// Tokenize splits a search term on whitespace, dropping empty tokens.
func Tokenize(term string) []string {
	return strings.Fields(term)
}

// IsEmpty reports whether the predicate selects every active product.
func (p Predicate) IsEmpty() bool {
	return len(p.Tokens) == 0 && p.CategoryID == nil && p.MinPrice == nil &&
		p.MaxPrice == nil && !p.RequireInStock
}
