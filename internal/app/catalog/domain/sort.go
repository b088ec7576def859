package domain

import "strings"

// SortKey is the closed set of product orderings.
type SortKey int

const (
	SortByName SortKey = iota
	SortByPrice
	SortByCreatedDate
	SortByStockQuantity
)

var sortKeyNames = map[string]SortKey{
	"name":          SortByName,
	"price":         SortByPrice,
	"createddate":   SortByCreatedDate,
	"stockquantity": SortByStockQuantity,
}

// ParseSortKey matches s case-insensitively against the known keys.
func ParseSortKey(s string) (SortKey, bool) {
	key, ok := sortKeyNames[strings.ToLower(s)]
	return key, ok
}

func (k SortKey) String() string {
	switch k {
	case SortByPrice:
		return "price"
	case SortByCreatedDate:
		return "createddate"
	case SortByStockQuantity:
		return "stockquantity"
	default:
		return "name"
	}
}

// Ordering is a resolved sort request.
type Ordering struct {
	Key        SortKey
	Descending bool
}

// DefaultOrdering is name ascending.
var DefaultOrdering = Ordering{Key: SortByName}

// NewOrdering resolves raw sortBy/sortOrder input. Only "desc" (any case)
// sorts descending. An unknown or empty sortBy falls back to
// DefaultOrdering, and sortOrder is ignored in that case.
func NewOrdering(sortBy, sortOrder string) Ordering {
	key, ok := ParseSortKey(sortBy)
	if !ok {
		return DefaultOrdering
	}
	return Ordering{
		Key:        key,
		Descending: strings.ToLower(sortOrder) == "desc",
	}
}
