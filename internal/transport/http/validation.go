package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/light-bringer/catalog-search-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/queries/list_events"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/queries/search_products"
)

// PageLimits bounds the page size a search may ask for.
type PageLimits struct {
	DefaultPageSize int
	MaxPageSize     int
}

// parseSearchRequest reads the search query string. Absent parameters leave
// the matching filter unset; malformed ones are all reported together.
func parseSearchRequest(values url.Values, limits PageLimits) (*search_products.Request, error) {
	reqErr := &requestError{}
	req := &search_products.Request{
		SortBy:     values.Get("sortBy"),
		SortOrder:  values.Get("sortOrder"),
		PageNumber: 1,
		PageSize:   limits.DefaultPageSize,
	}

	if values.Has("searchTerm") {
		term := values.Get("searchTerm")
		req.Filter.SearchTerm = &term
	}

	if raw := values.Get("categoryId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			reqErr.add("categoryId", "categoryId must be an integer")
		} else {
			req.Filter.CategoryID = &id
		}
	}

	req.Filter.MinPrice = parsePriceBound(values, "minPrice", reqErr)
	req.Filter.MaxPrice = parsePriceBound(values, "maxPrice", reqErr)

	if raw := values.Get("inStock"); raw != "" {
		inStock, err := strconv.ParseBool(raw)
		if err != nil {
			reqErr.add("inStock", "inStock must be true or false")
		} else {
			req.Filter.InStock = &inStock
		}
	}

	if raw := values.Get("pageNumber"); raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			reqErr.add("pageNumber", "pageNumber must be an integer")
		case n < 1:
			reqErr.add("pageNumber", "pageNumber must be at least 1")
		default:
			req.PageNumber = n
		}
	}

	if raw := values.Get("pageSize"); raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			reqErr.add("pageSize", "pageSize must be an integer")
		case n < 1 || n > limits.MaxPageSize:
			reqErr.add("pageSize", fmt.Sprintf("pageSize must be between 1 and %d", limits.MaxPageSize))
		default:
			req.PageSize = n
		}
	}

	if err := reqErr.orNil(); err != nil {
		return nil, err
	}
	return req, nil
}

// parsePriceBound reads a decimal bound. Bounds may be negative or carry any
// scale, but must fit the price column.
func parsePriceBound(values url.Values, name string, reqErr *requestError) *decimal.Decimal {
	raw := values.Get(name)
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		reqErr.add(name, name+" must be a decimal number")
		return nil
	}
	if d.Abs().GreaterThanOrEqual(domain.MaxPrice) {
		reqErr.add(name, name+" is out of range")
		return nil
	}
	return &d
}

// parseEventsRequest reads the events query string.
func parseEventsRequest(values url.Values) (*list_events.Request, error) {
	reqErr := &requestError{}
	req := &list_events.Request{Limit: list_events.DefaultLimit}

	if v := values.Get("event_type"); v != "" {
		req.EventType = &v
	}
	if v := values.Get("aggregate_id"); v != "" {
		req.AggregateID = &v
	}
	if v := values.Get("status"); v != "" {
		req.Status = &v
	}
	if raw := values.Get("processed"); raw != "" {
		processed, err := strconv.ParseBool(raw)
		if err != nil {
			reqErr.add("processed", "processed must be true or false")
		} else {
			req.Processed = &processed
		}
	}
	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			reqErr.add("limit", "limit must be a positive integer")
		} else {
			req.Limit = limit
		}
	}

	if err := reqErr.orNil(); err != nil {
		return nil, err
	}
	return req, nil
}

// productID reads the {id} route parameter.
func productID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		reqErr := &requestError{}
		reqErr.add("id", "id must be an integer")
		return 0, reqErr
	}
	return id, nil
}
