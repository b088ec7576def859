package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/catalog-search-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-search-service/internal/models/m_outbox"
)

// Product is the JSON shape of a product. Price is a decimal string so no
// precision is lost in transit.
type Product struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         string    `json:"price"`
	CategoryID    int64     `json:"categoryId"`
	CategoryName  string    `json:"categoryName"`
	StockQuantity int64     `json:"stockQuantity"`
	CreatedDate   time.Time `json:"createdDate"`
}

// ProductPage is the JSON shape of a search result page.
type ProductPage struct {
	Items      []Product `json:"items"`
	TotalCount int64     `json:"totalCount"`
	PageNumber int       `json:"pageNumber"`
	PageSize   int       `json:"pageSize"`
	TotalPages int       `json:"totalPages"`
}

// Category is a category in API responses.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ProductInput is the body of create and update requests. Price accepts a
// JSON number or string.
type ProductInput struct {
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	CategoryID    *int64           `json:"categoryId"`
	StockQuantity int64            `json:"stockQuantity"`
}

func (in ProductInput) check() error {
	reqErr := &requestError{}
	if in.Price == nil {
		reqErr.add("price", "price is required")
	}
	if in.CategoryID == nil {
		reqErr.add("categoryId", "categoryId is required")
	}
	return reqErr.orNil()
}

// CategoryInput is the body of a create category request.
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Event represents an outbox event in the HTTP response.
type Event struct {
	EventID     string  `json:"event_id"`
	EventType   string  `json:"event_type"`
	AggregateID string  `json:"aggregate_id"`
	Payload     string  `json:"payload"`
	Status      string  `json:"status"`
	RetryCount  int64   `json:"retry_count"`
	Error       *string `json:"error_message,omitempty"`
	CreatedAt   string  `json:"created_at"`
	ProcessedAt *string `json:"processed_at,omitempty"`
}

// ListEventsResponse represents the HTTP response for listing events.
type ListEventsResponse struct {
	Events     []Event `json:"events"`
	TotalCount int64   `json:"total_count"`
}

func toProduct(v *contracts.ProductView) Product {
	return Product{
		ID:            v.ID,
		Name:          v.Name,
		Description:   v.Description,
		Price:         v.Price.StringFixed(2),
		CategoryID:    v.CategoryID,
		CategoryName:  v.CategoryName,
		StockQuantity: v.StockQuantity,
		CreatedDate:   v.CreatedDate.UTC(),
	}
}

func toProducts(views []*contracts.ProductView) []Product {
	out := make([]Product, 0, len(views))
	for _, v := range views {
		out = append(out, toProduct(v))
	}
	return out
}

func toProductPage(p *contracts.ProductPage) ProductPage {
	return ProductPage{
		Items:      toProducts(p.Items),
		TotalCount: p.TotalCount,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
	}
}

func toCategory(v *contracts.CategoryView) Category {
	return Category{ID: v.ID, Name: v.Name, Description: v.Description}
}

func toEvent(d *m_outbox.Data) Event {
	event := Event{
		EventID:     d.EventID,
		EventType:   d.EventType,
		AggregateID: d.AggregateID,
		Status:      d.Status,
		RetryCount:  d.RetryCount,
		CreatedAt:   d.CreatedAt.UTC().Format(time.RFC3339),
	}
	if d.Payload.Valid {
		if raw, err := d.Payload.MarshalJSON(); err == nil {
			event.Payload = string(raw)
		}
	}
	if d.ErrorMessage.Valid {
		msg := d.ErrorMessage.StringVal
		event.Error = &msg
	}
	if d.ProcessedAt.Valid {
		processedAt := d.ProcessedAt.Time.UTC().Format(time.RFC3339)
		event.ProcessedAt = &processedAt
	}
	return event
}
