package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Event types written to the outbox.
const (
	EventProductCreated  = "product.created"
	EventProductUpdated  = "product.updated"
	EventProductDeleted  = "product.deleted"
	EventCategoryCreated = "category.created"
)

// DomainEvent is the base interface for all domain events.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// ProductCreatedEvent is emitted when a product is created.
type ProductCreatedEvent struct {
	ProductID     int64           `json:"productId"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	CategoryID    int64           `json:"categoryId"`
	StockQuantity int64           `json:"stockQuantity"`
	CreatedDate   time.Time       `json:"createdDate"`
}

func (e *ProductCreatedEvent) EventType() string {
	return EventProductCreated
}

func (e *ProductCreatedEvent) AggregateID() string {
	return strconv.FormatInt(e.ProductID, 10)
}

// ProductUpdatedEvent carries the full replacement field set of an update.
type ProductUpdatedEvent struct {
	ProductID     int64           `json:"productId"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	CategoryID    int64           `json:"categoryId"`
	StockQuantity int64           `json:"stockQuantity"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func (e *ProductUpdatedEvent) EventType() string {
	return EventProductUpdated
}

func (e *ProductUpdatedEvent) AggregateID() string {
	return strconv.FormatInt(e.ProductID, 10)
}

// ProductDeletedEvent is emitted when a product is soft deleted.
type ProductDeletedEvent struct {
	ProductID int64     `json:"productId"`
	DeletedAt time.Time `json:"deletedAt"`
}

func (e *ProductDeletedEvent) EventType() string {
	return EventProductDeleted
}

func (e *ProductDeletedEvent) AggregateID() string {
	return strconv.FormatInt(e.ProductID, 10)
}

// CategoryCreatedEvent is emitted when a category is created.
type CategoryCreatedEvent struct {
	CategoryID  int64  `json:"categoryId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (e *CategoryCreatedEvent) EventType() string {
	return EventCategoryCreated
}

func (e *CategoryCreatedEvent) AggregateID() string {
	return strconv.FormatInt(e.CategoryID, 10)
}
