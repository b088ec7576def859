package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Length limits shared by products and categories.
const (
	MaxNameLength        = 200
	MaxDescriptionLength = 1000
	PriceScale           = 2
)

// MaxPrice is the exclusive upper bound of a storable price (Spanner NUMERIC
// keeps 29 integer digits).
var MaxPrice = decimal.New(1, 29)

// ProductFields are the mutable attributes of a product. Create sets them
// all and update replaces them all; there is no partial update.
type ProductFields struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	CategoryID    int64
	StockQuantity int64
}

// Validate checks every field and reports all violations at once.
func (f ProductFields) Validate() error {
	var errs []error

	if err := validateName(f.Name); err != nil {
		errs = append(errs, fieldErr("name", err))
	}
	if utf8.RuneCountInString(f.Description) > MaxDescriptionLength {
		errs = append(errs, fieldErr("description", ErrDescriptionTooLong))
	}
	if f.Price.IsNegative() {
		errs = append(errs, fieldErr("price", ErrNegativePrice))
	} else if f.Price.GreaterThanOrEqual(MaxPrice) {
		errs = append(errs, fieldErr("price", ErrPriceTooLarge))
	} else if !f.Price.Equal(f.Price.Round(PriceScale)) {
		errs = append(errs, fieldErr("price", ErrPricePrecision))
	}
	if f.CategoryID <= 0 {
		errs = append(errs, fieldErr("categoryId", ErrInvalidCategory))
	}
	if f.StockQuantity < 0 {
		errs = append(errs, fieldErr("stockQuantity", ErrNegativeStock))
	}

	return errors.Join(errs...)
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// Product is the catalog aggregate. A product is created active and can only
// be retired once; there is no way back to active.
type Product struct {
	id          int64
	fields      ProductFields
	createdDate time.Time
	active      bool

	// Domain events to be published
	events []DomainEvent
}

// NewProduct creates a new, not yet persisted, active product.
// The id is assigned by the store on insert. createdDate is kept at the
// store's microsecond precision.
func NewProduct(fields ProductFields, now time.Time) (*Product, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	return &Product{
		fields:      fields,
		createdDate: now.UTC().Truncate(time.Microsecond),
		active:      true,
		events:      make([]DomainEvent, 0),
	}, nil
}

// ReconstructProduct reconstitutes a Product from the store.
func ReconstructProduct(id int64, fields ProductFields, createdDate time.Time, active bool) *Product {
	return &Product{
		id:          id,
		fields:      fields,
		createdDate: createdDate,
		active:      active,
		events:      make([]DomainEvent, 0),
	}
}

// Getters
func (p *Product) ID() int64                   { return p.id }
func (p *Product) Name() string                { return p.fields.Name }
func (p *Product) Description() string         { return p.fields.Description }
func (p *Product) Price() decimal.Decimal      { return p.fields.Price }
func (p *Product) CategoryID() int64           { return p.fields.CategoryID }
func (p *Product) StockQuantity() int64        { return p.fields.StockQuantity }
func (p *Product) Fields() ProductFields       { return p.fields }
func (p *Product) CreatedDate() time.Time      { return p.createdDate }
func (p *Product) IsActive() bool              { return p.active }
func (p *Product) DomainEvents() []DomainEvent { return p.events }

// AssignID records the store-assigned identity and emits the creation event.
func (p *Product) AssignID(id int64) {
	p.id = id
	p.recordEvent(&ProductCreatedEvent{
		ProductID:     id,
		Name:          p.fields.Name,
		Description:   p.fields.Description,
		Price:         p.fields.Price,
		CategoryID:    p.fields.CategoryID,
		StockQuantity: p.fields.StockQuantity,
		CreatedDate:   p.createdDate,
	})
}

// MarkUpdated emits the update event for the current field values.
func (p *Product) MarkUpdated(at time.Time) {
	p.recordEvent(&ProductUpdatedEvent{
		ProductID:     p.id,
		Name:          p.fields.Name,
		Description:   p.fields.Description,
		Price:         p.fields.Price,
		CategoryID:    p.fields.CategoryID,
		StockQuantity: p.fields.StockQuantity,
		UpdatedAt:     at.UTC(),
	})
}

// MarkDeleted retires the product and emits the deletion event.
func (p *Product) MarkDeleted(at time.Time) {
	p.active = false
	p.recordEvent(&ProductDeletedEvent{
		ProductID: p.id,
		DeletedAt: at.UTC(),
	})
}

// ClearEvents drops recorded events, e.g. before a transaction retry.
func (p *Product) ClearEvents() {
	p.events = make([]DomainEvent, 0)
}

func (p *Product) recordEvent(event DomainEvent) {
	p.events = append(p.events, event)
}
