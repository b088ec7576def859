package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFields() ProductFields {
	return ProductFields{
		Name:          "Laptop",
		Description:   "High-performance laptop",
		Price:         decimal.RequireFromString("999.99"),
		CategoryID:    1,
		StockQuantity: 10,
	}
}

func TestNewProduct(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 123456789, time.UTC)

	t.Run("valid product creation", func(t *testing.T) {
		p, err := NewProduct(validFields(), now)
		require.NoError(t, err)
		assert.Equal(t, int64(0), p.ID())
		assert.Equal(t, "Laptop", p.Name())
		assert.True(t, p.IsActive())
		assert.Equal(t, now.Truncate(time.Microsecond), p.CreatedDate())
		assert.Empty(t, p.DomainEvents())
	})

	t.Run("zero price and zero stock are allowed", func(t *testing.T) {
		f := validFields()
		f.Price = decimal.Zero
		f.StockQuantity = 0
		_, err := NewProduct(f, now)
		require.NoError(t, err)
	})

	t.Run("empty name returns error", func(t *testing.T) {
		f := validFields()
		f.Name = "   "
		_, err := NewProduct(f, now)
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("name over limit returns error", func(t *testing.T) {
		f := validFields()
		f.Name = strings.Repeat("a", MaxNameLength+1)
		_, err := NewProduct(f, now)
		assert.ErrorIs(t, err, ErrNameTooLong)
	})

	t.Run("name limit counts characters not bytes", func(t *testing.T) {
		f := validFields()
		f.Name = strings.Repeat("é", MaxNameLength)
		_, err := NewProduct(f, now)
		assert.NoError(t, err)
	})

	t.Run("description over limit returns error", func(t *testing.T) {
		f := validFields()
		f.Description = strings.Repeat("a", MaxDescriptionLength+1)
		_, err := NewProduct(f, now)
		assert.ErrorIs(t, err, ErrDescriptionTooLong)
	})

	t.Run("negative price returns error", func(t *testing.T) {
		f := validFields()
		f.Price = decimal.RequireFromString("-0.01")
		_, err := NewProduct(f, now)
		assert.ErrorIs(t, err, ErrNegativePrice)
	})

	t.Run("price with three decimals returns error", func(t *testing.T) {
		f := validFields()
		f.Price = decimal.RequireFromString("1.005")
		_, err := NewProduct(f, now)
		assert.ErrorIs(t, err, ErrPricePrecision)
	})

	t.Run("price beyond storable range returns error", func(t *testing.T) {
		f := validFields()
		f.Price = MaxPrice
		_, err := NewProduct(f, now)
		assert.ErrorIs(t, err, ErrPriceTooLarge)
	})

	t.Run("trailing zeros are not extra precision", func(t *testing.T) {
		f := validFields()
		f.Price = decimal.RequireFromString("1.5000")
		_, err := NewProduct(f, now)
		assert.NoError(t, err)
	})

	t.Run("negative stock returns error", func(t *testing.T) {
		f := validFields()
		f.StockQuantity = -1
		_, err := NewProduct(f, now)
		assert.ErrorIs(t, err, ErrNegativeStock)
	})

	t.Run("missing category returns error", func(t *testing.T) {
		f := validFields()
		f.CategoryID = 0
		_, err := NewProduct(f, now)
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("all violations are reported", func(t *testing.T) {
		_, err := NewProduct(ProductFields{Price: decimal.NewFromInt(-1), StockQuantity: -5}, now)
		require.Error(t, err)
		fields := FieldErrors(err)
		assert.Contains(t, fields, "name")
		assert.Contains(t, fields, "price")
		assert.Contains(t, fields, "categoryId")
		assert.Contains(t, fields, "stockQuantity")
		assert.NotContains(t, fields, "description")
	})
}

func TestProduct_AssignID(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p, err := NewProduct(validFields(), now)
	require.NoError(t, err)

	p.AssignID(42)

	assert.Equal(t, int64(42), p.ID())
	require.Len(t, p.DomainEvents(), 1)
	ev, ok := p.DomainEvents()[0].(*ProductCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, EventProductCreated, ev.EventType())
	assert.Equal(t, "42", ev.AggregateID())
	assert.True(t, ev.Price.Equal(decimal.RequireFromString("999.99")))
	assert.Equal(t, now, ev.CreatedDate)
}

func TestProduct_MarkUpdated(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	f := validFields()
	f.Name = "Gaming Laptop"
	p := ReconstructProduct(7, f, created, true)

	p.MarkUpdated(created.Add(time.Hour))

	require.Len(t, p.DomainEvents(), 1)
	ev, ok := p.DomainEvents()[0].(*ProductUpdatedEvent)
	require.True(t, ok)
	assert.Equal(t, "Gaming Laptop", ev.Name)
	assert.Equal(t, "7", ev.AggregateID())
	assert.Equal(t, created.Add(time.Hour), ev.UpdatedAt)
	// created date never moves on update
	assert.Equal(t, created, p.CreatedDate())
}

func TestProduct_MarkDeleted(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p := ReconstructProduct(3, validFields(), now, true)

	p.MarkDeleted(now)

	assert.False(t, p.IsActive())
	require.Len(t, p.DomainEvents(), 1)
	assert.Equal(t, EventProductDeleted, p.DomainEvents()[0].EventType())

	p.ClearEvents()
	assert.Empty(t, p.DomainEvents())
}

func TestFieldErrors(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		assert.Empty(t, FieldErrors(nil))
	})

	t.Run("error without field", func(t *testing.T) {
		out := FieldErrors(ErrProductNotFound)
		assert.Equal(t, []string{ErrProductNotFound.Error()}, out[""])
	})

	t.Run("multiple errors for one field", func(t *testing.T) {
		err := errors.Join(fieldErr("price", ErrNegativePrice), fieldErr("price", ErrPricePrecision))
		out := FieldErrors(err)
		assert.Len(t, out["price"], 2)
	})
}

func TestFieldErrors_Wrapped(t *testing.T) {
	_, err := NewProduct(ProductFields{Name: "ok", CategoryID: 0, Price: decimal.NewFromInt(1)}, time.Now())
	require.Error(t, err)

	out := FieldErrors(fmt.Errorf("failed to create product: %w", err))
	assert.Equal(t, []string{ErrInvalidCategory.Error()}, out["categoryId"])
	assert.NotContains(t, out, "")
}
