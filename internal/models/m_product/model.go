package m_product

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the products table.
// Regular writes go through DML so the store can assign ids; mutations are
// used where the id is already known, such as reference data.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// UpsertMut creates a Spanner mutation that writes a product with an
// explicit id, replacing any existing row.
func (m *Model) UpsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		Columns,
		[]interface{}{
			data.ProductID,
			data.Name,
			data.Description,
			&data.Price,
			data.CategoryID,
			data.StockQuantity,
			data.CreatedDate,
			data.IsActive,
		},
	)
}
