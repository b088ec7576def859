package m_product

// Field name constants for the products table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "products"

	ProductID     = "product_id"
	Name          = "name"
	Description   = "description"
	Price         = "price"
	CategoryID    = "category_id"
	StockQuantity = "stock_quantity"
	CreatedDate   = "created_date"
	IsActive      = "is_active"
)

// Columns lists every products column in table order.
var Columns = []string{
	ProductID,
	Name,
	Description,
	Price,
	CategoryID,
	StockQuantity,
	CreatedDate,
	IsActive,
}
