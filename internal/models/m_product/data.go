package m_product

import (
	"math/big"
	"time"
)

// Data represents the database model for the products table.
// Price is a Spanner NUMERIC.
type Data struct {
	ProductID     int64     `spanner:"product_id"`
	Name          string    `spanner:"name"`
	Description   string    `spanner:"description"`
	Price         big.Rat   `spanner:"price"`
	CategoryID    int64     `spanner:"category_id"`
	StockQuantity int64     `spanner:"stock_quantity"`
	CreatedDate   time.Time `spanner:"created_date"`
	IsActive      bool      `spanner:"is_active"`
}
