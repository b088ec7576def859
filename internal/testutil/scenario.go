package testutil

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/catalog-search-service/internal/app/catalog/domain"
)

// ScenarioBase is the creation time of the first scenario product; each
// following product is one hour newer.
var ScenarioBase = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// ScenarioProduct is one row of the reference search scenario.
type ScenarioProduct struct {
	ID     int64
	Fields domain.ProductFields
}

// ScenarioCategories are the categories the scenario products refer to.
var ScenarioCategories = []struct {
	ID          int64
	Name        string
	Description string
}{
	{1, "Electronics", "Electronic devices and accessories"},
	{2, "Clothing", "Apparel and fashion items"},
}

// ScenarioProducts returns the three reference products:
// Laptop 999.99 (cat 1, stock 50), Smartphone 699.99 (cat 1, stock 100)
// and T-Shirt 19.99 (cat 2, stock 200).
func ScenarioProducts() []ScenarioProduct {
	return []ScenarioProduct{
		{ID: 1, Fields: domain.ProductFields{
			Name:          "Laptop",
			Description:   "High-performance laptop",
			Price:         decimal.RequireFromString("999.99"),
			CategoryID:    1,
			StockQuantity: 50,
		}},
		{ID: 2, Fields: domain.ProductFields{
			Name:          "Smartphone",
			Description:   "Latest smartphone",
			Price:         decimal.RequireFromString("699.99"),
			CategoryID:    1,
			StockQuantity: 100,
		}},
		{ID: 3, Fields: domain.ProductFields{
			Name:          "T-Shirt",
			Description:   "Cotton t-shirt",
			Price:         decimal.RequireFromString("19.99"),
			CategoryID:    2,
			StockQuantity: 200,
		}},
	}
}

// LoadScenario fills a MemStore with the reference scenario.
func LoadScenario(s *MemStore) {
	for _, c := range ScenarioCategories {
		s.AddCategory(c.ID, c.Name, c.Description)
	}
	for i, p := range ScenarioProducts() {
		s.AddProduct(p.ID, p.Fields, ScenarioBase.Add(time.Duration(i)*time.Hour), true)
	}
}
