package main

import (
	"time"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"

	"github.com/light-bringer/catalog-search-service/internal/models/m_category"
	"github.com/light-bringer/catalog-search-service/internal/models/m_product"
	"github.com/light-bringer/catalog-search-service/internal/pkg/committer"
)

// Seed rows use ids below the sequences' skip range, so they never collide
// with generated ids. Re-running the seed overwrites them.
var seedCategories = []m_category.Data{
	{CategoryID: 1, Name: "Electronics", Description: "Electronic devices and accessories", IsActive: true},
	{CategoryID: 2, Name: "Clothing", Description: "Apparel and fashion items", IsActive: true},
	{CategoryID: 3, Name: "Books", Description: "Books and publications", IsActive: true},
	{CategoryID: 4, Name: "Home & Garden", Description: "Home improvement and garden supplies", IsActive: true},
	{CategoryID: 5, Name: "Sports & Fitness", Description: "Sports equipment and fitness gear", IsActive: true},
}

type seedProduct struct {
	name        string
	description string
	price       string
	categoryID  int64
	stock       int64
}

var seedProducts = []seedProduct{
	{"Laptop", "High-performance laptop", "999.99", 1, 50},
	{"Smartphone", "Latest model smartphone", "699.99", 1, 100},
	{"Wireless Headphones", "Noise-cancelling Bluetooth headphones", "149.99", 1, 75},
	{"Tablet", "10-inch tablet with stylus", "399.99", 1, 60},

	{"T-Shirt", "Cotton t-shirt", "19.99", 2, 200},
	{"Jeans", "Denim jeans", "49.99", 2, 150},
	{"Winter Jacket", "Waterproof winter jacket", "129.99", 2, 80},
	{"Winter Boots", "Warm winter boots", "79.99", 2, 120},

	{"Novel", "Bestselling fiction novel", "14.99", 3, 75},
	{"Cookbook", "Gourmet cooking recipes", "24.99", 3, 60},
	{"Self-Help Book", "Personal development guide", "18.99", 3, 90},
	{"Programming Guide", "Complete guide to modern programming", "49.99", 3, 45},

	{"Garden Hose", "50ft expandable garden hose", "29.99", 4, 40},
	{"Plant Pot", "Ceramic plant pot", "12.99", 4, 80},
	{"Lawn Mower", "Electric lawn mower", "249.99", 4, 25},
	{"Tool Set", "50-piece home tool set", "89.99", 4, 55},

	{"Yoga Mat", "Non-slip exercise yoga mat", "34.99", 5, 100},
	{"Dumbbells Set", "Adjustable dumbbells 5-50 lbs", "199.99", 5, 40},
	{"Resistance Bands", "Set of 5 resistance bands", "24.99", 5, 85},
	{"Jump Rope", "Speed jump rope with counter", "15.99", 5, 110},
}

// seedPlan builds upserts for the reference catalog. Product ids follow list
// order starting at 1; creation dates are one second apart ending at now.
func seedPlan(now time.Time) *committer.CommitPlan {
	plan := committer.NewPlan()

	categories := m_category.NewModel()
	for i := range seedCategories {
		plan.Add(categories.UpsertMut(&seedCategories[i]))
	}
	plan.AddMultiple(seedProductMuts(now))

	return plan
}

func seedProductMuts(now time.Time) []*spanner.Mutation {
	products := m_product.NewModel()
	muts := make([]*spanner.Mutation, 0, len(seedProducts))
	base := now.UTC().Truncate(time.Second).Add(-time.Duration(len(seedProducts)-1) * time.Second)
	for i, p := range seedProducts {
		data := &m_product.Data{
			ProductID:     int64(i + 1),
			Name:          p.name,
			Description:   p.description,
			CategoryID:    p.categoryID,
			StockQuantity: p.stock,
			CreatedDate:   base.Add(time.Duration(i) * time.Second),
			IsActive:      true,
		}
		data.Price = *decimal.RequireFromString(p.price).Rat()
		muts = append(muts, products.UpsertMut(data))
	}
	return muts
}
