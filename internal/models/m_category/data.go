package m_category

// Data represents the database model for the categories table.
type Data struct {
	CategoryID  int64  `spanner:"category_id"`
	Name        string `spanner:"name"`
	Description string `spanner:"description"`
	IsActive    bool   `spanner:"is_active"`
}
