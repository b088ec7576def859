package repo

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/catalog-search-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-search-service/internal/models/m_product"
)

var (
	insertProductSQL = fmt.Sprintf(
		"INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s) "+
			"VALUES (@name, @description, @price, @category_id, @stock_quantity, @created_date, TRUE) "+
			"THEN RETURN %s",
		m_product.TableName,
		m_product.Name, m_product.Description, m_product.Price, m_product.CategoryID,
		m_product.StockQuantity, m_product.CreatedDate, m_product.IsActive,
		m_product.ProductID,
	)

	updateActiveProductSQL = fmt.Sprintf(
		"UPDATE %s SET %s = @name, %s = @description, %s = @price, %s = @category_id, %s = @stock_quantity "+
			"WHERE %s = @product_id AND %s = TRUE "+
			"THEN RETURN %s",
		m_product.TableName,
		m_product.Name, m_product.Description, m_product.Price, m_product.CategoryID, m_product.StockQuantity,
		m_product.ProductID, m_product.IsActive,
		strings.Join(m_product.Columns, ", "),
	)

	softDeleteProductSQL = fmt.Sprintf(
		"UPDATE %s SET %s = FALSE WHERE %s = @product_id AND %s = TRUE THEN RETURN %s",
		m_product.TableName,
		m_product.IsActive,
		m_product.ProductID, m_product.IsActive,
		strings.Join(m_product.Columns, ", "),
	)
)

// ProductRepo implements ProductRepository for Spanner.
//
// Writes are DML so the store assigns ids from its sequence and the active
// guard is evaluated in the same statement that changes the row. Every write
// runs in the caller's read-write transaction.
type ProductRepo struct{}

// NewProductRepo creates a new ProductRepo.
func NewProductRepo() contracts.ProductRepository {
	return &ProductRepo{}
}

// Insert stores a new product and returns its id.
func (r *ProductRepo) Insert(ctx context.Context, txn *spanner.ReadWriteTransaction, product *domain.Product) (int64, error) {
	params := fieldParams(product.Fields())
	params["created_date"] = product.CreatedDate()

	iter := txn.Query(ctx, spanner.Statement{SQL: insertProductSQL, Params: params})
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to insert product: %w", mapWriteError(err))
	}

	var id int64
	if err := row.Columns(&id); err != nil {
		return 0, fmt.Errorf("failed to parse product id: %w", err)
	}
	return id, nil
}

// UpdateActive replaces the mutable fields of an active product.
func (r *ProductRepo) UpdateActive(ctx context.Context, txn *spanner.ReadWriteTransaction, id int64, fields domain.ProductFields) (*domain.Product, error) {
	params := fieldParams(fields)
	params["product_id"] = id

	product, err := r.returningOne(ctx, txn, spanner.Statement{SQL: updateActiveProductSQL, Params: params})
	if err != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}
	return product, nil
}

// SoftDeleteActive marks an active product inactive.
func (r *ProductRepo) SoftDeleteActive(ctx context.Context, txn *spanner.ReadWriteTransaction, id int64) (*domain.Product, error) {
	stmt := spanner.Statement{
		SQL:    softDeleteProductSQL,
		Params: map[string]interface{}{"product_id": id},
	}

	product, err := r.returningOne(ctx, txn, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	return product, nil
}

// View reads one active product with its category name.
func (r *ProductRepo) View(ctx context.Context, q contracts.Queryer, id int64) (*contracts.ProductView, error) {
	return viewProduct(ctx, q, id)
}

// returningOne runs a guarded DML statement and reconstructs the single row
// it returns. No row means the guard did not match.
func (r *ProductRepo) returningOne(ctx context.Context, txn *spanner.ReadWriteTransaction, stmt spanner.Statement) (*domain.Product, error) {
	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, mapWriteError(err)
	}

	var data m_product.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}
	return r.dataToDomain(&data)
}

// dataToDomain converts database Data to a domain Product.
func (r *ProductRepo) dataToDomain(data *m_product.Data) (*domain.Product, error) {
	price, err := ratToDecimal(&data.Price)
	if err != nil {
		return nil, err
	}

	return domain.ReconstructProduct(
		data.ProductID,
		domain.ProductFields{
			Name:          data.Name,
			Description:   data.Description,
			Price:         price,
			CategoryID:    data.CategoryID,
			StockQuantity: data.StockQuantity,
		},
		data.CreatedDate.UTC(),
		data.IsActive,
	), nil
}

// fieldParams binds the replaceable product fields.
func fieldParams(f domain.ProductFields) map[string]interface{} {
	return map[string]interface{}{
		"name":           f.Name,
		"description":    f.Description,
		"price":          f.Price.Rat(),
		"category_id":    f.CategoryID,
		"stock_quantity": f.StockQuantity,
	}
}

// mapWriteError turns a violated category foreign key into
// domain.ErrCategoryNotFound, keeping the Spanner error in the chain.
func mapWriteError(err error) error {
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: %w", domain.ErrCategoryNotFound, err)
	}
	return err
}

func isForeignKeyViolation(err error) bool {
	if spanner.ErrCode(err) != codes.FailedPrecondition {
		return false
	}
	return strings.Contains(strings.ToLower(spanner.ErrDesc(err)), "foreign key")
}
