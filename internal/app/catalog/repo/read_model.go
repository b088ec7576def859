package repo

import (
	"context"
	"fmt"
	"math/big"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/catalog-search-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-search-service/internal/models/m_category"
	"github.com/light-bringer/catalog-search-service/internal/pkg/query"
)

// ReadModelImpl implements ReadModel for Spanner.
type ReadModelImpl struct {
	client *spanner.Client
}

// NewReadModel creates a new ReadModel implementation.
func NewReadModel(client *spanner.Client) contracts.ReadModel {
	return &ReadModelImpl{
		client: client,
	}
}

// Snapshot opens a read-only transaction. Every read through the returned
// snapshot observes the same timestamp.
func (rm *ReadModelImpl) Snapshot() contracts.SearchSnapshot {
	return &snapshot{txn: rm.client.ReadOnlyTransaction()}
}

// GetActiveProduct retrieves an active product by id.
func (rm *ReadModelImpl) GetActiveProduct(ctx context.Context, id int64) (*contracts.ProductView, error) {
	return viewProduct(ctx, rm.client.Single(), id)
}

// ListActiveProducts retrieves every active product ordered by name.
func (rm *ReadModelImpl) ListActiveProducts(ctx context.Context) ([]*contracts.ProductView, error) {
	return queryProductViews(ctx, rm.client.Single(), listStatement())
}

// ListActiveCategories retrieves active categories ordered by name.
func (rm *ReadModelImpl) ListActiveCategories(ctx context.Context) ([]*contracts.CategoryView, error) {
	stmt := query.From(m_category.TableName).
		Select(m_category.CategoryID, m_category.Name, m_category.Description).
		Where(query.Eq(m_category.IsActive, true)).
		OrderBy(m_category.Name, query.Asc).
		OrderBy(m_category.CategoryID, query.Asc).
		Build()

	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	categories := make([]*contracts.CategoryView, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate categories: %w", err)
		}

		var view contracts.CategoryView
		if err := row.Columns(&view.ID, &view.Name, &view.Description); err != nil {
			return nil, fmt.Errorf("failed to parse category: %w", err)
		}
		categories = append(categories, &view)
	}

	return categories, nil
}

// snapshot implements SearchSnapshot over a read-only transaction.
type snapshot struct {
	txn *spanner.ReadOnlyTransaction
}

func (s *snapshot) CountActive(ctx context.Context, pred domain.Predicate) (int64, error) {
	count, err := countRows(ctx, s.txn, countStatement(pred))
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (s *snapshot) FetchActive(ctx context.Context, pred domain.Predicate, ord domain.Ordering, offset, limit int64) ([]*contracts.ProductView, error) {
	return queryProductViews(ctx, s.txn, searchStatement(pred, ord, offset, limit))
}

func (s *snapshot) Close() {
	s.txn.Close()
}

// viewProduct reads one active product through q.
func viewProduct(ctx context.Context, q contracts.Queryer, id int64) (*contracts.ProductView, error) {
	views, err := queryProductViews(ctx, q, productByIDStatement(id))
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, domain.ErrProductNotFound
	}
	return views[0], nil
}

func queryProductViews(ctx context.Context, q contracts.Queryer, stmt spanner.Statement) ([]*contracts.ProductView, error) {
	iter := q.Query(ctx, stmt)
	defer iter.Stop()

	products := make([]*contracts.ProductView, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate products: %w", err)
		}

		view, err := scanProductView(row)
		if err != nil {
			return nil, err
		}
		products = append(products, view)
	}

	return products, nil
}

// scanProductView reads a row selected with productViewColumns.
func scanProductView(row *spanner.Row) (*contracts.ProductView, error) {
	var (
		view  contracts.ProductView
		price big.Rat
	)
	if err := row.Columns(
		&view.ID,
		&view.Name,
		&view.Description,
		&price,
		&view.CategoryID,
		&view.CategoryName,
		&view.StockQuantity,
		&view.CreatedDate,
	); err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}

	p, err := ratToDecimal(&price)
	if err != nil {
		return nil, err
	}
	view.Price = p
	view.CreatedDate = view.CreatedDate.UTC()

	return &view, nil
}

// ratToDecimal converts a NUMERIC value read from Spanner.
func ratToDecimal(r *big.Rat) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(spanner.NumericString(r))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid price %s: %w", r.String(), err)
	}
	return d, nil
}
