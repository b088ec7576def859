package testutil

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/catalog-search-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-search-service/internal/pkg/committer"
)

type memProduct struct {
	id          int64
	fields      domain.ProductFields
	createdDate time.Time
	active      bool
}

type memCategory struct {
	view   contracts.CategoryView
	active bool
}

// MemStore is an in-memory catalog implementing the store contracts with
// the same visibility, filter and ordering rules as the Spanner store.
type MemStore struct {
	mu         sync.Mutex
	products   map[int64]*memProduct
	categories map[int64]*memCategory
	nextID     int64

	// ReadErr, when set, is returned by every read.
	ReadErr error

	SnapshotsOpened int
	SnapshotsClosed int
	Fetches         int
}

var (
	_ contracts.ProductRepository = (*MemStore)(nil)
	_ contracts.ReadModel         = (*MemStore)(nil)
)

// NewMemStore creates an empty store.
func NewMemStore() *MemStore {
	return &MemStore{
		products:   make(map[int64]*memProduct),
		categories: make(map[int64]*memCategory),
		nextID:     1000,
	}
}

// AddCategory stores an active category with a fixed id.
func (s *MemStore) AddCategory(id int64, name, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[id] = &memCategory{
		view:   contracts.CategoryView{ID: id, Name: name, Description: description},
		active: true,
	}
}

// AddProduct stores a product with a fixed id.
func (s *MemStore) AddProduct(id int64, fields domain.ProductFields, createdDate time.Time, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[id] = &memProduct{id: id, fields: fields, createdDate: createdDate, active: active}
}

// IsActive reports whether a stored product is active; false when unknown.
func (s *MemStore) IsActive(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	return ok && p.active
}

// CreatedDate returns the stored creation date of a product.
func (s *MemStore) CreatedDate(id int64) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[id]; ok {
		return p.createdDate
	}
	return time.Time{}
}

func (s *MemStore) Insert(_ context.Context, _ *spanner.ReadWriteTransaction, product *domain.Product) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[product.CategoryID()]; !ok {
		return 0, fmt.Errorf("failed to insert product: %w", domain.ErrCategoryNotFound)
	}
	s.nextID++
	s.products[s.nextID] = &memProduct{
		id:          s.nextID,
		fields:      product.Fields(),
		createdDate: product.CreatedDate(),
		active:      true,
	}
	return s.nextID, nil
}

func (s *MemStore) UpdateActive(_ context.Context, _ *spanner.ReadWriteTransaction, id int64, fields domain.ProductFields) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok || !p.active {
		return nil, domain.ErrProductNotFound
	}
	if _, ok := s.categories[fields.CategoryID]; !ok {
		return nil, fmt.Errorf("failed to update product: %w", domain.ErrCategoryNotFound)
	}
	p.fields = fields
	return domain.ReconstructProduct(p.id, p.fields, p.createdDate, p.active), nil
}

func (s *MemStore) SoftDeleteActive(_ context.Context, _ *spanner.ReadWriteTransaction, id int64) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok || !p.active {
		return nil, domain.ErrProductNotFound
	}
	p.active = false
	return domain.ReconstructProduct(p.id, p.fields, p.createdDate, p.active), nil
}

func (s *MemStore) View(ctx context.Context, _ contracts.Queryer, id int64) (*contracts.ProductView, error) {
	return s.GetActiveProduct(ctx, id)
}

func (s *MemStore) GetActiveProduct(_ context.Context, id int64) (*contracts.ProductView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	p, ok := s.products[id]
	if !ok || !p.active {
		return nil, domain.ErrProductNotFound
	}
	return s.view(p), nil
}

func (s *MemStore) ListActiveProducts(_ context.Context) ([]*contracts.ProductView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	return s.sorted(s.matching(domain.Predicate{}), domain.DefaultOrdering), nil
}

func (s *MemStore) ListActiveCategories(_ context.Context) ([]*contracts.CategoryView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	out := make([]*contracts.CategoryView, 0, len(s.categories))
	for _, c := range s.categories {
		if c.active {
			v := c.view
			out = append(out, &v)
		}
	}
	slices.SortFunc(out, func(a, b *contracts.CategoryView) int {
		return cmp.Or(strings.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (s *MemStore) Snapshot() contracts.SearchSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SnapshotsOpened++
	return &memSnapshot{store: s}
}

// CategoryRepo returns a CategoryRepository backed by the same data.
func (s *MemStore) CategoryRepo() contracts.CategoryRepository {
	return memCategoryRepo{store: s}
}

func (s *MemStore) view(p *memProduct) *contracts.ProductView {
	var categoryName string
	if c, ok := s.categories[p.fields.CategoryID]; ok {
		categoryName = c.view.Name
	}
	return &contracts.ProductView{
		ID:            p.id,
		Name:          p.fields.Name,
		Description:   p.fields.Description,
		Price:         p.fields.Price,
		CategoryID:    p.fields.CategoryID,
		CategoryName:  categoryName,
		StockQuantity: p.fields.StockQuantity,
		CreatedDate:   p.createdDate,
	}
}

func (s *MemStore) matching(pred domain.Predicate) []*memProduct {
	out := make([]*memProduct, 0)
	for _, p := range s.products {
		if p.active && matches(p, pred) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p *memProduct, pred domain.Predicate) bool {
	name := strings.ToLower(p.fields.Name)
	desc := strings.ToLower(p.fields.Description)
	for _, token := range pred.Tokens {
		t := strings.ToLower(token)
		if !strings.Contains(name, t) && !strings.Contains(desc, t) {
			return false
		}
	}
	if pred.CategoryID != nil && p.fields.CategoryID != *pred.CategoryID {
		return false
	}
	if pred.MinPrice != nil && p.fields.Price.LessThan(*pred.MinPrice) {
		return false
	}
	if pred.MaxPrice != nil && p.fields.Price.GreaterThan(*pred.MaxPrice) {
		return false
	}
	if pred.RequireInStock && p.fields.StockQuantity <= 0 {
		return false
	}
	return true
}

func (s *MemStore) sorted(products []*memProduct, ord domain.Ordering) []*contracts.ProductView {
	slices.SortFunc(products, func(a, b *memProduct) int {
		var c int
		switch ord.Key {
		case domain.SortByPrice:
			c = a.fields.Price.Cmp(b.fields.Price)
		case domain.SortByCreatedDate:
			c = a.createdDate.Compare(b.createdDate)
		case domain.SortByStockQuantity:
			c = cmp.Compare(a.fields.StockQuantity, b.fields.StockQuantity)
		default:
			c = strings.Compare(a.fields.Name, b.fields.Name)
		}
		if ord.Descending {
			c = -c
		}
		return cmp.Or(c, cmp.Compare(a.id, b.id))
	})

	out := make([]*contracts.ProductView, 0, len(products))
	for _, p := range products {
		out = append(out, s.view(p))
	}
	return out
}

type memSnapshot struct {
	store *MemStore
}

func (m *memSnapshot) CountActive(_ context.Context, pred domain.Predicate) (int64, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	if m.store.ReadErr != nil {
		return 0, m.store.ReadErr
	}
	return int64(len(m.store.matching(pred))), nil
}

func (m *memSnapshot) FetchActive(_ context.Context, pred domain.Predicate, ord domain.Ordering, offset, limit int64) ([]*contracts.ProductView, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	m.store.Fetches++
	if m.store.ReadErr != nil {
		return nil, m.store.ReadErr
	}
	all := m.store.sorted(m.store.matching(pred), ord)
	if offset >= int64(len(all)) {
		return []*contracts.ProductView{}, nil
	}
	end := min(offset+limit, int64(len(all)))
	return all[offset:end], nil
}

func (m *memSnapshot) Close() {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.SnapshotsClosed++
}

type memCategoryRepo struct {
	store *MemStore
}

func (r memCategoryRepo) Insert(_ context.Context, _ *spanner.ReadWriteTransaction, category *domain.Category) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextID++
	r.store.categories[r.store.nextID] = &memCategory{
		view: contracts.CategoryView{
			ID:          r.store.nextID,
			Name:        category.Name(),
			Description: category.Description(),
		},
		active: true,
	}
	return r.store.nextID, nil
}

// Runner runs transactional work without a database. Work runs once with a
// nil transaction and the returned plans are kept for inspection.
type Runner struct {
	mu    sync.Mutex
	Plans []*committer.CommitPlan
	// Err, when set, is returned instead of running the work.
	Err error
}

var _ committer.Runner = (*Runner)(nil)

func (r *Runner) Run(ctx context.Context, fn committer.TxnFunc) error {
	if r.Err != nil {
		return r.Err
	}
	plan, err := fn(ctx, nil)
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Plans = append(r.Plans, plan)
	return nil
}

// Mutations returns how many mutations all committed plans carried.
func (r *Runner) Mutations() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.Plans {
		n += p.Count()
	}
	return n
}
