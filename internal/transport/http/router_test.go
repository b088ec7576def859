package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-search-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/queries/list_categories"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/queries/list_events"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/queries/list_products"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/queries/search_products"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/repo"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/usecases/create_category"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/usecases/create_product"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/usecases/delete_product"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/usecases/update_product"
	"github.com/light-bringer/catalog-search-service/internal/models/m_outbox"
	"github.com/light-bringer/catalog-search-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-search-service/internal/testutil"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeEvents struct {
	last   *list_events.Request
	result *list_events.Result
}

func (f *fakeEvents) ListEvents(_ context.Context, req *list_events.Request) (*list_events.Result, error) {
	f.last = req
	return f.result, nil
}

type testServer struct {
	handler http.Handler
	store   *testutil.MemStore
	events  *fakeEvents
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := testutil.NewMemStore()
	testutil.LoadScenario(store)

	runner := &testutil.Runner{}
	outbox := repo.NewOutboxRepo(nil)
	clk := clock.NewMockClock(testNow)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rs := NewResponder(logger, clk)
	events := &fakeEvents{result: &list_events.Result{}}

	products := NewProductsHandler(
		create_product.NewInteractor(store, outbox, runner, clk),
		update_product.NewInteractor(store, outbox, runner, clk),
		delete_product.NewInteractor(store, outbox, runner, clk),
		get_product.NewQuery(store),
		list_products.NewQuery(store),
		search_products.NewQuery(store),
		PageLimits{DefaultPageSize: 10, MaxPageSize: 100},
		rs,
	)
	categories := NewCategoriesHandler(
		create_category.NewInteractor(store.CategoryRepo(), outbox, runner),
		list_categories.NewQuery(store),
		rs,
	)

	return &testServer{
		handler: NewRouter(products, categories, NewEventsHandler(list_events.NewQuery(events), rs), logger),
		store:   store,
		events:  events,
	}
}

func (s *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func names(items []Product) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.Name)
	}
	return out
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListProducts(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, rec.Code)

	items := decode[[]Product](t, rec)
	assert.Equal(t, []string{"Laptop", "Smartphone", "T-Shirt"}, names(items))
	assert.Equal(t, "999.99", items[0].Price)
	assert.Equal(t, "Electronics", items[0].CategoryName)
	assert.Equal(t, testutil.ScenarioBase, items[0].CreatedDate)
}

func TestSearchProducts(t *testing.T) {
	s := newTestServer(t)

	t.Run("no filters returns everything by name", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/api/products/search", "")
		require.Equal(t, http.StatusOK, rec.Code)

		page := decode[ProductPage](t, rec)
		assert.Equal(t, []string{"Laptop", "Smartphone", "T-Shirt"}, names(page.Items))
		assert.Equal(t, int64(3), page.TotalCount)
		assert.Equal(t, 1, page.PageNumber)
		assert.Equal(t, 10, page.PageSize)
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("search term", func(t *testing.T) {
		page := decode[ProductPage](t, s.do(http.MethodGet, "/api/products/search?searchTerm=laptop", ""))
		assert.Equal(t, []string{"Laptop"}, names(page.Items))
	})

	t.Run("category", func(t *testing.T) {
		page := decode[ProductPage](t, s.do(http.MethodGet, "/api/products/search?categoryId=1", ""))
		assert.Equal(t, []string{"Laptop", "Smartphone"}, names(page.Items))
	})

	t.Run("empty price range is an empty page", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/api/products/search?minPrice=50&maxPrice=500", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"items":[]`)

		page := decode[ProductPage](t, rec)
		assert.Equal(t, int64(0), page.TotalCount)
		assert.Equal(t, 0, page.TotalPages)
	})

	t.Run("second page", func(t *testing.T) {
		page := decode[ProductPage](t, s.do(http.MethodGet, "/api/products/search?pageSize=2&pageNumber=2", ""))
		assert.Equal(t, []string{"T-Shirt"}, names(page.Items))
		assert.Equal(t, int64(3), page.TotalCount)
		assert.Equal(t, 2, page.TotalPages)
	})

	t.Run("huge page number is an empty page", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/api/products/search?pageNumber=100000000000000000&pageSize=100", "")
		require.Equal(t, http.StatusOK, rec.Code)

		page := decode[ProductPage](t, rec)
		assert.Empty(t, page.Items)
		assert.Equal(t, int64(3), page.TotalCount)
		assert.Equal(t, 100_000_000_000_000_000, page.PageNumber)
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("sort by price descending", func(t *testing.T) {
		page := decode[ProductPage](t, s.do(http.MethodGet, "/api/products/search?sortBy=price&sortOrder=desc", ""))
		assert.Equal(t, []string{"Laptop", "Smartphone", "T-Shirt"}, names(page.Items))
	})

	t.Run("sort by price ascending with stock filter", func(t *testing.T) {
		page := decode[ProductPage](t, s.do(http.MethodGet, "/api/products/search?sortBy=price&inStock=true", ""))
		assert.Equal(t, []string{"T-Shirt", "Smartphone", "Laptop"}, names(page.Items))
	})
}

func TestSearchProducts_InvalidParameters(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name  string
		query string
		field string
	}{
		{"non-numeric category", "categoryId=abc", "categoryId"},
		{"non-numeric price", "minPrice=cheap", "minPrice"},
		{"bad boolean", "inStock=maybe", "inStock"},
		{"page number below one", "pageNumber=0", "pageNumber"},
		{"page size above limit", "pageSize=101", "pageSize"},
		{"page size zero", "pageSize=0", "pageSize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(http.MethodGet, "/api/products/search?"+tt.query, "")
			require.Equal(t, http.StatusBadRequest, rec.Code)

			resp := decode[ErrorResponse](t, rec)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, resp.Errors, tt.field)
			assert.Equal(t, testNow, resp.Timestamp)
		})
	}
}

func TestGetProduct(t *testing.T) {
	s := newTestServer(t)

	t.Run("found", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/api/products/3", "")
		require.Equal(t, http.StatusOK, rec.Code)
		p := decode[Product](t, rec)
		assert.Equal(t, "T-Shirt", p.Name)
		assert.Equal(t, "Clothing", p.CategoryName)
		assert.Equal(t, "19.99", p.Price)
	})

	t.Run("missing", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/api/products/99", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		resp := decode[ErrorResponse](t, rec)
		assert.Equal(t, "Product with ID 99 not found or is inactive", resp.Message)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/api/products/abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateProduct(t *testing.T) {
	t.Run("created with location", func(t *testing.T) {
		s := newTestServer(t)

		rec := s.do(http.MethodPost, "/api/products",
			`{"name":"Headphones","description":"Wireless","price":"149.50","categoryId":1,"stockQuantity":5}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		p := decode[Product](t, rec)
		assert.Equal(t, "/api/products/"+jsonInt(p.ID), rec.Header().Get("Location"))
		assert.Equal(t, "149.50", p.Price)
		assert.Equal(t, "Electronics", p.CategoryName)
		assert.Equal(t, testNow, p.CreatedDate)
		assert.True(t, s.store.IsActive(p.ID))
	})

	t.Run("numeric price accepted", func(t *testing.T) {
		s := newTestServer(t)
		rec := s.do(http.MethodPost, "/api/products", `{"name":"Cap","price":12.5,"categoryId":2}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, "12.50", decode[Product](t, rec).Price)
	})

	t.Run("validation errors are reported per field", func(t *testing.T) {
		s := newTestServer(t)
		rec := s.do(http.MethodPost, "/api/products", `{"name":"","price":"-1","categoryId":1,"stockQuantity":-2}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		resp := decode[ErrorResponse](t, rec)
		assert.Contains(t, resp.Errors, "name")
		assert.Contains(t, resp.Errors, "price")
		assert.Contains(t, resp.Errors, "stockQuantity")
	})

	t.Run("missing price", func(t *testing.T) {
		s := newTestServer(t)
		rec := s.do(http.MethodPost, "/api/products", `{"name":"Cap","categoryId":2}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode[ErrorResponse](t, rec).Errors, "price")
	})

	t.Run("malformed body", func(t *testing.T) {
		s := newTestServer(t)
		rec := s.do(http.MethodPost, "/api/products", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown category", func(t *testing.T) {
		s := newTestServer(t)
		rec := s.do(http.MethodPost, "/api/products", `{"name":"Cap","price":"1","categoryId":42}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, decode[ErrorResponse](t, rec).Errors, "categoryId")
	})
}

func TestUpdateProduct(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPut, "/api/products/1",
		`{"name":"Laptop Pro","description":"Faster","price":"1299.00","categoryId":1,"stockQuantity":10}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	p := decode[Product](t, rec)
	assert.Equal(t, "Laptop Pro", p.Name)
	assert.Equal(t, "1299.00", p.Price)
	assert.Equal(t, testutil.ScenarioBase, p.CreatedDate)

	rec = s.do(http.MethodPut, "/api/products/99", `{"name":"X","price":"1","categoryId":1}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product with ID 99 not found or is inactive", decode[ErrorResponse](t, rec).Message)
}

func TestDeleteProduct(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodDelete, "/api/products/2", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.False(t, s.store.IsActive(2))

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/products/2", "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/products/2", "").Code)

	page := decode[ProductPage](t, s.do(http.MethodGet, "/api/products/search", ""))
	assert.Equal(t, []string{"Laptop", "T-Shirt"}, names(page.Items))
}

func TestCategories(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cats := decode[[]Category](t, rec)
	require.Len(t, cats, 2)
	assert.Equal(t, "Clothing", cats[0].Name)

	rec = s.do(http.MethodPost, "/api/categories", `{"name":"Books","description":"Printed and digital books"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[Category](t, rec)
	assert.Equal(t, "/api/categories/"+jsonInt(created.ID), rec.Header().Get("Location"))

	rec = s.do(http.MethodPost, "/api/categories", `{"name":"Books","description":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[ErrorResponse](t, rec).Errors, "description")
}

func TestEvents(t *testing.T) {
	s := newTestServer(t)
	s.events.result = &list_events.Result{
		Events: []*m_outbox.Data{{
			EventID:     "evt-1",
			EventType:   "product.created",
			AggregateID: "1",
			Payload:     spanner.NullJSON{Value: map[string]interface{}{"productId": float64(1)}, Valid: true},
			Status:      m_outbox.StatusCompleted,
			CreatedAt:   testNow,
			ProcessedAt: spanner.NullTime{Time: testNow.Add(time.Second), Valid: true},
		}},
		TotalCount: 7,
	}

	rec := s.do(http.MethodGet, "/api/events?event_type=product.created&status=completed&processed=true&limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[ListEventsResponse](t, rec)
	assert.Equal(t, int64(7), resp.TotalCount)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "evt-1", resp.Events[0].EventID)
	assert.JSONEq(t, `{"productId":1}`, resp.Events[0].Payload)
	require.NotNil(t, resp.Events[0].ProcessedAt)

	require.NotNil(t, s.events.last)
	assert.Equal(t, "product.created", *s.events.last.EventType)
	assert.Equal(t, "completed", *s.events.last.Status)
	assert.True(t, *s.events.last.Processed)
	assert.Nil(t, s.events.last.AggregateID)
	assert.Equal(t, 5, s.events.last.Limit)

	rec = s.do(http.MethodGet, "/api/events?processed=sometimes", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStoreFailureIsInternalError(t *testing.T) {
	s := newTestServer(t)
	s.store.ReadErr = errors.New("session pool exhausted")

	rec := s.do(http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	resp := decode[ErrorResponse](t, rec)
	assert.Equal(t, "An internal error occurred", resp.Message)
	assert.NotContains(t, rec.Body.String(), "session pool")
}

func jsonInt(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}
