package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/light-bringer/catalog-search-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/queries/list_products"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/queries/search_products"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/usecases/create_product"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/usecases/delete_product"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/usecases/update_product"
)

const maxBodyBytes = 1 << 20

// ProductsHandler serves /api/products.
type ProductsHandler struct {
	Responder

	createProduct *create_product.Interactor
	updateProduct *update_product.Interactor
	deleteProduct *delete_product.Interactor

	getProduct     *get_product.Query
	listProducts   *list_products.Query
	searchProducts *search_products.Query

	limits PageLimits
}

// NewProductsHandler creates a new products handler.
func NewProductsHandler(
	createProduct *create_product.Interactor,
	updateProduct *update_product.Interactor,
	deleteProduct *delete_product.Interactor,
	getProduct *get_product.Query,
	listProducts *list_products.Query,
	searchProducts *search_products.Query,
	limits PageLimits,
	rs Responder,
) *ProductsHandler {
	return &ProductsHandler{
		Responder:      rs,
		createProduct:  createProduct,
		updateProduct:  updateProduct,
		deleteProduct:  deleteProduct,
		getProduct:     getProduct,
		listProducts:   listProducts,
		searchProducts: searchProducts,
		limits:         limits,
	}
}

// Routes mounts the product endpoints. /search is registered before /{id}.
func (h *ProductsHandler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/search", h.search)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request) {
	views, err := h.listProducts.Execute(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toProducts(views))
}

func (h *ProductsHandler) search(w http.ResponseWriter, r *http.Request) {
	req, err := parseSearchRequest(r.URL.Query(), h.limits)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	page, err := h.searchProducts.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toProductPage(page))
}

func (h *ProductsHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	view, err := h.getProduct.Execute(r.Context(), &get_product.Request{ProductID: id})
	if err != nil {
		h.writeProductError(w, r, id, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toProduct(view))
}

func (h *ProductsHandler) create(w http.ResponseWriter, r *http.Request) {
	var in ProductInput
	if err := decodeBody(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := in.check(); err != nil {
		h.writeError(w, r, err)
		return
	}

	view, err := h.createProduct.Execute(r.Context(), &create_product.Request{
		Name:          in.Name,
		Description:   in.Description,
		Price:         *in.Price,
		CategoryID:    *in.CategoryID,
		StockQuantity: in.StockQuantity,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/products/%d", view.ID))
	h.writeJSON(w, http.StatusCreated, toProduct(view))
}

func (h *ProductsHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var in ProductInput
	if err := decodeBody(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := in.check(); err != nil {
		h.writeError(w, r, err)
		return
	}

	view, err := h.updateProduct.Execute(r.Context(), &update_product.Request{
		ProductID:     id,
		Name:          in.Name,
		Description:   in.Description,
		Price:         *in.Price,
		CategoryID:    *in.CategoryID,
		StockQuantity: in.StockQuantity,
	})
	if err != nil {
		h.writeProductError(w, r, id, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toProduct(view))
}

func (h *ProductsHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.deleteProduct.Execute(r.Context(), &delete_product.Request{ProductID: id}); err != nil {
		h.writeProductError(w, r, id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeProductError names the requested id in not-found responses.
func (h *ProductsHandler) writeProductError(w http.ResponseWriter, r *http.Request, id int64, err error) {
	resp := mapDomainError(err)
	if errors.Is(err, domain.ErrProductNotFound) {
		resp.Message = productNotFoundMessage(id)
	}
	h.writeErrorResponse(w, r, err, resp)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		reqErr := &requestError{}
		reqErr.add("body", "request body must be valid JSON: "+err.Error())
		return reqErr
	}
	return nil
}
