package catalog_api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"salsa-storefront/internal/catalog"
)

type Handler struct {
	Catalog *catalog.Catalog
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.Catalog.Products())
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	product, err := h.Catalog.Product(productID)
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(product)
}
