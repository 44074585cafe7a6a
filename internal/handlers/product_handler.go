package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kmurithi/ministore/internal/catalog"
	"github.com/kmurithi/ministore/internal/models"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(cat *catalog.Catalog, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: cat,
		logger:  logger,
	}
}

// productView decorates a product with its stock-level classification for
// the storefront grid.
type productView struct {
	models.Product
	StockLevel string `json:"stockLevel"`
}

func toView(p models.Product) productView {
	return productView{Product: p, StockLevel: catalog.StockLevel(p)}
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products := h.catalog.List()

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, toView(p))
	}

	WriteJSON(w, http.StatusOK, views, h.logger)
}

// GetProduct handles GET /api/products/{productId}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	product, err := h.catalog.FindByID(productID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			h.logger.Info("product not found", "productId", productID)
			WriteError(w, http.StatusNotFound, "Product not found", h.logger)
			return
		}
		h.logger.Error("failed to get product", "productId", productID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, toView(*product), h.logger)
}
