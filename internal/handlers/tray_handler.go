package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kmurithi/ministore/internal/catalog"
	"github.com/kmurithi/ministore/internal/models"
	"github.com/kmurithi/ministore/internal/tray"
)

// TrayHandler handles the session tray: view, add item, remove item.
type TrayHandler struct {
	catalog *catalog.Catalog
	tray    *tray.Tray
	logger  *slog.Logger
}

// NewTrayHandler creates a new tray handler
func NewTrayHandler(cat *catalog.Catalog, tr *tray.Tray, logger *slog.Logger) *TrayHandler {
	return &TrayHandler{
		catalog: cat,
		tray:    tr,
		logger:  logger,
	}
}

type trayView struct {
	Items []models.TrayItem `json:"items"`
	Total float64           `json:"total"`
}

type addItemRequest struct {
	ProductID string `json:"productId"`
}

// GetTray handles GET /api/tray
func (h *TrayHandler) GetTray(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, trayView{Items: h.tray.Items(), Total: h.tray.Total()}, h.logger)
}

// AddItem handles POST /api/tray/items
func (h *TrayHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}
	if req.ProductID == "" {
		WriteError(w, http.StatusBadRequest, "productId is required", h.logger)
		return
	}

	product, err := h.catalog.FindByID(req.ProductID)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Product not found", h.logger)
		return
	}

	if err := h.tray.Add(*product); err != nil {
		switch {
		case errors.Is(err, tray.ErrAlreadyInTray):
			WriteError(w, http.StatusConflict, product.Name+" is already in the tray", h.logger)
		case errors.Is(err, tray.ErrUnavailable):
			WriteError(w, http.StatusConflict, product.Name+" is not available", h.logger)
		default:
			h.logger.Error("failed to add tray item", "productId", req.ProductID, "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		}
		return
	}

	h.logger.Info("tray item added", "productId", req.ProductID, "tray_size", h.tray.Len())
	WriteJSON(w, http.StatusOK, trayView{Items: h.tray.Items(), Total: h.tray.Total()}, h.logger)
}

// RemoveItem handles DELETE /api/tray/items/{index}
func (h *TrayHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid tray index", h.logger)
		return
	}

	removed, err := h.tray.RemoveAt(index)
	if err != nil {
		if errors.Is(err, tray.ErrIndexOutOfRange) {
			WriteError(w, http.StatusNotFound, "No tray item at that position", h.logger)
			return
		}
		h.logger.Error("failed to remove tray item", "index", index, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	h.logger.Info("tray item removed", "productId", removed.ProductID, "tray_size", h.tray.Len())
	WriteJSON(w, http.StatusOK, trayView{Items: h.tray.Items(), Total: h.tray.Total()}, h.logger)
}
