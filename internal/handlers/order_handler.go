package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/kmurithi/ministore/internal/ledger"
	"github.com/kmurithi/ministore/internal/store"
)

// OrderHandler handles checkout and order listing.
type OrderHandler struct {
	ledger *ledger.Ledger
	log    *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(l *ledger.Ledger, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		ledger: l,
		log:    log,
	}
}

// Checkout handles POST /api/checkout: finalizes the current tray into an
// order with its stock and expense side effects.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	order, err := h.ledger.FinalizePurchase(r.Context())
	if err != nil {
		var unavailable *ledger.ItemUnavailableError

		switch {
		case errors.Is(err, ledger.ErrEmptyTray):
			WriteError(w, http.StatusBadRequest, "Your tray is empty", h.log)
		case errors.As(err, &unavailable):
			WriteError(w, http.StatusConflict, unavailable.Error(), h.log)
		case errors.Is(err, ledger.ErrFinalizeInProgress):
			WriteError(w, http.StatusConflict, "A purchase is already in progress", h.log)
		case errors.Is(err, store.ErrNotPersisted):
			h.log.Error("checkout failed to persist", "error", err)
			WriteError(w, http.StatusBadGateway, "Purchase could not be saved, please try again", h.log)
		default:
			h.log.Error("checkout failed", "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	WriteJSON(w, http.StatusOK, order, h.log)
	h.log.Info("checkout completed", "order_id", order.ID, "total", order.TotalAmount)
}

// ListOrders handles GET /api/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.ledger.Orders(), h.log)
}
