package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kmurithi/ministore/internal/models"
	"github.com/kmurithi/ministore/internal/wal"
)

// Reconcile retries the pending purchase intents left behind by commit
// sequences that failed part-way (stock decremented, order never persisted).
// Run at startup after Load. Returns how many intents were applied.
func (l *Ledger) Reconcile(ctx context.Context) (int, error) {
	if l.intents == nil {
		return 0, nil
	}
	return l.intents.Reconcile(ctx, l.replayIntent)
}

func (l *Ledger) replayIntent(ctx context.Context, entry wal.Entry) error {
	var order models.Order
	if err := json.Unmarshal([]byte(entry.Payload), &order); err != nil || order.ID == "" {
		// An undecodable intent can never be replayed; close it out rather
		// than retrying it forever.
		l.log.Error("dropping undecodable purchase intent", "order_id", entry.OrderID, "error", err)
		return nil
	}

	// The store is keyed by id, so re-posting an already-persisted order or
	// expense overwrites the same record instead of duplicating it.
	saved, err := l.store.PostOrder(ctx, order)
	if err != nil {
		return fmt.Errorf("intent replay for order %s: %w", entry.OrderID, err)
	}
	if !l.hasOrder(saved.ID) {
		l.orders = append(l.orders, *saved)
	}

	// The auto expense is linked by OrderID; skip it when a previous run
	// already got that far before failing.
	if !l.hasStockExpenseFor(saved.ID) {
		if _, err := l.appendStockExpense(ctx, saved); err != nil {
			return fmt.Errorf("intent replay for order %s: %w", entry.OrderID, err)
		}
	}

	l.log.Info("purchase intent reconciled", "order_id", saved.ID)
	return nil
}

func (l *Ledger) hasOrder(id string) bool {
	for i := range l.orders {
		if l.orders[i].ID == id {
			return true
		}
	}
	return false
}

func (l *Ledger) hasStockExpenseFor(orderID string) bool {
	for i := range l.expenses {
		if l.expenses[i].OrderID == orderID {
			return true
		}
	}
	return false
}
