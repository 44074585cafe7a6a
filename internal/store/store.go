// Package store talks to the external JSON store the ledger persists to.
// The store is treated as an opaque data source: whatever it echoes back
// from a POST is the record of truth, and a missing or non-2xx response
// means the operation did not persist.
package store

import (
	"context"
	"errors"

	"github.com/kmurithi/ministore/internal/models"
)

// ErrNotPersisted is returned when the store did not confirm a write.
// Callers must not assume optimistic success.
var ErrNotPersisted = errors.New("store did not persist the record")

// Store is the persistence boundary for products, orders and expenses.
type Store interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetOrders(ctx context.Context) ([]models.Order, error)
	GetExpenses(ctx context.Context) ([]models.Expense, error)
	PostOrder(ctx context.Context, order models.Order) (*models.Order, error)
	PostExpense(ctx context.Context, expense models.Expense) (*models.Expense, error)
	PutProduct(ctx context.Context, product models.Product) error
}
