package store

import (
	"context"

	"github.com/kmurithi/ministore/internal/models"
)

// Memory is an in-process Store used by tests and by standalone runs where
// no external store is configured. Writes always "persist".
type Memory struct {
	Products []models.Product
	Orders   []models.Order
	Expenses []models.Expense
}

// NewMemory creates a memory store seeded with the given products.
func NewMemory(products []models.Product) *Memory {
	return &Memory{Products: products}
}

func (m *Memory) GetProducts(ctx context.Context) ([]models.Product, error) {
	out := make([]models.Product, len(m.Products))
	copy(out, m.Products)
	return out, nil
}

func (m *Memory) GetOrders(ctx context.Context) ([]models.Order, error) {
	out := make([]models.Order, len(m.Orders))
	copy(out, m.Orders)
	return out, nil
}

func (m *Memory) GetExpenses(ctx context.Context) ([]models.Expense, error) {
	out := make([]models.Expense, len(m.Expenses))
	copy(out, m.Expenses)
	return out, nil
}

func (m *Memory) PostOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	m.Orders = append(m.Orders, order)
	saved := order
	return &saved, nil
}

func (m *Memory) PostExpense(ctx context.Context, expense models.Expense) (*models.Expense, error) {
	m.Expenses = append(m.Expenses, expense)
	saved := expense
	return &saved, nil
}

func (m *Memory) PutProduct(ctx context.Context, product models.Product) error {
	for i := range m.Products {
		if m.Products[i].ID == product.ID {
			m.Products[i] = product
			return nil
		}
	}
	m.Products = append(m.Products, product)
	return nil
}
