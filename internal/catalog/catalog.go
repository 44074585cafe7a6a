package catalog

import (
	"errors"

	"github.com/kmurithi/ministore/internal/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOutOfStock      = errors.New("product is out of stock")
)

// LowStockThreshold is the available count at or below which a product is
// reported as low stock.
const LowStockThreshold = 5

// Stock level classifications for display.
const (
	StockOut  = "out"
	StockLow  = "low"
	StockHigh = "high"
)

// Catalog holds the product records loaded from the external store.
// Available/Sold counters are mutated only through DecrementStock, which the
// ledger calls during purchase finalization. Single writer by convention;
// the catalog itself provides no locking.
type Catalog struct {
	ids      []string
	products map[string]*models.Product
}

// New creates a catalog seeded with the given products.
func New(products []models.Product) *Catalog {
	c := &Catalog{}
	c.Replace(products)
	return c
}

// Replace swaps the full product set, preserving the given order for listing.
// Used when re-loading products from the external store.
func (c *Catalog) Replace(products []models.Product) {
	c.ids = make([]string, 0, len(products))
	c.products = make(map[string]*models.Product, len(products))
	for i := range products {
		p := products[i]
		c.ids = append(c.ids, p.ID)
		c.products[p.ID] = &p
	}
}

// List returns all products in load order.
func (c *Catalog) List() []models.Product {
	out := make([]models.Product, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, *c.products[id])
	}
	return out
}

// FindByID returns a copy of the product with the given id.
func (c *Catalog) FindByID(id string) (*models.Product, error) {
	p, ok := c.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

// DecrementStock records one unit sold: available decreases by one and sold
// increases by one. Fails with ErrOutOfStock when nothing is available,
// leaving the counters untouched.
func (c *Catalog) DecrementStock(id string) error {
	p, ok := c.products[id]
	if !ok {
		return ErrProductNotFound
	}
	if p.Available <= 0 {
		return ErrOutOfStock
	}
	p.Available--
	p.Sold++
	return nil
}

// StockLevel classifies a product's availability for display.
func StockLevel(p models.Product) string {
	switch {
	case p.Available <= 0:
		return StockOut
	case p.Available <= LowStockThreshold:
		return StockLow
	default:
		return StockHigh
	}
}
