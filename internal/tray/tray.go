package tray

import (
	"errors"

	"github.com/kmurithi/ministore/internal/models"
)

var (
	ErrAlreadyInTray   = errors.New("product is already in the tray")
	ErrUnavailable     = errors.New("product is not available")
	ErrIndexOutOfRange = errors.New("tray index out of range")
)

// Tray is the user's in-progress, unsubmitted selection of items. Each
// product may appear at most once; prices are snapshotted at add-time.
// Session-scoped and never persisted.
type Tray struct {
	items []models.TrayItem
}

// New creates an empty tray.
func New() *Tray {
	return &Tray{}
}

// Add appends a snapshot of the product. A product already present leaves
// the tray unchanged and reports ErrAlreadyInTray; an out-of-stock product
// reports ErrUnavailable.
func (t *Tray) Add(p models.Product) error {
	for _, item := range t.items {
		if item.ProductID == p.ID {
			return ErrAlreadyInTray
		}
	}
	if p.Available <= 0 {
		return ErrUnavailable
	}
	t.items = append(t.items, models.TrayItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
	})
	return nil
}

// RemoveAt deletes the item at the given position, preserving the relative
// order of the remaining items.
func (t *Tray) RemoveAt(index int) (models.TrayItem, error) {
	if index < 0 || index >= len(t.items) {
		return models.TrayItem{}, ErrIndexOutOfRange
	}
	removed := t.items[index]
	t.items = append(t.items[:index], t.items[index+1:]...)
	return removed, nil
}

// Total returns the sum of the snapshotted item prices.
func (t *Tray) Total() float64 {
	var sum float64
	for _, item := range t.items {
		sum += item.Price
	}
	return sum
}

// Items returns a copy of the current items in insertion order.
func (t *Tray) Items() []models.TrayItem {
	out := make([]models.TrayItem, len(t.items))
	copy(out, t.items)
	return out
}

// Len returns the number of items in the tray.
func (t *Tray) Len() int {
	return len(t.items)
}

// Clear empties the tray. Called only after a successful finalize.
func (t *Tray) Clear() {
	t.items = nil
}
