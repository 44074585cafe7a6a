package catalog

import (
	"errors"
	"testing"

	"github.com/kmurithi/ministore/internal/models"
)

func seedProducts() []models.Product {
	return []models.Product{
		{ID: "p1", Name: "Milk 500ml", Price: 65, Capacity: 20, Available: 12, Sold: 8},
		{ID: "p2", Name: "Bread", Price: 70, Capacity: 15, Available: 1, Sold: 14},
		{ID: "p3", Name: "Sugar 1kg", Price: 150, Capacity: 10, Available: 0, Sold: 10},
	}
}

func TestCatalog_FindByID(t *testing.T) {
	c := New(seedProducts())

	p, err := c.FindByID("p1")
	if err != nil {
		t.Fatalf("FindByID() unexpected error = %v", err)
	}
	if p.Name != "Milk 500ml" {
		t.Errorf("FindByID() name = %q, want %q", p.Name, "Milk 500ml")
	}

	// Returned product is a copy; mutating it must not touch the catalog.
	p.Available = 0
	again, err := c.FindByID("p1")
	if err != nil {
		t.Fatalf("FindByID() unexpected error = %v", err)
	}
	if again.Available != 12 {
		t.Errorf("catalog mutated through returned copy: available = %d, want 12", again.Available)
	}

	if _, err := c.FindByID("missing"); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("FindByID(missing) error = %v, want ErrProductNotFound", err)
	}
}

func TestCatalog_DecrementStock(t *testing.T) {
	tests := []struct {
		name          string
		id            string
		wantErr       error
		wantAvailable int
		wantSold      int
	}{
		{name: "decrements available and increments sold", id: "p1", wantAvailable: 11, wantSold: 9},
		{name: "last unit", id: "p2", wantAvailable: 0, wantSold: 15},
		{name: "out of stock", id: "p3", wantErr: ErrOutOfStock, wantAvailable: 0, wantSold: 10},
		{name: "unknown product", id: "nope", wantErr: ErrProductNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(seedProducts())
			err := c.DecrementStock(tt.id)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("DecrementStock() error = %v, want %v", err, tt.wantErr)
				}
				if tt.id == "nope" {
					return
				}
			} else if err != nil {
				t.Fatalf("DecrementStock() unexpected error = %v", err)
			}

			p, err := c.FindByID(tt.id)
			if err != nil {
				t.Fatalf("FindByID() unexpected error = %v", err)
			}
			if p.Available != tt.wantAvailable {
				t.Errorf("available = %d, want %d", p.Available, tt.wantAvailable)
			}
			if p.Sold != tt.wantSold {
				t.Errorf("sold = %d, want %d", p.Sold, tt.wantSold)
			}
		})
	}
}

func TestCatalog_List_PreservesOrder(t *testing.T) {
	c := New(seedProducts())

	got := c.List()
	if len(got) != 3 {
		t.Fatalf("List() returned %d products, want 3", len(got))
	}
	for i, want := range []string{"p1", "p2", "p3"} {
		if got[i].ID != want {
			t.Errorf("List()[%d].ID = %q, want %q", i, got[i].ID, want)
		}
	}
}

func TestStockLevel(t *testing.T) {
	tests := []struct {
		name      string
		available int
		want      string
	}{
		{name: "zero is out", available: 0, want: StockOut},
		{name: "at threshold is low", available: LowStockThreshold, want: StockLow},
		{name: "one is low", available: 1, want: StockLow},
		{name: "above threshold is high", available: LowStockThreshold + 1, want: StockHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StockLevel(models.Product{Available: tt.available})
			if got != tt.want {
				t.Errorf("StockLevel(available=%d) = %q, want %q", tt.available, got, tt.want)
			}
		})
	}
}
