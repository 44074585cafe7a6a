package tray

import (
	"errors"
	"testing"

	"github.com/kmurithi/ministore/internal/models"
)

func product(id, name string, price float64, available int) models.Product {
	return models.Product{ID: id, Name: name, Price: price, Capacity: 10, Available: available}
}

func TestTray_Add(t *testing.T) {
	tests := []struct {
		name    string
		setup   []models.Product
		add     models.Product
		wantErr error
		wantLen int
	}{
		{
			name:    "adds available product",
			add:     product("p1", "Milk", 65, 5),
			wantLen: 1,
		},
		{
			name:    "rejects duplicate product",
			setup:   []models.Product{product("p1", "Milk", 65, 5)},
			add:     product("p1", "Milk", 65, 5),
			wantErr: ErrAlreadyInTray,
			wantLen: 1,
		},
		{
			name:    "rejects out of stock product",
			add:     product("p2", "Bread", 70, 0),
			wantErr: ErrUnavailable,
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New()
			for _, p := range tt.setup {
				if err := tr.Add(p); err != nil {
					t.Fatalf("setup Add() failed: %v", err)
				}
			}

			err := tr.Add(tt.add)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Add() error = %v, want %v", err, tt.wantErr)
			}
			if tr.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", tr.Len(), tt.wantLen)
			}
		})
	}
}

func TestTray_Add_DuplicateLeavesTrayUnchanged(t *testing.T) {
	tr := New()
	if err := tr.Add(product("p1", "Milk", 65, 5)); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}

	before := tr.Items()
	if err := tr.Add(product("p1", "Milk", 99, 5)); !errors.Is(err, ErrAlreadyInTray) {
		t.Fatalf("Add() error = %v, want ErrAlreadyInTray", err)
	}

	after := tr.Items()
	if len(after) != len(before) || after[0] != before[0] {
		t.Errorf("duplicate Add() changed tray: before %v, after %v", before, after)
	}
	if tr.Total() != 65 {
		t.Errorf("Total() = %v, want 65", tr.Total())
	}
}

func TestTray_RemoveAt(t *testing.T) {
	tr := New()
	for _, p := range []models.Product{
		product("p1", "Milk", 65, 5),
		product("p2", "Bread", 70, 5),
		product("p3", "Sugar", 150, 5),
	} {
		if err := tr.Add(p); err != nil {
			t.Fatalf("Add() failed: %v", err)
		}
	}

	removed, err := tr.RemoveAt(1)
	if err != nil {
		t.Fatalf("RemoveAt(1) unexpected error = %v", err)
	}
	if removed.ProductID != "p2" {
		t.Errorf("RemoveAt(1) removed %q, want p2", removed.ProductID)
	}

	// Remaining items keep their relative order.
	items := tr.Items()
	if len(items) != 2 || items[0].ProductID != "p1" || items[1].ProductID != "p3" {
		t.Errorf("items after removal = %v, want [p1 p3]", items)
	}

	for _, index := range []int{-1, 2, 100} {
		if _, err := tr.RemoveAt(index); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("RemoveAt(%d) error = %v, want ErrIndexOutOfRange", index, err)
		}
	}
}

func TestTray_TotalTracksAddAndRemove(t *testing.T) {
	tr := New()

	if tr.Total() != 0 {
		t.Fatalf("empty tray Total() = %v, want 0", tr.Total())
	}

	tr.Add(product("p1", "Milk", 100, 5))
	tr.Add(product("p2", "Bread", 200, 5))
	tr.Add(product("p3", "Sugar", 150, 5))
	if tr.Total() != 450 {
		t.Fatalf("Total() = %v, want 450", tr.Total())
	}

	// Removing an item must drop exactly its price from the total.
	if _, err := tr.RemoveAt(0); err != nil {
		t.Fatalf("RemoveAt(0) failed: %v", err)
	}
	if tr.Total() != 350 {
		t.Errorf("Total() after removal = %v, want 350", tr.Total())
	}

	tr.Clear()
	if tr.Total() != 0 || tr.Len() != 0 {
		t.Errorf("after Clear(): total = %v, len = %d, want 0 and 0", tr.Total(), tr.Len())
	}
}

func TestTray_ItemsReturnsCopy(t *testing.T) {
	tr := New()
	tr.Add(product("p1", "Milk", 65, 5))

	items := tr.Items()
	items[0].Price = 999

	if tr.Total() != 65 {
		t.Errorf("mutating Items() result changed the tray: Total() = %v, want 65", tr.Total())
	}
}
