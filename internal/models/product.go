package models

// Product represents a catalog product with live stock counters.
// Available and Sold are mutated only by the ledger during purchase
// finalization; Capacity never changes.
type Product struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Capacity  int     `json:"capacity"`
	Available int     `json:"available"`
	Sold      int     `json:"sold"`
	Image     string  `json:"image,omitempty"`
	Category  string  `json:"category,omitempty"`
}

// TrayItem is a price snapshot of a product taken at add-time, decoupled
// from later catalog price changes.
type TrayItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
}
