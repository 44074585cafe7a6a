package models

// OrderStatusCompleted is the only status an order can carry in this core;
// orders are recorded after the fact, never in a pending state.
const OrderStatusCompleted = "completed"

// Order represents a finalized purchase. Immutable once created: orders are
// appended to the ledger, never edited or deleted.
type Order struct {
	ID          string     `json:"id"`
	Date        string     `json:"date"` // ISO date, YYYY-MM-DD
	Items       []TrayItem `json:"items"`
	TotalAmount float64    `json:"totalAmount"`
	Status      string     `json:"status"`
}
