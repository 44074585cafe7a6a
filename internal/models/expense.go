package models

// Expense type discriminators. Auto expenses are generated by the ledger on
// purchase finalization; manual expenses come from user submissions.
const (
	ExpenseTypeManual = "manual"
	ExpenseTypeAuto   = "auto"
)

// Expense represents a recorded cost in the base currency. OriginalAmount
// and OriginalCurrency are set only when the expense was entered in a
// foreign currency and converted on the way in. OrderID links an auto
// expense back to the order that generated it.
type Expense struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Amount           float64  `json:"amount"` // base currency
	Date             string   `json:"date"`   // ISO date, YYYY-MM-DD
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	OriginalAmount   *float64 `json:"originalAmount,omitempty"`
	OriginalCurrency string   `json:"originalCurrency,omitempty"`
	OrderID          string   `json:"orderId,omitempty"`
}
