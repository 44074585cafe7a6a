// Package report computes aggregate metrics over the recorded orders and
// expenses. Everything here is a pure function recomputed on demand; there
// is no cached or incremental state.
package report

import (
	"sort"

	"github.com/kmurithi/ministore/internal/models"
)

// Summary is the headline metrics block for the reports view.
type Summary struct {
	Revenue       float64 `json:"revenue"`
	TotalExpenses float64 `json:"totalExpenses"`
	NetProfit     float64 `json:"netProfit"`
	OrdersToday   int     `json:"ordersToday"`
}

// CategoryTotal is an expense amount aggregated per category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// Revenue sums the total amount of all orders.
func Revenue(orders []models.Order) float64 {
	var sum float64
	for _, o := range orders {
		sum += o.TotalAmount
	}
	return sum
}

// TotalExpenses sums the base-currency amount of all expenses.
func TotalExpenses(expenses []models.Expense) float64 {
	var sum float64
	for _, e := range expenses {
		sum += e.Amount
	}
	return sum
}

// NetProfit is revenue minus total expenses; negative when running at a loss.
func NetProfit(orders []models.Order, expenses []models.Expense) float64 {
	return Revenue(orders) - TotalExpenses(expenses)
}

// OrdersOn counts the orders placed on the given ISO date.
func OrdersOn(orders []models.Order, date string) int {
	count := 0
	for _, o := range orders {
		if o.Date == date {
			count++
		}
	}
	return count
}

// ExpensesByCategory groups expenses by category, summing amounts per group.
// Categories keep first-seen order so the breakdown is stable across calls.
func ExpensesByCategory(expenses []models.Expense) []CategoryTotal {
	totals := make(map[string]float64)
	var order []string
	for _, e := range expenses {
		if _, seen := totals[e.Category]; !seen {
			order = append(order, e.Category)
		}
		totals[e.Category] += e.Amount
	}

	out := make([]CategoryTotal, 0, len(order))
	for _, cat := range order {
		out = append(out, CategoryTotal{Category: cat, Amount: totals[cat]})
	}
	return out
}

// ExpensesByCategorySorted is ExpensesByCategory with categories in
// alphabetical order, for displays that want a deterministic label set.
func ExpensesByCategorySorted(expenses []models.Expense) []CategoryTotal {
	out := ExpensesByCategory(expenses)
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// BuildSummary assembles the headline metrics for the given day.
func BuildSummary(orders []models.Order, expenses []models.Expense, today string) Summary {
	return Summary{
		Revenue:       Revenue(orders),
		TotalExpenses: TotalExpenses(expenses),
		NetProfit:     NetProfit(orders, expenses),
		OrdersToday:   OrdersOn(orders, today),
	}
}
