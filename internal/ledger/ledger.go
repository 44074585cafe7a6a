// Package ledger turns a finalized tray into a persisted order with its
// inventory and expense side effects, and records manual expenses with
// currency normalization.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/kmurithi/ministore/internal/catalog"
	"github.com/kmurithi/ministore/internal/currency"
	"github.com/kmurithi/ministore/internal/models"
	"github.com/kmurithi/ministore/internal/store"
	"github.com/kmurithi/ministore/internal/tray"
	"github.com/kmurithi/ministore/internal/wal"
)

var (
	ErrEmptyTray          = errors.New("tray is empty")
	ErrFinalizeInProgress = errors.New("a purchase is already being finalized")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrExpenseImmutable   = errors.New("auto-generated expenses cannot be modified")
)

// StockCostRatio is the assumed cost of goods as a share of sale price,
// charged as an auto expense on every finalized purchase.
const StockCostRatio = 0.7

// StockCategory is the category auto expenses are filed under.
const StockCategory = "Stock"

const dateLayout = "2006-01-02"

// ItemUnavailableError reports which tray item failed the pre-commit
// availability check, so the user can remove it and retry.
type ItemUnavailableError struct {
	ProductID string
	Name      string
}

func (e *ItemUnavailableError) Error() string {
	return fmt.Sprintf("%s is no longer available", e.Name)
}

// Ledger owns the orders and expenses collections and coordinates the
// catalog, tray, converter and external store on every mutation.
type Ledger struct {
	catalog   *catalog.Catalog
	tray      *tray.Tray
	converter *currency.Converter
	store     store.Store
	intents   *wal.Log // nil disables the write-ahead record
	log       *slog.Logger

	baseCurrency string
	orders       []models.Order
	expenses     []models.Expense
	finalizing   atomic.Bool

	// Now is the clock used for order/expense dates. Overridable in tests.
	Now func() time.Time
}

// New creates a ledger. The intent log may be nil when no local write-ahead
// record is wanted.
func New(cat *catalog.Catalog, tr *tray.Tray, conv *currency.Converter, st store.Store, intents *wal.Log, baseCurrency string, log *slog.Logger) *Ledger {
	return &Ledger{
		catalog:      cat,
		tray:         tr,
		converter:    conv,
		store:        st,
		intents:      intents,
		log:          log,
		baseCurrency: baseCurrency,
		Now:          time.Now,
	}
}

// Load hydrates the catalog, orders and expenses from the external store.
// Missing order or expense collections start fresh; a missing product
// collection is an error since the storefront cannot run without it.
func (l *Ledger) Load(ctx context.Context) error {
	products, err := l.store.GetProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}
	l.catalog.Replace(products)

	orders, err := l.store.GetOrders(ctx)
	if err != nil {
		l.log.Warn("no orders loaded, starting fresh", "error", err)
		orders = nil
	}
	l.orders = orders

	expenses, err := l.store.GetExpenses(ctx)
	if err != nil {
		l.log.Warn("no expenses loaded, starting fresh", "error", err)
		expenses = nil
	}
	l.expenses = expenses

	l.log.Info("ledger loaded",
		"products", len(products),
		"orders", len(l.orders),
		"expenses", len(l.expenses),
	)
	return nil
}

// FinalizePurchase converts the tray into an order: it re-validates every
// item against fresh catalog state, decrements stock, persists the order,
// appends the auto stock-cost expense and clears the tray. Validation
// failures leave all state untouched. A second call while one is in flight
// fails with ErrFinalizeInProgress instead of double-committing.
func (l *Ledger) FinalizePurchase(ctx context.Context) (*models.Order, error) {
	if !l.finalizing.CompareAndSwap(false, true) {
		return nil, ErrFinalizeInProgress
	}
	defer l.finalizing.Store(false)

	if l.tray.Len() == 0 {
		return nil, ErrEmptyTray
	}

	// Validate against the freshest catalog state, not the add-time
	// snapshot: availability may have changed since the item was added.
	items := l.tray.Items()
	for _, item := range items {
		p, err := l.catalog.FindByID(item.ProductID)
		if err != nil || p.Available <= 0 {
			return nil, &ItemUnavailableError{ProductID: item.ProductID, Name: item.Name}
		}
	}

	orderDate := l.today()
	order := models.Order{
		ID:          uuid.New().String(),
		Date:        orderDate,
		Items:       items,
		TotalAmount: l.tray.Total(),
		Status:      models.OrderStatusCompleted,
	}

	if l.intents != nil {
		if err := l.intents.Begin(order.ID, order); err != nil {
			l.log.Warn("failed to record purchase intent", "order_id", order.ID, "error", err)
		}
	}

	// Commit sequence. These are independent external calls with no
	// rollback; a failure past this point leaves the intent pending for
	// the reconciliation pass.
	for _, item := range items {
		if err := l.catalog.DecrementStock(item.ProductID); err != nil {
			return nil, &ItemUnavailableError{ProductID: item.ProductID, Name: item.Name}
		}
		p, err := l.catalog.FindByID(item.ProductID)
		if err != nil {
			return nil, &ItemUnavailableError{ProductID: item.ProductID, Name: item.Name}
		}
		if err := l.store.PutProduct(ctx, *p); err != nil {
			return nil, fmt.Errorf("failed to persist stock for %s: %w", item.Name, err)
		}
	}

	saved, err := l.store.PostOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}
	l.orders = append(l.orders, *saved)

	expense, err := l.appendStockExpense(ctx, saved)
	if err != nil {
		return nil, err
	}

	if l.intents != nil {
		if err := l.intents.MarkApplied(order.ID); err != nil {
			l.log.Warn("failed to close purchase intent", "order_id", order.ID, "error", err)
		}
	}

	l.tray.Clear()
	l.log.Info("purchase finalized",
		"order_id", saved.ID,
		"items", len(saved.Items),
		"total", saved.TotalAmount,
		"stock_cost", expense.Amount,
	)
	return saved, nil
}

// appendStockExpense records the auto-generated cost-of-goods expense for a
// persisted order.
func (l *Ledger) appendStockExpense(ctx context.Context, order *models.Order) (*models.Expense, error) {
	expense := models.Expense{
		ID:       uuid.New().String(),
		Name:     "Auto Stock Cost",
		Amount:   math.Round(order.TotalAmount * StockCostRatio),
		Date:     order.Date,
		Category: StockCategory,
		Type:     models.ExpenseTypeAuto,
		OrderID:  order.ID,
	}

	saved, err := l.store.PostExpense(ctx, expense)
	if err != nil {
		return nil, fmt.Errorf("failed to persist stock expense: %w", err)
	}
	l.expenses = append(l.expenses, *saved)
	return saved, nil
}

// ExpenseInput is a manual expense submission.
type ExpenseInput struct {
	Name     string
	Amount   float64
	Date     string
	Category string
	Currency string
}

// AddManualExpense validates, converts and persists a user-submitted
// expense. Amounts in a non-base currency are normalized through the
// converter, keeping the original amount and currency on the record; if the
// rate is unavailable the original amount is recorded as-is with a warning.
func (l *Ledger) AddManualExpense(ctx context.Context, in ExpenseInput) (*models.Expense, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.Category == "" {
		return nil, fmt.Errorf("%w: category is required", ErrValidation)
	}
	if in.Date == "" {
		in.Date = l.today()
	} else if _, err := time.Parse(dateLayout, in.Date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if in.Currency == "" {
		in.Currency = l.baseCurrency
	}

	expense := models.Expense{
		ID:       uuid.New().String(),
		Name:     in.Name,
		Amount:   in.Amount,
		Date:     in.Date,
		Category: in.Category,
		Type:     models.ExpenseTypeManual,
	}

	if in.Currency != l.baseCurrency {
		converted, err := l.converter.Convert(ctx, in.Amount, in.Currency, l.baseCurrency)
		if err != nil {
			if !errors.Is(err, currency.ErrRateUnavailable) {
				return nil, err
			}
			l.log.Warn("currency conversion unavailable, recording original amount",
				"currency", in.Currency, "amount", in.Amount, "error", err)
		}
		original := in.Amount
		expense.Amount = converted
		expense.OriginalAmount = &original
		expense.OriginalCurrency = in.Currency
	}

	saved, err := l.store.PostExpense(ctx, expense)
	if err != nil {
		return nil, fmt.Errorf("failed to persist expense: %w", err)
	}
	l.expenses = append(l.expenses, *saved)

	l.log.Info("expense recorded", "expense_id", saved.ID, "amount", saved.Amount, "category", saved.Category)
	return saved, nil
}

// ExpenseUpdate carries the editable fields of a manual expense; nil fields
// are left unchanged.
type ExpenseUpdate struct {
	Name     *string
	Amount   *float64
	Date     *string
	Category *string
}

// UpdateExpense edits a manual expense by its stable id. Auto-generated
// expenses are immutable.
func (l *Ledger) UpdateExpense(ctx context.Context, id string, upd ExpenseUpdate) (*models.Expense, error) {
	idx := l.expenseIndex(id)
	if idx < 0 {
		return nil, ErrExpenseNotFound
	}
	if l.expenses[idx].Type == models.ExpenseTypeAuto {
		return nil, ErrExpenseImmutable
	}

	expense := l.expenses[idx]
	if upd.Name != nil {
		if *upd.Name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrValidation)
		}
		expense.Name = *upd.Name
	}
	if upd.Amount != nil {
		if *upd.Amount <= 0 {
			return nil, ErrInvalidAmount
		}
		expense.Amount = *upd.Amount
	}
	if upd.Date != nil {
		if _, err := time.Parse(dateLayout, *upd.Date); err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
		}
		expense.Date = *upd.Date
	}
	if upd.Category != nil {
		if *upd.Category == "" {
			return nil, fmt.Errorf("%w: category is required", ErrValidation)
		}
		expense.Category = *upd.Category
	}

	l.expenses[idx] = expense
	l.log.Info("expense updated", "expense_id", id)
	return &expense, nil
}

// DeleteExpense removes a manual expense by its stable id.
func (l *Ledger) DeleteExpense(ctx context.Context, id string) error {
	idx := l.expenseIndex(id)
	if idx < 0 {
		return ErrExpenseNotFound
	}
	if l.expenses[idx].Type == models.ExpenseTypeAuto {
		return ErrExpenseImmutable
	}
	l.expenses = append(l.expenses[:idx], l.expenses[idx+1:]...)
	l.log.Info("expense deleted", "expense_id", id)
	return nil
}

// Orders returns a copy of the recorded orders in append order.
func (l *Ledger) Orders() []models.Order {
	out := make([]models.Order, len(l.orders))
	copy(out, l.orders)
	return out
}

// Expenses returns a copy of the recorded expenses in append order.
func (l *Ledger) Expenses() []models.Expense {
	out := make([]models.Expense, len(l.expenses))
	copy(out, l.expenses)
	return out
}

// Today returns the current date in the ledger's date format.
func (l *Ledger) Today() string {
	return l.today()
}

func (l *Ledger) today() string {
	return l.Now().UTC().Format(dateLayout)
}

func (l *Ledger) expenseIndex(id string) int {
	for i := range l.expenses {
		if l.expenses[i].ID == id {
			return i
		}
	}
	return -1
}
