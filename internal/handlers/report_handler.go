package handlers

import (
	"log/slog"
	"net/http"

	"github.com/kmurithi/ministore/internal/ledger"
	"github.com/kmurithi/ministore/internal/report"
)

// ReportHandler exposes the aggregate metrics the reports view renders.
type ReportHandler struct {
	ledger *ledger.Ledger
	log    *slog.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(l *ledger.Ledger, log *slog.Logger) *ReportHandler {
	return &ReportHandler{
		ledger: l,
		log:    log,
	}
}

// Summary handles GET /api/reports/summary
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary := report.BuildSummary(h.ledger.Orders(), h.ledger.Expenses(), h.ledger.Today())
	WriteJSON(w, http.StatusOK, summary, h.log)
}

// ExpensesByCategory handles GET /api/reports/expenses-by-category
func (h *ReportHandler) ExpensesByCategory(w http.ResponseWriter, r *http.Request) {
	totals := report.ExpensesByCategorySorted(h.ledger.Expenses())
	WriteJSON(w, http.StatusOK, totals, h.log)
}
