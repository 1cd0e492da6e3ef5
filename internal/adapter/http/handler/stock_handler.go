package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warungpos/inventory/internal/adapter/http/dto"
	"github.com/warungpos/inventory/internal/usecase"
)

// StockHandler serves read-side stock views and reports.
type StockHandler struct {
	reportUC *usecase.ReportUseCase
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(reportUC *usecase.ReportUseCase) *StockHandler {
	return &StockHandler{reportUC: reportUC}
}

// GetQuantity returns quantity-on-hand for one branch/ingredient pair.
// A known ingredient never touched by any movement reads as zero; an
// unknown ingredient is a 404.
func (h *StockHandler) GetQuantity(w http.ResponseWriter, r *http.Request) {
	branchID := chi.URLParam(r, "branchID")
	ingredientID := chi.URLParam(r, "ingredientID")

	if branchID == "" || ingredientID == "" {
		writeError(w, http.StatusBadRequest, "missing branch or ingredient ID", "")
		return
	}

	qty, err := h.reportUC.CurrentQuantity(r.Context(), branchID, ingredientID)
	if err != nil {
		writeFailure(w, err, "failed to get stock quantity")

		return
	}

	writeJSON(w, http.StatusOK, dto.QuantityResponse{
		BranchID:     branchID,
		IngredientID: ingredientID,
		Quantity:     qty,
	})
}

// ListByBranch lists stock entries for one branch.
func (h *StockHandler) ListByBranch(w http.ResponseWriter, r *http.Request) {
	branchID := chi.URLParam(r, "branchID")
	if branchID == "" {
		writeError(w, http.StatusBadRequest, "missing branch ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.reportUC.ListStock(r.Context(), branchID, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list stock", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StocksFromDomain(entries))
}

// Valuation returns the inventory valuation report for one branch.
func (h *StockHandler) Valuation(w http.ResponseWriter, r *http.Request) {
	branchID := chi.URLParam(r, "branchID")
	if branchID == "" {
		writeError(w, http.StatusBadRequest, "missing branch ID", "")
		return
	}

	report, err := h.reportUC.Valuation(r.Context(), branchID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build valuation report", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ValuationFromUseCase(report))
}
