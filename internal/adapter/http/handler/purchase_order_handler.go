package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warungpos/inventory/internal/adapter/http/dto"
	"github.com/warungpos/inventory/internal/usecase"
)

// PurchaseOrderHandler handles purchase order HTTP requests.
type PurchaseOrderHandler struct {
	purchaseUC *usecase.PurchaseOrderUseCase
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler.
func NewPurchaseOrderHandler(purchaseUC *usecase.PurchaseOrderUseCase) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{purchaseUC: purchaseUC}
}

// Create creates a pending purchase order.
func (h *PurchaseOrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePurchaseOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	po, err := h.purchaseUC.CreatePurchaseOrder(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeFailure(w, err, "failed to create purchase order")

		return
	}

	writeJSON(w, http.StatusCreated, dto.PurchaseOrderFromDomain(po))
}

// Update replaces the item lines of a pending purchase order.
func (h *PurchaseOrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing purchase order ID", "")
		return
	}

	var req dto.UpdatePurchaseOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	po, err := h.purchaseUC.UpdatePurchaseOrder(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		writeFailure(w, err, "failed to update purchase order")

		return
	}

	writeJSON(w, http.StatusOK, dto.PurchaseOrderFromDomain(po))
}

// Approve moves a pending purchase order to approved.
func (h *PurchaseOrderHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing purchase order ID", "")
		return
	}

	po, err := h.purchaseUC.Approve(r.Context(), id)
	if err != nil {
		writeFailure(w, err, "failed to approve purchase order")

		return
	}

	writeJSON(w, http.StatusOK, dto.PurchaseOrderFromDomain(po))
}

// Receive marks a purchase order received and books the stock in.
func (h *PurchaseOrderHandler) Receive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing purchase order ID", "")
		return
	}

	po, err := h.purchaseUC.Receive(r.Context(), id)
	if err != nil {
		writeFailure(w, err, "failed to receive purchase order")

		return
	}

	writeJSON(w, http.StatusOK, dto.PurchaseOrderFromDomain(po))
}

// Delete removes a pending purchase order.
func (h *PurchaseOrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing purchase order ID", "")
		return
	}

	if err := h.purchaseUC.DeletePurchaseOrder(r.Context(), id); err != nil {
		writeFailure(w, err, "failed to delete purchase order")

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get retrieves a purchase order by ID.
func (h *PurchaseOrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing purchase order ID", "")
		return
	}

	po, err := h.purchaseUC.GetPurchaseOrder(r.Context(), id)
	if err != nil {
		writeFailure(w, err, "failed to get purchase order")

		return
	}

	writeJSON(w, http.StatusOK, dto.PurchaseOrderFromDomain(po))
}

// List lists purchase orders, optionally filtered by branch.
func (h *PurchaseOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	branchID := r.URL.Query().Get("branch_id")
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	pos, err := h.purchaseUC.ListPurchaseOrders(r.Context(), branchID, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list purchase orders", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PurchaseOrdersFromDomain(pos))
}
