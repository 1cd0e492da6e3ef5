package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warungpos/inventory/internal/adapter/http/dto"
	"github.com/warungpos/inventory/internal/domain"
	"github.com/warungpos/inventory/internal/usecase"
)

// OrderHandler handles sales order HTTP requests.
type OrderHandler struct {
	orderUC *usecase.OrderUseCase
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderUC *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{orderUC: orderUC}
}

// Create creates a new sales order.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	order, err := h.orderUC.CreateOrder(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeFailure(w, err, "failed to create order")

		return
	}

	writeJSON(w, http.StatusCreated, dto.OrderFromDomain(order))
}

// Pay records a payment against an order. When payments cover the total,
// the order is completed and recipe ingredients are deducted.
func (h *OrderHandler) Pay(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing order ID", "")
		return
	}

	var req dto.PayOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	order, err := h.orderUC.Pay(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		writeFailure(w, err, "failed to pay order")

		return
	}

	writeJSON(w, http.StatusOK, dto.OrderFromDomain(order))
}

// Cancel cancels an open order.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing order ID", "")
		return
	}

	order, err := h.orderUC.Cancel(r.Context(), id)
	if err != nil {
		writeFailure(w, err, "failed to cancel order")

		return
	}

	writeJSON(w, http.StatusOK, dto.OrderFromDomain(order))
}

// Get retrieves an order by ID.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing order ID", "")
		return
	}

	order, err := h.orderUC.GetOrder(r.Context(), id)
	if err != nil {
		writeFailure(w, err, "failed to get order")

		return
	}

	writeJSON(w, http.StatusOK, dto.OrderFromDomain(order))
}

// List lists orders filtered by branch, status, and payment status.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.OrderFilter{
		BranchID:      r.URL.Query().Get("branch_id"),
		Status:        domain.OrderStatus(r.URL.Query().Get("status")),
		PaymentStatus: domain.PaymentStatus(r.URL.Query().Get("payment_status")),
	}
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	orders, err := h.orderUC.ListOrders(r.Context(), filter, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list orders", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.OrdersFromDomain(orders))
}
