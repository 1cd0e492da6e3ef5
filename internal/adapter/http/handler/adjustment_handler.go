package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warungpos/inventory/internal/adapter/http/dto"
	"github.com/warungpos/inventory/internal/usecase"
)

// AdjustmentHandler handles stock adjustment HTTP requests.
type AdjustmentHandler struct {
	adjustmentUC *usecase.AdjustmentUseCase
}

// NewAdjustmentHandler creates a new AdjustmentHandler.
func NewAdjustmentHandler(adjustmentUC *usecase.AdjustmentUseCase) *AdjustmentHandler {
	return &AdjustmentHandler{adjustmentUC: adjustmentUC}
}

// Create opens a new adjustment draft.
func (h *AdjustmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	adjustment, err := h.adjustmentUC.CreateDraft(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeFailure(w, err, "failed to create adjustment")

		return
	}

	writeJSON(w, http.StatusCreated, dto.AdjustmentFromDomain(adjustment))
}

// Update replaces the items of a draft with a new count.
func (h *AdjustmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing adjustment ID", "")
		return
	}

	var req dto.UpdateAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	adjustment, err := h.adjustmentUC.UpdateDraft(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		writeFailure(w, err, "failed to update adjustment")

		return
	}

	writeJSON(w, http.StatusOK, dto.AdjustmentFromDomain(adjustment))
}

// Finalize completes the adjustment and writes counted stock to the ledger.
func (h *AdjustmentHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing adjustment ID", "")
		return
	}

	adjustment, err := h.adjustmentUC.Finalize(r.Context(), id)
	if err != nil {
		writeFailure(w, err, "failed to finalize adjustment")

		return
	}

	writeJSON(w, http.StatusOK, dto.AdjustmentFromDomain(adjustment))
}

// Get retrieves an adjustment by ID.
func (h *AdjustmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing adjustment ID", "")
		return
	}

	adjustment, err := h.adjustmentUC.GetAdjustment(r.Context(), id)
	if err != nil {
		writeFailure(w, err, "failed to get adjustment")

		return
	}

	writeJSON(w, http.StatusOK, dto.AdjustmentFromDomain(adjustment))
}

// List lists adjustments.
func (h *AdjustmentHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	adjustments, err := h.adjustmentUC.ListAdjustments(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list adjustments", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AdjustmentsFromDomain(adjustments))
}
