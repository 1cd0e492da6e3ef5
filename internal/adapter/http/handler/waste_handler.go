package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warungpos/inventory/internal/adapter/http/dto"
	"github.com/warungpos/inventory/internal/usecase"
)

// WasteHandler handles waste record HTTP requests.
type WasteHandler struct {
	wasteUC *usecase.WasteUseCase
}

// NewWasteHandler creates a new WasteHandler.
func NewWasteHandler(wasteUC *usecase.WasteUseCase) *WasteHandler {
	return &WasteHandler{wasteUC: wasteUC}
}

// Create records waste and deducts the branch ledger.
func (h *WasteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordWasteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	waste, err := h.wasteUC.RecordWaste(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeFailure(w, err, "failed to record waste")

		return
	}

	writeJSON(w, http.StatusCreated, dto.WasteFromDomain(waste))
}

// Get retrieves a waste record by ID.
func (h *WasteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing waste ID", "")
		return
	}

	waste, err := h.wasteUC.GetWaste(r.Context(), id)
	if err != nil {
		writeFailure(w, err, "failed to get waste")

		return
	}

	writeJSON(w, http.StatusOK, dto.WasteFromDomain(waste))
}

// List lists waste records.
func (h *WasteHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	wastes, err := h.wasteUC.ListWastes(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list wastes", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.WastesFromDomain(wastes))
}
