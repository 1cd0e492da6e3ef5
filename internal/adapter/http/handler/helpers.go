package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/warungpos/inventory/internal/adapter/http/dto"
	"github.com/warungpos/inventory/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeFailure writes an error response for a failed operation, mapping the
// domain error to a status code. Exhausted-retry concurrency conflicts are
// flagged retryable so clients know the same request can be resubmitted.
func writeFailure(w http.ResponseWriter, err error, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(mapDomainError(err))
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:     message,
		Message:   err.Error(),
		Retryable: errors.Is(err, domain.ErrConcurrencyConflict),
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrTransferNotFound),
		errors.Is(err, domain.ErrAdjustmentNotFound),
		errors.Is(err, domain.ErrWasteNotFound),
		errors.Is(err, domain.ErrPurchaseOrderNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrIngredientNotFound),
		errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTransferNotPending),
		errors.Is(err, domain.ErrTransferNotShipped),
		errors.Is(err, domain.ErrAdjustmentCompleted),
		errors.Is(err, domain.ErrPurchaseOrderNotPending),
		errors.Is(err, domain.ErrPurchaseOrderReceived),
		errors.Is(err, domain.ErrOrderAlreadyPaid),
		errors.Is(err, domain.ErrOrderNotOpen),
		errors.Is(err, domain.ErrConcurrencyConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrSameBranch),
		errors.Is(err, domain.ErrMissingBranch),
		errors.Is(err, domain.ErrAdjustmentEmpty),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrQuantityTooLarge),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidItems),
		errors.Is(err, domain.ErrInvalidOrderType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
