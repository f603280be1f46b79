package http

import (
	"encoding/json"
	"net/http"

	"github.com/staffdeck/staffdeck-backend-go/internal/domain/reconciliation"
	"github.com/staffdeck/staffdeck-backend-go/internal/handler/http/response"
)

type ReconciliationHandler interface {
	Board(w http.ResponseWriter, r *http.Request)
	ToggleOverride(w http.ResponseWriter, r *http.Request)
}

type reconciliationHandlerImpl struct {
	reconciliationService reconciliation.ReconciliationService
}

func NewReconciliationHandler(reconciliationService reconciliation.ReconciliationService) ReconciliationHandler {
	return &reconciliationHandlerImpl{
		reconciliationService: reconciliationService,
	}
}

// Board implements ReconciliationHandler.
func (h *reconciliationHandlerImpl) Board(w http.ResponseWriter, r *http.Request) {
	req := reconciliation.BoardRequest{
		WeekStart: r.URL.Query().Get("week_start"),
	}

	result, err := h.reconciliationService.WeeklyBoard(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ToggleOverride implements ReconciliationHandler.
func (h *reconciliationHandlerImpl) ToggleOverride(w http.ResponseWriter, r *http.Request) {
	var req reconciliation.ToggleOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.reconciliationService.ToggleOverride(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Override toggled", result)
}
