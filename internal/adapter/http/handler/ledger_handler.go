package handler

import (
	"errors"
	"net/http"

	"github.com/iho/bankcore/internal/adapter/http/dto"
	"github.com/iho/bankcore/internal/usecase"
)

// LedgerHandler handles ledger-wide operations.
type LedgerHandler struct {
	consistencyUC *usecase.ConsistencyUseCase
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(consistencyUC *usecase.ConsistencyUseCase) *LedgerHandler {
	return &LedgerHandler{consistencyUC: consistencyUC}
}

// CheckConsistency verifies that every account's balance matches its latest
// movement snapshot.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	ids, err := h.consistencyUC.CheckConsistency(r.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrInconsistentLedger) {
			writeJSON(w, http.StatusConflict, dto.ConsistencyResponse{
				Consistent: false,
				AccountIDs: ids,
			})
			return
		}

		writeError(w, http.StatusInternalServerError, "failed to check consistency", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyResponse{Consistent: true})
}
