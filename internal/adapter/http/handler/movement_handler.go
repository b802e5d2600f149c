package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/adapter/http/dto"
	"github.com/iho/bankcore/internal/domain"
	"github.com/iho/bankcore/internal/infrastructure/metrics"
	"github.com/iho/bankcore/internal/usecase"
)

// MovementService defines the behavior needed by MovementHandler.
type MovementService interface {
	CreateMovement(ctx context.Context, input usecase.CreateMovementInput) (*domain.Movement, error)
	ReviseMovement(ctx context.Context, input usecase.ReviseMovementInput) (*domain.Movement, error)
	GetMovement(ctx context.Context, id string) (*domain.Movement, error)
	GetAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
	ListMovements(ctx context.Context, input usecase.ListMovementsInput) ([]*domain.Movement, error)
}

// MovementHandler handles movement-related HTTP requests.
type MovementHandler struct {
	movementUC MovementService
}

// NewMovementHandler creates a new MovementHandler.
func NewMovementHandler(movementUC MovementService) *MovementHandler {
	return &MovementHandler{movementUC: movementUC}
}

// Create records a new movement against an account.
func (h *MovementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	movement, err := h.movementUC.CreateMovement(r.Context(), req.ToUseCaseInput())
	if err != nil {
		metrics.MovementsRejected.WithLabelValues(rejectionReason(err)).Inc()
		writeError(w, mapDomainError(err), "failed to create movement", err.Error())

		return
	}

	metrics.MovementsCreated.WithLabelValues(string(movement.Type)).Inc()
	metrics.MovementAmount.Observe(movement.Amount.Abs().InexactFloat64())
	writeJSON(w, http.StatusCreated, dto.MovementFromDomain(movement))
}

// Revise rewrites a recorded movement in place.
func (h *MovementHandler) Revise(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing movement ID", "")
		return
	}

	var req dto.ReviseMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	movement, err := h.movementUC.ReviseMovement(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		metrics.MovementsRejected.WithLabelValues(rejectionReason(err)).Inc()
		writeError(w, mapDomainError(err), "failed to revise movement", err.Error())

		return
	}

	metrics.MovementsRevised.Inc()
	metrics.MovementAmount.Observe(movement.Amount.Abs().InexactFloat64())
	writeJSON(w, http.StatusOK, dto.MovementFromDomain(movement))
}

// Get retrieves a movement by ID.
func (h *MovementHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing movement ID", "")
		return
	}

	movement, err := h.movementUC.GetMovement(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get movement", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MovementFromDomain(movement))
}

// List lists movements.
func (h *MovementHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "")
}

// ListByAccount lists movements for one account.
func (h *MovementHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	h.list(w, r, accountID)
}

func (h *MovementHandler) list(w http.ResponseWriter, r *http.Request, accountID string) {
	movements, err := h.movementUC.ListMovements(r.Context(), usecase.ListMovementsInput{
		AccountID: accountID,
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list movements", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListMovementsResponse{
		Movements: dto.MovementsFromDomain(movements),
		Total:     int64(len(movements)),
	})
}

// GetBalance returns an account's current balance.
func (h *MovementHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	balance, err := h.movementUC.GetAccountBalance(r.Context(), accountID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		AccountID: accountID,
		Balance:   balance,
	})
}
