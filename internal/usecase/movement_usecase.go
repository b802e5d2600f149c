package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/domain"
)

// MovementUseCase handles movement business logic: applying deposits and
// withdrawals to an account and revising previously recorded movements.
//
// Per-account serialization: every mutation locks the account row
// (SELECT ... FOR UPDATE) and holds the lock across the read-validate-write
// sequence, so two concurrent movements on the same account can never both
// compute from the same pre-update balance. The lock wait is bounded by the
// repository's lock timeout and surfaces as domain.ErrAccountBusy.
type MovementUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	movementRepo MovementRepository
	idGen        IDGenerator
	retrier      Retrier
}

// NewMovementUseCase creates a new MovementUseCase.
func NewMovementUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	movementRepo MovementRepository,
	idGen IDGenerator,
	retrier Retrier,
) *MovementUseCase {
	return &MovementUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		movementRepo: movementRepo,
		idGen:        idGen,
		retrier:      retrier,
	}
}

// CreateMovementInput represents input for creating a movement.
type CreateMovementInput struct {
	OccurredAt  *time.Time
	AccountID   string
	Type        domain.MovementType
	Magnitude   decimal.Decimal
	Description string
}

// CreateMovement applies a deposit or withdrawal to an account. The movement
// insert and the account balance update commit as one transaction; on any
// error the account and ledger are left untouched.
func (uc *MovementUseCase) CreateMovement(ctx context.Context, input CreateMovementInput) (*domain.Movement, error) {
	// Validate inputs before starting the transaction
	if _, err := domain.ParseMovementType(string(input.Type)); err != nil {
		return nil, err
	}

	if err := domain.ValidateMovementAmount(input.Magnitude); err != nil {
		return nil, err
	}

	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, err
	}

	var movement *domain.Movement

	err := uc.retrier.Retry(ctx, func() error {
		m, err := uc.createMovementTx(ctx, input)
		if err != nil {
			return err
		}

		movement = m

		return nil
	})
	if err != nil {
		return nil, err
	}

	return movement, nil
}

func (uc *MovementUseCase) createMovementTx(ctx context.Context, input CreateMovementInput) (*domain.Movement, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock the account row for the rest of the transaction
	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.AccountID)
	if err != nil {
		return nil, err
	}

	if !account.Active {
		return nil, domain.ErrAccountInactive
	}

	if err := domain.ValidateMovement(account.Balance, input.Type, input.Magnitude); err != nil {
		return nil, err
	}

	signedAmount := input.Type.SignedAmount(input.Magnitude)
	newBalance := account.ApplyMovement(signedAmount)

	now := time.Now().UTC()

	occurredAt := now
	if input.OccurredAt != nil {
		occurredAt = input.OccurredAt.UTC()
	}

	movement := &domain.Movement{
		ID:          uc.idGen.Generate(),
		AccountID:   account.ID,
		OccurredAt:  occurredAt,
		Type:        input.Type,
		Amount:      signedAmount,
		Balance:     newBalance,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.movementRepo.Create(ctx, tx, movement); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return movement, nil
}

// ReviseMovementInput represents input for revising a movement.
type ReviseMovementInput struct {
	MovementID string
	Type       domain.MovementType
	Magnitude  decimal.Decimal
}

// ReviseMovement changes a recorded movement's type and/or magnitude in
// place, recomputing its balance snapshot from the balance that existed
// before the movement. The event date never changes.
//
// Only the latest movement of an account may be revised: snapshots of later
// movements were computed against the old chain and would go stale otherwise.
// Revising an older movement fails with domain.ErrNotLatestMovement.
func (uc *MovementUseCase) ReviseMovement(ctx context.Context, input ReviseMovementInput) (*domain.Movement, error) {
	if _, err := domain.ParseMovementType(string(input.Type)); err != nil {
		return nil, err
	}

	if err := domain.ValidateMovementAmount(input.Magnitude); err != nil {
		return nil, err
	}

	var movement *domain.Movement

	err := uc.retrier.Retry(ctx, func() error {
		m, err := uc.reviseMovementTx(ctx, input)
		if err != nil {
			return err
		}

		movement = m

		return nil
	})
	if err != nil {
		return nil, err
	}

	return movement, nil
}

func (uc *MovementUseCase) reviseMovementTx(ctx context.Context, input ReviseMovementInput) (*domain.Movement, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	movement, err := uc.movementRepo.GetByIDForUpdate(ctx, tx, input.MovementID)
	if err != nil {
		return nil, err
	}

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, movement.AccountID)
	if err != nil {
		return nil, err
	}

	latestID, err := uc.movementRepo.LatestIDByAccount(ctx, tx, movement.AccountID)
	if err != nil {
		return nil, err
	}

	if latestID != movement.ID {
		return nil, domain.ErrNotLatestMovement
	}

	// Balance immediately before the movement being revised
	previousBalance := movement.PreviousBalance()

	if err := domain.ValidateMovement(previousBalance, input.Type, input.Magnitude); err != nil {
		return nil, err
	}

	newSignedAmount := input.Type.SignedAmount(input.Magnitude)
	newBalance := previousBalance.Add(newSignedAmount)

	now := time.Now().UTC()

	if err := uc.movementRepo.UpdateRevision(ctx, tx, movement.ID, input.Type, newSignedAmount, newBalance, now); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	movement.Type = input.Type
	movement.Amount = newSignedAmount
	movement.Balance = newBalance
	movement.UpdatedAt = now

	return movement, nil
}

// GetMovement retrieves a movement by ID.
func (uc *MovementUseCase) GetMovement(ctx context.Context, id string) (*domain.Movement, error) {
	return uc.movementRepo.GetByID(ctx, id)
}

// GetAccountBalance returns an account's current balance.
func (uc *MovementUseCase) GetAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	return account.Balance, nil
}

// ListMovementsInput represents input for listing movements.
type ListMovementsInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListMovements lists movements, optionally filtered to one account.
func (uc *MovementUseCase) ListMovements(ctx context.Context, input ListMovementsInput) ([]*domain.Movement, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	if input.Limit > 100 {
		input.Limit = 100
	}

	if input.AccountID != "" {
		return uc.movementRepo.ListByAccount(ctx, input.AccountID, input.Limit, input.Offset)
	}

	return uc.movementRepo.List(ctx, input.Limit, input.Offset)
}
