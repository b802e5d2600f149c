package usecase

import (
	"context"
	"errors"
)

var (
	// ErrInconsistentLedger is returned when movement snapshots disagree with
	// account balances.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: movement snapshots do not match account balances")
)

// ConsistencyUseCase verifies the ledger-wide snapshot invariant: for every
// account the latest movement's balance snapshot equals the stored current
// balance, and accounts without movements still carry their initial balance.
type ConsistencyUseCase struct {
	ledgerRepo LedgerRepository
}

// NewConsistencyUseCase creates a new ConsistencyUseCase.
func NewConsistencyUseCase(ledgerRepo LedgerRepository) *ConsistencyUseCase {
	return &ConsistencyUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// CheckConsistency returns the IDs of accounts violating the snapshot
// invariant. An empty result means the ledger is consistent.
func (uc *ConsistencyUseCase) CheckConsistency(ctx context.Context) ([]string, error) {
	accountIDs, err := uc.ledgerRepo.FindInconsistentAccounts(ctx)
	if err != nil {
		return nil, err
	}

	if len(accountIDs) > 0 {
		return accountIDs, ErrInconsistentLedger
	}

	return nil, nil
}
