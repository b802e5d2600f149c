package usecase

import (
	"context"
	"time"

	"github.com/iho/bankcore/internal/domain"
)

// StatementUseCase generates per-account statements for a client over a date
// range. Aggregation is read-only: it runs on a committed snapshot of the
// ledger and may lag mutations committing concurrently on the same accounts.
type StatementUseCase struct {
	clientRepo   ClientRepository
	accountRepo  AccountRepository
	movementRepo MovementRepository
}

// NewStatementUseCase creates a new StatementUseCase.
func NewStatementUseCase(clientRepo ClientRepository, accountRepo AccountRepository, movementRepo MovementRepository) *StatementUseCase {
	return &StatementUseCase{
		clientRepo:   clientRepo,
		accountRepo:  accountRepo,
		movementRepo: movementRepo,
	}
}

// GenerateStatementInput represents input for generating a statement.
type GenerateStatementInput struct {
	ClientID  string
	StartDate time.Time
	EndDate   time.Time
}

// Statement is the aggregated result for one client and date range.
type Statement struct {
	Client *domain.Client
	Groups map[string]*domain.StatementGroup
	Totals domain.StatementTotals
}

// GenerateStatement aggregates the client's movements within the range into
// per-account groups. A client with no movements in the range yields an empty
// group map, not an error.
func (uc *StatementUseCase) GenerateStatement(ctx context.Context, input GenerateStatementInput) (*Statement, error) {
	client, err := uc.clientRepo.GetByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}

	accounts, err := uc.accountRepo.ListByClient(ctx, client.ID)
	if err != nil {
		return nil, err
	}

	accountsByID := make(map[string]*domain.Account, len(accounts))
	for _, a := range accounts {
		accountsByID[a.ID] = a
	}

	movements, err := uc.movementRepo.ListByClientAndRange(ctx, client.ID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	groups := domain.BuildStatement(movements, accountsByID)

	return &Statement{
		Client: client,
		Groups: groups,
		Totals: domain.TotalsOf(groups),
	}, nil
}
