package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Account, error)
}

// MovementRepository defines data access for movements.
type MovementRepository interface {
	Create(ctx context.Context, tx Transaction, movement *domain.Movement) error
	GetByID(ctx context.Context, id string) (*domain.Movement, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Movement, error)
	// LatestIDByAccount returns the ID of the account's most recent movement,
	// or an empty string when the account has none. Must be called inside the
	// same transaction that holds the account row lock.
	LatestIDByAccount(ctx context.Context, tx Transaction, accountID string) (string, error)
	UpdateRevision(ctx context.Context, tx Transaction, id string, typ domain.MovementType, amount, balance decimal.Decimal, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Movement, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Movement, error)
	ListByClientAndRange(ctx context.Context, clientID string, start, end time.Time) ([]*domain.Movement, error)
}

// ClientRepository defines data access for clients.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	GetByIdentification(ctx context.Context, identification string) (*domain.Client, error)
	ExistsByIdentification(ctx context.Context, identification string) (bool, error)
	Update(ctx context.Context, client *domain.Client) error
	SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Client, error)
}

// LedgerRepository defines ledger-wide read operations.
type LedgerRepository interface {
	// FindInconsistentAccounts returns the IDs of accounts whose latest
	// movement snapshot disagrees with the stored balance, or whose balance
	// differs from the initial balance when no movements exist.
	FindInconsistentAccounts(ctx context.Context) ([]string, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient conflicts.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
