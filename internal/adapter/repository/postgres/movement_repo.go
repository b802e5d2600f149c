package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/domain"
	"github.com/iho/bankcore/internal/usecase"
)

const movementColumns = `id, account_id, occurred_at, type, amount, balance, description, created_at, updated_at`

// MovementRepository implements usecase.MovementRepository.
type MovementRepository struct {
	pool *pgxpool.Pool
}

// NewMovementRepository creates a new MovementRepository.
func NewMovementRepository(pool *pgxpool.Pool) *MovementRepository {
	return &MovementRepository{pool: pool}
}

// Create inserts a movement inside a transaction.
func (r *MovementRepository) Create(ctx context.Context, tx usecase.Transaction, movement *domain.Movement) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO movements (`+movementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		movement.ID,
		movement.AccountID,
		timeToPgTimestamptz(movement.OccurredAt),
		string(movement.Type),
		decimalToNumeric(movement.Amount),
		decimalToNumeric(movement.Balance),
		movement.Description,
		timeToPgTimestamptz(movement.CreatedAt),
		timeToPgTimestamptz(movement.UpdatedAt),
	)

	return err
}

// GetByID retrieves a movement by ID.
func (r *MovementRepository) GetByID(ctx context.Context, id string) (*domain.Movement, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+movementColumns+`
		FROM movements
		WHERE id = $1`, id)

	return scanMovement(row)
}

// GetByIDForUpdate retrieves a movement by ID with a FOR UPDATE lock.
func (r *MovementRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Movement, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `
		SELECT `+movementColumns+`
		FROM movements
		WHERE id = $1
		FOR UPDATE`, id)

	movement, err := scanMovement(row)
	if err != nil {
		return nil, mapLockError(err)
	}

	return movement, nil
}

// LatestIDByAccount returns the ID of the account's most recently created
// movement. Balance snapshots chain in creation order, not event date order
// (a backdated movement still applies against the current balance), and
// ULIDs sort lexicographically by creation time, so the max ID is the head
// of the chain.
func (r *MovementRepository) LatestIDByAccount(ctx context.Context, tx usecase.Transaction, accountID string) (string, error) {
	pgxTx := tx.(*Tx).PgxTx()

	var id string

	err := pgxTx.QueryRow(ctx, `
		SELECT id
		FROM movements
		WHERE account_id = $1
		ORDER BY id DESC
		LIMIT 1`, accountID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}

		return "", err
	}

	return id, nil
}

// UpdateRevision rewrites a movement's type, amount and balance snapshot in
// place inside a transaction.
func (r *MovementRepository) UpdateRevision(ctx context.Context, tx usecase.Transaction, id string, typ domain.MovementType, amount, balance decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE movements
		SET type = $2, amount = $3, balance = $4, updated_at = $5
		WHERE id = $1`,
		id,
		string(typ),
		decimalToNumeric(amount),
		decimalToNumeric(balance),
		timeToPgTimestamptz(updatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrMovementNotFound
	}

	return nil
}

// List lists movements with pagination.
func (r *MovementRepository) List(ctx context.Context, limit, offset int) ([]*domain.Movement, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+movementColumns+`
		FROM movements
		ORDER BY occurred_at DESC, id DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMovements(rows)
}

// ListByAccount lists movements for an account, most recent first.
func (r *MovementRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Movement, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+movementColumns+`
		FROM movements
		WHERE account_id = $1
		ORDER BY occurred_at DESC, id DESC
		LIMIT $2 OFFSET $3`, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMovements(rows)
}

// ListByClientAndRange lists all movements across a client's accounts whose
// occurred_at falls within [start, end]. The range is inclusive on both ends
// to match statement date semantics.
func (r *MovementRepository) ListByClientAndRange(ctx context.Context, clientID string, start, end time.Time) ([]*domain.Movement, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT m.id, m.account_id, m.occurred_at, m.type, m.amount, m.balance, m.description, m.created_at, m.updated_at
		FROM movements m
		JOIN accounts a ON a.id = m.account_id
		WHERE a.client_id = $1
		  AND m.occurred_at >= $2
		  AND m.occurred_at <= $3
		ORDER BY m.occurred_at, m.id`,
		clientID, timeToPgTimestamptz(start), timeToPgTimestamptz(end))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMovements(rows)
}

func scanMovement(row pgx.Row) (*domain.Movement, error) {
	var (
		movement     domain.Movement
		movementType string
		occurredAt   pgtype.Timestamptz
		amount       pgtype.Numeric
		balance      pgtype.Numeric
		createdAt    pgtype.Timestamptz
		updatedAt    pgtype.Timestamptz
	)

	err := row.Scan(
		&movement.ID,
		&movement.AccountID,
		&occurredAt,
		&movementType,
		&amount,
		&balance,
		&movement.Description,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMovementNotFound
		}

		return nil, err
	}

	movement.Type = domain.MovementType(movementType)
	movement.OccurredAt = occurredAt.Time
	movement.Amount = numericToDecimal(amount)
	movement.Balance = numericToDecimal(balance)
	movement.CreatedAt = createdAt.Time
	movement.UpdatedAt = updatedAt.Time

	return &movement, nil
}

func scanMovements(rows pgx.Rows) ([]*domain.Movement, error) {
	var movements []*domain.Movement

	for rows.Next() {
		movement, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		movements = append(movements, movement)
	}

	return movements, rows.Err()
}
