package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// FindInconsistentAccounts returns the IDs of accounts whose stored balance
// disagrees with their latest movement's balance snapshot. Latest means last
// created (max ULID), since snapshots chain in creation order even when a
// movement is backdated. Accounts without movements must still carry their
// initial balance.
func (r *LedgerRepository) FindInconsistentAccounts(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id
		FROM accounts a
		LEFT JOIN LATERAL (
			SELECT m.balance
			FROM movements m
			WHERE m.account_id = a.id
			ORDER BY m.id DESC
			LIMIT 1
		) latest ON true
		WHERE a.balance IS DISTINCT FROM COALESCE(latest.balance, a.initial_balance)
		ORDER BY a.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
