package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/bankcore/internal/domain"
)

const clientColumns = `id, name, gender, age, identification, address, phone, active, created_at, updated_at`

// ClientRepository implements usecase.ClientRepository.
type ClientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository creates a new ClientRepository.
func NewClientRepository(pool *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{pool: pool}
}

// Create creates a new client.
func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO clients (`+clientColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		client.ID,
		client.Name,
		string(client.Gender),
		client.Age,
		client.Identification,
		client.Address,
		client.Phone,
		client.Active,
		timeToPgTimestamptz(client.CreatedAt),
		timeToPgTimestamptz(client.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateIdentification
	}

	return err
}

// GetByID retrieves a client by ID.
func (r *ClientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+clientColumns+`
		FROM clients
		WHERE id = $1`, id)

	return scanClient(row)
}

// GetByIdentification retrieves a client by identification number.
func (r *ClientRepository) GetByIdentification(ctx context.Context, identification string) (*domain.Client, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+clientColumns+`
		FROM clients
		WHERE identification = $1`, identification)

	return scanClient(row)
}

// ExistsByIdentification reports whether a client with the given
// identification exists.
func (r *ClientRepository) ExistsByIdentification(ctx context.Context, identification string) (bool, error) {
	var exists bool

	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM clients WHERE identification = $1)`, identification).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// Update rewrites a client's mutable fields. The identification column is
// deliberately absent from the SET list.
func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE clients
		SET name = $2, gender = $3, age = $4, address = $5, phone = $6, updated_at = $7
		WHERE id = $1`,
		client.ID,
		client.Name,
		string(client.Gender),
		client.Age,
		client.Address,
		client.Phone,
		timeToPgTimestamptz(client.UpdatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrClientNotFound
	}

	return nil
}

// SetActive flips the active flag of a client.
func (r *ClientRepository) SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE clients
		SET active = $2, updated_at = $3
		WHERE id = $1`,
		id, active, timeToPgTimestamptz(updatedAt))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrClientNotFound
	}

	return nil
}

// List lists clients with pagination.
func (r *ClientRepository) List(ctx context.Context, limit, offset int) ([]*domain.Client, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+clientColumns+`
		FROM clients
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*domain.Client

	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}

	return clients, rows.Err()
}

func scanClient(row pgx.Row) (*domain.Client, error) {
	var (
		client    domain.Client
		gender    string
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&client.ID,
		&client.Name,
		&gender,
		&client.Age,
		&client.Identification,
		&client.Address,
		&client.Phone,
		&client.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}

		return nil, err
	}

	client.Gender = domain.Gender(gender)
	client.CreatedAt = createdAt.Time
	client.UpdatedAt = updatedAt.Time

	return &client, nil
}
