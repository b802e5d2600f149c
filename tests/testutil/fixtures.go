package testutil

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	postgresRepo "github.com/iho/bankcore/internal/adapter/repository/postgres"
	"github.com/iho/bankcore/internal/domain"
	"github.com/iho/bankcore/internal/infrastructure/postgres"
)

var fixtureSeq atomic.Int64

// TestDB provides isolated test database connections.
type TestDB struct {
	Pool      *pgxpool.Pool
	Accounts  *postgresRepo.AccountRepository
	Movements *postgresRepo.MovementRepository
	Clients   *postgresRepo.ClientRepository
	t         *testing.T
}

// NewTestDB connects to the database named by DATABASE_URL and applies
// migrations. Tests calling it are skipped when DATABASE_URL is unset.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	migrationsPath := "../../migrations"
	if _, err := os.Stat(migrationsPath); os.IsNotExist(err) {
		migrationsPath = "migrations"
	}

	if err := postgres.RunMigrations(dbURL, migrationsPath); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping test database: %v", err)
	}

	return &TestDB{
		Pool:      pool,
		Accounts:  postgresRepo.NewAccountRepository(pool),
		Movements: postgresRepo.NewMovementRepository(pool),
		Clients:   postgresRepo.NewClientRepository(pool),
		t:         t,
	}
}

// Cleanup closes the database connection.
func (db *TestDB) Cleanup() {
	db.Pool.Close()
}

// TruncateAll removes all data from tables.
func (db *TestDB) TruncateAll(ctx context.Context) {
	db.t.Helper()

	_, err := db.Pool.Exec(ctx, `
		TRUNCATE TABLE movements CASCADE;
		TRUNCATE TABLE accounts CASCADE;
		TRUNCATE TABLE clients CASCADE;
	`)
	if err != nil {
		db.t.Fatalf("failed to truncate tables: %v", err)
	}
}

// CreateTestClient creates a client with a unique identification.
func (db *TestDB) CreateTestClient(ctx context.Context, name string) *domain.Client {
	db.t.Helper()

	now := time.Now().UTC()
	client := &domain.Client{
		ID:             ulid.Make().String(),
		Name:           name,
		Gender:         domain.GenderOther,
		Age:            30,
		Identification: UniqueIdentification(),
		Address:        "Otavalo sn y principal",
		Phone:          "098254785",
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := db.Clients.Create(ctx, client); err != nil {
		db.t.Fatalf("failed to create test client: %v", err)
	}

	return client
}

// CreateTestAccount creates an account for client with the given opening balance.
func (db *TestDB) CreateTestAccount(ctx context.Context, clientID string, accountType domain.AccountType, balance decimal.Decimal) *domain.Account {
	db.t.Helper()

	now := time.Now().UTC()
	account := &domain.Account{
		ID:             ulid.Make().String(),
		Number:         UniqueAccountNumber(),
		Type:           accountType,
		InitialBalance: balance,
		Balance:        balance,
		Active:         true,
		ClientID:       clientID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := db.Accounts.Create(ctx, account); err != nil {
		db.t.Fatalf("failed to create test account: %v", err)
	}

	return account
}

// UniqueAccountNumber returns a process-unique six digit account number.
func UniqueAccountNumber() string {
	n := fixtureSeq.Add(1)
	return fmt.Sprintf("%06d", 100000+(n+time.Now().UnixNano()/1000)%900000)
}

// UniqueIdentification returns a process-unique ten digit identification.
func UniqueIdentification() string {
	n := fixtureSeq.Add(1)
	return fmt.Sprintf("%010d", 1000000000+(n+time.Now().UnixNano()/1000)%9000000000)
}

// GenerateID generates a new ULID.
func GenerateID() string {
	return ulid.Make().String()
}
