package integration

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/domain"
	"github.com/iho/bankcore/internal/usecase"
	"github.com/iho/bankcore/tests/testutil"
)

func TestConcurrentMovements(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	movementUC := newMovementUseCase(testDB)

	t.Run("100 concurrent withdrawals drain the account exactly", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		client := testDB.CreateTestClient(ctx, "Jose Lema")
		account := testDB.CreateTestAccount(ctx, client.ID, domain.AccountTypeSavings, decimal.NewFromInt(1000))

		numMovements := 100
		amount := decimal.NewFromInt(10)

		var (
			wg           sync.WaitGroup
			successCount atomic.Int32
			errorCount   atomic.Int32
		)

		wg.Add(numMovements)

		for range numMovements {
			go func() {
				defer wg.Done()

				_, err := movementUC.CreateMovement(ctx, usecase.CreateMovementInput{
					AccountID: account.ID,
					Type:      domain.MovementTypeWithdrawal,
					Magnitude: amount,
				})
				if err != nil {
					errorCount.Add(1)
				} else {
					successCount.Add(1)
				}
			}()
		}

		wg.Wait()

		// All 100 should succeed (1000 / 10 = 100)
		if successCount.Load() != int32(numMovements) {
			t.Errorf("expected %d successful withdrawals, got %d (errors: %d)", numMovements, successCount.Load(), errorCount.Load())
		}

		stored, _ := testDB.Accounts.GetByID(ctx, account.ID)
		if !stored.Balance.Equal(decimal.Zero) {
			t.Errorf("expected balance 0, got %s", stored.Balance)
		}
	})

	t.Run("concurrent withdrawals never overdraw", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		client := testDB.CreateTestClient(ctx, "Marianela Montalvo")
		account := testDB.CreateTestAccount(ctx, client.ID, domain.AccountTypeChecking, decimal.NewFromInt(100))

		numMovements := 20
		amount := decimal.NewFromInt(10) // 20 * 10 = 200 > 100

		var (
			wg           sync.WaitGroup
			successCount atomic.Int32
		)

		wg.Add(numMovements)

		for range numMovements {
			go func() {
				defer wg.Done()

				_, err := movementUC.CreateMovement(ctx, usecase.CreateMovementInput{
					AccountID: account.ID,
					Type:      domain.MovementTypeWithdrawal,
					Magnitude: amount,
				})
				if err == nil {
					successCount.Add(1)
				}
			}()
		}

		wg.Wait()

		// Only 10 should succeed (100 / 10 = 10)
		if successCount.Load() != 10 {
			t.Errorf("expected 10 successful withdrawals, got %d", successCount.Load())
		}

		stored, _ := testDB.Accounts.GetByID(ctx, account.ID)
		if !stored.Balance.Equal(decimal.Zero) {
			t.Errorf("expected balance 0, got %s", stored.Balance)
		}
	})

	t.Run("snapshots stay consistent under mixed concurrent movements", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		client := testDB.CreateTestClient(ctx, "Juan Osorio")
		account := testDB.CreateTestAccount(ctx, client.ID, domain.AccountTypeSavings, decimal.NewFromInt(500))

		numPairs := 25

		var wg sync.WaitGroup
		wg.Add(numPairs * 2)

		for range numPairs {
			go func() {
				defer wg.Done()

				_, _ = movementUC.CreateMovement(ctx, usecase.CreateMovementInput{
					AccountID: account.ID,
					Type:      domain.MovementTypeDeposit,
					Magnitude: decimal.NewFromInt(20),
				})
			}()
			go func() {
				defer wg.Done()

				_, _ = movementUC.CreateMovement(ctx, usecase.CreateMovementInput{
					AccountID: account.ID,
					Type:      domain.MovementTypeWithdrawal,
					Magnitude: decimal.NewFromInt(20),
				})
			}()
		}

		wg.Wait()

		// Every snapshot must equal the previous snapshot plus the signed
		// amount, in the account's movement order.
		movements, err := testDB.Movements.ListByClientAndRange(ctx, client.ID, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
		if err != nil {
			t.Fatalf("failed to list movements: %v", err)
		}

		running := account.InitialBalance
		for i, m := range movements {
			running = running.Add(m.Amount)
			if !m.Balance.Equal(running) {
				t.Fatalf("movement %d snapshot %s does not match running balance %s", i, m.Balance, running)
			}
		}

		stored, _ := testDB.Accounts.GetByID(ctx, account.ID)
		if !stored.Balance.Equal(running) {
			t.Errorf("account balance %s does not match final snapshot %s", stored.Balance, running)
		}
	})
}
