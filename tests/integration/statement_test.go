package integration

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/adapter/repository/postgres"
	"github.com/iho/bankcore/internal/domain"
	"github.com/iho/bankcore/internal/usecase"
	"github.com/iho/bankcore/tests/testutil"
)

func TestStatementGeneration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	movementUC := newMovementUseCase(testDB)
	statementUC := usecase.NewStatementUseCase(
		postgres.NewClientRepository(testDB.Pool),
		postgres.NewAccountRepository(testDB.Pool),
		postgres.NewMovementRepository(testDB.Pool),
	)

	t.Run("statement groups movements by account with balances and totals", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		client := testDB.CreateTestClient(ctx, "Marianela Montalvo")
		savings := testDB.CreateTestAccount(ctx, client.ID, domain.AccountTypeSavings, decimal.NewFromInt(2000))
		checking := testDB.CreateTestAccount(ctx, client.ID, domain.AccountTypeChecking, decimal.NewFromInt(100))

		if _, err := movementUC.CreateMovement(ctx, usecase.CreateMovementInput{
			AccountID: savings.ID,
			Type:      domain.MovementTypeWithdrawal,
			Magnitude: decimal.NewFromInt(575),
		}); err != nil {
			t.Fatalf("withdrawal failed: %v", err)
		}

		if _, err := movementUC.CreateMovement(ctx, usecase.CreateMovementInput{
			AccountID: checking.ID,
			Type:      domain.MovementTypeDeposit,
			Magnitude: decimal.NewFromInt(600),
		}); err != nil {
			t.Fatalf("deposit failed: %v", err)
		}

		statement, err := statementUC.GenerateStatement(ctx, usecase.GenerateStatementInput{
			ClientID:  client.ID,
			StartDate: time.Now().Add(-time.Hour),
			EndDate:   time.Now().Add(time.Hour),
		})
		if err != nil {
			t.Fatalf("statement generation failed: %v", err)
		}

		if len(statement.Groups) != 2 {
			t.Fatalf("expected 2 account groups, got %d", len(statement.Groups))
		}

		savingsGroup := statement.Groups[savings.Number]
		if savingsGroup == nil {
			t.Fatal("missing savings group")
		}

		if !savingsGroup.OpeningBalance.Equal(decimal.NewFromInt(2000)) {
			t.Errorf("expected savings opening 2000, got %s", savingsGroup.OpeningBalance)
		}

		if !savingsGroup.ClosingBalance.Equal(decimal.NewFromInt(1425)) {
			t.Errorf("expected savings closing 1425, got %s", savingsGroup.ClosingBalance)
		}

		if !savingsGroup.TotalWithdrawals.Equal(decimal.NewFromInt(575)) {
			t.Errorf("expected savings withdrawals 575, got %s", savingsGroup.TotalWithdrawals)
		}

		checkingGroup := statement.Groups[checking.Number]
		if checkingGroup == nil {
			t.Fatal("missing checking group")
		}

		if !checkingGroup.TotalDeposits.Equal(decimal.NewFromInt(600)) {
			t.Errorf("expected checking deposits 600, got %s", checkingGroup.TotalDeposits)
		}

		if !statement.Totals.TotalDeposits.Equal(decimal.NewFromInt(600)) {
			t.Errorf("expected total deposits 600, got %s", statement.Totals.TotalDeposits)
		}

		if !statement.Totals.TotalWithdrawals.Equal(decimal.NewFromInt(575)) {
			t.Errorf("expected total withdrawals 575, got %s", statement.Totals.TotalWithdrawals)
		}

		if !statement.Totals.ClosingBalance.Equal(decimal.NewFromInt(2025)) {
			t.Errorf("expected total closing 2025, got %s", statement.Totals.ClosingBalance)
		}
	})

	t.Run("movements outside the range are excluded", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		client := testDB.CreateTestClient(ctx, "Juan Osorio")
		account := testDB.CreateTestAccount(ctx, client.ID, domain.AccountTypeSavings, decimal.NewFromInt(1000))

		past := time.Now().Add(-72 * time.Hour)
		if _, err := movementUC.CreateMovement(ctx, usecase.CreateMovementInput{
			OccurredAt: &past,
			AccountID:  account.ID,
			Type:       domain.MovementTypeDeposit,
			Magnitude:  decimal.NewFromInt(100),
		}); err != nil {
			t.Fatalf("past deposit failed: %v", err)
		}

		if _, err := movementUC.CreateMovement(ctx, usecase.CreateMovementInput{
			AccountID: account.ID,
			Type:      domain.MovementTypeDeposit,
			Magnitude: decimal.NewFromInt(50),
		}); err != nil {
			t.Fatalf("deposit failed: %v", err)
		}

		statement, err := statementUC.GenerateStatement(ctx, usecase.GenerateStatementInput{
			ClientID:  client.ID,
			StartDate: time.Now().Add(-time.Hour),
			EndDate:   time.Now().Add(time.Hour),
		})
		if err != nil {
			t.Fatalf("statement generation failed: %v", err)
		}

		group := statement.Groups[account.Number]
		if group == nil {
			t.Fatal("missing account group")
		}

		if len(group.Movements) != 1 {
			t.Fatalf("expected 1 movement in range, got %d", len(group.Movements))
		}

		// Opening balance reflects the out-of-range deposit.
		if !group.OpeningBalance.Equal(decimal.NewFromInt(1100)) {
			t.Errorf("expected opening 1100, got %s", group.OpeningBalance)
		}
	})

	t.Run("client with no movements yields empty statement", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		client := testDB.CreateTestClient(ctx, "Carmen Diaz")
		testDB.CreateTestAccount(ctx, client.ID, domain.AccountTypeSavings, decimal.NewFromInt(300))

		statement, err := statementUC.GenerateStatement(ctx, usecase.GenerateStatementInput{
			ClientID:  client.ID,
			StartDate: time.Now().Add(-time.Hour),
			EndDate:   time.Now().Add(time.Hour),
		})
		if err != nil {
			t.Fatalf("statement generation failed: %v", err)
		}

		if len(statement.Groups) != 0 {
			t.Errorf("expected no groups, got %d", len(statement.Groups))
		}
	})
}
