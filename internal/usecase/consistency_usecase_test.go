package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/iho/bankcore/internal/usecase"
	"github.com/iho/bankcore/internal/usecase/mocks"
)

func TestConsistencyUseCase_CheckConsistency(t *testing.T) {
	t.Run("consistent ledger", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ledgerRepo := mocks.NewMockLedgerRepository(ctrl)
		ledgerRepo.EXPECT().FindInconsistentAccounts(gomock.Any()).Return(nil, nil)

		uc := usecase.NewConsistencyUseCase(ledgerRepo)

		ids, err := uc.CheckConsistency(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(ids) != 0 {
			t.Errorf("expected no inconsistent accounts, got %v", ids)
		}
	})

	t.Run("inconsistent accounts reported", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ledgerRepo := mocks.NewMockLedgerRepository(ctrl)
		ledgerRepo.EXPECT().FindInconsistentAccounts(gomock.Any()).Return([]string{"acc-1", "acc-3"}, nil)

		uc := usecase.NewConsistencyUseCase(ledgerRepo)

		ids, err := uc.CheckConsistency(context.Background())
		if !errors.Is(err, usecase.ErrInconsistentLedger) {
			t.Fatalf("expected ErrInconsistentLedger, got %v", err)
		}
		if len(ids) != 2 {
			t.Errorf("expected 2 account IDs, got %v", ids)
		}
	})

	t.Run("repository failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repoErr := errors.New("query failed")

		ledgerRepo := mocks.NewMockLedgerRepository(ctrl)
		ledgerRepo.EXPECT().FindInconsistentAccounts(gomock.Any()).Return(nil, repoErr)

		uc := usecase.NewConsistencyUseCase(ledgerRepo)

		if _, err := uc.CheckConsistency(context.Background()); !errors.Is(err, repoErr) {
			t.Fatalf("expected repository error, got %v", err)
		}
	})
}
