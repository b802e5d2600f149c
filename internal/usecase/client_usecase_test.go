package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/iho/bankcore/internal/domain"
	"github.com/iho/bankcore/internal/usecase"
	"github.com/iho/bankcore/internal/usecase/mocks"
)

func validClientInput() usecase.CreateClientInput {
	return usecase.CreateClientInput{
		Name:           "Jose Lema",
		Gender:         domain.GenderMale,
		Age:            32,
		Identification: "0912345678",
		Address:        "Otavalo sn y principal",
		Phone:          "098254785",
	}
}

func TestClientUseCase_CreateClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clientRepo := mocks.NewMockClientRepository(ctrl)
	clientRepo.EXPECT().ExistsByIdentification(gomock.Any(), "0912345678").Return(false, nil)
	clientRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	cache := mocks.NewMockCache()
	uc := usecase.NewClientUseCase(clientRepo, mocks.NewMockIDGenerator(), cache)

	client, err := uc.CreateClient(context.Background(), validClientInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !client.Active {
		t.Error("new client should be active")
	}
	if client.ID == "" {
		t.Error("client ID should be generated")
	}

	// The identification is marked taken so the next availability check
	// short-circuits on the cache.
	if v, err := cache.Get(context.Background(), "identification:0912345678"); err != nil || v != "taken" {
		t.Errorf("expected cached taken marker, got %q, %v", v, err)
	}
}

func TestClientUseCase_CreateClient_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*usecase.CreateClientInput)
		wantErr error
	}{
		{
			name:    "empty name",
			mutate:  func(in *usecase.CreateClientInput) { in.Name = "  " },
			wantErr: domain.ErrInvalidClientName,
		},
		{
			name:    "unknown gender",
			mutate:  func(in *usecase.CreateClientInput) { in.Gender = domain.Gender("X") },
			wantErr: domain.ErrInvalidGender,
		},
		{
			name:    "underage",
			mutate:  func(in *usecase.CreateClientInput) { in.Age = 17 },
			wantErr: domain.ErrInvalidAge,
		},
		{
			name:    "identification too short",
			mutate:  func(in *usecase.CreateClientInput) { in.Identification = "12345" },
			wantErr: domain.ErrInvalidIdentification,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			clientRepo := mocks.NewMockClientRepository(ctrl)
			uc := usecase.NewClientUseCase(clientRepo, mocks.NewMockIDGenerator(), mocks.NewMockCache())

			input := validClientInput()
			tt.mutate(&input)

			if _, err := uc.CreateClient(context.Background(), input); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestClientUseCase_CreateClient_DuplicateIdentification(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clientRepo := mocks.NewMockClientRepository(ctrl)
	clientRepo.EXPECT().ExistsByIdentification(gomock.Any(), "0912345678").Return(true, nil)

	uc := usecase.NewClientUseCase(clientRepo, mocks.NewMockIDGenerator(), mocks.NewMockCache())

	if _, err := uc.CreateClient(context.Background(), validClientInput()); !errors.Is(err, domain.ErrDuplicateIdentification) {
		t.Fatalf("expected ErrDuplicateIdentification, got %v", err)
	}
}

func TestClientUseCase_CheckIdentificationAvailable_CachedTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No store expectation: the cached marker must answer by itself.
	clientRepo := mocks.NewMockClientRepository(ctrl)

	cache := mocks.NewMockCache()
	_ = cache.Set(context.Background(), "identification:0912345678", "taken", usecase.UniquenessCacheTTL)

	uc := usecase.NewClientUseCase(clientRepo, mocks.NewMockIDGenerator(), cache)

	available, err := uc.CheckIdentificationAvailable(context.Background(), "0912345678")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if available {
		t.Error("cached taken identification reported available")
	}
}

func TestClientUseCase_UpdateClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	existing := &domain.Client{
		ID:             "cli-1",
		Name:           "Marianela Montalvo",
		Gender:         domain.GenderFemale,
		Age:            28,
		Identification: "0998765432",
		Address:        "Amazonas y NNUU",
		Phone:          "097548965",
		Active:         true,
	}

	clientRepo := mocks.NewMockClientRepository(ctrl)
	clientRepo.EXPECT().GetByID(gomock.Any(), "cli-1").Return(existing, nil)
	clientRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	uc := usecase.NewClientUseCase(clientRepo, mocks.NewMockIDGenerator(), mocks.NewMockCache())

	newPhone := "099999999"
	newAge := 29

	client, err := uc.UpdateClient(context.Background(), "cli-1", usecase.UpdateClientInput{
		Phone: &newPhone,
		Age:   &newAge,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.Phone != newPhone {
		t.Errorf("phone not updated: %s", client.Phone)
	}
	if client.Age != newAge {
		t.Errorf("age not updated: %d", client.Age)
	}
	if client.Name != "Marianela Montalvo" {
		t.Errorf("untouched field changed: %s", client.Name)
	}
	if client.Identification != "0998765432" {
		t.Errorf("identification must be immutable: %s", client.Identification)
	}
}

func TestClientUseCase_UpdateClient_RejectsInvalidAge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	existing := &domain.Client{
		ID:             "cli-1",
		Name:           "Juan Osorio",
		Gender:         domain.GenderMale,
		Age:            40,
		Identification: "0911111111",
		Address:        "13 junio y Equinoccial",
		Phone:          "098874587",
		Active:         true,
	}

	clientRepo := mocks.NewMockClientRepository(ctrl)
	clientRepo.EXPECT().GetByID(gomock.Any(), "cli-1").Return(existing, nil)

	uc := usecase.NewClientUseCase(clientRepo, mocks.NewMockIDGenerator(), mocks.NewMockCache())

	badAge := 150
	if _, err := uc.UpdateClient(context.Background(), "cli-1", usecase.UpdateClientInput{Age: &badAge}); !errors.Is(err, domain.ErrInvalidAge) {
		t.Fatalf("expected ErrInvalidAge, got %v", err)
	}
}

func TestClientUseCase_SetClientStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	existing := &domain.Client{ID: "cli-1", Name: "Jose Lema", Active: true}

	clientRepo := mocks.NewMockClientRepository(ctrl)
	clientRepo.EXPECT().GetByID(gomock.Any(), "cli-1").Return(existing, nil)
	clientRepo.EXPECT().SetActive(gomock.Any(), "cli-1", false, gomock.Any()).Return(nil)

	uc := usecase.NewClientUseCase(clientRepo, mocks.NewMockIDGenerator(), mocks.NewMockCache())

	client, err := uc.SetClientStatus(context.Background(), "cli-1", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.Active {
		t.Error("client should be inactive after status flip")
	}
}

func TestClientUseCase_SetClientStatus_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clientRepo := mocks.NewMockClientRepository(ctrl)
	clientRepo.EXPECT().GetByID(gomock.Any(), "cli-missing").Return(nil, domain.ErrClientNotFound)

	uc := usecase.NewClientUseCase(clientRepo, mocks.NewMockIDGenerator(), mocks.NewMockCache())

	if _, err := uc.SetClientStatus(context.Background(), "cli-missing", false); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}
