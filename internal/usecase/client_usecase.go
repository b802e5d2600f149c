package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/iho/bankcore/internal/domain"
)

// ClientUseCase handles client business logic.
type ClientUseCase struct {
	clientRepo ClientRepository
	idGen      IDGenerator
	cache      Cache
}

// NewClientUseCase creates a new ClientUseCase.
func NewClientUseCase(clientRepo ClientRepository, idGen IDGenerator, cache Cache) *ClientUseCase {
	return &ClientUseCase{
		clientRepo: clientRepo,
		idGen:      idGen,
		cache:      cache,
	}
}

// CreateClientInput represents input for creating a client.
type CreateClientInput struct {
	Name           string
	Gender         domain.Gender
	Age            int
	Identification string
	Address        string
	Phone          string
}

// CreateClient creates a new client.
func (uc *ClientUseCase) CreateClient(ctx context.Context, input CreateClientInput) (*domain.Client, error) {
	now := time.Now().UTC()

	client := &domain.Client{
		ID:             uc.idGen.Generate(),
		Name:           strings.TrimSpace(input.Name),
		Gender:         input.Gender,
		Age:            input.Age,
		Identification: strings.TrimSpace(input.Identification),
		Address:        strings.TrimSpace(input.Address),
		Phone:          strings.TrimSpace(input.Phone),
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := domain.ValidateClient(client); err != nil {
		return nil, err
	}

	available, err := uc.CheckIdentificationAvailable(ctx, client.Identification)
	if err != nil {
		return nil, err
	}

	if !available {
		return nil, domain.ErrDuplicateIdentification
	}

	if err := uc.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		_ = uc.cache.Set(ctx, identificationCacheKey(client.Identification), takenMarker, UniquenessCacheTTL)
	}

	return client, nil
}

// CheckIdentificationAvailable reports whether an identification is free to
// use. Same single-path contract as account number availability: the cache is
// only a fast path for known-taken values, the store stays authoritative.
func (uc *ClientUseCase) CheckIdentificationAvailable(ctx context.Context, identification string) (bool, error) {
	identification = strings.TrimSpace(identification)

	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, identificationCacheKey(identification)); err == nil && cached == takenMarker {
			return false, nil
		}
	}

	exists, err := uc.clientRepo.ExistsByIdentification(ctx, identification)
	if err != nil {
		return false, err
	}

	if exists && uc.cache != nil {
		_ = uc.cache.Set(ctx, identificationCacheKey(identification), takenMarker, UniquenessCacheTTL)
	}

	return !exists, nil
}

// GetClient retrieves a client by ID.
func (uc *ClientUseCase) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	return uc.clientRepo.GetByID(ctx, id)
}

// GetClientByIdentification retrieves a client by identification number.
func (uc *ClientUseCase) GetClientByIdentification(ctx context.Context, identification string) (*domain.Client, error) {
	return uc.clientRepo.GetByIdentification(ctx, strings.TrimSpace(identification))
}

// UpdateClientInput represents input for updating a client. Nil fields are
// left unchanged.
type UpdateClientInput struct {
	Name    *string
	Gender  *domain.Gender
	Age     *int
	Address *string
	Phone   *string
}

// UpdateClient updates a client's mutable fields. The identification is fixed
// at creation.
func (uc *ClientUseCase) UpdateClient(ctx context.Context, id string, input UpdateClientInput) (*domain.Client, error) {
	client, err := uc.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		client.Name = strings.TrimSpace(*input.Name)
	}

	if input.Gender != nil {
		client.Gender = *input.Gender
	}

	if input.Age != nil {
		client.Age = *input.Age
	}

	if input.Address != nil {
		client.Address = strings.TrimSpace(*input.Address)
	}

	if input.Phone != nil {
		client.Phone = strings.TrimSpace(*input.Phone)
	}

	if err := domain.ValidateClient(client); err != nil {
		return nil, err
	}

	client.UpdatedAt = time.Now().UTC()

	if err := uc.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// SetClientStatus flips the client's active flag.
func (uc *ClientUseCase) SetClientStatus(ctx context.Context, id string, active bool) (*domain.Client, error) {
	client, err := uc.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if err := uc.clientRepo.SetActive(ctx, id, active, now); err != nil {
		return nil, err
	}

	client.Active = active
	client.UpdatedAt = now

	return client, nil
}

// ListClientsInput represents input for listing clients.
type ListClientsInput struct {
	Limit  int
	Offset int
}

// ListClients lists clients with pagination.
func (uc *ClientUseCase) ListClients(ctx context.Context, input ListClientsInput) ([]*domain.Client, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}
	return uc.clientRepo.List(ctx, input.Limit, input.Offset)
}

func identificationCacheKey(identification string) string {
	return "identification:" + identification
}
