package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking accounts
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// UniquenessCacheTTL is how long taken account numbers and identifications
	// are cached before consulting the authoritative store again
	UniquenessCacheTTL = 5 * time.Minute
)
